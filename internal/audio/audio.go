// Package audio provides extraction and decoding of the audio track of a
// video file into raw PCM samples for intensity analysis.
package audio

import "context"

// ExtractOpts configures the decoded PCM format.
type ExtractOpts struct {
	// SampleRate is the decode sample rate in Hz.
	// Default: 44100.
	SampleRate int

	// Channels is the number of output channels.
	// Default: 2.
	Channels int
}

// DefaultExtractOpts returns the default decode format.
func DefaultExtractOpts() ExtractOpts {
	return ExtractOpts{
		SampleRate: 44100,
		Channels:   2,
	}
}

// Extractor defines the interface for decoding the audio track of a media
// file to a raw signed 16-bit little-endian PCM file.
type Extractor interface {
	// ExtractPCM decodes the audio track of inputVideo into outputRaw as
	// headerless s16le PCM in the format described by opts. Failures from
	// the underlying media toolchain are fatal and propagate to the caller.
	ExtractPCM(ctx context.Context, inputVideo, outputRaw string, opts ExtractOpts) error
}
