// Package media provides video transcoding and clip extraction capabilities.
// Implementations should use ffmpeg or similar tools for media manipulation.
package media

import "context"

// Processor defines the interface for the media operations loudcut needs.
type Processor interface {
	// TranscodeAudio rewrites src into dst with the video stream copied
	// untouched and the audio stream re-encoded with audioCodec.
	// An existing dst is overwritten.
	TranscodeAudio(ctx context.Context, src, dst, audioCodec string) error

	// ExtractClip cuts durationSec seconds of src starting at startSec into
	// a self-contained dst encoded with videoCodec/audioCodec. The clip may
	// be shorter than requested when the source ends first.
	ExtractClip(ctx context.Context, src, dst string, startSec, durationSec float64, videoCodec, audioCodec string) error
}

// Default codecs for extracted clips.
const (
	DefaultVideoCodec = "libx264"
	DefaultAudioCodec = "aac"
)
