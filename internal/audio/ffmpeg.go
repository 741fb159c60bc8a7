package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// FFmpegExtractor implements Extractor using the ffmpeg CLI.
type FFmpegExtractor struct {
	ffmpegPath string
}

// NewFFmpegExtractor creates a new FFmpegExtractor.
// If ffmpegPath is empty, it defaults to "ffmpeg" (found in PATH).
func NewFFmpegExtractor(ffmpegPath string) *FFmpegExtractor {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &FFmpegExtractor{ffmpegPath: ffmpegPath}
}

// ExtractPCM decodes the audio track of inputVideo to headerless s16le
// PCM at outputRaw.
func (e *FFmpegExtractor) ExtractPCM(ctx context.Context, inputVideo, outputRaw string, opts ExtractOpts) error {
	if _, err := os.Stat(inputVideo); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", inputVideo)
	}

	sampleRate := opts.SampleRate
	if sampleRate <= 0 {
		sampleRate = DefaultExtractOpts().SampleRate
	}
	channels := opts.Channels
	if channels <= 0 {
		channels = DefaultExtractOpts().Channels
	}

	args := []string{
		"-y",
		"-i", inputVideo,
		"-vn", // drop the video stream
		"-acodec", "pcm_s16le",
		"-f", "s16le",
		"-ar", strconv.Itoa(sampleRate),
		"-ac", strconv.Itoa(channels),
		outputRaw,
	}

	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg error: %w, stderr: %s", err, stderr.String())
	}

	return nil
}

// ReadSamples reads a headerless s16le PCM file and decodes it into
// interleaved samples.
func ReadSamples(path string) ([]int16, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is provided by trusted caller
	if err != nil {
		return nil, fmt.Errorf("read pcm file: %w", err)
	}
	return DecodeS16LE(data), nil
}

// Verify interface implementation at compile time.
var _ Extractor = (*FFmpegExtractor)(nil)
