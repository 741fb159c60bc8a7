package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Static errors for media operations.
var (
	// ErrInvalidDuration is returned when duration is not positive.
	ErrInvalidDuration = errors.New("invalid duration: must be positive")
	// ErrInvalidStart is returned when the start offset is negative.
	ErrInvalidStart = errors.New("invalid start: must not be negative")
)

// Runner executes an external command and returns its combined error.
// It exists so tests can fake the media toolchain without invoking it.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// Run executes the command and folds stderr into the returned error.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s error: %w, stderr: %s", name, err, stderr.String())
	}
	return nil
}

// FFmpegProcessor implements Processor using the ffmpeg CLI.
type FFmpegProcessor struct {
	ffmpegPath string
	runner     Runner
}

// NewFFmpegProcessor creates a new FFmpegProcessor.
// If ffmpegPath is empty, it defaults to "ffmpeg" (found via PATH).
// If runner is nil, commands run through os/exec.
func NewFFmpegProcessor(ffmpegPath string, runner Runner) *FFmpegProcessor {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &FFmpegProcessor{ffmpegPath: ffmpegPath, runner: runner}
}

// TranscodeAudio copies the video stream of src and re-encodes its audio
// stream with audioCodec into dst.
func (p *FFmpegProcessor) TranscodeAudio(ctx context.Context, src, dst, audioCodec string) error {
	args := []string{
		"-y",
		"-i", src,
		"-c:v", "copy",
		"-c:a", audioCodec,
		dst,
	}

	if err := p.runner.Run(ctx, p.ffmpegPath, args...); err != nil {
		return fmt.Errorf("transcode audio: %w", err)
	}
	return nil
}

// ExtractClip cuts a self-contained segment out of src.
func (p *FFmpegProcessor) ExtractClip(ctx context.Context, src, dst string, startSec, durationSec float64, videoCodec, audioCodec string) error {
	if durationSec <= 0 {
		return fmt.Errorf("%w: %f", ErrInvalidDuration, durationSec)
	}
	if startSec < 0 {
		return fmt.Errorf("%w: %f", ErrInvalidStart, startSec)
	}

	if videoCodec == "" {
		videoCodec = DefaultVideoCodec
	}
	if audioCodec == "" {
		audioCodec = DefaultAudioCodec
	}

	args := []string{
		"-y",
		"-ss", fmt.Sprintf("%.3f", startSec),
		"-t", fmt.Sprintf("%.3f", durationSec),
		"-i", src,
		"-c:v", videoCodec,
		"-c:a", audioCodec,
		dst,
	}

	if err := p.runner.Run(ctx, p.ffmpegPath, args...); err != nil {
		return fmt.Errorf("extract clip: %w", err)
	}
	return nil
}

// Verify interface implementation at compile time.
var _ Processor = (*FFmpegProcessor)(nil)
