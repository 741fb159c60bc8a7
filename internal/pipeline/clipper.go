// Package pipeline provides the Clipper use case that orchestrates one
// clipping run: audio extraction, intensity analysis, window selection and
// clip extraction, plus temp-file lifecycle around them.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/maauso/loudcut/internal/audio"
	"github.com/maauso/loudcut/internal/intensity"
	"github.com/maauso/loudcut/internal/media"
	"github.com/maauso/loudcut/internal/storage"
)

// RunInput contains the parameters for one clipping run.
type RunInput struct {
	// InputPath is the source video file.
	InputPath string `validate:"required"`
	// Threshold is the RMS intensity a window's average must strictly
	// exceed to be selected. It is applied literally; negative values are
	// allowed and select everything louder than them.
	Threshold float64
	// ClipDurationSec is the fixed clip length in seconds.
	ClipDurationSec int `validate:"min=1"`
	// OutputDir is the directory receiving clip_{n}.mp4 files.
	OutputDir string `validate:"required"`
	// PreTranscode re-encodes the source audio codec before analysis.
	PreTranscode bool
	// PreTranscodeCodec is the audio codec for the pre-transcode step.
	// Defaults to mp3.
	PreTranscodeCodec string
	// PushToS3 uploads each finished clip through the storage backend.
	PushToS3 bool
}

// Clip describes one extracted clip.
type Clip struct {
	// Index is the 1-based emission order.
	Index int
	// Path is the local output file.
	Path string
	// StartSec is the clip's offset in the source timeline.
	StartSec float64
	// DurationSec is the requested clip length.
	DurationSec float64
	// URL is the S3 URL when PushToS3 was set.
	URL string
}

// RunResult contains the outcome of a clipping run.
type RunResult struct {
	// Clips are the extracted segments in emission order.
	Clips []Clip
	// ChunkCount is the number of valid intensity values analyzed.
	ChunkCount int
}

// DefaultClipDurationSec is the clip length used when none is given.
const DefaultClipDurationSec = 60

// Clipper orchestrates the clipping workflow. It is synchronous: every
// stage runs to completion before the next starts, and the whole
// intensity sequence is materialized before selection.
type Clipper struct {
	extractor audio.Extractor
	processor media.Processor
	store     storage.Storage
	validate  *validator.Validate
	logger    *slog.Logger

	extractOpts audio.ExtractOpts
	videoCodec  string
	audioCodec  string
}

// Option configures a Clipper.
type Option func(*Clipper)

// WithExtractOpts overrides the PCM decode format used for analysis.
func WithExtractOpts(opts audio.ExtractOpts) Option {
	return func(c *Clipper) {
		c.extractOpts = opts
	}
}

// WithClipCodecs overrides the codecs used for extracted clips.
func WithClipCodecs(videoCodec, audioCodec string) Option {
	return func(c *Clipper) {
		c.videoCodec = videoCodec
		c.audioCodec = audioCodec
	}
}

// NewClipper creates a Clipper with the given collaborators.
func NewClipper(extractor audio.Extractor, processor media.Processor, store storage.Storage, logger *slog.Logger, opts ...Option) *Clipper {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Clipper{
		extractor:   extractor,
		processor:   processor,
		store:       store,
		validate:    validator.New(),
		logger:      logger,
		extractOpts: audio.DefaultExtractOpts(),
		videoCodec:  media.DefaultVideoCodec,
		audioCodec:  media.DefaultAudioCodec,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes one clipping run. Failures from the media toolchain are
// fatal; temp-file deletion failures are logged and tolerated.
func (c *Clipper) Run(ctx context.Context, input RunInput) (*RunResult, error) {
	if input.ClipDurationSec == 0 {
		input.ClipDurationSec = DefaultClipDurationSec
	}
	if input.PreTranscodeCodec == "" {
		input.PreTranscodeCodec = "mp3"
	}
	if err := c.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid run input: %w", err)
	}

	c.logger.Info("starting clipping run",
		slog.String("input", input.InputPath),
		slog.Float64("threshold", input.Threshold),
		slog.Int("clip_duration_sec", input.ClipDurationSec),
		slog.String("output_dir", input.OutputDir),
		slog.Bool("pre_transcode", input.PreTranscode),
	)

	if err := c.store.EnsureDir(input.OutputDir); err != nil {
		return nil, fmt.Errorf("ensure output directory: %w", err)
	}

	var tempPaths []string
	defer func() {
		// Cleanup must run even when the run context was cancelled; a
		// file held open elsewhere is logged, never fatal.
		cleanupCtx := context.WithoutCancel(ctx)
		if err := c.store.CleanupTemp(cleanupCtx, tempPaths); err != nil {
			c.logger.Warn("temp cleanup incomplete",
				slog.String("error", err.Error()),
			)
		}
	}()

	source := input.InputPath
	if input.PreTranscode {
		converted, err := c.store.TempFile("converted_*.mp4")
		if err != nil {
			return nil, fmt.Errorf("create transcode target: %w", err)
		}
		tempPaths = append(tempPaths, converted)

		if err := c.processor.TranscodeAudio(ctx, source, converted, input.PreTranscodeCodec); err != nil {
			return nil, err
		}
		source = converted

		c.logger.Info("audio codec transcoded",
			slog.String("codec", input.PreTranscodeCodec),
			slog.String("path", converted),
		)
	}

	intensities, err := c.analyzeAudio(ctx, source, &tempPaths)
	if err != nil {
		return nil, err
	}

	windows := intensity.SelectWindows(intensities, input.Threshold, input.ClipDurationSec)
	c.logger.Info("window selection complete",
		slog.Int("chunks", len(intensities)),
		slog.Int("selected", len(windows)),
	)

	result := &RunResult{ChunkCount: len(intensities)}
	for i, w := range windows {
		clip, err := c.extractClip(ctx, source, input, i+1, w)
		if err != nil {
			return nil, err
		}
		result.Clips = append(result.Clips, *clip)
	}

	c.logger.Info("clipping run complete",
		slog.Int("clips", len(result.Clips)),
	)
	return result, nil
}

// analyzeAudio extracts the decoded audio track to a temp file and
// computes the per-chunk intensity sequence.
func (c *Clipper) analyzeAudio(ctx context.Context, source string, tempPaths *[]string) ([]float64, error) {
	rawPath, err := c.store.TempFile("audio_*.raw")
	if err != nil {
		return nil, fmt.Errorf("create audio target: %w", err)
	}
	*tempPaths = append(*tempPaths, rawPath)

	if err := c.extractor.ExtractPCM(ctx, source, rawPath, c.extractOpts); err != nil {
		return nil, fmt.Errorf("extract audio: %w", err)
	}

	samples, err := audio.ReadSamples(rawPath)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}

	c.logger.Info("audio track decoded",
		slog.String("path", rawPath),
		slog.Int("samples", len(samples)),
	)

	analyzer := intensity.NewAnalyzer(c.extractOpts.SampleRate, c.extractOpts.Channels, c.logger)
	return analyzer.Analyze(samples), nil
}

// extractClip cuts window n out of source into the output directory and
// optionally uploads it.
func (c *Clipper) extractClip(ctx context.Context, source string, input RunInput, n int, w intensity.Window) (*Clip, error) {
	name := fmt.Sprintf("clip_%d.mp4", n)
	dst := filepath.Join(input.OutputDir, name)

	c.logger.Info("extracting clip",
		slog.Int("clip", n),
		slog.Float64("start_sec", w.StartSec),
		slog.Float64("duration_sec", w.DurationSec),
		slog.String("output", dst),
	)

	if err := c.processor.ExtractClip(ctx, source, dst, w.StartSec, w.DurationSec, c.videoCodec, c.audioCodec); err != nil {
		return nil, fmt.Errorf("extract clip %d: %w", n, err)
	}

	clip := &Clip{
		Index:       n,
		Path:        dst,
		StartSec:    w.StartSec,
		DurationSec: w.DurationSec,
	}

	if input.PushToS3 {
		url, err := c.uploadClip(ctx, name, dst)
		if err != nil {
			return nil, err
		}
		clip.URL = url
	}

	return clip, nil
}

func (c *Clipper) uploadClip(ctx context.Context, key, path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 - path was produced by this run
	if err != nil {
		return "", fmt.Errorf("open clip for upload: %w", err)
	}
	defer func() { _ = f.Close() }()

	url, err := c.store.UploadClip(ctx, key, f)
	if err != nil {
		return "", fmt.Errorf("upload clip %s: %w", key, err)
	}

	c.logger.Info("clip uploaded",
		slog.String("key", key),
		slog.String("url", url),
	)
	return url, nil
}
