// Package main provides the loudcut command line entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/maauso/loudcut/internal/bootstrap"
	"github.com/maauso/loudcut/internal/config"
	"github.com/maauso/loudcut/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		inputPath    = flag.String("input", "", "source video file (required)")
		threshold    = flag.Float64("threshold", 0, "RMS intensity a window's average must exceed (required)")
		clipDuration = flag.Int("clip-duration", pipeline.DefaultClipDurationSec, "clip length in seconds")
		outputDir    = flag.String("output-dir", "output_clips", "directory for clip_{n}.mp4 files")
		preTranscode = flag.Bool("pre-transcode", false, "re-encode the source audio codec before analysis")
		audioCodec   = flag.String("pre-transcode-codec", "mp3", "audio codec for the pre-transcode step")
		pushToS3     = flag.Bool("push-to-s3", false, "upload finished clips to the configured S3 bucket")
	)
	flag.Parse()

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Create structured logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting loudcut",
		slog.String("input", *inputPath),
		slog.Float64("threshold", *threshold),
		slog.Int("clip_duration_sec", *clipDuration),
		slog.String("output_dir", *outputDir),
		slog.String("temp_dir", cfg.TempDir),
		slog.Bool("s3_enabled", cfg.S3Enabled()),
	)

	// Initialize dependencies using bootstrap
	deps, err := bootstrap.NewDependencies(cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}

	// SIGINT/SIGTERM cancel in-flight ffmpeg invocations.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := deps.Clipper.Run(ctx, pipeline.RunInput{
		InputPath:         *inputPath,
		Threshold:         *threshold,
		ClipDurationSec:   *clipDuration,
		OutputDir:         *outputDir,
		PreTranscode:      *preTranscode,
		PreTranscodeCodec: *audioCodec,
		PushToS3:          *pushToS3,
	})
	if err != nil {
		return fmt.Errorf("clipping run failed: %w", err)
	}

	for _, clip := range result.Clips {
		logger.Info("clip written",
			slog.Int("clip", clip.Index),
			slog.String("path", clip.Path),
			slog.Float64("start_sec", clip.StartSec),
		)
	}
	logger.Info("done",
		slog.Int("clips", len(result.Clips)),
		slog.Int("chunks_analyzed", result.ChunkCount),
	)
	return nil
}
