// Package bootstrap provides dependency initialization for loudcut.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/maauso/loudcut/internal/audio"
	"github.com/maauso/loudcut/internal/config"
	"github.com/maauso/loudcut/internal/media"
	"github.com/maauso/loudcut/internal/pipeline"
	"github.com/maauso/loudcut/internal/storage"
)

// Dependencies holds all initialized dependencies for a clipping run.
type Dependencies struct {
	Clipper *pipeline.Clipper
}

// NewDependencies creates and initializes all dependencies for the application.
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	store, err := initStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	processor := media.NewFFmpegProcessor(cfg.FFmpegPath, nil)
	extractor := audio.NewFFmpegExtractor(cfg.FFmpegPath)

	clipper := pipeline.NewClipper(
		extractor,
		processor,
		store,
		logger,
		pipeline.WithExtractOpts(audio.ExtractOpts{
			SampleRate: cfg.SampleRate,
			Channels:   cfg.Channels,
		}),
		pipeline.WithClipCodecs(cfg.VideoCodec, cfg.AudioCodec),
	)

	return &Dependencies{
		Clipper: clipper,
	}, nil
}

// initStorage creates the appropriate storage backend based on configuration.
func initStorage(cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	if cfg.S3Enabled() {
		s3Cfg := storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}
		s3Store, err := storage.NewS3Storage(cfg.TempDir, s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("create S3 storage: %w", err)
		}
		logger.Info("S3 storage configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		return s3Store, nil
	}

	localStore, err := storage.NewLocalStorage(cfg.TempDir)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}
	logger.Info("local storage configured",
		slog.String("temp_dir", cfg.TempDir),
	)
	return localStore, nil
}
