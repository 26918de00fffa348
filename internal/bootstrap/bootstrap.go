// Package bootstrap provides dependency initialization for the video editing API.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/misbahsy/video-audio-mcp/internal/config"
	"github.com/misbahsy/video-audio-mcp/internal/edit"
	"github.com/misbahsy/video-audio-mcp/internal/ffmpeg"
	"github.com/misbahsy/video-audio-mcp/internal/storage"
)

// Dependencies holds all initialized dependencies for the HTTP server.
type Dependencies struct {
	EditService *edit.Service
}

// NewDependencies creates and initializes all dependencies for the application.
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	store, err := initStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	runner := ffmpeg.NewRunner(cfg.FFmpegPath, cfg.EngineTimeout)
	prober := ffmpeg.NewProber(cfg.FFprobePath)

	defaults := edit.DefaultSettings()
	defaults.VideoCodec = cfg.DefaultVideoCodec
	defaults.AudioCodec = cfg.DefaultAudioCodec
	defaults.Preset = cfg.DefaultPreset
	defaults.CRF = cfg.DefaultCRF
	defaults.AudioBitrate = cfg.DefaultAudioBitrate

	svc := edit.NewService(
		runner,
		prober,
		store,
		logger,
		edit.WithDefaults(defaults),
		edit.WithPublishing(cfg.S3Enabled()),
	)

	return &Dependencies{
		EditService: svc,
	}, nil
}

// initStorage creates the appropriate storage backend based on configuration.
func initStorage(cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	if cfg.S3Enabled() {
		s3Cfg := storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}
		s3Store, err := storage.NewS3Storage(cfg.WorkDir, s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("create S3 storage: %w", err)
		}
		logger.Info("S3 storage configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		return s3Store, nil
	}

	localStore, err := storage.NewLocalStorage(cfg.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}
	logger.Info("local storage configured",
		slog.String("work_dir", cfg.WorkDir),
	)
	return localStore, nil
}
