// Package config provides configuration loading from environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Static errors for configuration validation.
var (
	// ErrFFmpegPathRequired is returned when FFMPEG_PATH is set to an empty value.
	ErrFFmpegPathRequired = errors.New("config: FFMPEG_PATH must not be empty")
	// ErrFFprobePathRequired is returned when FFPROBE_PATH is set to an empty value.
	ErrFFprobePathRequired = errors.New("config: FFPROBE_PATH must not be empty")
	// ErrInvalidEngineTimeout is returned when ENGINE_TIMEOUT is not positive.
	ErrInvalidEngineTimeout = errors.New("config: ENGINE_TIMEOUT must be positive")
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	Port int `env:"PORT, default=8080" json:"port"`

	// Engine settings
	FFmpegPath    string        `env:"FFMPEG_PATH, default=ffmpeg" json:"ffmpeg_path"`
	FFprobePath   string        `env:"FFPROBE_PATH, default=ffprobe" json:"ffprobe_path"`
	EngineTimeout time.Duration `env:"ENGINE_TIMEOUT, default=10m" json:"engine_timeout"`

	// Storage settings
	WorkDir string `env:"WORK_DIR, default=/tmp/video-audio-mcp" json:"work_dir"`

	// Encoding defaults applied when a request names no codec or rate.
	DefaultVideoCodec   string `env:"DEFAULT_VIDEO_CODEC, default=libx264" json:"default_video_codec"`
	DefaultAudioCodec   string `env:"DEFAULT_AUDIO_CODEC, default=aac" json:"default_audio_codec"`
	DefaultPreset       string `env:"DEFAULT_PRESET, default=fast" json:"default_preset"`
	DefaultCRF          int    `env:"DEFAULT_CRF, default=23" json:"default_crf"`
	DefaultAudioBitrate string `env:"DEFAULT_AUDIO_BITRATE, default=128k" json:"default_audio_bitrate"`

	// Optional S3 settings
	S3Bucket           string `env:"S3_BUCKET" json:"s3_bucket,omitempty"`
	S3Region           string `env:"S3_REGION" json:"s3_region,omitempty"`
	S3Endpoint         string `env:"S3_ENDPOINT" json:"s3_endpoint,omitempty"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" json:"-"`     // Masked in JSON
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" json:"-"` // Masked in JSON

	// Logging settings
	LogFormat string `env:"LOG_FORMAT, default=text" json:"log_format"` // "json" or "text"
	LogLevel  string `env:"LOG_LEVEL, default=info" json:"log_level"`   // "debug", "info", "warn", "error"
}

// S3Enabled returns true if S3 configuration is provided.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.FFmpegPath == "" {
		return ErrFFmpegPathRequired
	}
	if c.FFprobePath == "" {
		return ErrFFprobePathRequired
	}
	if c.EngineTimeout <= 0 {
		return ErrInvalidEngineTimeout
	}
	return nil
}

// NewLogger creates a structured logger based on the configuration.
// When LogFormat is "json", it outputs JSON logs suitable for production.
// Otherwise, it outputs human-readable text logs.
func (c *Config) NewLogger() *slog.Logger {
	level := parseLogLevel(c.LogLevel)

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// String returns a string representation of the config with sensitive values masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Port: %d, FFmpegPath: %s, FFprobePath: %s, EngineTimeout: %s, WorkDir: %s, S3Bucket: %s, S3Region: %s, LogFormat: %s, LogLevel: %s}",
		c.Port,
		c.FFmpegPath,
		c.FFprobePath,
		c.EngineTimeout,
		c.WorkDir,
		c.S3Bucket,
		c.S3Region,
		c.LogFormat,
		c.LogLevel,
	)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
