package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "FFMPEG_PATH", "FFPROBE_PATH", "ENGINE_TIMEOUT", "WORK_DIR",
		"DEFAULT_VIDEO_CODEC", "DEFAULT_AUDIO_CODEC", "DEFAULT_PRESET",
		"DEFAULT_CRF", "DEFAULT_AUDIO_BITRATE",
		"S3_BUCKET", "S3_REGION", "S3_ENDPOINT",
		"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY",
		"LOG_FORMAT", "LOG_LEVEL",
	} {
		// t.Setenv registers the restore; the variable must be truly unset
		// for envconfig defaults to apply.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, "ffprobe", cfg.FFprobePath)
	assert.Equal(t, 10*time.Minute, cfg.EngineTimeout)
	assert.Equal(t, "/tmp/video-audio-mcp", cfg.WorkDir)
	assert.Equal(t, "libx264", cfg.DefaultVideoCodec)
	assert.Equal(t, "aac", cfg.DefaultAudioCodec)
	assert.Equal(t, "fast", cfg.DefaultPreset)
	assert.Equal(t, 23, cfg.DefaultCRF)
	assert.Equal(t, "128k", cfg.DefaultAudioBitrate)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.S3Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("FFMPEG_PATH", "/usr/local/bin/ffmpeg")
	t.Setenv("ENGINE_TIMEOUT", "30s")
	t.Setenv("S3_BUCKET", "outputs")
	t.Setenv("S3_REGION", "eu-west-1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/usr/local/bin/ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, 30*time.Second, cfg.EngineTimeout)
	assert.True(t, cfg.S3Enabled())
}

func TestValidate(t *testing.T) {
	cfg := &Config{FFmpegPath: "ffmpeg", FFprobePath: "ffprobe", EngineTimeout: time.Minute}
	assert.NoError(t, cfg.Validate())

	cfg.FFmpegPath = ""
	assert.ErrorIs(t, cfg.Validate(), ErrFFmpegPathRequired)

	cfg.FFmpegPath = "ffmpeg"
	cfg.FFprobePath = ""
	assert.ErrorIs(t, cfg.Validate(), ErrFFprobePathRequired)

	cfg.FFprobePath = "ffprobe"
	cfg.EngineTimeout = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidEngineTimeout)
}

func TestNewLogger(t *testing.T) {
	cfg := &Config{LogFormat: "json", LogLevel: "debug"}
	logger := cfg.NewLogger()
	require.NotNil(t, logger)

	cfg = &Config{LogFormat: "text", LogLevel: "nonsense"}
	require.NotNil(t, cfg.NewLogger())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARNING"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel(""))
}

func TestString_MasksSecrets(t *testing.T) {
	cfg := &Config{
		Port:               8080,
		FFmpegPath:         "ffmpeg",
		AWSAccessKeyID:     "AKIA-SECRET",
		AWSSecretAccessKey: "very-secret",
	}
	s := cfg.String()
	assert.NotContains(t, s, "AKIA-SECRET")
	assert.NotContains(t, s, "very-secret")
	assert.Contains(t, s, "ffmpeg")
}
