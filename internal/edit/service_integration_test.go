package edit

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misbahsy/video-audio-mcp/internal/ffmpeg"
	"github.com/misbahsy/video-audio-mcp/internal/storage"
)

func skipWithoutEngine(t *testing.T) {
	t.Helper()
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not found in PATH, skipping test", bin)
		}
	}
}

func newIntegrationService(t *testing.T) *Service {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(
		ffmpeg.NewRunner("ffmpeg", time.Minute),
		ffmpeg.NewProber("ffprobe"),
		store,
		logger,
	)
}

// makeClip renders a short synthetic test clip with video and audio.
func makeClip(t *testing.T, dir string) string {
	t.Helper()
	return makeTimedClip(t, dir, "clip.mp4", 2)
}

// makeTimedClip renders a synthetic clip of the given length in seconds.
func makeTimedClip(t *testing.T, dir, name string, seconds int) string {
	t.Helper()
	out := filepath.Join(dir, name)
	dur := strconv.Itoa(seconds)
	runner := ffmpeg.NewRunner("ffmpeg", time.Minute)
	res, err := runner.Run(context.Background(), ffmpeg.Invocation{
		Args: []string{
			"-y",
			"-f", "lavfi", "-i", "testsrc=duration=" + dur + ":size=320x240:rate=30",
			"-f", "lavfi", "-i", "sine=frequency=440:duration=" + dur,
			"-c:v", "libx264", "-preset", "ultrafast", "-pix_fmt", "yuv420p",
			"-c:a", "aac",
			"-shortest",
			out,
		},
		OutputPath: out,
	})
	require.NoError(t, err)
	require.Equal(t, 0, res.ExitCode, "stderr: %s", res.Stderr)
	return out
}

// makeGapClip renders an 8 second clip whose audio goes silent from
// t=3 to t=5.
func makeGapClip(t *testing.T, dir string) string {
	t.Helper()
	out := filepath.Join(dir, "gap.mp4")
	runner := ffmpeg.NewRunner("ffmpeg", time.Minute)
	res, err := runner.Run(context.Background(), ffmpeg.Invocation{
		Args: []string{
			"-y",
			"-f", "lavfi", "-i", "testsrc=duration=8:size=320x240:rate=30",
			"-f", "lavfi", "-i", "aevalsrc='if(between(t,3,5),0,0.5*sin(440*2*PI*t))':sample_rate=44100:duration=8",
			"-c:v", "libx264", "-preset", "ultrafast", "-pix_fmt", "yuv420p",
			"-c:a", "aac",
			"-shortest",
			out,
		},
		OutputPath: out,
	})
	require.NoError(t, err)
	require.Equal(t, 0, res.ExitCode, "stderr: %s", res.Stderr)
	return out
}

func TestTrimEndToEnd(t *testing.T) {
	skipWithoutEngine(t)

	s := newIntegrationService(t)
	dir := t.TempDir()
	clip := makeClip(t, dir)
	out := filepath.Join(dir, "trimmed.mp4")

	status, err := s.Trim(context.Background(), TrimRequest{
		Input:  clip,
		Output: out,
		Start:  "0",
		End:    "1",
	})
	require.NoError(t, err)
	assert.Contains(t, status, "Video trimmed successfully")
	assert.FileExists(t, out)

	info, err := ffmpeg.NewProber("ffprobe").Probe(context.Background(), out)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, info.Duration, 0.2)
}

func TestTrimRejectsInvertedRange(t *testing.T) {
	skipWithoutEngine(t)

	s := newIntegrationService(t)
	dir := t.TempDir()
	clip := makeClip(t, dir)

	_, err := s.Trim(context.Background(), TrimRequest{
		Input:  clip,
		Output: filepath.Join(dir, "out.mp4"),
		Start:  "5",
		End:    "5",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestExtractAudioEndToEnd(t *testing.T) {
	skipWithoutEngine(t)

	s := newIntegrationService(t)
	dir := t.TempDir()
	clip := makeClip(t, dir)
	out := filepath.Join(dir, "audio.mp3")

	status, err := s.ExtractAudio(context.Background(), ExtractAudioRequest{
		Input:  clip,
		Output: out,
	})
	require.NoError(t, err)
	assert.Contains(t, status, "Audio extracted successfully")

	info, err := ffmpeg.NewProber("ffprobe").Probe(context.Background(), out)
	require.NoError(t, err)
	assert.True(t, info.HasAudio)
	assert.False(t, info.HasVideo)
}

func TestConvertVideoFallsBackFromCopy(t *testing.T) {
	skipWithoutEngine(t)

	s := newIntegrationService(t)
	dir := t.TempDir()
	clip := makeClip(t, dir)
	out := filepath.Join(dir, "scaled.mp4")

	// A resolution change cannot be stream-copied; the assembler must
	// plan a re-encode.
	status, err := s.ConvertVideo(context.Background(), ConvertVideoRequest{
		Input:      clip,
		Output:     out,
		Resolution: "160x120",
	})
	require.NoError(t, err)
	assert.Contains(t, status, "converted successfully")

	info, err := ffmpeg.NewProber("ffprobe").Probe(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, 160, info.Width)
	assert.Equal(t, 120, info.Height)
}

func TestConcatenateEndToEnd(t *testing.T) {
	skipWithoutEngine(t)

	s := newIntegrationService(t)
	dir := t.TempDir()
	a := makeClip(t, dir)
	b := filepath.Join(dir, "clip-b.mp4")
	require.NoError(t, copyFile(a, b))
	out := filepath.Join(dir, "joined.mp4")

	status, err := s.Concatenate(context.Background(), ConcatRequest{
		Inputs: []string{a, b},
		Output: out,
	})
	require.NoError(t, err)
	assert.Contains(t, status, "Concatenated 2 videos")

	info, err := ffmpeg.NewProber("ffprobe").Probe(context.Background(), out)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, info.Duration, 0.5)
}

func TestRemoveSilenceEndToEnd(t *testing.T) {
	skipWithoutEngine(t)

	s := newIntegrationService(t)
	dir := t.TempDir()
	clip := makeGapClip(t, dir)
	out := filepath.Join(dir, "tightened.mp4")

	status, err := s.RemoveSilence(context.Background(), RemoveSilenceRequest{
		Input:  clip,
		Output: out,
	})
	require.NoError(t, err)
	assert.Contains(t, status, "silent passage")

	// The 2 second silent span comes out, leaving roughly 6 of 8 seconds.
	info, err := ffmpeg.NewProber("ffprobe").Probe(context.Background(), out)
	require.NoError(t, err)
	assert.True(t, info.HasVideo)
	assert.True(t, info.HasAudio)
	assert.InDelta(t, 6.0, info.Duration, 0.7)
}

func TestAddTextOverlayKeepsDuration(t *testing.T) {
	skipWithoutEngine(t)

	s := newIntegrationService(t)
	dir := t.TempDir()
	clip := makeTimedClip(t, dir, "five.mp4", 5)
	out := filepath.Join(dir, "titled.mp4")

	status, err := s.AddTextOverlay(context.Background(), TextOverlayRequest{
		Input:  clip,
		Output: out,
		Elements: []TextElement{
			{Text: "Chapter One", Start: "1", End: "3"},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, status, "Added 1 text overlay")

	info, err := ffmpeg.NewProber("ffprobe").Probe(context.Background(), out)
	require.NoError(t, err)
	assert.True(t, info.HasAudio, "audio stream survives the overlay")
	assert.InDelta(t, 5.0, info.Duration, 0.3)
}

func TestHealthCheck(t *testing.T) {
	skipWithoutEngine(t)

	s := newIntegrationService(t)
	status, err := s.HealthCheck(context.Background())
	require.NoError(t, err)
	assert.Contains(t, status, "Server is healthy")
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o600)
}
