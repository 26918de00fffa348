package ffmpeg

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// skipIfNoFFmpeg skips the test if ffmpeg is not available.
func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found in PATH, skipping test")
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner("", 0)
	if r.ffmpegPath != "ffmpeg" {
		t.Errorf("expected default path 'ffmpeg', got %q", r.ffmpegPath)
	}
}

func TestRunMissingBinary(t *testing.T) {
	r := NewRunner("/definitely/not/ffmpeg", time.Second)
	_, err := r.Run(context.Background(), Invocation{Args: []string{"-version"}})
	if !errors.Is(err, ErrEngineNotFound) {
		t.Fatalf("expected ErrEngineNotFound, got %v", err)
	}
}

func TestVersionMissingBinary(t *testing.T) {
	r := NewRunner("/definitely/not/ffmpeg", time.Second)
	_, err := r.Version(context.Background())
	if !errors.Is(err, ErrEngineNotFound) {
		t.Fatalf("expected ErrEngineNotFound, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	skipIfNoFFmpeg(t)

	r := NewRunner("", 10*time.Second)
	v, err := r.Version(context.Background())
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if !strings.Contains(v, "ffmpeg") {
		t.Errorf("unexpected version line: %q", v)
	}
}

func TestRunNonZeroExitIsClassifiable(t *testing.T) {
	skipIfNoFFmpeg(t)

	r := NewRunner("", 10*time.Second)
	// No such input file: ffmpeg exits non-zero but the run itself is a
	// normal, classifiable outcome.
	res, err := r.Run(context.Background(), Invocation{
		Args: []string{"-i", "/nonexistent/clip.mp4", "-f", "null", "-"},
	})
	if err != nil {
		t.Fatalf("expected classifiable result, got error: %v", err)
	}
	if res.ExitCode == 0 {
		t.Error("expected non-zero exit code")
	}
	if res.Stderr == "" {
		t.Error("expected captured stderr")
	}
}

func TestRunTimeout(t *testing.T) {
	skipIfNoFFmpeg(t)

	r := NewRunner("", 100*time.Millisecond)
	// An unbounded synthetic source would run forever without the timeout.
	_, err := r.Run(context.Background(), Invocation{
		Args: []string{"-f", "lavfi", "-i", "color=c=red:s=64x64", "-f", "null", "-"},
	})
	if !errors.Is(err, ErrEngineTimeout) {
		t.Fatalf("expected ErrEngineTimeout, got %v", err)
	}
}
