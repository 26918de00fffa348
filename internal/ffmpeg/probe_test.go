package ffmpeg

import (
	"context"
	"os/exec"
	"testing"
)

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"30/1", 30},
		{"30000/1001", 29.97002997002997},
		{"0/0", 0},
		{"", 0},
		{"25", 25},
	}
	for _, tt := range tests {
		if got := parseFrameRate(tt.raw); got != tt.want {
			t.Errorf("parseFrameRate(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestNewProberDefaults(t *testing.T) {
	p := NewProber("")
	if p.ffprobePath != "ffprobe" {
		t.Errorf("expected default path, got %q", p.ffprobePath)
	}
}

func TestProbeMissingFile(t *testing.T) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not found in PATH, skipping test")
	}

	p := NewProber("")
	_, err := p.Probe(context.Background(), "/nonexistent/clip.mp4")
	if err == nil {
		t.Fatal("expected error probing a missing file")
	}
}
