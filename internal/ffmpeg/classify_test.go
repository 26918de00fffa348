package ffmpeg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassify(t *testing.T) {
	tmpDir := t.TempDir()

	writeFile := func(name, content string) string {
		t.Helper()
		path := filepath.Join(tmpDir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}

	t.Run("exit zero with non-empty output is success", func(t *testing.T) {
		out := writeFile("ok.mp4", "not really a video")
		c := Classify(&ExecutionResult{ExitCode: 0}, out)
		if c.Outcome != OutcomeSuccess {
			t.Fatalf("expected success, got failure: %s", c.Detail)
		}
	})

	t.Run("non-zero exit is failure with diagnostic detail", func(t *testing.T) {
		out := writeFile("bad.mp4", "content")
		res := &ExecutionResult{
			ExitCode: 1,
			Stderr:   "frame=   10 fps=0.0\nConversion failed!\n",
		}
		c := Classify(res, out)
		if c.Outcome != OutcomeFailure {
			t.Fatal("expected failure")
		}
		if c.Detail != "Conversion failed!" {
			t.Errorf("unexpected detail: %q", c.Detail)
		}
	})

	t.Run("exit zero but missing output is failure", func(t *testing.T) {
		c := Classify(&ExecutionResult{ExitCode: 0}, filepath.Join(tmpDir, "never_created.mp4"))
		if c.Outcome != OutcomeFailure {
			t.Fatal("expected failure for missing output")
		}
	})

	t.Run("exit zero but empty output is failure and file is removed", func(t *testing.T) {
		out := writeFile("empty.mp4", "")
		c := Classify(&ExecutionResult{ExitCode: 0}, out)
		if c.Outcome != OutcomeFailure {
			t.Fatal("expected failure for empty output")
		}
		if _, err := os.Stat(out); !os.IsNotExist(err) {
			t.Error("empty output file should have been removed")
		}
	})

	t.Run("no declared output succeeds on exit code alone", func(t *testing.T) {
		c := Classify(&ExecutionResult{ExitCode: 0}, "")
		if c.Outcome != OutcomeSuccess {
			t.Fatal("expected success for detection-style run")
		}
	})
}

func TestLastDiagnosticLine(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   string
	}{
		{
			name:   "skips progress lines",
			stderr: "Error opening file /nope.mp4\nframe=  100 fps=25\nsize=    1024kB\n",
			want:   "Error opening file /nope.mp4",
		},
		{
			name:   "skips encoder statistics",
			stderr: "[mp4 @ 0x1] muxer does not support non seekable output\n[libx264 @ 0x2] frame I:4 Avg QP:20\n",
			want:   "[mp4 @ 0x1] muxer does not support non seekable output",
		},
		{
			name:   "empty stderr",
			stderr: "",
			want:   "no diagnostic output captured",
		},
		{
			name:   "trailing blank lines ignored",
			stderr: "Invalid data found when processing input\n\n\n",
			want:   "Invalid data found when processing input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LastDiagnosticLine(tt.stderr); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
