// Package ffmpeg runs the external media engine as a subprocess and
// classifies what happened. It never parses the engine's progress output;
// the ground truth of success is the exit code plus the produced file.
package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Static errors for engine execution.
var (
	// ErrEngineNotFound is returned when the ffmpeg binary cannot be located.
	ErrEngineNotFound = errors.New("ffmpeg executable not found")
	// ErrEngineTimeout is returned when an invocation exceeds the configured timeout.
	ErrEngineTimeout = errors.New("ffmpeg timed out")
)

// Invocation is a fully rendered argument list for one engine run,
// together with the output path(s) the run is expected to produce.
// It is built by the assembler and consumed once by the Runner.
type Invocation struct {
	// Args is the complete argument list, excluding the binary name.
	Args []string
	// OutputPath is the file the invocation is declared to produce.
	// Empty for runs that only write diagnostics (e.g. silence detection).
	OutputPath string
}

// ExecutionResult captures the observable outcome of one engine run.
type ExecutionResult struct {
	// ExitCode is the subprocess exit code. Zero does not imply success
	// on its own; see Classify.
	ExitCode int
	// Stderr is the full captured diagnostic output.
	Stderr string
}

// Runner invokes ffmpeg synchronously with a per-run timeout.
type Runner struct {
	ffmpegPath string
	timeout    time.Duration
}

// NewRunner creates a Runner. An empty path defaults to "ffmpeg" resolved
// via PATH. A non-positive timeout disables the deadline.
func NewRunner(ffmpegPath string, timeout time.Duration) *Runner {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Runner{ffmpegPath: ffmpegPath, timeout: timeout}
}

// Run executes one invocation and returns its result. A non-zero exit code
// is a normal, classifiable outcome and is not reported as an error here.
// Errors are reserved for environment-level failures: a missing binary or
// an elapsed timeout. On timeout the subprocess is killed and any partial
// output file is removed.
func (r *Runner) Run(ctx context.Context, inv Invocation) (*ExecutionResult, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	// #nosec G204 - ffmpegPath comes from configuration, args from the assembler
	cmd := exec.CommandContext(ctx, r.ffmpegPath, inv.Args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			r.discardPartialOutput(inv.OutputPath)
			return nil, fmt.Errorf("%w after %s", ErrEngineTimeout, r.timeout)
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			r.discardPartialOutput(inv.OutputPath)
			return nil, fmt.Errorf("ffmpeg cancelled: %w", ctx.Err())
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExecutionResult{
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}, nil
		}

		// The command never started. The overwhelmingly common cause is a
		// missing binary; surface it as such.
		if errors.Is(err, exec.ErrNotFound) || isExecNotFound(err) {
			return nil, fmt.Errorf("%w: %q", ErrEngineNotFound, r.ffmpegPath)
		}
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	return &ExecutionResult{ExitCode: 0, Stderr: stderr.String()}, nil
}

// Version probes the engine binary with a version query. It is the health
// check: it confirms the executable exists and responds, independent of any
// editing request.
func (r *Runner) Version(ctx context.Context) (string, error) {
	// #nosec G204 - ffmpegPath comes from configuration
	cmd := exec.CommandContext(ctx, r.ffmpegPath, "-version")

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || isExecNotFound(err) {
			return "", fmt.Errorf("%w: %q", ErrEngineNotFound, r.ffmpegPath)
		}
		return "", fmt.Errorf("ffmpeg version query: %w", err)
	}

	line, _, _ := strings.Cut(stdout.String(), "\n")
	return strings.TrimSpace(line), nil
}

// discardPartialOutput removes whatever the killed subprocess left behind.
// A partial media file is worse than no file: it would be classified as
// success by a naive existence check downstream.
func (r *Runner) discardPartialOutput(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}

// isExecNotFound reports whether err indicates the binary does not exist,
// covering both PATH lookup failures and absolute paths to missing files.
func isExecNotFound(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
