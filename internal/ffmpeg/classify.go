package ffmpeg

import (
	"fmt"
	"os"
	"strings"
)

// Outcome is the classified result of one engine invocation.
type Outcome int

const (
	// OutcomeSuccess means exit zero, output present and non-empty.
	OutcomeSuccess Outcome = iota
	// OutcomeFailure means a non-zero exit, a missing output, or an
	// exit-zero run that produced an empty file.
	OutcomeFailure
)

// Classification combines the three independent success signals (exit code,
// stderr content, output-file validity) into one decision.
type Classification struct {
	Outcome Outcome
	// Detail is the last meaningful stderr line when Outcome is failure.
	Detail string
}

// Classify decides whether an invocation succeeded. Success requires exit
// code zero AND the declared output exists AND it has non-zero size. An
// exit-zero-but-empty-file run is a failure: the graph ran but mapped no
// output. Invocations without a declared output (detection passes) succeed
// on exit code alone.
func Classify(res *ExecutionResult, outputPath string) Classification {
	if res.ExitCode != 0 {
		return Classification{
			Outcome: OutcomeFailure,
			Detail:  LastDiagnosticLine(res.Stderr),
		}
	}
	if outputPath == "" {
		return Classification{Outcome: OutcomeSuccess}
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return Classification{
			Outcome: OutcomeFailure,
			Detail:  fmt.Sprintf("engine exited cleanly but produced no output at %s", outputPath),
		}
	}
	if info.Size() == 0 {
		// Remove the husk so callers never mistake it for a result.
		_ = os.Remove(outputPath)
		return Classification{
			Outcome: OutcomeFailure,
			Detail:  fmt.Sprintf("engine exited cleanly but output %s is empty", outputPath),
		}
	}
	return Classification{Outcome: OutcomeSuccess}
}

// LastDiagnosticLine extracts the last meaningful line from captured
// stderr, skipping the progress and statistics noise ffmpeg interleaves
// with real diagnostics.
func LastDiagnosticLine(stderr string) string {
	lines := strings.Split(stderr, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(strings.TrimRight(lines[i], "\r"))
		if line == "" || isProgressNoise(line) {
			continue
		}
		return line
	}
	return "no diagnostic output captured"
}

// isProgressNoise reports whether a stderr line is periodic progress or
// encoder statistics rather than a diagnostic.
func isProgressNoise(line string) bool {
	switch {
	case strings.HasPrefix(line, "frame="),
		strings.HasPrefix(line, "size="),
		strings.HasPrefix(line, "video:"),
		strings.HasPrefix(line, "Press [q]"):
		return true
	}
	// Encoder statistics such as "[libx264 @ 0x...] frame I:4 ..." follow a
	// successful encode; genuine encoder errors abort before printing them.
	if strings.HasPrefix(line, "[libx264") || strings.HasPrefix(line, "[libx265") {
		if strings.Contains(line, "frame ") || strings.Contains(line, "kb/s:") || strings.Contains(line, "mb ") {
			return true
		}
	}
	return false
}
