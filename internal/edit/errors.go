// Package edit translates high-level editing requests into engine
// invocations: it validates preconditions, builds filter graphs, assembles
// argument lists, runs the engine and classifies the outcome.
package edit

import (
	"errors"
	"fmt"
)

// Validation-time errors. These are raised locally, before any engine
// subprocess is spawned.
var (
	// ErrMissingInput is returned when an input path does not exist.
	ErrMissingInput = errors.New("input file not found")
	// ErrUnwritableOutput is returned when the output directory cannot be
	// created or written.
	ErrUnwritableOutput = errors.New("output directory is not writable")
	// ErrUnsupportedCombination is returned when a requested codec/format
	// pairing cannot work, before the engine is asked to try.
	ErrUnsupportedCombination = errors.New("unsupported codec/format combination")
	// ErrInvalidTimeRange is returned for malformed or impossible time
	// windows (start >= end, insertion beyond the clip, transitions longer
	// than the first clip).
	ErrInvalidTimeRange = errors.New("invalid time range")
	// ErrInvalidArgument is returned for malformed operation parameters
	// that are not time ranges (aspect ratios, positions, speed factors).
	ErrInvalidArgument = errors.New("invalid argument")
)

// EngineExecutionError reports an engine run that completed but failed:
// non-zero exit, missing output, or an empty output file. Detail carries
// the last meaningful diagnostic line; Stderr the full capture, used only
// to decide whether a stream-copy fast path should be retried as a
// re-encode.
type EngineExecutionError struct {
	Detail string
	Stderr string
}

func (e *EngineExecutionError) Error() string {
	return fmt.Sprintf("engine execution failed: %s", e.Detail)
}

// PhaseError wraps a failure in one phase of a multi-phase operation so the
// caller-facing status can report which phase failed.
type PhaseError struct {
	Phase string
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }
