package edit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/misbahsy/video-audio-mcp/internal/ffmpeg"
)

func TestDescribeValidationErrors(t *testing.T) {
	err := fmt.Errorf("%w: /tmp/missing.mp4", ErrMissingInput)
	got := Describe("trim video", err)
	assert.Equal(t, "Error: cannot trim video: input file not found: /tmp/missing.mp4", got)

	err = fmt.Errorf("%w: start 5 is not before end 5", ErrInvalidTimeRange)
	assert.Contains(t, Describe("trim video", err), "Error: cannot trim video:")
}

func TestDescribeEnvironmentErrors(t *testing.T) {
	got := Describe("convert video", ffmpeg.ErrEngineNotFound)
	assert.Contains(t, got, "Error: convert video aborted:")

	got = Describe("convert video", fmt.Errorf("run: %w", ffmpeg.ErrEngineTimeout))
	assert.Contains(t, got, "aborted")
}

func TestDescribeExecutionErrors(t *testing.T) {
	execErr := &EngineExecutionError{Detail: "Invalid data found when processing input"}
	got := Describe("extract audio", execErr)
	assert.Equal(t, "Error: extract audio failed: engine execution failed: Invalid data found when processing input", got)
}

func TestDescribePhaseErrors(t *testing.T) {
	inner := &EngineExecutionError{Detail: "width not divisible by 2"}
	err := &PhaseError{Phase: "normalize", Err: inner}
	got := Describe("concatenate videos", err)
	assert.Contains(t, got, "normalize failed")

	// Validation errors stay classifiable through the phase wrapper.
	wrapped := &PhaseError{Phase: "segment", Err: fmt.Errorf("%w: oops", ErrInvalidTimeRange)}
	assert.True(t, errors.Is(wrapped, ErrInvalidTimeRange))
	assert.Contains(t, Describe("add b-roll", wrapped), "Error: cannot add b-roll:")
}

func TestAtempoChain(t *testing.T) {
	assert.Equal(t, []float64{1.5}, atempoChain(1.5))

	chain := atempoChain(4)
	assert.Equal(t, []float64{2, 2}, chain)

	chain = atempoChain(0.2)
	// 0.2 = 0.5 * 0.4 is out of range, so 0.5 * 0.5 * 0.8.
	assert.Equal(t, []float64{0.5, 0.5}, chain[:2])
	assert.InDelta(t, 0.8, chain[2], 1e-9)

	for _, f := range atempoChain(10) {
		assert.GreaterOrEqual(t, f, atempoMin)
		assert.LessOrEqual(t, f, atempoMax)
	}
}
