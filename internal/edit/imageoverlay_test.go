package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlayPosition(t *testing.T) {
	x, y, err := overlayPosition("")
	require.NoError(t, err)
	assert.Equal(t, "main_w-overlay_w-10", x)
	assert.Equal(t, "10", y)

	x, y, err = overlayPosition("bottom_left")
	require.NoError(t, err)
	assert.Equal(t, "10", x)
	assert.Equal(t, "main_h-overlay_h-10", y)

	x, y, err = overlayPosition("center")
	require.NoError(t, err)
	assert.Equal(t, "(main_w-overlay_w)/2", x)
	assert.Equal(t, "(main_h-overlay_h)/2", y)

	// Explicit coordinates.
	x, y, err = overlayPosition("40:60")
	require.NoError(t, err)
	assert.Equal(t, "40", x)
	assert.Equal(t, "60", y)

	// The keyed form loses its prefixes so the overlay filter never
	// sees x=x=10.
	x, y, err = overlayPosition("x=10:y=20")
	require.NoError(t, err)
	assert.Equal(t, "10", x)
	assert.Equal(t, "20", y)

	_, _, err = overlayPosition("x=:y=20")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, _, err = overlayPosition("middle_left")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
