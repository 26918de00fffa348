package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAspectRatio(t *testing.T) {
	n, d, err := parseAspectRatio("16:9")
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	assert.Equal(t, 9, d)

	n, d, err = parseAspectRatio(" 4:3 ")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 3, d)

	for _, in := range []string{"", "16", "16/9", "0:9", "16:-9", "a:b"} {
		_, _, err := parseAspectRatio(in)
		require.Error(t, err, "input %q", in)
		assert.ErrorIs(t, err, ErrInvalidArgument, "input %q", in)
	}
}

func TestEvenDim(t *testing.T) {
	assert.Equal(t, 1920, evenDim(1920))
	assert.Equal(t, 1920, evenDim(1921))
	assert.Equal(t, 0, evenDim(1))
}
