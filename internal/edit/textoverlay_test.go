package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misbahsy/video-audio-mcp/internal/filtergraph"
)

func TestDrawtextNodeDefaults(t *testing.T) {
	node, err := drawtextNode(TextElement{Text: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, "drawtext", node.Filter)

	params := paramMap(node)
	assert.Equal(t, "'Hello'", params["text"])
	assert.Equal(t, "24", params["fontsize"])
	assert.Equal(t, "white", params["fontcolor"])
	assert.Equal(t, "(w-text_w)/2", params["x"])
	assert.Equal(t, "h-text_h-10", params["y"])
	assert.NotContains(t, params, "enable")
	assert.NotContains(t, params, "box")
}

func TestDrawtextNodeEscapesText(t *testing.T) {
	node, err := drawtextNode(TextElement{Text: "It's 5:00, go"})
	require.NoError(t, err)
	assert.Equal(t, `'It\'s 5\:00\, go'`, paramMap(node)["text"])
}

func TestDrawtextNodeTimeWindow(t *testing.T) {
	node, err := drawtextNode(TextElement{Text: "x", Start: "1", End: "00:05"})
	require.NoError(t, err)
	assert.Equal(t, `between(t\,1.000\,5.000)`, paramMap(node)["enable"])

	_, err = drawtextNode(TextElement{Text: "x", Start: "5", End: "5"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestDrawtextNodeBox(t *testing.T) {
	node, err := drawtextNode(TextElement{Text: "x", Box: true, BoxBorderWidth: 5})
	require.NoError(t, err)
	params := paramMap(node)
	assert.Equal(t, "1", params["box"])
	assert.Equal(t, "black@0.5", params["boxcolor"])
	assert.Equal(t, "5", params["boxborderw"])
}

func TestDrawtextNodeRejectsEmptyText(t *testing.T) {
	_, err := drawtextNode(TextElement{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTextPosition(t *testing.T) {
	x, y := textPosition("left", "top")
	assert.Equal(t, "10", x)
	assert.Equal(t, "10", y)

	x, y = textPosition("right", "center")
	assert.Equal(t, "w-text_w-10", x)
	assert.Equal(t, "(h-text_h)/2", y)

	// Explicit expressions pass through.
	x, y = textPosition("w/4", "100")
	assert.Equal(t, "w/4", x)
	assert.Equal(t, "100", y)
}

func TestOverlayWindowOpenEnd(t *testing.T) {
	start, end, err := overlayWindow("2", "")
	require.NoError(t, err)
	assert.Equal(t, 2.0, start)
	assert.Greater(t, end, 1e8)
}

func paramMap(node filtergraph.Node) map[string]string {
	m := make(map[string]string, len(node.Params))
	for _, p := range node.Params {
		m[p.Key] = p.Value
	}
	return m
}
