package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForceStyle(t *testing.T) {
	assert.Empty(t, forceStyle(nil))
	assert.Empty(t, forceStyle(&SubtitleStyle{}))

	got := forceStyle(&SubtitleStyle{
		FontName:  "Arial",
		FontSize:  24,
		FontColor: "#FFCC00",
		Alignment: 2,
		MarginV:   20,
	})
	assert.Equal(t, "FontName=Arial,Fontsize=24,PrimaryColour=&H00CCFF&,Alignment=2,MarginV=20", got)
}

func TestAssColor(t *testing.T) {
	// libass wants &HBBGGRR&.
	assert.Equal(t, "&H0000FF&", assColor("#ff0000"))
	assert.Equal(t, "&HFF0000&", assColor("#0000FF"))
	// Named colors and preformatted values pass through.
	assert.Equal(t, "white", assColor("white"))
	assert.Equal(t, "&H00FFFF&", assColor("&H00FFFF&"))
}
