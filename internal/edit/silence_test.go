package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const silencedetectOutput = `Input #0, mov,mp4,m4a,3gp,3g2,mj2, from 'in.mp4':
  Duration: 00:00:10.00, start: 0.000000, bitrate: 1000 kb/s
[silencedetect @ 0x5555] silence_start: 2.5
[silencedetect @ 0x5555] silence_end: 4.0 | silence_duration: 1.5
[silencedetect @ 0x5555] silence_start: 7.25
[silencedetect @ 0x5555] silence_end: 8.0 | silence_duration: 0.75
size=N/A time=00:00:10.00 bitrate=N/A speed= 312x
`

func TestParseSilenceSpans(t *testing.T) {
	spans := parseSilenceSpans(silencedetectOutput)
	require.Len(t, spans, 2)
	assert.InDelta(t, 2.5, spans[0].start, 1e-9)
	assert.InDelta(t, 4.0, spans[0].end, 1e-9)
	assert.InDelta(t, 7.25, spans[1].start, 1e-9)
	assert.InDelta(t, 8.0, spans[1].end, 1e-9)
}

func TestParseSilenceSpansUnterminated(t *testing.T) {
	spans := parseSilenceSpans("[silencedetect @ 0x1] silence_start: 9.0\n")
	require.Len(t, spans, 1)
	assert.InDelta(t, 9.0, spans[0].start, 1e-9)
	assert.Equal(t, -1.0, spans[0].end)
}

func TestParseSilenceSpansNoSilence(t *testing.T) {
	assert.Empty(t, parseSilenceSpans("frame=  100 fps=0.0 q=-1.0\n"))
}

func TestKeepSpans(t *testing.T) {
	silent := []silenceSpan{{start: 2.5, end: 4}, {start: 7.25, end: 8}}
	keep := keepSpans(silent, 10)
	require.Len(t, keep, 3)
	assert.Equal(t, silenceSpan{start: 0, end: 2.5}, keep[0])
	assert.Equal(t, silenceSpan{start: 4, end: 7.25}, keep[1])
	assert.Equal(t, silenceSpan{start: 8, end: 10}, keep[2])
}

func TestKeepSpansSilenceToEOF(t *testing.T) {
	keep := keepSpans([]silenceSpan{{start: 6, end: -1}}, 10)
	require.Len(t, keep, 1)
	assert.Equal(t, silenceSpan{start: 0, end: 6}, keep[0])
}

func TestKeepSpansAllSilent(t *testing.T) {
	assert.Empty(t, keepSpans([]silenceSpan{{start: 0, end: -1}}, 10))
}

func TestSelectExpr(t *testing.T) {
	expr := selectExpr([]silenceSpan{{start: 0, end: 2.5}, {start: 4, end: 10}})
	assert.Equal(t, "between(t,0.000,2.500)+between(t,4.000,10.000)", expr)
}
