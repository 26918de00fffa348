package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misbahsy/video-audio-mcp/internal/ffmpeg"
)

func planTestService() *Service {
	return &Service{defaults: DefaultSettings()}
}

func TestParseResolution(t *testing.T) {
	w, h, err := parseResolution("1920x1080")
	require.NoError(t, err)
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)

	w, h, err = parseResolution("720")
	require.NoError(t, err)
	assert.Equal(t, 0, w)
	assert.Equal(t, 720, h)

	for _, in := range []string{"", "axb", "1920x", "x1080", "-1x720"} {
		_, _, err := parseResolution(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestScaleFilter(t *testing.T) {
	assert.Equal(t, "scale=1920:1080", scaleFilter("1920x1080"))
	assert.Equal(t, "scale=-2:720", scaleFilter("720"))
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"128k", 128000},
		{"2500K", 2500000},
		{"2.5M", 2500000},
		{"96000", 96000},
	}
	for _, tt := range tests {
		got, err := parseRate(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
	_, err := parseRate("fast")
	assert.Error(t, err)
}

func TestPlanVideoStreamCopiesWhenEverythingMatches(t *testing.T) {
	s := planTestService()
	info := &ffmpeg.MediaInfo{
		HasVideo: true, VideoCodec: "h264",
		Width: 1920, Height: 1080, FrameRate: 29.97,
	}

	plan, err := s.planVideoStream(ConvertVideoRequest{
		Resolution: "1920x1080",
		VideoCodec: "libx264",
		FrameRate:  30,
	}, info)
	require.NoError(t, err)
	assert.True(t, plan.copyStream)
	assert.Equal(t, []string{"-c:v", "copy"}, plan.args)
}

func TestPlanVideoStreamReencodesOnMismatch(t *testing.T) {
	s := planTestService()
	info := &ffmpeg.MediaInfo{
		HasVideo: true, VideoCodec: "h264",
		Width: 1920, Height: 1080, FrameRate: 30,
	}

	plan, err := s.planVideoStream(ConvertVideoRequest{Resolution: "1280x720"}, info)
	require.NoError(t, err)
	assert.False(t, plan.copyStream)
	assert.Contains(t, plan.args, "-vf")
	assert.Contains(t, plan.args, "scale=1280:720")
	// Default h264 encode carries quality settings.
	assert.Contains(t, plan.args, "libx264")
	assert.Contains(t, plan.args, "-crf")
	assert.Contains(t, plan.args, "yuv420p")
}

func TestPlanVideoStreamNoVideo(t *testing.T) {
	s := planTestService()
	plan, err := s.planVideoStream(ConvertVideoRequest{VideoCodec: "libx264"}, &ffmpeg.MediaInfo{})
	require.NoError(t, err)
	assert.False(t, plan.copyStream)
	assert.Empty(t, plan.args)
}

func TestPlanAudioStream(t *testing.T) {
	s := planTestService()
	info := &ffmpeg.MediaInfo{
		HasAudio: true, AudioCodec: "aac",
		SampleRate: 48000, Channels: 2,
	}

	plan := s.planAudioStream(videoAudioParams{codec: "aac", sampleRate: 48000}, info)
	assert.True(t, plan.copyStream)

	plan = s.planAudioStream(videoAudioParams{codec: "libmp3lame"}, info)
	assert.False(t, plan.copyStream)
	assert.Equal(t, []string{"-c:a", "libmp3lame", "-b:a", "128k"}, plan.args)

	plan = s.planAudioStream(videoAudioParams{sampleRate: 44100, channels: 1, bitrate: "96k"}, info)
	assert.False(t, plan.copyStream)
	assert.Equal(t, []string{"-c:a", "aac", "-b:a", "96k", "-ar", "44100", "-ac", "1"}, plan.args)
}

func TestCheckTargetRejectsImpossiblePairing(t *testing.T) {
	s := planTestService()
	info := &ffmpeg.MediaInfo{HasVideo: true, HasAudio: true, VideoCodec: "h264", AudioCodec: "aac"}

	video := streamPlan{copyStream: true, args: []string{"-c:v", "copy"}}
	audio := streamPlan{copyStream: true, args: []string{"-c:a", "copy"}}

	// Copied h264 cannot land in webm.
	err := s.checkTarget("webm", "out.webm", video, audio, info)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedCombination)

	// Container inferred from the output extension.
	err = s.checkTarget("", "out.webm", video, audio, info)
	require.Error(t, err)

	assert.NoError(t, s.checkTarget("mp4", "out.mp4", video, audio, info))
}

func TestPlannedCodecFamily(t *testing.T) {
	assert.Equal(t, "h264", plannedCodecFamily([]string{"-c:v", "libx264", "-crf", "23"}, "-c:v"))
	assert.Equal(t, "", plannedCodecFamily([]string{"-b:v", "1M"}, "-c:v"))
}
