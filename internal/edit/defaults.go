package edit

// Defaults is the explicit per-service configuration record handed to the
// assembler. Operations resolve their encoding defaults from here instead
// of process-wide mutable state, so concurrent requests cannot observe each
// other's settings.
type Defaults struct {
	// VideoCodec is the encoder used when a video stream must be
	// re-encoded and the request names no codec.
	VideoCodec string
	// AudioCodec is the fallback audio encoder.
	AudioCodec string
	// Preset is the x264/x265 speed preset.
	Preset string
	// CRF is the constant-rate-factor quality used when no bitrate is
	// requested.
	CRF int
	// AudioBitrate is used when re-encoding audio with no requested rate.
	AudioBitrate string
	// PixelFormat keeps re-encoded video broadly playable.
	PixelFormat string
	// ExtractAudioCodec is the default codec for bare audio extraction.
	ExtractAudioCodec string
}

// DefaultSettings returns the stock encoding defaults.
func DefaultSettings() Defaults {
	return Defaults{
		VideoCodec:        "libx264",
		AudioCodec:        "aac",
		Preset:            "fast",
		CRF:               23,
		AudioBitrate:      "128k",
		PixelFormat:       "yuv420p",
		ExtractAudioCodec: "mp3",
	}
}
