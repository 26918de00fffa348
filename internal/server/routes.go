package server

import (
	"log/slog"
	"net/http"
)

// Config contains server configuration options.
type Config struct {
	// AllowedOrigins is the list of allowed CORS origins.
	AllowedOrigins []string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		AllowedOrigins: []string{"*"},
	}
}

// NewRouter creates a new HTTP router with all routes configured.
// It uses Go 1.22+ ServeMux with method-based routing: one POST route per
// editing tool plus the health probe.
func NewRouter(h *Handlers, logger *slog.Logger, cfg Config) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health)

	mux.HandleFunc("POST /tools/health_check", tool(h, "health check", h.healthCheck))
	mux.HandleFunc("POST /tools/trim", tool(h, "trim video", h.trim))
	mux.HandleFunc("POST /tools/extract_audio", tool(h, "extract audio", h.extractAudio))

	mux.HandleFunc("POST /tools/convert_video_format", tool(h, "convert video format", h.convertVideoFormat))
	mux.HandleFunc("POST /tools/convert_video_properties", tool(h, "convert video properties", h.convertVideoProperties))
	mux.HandleFunc("POST /tools/convert_audio_format", tool(h, "convert audio format", h.convertAudioFormat))
	mux.HandleFunc("POST /tools/convert_audio_properties", tool(h, "convert audio properties", h.convertAudioProperties))

	mux.HandleFunc("POST /tools/set_video_resolution", tool(h, "set video resolution", h.setVideoResolution))
	mux.HandleFunc("POST /tools/set_video_codec", tool(h, "set video codec", h.setVideoCodec))
	mux.HandleFunc("POST /tools/set_video_bitrate", tool(h, "set video bitrate", h.setVideoBitrate))
	mux.HandleFunc("POST /tools/set_video_frame_rate", tool(h, "set video frame rate", h.setVideoFrameRate))

	mux.HandleFunc("POST /tools/set_audio_bitrate", tool(h, "set audio bitrate", h.setAudioBitrate))
	mux.HandleFunc("POST /tools/set_audio_sample_rate", tool(h, "set audio sample rate", h.setAudioSampleRate))
	mux.HandleFunc("POST /tools/set_audio_channels", tool(h, "set audio channels", h.setAudioChannels))

	mux.HandleFunc("POST /tools/set_video_audio_codec", tool(h, "set video audio codec", h.setVideoAudioCodec))
	mux.HandleFunc("POST /tools/set_video_audio_bitrate", tool(h, "set video audio bitrate", h.setVideoAudioBitrate))
	mux.HandleFunc("POST /tools/set_video_audio_sample_rate", tool(h, "set video audio sample rate", h.setVideoAudioSampleRate))
	mux.HandleFunc("POST /tools/set_video_audio_channels", tool(h, "set video audio channels", h.setVideoAudioChannels))

	mux.HandleFunc("POST /tools/change_aspect_ratio", tool(h, "change aspect ratio", h.changeAspectRatio))
	mux.HandleFunc("POST /tools/add_subtitles", tool(h, "add subtitles", h.addSubtitles))
	mux.HandleFunc("POST /tools/add_text_overlay", tool(h, "add text overlay", h.addTextOverlay))
	mux.HandleFunc("POST /tools/add_image_overlay", tool(h, "add image overlay", h.addImageOverlay))
	mux.HandleFunc("POST /tools/add_transitions", tool(h, "add transitions", h.addTransitions))
	mux.HandleFunc("POST /tools/concatenate", tool(h, "concatenate videos", h.concatenate))
	mux.HandleFunc("POST /tools/add_b_roll", tool(h, "add b-roll", h.addBRoll))
	mux.HandleFunc("POST /tools/change_speed", tool(h, "change video speed", h.changeSpeed))
	mux.HandleFunc("POST /tools/remove_silence", tool(h, "remove silence", h.removeSilence))

	// Apply middleware chain
	chain := ChainMiddleware(
		RecoveryMiddleware(logger),
		LoggingMiddleware(logger),
		CORSMiddleware(cfg.AllowedOrigins),
	)

	return chain(mux)
}
