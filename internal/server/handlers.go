package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/misbahsy/video-audio-mcp/internal/edit"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	service   *edit.Service
	validator *validator.Validate
	logger    *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *edit.Service, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		service:   service,
		validator: validator.New(),
		logger:    logger,
	}
}

// Health handles GET /health requests.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	engine, err := h.service.HealthCheck(r.Context())
	if err != nil {
		h.logger.Warn("engine health check failed",
			slog.String("error", err.Error()),
		)
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Engine: engine})
}

// tool wraps one editing operation as an HTTP handler: decode, validate,
// run, and render the outcome as a ToolResponse. Operation failures are
// described in the result sentence with status 200; only transport-level
// problems (bad JSON, failed validation) use error status codes.
func tool[Req any](h *Handlers, op string, run func(ctx context.Context, req Req) (string, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Req
		// An empty body is allowed; tools with required fields reject it
		// through validation below.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			h.logger.Warn("failed to decode request body",
				slog.String("tool", op),
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_JSON")
			return
		}

		if err := h.validator.Struct(req); err != nil {
			h.logger.Warn("request validation failed",
				slog.String("tool", op),
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
			return
		}

		result, err := run(r.Context(), req)
		if err != nil {
			h.logger.Warn("tool reported an error",
				slog.String("tool", op),
				slog.String("error", err.Error()),
			)
			result = edit.Describe(op, err)
		}
		writeJSON(w, http.StatusOK, ToolResponse{Result: result})
	}
}

func (h *Handlers) healthCheck(ctx context.Context, _ struct{}) (string, error) {
	return h.service.HealthCheck(ctx)
}

func (h *Handlers) trim(ctx context.Context, req TrimRequest) (string, error) {
	return h.service.Trim(ctx, edit.TrimRequest{
		Input:  req.InputPath,
		Output: req.OutputPath,
		Start:  req.StartTime,
		End:    req.EndTime,
	})
}

func (h *Handlers) extractAudio(ctx context.Context, req ExtractAudioRequest) (string, error) {
	return h.service.ExtractAudio(ctx, edit.ExtractAudioRequest{
		Input:      req.InputPath,
		Output:     req.OutputPath,
		AudioCodec: req.AudioCodec,
	})
}

func (h *Handlers) convertVideoFormat(ctx context.Context, req ConvertVideoFormatRequest) (string, error) {
	return h.service.ConvertVideo(ctx, edit.ConvertVideoRequest{
		Input:  req.InputPath,
		Output: req.OutputPath,
		Format: req.Format,
	})
}

func (h *Handlers) convertVideoProperties(ctx context.Context, req ConvertVideoPropertiesRequest) (string, error) {
	return h.service.ConvertVideo(ctx, edit.ConvertVideoRequest{
		Input:        req.InputPath,
		Output:       req.OutputPath,
		Format:       req.Format,
		Resolution:   req.Resolution,
		VideoCodec:   req.VideoCodec,
		VideoBitrate: req.VideoBitrate,
		FrameRate:    req.FrameRate,
		AudioCodec:   req.AudioCodec,
		AudioBitrate: req.AudioBitrate,
		SampleRate:   req.SampleRate,
		Channels:     req.Channels,
	})
}

func (h *Handlers) convertAudioFormat(ctx context.Context, req ConvertAudioFormatRequest) (string, error) {
	return h.service.ConvertAudio(ctx, edit.ConvertAudioRequest{
		Input:  req.InputPath,
		Output: req.OutputPath,
		Format: req.Format,
	})
}

func (h *Handlers) convertAudioProperties(ctx context.Context, req ConvertAudioPropertiesRequest) (string, error) {
	return h.service.ConvertAudio(ctx, edit.ConvertAudioRequest{
		Input:      req.InputPath,
		Output:     req.OutputPath,
		Format:     req.Format,
		Codec:      req.Codec,
		Bitrate:    req.Bitrate,
		SampleRate: req.SampleRate,
		Channels:   req.Channels,
	})
}

// The single-property setters all ride the shared conversion assembler;
// every property left unset is stream-copied when possible.

func (h *Handlers) setVideoResolution(ctx context.Context, req SetVideoResolutionRequest) (string, error) {
	return h.service.ConvertVideo(ctx, edit.ConvertVideoRequest{
		Input:      req.InputPath,
		Output:     req.OutputPath,
		Resolution: req.Resolution,
	})
}

func (h *Handlers) setVideoCodec(ctx context.Context, req SetVideoCodecRequest) (string, error) {
	return h.service.ConvertVideo(ctx, edit.ConvertVideoRequest{
		Input:      req.InputPath,
		Output:     req.OutputPath,
		VideoCodec: req.Codec,
	})
}

func (h *Handlers) setVideoBitrate(ctx context.Context, req SetVideoBitrateRequest) (string, error) {
	return h.service.ConvertVideo(ctx, edit.ConvertVideoRequest{
		Input:        req.InputPath,
		Output:       req.OutputPath,
		VideoBitrate: req.Bitrate,
	})
}

func (h *Handlers) setVideoFrameRate(ctx context.Context, req SetVideoFrameRateRequest) (string, error) {
	return h.service.ConvertVideo(ctx, edit.ConvertVideoRequest{
		Input:     req.InputPath,
		Output:    req.OutputPath,
		FrameRate: req.FrameRate,
	})
}

func (h *Handlers) setAudioBitrate(ctx context.Context, req SetAudioBitrateRequest) (string, error) {
	return h.service.ConvertAudio(ctx, edit.ConvertAudioRequest{
		Input:   req.InputPath,
		Output:  req.OutputPath,
		Bitrate: req.Bitrate,
	})
}

func (h *Handlers) setAudioSampleRate(ctx context.Context, req SetAudioSampleRateRequest) (string, error) {
	return h.service.ConvertAudio(ctx, edit.ConvertAudioRequest{
		Input:      req.InputPath,
		Output:     req.OutputPath,
		SampleRate: req.SampleRate,
	})
}

func (h *Handlers) setAudioChannels(ctx context.Context, req SetAudioChannelsRequest) (string, error) {
	return h.service.ConvertAudio(ctx, edit.ConvertAudioRequest{
		Input:    req.InputPath,
		Output:   req.OutputPath,
		Channels: req.Channels,
	})
}

func (h *Handlers) setVideoAudioCodec(ctx context.Context, req SetVideoAudioCodecRequest) (string, error) {
	return h.service.ConvertVideo(ctx, edit.ConvertVideoRequest{
		Input:      req.InputPath,
		Output:     req.OutputPath,
		AudioCodec: req.Codec,
	})
}

func (h *Handlers) setVideoAudioBitrate(ctx context.Context, req SetVideoAudioBitrateRequest) (string, error) {
	return h.service.ConvertVideo(ctx, edit.ConvertVideoRequest{
		Input:        req.InputPath,
		Output:       req.OutputPath,
		AudioBitrate: req.Bitrate,
	})
}

func (h *Handlers) setVideoAudioSampleRate(ctx context.Context, req SetVideoAudioSampleRateRequest) (string, error) {
	return h.service.ConvertVideo(ctx, edit.ConvertVideoRequest{
		Input:      req.InputPath,
		Output:     req.OutputPath,
		SampleRate: req.SampleRate,
	})
}

func (h *Handlers) setVideoAudioChannels(ctx context.Context, req SetVideoAudioChannelsRequest) (string, error) {
	return h.service.ConvertVideo(ctx, edit.ConvertVideoRequest{
		Input:    req.InputPath,
		Output:   req.OutputPath,
		Channels: req.Channels,
	})
}

func (h *Handlers) changeAspectRatio(ctx context.Context, req ChangeAspectRatioRequest) (string, error) {
	return h.service.ChangeAspectRatio(ctx, edit.AspectRatioRequest{
		Input:        req.InputPath,
		Output:       req.OutputPath,
		AspectRatio:  req.AspectRatio,
		ResizeMode:   req.ResizeMode,
		PaddingColor: req.PaddingColor,
	})
}

func (h *Handlers) addSubtitles(ctx context.Context, req AddSubtitlesRequest) (string, error) {
	var style *edit.SubtitleStyle
	if req.Style != nil {
		style = &edit.SubtitleStyle{
			FontName:     req.Style.FontName,
			FontSize:     req.Style.FontSize,
			FontColor:    req.Style.FontColor,
			OutlineColor: req.Style.OutlineColor,
			OutlineWidth: req.Style.OutlineWidth,
			Shadow:       req.Style.Shadow,
			Alignment:    req.Style.Alignment,
			MarginV:      req.Style.MarginV,
			MarginL:      req.Style.MarginL,
			MarginR:      req.Style.MarginR,
		}
	}
	return h.service.AddSubtitles(ctx, edit.AddSubtitlesRequest{
		Input:        req.InputPath,
		SubtitleFile: req.SubtitlePath,
		Output:       req.OutputPath,
		Style:        style,
	})
}

func (h *Handlers) addTextOverlay(ctx context.Context, req AddTextOverlayRequest) (string, error) {
	elements := make([]edit.TextElement, len(req.Elements))
	for i, el := range req.Elements {
		elements[i] = edit.TextElement{
			Text:           el.Text,
			Start:          el.StartTime,
			End:            el.EndTime,
			FontSize:       el.FontSize,
			FontColor:      el.FontColor,
			X:              el.X,
			Y:              el.Y,
			Box:            el.Box,
			BoxColor:       el.BoxColor,
			BoxBorderWidth: el.BoxBorderWidth,
			FontFile:       el.FontFile,
		}
	}
	return h.service.AddTextOverlay(ctx, edit.TextOverlayRequest{
		Input:    req.InputPath,
		Output:   req.OutputPath,
		Elements: elements,
	})
}

func (h *Handlers) addImageOverlay(ctx context.Context, req AddImageOverlayRequest) (string, error) {
	return h.service.AddImageOverlay(ctx, edit.ImageOverlayRequest{
		Input:    req.InputPath,
		Image:    req.ImagePath,
		Output:   req.OutputPath,
		Position: req.Position,
		Opacity:  req.Opacity,
		Start:    req.StartTime,
		End:      req.EndTime,
		Width:    req.Width,
		Height:   req.Height,
	})
}

func (h *Handlers) addTransitions(ctx context.Context, req AddTransitionsRequest) (string, error) {
	return h.service.AddTransition(ctx, edit.TransitionRequest{
		Input:    req.InputPath,
		Output:   req.OutputPath,
		Type:     req.TransitionType,
		Duration: req.Duration,
	})
}

func (h *Handlers) concatenate(ctx context.Context, req ConcatenateRequest) (string, error) {
	return h.service.Concatenate(ctx, edit.ConcatRequest{
		Inputs:             req.InputPaths,
		Output:             req.OutputPath,
		TransitionEffect:   req.TransitionEffect,
		TransitionDuration: req.TransitionDuration,
	})
}

func (h *Handlers) addBRoll(ctx context.Context, req AddBRollRequest) (string, error) {
	clips := make([]edit.BRollClip, len(req.Clips))
	for i, c := range req.Clips {
		clips[i] = edit.BRollClip{
			Path:               c.ClipPath,
			InsertAt:           c.InsertAt,
			Duration:           c.Duration,
			Transition:         c.Transition,
			TransitionDuration: c.TransitionDuration,
		}
	}
	return h.service.AddBRoll(ctx, edit.BRollRequest{
		Main:   req.MainVideoPath,
		Output: req.OutputPath,
		Clips:  clips,
	})
}

func (h *Handlers) changeSpeed(ctx context.Context, req ChangeSpeedRequest) (string, error) {
	return h.service.ChangeSpeed(ctx, edit.SpeedRequest{
		Input:  req.InputPath,
		Output: req.OutputPath,
		Factor: req.SpeedFactor,
	})
}

func (h *Handlers) removeSilence(ctx context.Context, req RemoveSilenceRequest) (string, error) {
	return h.service.RemoveSilence(ctx, edit.RemoveSilenceRequest{
		Input:        req.InputPath,
		Output:       req.OutputPath,
		ThresholdDB:  req.ThresholdDB,
		MinSilenceMs: req.MinSilence,
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
