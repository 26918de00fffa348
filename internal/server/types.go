// Package server provides the HTTP server for the video editing API.
// It includes handlers, middleware, routes, and DTOs separated from domain types.
package server

// ToolResponse is the HTTP response for every tool invocation. Result is
// always a human-readable status sentence; operations that fail report the
// failure in the sentence rather than through the HTTP status code.
type ToolResponse struct {
	Result string `json:"result"`
}

// ErrorResponse is the standard error response format for transport-level
// failures (malformed JSON, validation errors, unknown routes).
type ErrorResponse struct {
	// Error is the human-readable error message.
	Error string `json:"error"`
	// Code is the error code for programmatic handling.
	Code string `json:"code"`
}

// HealthResponse is the HTTP response for the health check endpoint.
type HealthResponse struct {
	// Status is the health status of the service.
	Status string `json:"status"`
	// Engine identifies the engine binary version when reachable.
	Engine string `json:"engine,omitempty"`
}

// TrimRequest cuts a clip to a time window.
type TrimRequest struct {
	InputPath  string `json:"input_path" validate:"required"`
	OutputPath string `json:"output_path" validate:"required"`
	StartTime  string `json:"start_time" validate:"required"`
	EndTime    string `json:"end_time" validate:"required"`
}

// ExtractAudioRequest pulls the audio track out of a video file.
type ExtractAudioRequest struct {
	InputPath  string `json:"input_path" validate:"required"`
	OutputPath string `json:"output_path" validate:"required"`
	AudioCodec string `json:"audio_codec,omitempty"`
}

// ConvertVideoFormatRequest changes a video's container.
type ConvertVideoFormatRequest struct {
	InputPath  string `json:"input_path" validate:"required"`
	OutputPath string `json:"output_path" validate:"required"`
	Format     string `json:"format,omitempty"`
}

// ConvertVideoPropertiesRequest changes any combination of a video's
// container, resolution, codecs, bitrates, frame rate and audio properties.
type ConvertVideoPropertiesRequest struct {
	InputPath    string `json:"input_path" validate:"required"`
	OutputPath   string `json:"output_path" validate:"required"`
	Format       string `json:"format,omitempty"`
	Resolution   string `json:"resolution,omitempty"`
	VideoCodec   string `json:"video_codec,omitempty"`
	VideoBitrate string `json:"video_bitrate,omitempty"`
	FrameRate    int    `json:"frame_rate,omitempty" validate:"omitempty,min=1"`
	AudioCodec   string `json:"audio_codec,omitempty"`
	AudioBitrate string `json:"audio_bitrate,omitempty"`
	SampleRate   int    `json:"sample_rate,omitempty" validate:"omitempty,min=1"`
	Channels     int    `json:"channels,omitempty" validate:"omitempty,min=1"`
}

// ConvertAudioFormatRequest changes an audio file's container.
type ConvertAudioFormatRequest struct {
	InputPath  string `json:"input_path" validate:"required"`
	OutputPath string `json:"output_path" validate:"required"`
	Format     string `json:"format,omitempty"`
}

// ConvertAudioPropertiesRequest changes an audio file's container, codec,
// bitrate, sample rate and channel count in one call.
type ConvertAudioPropertiesRequest struct {
	InputPath  string `json:"input_path" validate:"required"`
	OutputPath string `json:"output_path" validate:"required"`
	Format     string `json:"format,omitempty"`
	Codec      string `json:"codec,omitempty"`
	Bitrate    string `json:"bitrate,omitempty"`
	SampleRate int    `json:"sample_rate,omitempty" validate:"omitempty,min=1"`
	Channels   int    `json:"channels,omitempty" validate:"omitempty,min=1"`
}

// SetVideoResolutionRequest scales a video to a resolution.
type SetVideoResolutionRequest struct {
	InputPath  string `json:"input_path" validate:"required"`
	OutputPath string `json:"output_path" validate:"required"`
	Resolution string `json:"resolution" validate:"required"`
}

// SetVideoCodecRequest re-encodes the video stream with a given codec.
type SetVideoCodecRequest struct {
	InputPath  string `json:"input_path" validate:"required"`
	OutputPath string `json:"output_path" validate:"required"`
	Codec      string `json:"codec" validate:"required"`
}

// SetVideoBitrateRequest re-encodes the video stream at a given bitrate.
type SetVideoBitrateRequest struct {
	InputPath  string `json:"input_path" validate:"required"`
	OutputPath string `json:"output_path" validate:"required"`
	Bitrate    string `json:"bitrate" validate:"required"`
}

// SetVideoFrameRateRequest changes a video's frame rate.
type SetVideoFrameRateRequest struct {
	InputPath  string `json:"input_path" validate:"required"`
	OutputPath string `json:"output_path" validate:"required"`
	FrameRate  int    `json:"frame_rate" validate:"required,min=1"`
}

// SetAudioBitrateRequest re-encodes an audio file at a given bitrate.
type SetAudioBitrateRequest struct {
	InputPath  string `json:"input_path" validate:"required"`
	OutputPath string `json:"output_path" validate:"required"`
	Bitrate    string `json:"bitrate" validate:"required"`
}

// SetAudioSampleRateRequest resamples an audio file.
type SetAudioSampleRateRequest struct {
	InputPath  string `json:"input_path" validate:"required"`
	OutputPath string `json:"output_path" validate:"required"`
	SampleRate int    `json:"sample_rate" validate:"required,min=1"`
}

// SetAudioChannelsRequest remixes an audio file's channel count.
type SetAudioChannelsRequest struct {
	InputPath  string `json:"input_path" validate:"required"`
	OutputPath string `json:"output_path" validate:"required"`
	Channels   int    `json:"channels" validate:"required,min=1"`
}

// SetVideoAudioCodecRequest re-encodes the audio track of a video; the
// video stream is copied.
type SetVideoAudioCodecRequest struct {
	InputPath  string `json:"input_path" validate:"required"`
	OutputPath string `json:"output_path" validate:"required"`
	Codec      string `json:"codec" validate:"required"`
}

// SetVideoAudioBitrateRequest re-encodes the audio track of a video at a
// given bitrate.
type SetVideoAudioBitrateRequest struct {
	InputPath  string `json:"input_path" validate:"required"`
	OutputPath string `json:"output_path" validate:"required"`
	Bitrate    string `json:"bitrate" validate:"required"`
}

// SetVideoAudioSampleRateRequest resamples the audio track of a video.
type SetVideoAudioSampleRateRequest struct {
	InputPath  string `json:"input_path" validate:"required"`
	OutputPath string `json:"output_path" validate:"required"`
	SampleRate int    `json:"sample_rate" validate:"required,min=1"`
}

// SetVideoAudioChannelsRequest remixes the audio track of a video.
type SetVideoAudioChannelsRequest struct {
	InputPath  string `json:"input_path" validate:"required"`
	OutputPath string `json:"output_path" validate:"required"`
	Channels   int    `json:"channels" validate:"required,min=1"`
}

// ChangeAspectRatioRequest reshapes a video to a target aspect ratio.
type ChangeAspectRatioRequest struct {
	InputPath    string `json:"input_path" validate:"required"`
	OutputPath   string `json:"output_path" validate:"required"`
	AspectRatio  string `json:"aspect_ratio" validate:"required"`
	ResizeMode   string `json:"resize_mode,omitempty" validate:"omitempty,oneof=pad crop"`
	PaddingColor string `json:"padding_color,omitempty"`
}

// SubtitleStyle carries optional styling for burned-in subtitles.
type SubtitleStyle struct {
	FontName     string `json:"font_name,omitempty"`
	FontSize     int    `json:"font_size,omitempty" validate:"omitempty,min=1"`
	FontColor    string `json:"font_color,omitempty"`
	OutlineColor string `json:"outline_color,omitempty"`
	OutlineWidth int    `json:"outline_width,omitempty"`
	Shadow       int    `json:"shadow,omitempty"`
	Alignment    int    `json:"alignment,omitempty" validate:"omitempty,min=1,max=9"`
	MarginV      int    `json:"margin_v,omitempty"`
	MarginL      int    `json:"margin_l,omitempty"`
	MarginR      int    `json:"margin_r,omitempty"`
}

// AddSubtitlesRequest burns a subtitle file into the video frames.
type AddSubtitlesRequest struct {
	InputPath    string         `json:"input_path" validate:"required"`
	SubtitlePath string         `json:"subtitle_path" validate:"required"`
	OutputPath   string         `json:"output_path" validate:"required"`
	Style        *SubtitleStyle `json:"style,omitempty"`
}

// TextElement is one timed text overlay.
type TextElement struct {
	Text           string `json:"text" validate:"required"`
	StartTime      string `json:"start_time,omitempty"`
	EndTime        string `json:"end_time,omitempty"`
	FontSize       int    `json:"font_size,omitempty" validate:"omitempty,min=1"`
	FontColor      string `json:"font_color,omitempty"`
	X              string `json:"x,omitempty"`
	Y              string `json:"y,omitempty"`
	Box            bool   `json:"box,omitempty"`
	BoxColor       string `json:"box_color,omitempty"`
	BoxBorderWidth int    `json:"box_border_width,omitempty"`
	FontFile       string `json:"font_file,omitempty"`
}

// AddTextOverlayRequest draws one or more text elements over a video.
type AddTextOverlayRequest struct {
	InputPath  string        `json:"input_path" validate:"required"`
	OutputPath string        `json:"output_path" validate:"required"`
	Elements   []TextElement `json:"elements" validate:"required,min=1,dive"`
}

// AddImageOverlayRequest composites an image over a video.
type AddImageOverlayRequest struct {
	InputPath  string   `json:"input_path" validate:"required"`
	ImagePath  string   `json:"image_path" validate:"required"`
	OutputPath string   `json:"output_path" validate:"required"`
	Position   string   `json:"position,omitempty"`
	Opacity    *float64 `json:"opacity,omitempty" validate:"omitempty,min=0,max=1"`
	StartTime  string   `json:"start_time,omitempty"`
	EndTime    string   `json:"end_time,omitempty"`
	Width      string   `json:"width,omitempty"`
	Height     string   `json:"height,omitempty"`
}

// AddTransitionsRequest fades a clip in, out or both.
type AddTransitionsRequest struct {
	InputPath      string  `json:"input_path" validate:"required"`
	OutputPath     string  `json:"output_path" validate:"required"`
	TransitionType string  `json:"transition_type,omitempty" validate:"omitempty,oneof=fade_in fade_out fade_in_out"`
	Duration       float64 `json:"duration,omitempty" validate:"omitempty,gt=0"`
}

// ConcatenateRequest joins clips end to end.
type ConcatenateRequest struct {
	InputPaths         []string `json:"input_paths" validate:"required,min=1,dive,required"`
	OutputPath         string   `json:"output_path" validate:"required"`
	TransitionEffect   string   `json:"transition_effect,omitempty"`
	TransitionDuration float64  `json:"transition_duration,omitempty" validate:"omitempty,gt=0"`
}

// BRollClip is one cut-in for add_b_roll.
type BRollClip struct {
	ClipPath           string  `json:"clip_path" validate:"required"`
	InsertAt           string  `json:"insert_at" validate:"required"`
	Duration           string  `json:"duration,omitempty"`
	Transition         string  `json:"transition,omitempty" validate:"omitempty,oneof=fade none"`
	TransitionDuration float64 `json:"transition_duration,omitempty" validate:"omitempty,gt=0"`
}

// AddBRollRequest splices secondary clips into a main video.
type AddBRollRequest struct {
	MainVideoPath string      `json:"main_video_path" validate:"required"`
	OutputPath    string      `json:"output_path" validate:"required"`
	Clips         []BRollClip `json:"clips" validate:"required,min=1,dive"`
}

// ChangeSpeedRequest changes playback speed.
type ChangeSpeedRequest struct {
	InputPath   string  `json:"input_path" validate:"required"`
	OutputPath  string  `json:"output_path" validate:"required"`
	SpeedFactor float64 `json:"speed_factor" validate:"required,gt=0"`
}

// RemoveSilenceRequest drops silent passages from a file.
type RemoveSilenceRequest struct {
	InputPath   string  `json:"input_path" validate:"required"`
	OutputPath  string  `json:"output_path" validate:"required"`
	ThresholdDB float64 `json:"threshold_db,omitempty"`
	MinSilence  int     `json:"min_silence_ms,omitempty" validate:"omitempty,min=1"`
}
