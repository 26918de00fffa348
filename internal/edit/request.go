package edit

// Each request type is one EditRequest variant: a fixed-shape record with
// optional fields defaulted at construction, mapping to exactly one engine
// invocation (or one two-phase invocation for Concatenate and AddBRoll).
// Requests are not mutated by the service.

// TrimRequest cuts a clip to [Start, End).
type TrimRequest struct {
	Input  string
	Output string
	Start  string // seconds or HH:MM:SS
	End    string
}

// ExtractAudioRequest pulls the audio track out of a video file.
type ExtractAudioRequest struct {
	Input      string
	Output     string
	AudioCodec string // defaults to "mp3"
}

// ConvertVideoRequest changes any combination of container, resolution,
// codecs, bitrates and frame rate. Zero-valued fields mean "leave alone";
// the assembler stream-copies any stream whose requested properties all
// match the source.
type ConvertVideoRequest struct {
	Input        string
	Output       string
	Format       string // target container, e.g. "mp4"
	Resolution   string // "1920x1080" or "720" (height, width follows)
	VideoCodec   string
	VideoBitrate string // e.g. "2500k"
	FrameRate    int
	AudioCodec   string
	AudioBitrate string
	SampleRate   int
	Channels     int
}

// ConvertAudioRequest changes an audio file's container and properties.
type ConvertAudioRequest struct {
	Input      string
	Output     string
	Format     string
	Codec      string
	Bitrate    string
	SampleRate int
	Channels   int
}

// AspectRatioRequest reshapes a video to a target aspect ratio by padding
// or cropping.
type AspectRatioRequest struct {
	Input        string
	Output       string
	AspectRatio  string // "16:9"
	ResizeMode   string // "pad" or "crop", defaults to "pad"
	PaddingColor string // defaults to "black"
}

// SubtitleStyle carries optional ASS force_style parameters for burned-in
// subtitles.
type SubtitleStyle struct {
	FontName     string
	FontSize     int
	FontColor    string
	OutlineColor string
	OutlineWidth int
	Shadow       int
	Alignment    int
	MarginV      int
	MarginL      int
	MarginR      int
}

// AddSubtitlesRequest burns an SRT file onto a video.
type AddSubtitlesRequest struct {
	Input        string
	SubtitleFile string
	Output       string
	Style        *SubtitleStyle
}

// TextElement is one typed text overlay: content, a time window, and
// styling with defaults applied at the builder boundary.
type TextElement struct {
	Text  string
	Start string
	End   string
	// FontSize defaults to 24, FontColor to "white".
	FontSize  int
	FontColor string
	// X and Y accept "center", "left", "right", "top", "bottom" or a
	// numeric/expression value passed through literally. X defaults to
	// "center", Y to "bottom".
	X string
	Y string
	// Box draws a background box behind the text.
	Box            bool
	BoxColor       string // defaults to "black@0.5"
	BoxBorderWidth int
	FontFile       string
}

// TextOverlayRequest draws one or more text elements over a video.
type TextOverlayRequest struct {
	Input    string
	Output   string
	Elements []TextElement
}

// ImageOverlayRequest composites an image (watermark/logo) over a video.
type ImageOverlayRequest struct {
	Input  string
	Image  string
	Output string
	// Position is a named corner ("top_left", "top_right", "bottom_left",
	// "bottom_right", "center") or explicit "x=10:y=20" coordinates.
	// Defaults to "top_right".
	Position string
	// Opacity in [0,1]; nil keeps the image's own alpha.
	Opacity *float64
	// Start and End bound the overlay in time; empty means whole clip.
	Start string
	End   string
	// Width and Height scale the overlay; expressions like "iw*0.1" pass
	// through. Empty keeps the original size.
	Width  string
	Height string
}

// TransitionRequest applies a fade at the head or tail of a clip.
type TransitionRequest struct {
	Input  string
	Output string
	Type   string // "fade_in", "fade_out" or "fade_in_out"
	// Duration of the fade in seconds.
	Duration float64
}

// ConcatRequest joins clips back to back, optionally blending exactly two
// clips with an xfade transition.
type ConcatRequest struct {
	Inputs             []string
	Output             string
	TransitionEffect   string // xfade transition name, empty for plain join
	TransitionDuration float64
}

// SpeedRequest changes playback speed of video and audio together.
type SpeedRequest struct {
	Input  string
	Output string
	Factor float64 // 2.0 doubles speed, 0.5 halves it
}

// RemoveSilenceRequest drops low-amplitude spans and closes the gaps.
type RemoveSilenceRequest struct {
	Input  string
	Output string
	// ThresholdDB is the level below which audio counts as silence;
	// defaults to -30.
	ThresholdDB float64
	// MinSilenceMs is the shortest silence worth removing; defaults to 500.
	MinSilenceMs int
}

// BRollClip is one cut-in: supplementary footage spliced into the main
// timeline at InsertAt.
type BRollClip struct {
	Path     string
	InsertAt string // position in the main timeline
	Duration string // portion of the clip to use; empty means all of it
	// Transition "fade" fades the clip in and out at its boundaries.
	Transition         string
	TransitionDuration float64 // defaults to 0.5
}

// BRollRequest splices B-roll clips into a main video.
type BRollRequest struct {
	Main   string
	Output string
	Clips  []BRollClip
}
