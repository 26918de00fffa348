package edit

import (
	"context"
	"fmt"
	"strings"

	"github.com/misbahsy/video-audio-mcp/internal/ffmpeg"
	"github.com/misbahsy/video-audio-mcp/internal/filtergraph"
)

// AddSubtitles burns a subtitle file (SRT or ASS) into the video frames.
// Optional styling overrides are passed through libass force_style.
func (s *Service) AddSubtitles(ctx context.Context, req AddSubtitlesRequest) (string, error) {
	if err := validateInputs(req.Input, req.SubtitleFile); err != nil {
		return "", err
	}
	if err := ensureOutputDir(req.Output); err != nil {
		return "", err
	}

	filter := "subtitles=" + filtergraph.QuotePath(req.SubtitleFile)
	if style := forceStyle(req.Style); style != "" {
		filter += ":force_style=" + filtergraph.QuoteText(style)
	}

	base := []string{"-y", "-i", req.Input, "-vf", filter}
	primary := ffmpeg.Invocation{
		Args:       append(append([]string{}, base...), "-c:a", "copy", req.Output),
		OutputPath: req.Output,
	}
	fallback := ffmpeg.Invocation{
		Args:       append(append([]string{}, base...), req.Output),
		OutputPath: req.Output,
	}

	if _, err := s.executeWithFallback(ctx, primary, fallback); err != nil {
		return "", err
	}

	status := fmt.Sprintf("Subtitles from %s burned into video; saved to %s", req.SubtitleFile, req.Output)
	return s.finish(ctx, status, req.Output), nil
}

// forceStyle renders the non-empty style fields as an ASS force_style
// string, e.g. "FontName=Arial,FontSize=24".
func forceStyle(st *SubtitleStyle) string {
	if st == nil {
		return ""
	}
	var parts []string
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, key+"="+value)
		}
	}
	add("FontName", st.FontName)
	if st.FontSize > 0 {
		parts = append(parts, fmt.Sprintf("Fontsize=%d", st.FontSize))
	}
	add("PrimaryColour", assColor(st.FontColor))
	add("OutlineColour", assColor(st.OutlineColor))
	if st.OutlineWidth > 0 {
		parts = append(parts, fmt.Sprintf("Outline=%d", st.OutlineWidth))
	}
	if st.Shadow > 0 {
		parts = append(parts, fmt.Sprintf("Shadow=%d", st.Shadow))
	}
	if st.Alignment > 0 {
		parts = append(parts, fmt.Sprintf("Alignment=%d", st.Alignment))
	}
	if st.MarginV > 0 {
		parts = append(parts, fmt.Sprintf("MarginV=%d", st.MarginV))
	}
	if st.MarginL > 0 {
		parts = append(parts, fmt.Sprintf("MarginL=%d", st.MarginL))
	}
	if st.MarginR > 0 {
		parts = append(parts, fmt.Sprintf("MarginR=%d", st.MarginR))
	}
	return strings.Join(parts, ",")
}

// assColor converts "#RRGGBB" to the &HBBGGRR& form libass expects.
// Named colors and already-converted values pass through unchanged.
func assColor(c string) string {
	if !strings.HasPrefix(c, "#") || len(c) != 7 {
		return c
	}
	r, g, b := c[1:3], c[3:5], c[5:7]
	return "&H" + strings.ToUpper(b+g+r) + "&"
}
