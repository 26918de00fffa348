package edit

import (
	"context"
	"fmt"

	"github.com/misbahsy/video-audio-mcp/internal/ffmpeg"
	"github.com/misbahsy/video-audio-mcp/internal/filtergraph"
)

// AddTextOverlay draws one or more timed text elements over the video
// using a drawtext filter chain.
func (s *Service) AddTextOverlay(ctx context.Context, req TextOverlayRequest) (string, error) {
	if err := validateInputs(req.Input); err != nil {
		return "", err
	}
	if err := ensureOutputDir(req.Output); err != nil {
		return "", err
	}
	if len(req.Elements) == 0 {
		return "", fmt.Errorf("%w: at least one text element is required", ErrInvalidArgument)
	}

	g := filtergraph.New()
	in := "0:v"
	for i, el := range req.Elements {
		node, err := drawtextNode(el)
		if err != nil {
			return "", err
		}
		node.Inputs = []string{in}
		node.Output = fmt.Sprintf("txt%d", i)
		g.Add(node)
		in = node.Output
	}
	g.SetFinalVideo(in)
	if err := g.Validate(); err != nil {
		return "", err
	}

	args := []string{
		"-y", "-i", req.Input,
		"-filter_complex", g.String(),
		"-map", "[" + g.FinalVideo() + "]",
		"-map", "0:a?",
	}
	primary := ffmpeg.Invocation{
		Args:       append(append([]string{}, args...), "-c:a", "copy", req.Output),
		OutputPath: req.Output,
	}
	fallback := ffmpeg.Invocation{
		Args:       append(append([]string{}, args...), req.Output),
		OutputPath: req.Output,
	}

	if _, err := s.executeWithFallback(ctx, primary, fallback); err != nil {
		return "", err
	}

	status := fmt.Sprintf("Added %d text overlay(s); saved to %s", len(req.Elements), req.Output)
	return s.finish(ctx, status, req.Output), nil
}

func drawtextNode(el TextElement) (filtergraph.Node, error) {
	if el.Text == "" {
		return filtergraph.Node{}, fmt.Errorf("%w: text element has empty text", ErrInvalidArgument)
	}

	params := []filtergraph.Param{
		{Key: "text", Value: filtergraph.QuoteText(el.Text)},
	}
	if el.FontFile != "" {
		params = append(params, filtergraph.Param{Key: "fontfile", Value: filtergraph.QuotePath(el.FontFile)})
	}
	size := el.FontSize
	if size <= 0 {
		size = 24
	}
	params = append(params, filtergraph.Param{Key: "fontsize", Value: fmt.Sprintf("%d", size)})
	color := el.FontColor
	if color == "" {
		color = "white"
	}
	params = append(params, filtergraph.Param{Key: "fontcolor", Value: color})

	x, y := textPosition(el.X, el.Y)
	params = append(params,
		filtergraph.Param{Key: "x", Value: x},
		filtergraph.Param{Key: "y", Value: y},
	)

	if el.Box {
		params = append(params, filtergraph.Param{Key: "box", Value: "1"})
		boxColor := el.BoxColor
		if boxColor == "" {
			boxColor = "black@0.5"
		}
		params = append(params, filtergraph.Param{Key: "boxcolor", Value: boxColor})
		if el.BoxBorderWidth > 0 {
			params = append(params, filtergraph.Param{Key: "boxborderw", Value: fmt.Sprintf("%d", el.BoxBorderWidth)})
		}
	}

	if el.Start != "" || el.End != "" {
		start, end, err := overlayWindow(el.Start, el.End)
		if err != nil {
			return filtergraph.Node{}, err
		}
		expr := fmt.Sprintf("between(t,%s,%s)", FormatSeconds(start), FormatSeconds(end))
		params = append(params, filtergraph.Param{Key: "enable", Value: filtergraph.EscapeExpr(expr)})
	}

	return filtergraph.Node{Filter: "drawtext", Params: params}, nil
}

// textPosition maps positional keywords to drawtext expressions. Numeric
// or expression values pass through unchanged.
func textPosition(x, y string) (string, string) {
	switch x {
	case "", "center":
		x = "(w-text_w)/2"
	case "left":
		x = "10"
	case "right":
		x = "w-text_w-10"
	}
	switch y {
	case "center":
		y = "(h-text_h)/2"
	case "top":
		y = "10"
	case "", "bottom":
		y = "h-text_h-10"
	}
	return x, y
}

// overlayWindow resolves an optional start/end pair into seconds. A missing
// start means 0; a missing end means a window open to a far horizon.
func overlayWindow(start, end string) (float64, float64, error) {
	var s, e float64
	var err error
	if start != "" {
		s, err = ParseTimestamp(start)
		if err != nil {
			return 0, 0, err
		}
	}
	e = 1e9
	if end != "" {
		e, err = ParseTimestamp(end)
		if err != nil {
			return 0, 0, err
		}
	}
	if e <= s {
		return 0, 0, fmt.Errorf("%w: overlay end %q is not after start %q", ErrInvalidTimeRange, end, start)
	}
	return s, e, nil
}
