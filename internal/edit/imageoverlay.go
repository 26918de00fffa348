package edit

import (
	"context"
	"fmt"
	"strings"

	"github.com/misbahsy/video-audio-mcp/internal/ffmpeg"
	"github.com/misbahsy/video-audio-mcp/internal/filtergraph"
)

// AddImageOverlay composites an image (watermark, logo) over the video at a
// named corner or explicit coordinates, with optional scaling, opacity and
// a visibility window.
func (s *Service) AddImageOverlay(ctx context.Context, req ImageOverlayRequest) (string, error) {
	if err := validateInputs(req.Input, req.Image); err != nil {
		return "", err
	}
	if err := ensureOutputDir(req.Output); err != nil {
		return "", err
	}

	x, y, err := overlayPosition(req.Position)
	if err != nil {
		return "", err
	}

	g := filtergraph.New()
	imgPad := "1:v"

	if req.Width != "" || req.Height != "" {
		w, h := req.Width, req.Height
		if w == "" {
			w = "-1"
		}
		if h == "" {
			h = "-1"
		}
		g.Add(filtergraph.Node{
			Filter: "scale",
			Params: []filtergraph.Param{{Value: w}, {Value: h}},
			Inputs: []string{imgPad},
			Output: "img",
		})
		imgPad = "img"
	}

	if req.Opacity != nil {
		op := *req.Opacity
		if op < 0 || op > 1 {
			return "", fmt.Errorf("%w: opacity %v is outside [0, 1]", ErrInvalidArgument, op)
		}
		g.Add(filtergraph.Node{
			Filter: "format",
			Params: []filtergraph.Param{{Value: "rgba"}},
			Inputs: []string{imgPad},
			Output: "imgfmt",
		})
		g.Add(filtergraph.Node{
			Filter: "colorchannelmixer",
			Params: []filtergraph.Param{{Key: "aa", Value: FormatSeconds(op)}},
			Inputs: []string{"imgfmt"},
			Output: "imgalpha",
		})
		imgPad = "imgalpha"
	}

	overlayParams := []filtergraph.Param{
		{Key: "x", Value: x},
		{Key: "y", Value: y},
	}
	if req.Start != "" || req.End != "" {
		start, end, err := overlayWindow(req.Start, req.End)
		if err != nil {
			return "", err
		}
		expr := fmt.Sprintf("between(t,%s,%s)", FormatSeconds(start), FormatSeconds(end))
		overlayParams = append(overlayParams, filtergraph.Param{Key: "enable", Value: filtergraph.EscapeExpr(expr)})
	}
	g.Add(filtergraph.Node{
		Filter: "overlay",
		Params: overlayParams,
		Inputs: []string{"0:v", imgPad},
		Output: "v",
	})
	g.SetFinalVideo("v")
	if err := g.Validate(); err != nil {
		return "", err
	}

	args := []string{
		"-y", "-i", req.Input, "-i", req.Image,
		"-filter_complex", g.String(),
		"-map", "[v]",
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

	status := fmt.Sprintf("Image overlay added from %s; saved to %s", req.Image, req.Output)
	return s.finish(ctx, status, req.Output), nil
}

// overlayPosition maps a corner keyword to overlay x/y expressions with a
// 10 pixel margin. Explicit coordinates pass through, either as bare
// "10:20" or in the "x=10:y=20" form.
func overlayPosition(pos string) (x, y string, err error) {
	switch pos {
	case "", "top_right":
		return "main_w-overlay_w-10", "10", nil
	case "top_left":
		return "10", "10", nil
	case "bottom_left":
		return "10", "main_h-overlay_h-10", nil
	case "bottom_right":
		return "main_w-overlay_w-10", "main_h-overlay_h-10", nil
	case "center":
		return "(main_w-overlay_w)/2", "(main_h-overlay_h)/2", nil
	}
	if xPart, yPart, ok := strings.Cut(pos, ":"); ok {
		xPart = strings.TrimPrefix(strings.TrimSpace(xPart), "x=")
		yPart = strings.TrimPrefix(strings.TrimSpace(yPart), "y=")
		if xPart == "" || yPart == "" {
			return "", "", fmt.Errorf("%w: overlay position %q", ErrInvalidArgument, pos)
		}
		return xPart, yPart, nil
	}
	return "", "", fmt.Errorf("%w: overlay position %q", ErrInvalidArgument, pos)
}
