package edit

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/misbahsy/video-audio-mcp/internal/ffmpeg"
)

// ChangeAspectRatio reshapes a video to a target aspect ratio, either by
// scaling down and padding or by center-cropping. When the source already
// has the requested ratio the streams are copied untouched.
func (s *Service) ChangeAspectRatio(ctx context.Context, req AspectRatioRequest) (string, error) {
	if err := validateInputs(req.Input); err != nil {
		return "", err
	}
	if err := ensureOutputDir(req.Output); err != nil {
		return "", err
	}

	num, den, err := parseAspectRatio(req.AspectRatio)
	if err != nil {
		return "", err
	}

	mode := req.ResizeMode
	if mode == "" {
		mode = "pad"
	}
	if mode != "pad" && mode != "crop" {
		return "", fmt.Errorf("%w: resize mode %q (want \"pad\" or \"crop\")", ErrInvalidArgument, req.ResizeMode)
	}

	color := req.PaddingColor
	if color == "" {
		color = "black"
	}

	info, err := s.prober.Probe(ctx, req.Input)
	if err != nil {
		return "", err
	}
	if !info.HasVideo {
		return "", fmt.Errorf("%w: %s has no video stream", ErrInvalidArgument, req.Input)
	}

	targetAR := float64(num) / float64(den)
	sourceAR := float64(info.Width) / float64(info.Height)

	// Ratio already matches: nothing to reshape, copy through.
	if math.Abs(sourceAR-targetAR) < 1e-4 {
		primary := ffmpeg.Invocation{
			Args:       []string{"-y", "-i", req.Input, "-c", "copy", req.Output},
			OutputPath: req.Output,
		}
		fallback := ffmpeg.Invocation{
			Args:       []string{"-y", "-i", req.Input, req.Output},
			OutputPath: req.Output,
		}
		if _, err := s.executeWithFallback(ctx, primary, fallback); err != nil {
			return "", err
		}
		status := fmt.Sprintf("Video aspect ratio already matches %s; copied to %s", req.AspectRatio, req.Output)
		return s.finish(ctx, status, req.Output), nil
	}

	var filter string
	switch mode {
	case "pad":
		var w, h int
		if sourceAR > targetAR {
			w, h = int(float64(info.Height)*targetAR), info.Height
		} else {
			w, h = info.Width, int(float64(info.Width)/targetAR)
		}
		w, h = evenDim(w), evenDim(h)
		filter = fmt.Sprintf(
			"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:%s",
			w, h, w, h, color)
	case "crop":
		if sourceAR > targetAR {
			w := evenDim(int(float64(info.Height) * targetAR))
			filter = fmt.Sprintf("crop=%d:%d:(iw-%d)/2:0", w, info.Height, w)
		} else {
			h := evenDim(int(float64(info.Width) / targetAR))
			filter = fmt.Sprintf("crop=%d:%d:0:(ih-%d)/2", info.Width, h, h)
		}
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

	fellBack, err := s.executeWithFallback(ctx, primary, fallback)
	if err != nil {
		return "", err
	}

	audioNote := "audio copied"
	if fellBack {
		audioNote = "audio re-encoded"
	}
	if !info.HasAudio {
		audioNote = "no audio stream"
	}
	status := fmt.Sprintf("Video aspect ratio changed to %s using %s (%s); saved to %s",
		req.AspectRatio, mode, audioNote, req.Output)
	return s.finish(ctx, status, req.Output), nil
}

// parseAspectRatio parses "num:den" (e.g. "16:9").
func parseAspectRatio(ar string) (num, den int, err error) {
	nPart, dPart, ok := strings.Cut(strings.TrimSpace(ar), ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: aspect ratio %q (want \"num:den\")", ErrInvalidArgument, ar)
	}
	n, err1 := strconv.Atoi(nPart)
	d, err2 := strconv.Atoi(dPart)
	if err1 != nil || err2 != nil || n <= 0 || d <= 0 {
		return 0, 0, fmt.Errorf("%w: aspect ratio %q (want \"num:den\")", ErrInvalidArgument, ar)
	}
	return n, d, nil
}

// evenDim rounds a dimension down to an even number; most encoders reject
// odd frame sizes.
func evenDim(n int) int {
	return n &^ 1
}
