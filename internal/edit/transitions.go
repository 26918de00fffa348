package edit

import (
	"context"
	"fmt"

	"github.com/misbahsy/video-audio-mcp/internal/ffmpeg"
	"github.com/misbahsy/video-audio-mcp/internal/filtergraph"
)

// AddTransition applies a fade-in, fade-out or both to a single clip, with
// matching audio fades when the clip carries audio.
func (s *Service) AddTransition(ctx context.Context, req TransitionRequest) (string, error) {
	if err := validateInputs(req.Input); err != nil {
		return "", err
	}
	if err := ensureOutputDir(req.Output); err != nil {
		return "", err
	}

	kind := req.Type
	if kind == "" {
		kind = "fade_in"
	}
	if kind != "fade_in" && kind != "fade_out" && kind != "fade_in_out" {
		return "", fmt.Errorf("%w: transition type %q (want fade_in, fade_out or fade_in_out)", ErrInvalidArgument, req.Type)
	}

	dur := req.Duration
	if dur <= 0 {
		dur = 1
	}

	info, err := s.prober.Probe(ctx, req.Input)
	if err != nil {
		return "", err
	}
	if !info.HasVideo {
		return "", fmt.Errorf("%w: %s has no video stream", ErrInvalidArgument, req.Input)
	}
	if info.Duration <= 0 {
		return "", fmt.Errorf("%w: could not determine duration of %s", ErrInvalidArgument, req.Input)
	}
	need := dur
	if kind == "fade_in_out" {
		need = 2 * dur
	}
	if need > info.Duration {
		return "", fmt.Errorf("%w: fade duration %ss exceeds clip duration %ss",
			ErrInvalidTimeRange, FormatSeconds(dur), FormatSeconds(info.Duration))
	}

	g := filtergraph.New()
	vPad, aPad := "0:v", "0:a"

	addFade := func(filter, fadeType string, start float64, in, out string) {
		g.Add(filtergraph.Node{
			Filter: filter,
			Params: []filtergraph.Param{
				{Key: "t", Value: fadeType},
				{Key: "st", Value: FormatSeconds(start)},
				{Key: "d", Value: FormatSeconds(dur)},
			},
			Inputs: []string{in},
			Output: out,
		})
	}

	if kind == "fade_in" || kind == "fade_in_out" {
		addFade("fade", "in", 0, vPad, "vin")
		vPad = "vin"
		if info.HasAudio {
			addFade("afade", "in", 0, aPad, "ain")
			aPad = "ain"
		}
	}
	if kind == "fade_out" || kind == "fade_in_out" {
		outStart := info.Duration - dur
		addFade("fade", "out", outStart, vPad, "vout")
		vPad = "vout"
		if info.HasAudio {
			addFade("afade", "out", outStart, aPad, "aout")
			aPad = "aout"
		}
	}
	g.SetFinalVideo(vPad)
	if info.HasAudio {
		g.SetFinalAudio(aPad)
	}
	if err := g.Validate(); err != nil {
		return "", err
	}

	args := []string{
		"-y", "-i", req.Input,
		"-filter_complex", g.String(),
		"-map", "[" + g.FinalVideo() + "]",
	}
	if info.HasAudio {
		args = append(args, "-map", "["+g.FinalAudio()+"]")
	}
	args = append(args, req.Output)

	if err := s.execute(ctx, ffmpeg.Invocation{Args: args, OutputPath: req.Output}); err != nil {
		return "", err
	}

	status := fmt.Sprintf("Applied %s transition (%ss); saved to %s", kind, FormatSeconds(dur), req.Output)
	return s.finish(ctx, status, req.Output), nil
}
