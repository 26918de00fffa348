package edit

import (
	"context"
	"fmt"

	"github.com/misbahsy/video-audio-mcp/internal/ffmpeg"
	"github.com/misbahsy/video-audio-mcp/internal/filtergraph"
)

// atempo only accepts factors in [0.5, 2.0]; anything outside is reached
// by chaining instances.
const (
	atempoMin = 0.5
	atempoMax = 2.0
)

// ChangeSpeed speeds a video up or slows it down by a positive factor,
// keeping audio pitch-corrected via atempo.
func (s *Service) ChangeSpeed(ctx context.Context, req SpeedRequest) (string, error) {
	if err := validateInputs(req.Input); err != nil {
		return "", err
	}
	if err := ensureOutputDir(req.Output); err != nil {
		return "", err
	}
	if req.Factor <= 0 {
		return "", fmt.Errorf("%w: speed factor must be positive, got %v", ErrInvalidArgument, req.Factor)
	}

	info, err := s.prober.Probe(ctx, req.Input)
	if err != nil {
		return "", err
	}

	g := filtergraph.New()
	if info.HasVideo {
		g.Add(filtergraph.Node{
			Filter: "setpts",
			Params: []filtergraph.Param{{Value: fmt.Sprintf("%s*PTS", FormatSeconds(1/req.Factor))}},
			Inputs: []string{"0:v"},
			Output: "v",
		})
		g.SetFinalVideo("v")
	}
	if info.HasAudio {
		pad := "0:a"
		for i, f := range atempoChain(req.Factor) {
			out := fmt.Sprintf("a%d", i)
			g.Add(filtergraph.Node{
				Filter: "atempo",
				Params: []filtergraph.Param{{Value: FormatSeconds(f)}},
				Inputs: []string{pad},
				Output: out,
			})
			pad = out
		}
		g.SetFinalAudio(pad)
	}
	if g.Len() == 0 {
		return "", fmt.Errorf("%w: %s has no video or audio streams", ErrInvalidArgument, req.Input)
	}
	if err := g.Validate(); err != nil {
		return "", err
	}

	args := []string{"-y", "-i", req.Input, "-filter_complex", g.String()}
	if v := g.FinalVideo(); v != "" {
		args = append(args, "-map", "["+v+"]")
	}
	if a := g.FinalAudio(); a != "" {
		args = append(args, "-map", "["+a+"]")
	}
	args = append(args, req.Output)

	if err := s.execute(ctx, ffmpeg.Invocation{Args: args, OutputPath: req.Output}); err != nil {
		return "", err
	}

	status := fmt.Sprintf("Video speed changed by factor %v; saved to %s", req.Factor, req.Output)
	return s.finish(ctx, status, req.Output), nil
}

// atempoChain decomposes a tempo factor into a sequence of factors inside
// atempo's supported range. The last element carries the remainder.
func atempoChain(factor float64) []float64 {
	var chain []float64
	for factor > atempoMax {
		chain = append(chain, atempoMax)
		factor /= atempoMax
	}
	for factor < atempoMin {
		chain = append(chain, atempoMin)
		factor /= atempoMin
	}
	return append(chain, factor)
}
