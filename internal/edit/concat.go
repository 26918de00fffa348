package edit

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/misbahsy/video-audio-mcp/internal/ffmpeg"
	"github.com/misbahsy/video-audio-mcp/internal/filtergraph"
)

// xfadeTransitions are the cross-fade styles the engine's xfade filter
// accepts that this operation exposes.
var xfadeTransitions = map[string]bool{
	"fade":        true,
	"dissolve":    true,
	"wipeleft":    true,
	"wiperight":   true,
	"wipeup":      true,
	"wipedown":    true,
	"slideleft":   true,
	"slideright":  true,
	"slideup":     true,
	"slidedown":   true,
	"circleopen":  true,
	"circleclose": true,
	"radial":      true,
	"pixelize":    true,
	"smoothleft":  true,
	"smoothright": true,
	"smoothup":    true,
	"smoothdown":  true,
}

// segmentTarget is the common format every segment is normalized to before
// splicing. Mismatched segments cannot be concatenated losslessly.
type segmentTarget struct {
	width, height int
	frameRate     float64
	sampleRate    int
}

// Concatenate joins clips end to end. Uniform inputs go through the concat
// demuxer with stream copy; mixed inputs are normalized to a common format
// first. With a transition effect and exactly two clips, the splice is a
// cross-fade instead of a hard cut.
func (s *Service) Concatenate(ctx context.Context, req ConcatRequest) (string, error) {
	if len(req.Inputs) == 0 {
		return "", fmt.Errorf("%w: no input files given", ErrInvalidArgument)
	}
	if err := validateInputs(req.Inputs...); err != nil {
		return "", err
	}
	if err := ensureOutputDir(req.Output); err != nil {
		return "", err
	}

	if len(req.Inputs) == 1 {
		inv := ffmpeg.Invocation{
			Args:       []string{"-y", "-i", req.Inputs[0], "-c", "copy", req.Output},
			OutputPath: req.Output,
		}
		fb := ffmpeg.Invocation{
			Args:       []string{"-y", "-i", req.Inputs[0], req.Output},
			OutputPath: req.Output,
		}
		if _, err := s.executeWithFallback(ctx, inv, fb); err != nil {
			return "", err
		}
		status := fmt.Sprintf("Single input; copied to %s", req.Output)
		return s.finish(ctx, status, req.Output), nil
	}

	infos := make([]*ffmpeg.MediaInfo, len(req.Inputs))
	for i, in := range req.Inputs {
		info, err := s.prober.Probe(ctx, in)
		if err != nil {
			return "", err
		}
		if !info.HasVideo {
			return "", fmt.Errorf("%w: %s has no video stream", ErrInvalidArgument, in)
		}
		infos[i] = info
	}

	if req.TransitionEffect != "" {
		return s.concatWithTransition(ctx, req, infos)
	}

	workDir, err := s.store.NewWorkDir(ctx, "concat")
	if err != nil {
		return "", err
	}
	defer s.cleanupWorkDir(ctx, workDir)

	if uniformSegments(infos) {
		listPath, err := writeConcatList(workDir, req.Inputs)
		if err != nil {
			return "", err
		}
		if err := s.concatDemuxer(ctx, listPath, req.Output); err != nil {
			return "", &PhaseError{Phase: "concatenate", Err: err}
		}
		status := fmt.Sprintf("Concatenated %d videos (stream copy) to %s", len(req.Inputs), req.Output)
		return s.finish(ctx, status, req.Output), nil
	}

	target := pickSegmentTarget(infos)
	segments := make([]string, len(req.Inputs))
	for i, in := range req.Inputs {
		seg := filepath.Join(workDir, fmt.Sprintf("segment-%03d.mp4", i))
		if err := s.normalizeSegment(ctx, in, seg, infos[i], target); err != nil {
			return "", &PhaseError{Phase: "normalize", Err: err}
		}
		segments[i] = seg
	}

	listPath, err := writeConcatList(workDir, segments)
	if err != nil {
		return "", &PhaseError{Phase: "normalize", Err: err}
	}
	if err := s.concatDemuxer(ctx, listPath, req.Output); err != nil {
		return "", &PhaseError{Phase: "concatenate", Err: err}
	}

	status := fmt.Sprintf("Concatenated %d videos (normalized to %dx%d) to %s",
		len(req.Inputs), target.width, target.height, req.Output)
	return s.finish(ctx, status, req.Output), nil
}

// concatWithTransition cross-fades exactly two clips. Both are normalized
// to a common format first so xfade sees matching frame geometry.
func (s *Service) concatWithTransition(ctx context.Context, req ConcatRequest, infos []*ffmpeg.MediaInfo) (string, error) {
	if len(req.Inputs) != 2 {
		return "", fmt.Errorf("%w: transition effects require exactly 2 inputs, got %d",
			ErrUnsupportedCombination, len(req.Inputs))
	}
	if !xfadeTransitions[req.TransitionEffect] {
		return "", fmt.Errorf("%w: unknown transition effect %q", ErrInvalidArgument, req.TransitionEffect)
	}
	dur := req.TransitionDuration
	if dur <= 0 {
		dur = 1
	}

	workDir, err := s.store.NewWorkDir(ctx, "concat-xfade")
	if err != nil {
		return "", err
	}
	defer s.cleanupWorkDir(ctx, workDir)

	target := pickSegmentTarget(infos)
	segments := make([]string, 2)
	for i, in := range req.Inputs {
		seg := filepath.Join(workDir, fmt.Sprintf("segment-%03d.mp4", i))
		if err := s.normalizeSegment(ctx, in, seg, infos[i], target); err != nil {
			return "", &PhaseError{Phase: "normalize", Err: err}
		}
		segments[i] = seg
	}

	// Offset is measured on the normalized clip; fps conversion can move
	// the duration slightly, so re-probe rather than trust the source.
	first, err := s.prober.Probe(ctx, segments[0])
	if err != nil {
		return "", &PhaseError{Phase: "transition", Err: err}
	}
	offset := first.Duration - dur
	if offset <= 0 {
		return "", fmt.Errorf("%w: transition duration %ss is not shorter than the first clip (%ss)",
			ErrInvalidTimeRange, FormatSeconds(dur), FormatSeconds(first.Duration))
	}

	g := filtergraph.New()
	g.Add(filtergraph.Node{
		Filter: "xfade",
		Params: []filtergraph.Param{
			{Key: "transition", Value: req.TransitionEffect},
			{Key: "duration", Value: FormatSeconds(dur)},
			{Key: "offset", Value: FormatSeconds(offset)},
		},
		Inputs: []string{"0:v", "1:v"},
		Output: "v",
	})
	g.Add(filtergraph.Node{
		Filter: "acrossfade",
		Params: []filtergraph.Param{
			{Key: "d", Value: FormatSeconds(dur)},
			{Key: "c1", Value: "tri"},
			{Key: "c2", Value: "tri"},
		},
		Inputs: []string{"0:a", "1:a"},
		Output: "a",
	})
	g.SetFinalVideo("v")
	g.SetFinalAudio("a")
	if err := g.Validate(); err != nil {
		return "", err
	}

	inv := ffmpeg.Invocation{
		Args: []string{
			"-y", "-i", segments[0], "-i", segments[1],
			"-filter_complex", g.String(),
			"-map", "[v]", "-map", "[a]",
			req.Output,
		},
		OutputPath: req.Output,
	}
	if err := s.execute(ctx, inv); err != nil {
		return "", &PhaseError{Phase: "transition", Err: err}
	}

	status := fmt.Sprintf("Concatenated 2 videos with %s transition (%ss) to %s",
		req.TransitionEffect, FormatSeconds(dur), req.Output)
	return s.finish(ctx, status, req.Output), nil
}

// concatDemuxer splices already-uniform segments without re-encoding.
func (s *Service) concatDemuxer(ctx context.Context, listPath, output string) error {
	primary := ffmpeg.Invocation{
		Args:       []string{"-y", "-f", "concat", "-safe", "0", "-i", listPath, "-c", "copy", output},
		OutputPath: output,
	}
	fallback := ffmpeg.Invocation{
		Args:       []string{"-y", "-f", "concat", "-safe", "0", "-i", listPath, output},
		OutputPath: output,
	}
	_, err := s.executeWithFallback(ctx, primary, fallback)
	return err
}

// normalizeSegment re-encodes one clip to the shared segment format:
// scaled and padded to the target frame, square pixels, constant frame
// rate, stereo audio. Clips without audio get a silent track so the concat
// demuxer sees identical stream layouts everywhere.
func (s *Service) normalizeSegment(ctx context.Context, input, output string, info *ffmpeg.MediaInfo, t segmentTarget) error {
	vf := fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1,fps=%s",
		t.width, t.height, t.width, t.height, FormatSeconds(t.frameRate))

	args := []string{"-y", "-i", input}
	if !info.HasAudio {
		args = append(args, "-f", "lavfi", "-i",
			fmt.Sprintf("anullsrc=channel_layout=stereo:sample_rate=%d", t.sampleRate),
			"-shortest")
	}
	args = append(args,
		"-vf", vf,
		"-c:v", s.defaults.VideoCodec,
		"-preset", s.defaults.Preset,
		"-crf", strconv.Itoa(s.defaults.CRF),
		"-pix_fmt", s.defaults.PixelFormat,
		"-c:a", s.defaults.AudioCodec,
		"-b:a", s.defaults.AudioBitrate,
		"-ar", fmt.Sprintf("%d", t.sampleRate),
		"-ac", "2",
		output,
	)
	return s.execute(ctx, ffmpeg.Invocation{Args: args, OutputPath: output})
}

// pickSegmentTarget derives the shared segment format from the first clip,
// falling back to 720p30 when the probe came back empty.
func pickSegmentTarget(infos []*ffmpeg.MediaInfo) segmentTarget {
	t := segmentTarget{width: 1280, height: 720, frameRate: 30, sampleRate: 48000}
	first := infos[0]
	if first.Width > 0 && first.Height > 0 {
		t.width, t.height = evenDim(first.Width), evenDim(first.Height)
	}
	if first.FrameRate > 0 {
		t.frameRate = first.FrameRate
	}
	if first.SampleRate > 0 {
		t.sampleRate = first.SampleRate
	}
	return t
}

// uniformSegments reports whether every clip already shares codec, frame
// geometry, frame rate and audio layout, making lossless splicing safe.
func uniformSegments(infos []*ffmpeg.MediaInfo) bool {
	first := infos[0]
	for _, info := range infos[1:] {
		if info.VideoCodec != first.VideoCodec ||
			info.Width != first.Width ||
			info.Height != first.Height ||
			math.Abs(info.FrameRate-first.FrameRate) > 0.01 ||
			info.HasAudio != first.HasAudio {
			return false
		}
		if first.HasAudio &&
			(info.AudioCodec != first.AudioCodec ||
				info.SampleRate != first.SampleRate ||
				info.Channels != first.Channels) {
			return false
		}
	}
	return true
}

// writeConcatList writes the concat demuxer's file list. Single quotes in
// paths are closed, escaped and reopened per the demuxer's quoting rules.
func writeConcatList(dir string, paths []string) (string, error) {
	var b strings.Builder
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "file '%s'\n", strings.ReplaceAll(abs, "'", `'\''`))
	}
	listPath := filepath.Join(dir, "concat.txt")
	if err := os.WriteFile(listPath, []byte(b.String()), 0o600); err != nil {
		return "", err
	}
	return listPath, nil
}
