package edit

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/misbahsy/video-audio-mcp/internal/ffmpeg"
)

// brollSegment is one piece of the final timeline: a time slice of a source
// file, normalized to the shared segment format, optionally book-ended with
// fades.
type brollSegment struct {
	source string
	// start/end slice the source; end < 0 means to the end of the file.
	start, end float64
	fadeDur    float64
	hasAudio   bool
}

// AddBRoll splices secondary clips into a main video at given timestamps.
// The main video is cut at each insertion point, the pieces and the b-roll
// clips are normalized to a common format, and everything is concatenated
// back together. The main video's audio pauses while a b-roll clip plays.
func (s *Service) AddBRoll(ctx context.Context, req BRollRequest) (string, error) {
	if len(req.Clips) == 0 {
		return "", fmt.Errorf("%w: no b-roll clips given", ErrInvalidArgument)
	}
	paths := []string{req.Main}
	for _, c := range req.Clips {
		paths = append(paths, c.Path)
	}
	if err := validateInputs(paths...); err != nil {
		return "", err
	}
	if err := ensureOutputDir(req.Output); err != nil {
		return "", err
	}

	mainInfo, err := s.prober.Probe(ctx, req.Main)
	if err != nil {
		return "", err
	}
	if !mainInfo.HasVideo {
		return "", fmt.Errorf("%w: %s has no video stream", ErrInvalidArgument, req.Main)
	}
	if mainInfo.Duration <= 0 {
		return "", fmt.Errorf("%w: could not determine duration of %s", ErrInvalidArgument, req.Main)
	}

	clips, err := resolveBRollClips(req.Clips, mainInfo.Duration)
	if err != nil {
		return "", err
	}

	clipInfos := make([]*ffmpeg.MediaInfo, len(clips))
	for i, c := range clips {
		info, err := s.prober.Probe(ctx, c.path)
		if err != nil {
			return "", err
		}
		if !info.HasVideo {
			return "", fmt.Errorf("%w: %s has no video stream", ErrInvalidArgument, c.path)
		}
		clipInfos[i] = info
	}

	segments := buildBRollTimeline(req.Main, mainInfo, clips, clipInfos)

	workDir, err := s.store.NewWorkDir(ctx, "broll")
	if err != nil {
		return "", err
	}
	defer s.cleanupWorkDir(ctx, workDir)

	target := pickSegmentTarget([]*ffmpeg.MediaInfo{mainInfo})
	segPaths := make([]string, len(segments))
	for i, seg := range segments {
		p := filepath.Join(workDir, fmt.Sprintf("segment-%03d.mp4", i))
		if err := s.renderBRollSegment(ctx, seg, p, target); err != nil {
			return "", &PhaseError{Phase: "segment", Err: err}
		}
		segPaths[i] = p
	}

	listPath, err := writeConcatList(workDir, segPaths)
	if err != nil {
		return "", &PhaseError{Phase: "concatenate", Err: err}
	}
	if err := s.concatDemuxer(ctx, listPath, req.Output); err != nil {
		return "", &PhaseError{Phase: "concatenate", Err: err}
	}

	status := fmt.Sprintf("Inserted %d b-roll clip(s) into %s; saved to %s",
		len(clips), req.Main, req.Output)
	return s.finish(ctx, status, req.Output), nil
}

// resolvedClip is a b-roll clip with its insertion point parsed and its
// optional trim and fade settings resolved.
type resolvedClip struct {
	path     string
	insertAt float64
	// duration trims the clip; 0 means the whole clip.
	duration float64
	fadeDur  float64
}

func resolveBRollClips(clips []BRollClip, mainDuration float64) ([]resolvedClip, error) {
	out := make([]resolvedClip, len(clips))
	for i, c := range clips {
		at, err := ParseTimestamp(c.InsertAt)
		if err != nil {
			return nil, err
		}
		// An insertion point at or past the end leaves nothing to cut
		// into, so the clip cannot interrupt the main video.
		if at >= mainDuration {
			return nil, fmt.Errorf("%w: insertion point %s is beyond the main video (%ss)",
				ErrInvalidTimeRange, c.InsertAt, FormatSeconds(mainDuration))
		}
		rc := resolvedClip{path: c.Path, insertAt: at}
		if c.Duration != "" {
			d, err := ParseTimestamp(c.Duration)
			if err != nil {
				return nil, err
			}
			if d <= 0 {
				return nil, fmt.Errorf("%w: b-roll duration must be positive", ErrInvalidTimeRange)
			}
			rc.duration = d
		}
		switch c.Transition {
		case "", "none":
		case "fade":
			rc.fadeDur = c.TransitionDuration
			if rc.fadeDur <= 0 {
				rc.fadeDur = 0.5
			}
		default:
			return nil, fmt.Errorf("%w: b-roll transition %q (want \"fade\" or \"none\")",
				ErrInvalidArgument, c.Transition)
		}
		out[i] = rc
	}
	sort.Slice(out, func(i, j int) bool { return out[i].insertAt < out[j].insertAt })
	return out, nil
}

// buildBRollTimeline cuts the main video at each insertion point and
// interleaves the b-roll clips, producing the ordered segment list.
func buildBRollTimeline(main string, mainInfo *ffmpeg.MediaInfo, clips []resolvedClip, clipInfos []*ffmpeg.MediaInfo) []brollSegment {
	var segments []brollSegment
	cursor := 0.0
	for i, c := range clips {
		if c.insertAt > cursor {
			segments = append(segments, brollSegment{
				source:   main,
				start:    cursor,
				end:      c.insertAt,
				hasAudio: mainInfo.HasAudio,
			})
			cursor = c.insertAt
		}
		// Slice to the probed duration when no trim was requested, so a
		// fade-out knows where the clip ends.
		end := clipInfos[i].Duration
		if c.duration > 0 {
			end = c.duration
		}
		if end <= 0 {
			end = -1
		}
		segments = append(segments, brollSegment{
			source:   c.path,
			start:    0,
			end:      end,
			fadeDur:  c.fadeDur,
			hasAudio: clipInfos[i].HasAudio,
		})
	}
	if cursor < mainInfo.Duration {
		segments = append(segments, brollSegment{
			source:   main,
			start:    cursor,
			end:      mainInfo.Duration,
			hasAudio: mainInfo.HasAudio,
		})
	}
	return segments
}

// renderBRollSegment normalizes one timeline segment, applying the slice
// window and optional fades in the same pass.
func (s *Service) renderBRollSegment(ctx context.Context, seg brollSegment, output string, t segmentTarget) error {
	args := []string{"-y"}
	if seg.start > 0 {
		args = append(args, "-ss", FormatSeconds(seg.start))
	}
	if seg.end >= 0 {
		args = append(args, "-to", FormatSeconds(seg.end))
	}
	args = append(args, "-i", seg.source)
	if !seg.hasAudio {
		args = append(args, "-f", "lavfi", "-i",
			fmt.Sprintf("anullsrc=channel_layout=stereo:sample_rate=%d", t.sampleRate),
			"-shortest")
	}

	vf := fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1,fps=%s",
		t.width, t.height, t.width, t.height, FormatSeconds(t.frameRate))
	var af string
	if seg.fadeDur > 0 {
		segDur := seg.end - seg.start
		if seg.end < 0 {
			segDur = 0
		}
		vf += fmt.Sprintf(",fade=t=in:st=0:d=%s", FormatSeconds(seg.fadeDur))
		af = fmt.Sprintf("afade=t=in:st=0:d=%s", FormatSeconds(seg.fadeDur))
		if segDur > seg.fadeDur {
			outStart := segDur - seg.fadeDur
			vf += fmt.Sprintf(",fade=t=out:st=%s:d=%s", FormatSeconds(outStart), FormatSeconds(seg.fadeDur))
			af += fmt.Sprintf(",afade=t=out:st=%s:d=%s", FormatSeconds(outStart), FormatSeconds(seg.fadeDur))
		}
	}

	args = append(args, "-vf", vf)
	if af != "" {
		args = append(args, "-af", af)
	}
	args = append(args,
		"-c:v", s.defaults.VideoCodec,
		"-preset", s.defaults.Preset,
		"-crf", strconv.Itoa(s.defaults.CRF),
		"-pix_fmt", s.defaults.PixelFormat,
		"-c:a", s.defaults.AudioCodec,
		"-b:a", s.defaults.AudioBitrate,
		"-ar", strconv.Itoa(t.sampleRate),
		"-ac", "2",
		output,
	)
	return s.execute(ctx, ffmpeg.Invocation{Args: args, OutputPath: output})
}
