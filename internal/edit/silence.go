package edit

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/misbahsy/video-audio-mcp/internal/ffmpeg"
	"github.com/misbahsy/video-audio-mcp/internal/filtergraph"
)

const (
	defaultSilenceThresholdDB = -30
	defaultMinSilenceMs       = 500
)

// silenceSpan is one detected silent interval in the source timeline.
type silenceSpan struct {
	start, end float64
}

// RemoveSilence cuts silent passages out of a file. Audio-only inputs go
// through silenceremove in a single pass. Video inputs need two passes:
// silencedetect locates the silent spans, then a select/aselect graph
// splices the remaining spans back together with rebuilt timestamps.
func (s *Service) RemoveSilence(ctx context.Context, req RemoveSilenceRequest) (string, error) {
	if err := validateInputs(req.Input); err != nil {
		return "", err
	}
	if err := ensureOutputDir(req.Output); err != nil {
		return "", err
	}

	threshold := req.ThresholdDB
	if threshold == 0 {
		threshold = defaultSilenceThresholdDB
	}
	minMs := req.MinSilenceMs
	if minMs <= 0 {
		minMs = defaultMinSilenceMs
	}
	minDur := float64(minMs) / 1000

	info, err := s.prober.Probe(ctx, req.Input)
	if err != nil {
		return "", err
	}
	if !info.HasAudio {
		return "", fmt.Errorf("%w: %s has no audio stream to detect silence in", ErrInvalidArgument, req.Input)
	}

	if !info.HasVideo {
		return s.removeSilenceAudio(ctx, req, threshold, minDur)
	}
	return s.removeSilenceVideo(ctx, req, info, threshold, minDur)
}

func (s *Service) removeSilenceAudio(ctx context.Context, req RemoveSilenceRequest, threshold, minDur float64) (string, error) {
	filter := fmt.Sprintf("silenceremove=stop_periods=-1:stop_duration=%s:stop_threshold=%sdB",
		FormatSeconds(minDur), FormatSeconds(threshold))
	inv := ffmpeg.Invocation{
		Args:       []string{"-y", "-i", req.Input, "-af", filter, req.Output},
		OutputPath: req.Output,
	}
	if err := s.execute(ctx, inv); err != nil {
		return "", err
	}
	status := fmt.Sprintf("Silence below %sdB removed from audio; saved to %s", FormatSeconds(threshold), req.Output)
	return s.finish(ctx, status, req.Output), nil
}

func (s *Service) removeSilenceVideo(ctx context.Context, req RemoveSilenceRequest, info *ffmpeg.MediaInfo, threshold, minDur float64) (string, error) {
	spans, err := s.detectSilence(ctx, req.Input, threshold, minDur)
	if err != nil {
		return "", err
	}

	// No silence found: the splice would be an identity, copy instead.
	if len(spans) == 0 {
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
		status := fmt.Sprintf("No silence below %sdB detected; copied to %s", FormatSeconds(threshold), req.Output)
		return s.finish(ctx, status, req.Output), nil
	}

	keep := keepSpans(spans, info.Duration)
	if len(keep) == 0 {
		return "", fmt.Errorf("%w: the entire file is silent at %sdB", ErrInvalidArgument, FormatSeconds(threshold))
	}
	expr := selectExpr(keep)

	g := filtergraph.New()
	g.Add(filtergraph.Node{
		Filter: "select",
		Params: []filtergraph.Param{{Value: filtergraph.QuoteText(expr)}},
		Inputs: []string{"0:v"},
		Output: "vsel",
	})
	g.Add(filtergraph.Node{
		Filter: "setpts",
		Params: []filtergraph.Param{{Value: "N/FRAME_RATE/TB"}},
		Inputs: []string{"vsel"},
		Output: "v",
	})
	g.Add(filtergraph.Node{
		Filter: "aselect",
		Params: []filtergraph.Param{{Value: filtergraph.QuoteText(expr)}},
		Inputs: []string{"0:a"},
		Output: "asel",
	})
	g.Add(filtergraph.Node{
		Filter: "asetpts",
		Params: []filtergraph.Param{{Value: "N/SR/TB"}},
		Inputs: []string{"asel"},
		Output: "a",
	})
	g.SetFinalVideo("v")
	g.SetFinalAudio("a")
	if err := g.Validate(); err != nil {
		return "", err
	}

	inv := ffmpeg.Invocation{
		Args: []string{
			"-y", "-i", req.Input,
			"-filter_complex", g.String(),
			"-map", "[v]", "-map", "[a]",
			req.Output,
		},
		OutputPath: req.Output,
	}
	if err := s.execute(ctx, inv); err != nil {
		return "", err
	}

	status := fmt.Sprintf("Removed %d silent passage(s) below %sdB; saved to %s",
		len(spans), FormatSeconds(threshold), req.Output)
	return s.finish(ctx, status, req.Output), nil
}

// detectSilence runs a silencedetect analysis pass and parses the spans it
// reports on stderr. The pass decodes audio only and writes nothing.
func (s *Service) detectSilence(ctx context.Context, input string, threshold, minDur float64) ([]silenceSpan, error) {
	filter := fmt.Sprintf("silencedetect=noise=%sdB:d=%s", FormatSeconds(threshold), FormatSeconds(minDur))
	inv := ffmpeg.Invocation{
		Args: []string{"-i", input, "-af", filter, "-vn", "-f", "null", "-"},
	}
	res, err := s.runner.Run(ctx, inv)
	if err != nil {
		return nil, err
	}
	if c := ffmpeg.Classify(res, ""); c.Outcome != ffmpeg.OutcomeSuccess {
		return nil, &EngineExecutionError{Detail: c.Detail, Stderr: res.Stderr}
	}
	return parseSilenceSpans(res.Stderr), nil
}

// parseSilenceSpans extracts silence_start/silence_end pairs from
// silencedetect's stderr output. An unterminated final span (silence that
// runs to end of file) is closed by keepSpans via the file duration.
func parseSilenceSpans(stderr string) []silenceSpan {
	var spans []silenceSpan
	open := -1.0
	for _, line := range strings.Split(stderr, "\n") {
		if !strings.Contains(line, "silencedetect") {
			continue
		}
		if _, after, ok := strings.Cut(line, "silence_start:"); ok {
			if v, err := strconv.ParseFloat(firstField(after), 64); err == nil {
				open = v
			}
			continue
		}
		if _, after, ok := strings.Cut(line, "silence_end:"); ok && open >= 0 {
			if v, err := strconv.ParseFloat(firstField(after), 64); err == nil {
				spans = append(spans, silenceSpan{start: open, end: v})
			}
			open = -1
		}
	}
	if open >= 0 {
		spans = append(spans, silenceSpan{start: open, end: -1})
	}
	return spans
}

func firstField(s string) string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

// keepSpans inverts silent spans into the spans to keep. A span end of -1
// means silence ran to the end of the file.
func keepSpans(silent []silenceSpan, duration float64) []silenceSpan {
	var keep []silenceSpan
	cursor := 0.0
	for _, sp := range silent {
		if sp.start > cursor {
			keep = append(keep, silenceSpan{start: cursor, end: sp.start})
		}
		if sp.end < 0 {
			return keep
		}
		if sp.end > cursor {
			cursor = sp.end
		}
	}
	if duration > cursor {
		keep = append(keep, silenceSpan{start: cursor, end: duration})
	}
	return keep
}

// selectExpr renders keep spans as a sum of between() terms for the
// select and aselect filters.
func selectExpr(keep []silenceSpan) string {
	terms := make([]string, len(keep))
	for i, sp := range keep {
		terms[i] = fmt.Sprintf("between(t,%s,%s)", FormatSeconds(sp.start), FormatSeconds(sp.end))
	}
	return strings.Join(terms, "+")
}
