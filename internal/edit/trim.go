package edit

import (
	"context"
	"fmt"

	"github.com/misbahsy/video-audio-mcp/internal/ffmpeg"
)

// Trim cuts the input to [Start, End). It tries stream copy first and
// falls back to a re-encode when the engine rejects the copy.
func (s *Service) Trim(ctx context.Context, req TrimRequest) (string, error) {
	if err := validateInputs(req.Input); err != nil {
		return "", err
	}
	if err := ensureOutputDir(req.Output); err != nil {
		return "", err
	}

	start, err := ParseTimestamp(req.Start)
	if err != nil {
		return "", err
	}
	end, err := ParseTimestamp(req.End)
	if err != nil {
		return "", err
	}
	if start >= end {
		return "", fmt.Errorf("%w: start %s is not before end %s", ErrInvalidTimeRange, req.Start, req.End)
	}

	base := []string{
		"-y",
		"-ss", FormatSeconds(start),
		"-to", FormatSeconds(end),
		"-i", req.Input,
	}

	primary := ffmpeg.Invocation{
		Args:       append(append([]string{}, base...), "-c", "copy", req.Output),
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

	status := fmt.Sprintf("Video trimmed successfully (stream copy) to %s", req.Output)
	if fellBack {
		status = fmt.Sprintf("Video trimmed successfully (re-encoded) to %s", req.Output)
	}
	return s.finish(ctx, status, req.Output), nil
}

// ExtractAudio pulls the audio track out of a video file.
func (s *Service) ExtractAudio(ctx context.Context, req ExtractAudioRequest) (string, error) {
	if err := validateInputs(req.Input); err != nil {
		return "", err
	}
	if err := ensureOutputDir(req.Output); err != nil {
		return "", err
	}

	codec := req.AudioCodec
	if codec == "" {
		codec = s.defaults.ExtractAudioCodec
	}

	inv := ffmpeg.Invocation{
		Args: []string{
			"-y",
			"-i", req.Input,
			"-vn",
			"-acodec", codec,
			req.Output,
		},
		OutputPath: req.Output,
	}
	if err := s.execute(ctx, inv); err != nil {
		return "", err
	}

	status := fmt.Sprintf("Audio extracted successfully to %s", req.Output)
	return s.finish(ctx, status, req.Output), nil
}
