package edit

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/misbahsy/video-audio-mcp/internal/ffmpeg"
)

// streamPlan is the per-stream outcome of the copy/re-encode decision.
type streamPlan struct {
	copyStream bool
	args       []string
}

// ConvertVideo changes any combination of container, resolution, codecs,
// bitrates and frame rate. Each stream is copied when every requested
// property already matches the source, and re-encoded otherwise; a single
// differing property forces re-encode for that stream only.
func (s *Service) ConvertVideo(ctx context.Context, req ConvertVideoRequest) (string, error) {
	if err := validateInputs(req.Input); err != nil {
		return "", err
	}
	if err := ensureOutputDir(req.Output); err != nil {
		return "", err
	}

	info, err := s.prober.Probe(ctx, req.Input)
	if err != nil {
		return "", err
	}

	video, err := s.planVideoStream(req, info)
	if err != nil {
		return "", err
	}
	audio := s.planAudioStream(videoAudioParams{
		codec:      req.AudioCodec,
		bitrate:    req.AudioBitrate,
		sampleRate: req.SampleRate,
		channels:   req.Channels,
	}, info)

	if err := s.checkTarget(req.Format, req.Output, video, audio, info); err != nil {
		return "", err
	}

	formatArgs := muxerArgs(req.Format)

	assemble := func(v, a streamPlan) ffmpeg.Invocation {
		args := []string{"-y", "-i", req.Input}
		if info.HasVideo {
			args = append(args, v.args...)
		}
		if info.HasAudio {
			args = append(args, a.args...)
		}
		args = append(args, formatArgs...)
		args = append(args, req.Output)
		return ffmpeg.Invocation{Args: args, OutputPath: req.Output}
	}

	primary := assemble(video, audio)
	fellBack := false
	if video.copyStream || audio.copyStream {
		fallback := assemble(
			s.reencodeVideoPlan(req, info),
			s.reencodeAudioPlan(videoAudioParams{
				codec:      req.AudioCodec,
				bitrate:    req.AudioBitrate,
				sampleRate: req.SampleRate,
				channels:   req.Channels,
			}),
		)
		fellBack, err = s.executeWithFallback(ctx, primary, fallback)
	} else {
		err = s.execute(ctx, primary)
	}
	if err != nil {
		return "", err
	}

	status := fmt.Sprintf("Video converted successfully to %s (%s)",
		req.Output, describePlans(info, video, audio, fellBack))
	return s.finish(ctx, status, req.Output), nil
}

// videoAudioParams are the audio-track properties a conversion may request.
type videoAudioParams struct {
	codec      string
	bitrate    string
	sampleRate int
	channels   int
}

// planVideoStream decides copy vs re-encode for the video stream.
func (s *Service) planVideoStream(req ConvertVideoRequest, info *ffmpeg.MediaInfo) (streamPlan, error) {
	if !info.HasVideo {
		return streamPlan{}, nil
	}

	matches := true
	if req.Resolution != "" {
		w, h, err := parseResolution(req.Resolution)
		if err != nil {
			return streamPlan{}, err
		}
		if h != info.Height || (w > 0 && w != info.Width) {
			matches = false
		}
	}
	if req.VideoCodec != "" && !sameCodec(req.VideoCodec, info.VideoCodec) {
		matches = false
	}
	if req.FrameRate > 0 && req.FrameRate != int(info.FrameRate+0.5) {
		matches = false
	}
	if req.VideoBitrate != "" {
		want, err := parseRate(req.VideoBitrate)
		if err != nil {
			return streamPlan{}, err
		}
		if info.VideoBitrate == 0 || want != info.VideoBitrate {
			matches = false
		}
	}

	if matches {
		return streamPlan{copyStream: true, args: []string{"-c:v", "copy"}}, nil
	}
	return s.reencodeVideoPlan(req, info), nil
}

// reencodeVideoPlan renders the full re-encode directive for the video
// stream, applying requested properties over the defaults record.
func (s *Service) reencodeVideoPlan(req ConvertVideoRequest, info *ffmpeg.MediaInfo) streamPlan {
	if !info.HasVideo {
		return streamPlan{}
	}

	codec := req.VideoCodec
	if codec == "" {
		codec = s.defaults.VideoCodec
	}
	args := []string{"-c:v", codec}

	if req.Resolution != "" {
		args = append(args, "-vf", scaleFilter(req.Resolution))
	}
	if req.FrameRate > 0 {
		args = append(args, "-r", strconv.Itoa(req.FrameRate))
	}
	if req.VideoBitrate != "" {
		args = append(args, "-b:v", req.VideoBitrate)
	}

	fam := codecFamily(codec)
	if fam == "h264" || fam == "hevc" {
		args = append(args, "-preset", s.defaults.Preset)
		if req.VideoBitrate == "" {
			args = append(args, "-crf", strconv.Itoa(s.defaults.CRF))
		}
		args = append(args, "-pix_fmt", s.defaults.PixelFormat)
	}

	return streamPlan{args: args}
}

// planAudioStream decides copy vs re-encode for the audio stream.
func (s *Service) planAudioStream(p videoAudioParams, info *ffmpeg.MediaInfo) streamPlan {
	if !info.HasAudio {
		return streamPlan{}
	}

	matches := true
	if p.codec != "" && !sameCodec(p.codec, info.AudioCodec) {
		matches = false
	}
	if p.sampleRate > 0 && p.sampleRate != info.SampleRate {
		matches = false
	}
	if p.channels > 0 && p.channels != info.Channels {
		matches = false
	}
	if p.bitrate != "" {
		want, err := parseRate(p.bitrate)
		if err != nil || info.AudioBitrate == 0 || want != info.AudioBitrate {
			matches = false
		}
	}

	if matches {
		return streamPlan{copyStream: true, args: []string{"-c:a", "copy"}}
	}
	return s.reencodeAudioPlan(p)
}

func (s *Service) reencodeAudioPlan(p videoAudioParams) streamPlan {
	codec := p.codec
	if codec == "" {
		codec = s.defaults.AudioCodec
	}
	args := []string{"-c:a", codec}
	if p.bitrate != "" {
		args = append(args, "-b:a", p.bitrate)
	} else {
		args = append(args, "-b:a", s.defaults.AudioBitrate)
	}
	if p.sampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(p.sampleRate))
	}
	if p.channels > 0 {
		args = append(args, "-ac", strconv.Itoa(p.channels))
	}
	return streamPlan{args: args}
}

// checkTarget fails fast when the codecs that would land in the target
// container are not supported by it.
func (s *Service) checkTarget(format, output string, video, audio streamPlan, info *ffmpeg.MediaInfo) error {
	target := format
	if target == "" {
		target = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	}

	var vfam, afam string
	if info.HasVideo {
		if video.copyStream {
			vfam = codecFamily(info.VideoCodec)
		} else {
			vfam = plannedCodecFamily(video.args, "-c:v")
		}
	}
	if info.HasAudio {
		if audio.copyStream {
			afam = codecFamily(info.AudioCodec)
		} else {
			afam = plannedCodecFamily(audio.args, "-c:a")
		}
	}
	return checkCombination(target, vfam, afam)
}

// plannedCodecFamily reads the codec out of an assembled stream directive.
func plannedCodecFamily(args []string, flag string) string {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag {
			return codecFamily(args[i+1])
		}
	}
	return ""
}

// ConvertAudio changes an audio file's container and properties. Video
// streams (cover art) are dropped.
func (s *Service) ConvertAudio(ctx context.Context, req ConvertAudioRequest) (string, error) {
	if err := validateInputs(req.Input); err != nil {
		return "", err
	}
	if err := ensureOutputDir(req.Output); err != nil {
		return "", err
	}

	info, err := s.prober.Probe(ctx, req.Input)
	if err != nil {
		return "", err
	}
	if !info.HasAudio {
		return "", fmt.Errorf("%w: %s has no audio stream", ErrInvalidArgument, req.Input)
	}

	params := videoAudioParams{
		codec:      req.Codec,
		bitrate:    req.Bitrate,
		sampleRate: req.SampleRate,
		channels:   req.Channels,
	}
	plan := s.planAudioStream(params, info)

	target := req.Format
	if target == "" {
		target = strings.TrimPrefix(strings.ToLower(filepath.Ext(req.Output)), ".")
	}
	afam := codecFamily(info.AudioCodec)
	if !plan.copyStream {
		afam = plannedCodecFamily(plan.args, "-c:a")
	}
	// A copy plan with no explicit codec lands the source codec in the new
	// container; route incompatible pairs to the container's default
	// encoder instead of failing.
	if plan.copyStream && checkCombination(target, "", afam) != nil && req.Codec == "" {
		plan = s.reencodeAudioPlan(videoAudioParams{
			codec:      defaultAudioEncoderFor(target),
			bitrate:    req.Bitrate,
			sampleRate: req.SampleRate,
			channels:   req.Channels,
		})
		afam = plannedCodecFamily(plan.args, "-c:a")
	}
	if err := checkCombination(target, "", afam); err != nil {
		return "", err
	}

	assemble := func(p streamPlan) ffmpeg.Invocation {
		args := []string{"-y", "-i", req.Input, "-vn"}
		args = append(args, p.args...)
		args = append(args, muxerArgs(req.Format)...)
		args = append(args, req.Output)
		return ffmpeg.Invocation{Args: args, OutputPath: req.Output}
	}

	fellBack := false
	if plan.copyStream {
		fallback := s.reencodeAudioPlan(videoAudioParams{
			codec:      defaultAudioEncoderFor(target),
			bitrate:    req.Bitrate,
			sampleRate: req.SampleRate,
			channels:   req.Channels,
		})
		var err error
		fellBack, err = s.executeWithFallback(ctx, assemble(plan), assemble(fallback))
		if err != nil {
			return "", err
		}
	} else if err := s.execute(ctx, assemble(plan)); err != nil {
		return "", err
	}

	mode := "re-encoded"
	if plan.copyStream && !fellBack {
		mode = "stream copy"
	} else if fellBack {
		mode = "re-encoded after stream copy was rejected"
	}
	status := fmt.Sprintf("Audio converted successfully (%s) to %s", mode, req.Output)
	return s.finish(ctx, status, req.Output), nil
}

// defaultAudioEncoderFor picks the natural encoder for an audio container.
func defaultAudioEncoderFor(format string) string {
	switch strings.ToLower(format) {
	case "mp3":
		return "libmp3lame"
	case "wav":
		return "pcm_s16le"
	case "flac":
		return "flac"
	case "ogg":
		return "libvorbis"
	case "opus":
		return "libopus"
	default:
		return "aac"
	}
}

// describePlans renders the per-stream decision for the status string.
func describePlans(info *ffmpeg.MediaInfo, video, audio streamPlan, fellBack bool) string {
	if fellBack {
		return "re-encoded after stream copy was rejected"
	}
	var parts []string
	if info.HasVideo {
		if video.copyStream {
			parts = append(parts, "video copied")
		} else {
			parts = append(parts, "video re-encoded")
		}
	}
	if info.HasAudio {
		if audio.copyStream {
			parts = append(parts, "audio copied")
		} else {
			parts = append(parts, "audio re-encoded")
		}
	}
	if len(parts) == 0 {
		return "no streams"
	}
	return strings.Join(parts, ", ")
}

// muxerArgs renders the explicit container directive, when one was asked for.
func muxerArgs(format string) []string {
	if format == "" {
		return nil
	}
	return []string{"-f", muxerName(format)}
}

// parseResolution accepts "WxH" or a bare height (width follows the
// source aspect). Width 0 means "derive".
func parseResolution(res string) (w, h int, err error) {
	res = strings.TrimSpace(strings.ToLower(res))
	if wPart, hPart, ok := strings.Cut(res, "x"); ok {
		w, err1 := strconv.Atoi(wPart)
		h, err2 := strconv.Atoi(hPart)
		if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
			return 0, 0, fmt.Errorf("%w: resolution %q", ErrInvalidArgument, res)
		}
		return w, h, nil
	}
	h, err = strconv.Atoi(res)
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("%w: resolution %q", ErrInvalidArgument, res)
	}
	return 0, h, nil
}

// scaleFilter renders the scale expression for a requested resolution.
// Bare heights keep the aspect ratio with an even width.
func scaleFilter(res string) string {
	res = strings.TrimSpace(strings.ToLower(res))
	if strings.Contains(res, "x") {
		return "scale=" + strings.Replace(res, "x", ":", 1)
	}
	return "scale=-2:" + res
}

// parseRate converts "128k", "2.5M" or plain bits-per-second to an int.
func parseRate(rate string) (int, error) {
	r := strings.TrimSpace(strings.ToLower(rate))
	mult := 1.0
	switch {
	case strings.HasSuffix(r, "k"):
		mult, r = 1e3, strings.TrimSuffix(r, "k")
	case strings.HasSuffix(r, "m"):
		mult, r = 1e6, strings.TrimSuffix(r, "m")
	}
	v, err := strconv.ParseFloat(r, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: bitrate %q", ErrInvalidArgument, rate)
	}
	return int(v * mult), nil
}
