package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrProbeFailed is returned when ffprobe cannot inspect a file.
var ErrProbeFailed = errors.New("ffprobe execution failed")

// MediaInfo holds the source properties the assembler needs to decide
// between stream copy and re-encode.
type MediaInfo struct {
	Duration   float64
	HasVideo   bool
	HasAudio   bool
	VideoCodec string
	AudioCodec string
	Width      int
	Height     int
	FrameRate  float64
	SampleRate int
	Channels   int
	// ChannelLayout is e.g. "stereo" or "mono"; defaults to "stereo"
	// when the source does not report one.
	ChannelLayout string
	// VideoBitrate and AudioBitrate are in bits per second; zero when
	// the container does not report per-stream rates.
	VideoBitrate int
	AudioBitrate int
}

// Prober inspects media files with ffprobe.
type Prober struct {
	ffprobePath string
}

// NewProber creates a Prober. An empty path defaults to "ffprobe".
func NewProber(ffprobePath string) *Prober {
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Prober{ffprobePath: ffprobePath}
}

// probePayload mirrors the subset of ffprobe's JSON output we consume.
type probePayload struct {
	Streams []struct {
		CodecType     string `json:"codec_type"`
		CodecName     string `json:"codec_name"`
		Width         int    `json:"width"`
		Height        int    `json:"height"`
		AvgFrameRate  string `json:"avg_frame_rate"`
		SampleRate    string `json:"sample_rate"`
		Channels      int    `json:"channels"`
		ChannelLayout string `json:"channel_layout"`
		BitRate       string `json:"bit_rate"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe returns the key properties of a media file.
func (p *Prober) Probe(ctx context.Context, path string) (*MediaInfo, error) {
	// #nosec G204 - ffprobePath comes from configuration
	cmd := exec.CommandContext(ctx, p.ffprobePath,
		"-v", "error",
		"-show_format",
		"-show_streams",
		"-print_format", "json",
		path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("ffprobe cancelled: %w", ctx.Err())
		}
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrEngineNotFound, p.ffprobePath)
		}
		return nil, fmt.Errorf("%w: %s", ErrProbeFailed, LastDiagnosticLine(stderr.String()))
	}

	var payload probePayload
	if err := json.Unmarshal(stdout.Bytes(), &payload); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}

	info := &MediaInfo{ChannelLayout: "stereo"}
	if d, err := strconv.ParseFloat(payload.Format.Duration, 64); err == nil {
		info.Duration = d
	}

	for _, s := range payload.Streams {
		switch s.CodecType {
		case "video":
			// First stream of each type wins; secondary streams are
			// not part of the copy/re-encode decision.
			if info.HasVideo {
				continue
			}
			info.HasVideo = true
			info.VideoCodec = s.CodecName
			info.Width = s.Width
			info.Height = s.Height
			info.FrameRate = parseFrameRate(s.AvgFrameRate)
			info.VideoBitrate = parseBitrate(s.BitRate)
		case "audio":
			if info.HasAudio {
				continue
			}
			info.HasAudio = true
			info.AudioCodec = s.CodecName
			info.Channels = s.Channels
			if s.ChannelLayout != "" {
				info.ChannelLayout = s.ChannelLayout
			}
			if sr, err := strconv.Atoi(s.SampleRate); err == nil {
				info.SampleRate = sr
			}
			info.AudioBitrate = parseBitrate(s.BitRate)
		}
	}

	return info, nil
}

// parseFrameRate converts ffprobe's "num/den" notation to frames per second.
func parseFrameRate(raw string) float64 {
	num, den, ok := strings.Cut(raw, "/")
	if !ok {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0
		}
		return f
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}

func parseBitrate(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
