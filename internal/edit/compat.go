package edit

import (
	"fmt"
	"strings"
)

// containerSupport lists which codec families each container accepts. An
// entry of nil video or audio means the container carries no such stream.
// Requests pairing a codec with a container outside this table fail fast
// with ErrUnsupportedCombination instead of letting the engine die mid-run.
type containerSupport struct {
	muxer string // ffmpeg muxer name when it differs from the format name
	video []string
	audio []string
}

var containers = map[string]containerSupport{
	"mp4":  {video: []string{"h264", "hevc", "mpeg4", "vp9", "av1"}, audio: []string{"aac", "mp3", "ac3", "opus", "alac"}},
	"mov":  {video: []string{"h264", "hevc", "mpeg4", "prores", "mjpeg"}, audio: []string{"aac", "mp3", "pcm_s16le", "pcm_s24le", "pcm_s32le", "pcm_f32le", "alac"}},
	"mkv":  {muxer: "matroska", video: []string{"*"}, audio: []string{"*"}},
	"webm": {video: []string{"vp8", "vp9", "av1"}, audio: []string{"opus", "vorbis"}},
	"avi":  {video: []string{"mpeg4", "mjpeg", "h264", "rawvideo"}, audio: []string{"mp3", "pcm_s16le", "ac3"}},
	"flv":  {video: []string{"h264", "flv1"}, audio: []string{"aac", "mp3"}},
	"mpegts": {video: []string{"h264", "hevc", "mpeg2video"}, audio: []string{"aac", "mp3", "ac3"}},

	// Audio containers.
	"mp3":  {audio: []string{"mp3"}},
	"wav":  {audio: []string{"pcm_s16le", "pcm_s24le", "pcm_u8", "pcm_f32le"}},
	"flac": {audio: []string{"flac"}},
	"m4a":  {muxer: "ipod", audio: []string{"aac", "alac"}},
	"aac":  {muxer: "adts", audio: []string{"aac"}},
	"ogg":  {video: []string{"theora"}, audio: []string{"vorbis", "opus", "flac"}},
	"opus": {audio: []string{"opus"}},
}

// encoderFamilies maps encoder names users pass in to the codec family the
// probe reports, so "libx264" compares equal to a source stream probed as
// "h264".
var encoderFamilies = map[string]string{
	"libx264":    "h264",
	"h264":       "h264",
	"libx265":    "hevc",
	"hevc":       "hevc",
	"h265":       "hevc",
	"libvpx":     "vp8",
	"vp8":        "vp8",
	"libvpx-vp9": "vp9",
	"vp9":        "vp9",
	"libaom-av1": "av1",
	"libsvtav1":  "av1",
	"av1":        "av1",
	"libmp3lame": "mp3",
	"mp3":        "mp3",
	"libopus":    "opus",
	"opus":       "opus",
	"libvorbis":  "vorbis",
	"vorbis":     "vorbis",
	"aac":        "aac",
	"alac":       "alac",
	"flac":       "flac",
	"ac3":        "ac3",
	"prores_ks":  "prores",
	"prores":     "prores",
}

// codecFamily normalizes an encoder or probed codec name to its family.
func codecFamily(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if fam, ok := encoderFamilies[n]; ok {
		return fam
	}
	return n
}

// sameCodec reports whether a requested encoder targets the codec family
// the source already has.
func sameCodec(requested, source string) bool {
	if requested == "" || source == "" {
		return false
	}
	return codecFamily(requested) == codecFamily(source)
}

// muxerName maps a user-facing format name to the ffmpeg muxer name.
func muxerName(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if c, ok := containers[f]; ok && c.muxer != "" {
		return c.muxer
	}
	return f
}

// checkCombination fails fast when the requested container cannot carry
// the codecs that would land in it. Codec arguments are codec families (or
// "" when the stream is absent). Unknown containers are let through; the
// engine is the authority on formats this table doesn't know.
func checkCombination(format, videoCodec, audioCodec string) error {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		return nil
	}
	c, ok := containers[f]
	if !ok {
		return nil
	}

	if videoCodec != "" {
		if err := checkCodecList(f, "video", codecFamily(videoCodec), c.video); err != nil {
			return err
		}
	}
	if audioCodec != "" {
		if err := checkCodecList(f, "audio", codecFamily(audioCodec), c.audio); err != nil {
			return err
		}
	}
	return nil
}

func checkCodecList(format, kind, family string, allowed []string) error {
	if len(allowed) == 0 {
		return fmt.Errorf("%w: container %q carries no %s stream (got %q)",
			ErrUnsupportedCombination, format, kind, family)
	}
	for _, a := range allowed {
		if a == "*" || a == family {
			return nil
		}
	}
	return fmt.Errorf("%w: %s codec %q is not supported by container %q",
		ErrUnsupportedCombination, kind, family, format)
}

// copyIncompatibilityPatterns are the stderr fragments that mark a failed
// stream copy as a container/codec mismatch worth retrying as a re-encode.
// Anything else is a genuine failure and is not retried.
var copyIncompatibilityPatterns = []string{
	"codec not currently supported in container",
	"could not find tag for codec",
	"filtering and streamcopy cannot be used together",
	"only vp8 or vp9 or av1 video",
	"exactly one mp3 audio stream is required",
	"could not write header",
	"does not support stream copy",
}

// isCopyIncompatibility reports whether stderr indicates the fast path was
// rejected for copy-compatibility reasons rather than failing outright.
func isCopyIncompatibility(stderr string) bool {
	s := strings.ToLower(stderr)
	for _, p := range copyIncompatibilityPatterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
