package synth

import (
	"fmt"
	"strconv"

	"avreap/internal/language"
	"avreap/internal/policy"
	"avreap/internal/prober"
)

// Encoder identifies which external AV1 encoder the command targets.
type Encoder string

const (
	EncoderPrimary   Encoder = "primary"   // libsvtav1
	EncoderSecondary Encoder = "secondary" // libaom-av1
	EncoderTertiary  Encoder = "tertiary"  // librav1e
)

// FFmpegName returns the ffmpeg -c:v value for an encoder identifier.
func (e Encoder) FFmpegName() string {
	switch e {
	case EncoderSecondary:
		return "libaom-av1"
	case EncoderTertiary:
		return "librav1e"
	default:
		return "libsvtav1"
	}
}

// Input carries everything the synthesizer needs to build one argument
// vector: the probed streams (for mapping and language exclusion), the
// chosen video stream index, the policy decision, the target encoder, and
// the source/output paths.
type Input struct {
	SourcePath string
	OutputPath string
	WebLike    bool

	MainVideoIndex int
	Streams        []prober.Stream

	Encoder  Encoder
	Decision policy.Decision
}

// Build returns the ordered ffmpeg argument vector for in.
func Build(in Input) []string {
	var args []string

	if in.WebLike {
		// Timestamp-safety flags: tolerate the loose timestamps common in
		// web-sourced captures so frames are not dropped during decode.
		args = append(args, "-fflags", "+genpts", "-analyzeduration", "100M", "-probesize", "100M")
	}
	args = append(args, "-i", in.SourcePath)

	args = append(args, "-map", fmt.Sprintf("0:%d", in.MainVideoIndex))
	for _, s := range in.Streams {
		if s.Index == in.MainVideoIndex {
			continue
		}
		if s.IsVideo() {
			continue // additional video streams are attached-picture substreams
		}
		if !s.IsAudio() && !s.IsSubtitle() {
			continue
		}
		if language.IsRussian(s.LanguageTag()) {
			continue
		}
		args = append(args, "-map", fmt.Sprintf("0:%d", s.Index))
	}
	args = append(args, "-map_chapters", "0", "-map_metadata", "0")

	if in.Decision.PadFilter != "" {
		args = append(args, "-vf", in.Decision.PadFilter)
	}

	args = append(args, "-c:a", "copy", "-c:s", "copy")
	args = append(args, "-max_muxing_queue_size", "9999")

	args = append(args, encoderTail(in.Encoder, in.Decision)...)

	args = append(args, in.OutputPath)
	return args
}

func encoderTail(encoder Encoder, d policy.Decision) []string {
	switch encoder {
	case EncoderSecondary:
		threads := d.TileColumns * d.TileRows * 4
		return []string{
			"-c:v", "libaom-av1",
			"-crf", strconv.Itoa(d.CRF),
			"-b:v", "0",
			"-row-mt", "1",
			"-tile-columns", strconv.Itoa(d.TileColumns),
			"-tile-rows", strconv.Itoa(d.TileRows),
			"-cpu-used", strconv.Itoa(d.CPUUsed),
			"-threads", strconv.Itoa(threads),
		}
	case EncoderTertiary:
		return []string{
			"-c:v", "librav1e",
			"-qp", strconv.Itoa(d.CRF),
			"-speed", "6",
		}
	default:
		return []string{
			"-c:v", "libsvtav1",
			"-crf", strconv.Itoa(d.CRF),
			"-preset", strconv.Itoa(d.Preset),
			"-threads", "0",
			"-svtav1-params", "lp=0",
		}
	}
}
