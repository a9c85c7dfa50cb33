package prober

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNoVideoStream is returned by SelectMainVideoStream when a probe
// result contains no video stream at all.
var ErrNoVideoStream = errors.New("probe result has no video stream")

// Disposition mirrors ffprobe's per-stream disposition flags.
type Disposition struct {
	Default int `json:"default"`
}

// Tags mirrors the stream-level tag map, narrowed to the language field
// the command synthesizer's exclusion rule reads.
type Tags struct {
	Language string `json:"language"`
}

// Stream describes a single stream in the container.
type Stream struct {
	Index            int         `json:"index"`
	CodecType        string      `json:"codec_type"`
	CodecName        string      `json:"codec_name"`
	Width            int         `json:"width"`
	Height           int         `json:"height"`
	BitRate          string      `json:"bit_rate"`
	RFrameRate       string      `json:"r_frame_rate"`
	PixFmt           string      `json:"pix_fmt"`
	BitsPerRawSample string      `json:"bits_per_raw_sample"`
	Disposition      Disposition `json:"disposition"`
	Tags             Tags        `json:"tags"`
}

// IsVideo reports whether the stream is a video stream.
func (s Stream) IsVideo() bool {
	return strings.EqualFold(s.CodecType, "video")
}

// IsAudio reports whether the stream is an audio stream.
func (s Stream) IsAudio() bool {
	return strings.EqualFold(s.CodecType, "audio")
}

// IsSubtitle reports whether the stream is a subtitle stream.
func (s Stream) IsSubtitle() bool {
	return strings.EqualFold(s.CodecType, "subtitle")
}

// BitRateBPS returns the stream bitrate in bits per second, or 0 when
// absent or unparseable.
func (s Stream) BitRateBPS() int64 {
	return parseNonNegativeInt(s.BitRate)
}

// BitDepth returns the reported bit depth, or 0 when absent.
func (s Stream) BitDepth() int {
	return int(parseNonNegativeInt(s.BitsPerRawSample))
}

// IsHDR is a heuristic over pixel format and bit depth: sources encoded
// above 8-bit depth are treated as HDR-capable for policy purposes.
func (s Stream) IsHDR() bool {
	return s.BitDepth() > 8 || strings.Contains(strings.ToLower(s.PixFmt), "p10")
}

// LanguageTag normalizes the stream's language tag for exclusion checks.
func (s Stream) LanguageTag() string {
	return strings.ToLower(strings.TrimSpace(s.Tags.Language))
}

// Format captures container-level metadata.
type Format struct {
	Duration string `json:"duration"`
	Size     string `json:"size"`
	BitRate  string `json:"bit_rate"`
}

// Result represents the parsed output from one probe invocation.
type Result struct {
	Format  Format   `json:"format"`
	Streams []Stream `json:"streams"`
}

// Inspect executes the prober binary against path and decodes its JSON
// response. The argument vector requests quiet logging, JSON output, and
// both format and stream information, per the external-prober contract.
func Inspect(ctx context.Context, binary, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("probe: empty path")
	}

	cmd := exec.CommandContext(ctx, binary,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		"--", path,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, fmt.Errorf("probe %s: %w: %s", path, err, strings.TrimSpace(string(output)))
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("probe %s: parse json: %w", path, err)
	}
	return result, nil
}

// DurationSeconds returns the container duration, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	return parseFloat(r.Format.Duration)
}

// SizeBytes returns the reported container size, or 0 when unavailable.
func (r Result) SizeBytes() int64 {
	return parseNonNegativeInt(r.Format.Size)
}

// BitRateBPS returns the container bitrate, or 0 when unavailable.
func (r Result) BitRateBPS() int64 {
	return parseNonNegativeInt(r.Format.BitRate)
}

// VideoStreamCount returns the number of video streams in the result.
func (r Result) VideoStreamCount() int {
	count := 0
	for _, s := range r.Streams {
		if s.IsVideo() {
			count++
		}
	}
	return count
}

// SelectMainVideoStream picks the first video stream with the default
// disposition set, falling back to the first video stream in index order.
// Returns ErrNoVideoStream when the result has no video stream at all.
func (r Result) SelectMainVideoStream() (Stream, error) {
	var first *Stream
	for i := range r.Streams {
		s := r.Streams[i]
		if !s.IsVideo() {
			continue
		}
		if first == nil {
			first = &r.Streams[i]
		}
		if s.Disposition.Default == 1 {
			return s, nil
		}
	}
	if first == nil {
		return Stream{}, ErrNoVideoStream
	}
	return *first, nil
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}

func parseNonNegativeInt(value string) int64 {
	f := parseFloat(value)
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	return int64(f)
}
