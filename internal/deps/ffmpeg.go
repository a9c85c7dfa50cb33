package deps

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

var commandOutput = func(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output() //nolint:gosec
}

// MinimumFFmpegMajorVersion is the lowest ffmpeg major version avreap
// supports; earlier releases ship an SVT-AV1 build too old to trust.
const MinimumFFmpegMajorVersion = 8

var ffmpegVersionLine = regexp.MustCompile(`^ffmpeg version (\S+)`)

// VersionInfo reports ffmpeg's reported version string and parsed major version.
type VersionInfo struct {
	Raw   string
	Major int
}

// CheckFFmpegVersion runs "<binary> -version" and parses the major version
// out of its first line. It returns an error when the binary cannot be run
// or its first line is not a parseable "ffmpeg version" line; the returned
// VersionInfo is then zero.
func CheckFFmpegVersion(binary string) (VersionInfo, error) {
	out, err := commandOutput(binary, "-version")
	if err != nil {
		return VersionInfo{}, fmt.Errorf("run %s -version: %w", binary, err)
	}
	firstLine, _, _ := strings.Cut(string(out), "\n")
	match := ffmpegVersionLine.FindStringSubmatch(strings.TrimSpace(firstLine))
	if match == nil {
		return VersionInfo{}, fmt.Errorf("unrecognized ffmpeg -version output: %q", firstLine)
	}
	token := match[1]
	numeric, _, _ := strings.Cut(token, "-")
	major, convErr := strconv.Atoi(strings.SplitN(numeric, ".", 2)[0])
	if convErr != nil {
		return VersionInfo{}, fmt.Errorf("parse ffmpeg major version from %q: %w", token, convErr)
	}
	return VersionInfo{Raw: token, Major: major}, nil
}

// AV1Encoder identifies one of the three AV1 encoders avreap can target.
type AV1Encoder string

const (
	EncoderPrimary   AV1Encoder = "libsvtav1"
	EncoderSecondary AV1Encoder = "libaom-av1"
	EncoderTertiary  AV1Encoder = "librav1e"
)

var allAV1Encoders = []AV1Encoder{EncoderPrimary, EncoderSecondary, EncoderTertiary}

// ErrNoAV1Encoder is returned when ffmpeg's -encoders output names none of
// the three supported AV1 encoders.
var ErrNoAV1Encoder = errors.New("no AV1 encoder available in ffmpeg build")

// AvailableAV1Encoders runs "<binary> -encoders" and reports which of the
// supported AV1 encoders the build includes, in primary/secondary/tertiary
// preference order.
func AvailableAV1Encoders(binary string) ([]AV1Encoder, error) {
	out, err := commandOutput(binary, "-encoders")
	if err != nil {
		return nil, fmt.Errorf("run %s -encoders: %w", binary, err)
	}
	text := string(out)
	var found []AV1Encoder
	for _, enc := range allAV1Encoders {
		if strings.Contains(text, string(enc)) {
			found = append(found, enc)
		}
	}
	if len(found) == 0 {
		return nil, ErrNoAV1Encoder
	}
	return found, nil
}
