package deps

import "strings"

// ResolveFFmpegPath returns the configured ffmpeg binary name, or "ffmpeg"
// when the configuration leaves it blank.
func ResolveFFmpegPath(configured string) string {
	if trimmed := strings.TrimSpace(configured); trimmed != "" {
		return trimmed
	}
	return "ffmpeg"
}

// ResolveFFprobePath returns the configured ffprobe binary name, or
// "ffprobe" when the configuration leaves it blank.
func ResolveFFprobePath(configured string) string {
	if trimmed := strings.TrimSpace(configured); trimmed != "" {
		return trimmed
	}
	return "ffprobe"
}
