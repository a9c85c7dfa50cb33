package classifier

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"avreap/internal/job"
)

var foldUpper = cases.Upper(language.Und)

var webTokens = []string{"WEB-DL", "WEBDL", "WEBRIP", "WEB", "NF", "AMZN", "DSNP", "HULU", "ATVP"}

var discTokens = []string{"BLU-RAY", "BLURAY", "REMUX", "BDMV", "UHD"}

const (
	tokenScore   = 10
	bitrateScore = 5
	codecScore   = 5

	gib = 1 << 30
)

// Input carries the fields the classifier scores. Path is matched against
// the token vocabulary case-insensitively via Unicode upper-casing so
// locale-specific casing of release-group tags never causes a miss.
type Input struct {
	Path       string
	Height     int
	BitRateBPS int64
	Codec      string
	SizeBytes  int64
}

// Classify scores a candidate WebLike vs DiscLike from path tokens,
// resolution-relative bitrate thresholds, and codec.
func Classify(in Input) job.Classification {
	folded := foldUpper.String(in.Path)

	web, disc := 0, 0
	var reasons []string

	for _, token := range webTokens {
		if strings.Contains(folded, token) {
			web += tokenScore
			reasons = append(reasons, "path token "+token+" (+10 web)")
		}
	}
	for _, token := range discTokens {
		if strings.Contains(folded, token) {
			disc += tokenScore
			reasons = append(reasons, "path token "+token+" (+10 disc)")
		}
	}

	mbps := float64(in.BitRateBPS) / 1_000_000
	switch {
	case in.Height >= 2160 && mbps > 0 && mbps < 10:
		web += bitrateScore
		reasons = append(reasons, "bitrate below 10 Mbps at 2160p (+5 web)")
	case in.Height >= 1080 && in.Height < 2160 && mbps > 0 && mbps < 5:
		web += bitrateScore
		reasons = append(reasons, "bitrate below 5 Mbps at 1080p (+5 web)")
	}
	switch {
	case in.Height >= 2160 && mbps > 40:
		disc += bitrateScore
		reasons = append(reasons, "bitrate above 40 Mbps at 2160p (+5 disc)")
	case in.Height >= 1080 && in.Height < 2160 && mbps > 15:
		disc += bitrateScore
		reasons = append(reasons, "bitrate above 15 Mbps at 1080p (+5 disc)")
	}
	if in.SizeBytes > 20*gib {
		disc += bitrateScore
		reasons = append(reasons, "file size above 20 GiB (+5 disc)")
	}

	if strings.EqualFold(in.Codec, "vp9") {
		web += codecScore
		reasons = append(reasons, "codec vp9 (+5 web)")
	}

	class := "unknown"
	switch {
	case web > disc:
		class = "web_like"
	case disc > web:
		class = "disc_like"
	}

	return job.Classification{
		Class:     class,
		WebScore:  web,
		DiscScore: disc,
		Reasons:   reasons,
	}
}
