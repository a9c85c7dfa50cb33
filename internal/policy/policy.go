package policy

// QualityTier selects the preset adjustment for the primary encoder.
type QualityTier string

const (
	QualityHigh     QualityTier = "high"
	QualityVeryHigh QualityTier = "very_high"
)

// Input carries the fields policy decisions are computed from.
type Input struct {
	Height      int
	Width       int
	BitRateBPS  int64
	WebLike     bool
	QualityTier QualityTier
}

// Decision is the full set of encoder parameters policy computes for one
// job, independent of which encoder the command synthesizer ultimately
// targets.
type Decision struct {
	CRF             int
	Preset          int // primary encoder
	TileColumns     int // secondary encoder
	TileRows        int // secondary encoder
	CPUUsed         int // secondary encoder
	PadFilter       string
	TimestampSafety bool
}

// CRF computes the constant-rate-factor target from height, with a +1
// bump when the source bitrate sits below the resolution tier's floor.
func CRF(height int, bitRateBPS int64) int {
	var base, floorMbps int
	switch {
	case height >= 2160:
		base, floorMbps = 21, 20
	case height >= 1440:
		base, floorMbps = 22, 10
	case height >= 1080:
		base, floorMbps = 23, 5
	default:
		base, floorMbps = 24, 2
	}
	mbps := float64(bitRateBPS) / 1_000_000
	if bitRateBPS > 0 && mbps < float64(floorMbps) {
		return base + 1
	}
	return base
}

// Preset computes the primary encoder's preset from height and quality
// tier. Higher quality tiers lower the preset (slower, better quality),
// saturating at 0.
func Preset(height int, tier QualityTier) int {
	var preset int
	switch {
	case height >= 2160:
		preset = 3
	case height >= 1440:
		preset = 4
	case height >= 1080:
		preset = 4
	default:
		preset = 5
	}
	if tier == QualityVeryHigh {
		preset--
	}
	if preset < 0 {
		preset = 0
	}
	return preset
}

// TileLayout computes the secondary encoder's tile column/row split from
// height.
func TileLayout(height int) (columns, rows int) {
	switch {
	case height <= 1080:
		return 2, 1
	case height <= 2160:
		return 2, 2
	default:
		return 3, 2
	}
}

// CPUUsed computes the secondary encoder's speed/quality tradeoff knob
// from height.
func CPUUsed(height int) int {
	switch {
	case height > 1080:
		return 3
	case height == 1080:
		return 4
	default:
		return 5
	}
}

// NeedsPadFilter reports whether the source needs even-dimension padding:
// required for WebLike sources (which often carry odd crop artifacts) or
// whenever either dimension is itself odd.
func NeedsPadFilter(webLike bool, width, height int) bool {
	return webLike || width%2 != 0 || height%2 != 0
}

// PadFilterExpr returns the ffmpeg filter expression that pads width and
// height up to the next even value and resets the sample aspect ratio.
func PadFilterExpr() string {
	return "pad=ceil(iw/2)*2:ceil(ih/2)*2,setsar=1"
}

// Decide computes the complete policy decision for a job.
func Decide(in Input) Decision {
	d := Decision{
		CRF:             CRF(in.Height, in.BitRateBPS),
		Preset:          Preset(in.Height, in.QualityTier),
		TimestampSafety: in.WebLike,
	}
	d.TileColumns, d.TileRows = TileLayout(in.Height)
	d.CPUUsed = CPUUsed(in.Height)
	if NeedsPadFilter(in.WebLike, in.Width, in.Height) {
		d.PadFilter = PadFilterExpr()
	}
	return d
}
