// Package job defines the job record persisted for every candidate the
// scanner discovers and the state machine the controller drives it through.
package job

import (
	"strings"
	"time"
)

// Status is the job's wire-stable lifecycle status, the contract shared
// with the external viewer. It only ever takes one of five values; the
// controller's finer-grained internal progress through PROBING, PLANNING,
// ENCODING, VALIDATING, SIZE_GATING, and REPLACING is recorded in Phase so
// a crash mid-job can be diagnosed without widening the status contract.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

var allStatuses = []Status{StatusPending, StatusRunning, StatusSuccess, StatusFailed, StatusSkipped}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, s := range allStatuses {
		set[s] = struct{}{}
	}
	return set
}()

var terminalStatuses = map[Status]struct{}{
	StatusSuccess: {},
	StatusFailed:  {},
	StatusSkipped: {},
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsTerminal reports whether status ends the job's lifecycle.
func IsTerminal(status Status) bool {
	_, ok := terminalStatuses[status]
	return ok
}

// Phase is the controller's internal sub-state while Status is Running,
// tracked for crash diagnosis and not part of the viewer's status contract.
type Phase string

const (
	PhaseDiscovered Phase = "discovered"
	PhaseProbing    Phase = "probing"
	PhasePlanning   Phase = "planning"
	PhaseEncoding   Phase = "encoding"
	PhaseValidating Phase = "validating"
	PhaseSizeGating Phase = "size_gating"
	PhaseReplacing  Phase = "replacing"
)

// Classification mirrors the classifier's source-type verdict.
type Classification struct {
	Class     string   `json:"class"` // "web_like", "disc_like", or "unknown"
	WebScore  int      `json:"web_score"`
	DiscScore int      `json:"disc_score"`
	Reasons   []string `json:"reasons,omitempty"`
}

// VideoMetadata is the video-stream metadata copied onto the job at
// PROBING, so later stages never need to re-probe the source.
type VideoMetadata struct {
	Codec       string `json:"codec"`
	BitRate     int64  `json:"bit_rate,omitempty"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	FrameRate   string `json:"frame_rate,omitempty"` // preserved as "num/den"
	PixFmt      string `json:"pix_fmt,omitempty"`
	BitDepth    int    `json:"bit_depth,omitempty"`
	HDR         bool   `json:"hdr,omitempty"`
	DurationSec float64 `json:"duration_sec,omitempty"`
}

// EncoderParams records the chosen encoder parameters, set at PLANNING.
type EncoderParams struct {
	Encoder string `json:"encoder"` // "primary" | "secondary" | "tertiary"
	CRF     int    `json:"crf"`
	Preset  int    `json:"preset,omitempty"`
}

// Record is the durable, JSON-serialized state of one candidate file.
// Field names and semantics follow the Job data model: identifier, source
// path, optional temp output path, instants, status, optional reason,
// optional byte counts, source-type, video metadata, and encoder params.
type Record struct {
	ID         string    `json:"id"`
	SourcePath string    `json:"source_path"`
	TempPath   string    `json:"temp_path,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	Status Status `json:"status"`
	Phase  Phase  `json:"phase,omitempty"`
	Reason string `json:"reason,omitempty"`

	OriginalBytes int64 `json:"original_bytes,omitempty"`
	NewBytes      int64 `json:"new_bytes,omitempty"`

	Classification *Classification `json:"classification,omitempty"`
	Video          *VideoMetadata  `json:"video,omitempty"`
	Encoder        *EncoderParams  `json:"encoder,omitempty"`

	RequestID string `json:"request_id,omitempty"`
}

// EnterPhase transitions the record to Running at the given phase,
// stamping StartedAt the first time it leaves Pending.
func (r *Record) EnterPhase(phase Phase, now time.Time) {
	r.Status = StatusRunning
	r.Phase = phase
	if r.StartedAt == nil {
		started := now
		r.StartedAt = &started
	}
}

// Succeed marks the record Success, recording the final byte counts.
func (r *Record) Succeed(originalBytes, newBytes int64, now time.Time) {
	r.Status = StatusSuccess
	r.OriginalBytes = originalBytes
	r.NewBytes = newBytes
	r.finish(now)
}

// Fail marks the record Failed with a reason.
func (r *Record) Fail(reason string, now time.Time) {
	r.Status = StatusFailed
	r.Reason = reason
	r.finish(now)
}

// Skip marks the record Skipped with a reason.
func (r *Record) Skip(reason string, now time.Time) {
	r.Status = StatusSkipped
	r.Reason = reason
	r.finish(now)
}

func (r *Record) finish(now time.Time) {
	finished := now
	r.FinishedAt = &finished
}
