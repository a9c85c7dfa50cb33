// Package services holds the error taxonomy shared by every pipeline stage.
package services

import (
	"errors"
	"fmt"
	"strings"

	"avreap/internal/job"
)

// Sentinel markers classify a stage failure into the status the controller
// should persist. Wrap a lower-level error with one of these via Wrap so
// Status can recover the right outcome without each stage re-deriving it.
var (
	// ErrStartupFatal marks failures that must abort the daemon before the
	// scheduler starts: missing binaries, unusable directories, bad config.
	ErrStartupFatal = errors.New("startup fatal error")
	// ErrTransient marks failures worth retrying on the next scan cycle.
	ErrTransient = errors.New("transient failure")
	// ErrPermanentSkip marks a candidate that will never be processed
	// successfully: no video stream, too small, already AV1, size-gate miss.
	ErrPermanentSkip = errors.New("permanent skip")
	// ErrEncodeFailure marks an encoder process or validator rejection.
	ErrEncodeFailure = errors.New("encode failure")
	// ErrReplacement marks a failure during the atomic file-replacement step.
	ErrReplacement = errors.New("replacement failure")
)

// Wrap builds an error that carries stage context and is tagged with marker
// for later classification via Status.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Status maps a stage error to the job status the controller should
// persist once it gives up on the current attempt.
func Status(err error) job.Status {
	switch {
	case errors.Is(err, ErrPermanentSkip):
		return job.StatusSkipped
	case errors.Is(err, ErrEncodeFailure), errors.Is(err, ErrReplacement), errors.Is(err, ErrTransient):
		return job.StatusFailed
	default:
		return job.StatusFailed
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "stage failure"
	}
	return strings.Join(parts, ": ")
}
