package job_test

import (
	"testing"
	"time"

	"avreap/internal/job"
)

func TestParseStatusNormalizes(t *testing.T) {
	status, ok := job.ParseStatus("  Running ")
	if !ok || status != job.StatusRunning {
		t.Fatalf("unexpected parse result: %v %v", status, ok)
	}
	if _, ok := job.ParseStatus(""); ok {
		t.Fatal("expected blank status to fail")
	}
	if _, ok := job.ParseStatus("bogus"); ok {
		t.Fatal("expected unknown status to fail")
	}
}

func TestIsTerminal(t *testing.T) {
	if !job.IsTerminal(job.StatusSkipped) {
		t.Fatal("expected skipped to be terminal")
	}
	if job.IsTerminal(job.StatusRunning) {
		t.Fatal("expected running to not be terminal")
	}
}

func TestRecordTransitionHelpers(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := &job.Record{ID: "abc", Status: job.StatusPending}

	rec.EnterPhase(job.PhaseProbing, now)
	if rec.Status != job.StatusRunning || rec.Phase != job.PhaseProbing || rec.StartedAt == nil {
		t.Fatalf("unexpected record after EnterPhase: %+v", rec)
	}

	later := now.Add(time.Minute)
	rec.EnterPhase(job.PhaseEncoding, later)
	if !rec.StartedAt.Equal(now) {
		t.Fatalf("expected StartedAt to stick to first entry, got %v", rec.StartedAt)
	}

	rec.Fail("exit 1", later)
	if rec.Status != job.StatusFailed || rec.Reason != "exit 1" || rec.FinishedAt == nil || !rec.FinishedAt.Equal(later) {
		t.Fatalf("unexpected record after Fail: %+v", rec)
	}
}
