package sidecar_test

import (
	"os"
	"path/filepath"
	"testing"

	"avreap/internal/sidecar"
)

func TestMarkSkipAndHasSkip(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "movie.mkv")
	if err := os.WriteFile(source, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if sidecar.HasSkip(source) {
		t.Fatal("expected no skip marker yet")
	}
	if err := sidecar.MarkSkip(source); err != nil {
		t.Fatal(err)
	}
	if !sidecar.HasSkip(source) {
		t.Fatal("expected skip marker to be present")
	}

	info, err := os.Stat(sidecar.SkipPath(source))
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Fatalf("expected zero-byte marker, got %d bytes", info.Size())
	}
}

func TestWriteReason(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "movie.mkv")

	if err := sidecar.WriteReason(source, "too small"); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(sidecar.ReasonPath(source))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "too small" {
		t.Fatalf("unexpected reason contents: %q", got)
	}
}
