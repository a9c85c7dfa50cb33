package executor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"avreap/internal/services"
)

func TestRunSuccessReportsOutputBytes(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.mkv")
	script := "echo line-one; echo line-two; printf '%s' hello > " + output

	result, err := Run(context.Background(), "sh", []string{"-c", script}, output)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OutputBytes != int64(len("hello")) {
		t.Fatalf("unexpected output size: %d", result.OutputBytes)
	}
	if len(result.DiagnosticTail) != 2 {
		t.Fatalf("expected 2 diagnostic lines, got %v", result.DiagnosticTail)
	}
}

func TestRunNonZeroExitDeletesOutput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.mkv")
	script := "printf '%s' partial > " + output + "; exit 1"

	_, err := Run(context.Background(), "sh", []string{"-c", script}, output)
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if !errors.Is(err, services.ErrEncodeFailure) {
		t.Fatalf("expected ErrEncodeFailure, got %v", err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Fatal("expected output file to be removed after failure")
	}
}

func TestRunMissingOutputIsFailure(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "never-created.mkv")

	_, err := Run(context.Background(), "sh", []string{"-c", "echo no output"}, output)
	if !errors.Is(err, services.ErrEncodeFailure) {
		t.Fatalf("expected ErrEncodeFailure for missing output, got %v", err)
	}
}

func TestRunDiagnosticTailIsBounded(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.mkv")
	script := "for i in $(seq 1 100); do echo line-$i; done; printf x > " + output

	result, err := Run(context.Background(), "sh", []string{"-c", script}, output)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.DiagnosticTail) != diagnosticTailLines {
		t.Fatalf("expected tail capped at %d lines, got %d", diagnosticTailLines, len(result.DiagnosticTail))
	}
	if result.DiagnosticTail[len(result.DiagnosticTail)-1] != "line-100" {
		t.Fatalf("expected tail to end at the last line, got %v", result.DiagnosticTail[len(result.DiagnosticTail)-1])
	}
}
