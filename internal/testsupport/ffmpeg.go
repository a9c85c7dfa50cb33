package testsupport

import (
	"context"
	"os"
	"testing"

	"avreap/internal/executor"
)

// FakeFFmpeg stands in for executor.Run in controller tests: instead of
// shelling out to a real ffmpeg binary, it writes a fixed-size placeholder
// file at the requested output path and reports a canned Result. Adapted
// from the teacher's fake drapto encoder client, which played the same
// role for its external encode-sidecar process.
type FakeFFmpeg struct {
	t           testing.TB
	OutputBytes int64
	Err         error
}

// NewFakeFFmpeg returns a FakeFFmpeg that writes outputBytes worth of
// placeholder content on every call and reports no error.
func NewFakeFFmpeg(t testing.TB, outputBytes int64) *FakeFFmpeg {
	t.Helper()
	return &FakeFFmpeg{t: t, OutputBytes: outputBytes}
}

// Run matches the executor.Run signature so it can replace the
// package-level executorRun override var in a controller test.
func (f *FakeFFmpeg) Run(ctx context.Context, binary string, args []string, outputPath string) (executor.Result, error) {
	f.t.Helper()
	if f.Err != nil {
		return executor.Result{}, f.Err
	}
	content := make([]byte, f.OutputBytes)
	if err := os.WriteFile(outputPath, content, 0o644); err != nil {
		f.t.Fatalf("fake ffmpeg write output: %v", err)
	}
	return executor.Result{OutputBytes: f.OutputBytes, DiagnosticTail: []string{"fake ffmpeg ok"}}, nil
}
