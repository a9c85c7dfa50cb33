package deps

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}

	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
}

func TestCheckFFmpegVersionParsesMajor(t *testing.T) {
	restore := stubCommandOutput(t, map[string]string{
		"-version": "ffmpeg version 8.0-static Copyright (c) 2000-2026 the FFmpeg developers\n",
	})
	defer restore()

	info, err := CheckFFmpegVersion("ffmpeg")
	if err != nil {
		t.Fatalf("CheckFFmpegVersion returned error: %v", err)
	}
	if info.Major != 8 {
		t.Fatalf("expected major version 8, got %d", info.Major)
	}
	if info.Raw != "8.0-static" {
		t.Fatalf("expected raw version %q, got %q", "8.0-static", info.Raw)
	}
}

func TestCheckFFmpegVersionOldRelease(t *testing.T) {
	restore := stubCommandOutput(t, map[string]string{
		"-version": "ffmpeg version 6.1.1\n",
	})
	defer restore()

	info, err := CheckFFmpegVersion("ffmpeg")
	if err != nil {
		t.Fatalf("CheckFFmpegVersion returned error: %v", err)
	}
	if info.Major >= MinimumFFmpegMajorVersion {
		t.Fatalf("expected major version below minimum, got %d", info.Major)
	}
}

func TestCheckFFmpegVersionUnrecognizedOutput(t *testing.T) {
	restore := stubCommandOutput(t, map[string]string{
		"-version": "not ffmpeg at all\n",
	})
	defer restore()

	if _, err := CheckFFmpegVersion("ffmpeg"); err == nil {
		t.Fatal("expected error for unrecognized -version output")
	}
}

func TestCheckFFmpegVersionCommandFailure(t *testing.T) {
	restore := stubCommandOutput(t, nil)
	defer restore()

	if _, err := CheckFFmpegVersion("ffmpeg"); err == nil {
		t.Fatal("expected error when command cannot run")
	}
}

func TestAvailableAV1EncodersFindsPreferred(t *testing.T) {
	restore := stubCommandOutput(t, map[string]string{
		"-encoders": "V..... libsvtav1 SVT-AV1\nV..... libaom-av1 AV1 (libaom)\n",
	})
	defer restore()

	encoders, err := AvailableAV1Encoders("ffmpeg")
	if err != nil {
		t.Fatalf("AvailableAV1Encoders returned error: %v", err)
	}
	if len(encoders) != 2 || encoders[0] != EncoderPrimary || encoders[1] != EncoderSecondary {
		t.Fatalf("unexpected encoders: %v", encoders)
	}
}

func TestAvailableAV1EncodersNoneBuiltIn(t *testing.T) {
	restore := stubCommandOutput(t, map[string]string{
		"-encoders": "V..... libx264 H.264\n",
	})
	defer restore()

	_, err := AvailableAV1Encoders("ffmpeg")
	if !errors.Is(err, ErrNoAV1Encoder) {
		t.Fatalf("expected ErrNoAV1Encoder, got %v", err)
	}
}

func stubCommandOutput(t *testing.T, byFlag map[string]string) func() {
	t.Helper()
	original := commandOutput
	commandOutput = func(name string, args ...string) ([]byte, error) {
		for _, arg := range args {
			if out, ok := byFlag[arg]; ok {
				return []byte(out), nil
			}
		}
		return nil, errors.New("command failed")
	}
	return func() { commandOutput = original }
}
