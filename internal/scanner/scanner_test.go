package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsCandidateExtension(t *testing.T) {
	cases := map[string]bool{
		"movie.mkv":   true,
		"MOVIE.MKV":   true,
		"movie.mp4":   true,
		"movie.avi":   true,
		"movie.mov":   true,
		"movie.m4v":   true,
		"movie.ts":    true,
		"movie.m2ts":  true,
		"movie.txt":   false,
		"movie.mkv.1": false,
		"noext":       false,
	}
	for name, want := range cases {
		if got := IsCandidateExtension(name); got != want {
			t.Errorf("IsCandidateExtension(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestScanFindsStableCandidate(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "movie.mkv")
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}

	result := Scan(context.Background(), []string{root}, 0)

	if len(result.Candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %+v", result.Candidates)
	}
	if result.Candidates[0].Path != path {
		t.Fatalf("unexpected candidate path: %s", result.Candidates[0].Path)
	}
	if result.Candidates[0].Size != int64(len("content")) {
		t.Fatalf("unexpected candidate size: %d", result.Candidates[0].Size)
	}
}

func TestScanIgnoresNonWhitelistedExtensions(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "readme.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	result := Scan(context.Background(), []string{root}, 0)

	if len(result.Candidates) != 0 {
		t.Fatalf("expected no candidates, got %+v", result.Candidates)
	}
}

func TestScanRecursesIntoSubdirectories(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "season-01")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nested, "episode.mp4"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	result := Scan(context.Background(), []string{root}, 0)

	if len(result.Candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %+v", result.Candidates)
	}
}

func TestScanDefersGrowingFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "movie.mkv")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		time.Sleep(5 * time.Millisecond)
		_ = os.WriteFile(path, []byte("xxxxxxxxxx"), 0o644)
		close(done)
	}()

	result := Scan(context.Background(), []string{root}, 20*time.Millisecond)
	<-done

	if len(result.Candidates) != 0 {
		t.Fatalf("expected growing file to be deferred, got candidates %+v", result.Candidates)
	}
	if len(result.Deferred) != 1 {
		t.Fatalf("expected 1 deferred path, got %+v", result.Deferred)
	}
}

func TestScanDefersVanishedFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "movie.mkv")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	go func() {
		time.Sleep(5 * time.Millisecond)
		_ = os.Remove(path)
	}()

	result := Scan(context.Background(), []string{root}, 20*time.Millisecond)

	if len(result.Candidates) != 0 {
		t.Fatalf("expected vanished file to be skipped, got candidates %+v", result.Candidates)
	}
}

func TestScanReportsInaccessibleDirectoryWithoutAborting(t *testing.T) {
	root := t.TempDir()
	blocked := filepath.Join(root, "blocked")
	if err := os.MkdirAll(blocked, 0o000); err != nil {
		t.Fatal(err)
	}
	defer os.Chmod(blocked, 0o755)

	sibling := filepath.Join(root, "sibling")
	if err := os.MkdirAll(sibling, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sibling, "movie.mkv"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if os.Getuid() == 0 {
		t.Skip("permission checks are bypassed when running as root")
	}

	result := Scan(context.Background(), []string{root}, 0)

	if len(result.Errors) == 0 {
		t.Fatal("expected an error for the inaccessible directory")
	}
	if len(result.Candidates) != 1 {
		t.Fatalf("expected the sibling directory to still be scanned, got %+v", result.Candidates)
	}
}

func TestScanRespectsContextCancellation(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "movie.mkv"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := Scan(ctx, []string{root}, time.Hour)

	if len(result.Candidates) != 0 {
		t.Fatalf("expected no candidates once context is cancelled, got %+v", result.Candidates)
	}
}
