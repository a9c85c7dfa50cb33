package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// StabilizeWait is the default pause between the initial size sample and
// the re-stat that confirms a candidate file is no longer being written.
const StabilizeWait = 10 * time.Second

var candidateExtensions = map[string]struct{}{
	".mkv":  {},
	".mp4":  {},
	".avi":  {},
	".mov":  {},
	".m4v":  {},
	".ts":   {},
	".m2ts": {},
}

// Candidate is a file discovered during a scan that passed the extension
// whitelist and the stable-size gate.
type Candidate struct {
	Path string
	Size int64
}

// ScanError pairs a path with an error encountered while scanning it.
// Directory read failures are reported here rather than aborting the walk.
type ScanError struct {
	Path  string
	Error error
}

// Result holds the outcome of a single scan pass.
type Result struct {
	Candidates []Candidate
	Errors     []ScanError
	Deferred   []string
}

// IsCandidateExtension reports whether path's extension is in the
// fixed whitelist, case-insensitive.
func IsCandidateExtension(path string) bool {
	_, ok := candidateExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Scan walks each root depth-first, collecting stable candidate files.
// Inaccessible directories are recorded in Result.Errors and skipped, never
// treated as fatal. A candidate whose size changes or which vanishes
// between the initial sample and the re-stat after stabilizeWait is
// recorded in Result.Deferred instead of Result.Candidates, to be
// reconsidered on the next scan cycle.
func Scan(ctx context.Context, roots []string, stabilizeWait time.Duration) Result {
	var result Result

	for _, root := range roots {
		if ctx.Err() != nil {
			return result
		}
		walkRoot(ctx, root, stabilizeWait, &result)
	}

	return result
}

func walkRoot(ctx context.Context, root string, stabilizeWait time.Duration, result *Result) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			result.Errors = append(result.Errors, ScanError{Path: path, Error: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !IsCandidateExtension(path) {
			return nil
		}

		stable, size, err := checkStable(ctx, path, stabilizeWait)
		if err != nil {
			result.Errors = append(result.Errors, ScanError{Path: path, Error: err})
			return nil
		}
		if !stable {
			result.Deferred = append(result.Deferred, path)
			return nil
		}

		result.Candidates = append(result.Candidates, Candidate{Path: path, Size: size})
		return nil
	})
}

// checkStable samples a file's size, waits, then re-samples. It returns
// stable=false (never an error) when the file vanishes or its size changes
// during the wait, since both are expected outcomes for a file still being
// written or removed, not scan failures.
func checkStable(ctx context.Context, path string, wait time.Duration) (stable bool, size int64, err error) {
	first, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}

	select {
	case <-ctx.Done():
		return false, 0, ctx.Err()
	case <-time.After(wait):
	}

	second, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}

	if second.Size() != first.Size() {
		return false, 0, nil
	}

	return true, second.Size(), nil
}
