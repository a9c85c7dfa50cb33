package preflight

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"avreap/internal/config"
	"avreap/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps evaluates the encoder/prober binaries required to run the
// pipeline at all. The daemon's startup checks go through RunAll, not this
// function.
func CheckSystemDeps(ctx context.Context, cfg *config.Config) []deps.Status {
	_ = ctx
	requirements := []deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     deps.ResolveFFmpegPath(cfg.Binaries.FFmpeg),
			Description: "Required for encoding",
		},
		{
			Name:        "FFprobe",
			Command:     deps.ResolveFFprobePath(cfg.Binaries.FFprobe),
			Description: "Required for media inspection",
		},
	}
	return deps.CheckBinaries(requirements)
}
