package preflight

import (
	"context"
	"fmt"

	"avreap/internal/config"
	"avreap/internal/deps"
)

// Result reports the outcome of a single preflight check. Every check avreap
// runs at startup is fatal: a failing Result means the daemon must not start.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the full startup checklist: ffmpeg/ffprobe presence and
// version, AV1 encoder availability, every configured library root, and the
// job-state and temp-output directories. The daemon aborts startup if any
// result here is not Passed.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, checkFFmpegPresence(cfg))
	results = append(results, checkFFmpegVersion(cfg))
	results = append(results, checkFFprobePresence(cfg))
	results = append(results, checkAV1Encoder(cfg))

	for _, root := range cfg.Paths.LibraryRoots {
		results = append(results, CheckDirectoryAccess(fmt.Sprintf("Library root %s", root), root))
	}
	if cfg.Paths.JobStateDir != "" {
		results = append(results, CheckDirectoryAccess("Job state directory", cfg.Paths.JobStateDir))
	}
	if cfg.Paths.TempOutputDir != "" {
		results = append(results, CheckDirectoryAccess("Temp output directory", cfg.Paths.TempOutputDir))
	}

	return results
}

func checkFFmpegPresence(cfg *config.Config) Result {
	const name = "FFmpeg binary"
	statuses := deps.CheckBinaries([]deps.Requirement{{
		Name:    name,
		Command: deps.ResolveFFmpegPath(cfg.Binaries.FFmpeg),
	}})
	status := statuses[0]
	if !status.Available {
		return Result{Name: name, Detail: status.Detail}
	}
	return Result{Name: name, Passed: true, Detail: status.Command}
}

func checkFFmpegVersion(cfg *config.Config) Result {
	const name = "FFmpeg version"
	binary := deps.ResolveFFmpegPath(cfg.Binaries.FFmpeg)
	info, err := deps.CheckFFmpegVersion(binary)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	if info.Major < deps.MinimumFFmpegMajorVersion {
		return Result{Name: name, Detail: fmt.Sprintf("found %s, need >= %d", info.Raw, deps.MinimumFFmpegMajorVersion)}
	}
	return Result{Name: name, Passed: true, Detail: info.Raw}
}

func checkFFprobePresence(cfg *config.Config) Result {
	const name = "FFprobe binary"
	statuses := deps.CheckBinaries([]deps.Requirement{{
		Name:    name,
		Command: deps.ResolveFFprobePath(cfg.Binaries.FFprobe),
	}})
	status := statuses[0]
	if !status.Available {
		return Result{Name: name, Detail: status.Detail}
	}
	return Result{Name: name, Passed: true, Detail: status.Command}
}

func checkAV1Encoder(cfg *config.Config) Result {
	const name = "AV1 encoder"
	binary := deps.ResolveFFmpegPath(cfg.Binaries.FFmpeg)
	encoders, err := deps.AvailableAV1Encoders(binary)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: string(encoders[0])}
}
