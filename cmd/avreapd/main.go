package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"avreap/internal/config"
	"avreap/internal/controller"
	"avreap/internal/daemon"
	"avreap/internal/jobstore"
	"avreap/internal/logging"
	"avreap/internal/policy"
	"avreap/internal/preflight"
	"avreap/internal/scanner"
	"avreap/internal/scheduler"
	"avreap/internal/synth"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "Configuration file path")
	flag.Parse()

	cfg, _, _, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		return 1
	}
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Fprintln(os.Stderr, "ensure directories:", err)
		return 1
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		return 1
	}

	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays,
		logging.RetentionTarget{Dir: cfg.Paths.LogDir, Pattern: "avreap-*.log"},
	)

	signalCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	results := preflight.RunAll(signalCtx, cfg)
	ok := true
	for _, result := range results {
		if result.Passed {
			logger.Info("preflight check passed", slog.String("check", result.Name), slog.String("detail", result.Detail))
			continue
		}
		ok = false
		logger.Error("preflight check failed", slog.String("check", result.Name), slog.String("detail", result.Detail))
	}
	if !ok {
		fmt.Fprintln(os.Stderr, "startup preflight failed; see log for which check")
		return 1
	}

	store, err := jobstore.Open(cfg.Paths.JobStateDir)
	if err != nil {
		logger.Error("open job store", slog.String("error", err.Error()))
		return 1
	}

	ctrl := controller.New(controller.Options{
		Store:               store,
		FFprobeBinary:       cfg.Binaries.FFprobe,
		FFmpegBinary:        cfg.Binaries.FFmpeg,
		MinSourceBytes:      cfg.Encoding.MinSourceBytes,
		MaxSizeRatio:        cfg.Encoding.MaxSizeRatio,
		QualityTier:         policy.QualityTier(cfg.Encoding.QualityTier),
		PreferredEncoder:    synth.Encoder(cfg.Encoding.PreferredEncoder),
		KeepOriginal:        cfg.Encoding.KeepOriginal,
		WriteReasonSidecars: cfg.Encoding.WriteReasonSidecars,
		TempOutputDir:       cfg.Paths.TempOutputDir,
		Logger:              logging.NewComponentLogger(logger, "controller"),
	})

	sched := scheduler.New(scheduler.Options{
		LibraryRoots:      cfg.Paths.LibraryRoots,
		ScanInterval:      time.Duration(cfg.Scheduler.ScanIntervalSeconds) * time.Second,
		StabilizeWait:     scanner.StabilizeWait,
		MaxConcurrentJobs: cfg.Scheduler.MaxConcurrentJobs,
		Process:           ctrl.Process,
		Logger:            logging.NewComponentLogger(logger, "scheduler"),
	})

	d, err := daemon.New(cfg, store, logger, sched)
	if err != nil {
		logger.Error("create daemon", slog.String("error", err.Error()))
		return 1
	}
	defer d.Close()

	if err := d.Start(signalCtx); err != nil {
		logger.Error("start daemon", slog.String("error", err.Error()))
		return 1
	}

	<-signalCtx.Done()
	logger.Info("avreapd shutting down")
	d.Stop()
	if err := signalCtx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return 1
	}
	return 0
}
