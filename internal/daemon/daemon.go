package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"avreap/internal/config"
	"avreap/internal/job"
	"avreap/internal/jobstore"
	"avreap/internal/scheduler"
)

// Daemon coordinates the scanner/scheduler/controller pipeline and enforces
// single-instance execution via a filesystem lock.
type Daemon struct {
	cfg       *config.Config
	logger    *slog.Logger
	store     *jobstore.Store
	scheduler *scheduler.Scheduler
	logPath   string

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	JobCounts    map[job.Status]int
	JobStateDir  string
	LockFilePath string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *jobstore.Store, logger *slog.Logger, sched *scheduler.Scheduler) (*Daemon, error) {
	if cfg == nil || store == nil || logger == nil || sched == nil {
		return nil, errors.New("daemon requires config, store, logger, and scheduler")
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "avreapd.lock")
	return &Daemon{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		scheduler: sched,
		logPath:   filepath.Join(cfg.Paths.LogDir, "avreap.log"),
		lockPath:  lockPath,
		lock:      flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock and launches the scheduler's scan loop in
// the background. It returns once the lock is held and the loop has been
// launched.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another avreap daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	d.running.Store(true)

	go func() {
		defer close(d.done)
		if err := d.scheduler.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			d.logger.Error("scheduler loop exited", slog.String("error", err.Error()))
		}
	}()

	d.logger.Info("avreap daemon started", slog.String("lock", d.lockPath))
	return nil
}

// Stop cancels the scheduler loop and blocks until it has fully drained:
// scheduler.Run's own wg.Wait() does not return until every in-flight job
// has been cancelled, finalized as Failed("cancelled"), and persisted, so
// by the time Stop returns the shutdown contract is actually satisfied and
// a caller's os.Exit cannot cut it short.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	<-d.done
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", slog.String("error", err.Error()))
	}
	d.running.Store(false)
	d.logger.Info("avreap daemon stopped")
}

// Close stops the daemon. The job store has no separate handle to release:
// jobstore.Store performs one file operation per call rather than holding an
// open connection.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}

// LogPath returns the path to the daemon log file.
func (d *Daemon) LogPath() string {
	return d.logPath
}

// Status returns the current daemon status, including a count of persisted
// job records by terminal/non-terminal status.
func (d *Daemon) Status(ctx context.Context) Status {
	_ = ctx
	counts := make(map[job.Status]int)
	for _, status := range job.AllStatuses() {
		counts[status] = 0
	}
	if records, err := d.store.LoadAll(); err == nil {
		for _, rec := range records {
			counts[rec.Status]++
		}
	}
	return Status{
		Running:      d.running.Load(),
		JobCounts:    counts,
		JobStateDir:  d.store.Dir(),
		LockFilePath: d.lockPath,
	}
}
