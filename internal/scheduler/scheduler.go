package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"avreap/internal/logging"
	"avreap/internal/scanner"
	"avreap/internal/services"
)

// ProcessFunc runs the full controller pipeline against a single
// candidate. It is called from within the worker pool, so it must
// respect ctx cancellation.
type ProcessFunc func(ctx context.Context, candidate scanner.Candidate)

// Options configures a Scheduler.
type Options struct {
	LibraryRoots     []string
	ScanInterval     time.Duration
	StabilizeWait    time.Duration
	MaxConcurrentJobs int
	Process          ProcessFunc
	Logger           *slog.Logger
}

// Scheduler runs the periodic scan cycle and feeds discovered candidates
// through a bounded worker pool. Admission is FIFO-best-effort: within a
// cycle, candidates are offered to the pool in the order the scan
// discovered them, each waiting for a free slot before the next is
// offered, and a candidate whose path is still in flight from an earlier
// cycle is skipped for that cycle.
type Scheduler struct {
	roots         []string
	scanInterval  time.Duration
	stabilizeWait time.Duration
	process       ProcessFunc
	logger        *slog.Logger

	sem chan struct{}
	wg  sync.WaitGroup

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// New constructs a Scheduler from the given options. MaxConcurrentJobs is
// clamped to at least 1.
func New(opts Options) *Scheduler {
	maxJobs := opts.MaxConcurrentJobs
	if maxJobs < 1 {
		maxJobs = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		roots:         opts.LibraryRoots,
		scanInterval:  opts.ScanInterval,
		stabilizeWait: opts.StabilizeWait,
		process:       opts.Process,
		logger:        logger,
		sem:           make(chan struct{}, maxJobs),
		inFlight:      make(map[string]struct{}),
	}
}

// Run blocks, triggering a scan immediately and then every ScanInterval,
// until ctx is cancelled. It returns after all admitted jobs have
// finished draining.
func (s *Scheduler) Run(ctx context.Context) error {
	s.runCycle(ctx)

	ticker := time.NewTicker(s.scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			return ctx.Err()
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

// runCycle mints a correlation id for this scan tick and attaches it to
// ctx so every log line produced by candidates discovered this cycle -
// scan warnings here, and the full controller pipeline for each admitted
// candidate - can be grepped back to a single scan.
func (s *Scheduler) runCycle(ctx context.Context) {
	ctx = services.WithRequestID(ctx, uuid.NewString())
	cycleLogger := logging.WithContext(ctx, s.logger)

	result := scanner.Scan(ctx, s.roots, s.stabilizeWait)

	for _, scanErr := range result.Errors {
		cycleLogger.Warn("scan error",
			slog.String("path", scanErr.Path),
			slog.String("error", scanErr.Error.Error()),
		)
	}
	for _, deferred := range result.Deferred {
		cycleLogger.Debug("deferring unstable candidate", slog.String("path", deferred))
	}

	for _, candidate := range result.Candidates {
		s.admit(ctx, candidate)
	}
}

func (s *Scheduler) admit(ctx context.Context, candidate scanner.Candidate) {
	s.mu.Lock()
	if _, busy := s.inFlight[candidate.Path]; busy {
		s.mu.Unlock()
		return
	}
	s.inFlight[candidate.Path] = struct{}{}
	s.mu.Unlock()

	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		s.mu.Lock()
		delete(s.inFlight, candidate.Path)
		s.mu.Unlock()
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			<-s.sem
			s.mu.Lock()
			delete(s.inFlight, candidate.Path)
			s.mu.Unlock()
		}()
		s.process(ctx, candidate)
	}()
}

// InFlightCount returns the number of candidates currently admitted into
// the worker pool. Exposed for tests and status reporting.
func (s *Scheduler) InFlightCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inFlight)
}
