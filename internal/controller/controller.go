package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"path/filepath"

	"avreap/internal/classifier"
	"avreap/internal/executor"
	"avreap/internal/job"
	"avreap/internal/jobstore"
	"avreap/internal/logging"
	"avreap/internal/policy"
	"avreap/internal/prober"
	"avreap/internal/replacer"
	"avreap/internal/scanner"
	"avreap/internal/services"
	"avreap/internal/sidecar"
	"avreap/internal/sizegate"
	"avreap/internal/synth"
	"avreap/internal/validator"
)

// TargetCodec is the codec identifier a job is considered already
// satisfying; sources probed with this codec are skipped at PROBING.
const TargetCodec = "av1"

// Options configures a Controller. All fields are required except Logger
// and Now (defaulting to slog.Default and time.Now), PreferredEncoder
// (defaulting to the primary encoder), and TempOutputDir.
type Options struct {
	Store *jobstore.Store

	FFprobeBinary string
	FFmpegBinary  string

	MinSourceBytes      int64
	MaxSizeRatio        float64
	QualityTier         policy.QualityTier
	PreferredEncoder    synth.Encoder
	KeepOriginal        bool
	WriteReasonSidecars bool

	// TempOutputDir, when set, is where temp outputs are created instead
	// of alongside the source file.
	TempOutputDir string

	Logger *slog.Logger

	Now func() time.Time
}

// Controller runs candidates through the full pipeline.
type Controller struct {
	opts Options
	now  func() time.Time
}

// New constructs a Controller from opts.
func New(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	opts.Logger = logger
	nowFn := opts.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Controller{opts: opts, now: nowFn}
}

// Process implements scheduler.ProcessFunc: it runs candidate through the
// full state machine, persisting a job record on every transition. It
// never returns an error to the caller; every exit from the state
// machine writes a final job record instead.
func (c *Controller) Process(ctx context.Context, candidate scanner.Candidate) {
	if sidecar.HasSkip(candidate.Path) {
		return
	}

	now := c.now()
	rec := &job.Record{
		ID:         jobstore.NewID(),
		SourcePath: candidate.Path,
		CreatedAt:  now,
	}
	ctx = services.WithJobID(ctx, rec.ID)

	c.runProbing(ctx, rec)
}

// logger returns a logger carrying the job id, stage, and scan-cycle
// correlation id found on ctx, so every line this job produces can be
// grepped back to both its own record and the scan that discovered it.
func (c *Controller) logger(ctx context.Context) *slog.Logger {
	return logging.WithContext(ctx, c.opts.Logger)
}

func (c *Controller) save(ctx context.Context, rec *job.Record) {
	if err := c.opts.Store.Save(rec); err != nil {
		c.logger(ctx).Error("failed to persist job record",
			slog.String("source_path", rec.SourcePath),
			slog.String("error", err.Error()),
		)
	}
}

func (c *Controller) skip(ctx context.Context, rec *job.Record, reason string) {
	now := c.now()
	rec.Skip(reason, now)
	c.save(ctx, rec)
	// The skip marker itself is unconditional: without it, HasSkip never
	// finds the source again and every scan cycle re-probes it and writes
	// a fresh job record. Only the human-readable reason text is optional.
	if err := sidecar.MarkSkip(rec.SourcePath); err != nil {
		c.logger(ctx).Warn("failed to write skip marker", slog.String("source_path", rec.SourcePath), slog.String("error", err.Error()))
	}
	if c.opts.WriteReasonSidecars {
		if err := sidecar.WriteReason(rec.SourcePath, reason); err != nil {
			c.logger(ctx).Warn("failed to write skip reason", slog.String("source_path", rec.SourcePath), slog.String("error", err.Error()))
		}
	}
	c.logger(ctx).Info("job skipped", slog.String("source_path", rec.SourcePath), slog.String("reason", reason))
}

func (c *Controller) fail(ctx context.Context, rec *job.Record, reason string) {
	now := c.now()
	rec.Fail(reason, now)
	c.save(ctx, rec)
	c.logger(ctx).Error("job failed", slog.String("source_path", rec.SourcePath), slog.String("reason", reason))
}

// cancelled reports whether ctx was cancelled, used to tell a stage
// failure caused by daemon shutdown apart from a genuine probe/encode/
// validation error so the job record's reason says "cancelled" instead
// of a misleading subprocess error message.
func cancelled(ctx context.Context) bool {
	return ctx.Err() != nil
}

func (c *Controller) runProbing(ctx context.Context, rec *job.Record) {
	ctx = services.WithStage(ctx, string(job.PhaseProbing))
	now := c.now()
	rec.EnterPhase(job.PhaseProbing, now)
	c.save(ctx, rec)

	result, err := probeInspect(ctx, c.opts.FFprobeBinary, rec.SourcePath)
	if err != nil {
		if cancelled(ctx) {
			c.fail(ctx, rec, "cancelled")
			return
		}
		c.skip(ctx, rec, fmt.Sprintf("probe failed: %v", err))
		return
	}

	stream, err := result.SelectMainVideoStream()
	if err != nil {
		if errors.Is(err, prober.ErrNoVideoStream) {
			c.skip(ctx, rec, "no video stream")
			return
		}
		c.skip(ctx, rec, fmt.Sprintf("probe stream selection failed: %v", err))
		return
	}

	sizeBytes := result.SizeBytes()
	if sizeBytes <= 0 {
		if info, statErr := os.Stat(rec.SourcePath); statErr == nil {
			sizeBytes = info.Size()
		}
	}
	if sizeBytes <= c.opts.MinSourceBytes {
		c.skip(ctx, rec, fmt.Sprintf("source size %d bytes at or below minimum %d bytes", sizeBytes, c.opts.MinSourceBytes))
		return
	}

	if strings.EqualFold(stream.CodecName, TargetCodec) {
		c.skip(ctx, rec, "already target codec")
		return
	}

	rec.Video = &job.VideoMetadata{
		Codec:       stream.CodecName,
		BitRate:     stream.BitRateBPS(),
		Width:       stream.Width,
		Height:      stream.Height,
		FrameRate:   stream.RFrameRate,
		PixFmt:      stream.PixFmt,
		BitDepth:    stream.BitDepth(),
		HDR:         stream.IsHDR(),
		DurationSec: result.DurationSeconds(),
	}
	rec.OriginalBytes = sizeBytes

	c.runPlanning(ctx, rec, result, stream)
}

func (c *Controller) runPlanning(ctx context.Context, rec *job.Record, probe prober.Result, stream prober.Stream) {
	ctx = services.WithStage(ctx, string(job.PhasePlanning))
	now := c.now()
	rec.EnterPhase(job.PhasePlanning, now)
	c.save(ctx, rec)

	class := classifier.Classify(classifier.Input{
		Path:       rec.SourcePath,
		Height:     stream.Height,
		BitRateBPS: stream.BitRateBPS(),
		Codec:      stream.CodecName,
		SizeBytes:  rec.OriginalBytes,
	})
	rec.Classification = &class
	webLike := class.Class == "web_like"

	decision := policy.Decide(policy.Input{
		Height:      stream.Height,
		Width:       stream.Width,
		BitRateBPS:  stream.BitRateBPS(),
		WebLike:     webLike,
		QualityTier: c.opts.QualityTier,
	})

	encoder := c.opts.PreferredEncoder
	if encoder == "" {
		encoder = synth.EncoderPrimary
	}
	rec.Encoder = &job.EncoderParams{
		Encoder: string(encoder),
		CRF:     decision.CRF,
		Preset:  decision.Preset,
	}
	c.save(ctx, rec)

	args := synth.Build(synth.Input{
		SourcePath:     rec.SourcePath,
		OutputPath:     c.tempPath(rec.SourcePath),
		WebLike:        webLike,
		MainVideoIndex: stream.Index,
		Streams:        probe.Streams,
		Encoder:        encoder,
		Decision:       decision,
	})

	c.runEncoding(ctx, rec, args)
}

func (c *Controller) runEncoding(ctx context.Context, rec *job.Record, args []string) {
	ctx = services.WithStage(ctx, string(job.PhaseEncoding))
	now := c.now()
	rec.EnterPhase(job.PhaseEncoding, now)
	tempPath := c.tempPath(rec.SourcePath)
	rec.TempPath = tempPath
	c.save(ctx, rec)

	if _, err := executorRun(ctx, c.opts.FFmpegBinary, args, tempPath); err != nil {
		if cancelled(ctx) {
			c.fail(ctx, rec, "cancelled")
			return
		}
		c.fail(ctx, rec, fmt.Sprintf("encode failed: %v", err))
		return
	}

	c.runValidating(ctx, rec)
}

func (c *Controller) runValidating(ctx context.Context, rec *job.Record) {
	ctx = services.WithStage(ctx, string(job.PhaseValidating))
	now := c.now()
	rec.EnterPhase(job.PhaseValidating, now)
	c.save(ctx, rec)

	originalDuration := 0.0
	if rec.Video != nil {
		originalDuration = rec.Video.DurationSec
	}

	result, err := validatorValidate(ctx, c.opts.FFprobeBinary, rec.TempPath, originalDuration, TargetCodec)
	if err != nil {
		_ = os.Remove(rec.TempPath)
		if cancelled(ctx) {
			c.fail(ctx, rec, "cancelled")
			return
		}
		c.fail(ctx, rec, fmt.Sprintf("validation failed: %v", err))
		return
	}

	c.runSizeGating(ctx, rec, result)
}

func (c *Controller) runSizeGating(ctx context.Context, rec *job.Record, validated prober.Result) {
	ctx = services.WithStage(ctx, string(job.PhaseSizeGating))
	now := c.now()
	rec.EnterPhase(job.PhaseSizeGating, now)
	c.save(ctx, rec)

	newBytes := validated.SizeBytes()
	if newBytes <= 0 {
		if info, statErr := os.Stat(rec.TempPath); statErr == nil {
			newBytes = info.Size()
		}
	}

	gate := sizegate.Evaluate(rec.OriginalBytes, newBytes, c.opts.MaxSizeRatio)
	if !gate.Pass {
		_ = os.Remove(rec.TempPath)
		c.skip(ctx, rec, gate.Reason)
		return
	}

	c.runReplacing(ctx, rec, newBytes)
}

// runReplacing installs the encoded output over the source. Cancellation
// observed here is deliberately not checked: once the two-rename swap
// starts, it runs to completion rather than leaving the source file
// mid-swap when the daemon is shutting down.
func (c *Controller) runReplacing(ctx context.Context, rec *job.Record, newBytes int64) {
	ctx = services.WithStage(ctx, string(job.PhaseReplacing))
	now := c.now()
	rec.EnterPhase(job.PhaseReplacing, now)
	c.save(ctx, rec)

	if err := replacerReplace(rec.SourcePath, rec.TempPath, c.opts.KeepOriginal, now); err != nil {
		c.fail(ctx, rec, fmt.Sprintf("replacement failed: %v", err))
		return
	}

	rec.Succeed(rec.OriginalBytes, newBytes, c.now())
	c.save(ctx, rec)
	c.logger(ctx).Info("job succeeded",
		slog.String("source_path", rec.SourcePath),
		slog.Int64("original_bytes", rec.OriginalBytes),
		slog.Int64("new_bytes", newBytes),
	)
}

// tempPath derives the temporary output path for a source file: a
// sibling file with a distinctive suffix, or a file of the same name
// under TempOutputDir when configured.
func (c *Controller) tempPath(sourcePath string) string {
	if c.opts.TempOutputDir == "" {
		return sourcePath + ".tmp"
	}
	return filepath.Join(c.opts.TempOutputDir, filepath.Base(sourcePath)+".tmp")
}

// indirections so tests can substitute fakes without a toolchain run.
var (
	probeInspect      = prober.Inspect
	executorRun       = executor.Run
	validatorValidate = validator.Validate
	replacerReplace   = replacer.Replace
)
