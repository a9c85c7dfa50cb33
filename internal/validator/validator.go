package validator

import (
	"context"
	"fmt"
	"math"
	"strings"

	"avreap/internal/prober"
	"avreap/internal/services"
)

// DurationTolerance is the maximum allowed drift between the original and
// re-probed output duration, in seconds.
const DurationTolerance = 2.0

// inspect is overridden in tests to avoid shelling out to a real prober.
var inspect = prober.Inspect

// Validate re-probes outputPath and checks it against the original probe's
// duration and the target codec. It returns the re-probe result so the
// caller can persist the final video metadata alongside the job record.
func Validate(ctx context.Context, ffprobeBinary, outputPath string, originalDurationSeconds float64, targetCodec string) (prober.Result, error) {
	result, err := inspect(ctx, ffprobeBinary, outputPath)
	if err != nil {
		return prober.Result{}, services.Wrap(services.ErrEncodeFailure, "validator", "probe", "failed to probe encoded output", err)
	}

	if result.VideoStreamCount() != 1 {
		return prober.Result{}, services.Wrap(services.ErrEncodeFailure, "validator", "stream-count",
			fmt.Sprintf("expected exactly one video stream, found %d", result.VideoStreamCount()), nil)
	}

	stream, err := result.SelectMainVideoStream()
	if err != nil {
		return prober.Result{}, services.Wrap(services.ErrEncodeFailure, "validator", "stream-select", "no video stream in encoded output", err)
	}
	if !strings.EqualFold(stream.CodecName, targetCodec) {
		return prober.Result{}, services.Wrap(services.ErrEncodeFailure, "validator", "codec",
			fmt.Sprintf("expected codec %s, got %s", targetCodec, stream.CodecName), nil)
	}

	drift := math.Abs(result.DurationSeconds() - originalDurationSeconds)
	if math.IsNaN(drift) || drift > DurationTolerance {
		return prober.Result{}, services.Wrap(services.ErrEncodeFailure, "validator", "duration",
			fmt.Sprintf("output duration drifted %.2fs from source (tolerance %.1fs)", drift, DurationTolerance), nil)
	}

	return result, nil
}
