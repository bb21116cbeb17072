// Package cli implements the non-interactive one-shot mode: sample the host
// once and print the same labels the overlay window shows.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/sysoverlay/internal/errors"
	"github.com/agbru/sysoverlay/internal/logging"
	"github.com/agbru/sysoverlay/internal/overlay"
	"github.com/agbru/sysoverlay/internal/sysmon"
)

// PrimingSampler is a Sampler whose CPU reading is relative to a previous
// call and which can be primed ahead of the first real sample.
type PrimingSampler interface {
	sysmon.Sampler
	Prime(ctx context.Context) error
}

// RunOnce primes the CPU counter, waits one interval so the CPU reading
// covers a real window, takes a single sample and prints the labels to out.
// A spinner is shown on errOut while waiting when errOut is a terminal.
func RunOnce(ctx context.Context, sampler PrimingSampler, interval time.Duration, out, errOut io.Writer, logger logging.Logger) error {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	s := spinnerFor(errOut)
	s.UpdateSuffix(" sampling...")
	s.Start()
	snap, err := sampleAfter(ctx, sampler, interval)
	s.Stop()

	if err != nil {
		logger.Error("one-shot sample failed", err)
		return err
	}
	logger.Debug("one-shot sample taken", logging.Duration("took", snap.Took))

	d := overlay.FormatDisplay(snap)
	if _, err := fmt.Fprintf(out, "%s\n%s\n%s\n", d.Memory, d.CPU, d.Temperature); err != nil {
		return apperrors.WrapError(err, "write output")
	}
	return nil
}

func sampleAfter(ctx context.Context, sampler PrimingSampler, interval time.Duration) (sysmon.Snapshot, error) {
	if err := sampler.Prime(ctx); err != nil {
		return sysmon.Snapshot{}, err
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return sysmon.Snapshot{}, ctx.Err()
	case <-timer.C:
	}

	return sampler.Sample(ctx)
}
