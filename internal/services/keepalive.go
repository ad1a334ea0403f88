package services

import (
	"context"
	"fmt"
	"time"

	"dumptrac/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	KeepaliveLocation  = "System Auto Check Location"
	KeepaliveLatitude  = 6.5244
	KeepaliveLongitude = 3.3792
)

// KeepaliveStore is the slice of the store the keepalive job writes through.
type KeepaliveStore interface {
	EnsureBin(ctx context.Context, location string, lat, lng float64) (models.Bin, error)
	CreateReport(ctx context.Context, binID int64, status string) (models.Report, error)
}

// Keepalive periodically writes an auto-check report so hosted databases that
// suspend on inactivity stay awake.
type Keepalive struct {
	store    KeepaliveStore
	interval time.Duration
	log      zerolog.Logger
}

func NewKeepalive(store KeepaliveStore, interval time.Duration, log zerolog.Logger) *Keepalive {
	return &Keepalive{store: store, interval: interval, log: log}
}

// Run ticks until ctx is cancelled. The first write happens one interval
// after start.
func (k *Keepalive) Run(ctx context.Context) {
	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()

	k.log.Info().Dur("interval", k.interval).Msg("⏱️  keepalive scheduler started")

	for {
		select {
		case <-ctx.Done():
			k.log.Info().Msg("keepalive scheduler stopped")
			return
		case <-ticker.C:
			if _, err := k.RunOnce(ctx); err != nil {
				k.log.Error().Err(err).Msg("🔴 keepalive job failed")
			}
		}
	}
}

// RunOnce ensures the system bin exists and records one auto-check report.
func (k *Keepalive) RunOnce(ctx context.Context) (models.Report, error) {
	runID := uuid.NewString()

	bin, err := k.store.EnsureBin(ctx, KeepaliveLocation, KeepaliveLatitude, KeepaliveLongitude)
	if err != nil {
		return models.Report{}, fmt.Errorf("ensure keepalive bin: %w", err)
	}

	report, err := k.store.CreateReport(ctx, bin.ID, models.StatusAutoCheck)
	if err != nil {
		return models.Report{}, fmt.Errorf("create keepalive report: %w", err)
	}

	k.log.Info().
		Str("run_id", runID).
		Int64("bin_id", bin.ID).
		Int64("report_id", report.ID).
		Msg("🟢 keepalive job executed")
	return report, nil
}
