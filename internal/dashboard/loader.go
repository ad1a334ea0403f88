package dashboard

import (
	"context"

	"dumptrac/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Source is the part of the backend API the dashboard reads and mutates.
type Source interface {
	ListReports(ctx context.Context) ([]models.Report, error)
	ListBins(ctx context.Context) ([]models.Bin, error)
	ClearReport(ctx context.Context, id int64) (models.Report, error)
}

// Snapshot is one consistent read of reports joined against bins.
type Snapshot struct {
	Reports []models.Report
	Bins    map[int64]models.Bin
}

// Bin resolves the bin a report points at.
func (s Snapshot) Bin(r models.Report) (models.Bin, bool) {
	b, ok := s.Bins[r.BinID]
	return b, ok
}

// Load fetches reports and bins concurrently. A failure of either call
// degrades to an empty snapshot and is logged; it is never returned.
func Load(ctx context.Context, src Source, log zerolog.Logger) Snapshot {
	var (
		reports []models.Report
		bins    []models.Bin
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reports, err = src.ListReports(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bins, err = src.ListBins(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to fetch reports")
		return Snapshot{Bins: map[int64]models.Bin{}}
	}

	byID := make(map[int64]models.Bin, len(bins))
	for _, b := range bins {
		byID[b.ID] = b
	}
	return Snapshot{Reports: reports, Bins: byID}
}
