package handlers

import (
	"context"
	"time"

	"dumptrac/internal/models"
)

// Store is the persistence the REST handlers need. database.Store satisfies it.
type Store interface {
	EnsureBin(ctx context.Context, location string, lat, lng float64) (models.Bin, error)
	GetBin(ctx context.Context, id int64) (models.Bin, error)
	ListBins(ctx context.Context) ([]models.Bin, error)
	ListReports(ctx context.Context) ([]models.Report, error)
	CreateReport(ctx context.Context, binID int64, status string) (models.Report, error)
	ClearReport(ctx context.Context, id int64, at time.Time) (models.Report, error)
}
