package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dumptrac/internal/models"

	"github.com/jmoiron/sqlx"
)

// Store reads and writes bins and reports in Postgres.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// EnsureBin returns the bin registered for location, creating it with the
// given coordinates when none exists. Coordinates of an existing bin are never
// overwritten.
func (s *Store) EnsureBin(ctx context.Context, location string, lat, lng float64) (models.Bin, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bins (location, latitude, longitude)
		VALUES ($1, $2, $3)
		ON CONFLICT (location) DO NOTHING
	`, location, lat, lng)
	if err != nil {
		return models.Bin{}, fmt.Errorf("insert bin: %w", err)
	}

	var bin models.Bin
	err = s.db.GetContext(ctx, &bin, `
		SELECT id, location, latitude, longitude
		FROM bins
		WHERE location = $1
	`, location)
	if err != nil {
		return models.Bin{}, fmt.Errorf("fetch bin: %w", err)
	}
	return bin, nil
}

func (s *Store) GetBin(ctx context.Context, id int64) (models.Bin, error) {
	var bin models.Bin
	err := s.db.GetContext(ctx, &bin, `
		SELECT id, location, latitude, longitude
		FROM bins
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Bin{}, ErrNotFound
	}
	if err != nil {
		return models.Bin{}, fmt.Errorf("fetch bin %d: %w", id, err)
	}
	return bin, nil
}

// ListBins returns every bin, newest first.
func (s *Store) ListBins(ctx context.Context) ([]models.Bin, error) {
	bins := []models.Bin{}
	err := s.db.SelectContext(ctx, &bins, `
		SELECT id, location, latitude, longitude
		FROM bins
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list bins: %w", err)
	}
	return bins, nil
}

// ListReports returns every report, newest first.
func (s *Store) ListReports(ctx context.Context) ([]models.Report, error) {
	reports := []models.Report{}
	err := s.db.SelectContext(ctx, &reports, `
		SELECT id, bin_id, status, created_at, cleared_at
		FROM reports
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

func (s *Store) CreateReport(ctx context.Context, binID int64, status string) (models.Report, error) {
	var report models.Report
	err := s.db.GetContext(ctx, &report, `
		INSERT INTO reports (bin_id, status)
		VALUES ($1, $2)
		RETURNING id, bin_id, status, created_at, cleared_at
	`, binID, status)
	if err != nil {
		return models.Report{}, fmt.Errorf("insert report: %w", err)
	}
	return report, nil
}

// ClearReport moves a report to done and stamps cleared_at.
func (s *Store) ClearReport(ctx context.Context, id int64, at time.Time) (models.Report, error) {
	var report models.Report
	err := s.db.GetContext(ctx, &report, `
		UPDATE reports
		SET status = $1, cleared_at = $2
		WHERE id = $3
		RETURNING id, bin_id, status, created_at, cleared_at
	`, models.StatusDone, at.UTC(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Report{}, ErrNotFound
	}
	if err != nil {
		return models.Report{}, fmt.Errorf("clear report %d: %w", id, err)
	}
	return report, nil
}

// Counts is a table summary used by the migrate tool.
type Counts struct {
	Bins        int `db:"bins"`
	Reports     int `db:"reports"`
	OpenReports int `db:"open_reports"`
}

func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	err := s.db.GetContext(ctx, &c, `
		SELECT
			(SELECT COUNT(*) FROM bins) AS bins,
			(SELECT COUNT(*) FROM reports) AS reports,
			(SELECT COUNT(*) FROM reports WHERE status <> 'done') AS open_reports
	`)
	if err != nil {
		return Counts{}, fmt.Errorf("count rows: %w", err)
	}
	return c, nil
}
