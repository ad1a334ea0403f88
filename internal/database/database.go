package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when a bin or report does not exist.
var ErrNotFound = errors.New("not found")

func Connect(dbURL string, log zerolog.Logger) (*sqlx.DB, error) {
	dbURL = NormalizeURL(dbURL)
	log.Info().
		Int("url_length", len(dbURL)).
		Str("url_prefix", dbURL[:min(20, len(dbURL))]+"...").
		Msg("🔌 connecting to database")

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Error().Err(err).Str("stage", "connect").Msg("❌ database connection failed")
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		log.Error().Err(err).Str("stage", "ping").Msg("❌ database connection failed")
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Msg("✅ database connection established")
	return db, nil
}

// NormalizeURL forces TLS on connection strings that do not pick an sslmode.
// Hosted Postgres rejects plaintext connections; local setups opt out with
// sslmode=disable.
func NormalizeURL(dbURL string) string {
	dbURL = strings.TrimSpace(dbURL)
	if dbURL == "" || strings.Contains(dbURL, "sslmode=") {
		return dbURL
	}
	if strings.Contains(dbURL, "?") {
		return dbURL + "&sslmode=require"
	}
	return dbURL + "?sslmode=require"
}

func Migrate(db *sqlx.DB) error {
	migrations := []string{
		// Create bins table
		`CREATE TABLE IF NOT EXISTS bins (
			id SERIAL PRIMARY KEY,
			location TEXT NOT NULL UNIQUE,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL
		)`,

		// Create reports table
		`CREATE TABLE IF NOT EXISTS reports (
			id SERIAL PRIMARY KEY,
			bin_id INT NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			FOREIGN KEY (bin_id) REFERENCES bins(id) ON DELETE CASCADE
		)`,

		// Databases created before clearing existed lack cleared_at
		`ALTER TABLE reports ADD COLUMN IF NOT EXISTS cleared_at TIMESTAMPTZ`,

		// Create indexes
		`CREATE INDEX IF NOT EXISTS idx_bins_location ON bins(location)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_bin_id ON reports(bin_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_status ON reports(status)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at DESC)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
