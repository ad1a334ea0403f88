package main

import (
	"context"
	"fmt"
	"os"

	"dumptrac/internal/config"
	"dumptrac/internal/database"
	"dumptrac/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Environment)

	if err := cfg.RequireDatabase(); err != nil {
		log.Fatal().Err(err).Msg("DATABASE_URL environment variable not set")
	}

	db, err := database.Connect(cfg.DB.URL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	log.Info().Msg("Connected to database successfully")

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
	log.Info().Msg("Migration completed successfully!")

	counts, err := database.NewStore(db).Counts(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to query summary")
	}

	fmt.Println("\n=== Migration Summary ===")
	fmt.Printf("Bins:         %d\n", counts.Bins)
	fmt.Printf("Reports:      %d\n", counts.Reports)
	fmt.Printf("Open reports: %d\n", counts.OpenReports)
}
