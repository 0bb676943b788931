package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"alcyxob/exercise-importer/internal/config"
	"alcyxob/exercise-importer/internal/media"
	"alcyxob/exercise-importer/internal/pipeline"
	"alcyxob/exercise-importer/internal/repository"
	"alcyxob/exercise-importer/internal/repository/mongo"
	"alcyxob/exercise-importer/internal/repository/sqlite"
	"alcyxob/exercise-importer/internal/source"
	"alcyxob/exercise-importer/internal/storage"
)

func main() {
	log.Println("Starting Exercise Importer...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("FATAL: Invalid config: %v", err)
	}
	log.Println("Configuration loaded.")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Source ---
	log.Println("Initializing Drive source...")
	src, err := source.NewDriveSource(ctx, cfg.Source)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Drive source: %v", err)
	}

	// --- Storage ---
	log.Printf("Initializing %s file storage...", cfg.Storage.Backend)
	fileStorage, err := storage.New(ctx, cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize storage: %v", err)
	}

	// --- Database ---
	repo, closeDB, err := openRepository(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("FATAL: Could not open %s database: %v", cfg.Database.Driver, err)
	}
	defer func() {
		log.Println("Closing database...")
		if err := closeDB(); err != nil {
			log.Printf("ERROR: Failed to close database: %v", err)
		}
	}()
	log.Println("Database connection established.")

	converter := media.NewConverter(cfg.Pipeline.MaxDimension, cfg.Pipeline.Quality)
	p := pipeline.New(pipeline.OptionsFromConfig(cfg), src, fileStorage, repo, converter)

	report, runErr := p.Run(ctx)
	if report != nil {
		pipeline.LogSummary(report)
		if err := pipeline.WriteReport(cfg.Pipeline.ReportPath, report); err != nil {
			log.Printf("ERROR: Failed to write report: %v", err)
		} else {
			log.Printf("Results saved to: %s", cfg.Pipeline.ReportPath)
		}
	}
	if runErr != nil {
		log.Printf("ERROR: Run aborted: %v", runErr)
		stop()
		// Deferred cleanup does not run after os.Exit; close explicitly.
		_ = closeDB()
		os.Exit(1)
	}

	log.Println("Import finished.")
}

func openRepository(ctx context.Context, cfg config.DatabaseConfig) (repository.ExerciseRepository, func() error, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.URI, cfg.Table)
		if err != nil {
			return nil, nil, err
		}
		return db.Exercises(), db.Close, nil
	default:
		store, err := mongo.Open(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return store.Exercises, store.Close, nil
	}
}
