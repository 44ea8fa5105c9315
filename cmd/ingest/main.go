// Command ingest runs one batch of result-sheet ingestion: it lists the
// source bucket, processes every document not yet ledgered as success, and
// prints a summary. Safe to re-run; completed documents are skipped.
// Usage: go run ./cmd/ingest [-max N]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"skiresults/internal/config"
	"skiresults/internal/extract"
	"skiresults/internal/model/bedrock"
	"skiresults/internal/parser"
	"skiresults/internal/repository/postgres"
	"skiresults/internal/service"
	s3storage "skiresults/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	maxFiles := flag.Int("max", 0, "cap on how many documents to process this run (0 = no cap)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if *maxFiles > 0 {
		cfg.Ingest.MaxFiles = *maxFiles
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	storage, err := s3storage.NewS3Client(&cfg.S3, cfg.Ingest.SupportedExtensions)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	model, err := bedrock.NewClient(&cfg.Bedrock)
	if err != nil {
		return fmt.Errorf("failed to initialize Bedrock client: %w", err)
	}

	ingester := service.NewIngestionService(
		storage,
		extract.NewExtractor(extract.NewRunner(), model, cfg.Ingest),
		parser.NewSheetParser(model),
		postgres.NewCompetitionRepo(db),
		postgres.NewEventRepo(db),
		postgres.NewResultRepo(db),
		postgres.NewLedgerRepo(db),
		cfg.Ingest,
	)

	report, err := ingester.Run(context.Background(), func(current, total int, key string) {
		if key == service.ProgressDone {
			fmt.Printf("[%d/%d] %s\n", current, total, key)
			return
		}
		fmt.Printf("[%d/%d] %s\n", current+1, total, key)
	})
	if err != nil {
		return fmt.Errorf("ingestion run failed: %w", err)
	}

	fmt.Printf("total: %d  processed: %d  skipped: %d  failed: %d\n",
		report.Total, report.Processed, report.Skipped, report.Failed)
	return nil
}
