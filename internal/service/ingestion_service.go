package service

import (
	"context"
	"fmt"
	"log"
	"path"
	"strings"

	"skiresults/internal/config"
	"skiresults/internal/domain"
	"skiresults/internal/port"
	"skiresults/internal/timing"
)

// ProgressFunc is invoked before each document's processing begins with its
// 0-indexed position, the total count, and the document key, and once more at
// completion with ProgressDone as the key.
type ProgressFunc func(current, total int, key string)

// ProgressDone is the sentinel identifier passed to the progress callback
// after the last document.
const ProgressDone = "完成"

// IngestionService drives the batch pipeline over the object store:
// discovery, skip filtering, per-document download/extract/parse/persist,
// ledger tracking, and failure isolation. Processing is strictly sequential.
type IngestionService struct {
	storage      port.ObjectStorage
	extractor    port.Extractor
	parser       port.SheetParser
	competitions port.CompetitionRepository
	events       port.EventRepository
	results      port.ResultRepository
	ledger       port.LedgerRepository
	cfg          config.IngestConfig
}

// NewIngestionService wires the ingestion pipeline from its collaborators.
func NewIngestionService(
	storage port.ObjectStorage,
	extractor port.Extractor,
	parser port.SheetParser,
	competitions port.CompetitionRepository,
	events port.EventRepository,
	results port.ResultRepository,
	ledger port.LedgerRepository,
	cfg config.IngestConfig,
) *IngestionService {
	return &IngestionService{
		storage:      storage,
		extractor:    extractor,
		parser:       parser,
		competitions: competitions,
		events:       events,
		results:      results,
		ledger:       ledger,
		cfg:          cfg,
	}
}

// Run executes one batch over all eligible documents. Documents already
// ledgered as success are excluded up front; MaxFiles caps the rest. Any
// per-document failure is ledgered and does not abort the batch.
func (s *IngestionService) Run(ctx context.Context, progress ProgressFunc) (*domain.IngestReport, error) {
	keys, err := s.storage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	var toProcess []string
	for _, key := range keys {
		done, err := s.ledger.IsProcessed(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("checking ledger for %s: %w", key, err)
		}
		if !done {
			toProcess = append(toProcess, key)
		}
	}

	if s.cfg.MaxFiles > 0 && len(toProcess) > s.cfg.MaxFiles {
		toProcess = toProcess[:s.cfg.MaxFiles]
	}

	total := len(toProcess)
	report := &domain.IngestReport{Total: total}

	for i, key := range toProcess {
		if progress != nil {
			progress(i, total, key)
		}

		if pattern := s.matchSkipPattern(key); pattern != "" {
			s.mark(ctx, key, domain.IngestSkipped, "matches skip pattern: "+pattern)
			report.Skipped++
			continue
		}

		switch s.processFile(ctx, key) {
		case domain.IngestSuccess:
			report.Processed++
		case domain.IngestSkipped:
			report.Skipped++
		default:
			report.Failed++
		}
	}

	if progress != nil {
		progress(total, total, ProgressDone)
	}

	log.Printf("ingestionService.Run: complete: total=%d processed=%d skipped=%d failed=%d",
		report.Total, report.Processed, report.Skipped, report.Failed)
	return report, nil
}

// processFile runs one document through download -> extract -> parse ->
// persist and ledgers the terminal state. Every error is caught here so a
// bad document fails alone.
func (s *IngestionService) processFile(ctx context.Context, key string) domain.IngestStatus {
	fileType := strings.TrimPrefix(strings.ToLower(path.Ext(key)), ".")

	localPath, err := s.storage.Download(ctx, key)
	if err != nil {
		return s.fail(ctx, key, fileType, err)
	}

	content, err := s.extractor.Extract(ctx, localPath)
	if err != nil {
		return s.fail(ctx, key, fileType, err)
	}

	parsed, err := s.parser.Parse(ctx, content, key)
	if err != nil {
		return s.fail(ctx, key, fileType, err)
	}

	if len(parsed.Results) == 0 {
		log.Printf("ingestionService.processFile: no results found in %s, skipping", key)
		s.mark(ctx, key, domain.IngestSkipped, "no results found in file")
		return domain.IngestSkipped
	}

	season := s.inferSeason(key)
	if season == nil && parsed.Season != "" {
		season = &parsed.Season
	}

	compID, err := s.competitions.GetOrCreate(ctx, &domain.Competition{
		Season: season,
		Name:   parsed.Competition,
		Venue:  optional(parsed.Venue),
		Date:   optional(parsed.Date),
	})
	if err != nil {
		return s.fail(ctx, key, fileType, err)
	}

	sourceFile := key
	eventID, err := s.events.GetOrCreate(ctx, &domain.Event{
		CompetitionID: compID,
		Discipline:    optional(parsed.Discipline),
		Gender:        optional(parsed.Gender),
		AgeGroup:      optional(parsed.AgeGroup),
		RoundType:     optional(parsed.RoundType),
		SourceFile:    &sourceFile,
	})
	if err != nil {
		return s.fail(ctx, key, fileType, err)
	}

	rows := make([]domain.Result, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		rows = append(rows, domain.Result{
			EventID:   eventID,
			Rank:      r.Rank,
			Bib:       optional(r.Bib),
			Name:      optional(r.Name),
			Team:      optional(r.Team),
			Run1Time:  r.Run1Time,
			Run2Time:  r.Run2Time,
			TotalTime: r.TotalTime,
			// Seconds are always rederived from the time strings; upstream
			// values are never trusted.
			Run1Seconds:  timing.ToSeconds(r.Run1Time),
			Run2Seconds:  timing.ToSeconds(r.Run2Time),
			TotalSeconds: timing.ToSeconds(r.TotalTime),
			TimeDiff:     r.TimeDiff,
			Status:       domain.NormalizeStatus(r.Status),
		})
	}

	if err := s.results.InsertBatch(ctx, eventID, rows); err != nil {
		return s.fail(ctx, key, fileType, err)
	}

	s.mark(ctx, key, domain.IngestSuccess, "")
	log.Printf("ingestionService.processFile: successfully processed %s", key)
	return domain.IngestSuccess
}

func (s *IngestionService) fail(ctx context.Context, key, fileType string, cause error) domain.IngestStatus {
	log.Printf("ingestionService.processFile: failed to process %s: %v", key, cause)
	if err := s.ledger.Mark(ctx, key, fileType, domain.IngestFailed, cause.Error()); err != nil {
		log.Printf("ingestionService.processFile: ledger write for %s failed: %v", key, err)
	}
	return domain.IngestFailed
}

func (s *IngestionService) mark(ctx context.Context, key string, status domain.IngestStatus, reason string) {
	fileType := strings.TrimPrefix(strings.ToLower(path.Ext(key)), ".")
	if err := s.ledger.Mark(ctx, key, fileType, status, reason); err != nil {
		log.Printf("ingestionService: ledger write for %s failed: %v", key, err)
	}
}

// matchSkipPattern returns the first configured skip substring found in the
// document's filename, or "" when none match.
func (s *IngestionService) matchSkipPattern(key string) string {
	base := path.Base(key)
	for _, pattern := range s.cfg.SkipPatterns {
		if strings.Contains(base, pattern) {
			return pattern
		}
	}
	return ""
}

// inferSeason scans the storage path for a component carrying the season
// token, e.g. "25-26雪季". The path wins over parsed metadata.
func (s *IngestionService) inferSeason(key string) *string {
	for _, part := range strings.Split(key, "/") {
		if strings.Contains(part, s.cfg.SeasonToken) {
			return &part
		}
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
