package domain

import (
	"time"
)

// Competition represents one physical competition, identified by (season, name).
type Competition struct {
	ID        int64   `db:"id" json:"id"`
	Season    *string `db:"season" json:"season"`
	Name      string  `db:"name" json:"name"`
	Venue     *string `db:"venue" json:"venue"`
	Date      *string `db:"date" json:"date"`
	Organizer *string `db:"organizer" json:"organizer"`
}

// Event is one scored discipline/age-group/gender round within a competition,
// tied to exactly one source document.
type Event struct {
	ID            int64   `db:"id" json:"id"`
	CompetitionID int64   `db:"competition_id" json:"competition_id"`
	Discipline    *string `db:"discipline" json:"discipline"`
	Gender        *string `db:"gender" json:"gender"`
	AgeGroup      *string `db:"age_group" json:"age_group"`
	RoundType     *string `db:"round_type" json:"round_type"`
	SourceFile    *string `db:"source_file" json:"source_file"`
}

// Result is one athlete's outcome within an event. The *_seconds fields are
// derived from the time strings at insert time and never taken from upstream.
type Result struct {
	ID           int64        `db:"id" json:"id"`
	EventID      int64        `db:"event_id" json:"event_id"`
	Rank         *int         `db:"rank" json:"rank"`
	Bib          *string      `db:"bib" json:"bib"`
	Name         *string      `db:"name" json:"name"`
	Team         *string      `db:"team" json:"team"`
	Run1Time     *string      `db:"run1_time" json:"run1_time"`
	Run2Time     *string      `db:"run2_time" json:"run2_time"`
	TotalTime    *string      `db:"total_time" json:"total_time"`
	Run1Seconds  *float64     `db:"run1_seconds" json:"run1_seconds"`
	Run2Seconds  *float64     `db:"run2_seconds" json:"run2_seconds"`
	TotalSeconds *float64     `db:"total_seconds" json:"total_seconds"`
	TimeDiff     *string      `db:"time_diff" json:"time_diff"`
	Status       ResultStatus `db:"status" json:"status"`
	NamePinyin   string       `db:"name_pinyin" json:"name_pinyin"`
}

// ProcessedFile is the per-source-document ledger entry. At most one live
// row exists per source key; reprocessing replaces the prior entry.
type ProcessedFile struct {
	ID           int64        `db:"id" json:"id"`
	SourceKey    string       `db:"source_key" json:"source_key"`
	FileType     string       `db:"file_type" json:"file_type"`
	ProcessedAt  time.Time    `db:"processed_at" json:"processed_at"`
	Status       IngestStatus `db:"status" json:"status"`
	ErrorMessage *string      `db:"error_message" json:"error_message"`
}

// SheetData is the structured-extraction schema both model calls are prompted
// to produce. Optional fields are nullable, not implicit.
type SheetData struct {
	Competition string        `json:"competition"`
	Date        string        `json:"date"`
	Venue       string        `json:"venue"`
	Discipline  string        `json:"discipline"`
	Gender      string        `json:"gender"`
	AgeGroup    string        `json:"age_group"`
	RoundType   string        `json:"round_type"`
	Season      string        `json:"season,omitempty"`
	Results     []SheetResult `json:"results"`
}

// SheetResult is one athlete row as extracted from a result sheet.
type SheetResult struct {
	Rank      *int    `json:"rank"`
	Bib       string  `json:"bib"`
	Name      string  `json:"name"`
	Team      string  `json:"team"`
	Run1Time  *string `json:"run1_time"`
	Run2Time  *string `json:"run2_time"`
	TotalTime *string `json:"total_time"`
	TimeDiff  *string `json:"time_diff"`
	Status    string  `json:"status"`

	// Derived by post-processing; any model-supplied value is discarded.
	Run1Seconds  *float64 `json:"run1_seconds"`
	Run2Seconds  *float64 `json:"run2_seconds"`
	TotalSeconds *float64 `json:"total_seconds"`
}

// ParsedSheet is the canonical record produced by the result parser for one
// source document.
type ParsedSheet struct {
	SheetData
	SourceFile string `json:"source_file"`
}

// SearchFilter holds the optional filters for result search. All fields are
// exact-match except Name, which is a script-aware substring match.
type SearchFilter struct {
	Season      string
	Competition string
	Discipline  string
	AgeGroup    string
	Gender      string
	Name        string
}

// ResultRow is a denormalized result + event + competition row returned by
// search and athlete-history queries.
type ResultRow struct {
	Rank         *int     `db:"rank" json:"rank"`
	Bib          *string  `db:"bib" json:"bib"`
	Name         *string  `db:"name" json:"name"`
	Team         *string  `db:"team" json:"team"`
	Run1Time     *string  `db:"run1_time" json:"run1_time"`
	Run2Time     *string  `db:"run2_time" json:"run2_time"`
	TotalTime    *string  `db:"total_time" json:"total_time"`
	TimeDiff     *string  `db:"time_diff" json:"time_diff"`
	Status       string   `db:"status" json:"status"`
	Run1Seconds  *float64 `db:"run1_seconds" json:"run1_seconds"`
	Run2Seconds  *float64 `db:"run2_seconds" json:"run2_seconds"`
	TotalSeconds *float64 `db:"total_seconds" json:"total_seconds"`
	Discipline   *string  `db:"discipline" json:"discipline"`
	Gender       *string  `db:"gender" json:"gender"`
	AgeGroup     *string  `db:"age_group" json:"age_group"`
	RoundType    *string  `db:"round_type" json:"round_type"`
	Season       *string  `db:"season" json:"season"`
	Competition  string   `db:"competition" json:"competition"`
	Venue        *string  `db:"venue" json:"venue"`
	Date         *string  `db:"date" json:"date"`
}

// FilterOptions holds distinct values for search filter dropdowns, cascaded
// by an optional season and/or competition.
type FilterOptions struct {
	Seasons      []string `json:"seasons"`
	Competitions []string `json:"competitions"`
	Disciplines  []string `json:"disciplines"`
	AgeGroups    []string `json:"age_groups"`
	Genders      []string `json:"genders"`
}

// Stats holds aggregate counts over the store.
type Stats struct {
	Competitions int `db:"competitions" json:"competitions"`
	Events       int `db:"events" json:"events"`
	Results      int `db:"results" json:"results"`
	Athletes     int `db:"athletes" json:"athletes"`
	FilesSuccess int `db:"files_success" json:"files_success"`
	FilesFailed  int `db:"files_failed" json:"files_failed"`
	FilesSkipped int `db:"files_skipped" json:"files_skipped"`
}

// IngestReport summarizes one batch ingestion run.
type IngestReport struct {
	Total     int `json:"total"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}
