package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"skiresults/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the export header row (18 columns).
var columns = []string{
	"Season",
	"Competition",
	"Date",
	"Venue",
	"Discipline",
	"Gender",
	"Age Group",
	"Round",
	"Rank",
	"Bib",
	"Name",
	"Team",
	"Run 1",
	"Run 2",
	"Total",
	"Total Seconds",
	"Diff",
	"Status",
}

// CSVWriter wraps csv.Writer for exporting result rows as CSV.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes CSV to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRows converts a batch of result rows to CSV records and writes them.
func (w *CSVWriter) WriteRows(rows []domain.ResultRow) error {
	for i := range rows {
		if err := w.csv.Write(resultToRecord(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// resultToRecord converts a single result row to an 18-element string slice.
func resultToRecord(r *domain.ResultRow) []string {
	rec := make([]string, len(columns))
	rec[0] = deref(r.Season)
	rec[1] = r.Competition
	rec[2] = deref(r.Date)
	rec[3] = deref(r.Venue)
	rec[4] = deref(r.Discipline)
	rec[5] = deref(r.Gender)
	rec[6] = deref(r.AgeGroup)
	rec[7] = deref(r.RoundType)
	if r.Rank != nil {
		rec[8] = strconv.Itoa(*r.Rank)
	}
	rec[9] = deref(r.Bib)
	rec[10] = deref(r.Name)
	rec[11] = deref(r.Team)
	rec[12] = deref(r.Run1Time)
	rec[13] = deref(r.Run2Time)
	rec[14] = deref(r.TotalTime)
	if r.TotalSeconds != nil {
		rec[15] = strconv.FormatFloat(*r.TotalSeconds, 'f', 2, 64)
	}
	rec[16] = deref(r.TimeDiff)
	rec[17] = r.Status
	return rec
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
