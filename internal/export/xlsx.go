package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"skiresults/internal/domain"
)

const sheetName = "Results"

// WriteXLSX writes result rows as a single-sheet workbook with the same
// columns as the CSV export. Rank and total seconds are written as numbers
// so Excel sorts them correctly.
func WriteXLSX(w io.Writer, rows []domain.ResultRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export.WriteXLSX: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, resultToCells(&rows[i])); err != nil {
			return fmt.Errorf("export.WriteXLSX: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}
	return nil
}

func resultToCells(r *domain.ResultRow) *[]interface{} {
	cells := make([]interface{}, len(columns))
	cells[0] = deref(r.Season)
	cells[1] = r.Competition
	cells[2] = deref(r.Date)
	cells[3] = deref(r.Venue)
	cells[4] = deref(r.Discipline)
	cells[5] = deref(r.Gender)
	cells[6] = deref(r.AgeGroup)
	cells[7] = deref(r.RoundType)
	if r.Rank != nil {
		cells[8] = *r.Rank
	}
	cells[9] = deref(r.Bib)
	cells[10] = deref(r.Name)
	cells[11] = deref(r.Team)
	cells[12] = deref(r.Run1Time)
	cells[13] = deref(r.Run2Time)
	cells[14] = deref(r.TotalTime)
	if r.TotalSeconds != nil {
		cells[15] = *r.TotalSeconds
	}
	cells[16] = deref(r.TimeDiff)
	cells[17] = r.Status
	return &cells
}
