// Package parser turns extracted sheet content into canonical result records.
package parser

import (
	"context"
	"fmt"
	"log"
	"strings"

	"skiresults/internal/domain"
	"skiresults/internal/port"
	"skiresults/internal/timing"
)

// SheetParser implements port.SheetParser over an opaque model client.
type SheetParser struct {
	model port.ModelClient
}

// NewSheetParser creates a SheetParser backed by the given model client.
func NewSheetParser(model port.ModelClient) *SheetParser {
	return &SheetParser{model: model}
}

// Parse converts extracted content into a canonical record. Vision-derived
// segments are recovered directly, each falling back to one text-model
// resubmission; a segment that still fails recovery is dropped unless every
// segment fails. Plain native text always goes through one text-model call,
// where recovery failure fails the whole document.
func (p *SheetParser) Parse(ctx context.Context, content port.ExtractedContent, sourceFile string) (*domain.ParsedSheet, error) {
	if content.IsEmpty() {
		return nil, fmt.Errorf("parsing %s: %w", sourceFile, domain.ErrEmptyInput)
	}

	var merged domain.SheetData

	if content.VisionDerived() {
		pages, err := p.parseVisionSegments(ctx, content, sourceFile)
		if err != nil {
			return nil, err
		}
		merged = MergeSheets(pages)
	} else {
		sheet, err := p.parseNativeText(ctx, content.NativeText)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", sourceFile, err)
		}
		merged = *sheet
	}

	postProcess(&merged)

	return &domain.ParsedSheet{SheetData: merged, SourceFile: sourceFile}, nil
}

// parseVisionSegments recovers every page of a marked document. When native
// text accompanies the vision segments (mixed PDF), it is parsed through the
// text-model path as an additional leading page so document-order metadata
// still wins the first-page merge; like any other segment, it is dropped if
// recovery fails.
func (p *SheetParser) parseVisionSegments(ctx context.Context, content port.ExtractedContent, sourceFile string) ([]domain.SheetData, error) {
	var pages []domain.SheetData

	if strings.TrimSpace(content.NativeText) != "" {
		sheet, err := p.parseNativeText(ctx, content.NativeText)
		if err != nil {
			log.Printf("parser.Parse: dropping native-text block of %s: %v", sourceFile, err)
		} else {
			pages = append(pages, *sheet)
		}
	}

	for i, segment := range content.VisionSegments {
		sheet, err := RecoverSheet(segment)
		if err == nil {
			pages = append(pages, *sheet)
			continue
		}

		// Direct recovery failed; resubmit the raw segment to the text model.
		resp, genErr := p.model.Generate(ctx, BuildTextParsePrompt(segment), nil)
		if genErr != nil {
			return nil, fmt.Errorf("reparsing segment %d of %s: %w", i, sourceFile, genErr)
		}
		sheet, err = RecoverSheet(resp)
		if err != nil {
			log.Printf("parser.Parse: dropping segment %d of %s: %v", i, sourceFile, err)
			continue
		}
		pages = append(pages, *sheet)
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("parsing %s: %w", sourceFile, domain.ErrNoStructuredContent)
	}
	return pages, nil
}

func (p *SheetParser) parseNativeText(ctx context.Context, text string) (*domain.SheetData, error) {
	resp, err := p.model.Generate(ctx, BuildTextParsePrompt(text), nil)
	if err != nil {
		return nil, fmt.Errorf("text model call: %w", err)
	}
	return RecoverSheet(resp)
}

// postProcess applies field normalization to every parsed entry regardless of
// extraction path: seconds fields are recomputed from the time strings
// (overwriting anything the model supplied), unknown statuses coerce to OK,
// and rank stays exactly as extracted, even for non-OK rows.
func postProcess(sheet *domain.SheetData) {
	for i := range sheet.Results {
		r := &sheet.Results[i]
		r.Run1Seconds = timing.ToSeconds(r.Run1Time)
		r.Run2Seconds = timing.ToSeconds(r.Run2Time)
		r.TotalSeconds = timing.ToSeconds(r.TotalTime)
		r.Status = string(domain.NormalizeStatus(r.Status))
	}
}
