package port

import (
	"context"

	"skiresults/internal/domain"
)

// SheetParser turns extracted content into a canonical result record.
// Two parses of the same document may yield different rows because the
// underlying model call is not deterministic; duplicate-ingestion prevention
// relies on the event's source-file identity, never on parse content.
type SheetParser interface {
	Parse(ctx context.Context, content ExtractedContent, sourceFile string) (*domain.ParsedSheet, error)
}
