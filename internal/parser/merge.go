package parser

import "skiresults/internal/domain"

// MergeSheets combines per-page parses of one document into a single record.
// Competition-level metadata comes from the first page only; result lists are
// concatenated with first-seen-bib-wins deduplication. Entries with an empty
// bib are never deduplicated against each other. Later duplicates are dropped
// silently even when other fields differ under the same bib.
func MergeSheets(pages []domain.SheetData) domain.SheetData {
	if len(pages) == 0 {
		return domain.SheetData{}
	}
	if len(pages) == 1 {
		return pages[0]
	}

	merged := pages[0]
	seen := make(map[string]bool)
	var all []domain.SheetResult

	for _, page := range pages {
		for _, r := range page.Results {
			if r.Bib == "" {
				all = append(all, r)
				continue
			}
			if seen[r.Bib] {
				continue
			}
			seen[r.Bib] = true
			all = append(all, r)
		}
	}

	merged.Results = all
	return merged
}
