package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"skiresults/internal/domain"
)

var (
	thinkRe = regexp.MustCompile(`(?s)<think>.*?</think>`)
	fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*\n?(.*?)```")
	braceRe = regexp.MustCompile(`(?s)\{.*\}`)
)

// RecoverSheet locates and deserializes the structured-schema object embedded
// in free-form model output. Reasoning blocks are stripped first; then a
// fenced code block is preferred, falling back to the first top-level
// brace-delimited span (greedy). Failure to recover is not pipeline-fatal;
// callers decide.
func RecoverSheet(text string) (*domain.SheetData, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimSpace(thinkRe.ReplaceAllString(text, ""))

	if m := fenceRe.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}

	if !strings.HasPrefix(text, "{") {
		if m := braceRe.FindString(text); m != "" {
			text = m
		}
	}

	var sheet domain.SheetData
	if err := json.Unmarshal([]byte(text), &sheet); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoStructuredContent, err)
	}
	return &sheet, nil
}
