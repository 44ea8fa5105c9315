package port

import (
	"context"
	"strings"
)

// ExtractedContent is the output of document extraction. NativeText holds
// text pulled from a digital PDF text layer; VisionSegments holds per-page
// vision-model responses for scanned pages or raster images. A non-empty
// VisionSegments slice is the caller-visible marker that content is
// model-derived, so downstream parsing can skip a redundant model call.
type ExtractedContent struct {
	NativeText     string
	VisionSegments []string
}

// IsEmpty reports whether extraction produced nothing usable. Whitespace-only
// native text counts as nothing.
func (c ExtractedContent) IsEmpty() bool {
	return len(c.VisionSegments) == 0 && strings.TrimSpace(c.NativeText) == ""
}

// VisionDerived reports whether any part of the content came from the
// vision model.
func (c ExtractedContent) VisionDerived() bool {
	return len(c.VisionSegments) > 0
}

// Extractor produces raw text or model-generated JSON-like text from a local
// source document.
type Extractor interface {
	Extract(ctx context.Context, localPath string) (ExtractedContent, error)
}
