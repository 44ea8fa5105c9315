// Package extract produces raw text or model-generated JSON-like text from
// source result-sheet documents. Digital PDF pages are read through poppler's
// pdftotext; scanned pages and photos are rasterized and sent through the
// vision model.
package extract

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"skiresults/internal/config"
	"skiresults/internal/domain"
	"skiresults/internal/parser"
	"skiresults/internal/port"
)

// Extractor implements port.Extractor. Vision-model failures propagate to the
// caller as extraction failures; there is no retry policy at this layer.
type Extractor struct {
	runner Runner
	model  port.ModelClient
	cfg    config.IngestConfig
}

// NewExtractor creates an Extractor from a command runner, model client, and
// ingestion settings.
func NewExtractor(runner Runner, model port.ModelClient, cfg config.IngestConfig) *Extractor {
	return &Extractor{runner: runner, model: model, cfg: cfg}
}

// Extract auto-detects the document type by extension and extracts content.
func (e *Extractor) Extract(ctx context.Context, localPath string) (port.ExtractedContent, error) {
	ext := strings.ToLower(filepath.Ext(localPath))

	switch {
	case ext == ".pdf":
		return e.extractPDF(ctx, localPath)
	case domain.MediaTypes[ext] != "":
		return e.extractImage(ctx, localPath, ext)
	default:
		return port.ExtractedContent{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, ext)
	}
}

// extractPDF reads the PDF text layer page by page. A page counts as digital
// text only when its extracted length exceeds the configured threshold;
// otherwise it is treated as scanned, rendered at double native resolution,
// and sent through the vision model with the structured-extraction prompt.
func (e *Extractor) extractPDF(ctx context.Context, path string) (port.ExtractedContent, error) {
	pages, err := e.pdfPages(ctx, path)
	if err != nil {
		return port.ExtractedContent{}, fmt.Errorf("extracting pdf text: %w", err)
	}

	var textPages []string
	var scanned []int // 1-based page numbers
	for i, page := range pages {
		if len([]rune(strings.TrimSpace(page))) > e.cfg.TextThreshold {
			textPages = append(textPages, strings.TrimSpace(page))
		} else {
			scanned = append(scanned, i+1)
		}
	}

	content := port.ExtractedContent{NativeText: strings.Join(textPages, "\n\n")}
	if len(scanned) == 0 {
		return content, nil
	}

	for _, pageNum := range scanned {
		img, err := e.renderPage(ctx, path, pageNum)
		if err != nil {
			return port.ExtractedContent{}, fmt.Errorf("rendering page %d: %w", pageNum, err)
		}
		resp, err := e.model.Generate(ctx, parser.ExtractionPrompt, &port.Image{Bytes: img, MediaType: "image/png"})
		if err != nil {
			return port.ExtractedContent{}, fmt.Errorf("vision call for page %d: %w", pageNum, err)
		}
		content.VisionSegments = append(content.VisionSegments, resp)
	}

	return content, nil
}

// pdfPages returns the per-page text of a PDF. pdftotext separates pages with
// form feeds and appends one after the final page.
func (e *Extractor) pdfPages(ctx context.Context, path string) ([]string, error) {
	out, _, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return nil, err
	}
	pages := strings.Split(string(out), "\f")
	if n := len(pages); n > 0 && strings.TrimSpace(pages[n-1]) == "" {
		pages = pages[:n-1]
	}
	return pages, nil
}

// renderPage rasterizes a single PDF page to PNG via pdftoppm.
func (e *Extractor) renderPage(ctx context.Context, path string, pageNum int) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "skiresults-render-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			log.Printf("extract: failed to remove temp dir %q: %v", tmpDir, rmErr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	pageArg := fmt.Sprintf("%d", pageNum)
	_, _, err = e.runner.Run(ctx, e.cfg.Pdftoppm,
		"-r", fmt.Sprintf("%d", e.cfg.RenderDPI), "-png", "-f", pageArg, "-l", pageArg, path, prefix)
	if err != nil {
		return nil, err
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no image for page %d", pageNum)
	}
	return os.ReadFile(matches[0])
}

// extractImage sends a raster image straight through the vision model; there
// is no native-text path for photos.
func (e *Extractor) extractImage(ctx context.Context, path, ext string) (port.ExtractedContent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return port.ExtractedContent{}, fmt.Errorf("reading image: %w", err)
	}

	mediaType := domain.MediaTypes[ext]
	if mediaType == "" {
		mediaType = "image/jpeg"
	}

	resp, err := e.model.Generate(ctx, parser.ExtractionPrompt, &port.Image{Bytes: data, MediaType: mediaType})
	if err != nil {
		return port.ExtractedContent{}, fmt.Errorf("vision call: %w", err)
	}

	return port.ExtractedContent{VisionSegments: []string{resp}}, nil
}
