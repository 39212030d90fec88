package documentloaders

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/sevigo/gochunk/schema"
)

// PDFLoader extracts the plain text of a PDF file, one document per page.
type PDFLoader struct {
	path   string
	logger *slog.Logger
}

var _ Loader = (*PDFLoader)(nil)

// NewPDF creates a loader for a single PDF file. A nil logger falls back
// to slog.Default.
func NewPDF(path string, logger *slog.Logger) *PDFLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFLoader{
		path:   path,
		logger: logger.With("component", "pdf_loader"),
	}
}

// Load reads every page's text. Pages that are null or fail text
// extraction are skipped with a warning.
func (l *PDFLoader) Load(ctx context.Context) ([]schema.Document, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", l.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat pdf %s: %w", l.path, err)
	}

	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("read pdf %s: %w", l.path, err)
	}

	numPages := reader.NumPage()
	l.logger.DebugContext(ctx, "Extracting PDF text", "path", l.path, "pages", numPages)

	var documents []schema.Document
	for i := 1; i <= numPages; i++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			l.logger.Warn("Skipping null page", "page", i, "path", l.path)
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			l.logger.Warn("Could not extract page text, skipping",
				"page", i, "path", l.path, "error", err)
			continue
		}
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}

		documents = append(documents, schema.NewDocument(content, map[string]any{
			"source":      filepath.Base(l.path),
			"page":        i,
			"total_pages": numPages,
		}))
	}

	l.logger.DebugContext(ctx, "PDF extraction finished",
		"path", l.path, "pages_with_text", len(documents))
	return documents, nil
}
