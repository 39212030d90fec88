// Package documentloaders loads raw documents from local directories,
// remote git repositories and PDF files. Loaders return unsplit documents;
// chunking is the job of the chunker package downstream.
package documentloaders

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sevigo/gochunk/schema"
)

// Loader retrieves documents from a source. The context controls
// cancellation during loading.
type Loader interface {
	Load(ctx context.Context) ([]schema.Document, error)
}

// DirectoryLoader walks a directory tree and loads every readable text
// file as one document. Build directories, binaries and oversized files
// are skipped.
type DirectoryLoader struct {
	path   string
	logger *slog.Logger
}

var _ Loader = (*DirectoryLoader)(nil)

// DirectoryOption configures a DirectoryLoader.
type DirectoryOption func(*DirectoryLoader)

// WithLogger sets a custom logger. slog.Default is used otherwise.
func WithLogger(logger *slog.Logger) DirectoryOption {
	return func(l *DirectoryLoader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewDirectory creates a loader rooted at path.
func NewDirectory(path string, opts ...DirectoryOption) *DirectoryLoader {
	loader := &DirectoryLoader{
		path:   path,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(loader)
	}
	loader.logger = loader.logger.With("component", "directory_loader")
	return loader
}

// Load walks the tree and returns one document per loadable file.
// Unreadable paths are skipped with a warning rather than aborting the
// walk.
func (l *DirectoryLoader) Load(ctx context.Context) ([]schema.Document, error) {
	l.logger.InfoContext(ctx, "Starting directory load", "path", l.path)

	var documents []schema.Document
	err := filepath.WalkDir(l.path, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			l.logger.Warn("Skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			if shouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			l.logger.Warn("Could not stat file, skipping", "path", path, "error", err)
			return nil
		}
		if shouldSkipFile(path, info) {
			return nil
		}

		doc, ok := l.loadFile(path, info)
		if ok {
			documents = append(documents, doc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "Directory load completed",
		"path", l.path, "total_documents", len(documents))
	return documents, nil
}

func (l *DirectoryLoader) loadFile(path string, info fs.FileInfo) (schema.Document, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		l.logger.Warn("Cannot read file, skipping", "path", path, "error", err)
		return schema.Document{}, false
	}

	relPath, err := filepath.Rel(l.path, path)
	if err != nil {
		relPath = path
	}

	return schema.NewDocument(string(content), map[string]any{
		"source":    relPath,
		"file_size": info.Size(),
		"mod_time":  info.ModTime(),
	}), true
}

// shouldSkipDir excludes version control, dependency and build output
// directories from the walk.
func shouldSkipDir(name string) bool {
	skipDirs := []string{
		".git", ".svn", ".hg",
		"vendor", "node_modules", "__pycache__",
		"build", "dist", "target", "out", "bin",
		".vscode", ".idea",
	}
	return slices.Contains(skipDirs, name)
}

// shouldSkipFile excludes binaries and very large files. PDFs are skipped
// here too; PDFLoader handles them explicitly.
func shouldSkipFile(path string, info fs.FileInfo) bool {
	const maxFileSize = 10 * 1024 * 1024
	if info.Size() > maxFileSize {
		return true
	}

	binaryExts := map[string]bool{
		".exe": true, ".dll": true, ".so": true, ".dylib": true,
		".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
		".bmp": true, ".tiff": true, ".ico": true,
		".zip": true, ".tar": true, ".gz": true, ".rar": true,
		".7z": true, ".bz2": true, ".xz": true,
		".mp3": true, ".mp4": true, ".avi": true, ".mov": true,
		".wav": true, ".flac": true, ".ogg": true,
		".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
		".ppt": true, ".pptx": true,
		".bin": true, ".dat": true, ".db": true, ".sqlite": true,
		".pdf": true,
	}
	return binaryExts[strings.ToLower(filepath.Ext(path))]
}
