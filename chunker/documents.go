package chunker

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sevigo/gochunk/schema"
)

// DocumentSplitter runs whole documents through a chunking strategy and
// propagates source metadata onto every produced document, alongside the
// chunk-level provenance keys retrieval pipelines need.
type DocumentSplitter struct {
	chunker Chunker
	logger  *slog.Logger
}

var _ TextSplitter = (*DocumentSplitter)(nil)

// NewDocumentSplitter wraps a chunking strategy. A nil logger falls back to
// slog.Default.
func NewDocumentSplitter(c Chunker, logger *slog.Logger) (*DocumentSplitter, error) {
	if c == nil {
		return nil, errors.New("chunker cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentSplitter{
		chunker: c,
		logger:  logger.With("component", "document_splitter"),
	}, nil
}

// SplitDocuments chunks each document's content and emits one document per
// chunk. A document that fails to chunk is passed through unsplit with a
// warning rather than dropped.
func (s *DocumentSplitter) SplitDocuments(ctx context.Context, docs []schema.Document) ([]schema.Document, error) {
	finalDocs := make([]schema.Document, 0, len(docs))
	for _, doc := range docs {
		chunks, err := s.chunker.Chunk(doc.PageContent)
		if err != nil {
			s.logger.WarnContext(ctx, "Could not chunk document, using original.",
				"document_id", doc.ID, "error", err)
			finalDocs = append(finalDocs, doc)
			continue
		}
		for _, chunk := range chunks {
			finalDocs = append(finalDocs, chunkToDocument(doc, chunk))
		}
	}
	return finalDocs, nil
}

// chunkToDocument builds the per-chunk document, merging the source
// document's metadata with chunk provenance.
func chunkToDocument(doc schema.Document, chunk schema.Chunk) schema.Document {
	metadata := make(map[string]any, len(doc.Metadata)+len(chunk.Metadata)+6)
	for k, v := range doc.Metadata {
		metadata[k] = v
	}
	for k, v := range chunk.Metadata {
		metadata[k] = v
	}
	metadata["chunk_id"] = chunk.ChunkID.String()
	metadata["sequence_number"] = chunk.SequenceNumber
	metadata["start_char_index"] = chunk.StartCharIndex
	metadata["end_char_index"] = chunk.EndCharIndex
	metadata["chunking_strategy"] = chunk.ChunkingStrategyUsed
	metadata["content_type"] = chunk.ContentType
	for k, v := range chunk.HierarchicalContext {
		metadata["context_"+k] = v
	}
	return schema.NewDocumentWithID(doc.ID, chunk.Text, metadata)
}
