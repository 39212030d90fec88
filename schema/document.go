package schema

import "github.com/google/uuid"

// Document is the unit of input the loaders produce and the document
// splitter chunks. ID propagates to SourceDocumentID on chunks cut from it.
type Document struct {
	ID          string
	PageContent string
	Metadata    map[string]any
}

func (d Document) String() string {
	return d.PageContent
}

// NewDocument creates a document with a generated id. A nil metadata map is
// replaced by a fresh one so callers can always write into it.
func NewDocument(content string, metadata map[string]any) Document {
	return NewDocumentWithID(uuid.NewString(), content, metadata)
}

// NewDocumentWithID creates a document with a caller-supplied id.
func NewDocumentWithID(id, content string, metadata map[string]any) Document {
	if metadata == nil {
		metadata = make(map[string]any)
	}
	return Document{
		ID:          id,
		PageContent: content,
		Metadata:    metadata,
	}
}
