package chunker

import (
	"fmt"
	"strings"

	"github.com/sevigo/gochunk/schema"
)

// StructureAwareChunker chunks a document along its parsed structure. The
// injected IDRParser turns raw text into an element tree; the chunker walks
// it depth-first, packs sibling content elements into size-bounded chunks,
// flushes at heading boundaries, and records the active heading path in
// each chunk's hierarchical context. An element whose text alone exceeds
// the chunk size is delegated to an internal recursive character pass with
// offsets shifted back into the original document.
type StructureAwareChunker struct {
	parser   schema.IDRParser
	opts     options
	fallback *RecursiveCharacterChunker
}

var _ Chunker = (*StructureAwareChunker)(nil)

// NewStructureAware creates a StructureAwareChunker. A nil parser is a
// construction error: the collaborator is required, never silently
// substituted.
func NewStructureAware(parser schema.IDRParser, opts ...Option) (*StructureAwareChunker, error) {
	if parser == nil {
		return nil, ErrParserRequired
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.overlapSentences = 0
	if err := o.validate(); err != nil {
		return nil, err
	}

	fallback, err := NewRecursiveCharacter(
		WithChunkSize(o.chunkSize),
		WithChunkOverlap(o.chunkOverlap),
		WithSizeFunc(o.sizeFunc),
	)
	if err != nil {
		return nil, err
	}

	return &StructureAwareChunker{parser: parser, opts: o, fallback: fallback}, nil
}

// Chunk parses text into an element tree and cuts it along the structure.
func (c *StructureAwareChunker) Chunk(text string) ([]schema.Chunk, error) {
	if text == "" {
		return nil, nil
	}

	tree, err := c.parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse document structure: %w", err)
	}
	if tree == nil || tree.Len() == 0 {
		return nil, nil
	}

	w := &structureWalker{chunker: c}
	w.walk(tree, tree.Root())
	w.flush()

	return finalize(w.chunks, &c.opts), nil
}

// structureWalker carries the traversal state: the chunks built so far,
// the current accumulation of content elements, and the heading path.
type structureWalker struct {
	chunker *StructureAwareChunker
	chunks  []schema.Chunk
	acc     []*schema.Element
	path    []string // heading texts, indexed by level-1
}

func (w *structureWalker) walk(tree *schema.ElementTree, idx int) {
	node := tree.Node(idx)

	switch node.Type {
	case "heading":
		// New section: the accumulation never crosses a heading.
		w.flush()
		w.setHeading(node.Level, node.Text)
	case "root", "document":
		// Structural container, no content of its own.
	default:
		if node.Text != "" {
			w.add(node)
		}
	}

	for _, child := range node.Children {
		w.walk(tree, child)
	}
}

// setHeading truncates the path to the heading's level and records it.
func (w *structureWalker) setHeading(level int, text string) {
	if level < 1 {
		level = 1
	}
	if level <= len(w.path) {
		w.path = w.path[:level-1]
	}
	for len(w.path) < level-1 {
		w.path = append(w.path, "")
	}
	w.path = append(w.path, text)
}

func (w *structureWalker) add(el *schema.Element) {
	c := w.chunker

	if c.opts.sizeFunc(el.Text) > c.opts.chunkSize {
		w.flush()
		w.spill(el)
		return
	}

	if len(w.acc) > 0 {
		joined := joinElements(append(w.acc[:len(w.acc):len(w.acc)], el))
		if c.opts.sizeFunc(joined) > c.opts.chunkSize {
			w.flush()
		}
	}
	w.acc = append(w.acc, el)
}

// spill re-chunks a single oversized element through the recursive
// character fallback, shifting offsets back into the original document.
func (w *structureWalker) spill(el *schema.Element) {
	sub, err := w.chunker.fallback.Chunk(el.Text)
	if err != nil {
		// The fallback cannot fail on a validated configuration; keep the
		// element whole rather than lose its text.
		sub = []schema.Chunk{schema.NewChunk(el.Text)}
	}
	for _, chunk := range sub {
		chunk.StartCharIndex += el.Start
		chunk.EndCharIndex += el.Start
		w.emit(chunk, el.Type)
	}
}

func (w *structureWalker) flush() {
	if len(w.acc) == 0 {
		return
	}
	text := joinElements(w.acc)
	chunk := schema.NewChunk(text)
	chunk.StartCharIndex = w.acc[0].Start
	chunk.EndCharIndex = w.acc[len(w.acc)-1].End
	w.emit(chunk, w.acc[0].Type)
	w.acc = nil
}

func (w *structureWalker) emit(chunk schema.Chunk, elementType string) {
	c := w.chunker
	chunk.TokenCount = c.opts.sizeFunc(chunk.Text)
	chunk.ChunkingStrategyUsed = StrategyStructureAware
	chunk.SourceDocumentID = c.opts.sourceDocumentID
	chunk.ContentType = contentTypeFor(elementType)
	for i, heading := range w.path {
		if heading != "" {
			chunk.HierarchicalContext[fmt.Sprintf("h%d", i+1)] = heading
		}
	}
	w.chunks = append(w.chunks, chunk)
}

func contentTypeFor(elementType string) string {
	switch elementType {
	case "code_block":
		return "code"
	case "table":
		return "table"
	case "list", "list_item":
		return "list"
	default:
		return "text"
	}
}

func joinElements(elements []*schema.Element) string {
	parts := make([]string, len(elements))
	for i, el := range elements {
		parts[i] = el.Text
	}
	return strings.Join(parts, "\n\n")
}
