// Package markdown parses Markdown into the intermediate document
// representation consumed by the structure-aware chunking strategy. It is
// built on goldmark with the GFM extensions, so tables, task lists and
// strikethrough parse the way GitHub renders them.
package markdown

import (
	"log/slog"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/sevigo/gochunk/schema"
)

// Parser converts Markdown source into a schema.ElementTree. Front matter
// becomes a metadata-only node; headings nest the remaining elements into
// sections.
type Parser struct {
	logger   *slog.Logger
	markdown goldmark.Markdown
}

var _ schema.IDRParser = (*Parser)(nil)

// NewParser creates a Markdown parser. A nil logger falls back to
// slog.Default.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		logger: logger.With("component", "markdown_parser"),
		markdown: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Table,
				extension.Strikethrough,
				extension.TaskList,
			),
			goldmark.WithParserOptions(
				gparser.WithAutoHeadingID(),
			),
		),
	}
}

// Extensions returns the file extensions this parser handles.
func (p *Parser) Extensions() []string {
	return []string{".md", ".markdown"}
}

// Parse builds the element tree for the given Markdown source. Offsets on
// every element are rune offsets into the original, unmodified text.
func (p *Parser) Parse(input string) (*schema.ElementTree, error) {
	tree := schema.NewElementTree("document")
	if input == "" {
		return tree, nil
	}

	toRune := runeOffsets(input)

	content, baseByte := p.extractFrontMatter(tree, input, toRune)
	if content == "" {
		return tree, nil
	}

	source := []byte(content)
	doc := p.markdown.Parser().Parse(text.NewReader(source))

	b := &treeBuilder{
		parser:   p,
		tree:     tree,
		source:   source,
		baseByte: baseByte,
		toRune:   toRune,
		sections: []section{{level: 0, idx: tree.Root()}},
	}
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		b.addNode(child)
	}

	p.deriveTitle(tree)
	return tree, nil
}

// deriveTitle records the document title on the root node: the front
// matter title wins, then the first level-1 heading.
func (p *Parser) deriveTitle(tree *schema.ElementTree) {
	root := tree.Node(tree.Root())
	if root.Metadata["title"] != "" {
		return
	}
	for i := range tree.Nodes {
		el := tree.Node(i)
		if el.Type == "heading" && el.Level == 1 {
			root.Metadata["title"] = el.Text
			return
		}
	}
}

// runeOffsets maps every byte offset at a rune boundary, plus the final
// length, to its rune offset.
func runeOffsets(s string) map[int]int {
	table := make(map[int]int, len(s)+1)
	runeIdx := 0
	for byteIdx := range s {
		table[byteIdx] = runeIdx
		runeIdx++
	}
	table[len(s)] = runeIdx
	return table
}
