package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/sevigo/gochunk/schema"
)

// section is one open heading scope during tree construction. Level 0 is
// the document root.
type section struct {
	level int
	idx   int
}

// treeBuilder folds top-level AST nodes into the element tree, nesting
// content under the innermost open heading.
type treeBuilder struct {
	parser   *Parser
	tree     *schema.ElementTree
	source   []byte
	baseByte int
	toRune   map[int]int
	sections []section
}

func (b *treeBuilder) addNode(node ast.Node) {
	switch n := node.(type) {
	case *ast.Heading:
		b.addHeading(n)
	case *ast.FencedCodeBlock:
		b.addLeaf(node, "code_block", codeMetadata(n, b.source))
	case *ast.CodeBlock:
		b.addLeaf(node, "code_block", nil)
	case *ast.List:
		b.addList(n)
	case *ast.Blockquote:
		b.addLeaf(node, "blockquote", nil)
	case *extast.Table:
		b.addLeaf(node, "table", nil)
	case *ast.Paragraph:
		b.addLeaf(node, "paragraph", nil)
	case *ast.ThematicBreak:
		// Carries no content.
	default:
		b.addLeaf(node, "other", nil)
	}
}

func (b *treeBuilder) addHeading(n *ast.Heading) {
	el, ok := b.element(n, "heading")
	if !ok {
		return
	}
	el.Level = n.Level
	if id, found := n.AttributeString("id"); found {
		if idBytes, isBytes := id.([]byte); isBytes {
			el.Metadata = map[string]string{"id": string(idBytes)}
		}
	}

	for len(b.sections) > 1 && b.sections[len(b.sections)-1].level >= n.Level {
		b.sections = b.sections[:len(b.sections)-1]
	}
	parent := b.sections[len(b.sections)-1].idx
	idx := b.tree.AddChild(parent, el)
	b.sections = append(b.sections, section{level: n.Level, idx: idx})
}

func (b *treeBuilder) addLeaf(node ast.Node, elementType string, metadata map[string]string) {
	el, ok := b.element(node, elementType)
	if !ok {
		b.parser.logger.Debug("Skipping node without resolvable source span.",
			"kind", node.Kind().String())
		return
	}
	el.Metadata = metadata
	b.tree.AddChild(b.currentParent(), el)
}

// addList creates a text-less list container whose items carry the text,
// so downstream consumers never see list content twice.
func (b *treeBuilder) addList(n *ast.List) {
	container, ok := b.element(n, "list")
	if !ok {
		return
	}
	container.Text = ""
	listType := "unordered"
	if n.IsOrdered() {
		listType = "ordered"
	}
	container.Metadata = map[string]string{"list_type": listType}
	listIdx := b.tree.AddChild(b.currentParent(), container)

	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		el, itemOK := b.element(item, "list_item")
		if !itemOK {
			continue
		}
		b.tree.AddChild(listIdx, el)
	}
}

func (b *treeBuilder) currentParent() int {
	return b.sections[len(b.sections)-1].idx
}

// element builds a tree element from a node's source span. ok is false
// when no span can be resolved.
func (b *treeBuilder) element(node ast.Node, elementType string) (schema.Element, bool) {
	startByte, stopByte, ok := b.span(node)
	if !ok {
		return schema.Element{}, false
	}
	text := strings.TrimRight(string(b.source[startByte:stopByte]), "\n")
	return schema.Element{
		Type:  elementType,
		Text:  text,
		Start: b.toRune[b.baseByte+startByte],
		End:   b.toRune[b.baseByte+startByte+len(text)],
	}, true
}

// span resolves the byte range a node covers in the source. Nodes without
// line segments (lists, blockquotes, tables) get the min/max span of their
// subtree's segments.
func (b *treeBuilder) span(node ast.Node) (int, int, bool) {
	if lines := node.Lines(); lines.Len() > 0 {
		return lines.At(0).Start, lines.At(lines.Len() - 1).Stop, true
	}

	minOffset, maxOffset := len(b.source), 0
	found := false
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if lines := n.Lines(); lines.Len() > 0 {
			if s := lines.At(0).Start; s < minOffset {
				minOffset = s
			}
			if e := lines.At(lines.Len() - 1).Stop; e > maxOffset {
				maxOffset = e
			}
			found = true
			return ast.WalkSkipChildren, nil
		}
		if t, isText := n.(*ast.Text); isText && t.Segment.Len() > 0 {
			if t.Segment.Start < minOffset {
				minOffset = t.Segment.Start
			}
			if t.Segment.Stop > maxOffset {
				maxOffset = t.Segment.Stop
			}
			found = true
		}
		return ast.WalkContinue, nil
	})

	if !found || maxOffset < minOffset {
		return 0, 0, false
	}
	return minOffset, maxOffset, true
}

func codeMetadata(n *ast.FencedCodeBlock, source []byte) map[string]string {
	if n.Info == nil {
		return nil
	}
	language := strings.TrimSpace(string(n.Info.Text(source)))
	if language == "" {
		return nil
	}
	return map[string]string{"language": language}
}
