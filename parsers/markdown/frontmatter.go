package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sevigo/gochunk/schema"
)

const frontMatterSeparator = "---"

// extractFrontMatter splits a leading YAML front matter block off the
// input. When present, a metadata-only front_matter node is added to the
// tree and the remaining content plus its byte offset into the original
// input are returned. Malformed front matter is left in place and parsed
// as ordinary Markdown.
func (p *Parser) extractFrontMatter(tree *schema.ElementTree, input string, toRune map[int]int) (content string, baseByte int) {
	lines := strings.SplitAfter(input, "\n")
	if len(lines) < 3 || strings.TrimRight(lines[0], "\n") != frontMatterSeparator {
		return input, 0
	}

	endIdx := -1
	offset := len(lines[0])
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\n") == frontMatterSeparator {
			endIdx = i
			break
		}
		offset += len(lines[i])
	}
	if endIdx <= 1 {
		p.logger.Debug("No closing front matter separator, treating as content.")
		return input, 0
	}

	yamlStart := len(lines[0])
	yamlContent := input[yamlStart:offset]
	blockEnd := offset + len(lines[endIdx])

	el := schema.Element{
		Type:     "front_matter",
		Start:    toRune[0],
		End:      toRune[blockEnd],
		Metadata: parseFrontMatterProperties(p, yamlContent),
	}
	tree.AddChild(tree.Root(), el)

	// The title property, when present, names the whole document.
	if title := el.Metadata["title"]; title != "" {
		tree.Node(tree.Root()).Metadata["title"] = title
	}

	return input[blockEnd:], blockEnd
}

// parseFrontMatterProperties flattens the YAML mapping to string values.
// Unparseable YAML degrades to line-wise key: value extraction.
func parseFrontMatterProperties(p *Parser, yamlContent string) map[string]string {
	props := make(map[string]string)

	var data map[string]any
	if err := yaml.Unmarshal([]byte(yamlContent), &data); err != nil {
		p.logger.Debug("Failed to parse YAML front matter, falling back to key-value lines.", "error", err)
		parseSimpleProperties(yamlContent, props)
		return props
	}
	for key, value := range data {
		props[key] = fmt.Sprintf("%v", value)
	}
	return props
}

func parseSimpleProperties(yamlContent string, props map[string]string) {
	for _, line := range strings.Split(yamlContent, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if key != "" {
			props[key] = value
		}
	}
}
