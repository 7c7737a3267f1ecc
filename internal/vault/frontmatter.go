package vault

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// ParseFields extracts the frontmatter mapping from a document's text.
// Documents without a frontmatter block yield an empty mapping; a malformed
// block is an error.
func ParseFields(text string) (Fields, error) {
	raw := map[string]any{}

	_, err := frontmatter.Parse(strings.NewReader(text), &raw)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	fields := make(Fields, len(raw))
	for key, value := range raw {
		fields[key] = fromAny(value)
	}

	return fields, nil
}

// MergeFields rewrites the document's frontmatter block so that every entry
// of set is present, overwriting existing keys in place and appending new
// ones. Untouched keys keep their order and value; the body after the block
// is preserved verbatim. Documents without a block gain one at the top.
// Absent values in set are skipped: merge only adds or overwrites.
func MergeFields(text string, set Fields) (string, error) {
	keys := make([]string, 0, len(set))

	for key, value := range set {
		if value.IsAbsent() {
			continue
		}

		keys = append(keys, key)
	}

	if len(keys) == 0 {
		return text, nil
	}

	slices.Sort(keys)

	block, body, hasBlock := splitFrontmatter(text)

	mapping, err := parseBlockNode(block)
	if err != nil {
		return "", err
	}

	for _, key := range keys {
		valueNode := &yaml.Node{}

		encodeErr := valueNode.Encode(set[key].yamlValue())
		if encodeErr != nil {
			return "", fmt.Errorf("encode frontmatter %s: %w", key, encodeErr)
		}

		setMappingKey(mapping, key, valueNode)
	}

	rendered, err := renderBlock(mapping)
	if err != nil {
		return "", err
	}

	if !hasBlock {
		body = text
	}

	return frontmatterDelimiter + "\n" + rendered + frontmatterDelimiter + "\n" + body, nil
}

// splitFrontmatter splits text into the frontmatter block (without
// delimiters) and the remaining body. hasBlock is false when the document
// does not start with a delimiter line or the block is unterminated.
func splitFrontmatter(text string) (block string, body string, hasBlock bool) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != frontmatterDelimiter {
		return "", "", false
	}

	for idx := 1; idx < len(lines); idx++ {
		if strings.TrimSpace(lines[idx]) == frontmatterDelimiter {
			block = strings.Join(lines[1:idx], "\n")
			body = strings.Join(lines[idx+1:], "\n")

			return block, body, true
		}
	}

	return "", "", false
}

// parseBlockNode parses a frontmatter block into its YAML mapping node.
// Working at the node level keeps the key order of untouched entries.
func parseBlockNode(block string) (*yaml.Node, error) {
	emptyMapping := func() *yaml.Node {
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	}

	if strings.TrimSpace(block) == "" {
		return emptyMapping(), nil
	}

	var doc yaml.Node

	err := yaml.Unmarshal([]byte(block), &doc)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter block: %w", err)
	}

	if len(doc.Content) == 0 {
		return emptyMapping(), nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse frontmatter block: %w", errFrontmatterNotMapping)
	}

	return root, nil
}

// setMappingKey replaces the value for key inside a mapping node, or
// appends the pair when the key is not present.
func setMappingKey(mapping *yaml.Node, key string, value *yaml.Node) {
	// Mapping content alternates key and value nodes.
	for idx := 0; idx+1 < len(mapping.Content); idx += 2 {
		if mapping.Content[idx].Value == key {
			mapping.Content[idx+1] = value

			return
		}
	}

	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	mapping.Content = append(mapping.Content, keyNode, value)
}

func renderBlock(mapping *yaml.Node) (string, error) {
	if len(mapping.Content) == 0 {
		return "", nil
	}

	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	err := encoder.Encode(mapping)
	if err != nil {
		return "", fmt.Errorf("render frontmatter block: %w", err)
	}

	closeErr := encoder.Close()
	if closeErr != nil {
		return "", fmt.Errorf("render frontmatter block: %w", closeErr)
	}

	return buf.String(), nil
}
