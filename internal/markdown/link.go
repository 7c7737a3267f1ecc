package markdown

import (
	"regexp"
	"strings"
)

// wikiLink matches a double-bracket cross-reference and captures the inner
// text.
var wikiLink = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

// ExtractLinkTarget reduces a table cell holding a wiki-style
// cross-reference to the referenced document's base name. Cells without a
// [[...]] reference are treated as the inner text directly. Display aliases
// (text after '|'), heading anchors ('#...') and block anchors ('^...') are
// stripped, backslashes normalize to forward slashes, and only the final
// path segment remains. The result is used as a case-insensitive sort key;
// it never affects rendered output.
func ExtractLinkTarget(cell string) string {
	if cell == "" {
		return ""
	}

	inner := cell
	if match := wikiLink.FindStringSubmatch(cell); match != nil {
		inner = match[1]
	}

	target := inner
	if idx := strings.Index(target, "|"); idx != -1 {
		target = target[:idx]
	}

	target = strings.ReplaceAll(target, "\\", "/")

	if idx := strings.Index(target, "#"); idx != -1 {
		target = target[:idx]
	}

	if idx := strings.Index(target, "^"); idx != -1 {
		target = target[:idx]
	}

	if idx := strings.LastIndex(target, "/"); idx != -1 {
		target = target[idx+1:]
	}

	return strings.TrimSpace(target)
}
