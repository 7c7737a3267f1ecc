// Package markdown implements line-oriented surgery on markdown documents:
// locating header-delimited sections, splicing section bodies, and encoding
// and decoding pipe tables.
//
// The package deliberately avoids a markdown AST. Every operation works on
// raw lines so that hand-written content survives a read-modify-write cycle
// byte for byte. A section is the span of lines after a matching header up
// to the next header of equal or shallower depth; the depth comparison is a
// prefix-length check on the '#' run, not nesting semantics, so a level-1
// header always terminates a level-2 section while a level-3 header never
// does.
package markdown

import "strings"

// DefaultHeaderLevel is the header depth used when callers pass level 0.
const DefaultHeaderLevel = 2

// headerLine builds the exact header line for text at the given level.
func headerLine(text string, level int) string {
	return strings.Repeat("#", level) + " " + text
}

// terminatesSection reports whether a trimmed line ends a section at level.
// Any header of equal-or-shallower depth terminates; deeper sub-headers are
// ordinary section content.
func terminatesSection(trimmed string, level int) bool {
	return strings.HasPrefix(trimmed, "#") && !strings.HasPrefix(trimmed, strings.Repeat("#", level+1))
}

func normalizeLevel(level int) int {
	if level <= 0 {
		return DefaultHeaderLevel
	}

	return level
}

// HasHeader reports whether content contains a header line that matches
// text exactly at the given level after trimming surrounding whitespace.
func HasHeader(content, text string, level int) bool {
	level = normalizeLevel(level)
	want := headerLine(text, level)

	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == want {
			return true
		}
	}

	return false
}

// AppendHeader appends two blank lines and the header line to the end of
// content. Callers use it when the target section does not exist yet.
func AppendHeader(content, text string, level int) string {
	level = normalizeLevel(level)

	return content + "\n\n" + headerLine(text, level) + "\n"
}

// SectionContent returns the lines of the section named by text: everything
// after the matching header line up to (excluding) the first header of
// equal-or-shallower depth, or the end of the document. The first matching
// header wins. Returns nil if the header is not found.
func SectionContent(content, text string, level int) []string {
	level = normalizeLevel(level)
	lines := strings.Split(content, "\n")

	start := findHeader(lines, text, level)
	if start == -1 {
		return nil
	}

	var section []string

	for _, line := range lines[start+1:] {
		if terminatesSection(strings.TrimSpace(line), level) {
			break
		}

		section = append(section, line)
	}

	return section
}

// ReplaceSectionContent replaces the body of the section named by text with
// newLines and returns the resulting document. Everything up to and
// including the header line and everything from the terminating header line
// onward is preserved verbatim. If the header is not found the document is
// returned unchanged; callers ensure the header exists first, typically via
// [AppendHeader].
func ReplaceSectionContent(content, text string, newLines []string, level int) string {
	level = normalizeLevel(level)
	lines := strings.Split(content, "\n")

	start := findHeader(lines, text, level)
	if start == -1 {
		return content
	}

	end := len(lines)

	for idx := start + 1; idx < len(lines); idx++ {
		if terminatesSection(strings.TrimSpace(lines[idx]), level) {
			end = idx

			break
		}
	}

	result := make([]string, 0, start+1+len(newLines)+len(lines)-end)
	result = append(result, lines[:start+1]...)
	result = append(result, newLines...)
	result = append(result, lines[end:]...)

	return strings.Join(result, "\n")
}

// findHeader returns the index of the first line matching the header, or -1.
func findHeader(lines []string, text string, level int) int {
	want := headerLine(text, level)

	for idx, line := range lines {
		if strings.TrimSpace(line) == want {
			return idx
		}
	}

	return -1
}
