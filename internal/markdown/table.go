package markdown

import "strings"

// Column alignment values accepted by RenderTable.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// minTableLines is header + separator + zero or more data lines. Anything
// shorter cannot be a table.
const minTableLines = 3

// Table is a parsed pipe table: an ordered header row plus data rows.
// Parsing is lenient, so rows may be ragged when the source was hand-edited;
// consumers must tolerate rows shorter or longer than Headers.
type Table struct {
	Headers []string
	Rows    [][]string
}

// RenderTable renders headers and rows as markdown table lines. Each row is
// re-indexed against the header count: missing cells render as empty
// strings, extra cells are dropped. alignments maps positionally onto
// headers; missing or unknown entries default to left.
func RenderTable(headers []string, rows [][]string, alignments []string) []string {
	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, renderRow(headers))

	separators := make([]string, len(headers))
	for idx := range headers {
		align := AlignLeft
		if idx < len(alignments) {
			align = alignments[idx]
		}

		switch align {
		case AlignCenter:
			separators[idx] = ":---:"
		case AlignRight:
			separators[idx] = "---:"
		default:
			separators[idx] = ":---"
		}
	}

	lines = append(lines, renderRow(separators))

	for _, row := range rows {
		normalized := make([]string, len(headers))
		for idx := range headers {
			if idx < len(row) {
				normalized[idx] = row[idx]
			}
		}

		lines = append(lines, renderRow(normalized))
	}

	return lines
}

func renderRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

// ParseTable parses markdown table lines into headers and rows. Fewer than
// three lines yields an empty table. The separator line is skipped without
// validation. Data lines not starting with '|' after trimming are skipped,
// which tolerates stray blank lines. Column counts are not enforced.
func ParseTable(lines []string) Table {
	if len(lines) < minTableLines {
		return Table{Headers: []string{}, Rows: [][]string{}}
	}

	headers := splitRow(lines[0])

	rows := make([][]string, 0, len(lines)-2)

	for _, line := range lines[2:] {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "|") {
			continue
		}

		rows = append(rows, splitRow(trimmed))
	}

	return Table{Headers: headers, Rows: rows}
}

// splitRow splits a pipe-delimited line into trimmed cells, dropping the
// empty leading and trailing segments produced by the outer pipes.
func splitRow(line string) []string {
	parts := strings.Split(line, "|")
	if len(parts) <= 2 {
		return []string{}
	}

	parts = parts[1 : len(parts)-1]

	cells := make([]string, len(parts))
	for idx, part := range parts {
		cells[idx] = strings.TrimSpace(part)
	}

	return cells
}

// TableInSection finds the first contiguous run of table lines inside the
// named section and returns it parsed. The run starts at the first line
// whose trimmed form begins with '|' and ends at the first non-table line
// after it. Returns ok=false when the section holds no table lines.
func TableInSection(content, text string, level int) (Table, bool) {
	var (
		tableLines []string
		inTable    bool
	)

	for _, line := range SectionContent(content, text, level) {
		if strings.HasPrefix(strings.TrimSpace(line), "|") {
			inTable = true

			tableLines = append(tableLines, line)

			continue
		}

		if inTable {
			break
		}
	}

	if len(tableLines) == 0 {
		return Table{}, false
	}

	return ParseTable(tableLines), true
}
