package markdown_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"pindex/internal/markdown"
)

func TestRenderTable(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name       string
		headers    []string
		rows       [][]string
		alignments []string
		want       []string
	}{
		{
			name:    "headers only",
			headers: []string{"Note", "status"},
			want: []string{
				"| Note | status |",
				"| :--- | :--- |",
			},
		},
		{
			name:    "rows normalized to header width",
			headers: []string{"Note", "status", "priority"},
			rows: [][]string{
				{"[[a]]", "done"},
				{"[[b]]", "open", "1", "extra"},
			},
			want: []string{
				"| Note | status | priority |",
				"| :--- | :--- | :--- |",
				"| [[a]] | done |  |",
				"| [[b]] | open | 1 |",
			},
		},
		{
			name:       "alignment markers",
			headers:    []string{"a", "b", "c"},
			alignments: []string{markdown.AlignLeft, markdown.AlignCenter, markdown.AlignRight},
			want: []string{
				"| a | b | c |",
				"| :--- | :---: | ---: |",
			},
		},
		{
			name:       "unknown alignment defaults left",
			headers:    []string{"a"},
			alignments: []string{"wat"},
			want: []string{
				"| a |",
				"| :--- |",
			},
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := markdown.RenderTable(tt.headers, tt.rows, tt.alignments)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RenderTable mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseTable(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name  string
		lines []string
		want  markdown.Table
	}{
		{
			name:  "too short yields empty table",
			lines: []string{"| a |", "| :--- |"},
			want:  markdown.Table{Headers: []string{}, Rows: [][]string{}},
		},
		{
			name: "basic table",
			lines: []string{
				"| Note | status |",
				"| :--- | :--- |",
				"| [[a]] | done |",
				"| [[b]] | open |",
			},
			want: markdown.Table{
				Headers: []string{"Note", "status"},
				Rows:    [][]string{{"[[a]]", "done"}, {"[[b]]", "open"}},
			},
		},
		{
			name: "stray non-table lines are skipped",
			lines: []string{
				"| a |",
				"| :--- |",
				"",
				"| one |",
				"note to self",
				"| two |",
			},
			want: markdown.Table{
				Headers: []string{"a"},
				Rows:    [][]string{{"one"}, {"two"}},
			},
		},
		{
			name: "ragged rows are kept as-is",
			lines: []string{
				"| a | b |",
				"| :--- | :--- |",
				"| x |",
				"| x | y | z |",
			},
			want: markdown.Table{
				Headers: []string{"a", "b"},
				Rows:    [][]string{{"x"}, {"x", "y", "z"}},
			},
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := markdown.ParseTable(tt.lines)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseTable mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTableRoundTrip(t *testing.T) {
	t.Parallel()

	// parse(render(headers, rows)) reproduces rows exactly whenever every
	// row already has exactly len(headers) cells and no cell contains '|'.
	headers := []string{"Note", "status", "priority"}
	rows := [][]string{
		{"[[alpha]]", "done", "1"},
		{"[[Beta]]", "", "2"},
		{"[[gamma#sec]]", "in progress", ""},
	}

	got := markdown.ParseTable(markdown.RenderTable(headers, rows, nil))

	want := markdown.Table{Headers: headers, Rows: rows}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestTableInSection(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name    string
		content string
		wantOK  bool
		want    markdown.Table
	}{
		{
			name:    "no table in section",
			content: "## Notes\n\njust prose\n",
			wantOK:  false,
		},
		{
			name:    "finds first table run",
			content: "## Notes\n\nintro\n\n| a |\n| :--- |\n| one |\n\ntrailing prose",
			wantOK:  true,
			want: markdown.Table{
				Headers: []string{"a"},
				Rows:    [][]string{{"one"}},
			},
		},
		{
			name:    "second table run is ignored",
			content: "## Notes\n| a |\n| :--- |\n| one |\n\n| b |\n| :--- |\n| two |",
			wantOK:  true,
			want: markdown.Table{
				Headers: []string{"a"},
				Rows:    [][]string{{"one"}},
			},
		},
		{
			name:    "table outside section not found",
			content: "## Other\n| a |\n| :--- |\n| one |\n\n## Notes\nprose",
			wantOK:  false,
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := markdown.TableInSection(tt.content, "Notes", 2)
			if ok != tt.wantOK {
				t.Fatalf("TableInSection ok = %v, want %v", ok, tt.wantOK)
			}

			if !ok {
				return
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("TableInSection mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
