package markdown_test

import (
	"testing"

	"pindex/internal/markdown"
)

func TestExtractLinkTarget(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		cell string
		want string
	}{
		{name: "empty cell", cell: "", want: ""},
		{name: "plain wiki link", cell: "[[Note]]", want: "Note"},
		{name: "bare text without brackets", cell: "Note", want: "Note"},
		{name: "display alias stripped", cell: "[[Note|shown text]]", want: "Note"},
		{name: "path reduced to base name", cell: "[[folder/sub/Note]]", want: "Note"},
		{name: "backslash path separators", cell: "[[folder\\Note]]", want: "Note"},
		{name: "heading anchor stripped", cell: "[[Note#Section]]", want: "Note"},
		{name: "block anchor stripped", cell: "[[Note^block-id]]", want: "Note"},
		{name: "anchor and alias combined", cell: "[[dir/Note#Sec|alias]]", want: "Note"},
		{name: "surrounding whitespace trimmed", cell: "[[ Note ]]", want: "Note"},
		{name: "link embedded in prose", cell: "see [[Note]] for details", want: "Note"},
		{name: "alias with empty target", cell: "[[|alias]]", want: ""},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := markdown.ExtractLinkTarget(tt.cell)
			if got != tt.want {
				t.Errorf("ExtractLinkTarget(%q) = %q, want %q", tt.cell, got, tt.want)
			}
		})
	}
}
