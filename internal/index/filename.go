package index

import (
	"regexp"
	"strings"
)

// maxFileNameRunes caps generated file names well below common OS path
// limits.
const maxFileNameRunes = 180

var (
	// invalidFileChars are characters illegal in file names on common
	// filesystems. Replacing the path separators also prevents a project
	// name from escaping into nested folders.
	invalidFileChars = regexp.MustCompile(`[/\\:*?"<>|]`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
)

// FileName sanitizes a project name into a filesystem-safe base name:
// illegal characters become '-', whitespace runs collapse to a single
// space, leading dots are stripped, and the result is capped at 180
// characters.
func FileName(name string) string {
	s := strings.TrimSpace(name)
	s = invalidFileChars.ReplaceAllString(s, "-")
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimLeft(s, ".")

	runes := []rune(s)
	if len(runes) > maxFileNameRunes {
		s = string(runes[:maxFileNameRunes])
	}

	return s
}
