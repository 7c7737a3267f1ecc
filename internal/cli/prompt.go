package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"
)

var errNoSuchTemplate = errors.New("no such template")

// pickTemplateInteractive lists the candidates and reads a selection, by
// number or by path, from the terminal.
func pickTemplateInteractive(o *IO, candidates []string) (string, bool, error) {
	o.Println("Templates:")

	for i, candidate := range candidates {
		o.Printf("  %d) %s\n", i+1, candidate)
	}

	line, ok, err := promptLine("template> ", candidates)
	if err != nil || !ok {
		return "", ok, err
	}

	if n, convErr := strconv.Atoi(line); convErr == nil && n >= 1 && n <= len(candidates) {
		return candidates[n-1], true, nil
	}

	for _, candidate := range candidates {
		if candidate == line {
			return candidate, true, nil
		}
	}

	return "", false, fmt.Errorf("%w: %s", errNoSuchTemplate, line)
}

// promptLine reads one line with line editing and optional prefix
// completion. Ctrl-C and EOF count as cancel, not as errors.
func promptLine(prompt string, completions []string) (string, bool, error) {
	s := liner.NewLiner()
	defer func() { _ = s.Close() }()

	s.SetCtrlCAborts(true)

	if len(completions) > 0 {
		s.SetCompleter(func(line string) []string {
			var matches []string

			for _, c := range completions {
				if strings.HasPrefix(c, line) {
					matches = append(matches, c)
				}
			}

			return matches
		})
	}

	line, err := s.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return "", false, nil
	}

	if err != nil {
		return "", false, err
	}

	return strings.TrimSpace(line), true, nil
}
