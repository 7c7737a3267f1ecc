// Package template implements the variable substitution pass applied to
// note templates. It is plain find-and-replace over {{...}} patterns, not a
// templating language.
package template

import (
	"regexp"
	"strings"
	"time"
)

// Default layouts for the bare {{date}} and {{time}} variables.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	datePattern = regexp.MustCompile(`\{\{date:([^}]+)\}\}`)
	timePattern = regexp.MustCompile(`\{\{time:([^}]+)\}\}`)
)

// Process substitutes template variables in content. {{date}} and {{time}}
// render now with the default layouts; {{date:LAYOUT}} and {{time:LAYOUT}}
// accept a Go reference-time layout. Every entry of vars replaces its
// {{name}} pattern literally. Custom patterns whose layout is blank are
// left verbatim.
func Process(content string, vars map[string]string, now time.Time) string {
	out := content

	for name, value := range vars {
		out = strings.ReplaceAll(out, "{{"+name+"}}", value)
	}

	out = strings.ReplaceAll(out, "{{date}}", now.Format(DateLayout))
	out = strings.ReplaceAll(out, "{{time}}", now.Format(TimeLayout))

	out = replaceFormatted(out, datePattern, now)
	out = replaceFormatted(out, timePattern, now)

	return out
}

func replaceFormatted(content string, pattern *regexp.Regexp, now time.Time) string {
	return pattern.ReplaceAllStringFunc(content, func(match string) string {
		layout := pattern.FindStringSubmatch(match)[1]
		if strings.TrimSpace(layout) == "" {
			return match
		}

		return now.Format(layout)
	})
}
