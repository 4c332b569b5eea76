package web

import (
	"html/template"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/jimezsa/jobflow/internal/models"
	"github.com/jimezsa/jobflow/internal/results"
)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"comma": func(n int) string {
			return humanize.Comma(int64(n))
		},
		"sourceLabel": results.SourceLabel,
		"channelLabel": func(ch models.Channel) string {
			return ch.Label()
		},
		"frequencyLabel": func(f models.Frequency) string {
			return f.Label()
		},
		"initials": initials,
	}
}

// initials returns up to two leading letters of name for avatar badges.
func initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		out = append(out, unicode.ToUpper([]rune(part)[0]))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
