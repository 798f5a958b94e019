package search

import (
	"html"
	"regexp"
	"strings"
)

// Highlight returns the record text with every case-insensitive occurrence of
// the literal query wrapped in <mark> tags, HTML-escaped and ready for
// insertion as markup. If the query is an acronym key for the record, each of
// that acronym's expansion phrases is wrapped too. The record itself is never
// modified; scoring always runs on the raw text.
func Highlight(r Record, query string) string {
	q := strings.TrimSpace(query)
	out := html.EscapeString(r.Text)
	if q == "" {
		return out
	}

	out = markAll(out, html.EscapeString(q))
	for _, phrase := range r.Acronyms[strings.ToLower(q)] {
		out = markAll(out, html.EscapeString(phrase))
	}
	return out
}

// markAll wraps occurrences of term in s. The term is quoted so regex
// metacharacters in user input ("c++") match literally.
func markAll(s, term string) string {
	if term == "" {
		return s
	}
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(term))
	if err != nil {
		return s
	}
	return re.ReplaceAllString(s, "<mark>$0</mark>")
}
