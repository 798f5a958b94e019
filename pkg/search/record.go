package search

import (
	"strings"
	"unicode"
)

// Text length caps applied by the sources. Elements picked up by the page
// walker keep less context than explicitly marked sections.
const (
	MaxSectionText = 260
	MaxElementText = 220
)

// Record is a single searchable unit: one section of the content document or
// one element extracted from a rendered page. Records are immutable once
// built; the lowercase copies are derived at construction and must never
// drift from their counterparts.
type Record struct {
	// ID is unique and stable within one index build.
	ID string

	// Path is the navigation target: a route, optionally with a #section
	// anchor or a ?tab= query parameter.
	Path string

	Title string
	Text  string

	TitleLower string
	TextLower  string

	// Acronyms maps a lowercase acronym to the full phrases it expands to.
	// Empty for records that do not represent expandable abbreviations.
	Acronyms map[string][]string
}

// NewRecord builds a Record, deriving the lowercase copies. Title and text
// are normalized; truncation is the caller's concern since the cap depends
// on the source.
func NewRecord(id, path, title, text string, acronyms map[string][]string) Record {
	title = Normalize(title)
	text = Normalize(text)
	return Record{
		ID:         id,
		Path:       path,
		Title:      title,
		Text:       text,
		TitleLower: strings.ToLower(title),
		TextLower:  strings.ToLower(text),
		Acronyms:   acronyms,
	}
}

// Normalize collapses runs of whitespace into single spaces and trims the
// result.
func Normalize(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// Truncate caps s at max runes.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
