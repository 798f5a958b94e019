package search

import "testing"

func TestHighlightWrapsMatches(t *testing.T) {
	r := rec("a", "Tools", "Go tools for Go programs", nil)

	got := Highlight(r, "go")
	want := "<mark>Go</mark> tools for <mark>Go</mark> programs"
	if got != want {
		t.Errorf("Highlight = %q, want %q", got, want)
	}
}

func TestHighlightEscapesMarkup(t *testing.T) {
	r := rec("a", "Math", "x < y holds", nil)

	got := Highlight(r, "y")
	want := "x &lt; <mark>y</mark> holds"
	if got != want {
		t.Errorf("Highlight = %q, want %q", got, want)
	}
}

func TestHighlightRegexMetacharacters(t *testing.T) {
	r := rec("a", "Systems", "kernel work in c++ mostly", nil)

	got := Highlight(r, "c++")
	want := "kernel work in <mark>c++</mark> mostly"
	if got != want {
		t.Errorf("Highlight = %q, want %q", got, want)
	}
}

func TestHighlightAcronymExpansion(t *testing.T) {
	acronyms := map[string][]string{
		"ucla": {"University of California"},
	}
	r := rec("a", "Education", "University of California, Los Angeles", acronyms)

	got := Highlight(r, "UCLA")
	want := "<mark>University of California</mark>, Los Angeles"
	if got != want {
		t.Errorf("Highlight = %q, want %q", got, want)
	}
}

func TestHighlightEmptyQuery(t *testing.T) {
	r := rec("a", "Tools", "plain text", nil)

	if got := Highlight(r, "  "); got != "plain text" {
		t.Errorf("Highlight = %q, want unmodified text", got)
	}
}
