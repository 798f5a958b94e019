package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/ashutoshsundresh/folio/pkg/search"
)

// maxDocumentText caps record excerpts built from the content document.
const maxDocumentText = 240

// experiencePath is the route of the desktop interface; tabs address its
// sections.
const experiencePath = "/experience"

// Source adapts a content Store into a search.Source. Each entry of each
// section becomes one record with a fixed field-to-text mapping; education
// coursework additionally yields one "Course — " record per course.
type Source struct {
	store *Store
}

func NewSource(store *Store) *Source {
	return &Source{store: store}
}

func (s *Source) Name() string {
	return "content"
}

func (s *Source) Records(ctx context.Context) ([]search.Record, error) {
	doc := s.store.Document()
	var records []search.Record

	add := func(section, title, text string, acronyms map[string][]string) {
		id := fmt.Sprintf("content:%s:%d", section, len(records))
		path := experiencePath + "?tab=" + section
		text = search.Truncate(search.Normalize(text), maxDocumentText)
		records = append(records, search.NewRecord(id, path, title, text, acronyms))
	}

	for _, p := range doc.Projects {
		add("projects", "Projects — "+p.Name,
			join(p.Description, strings.Join(p.Tech, " "), p.Link), p.Acronyms)
	}

	for _, e := range doc.Education {
		add("education", "Education — "+join(e.Institution, e.Degree),
			join(e.Period, e.School, e.Location,
				strings.Join(e.Coursework, " "),
				strings.Join(e.Achievements, " "),
				strings.Join(e.Subjects, " "),
				e.Grade),
			e.Acronyms)
		for _, course := range e.Coursework {
			add("education", "Course — "+course, course, nil)
		}
	}

	for _, x := range doc.Experience {
		add("experience", "Experience — "+join(x.Company, x.Role),
			join(x.Period, x.Location, strings.Join(x.Highlights, " ")), x.Acronyms)
	}

	for _, cat := range doc.Awards {
		for _, a := range cat.Awards {
			add("awards", "Awards — "+cat.Category,
				join(a.Title, a.Year, a.Description), nil)
		}
	}

	for _, p := range doc.Publications {
		add("publications", "Publications — "+p.Title,
			join(strings.Join(p.Authors, " "), p.Venue, p.Year, p.Link), nil)
	}

	for _, a := range doc.Activities {
		add("activities", "Activities — "+a.Name, join(a.Role, a.Description), nil)
	}

	return records, nil
}

// join concatenates the non-empty parts with single spaces.
func join(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
