// Package content models the structured portfolio document: the six section
// arrays rendered by the desktop interface and indexed by search.
package content

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Document is the whole content file. Section key names follow the document
// format used by the site.
type Document struct {
	Projects     []Project       `json:"projects"`
	Education    []Education     `json:"educationData"`
	Experience   []Experience    `json:"experienceData"`
	Awards       []AwardCategory `json:"awardsData"`
	Publications []Publication   `json:"publications"`
	Activities   []Activity      `json:"activitiesData"`
}

type Project struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tech        []string `json:"tech,omitempty"`
	Link        string   `json:"link,omitempty"`

	// Acronyms maps a lowercase abbreviation to its expansions, e.g.
	// "sat" -> ["boolean satisfiability"]. Searching the key finds and
	// boosts this entry.
	Acronyms map[string][]string `json:"acronyms,omitempty"`
}

type Education struct {
	Institution  string   `json:"institution"`
	Degree       string   `json:"degree"`
	Period       string   `json:"period"`
	School       string   `json:"school,omitempty"`
	Location     string   `json:"location,omitempty"`
	Coursework   []string `json:"coursework,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
	Subjects     []string `json:"subjects,omitempty"`
	Grade        string   `json:"grade,omitempty"`

	Acronyms map[string][]string `json:"acronyms,omitempty"`
}

type Experience struct {
	Company    string   `json:"company"`
	Role       string   `json:"role"`
	Period     string   `json:"period"`
	Location   string   `json:"location,omitempty"`
	Highlights []string `json:"highlights,omitempty"`

	Acronyms map[string][]string `json:"acronyms,omitempty"`
}

type AwardCategory struct {
	Category string  `json:"category"`
	Awards   []Award `json:"awards"`
}

type Award struct {
	Title       string `json:"title"`
	Year        string `json:"year,omitempty"`
	Description string `json:"description,omitempty"`
}

type Publication struct {
	Title   string   `json:"title"`
	Venue   string   `json:"venue,omitempty"`
	Year    string   `json:"year,omitempty"`
	Authors []string `json:"authors,omitempty"`
	Link    string   `json:"link,omitempty"`
}

type Activity struct {
	Name        string `json:"name"`
	Role        string `json:"role,omitempty"`
	Description string `json:"description,omitempty"`
}

// Load reads and parses a content document. An empty document is valid.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling content file: %w", err)
	}
	return &doc, nil
}

// Store is a concurrency-safe holder for the current document, so the serve
// loop can swap in a reloaded file while handlers keep reading.
type Store struct {
	mu  sync.RWMutex
	doc *Document
}

func NewStore(doc *Document) *Store {
	if doc == nil {
		doc = &Document{}
	}
	return &Store{doc: doc}
}

// Document returns the current document.
func (s *Store) Document() *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// Replace swaps in a new document.
func (s *Store) Replace(doc *Document) {
	if doc == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
}
