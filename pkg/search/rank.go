package search

import (
	"sort"
	"strings"
)

// MaxResults caps how many matches a ranking pass returns.
const MaxResults = 20

// courseTitlePrefix marks coursework records, which rank below everything
// else that matched.
const courseTitlePrefix = "course — "

// Bucket orders matches for display. Whole-word and acronym matches come
// first, then literal prefix matches, then every other substring match.
type Bucket int

const (
	BucketWord Bucket = iota
	BucketPrefix
	BucketOther
)

// Match pairs a record with its score and display bucket.
type Match struct {
	Record Record
	Score  int
	Bucket Bucket
}

// Rank scores all records against query, partitions the survivors into
// buckets, sorts each bucket by score descending and returns the first
// MaxResults matches. An empty query returns nil.
func Rank(records []Record, query string) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matches []Match
	for _, r := range records {
		score, ok := scoreRecord(r, q)
		if !ok {
			continue
		}
		matches = append(matches, Match{
			Record: r,
			Score:  score,
			Bucket: bucketFor(r, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Bucket != matches[j].Bucket {
			return matches[i].Bucket < matches[j].Bucket
		}
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > MaxResults {
		matches = matches[:MaxResults]
	}
	return matches
}

// scoreRecord computes the match score for a pre-lowercased query. The second
// return value is false when the record does not match at all: no substring
// in text or title and no acronym key.
func scoreRecord(r Record, q string) (int, bool) {
	titleIdx := strings.Index(r.TitleLower, q)
	textIdx := strings.Index(r.TextLower, q)
	_, acronym := r.Acronyms[q]

	if titleIdx < 0 && textIdx < 0 && !acronym {
		return 0, false
	}

	score := 0
	if titleIdx >= 0 {
		score += 800 - titleIdx
		if titleIdx == 0 {
			score += 200
		}
	}
	if textIdx >= 0 {
		score += 600 - textIdx
		if textIdx == 0 {
			score += 150
		}
	}
	if acronym {
		score += 750
	}

	// Coursework stays findable but never crowds out real sections.
	if strings.HasPrefix(r.TitleLower, courseTitlePrefix) {
		score -= 2000
	}

	return score, true
}

func bucketFor(r Record, q string) Bucket {
	if _, ok := r.Acronyms[q]; ok {
		return BucketWord
	}
	if containsWord(r.TitleLower, q) || containsWord(r.TextLower, q) {
		return BucketWord
	}
	if strings.HasPrefix(r.TitleLower, q) || strings.HasPrefix(r.TextLower, q) {
		return BucketPrefix
	}
	return BucketOther
}

// containsWord reports whether q occurs in s on word boundaries. Boundaries
// are checked bytewise against [A-Za-z0-9_], which also gives queries ending
// in symbols ("c++") a sane whole-word semantics.
func containsWord(s, q string) bool {
	if q == "" {
		return false
	}
	for from := 0; from <= len(s)-len(q); {
		i := strings.Index(s[from:], q)
		if i < 0 {
			return false
		}
		i += from
		if boundary(s, i-1) && boundary(s, i+len(q)) {
			return true
		}
		from = i + 1
	}
	return false
}

// boundary reports whether position i (one byte before or after a candidate
// occurrence) is outside s or holds a non-word byte.
func boundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	return !isWordByte(s[i])
}

func isWordByte(b byte) bool {
	return b == '_' ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}
