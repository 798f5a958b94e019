// Package schedule models the coursework calendar: courses with weekly
// sessions, and the overlap layout that places a day's sessions into columns
// so overlapping blocks render side by side.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// Weekdays are the only valid session days, in display order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Course is one catalog entry. Code is unique within a quarter.
type Course struct {
	Code     string    `json:"code"`
	Title    string    `json:"title"`
	Schedule []Session `json:"schedule"`
}

// Session is one weekly meeting of a course. Times are wall-clock "HH:MM"
// 24-hour strings with no date or timezone component.
type Session struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Type      string `json:"type"`
}

// DayItem is one session of one course on a single day, with the minute
// offsets derived once and cached alongside. Course is borrowed from the
// caller's slice, not copied.
type DayItem struct {
	Course       *Course
	Session      Session
	StartMinutes int
	EndMinutes   int

	// Idx disambiguates when one course meets more than once on the same
	// day (e.g. lecture and lab).
	Idx int
}

// ParseMinutes converts an "HH:MM" 24-hour time into minutes past midnight.
func ParseMinutes(hhmm string) (int, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("parsing time %q: want HH:MM", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("parsing time %q: %w", hhmm, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("parsing time %q: %w", hhmm, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("parsing time %q: out of range", hhmm)
	}
	return h*60 + m, nil
}

// ValidDay reports whether day is one of the five weekday names.
func ValidDay(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// DayItems flattens the sessions of the given courses that meet on day into
// layout inputs, deriving minute offsets. Items keep the courses' order, and
// within a course the schedule order. Malformed time strings are a data
// quality bug upstream of the layout; DayItems surfaces them as an error
// naming the offending course.
func DayItems(courses []Course, day string) ([]DayItem, error) {
	var items []DayItem
	for ci := range courses {
		course := &courses[ci]
		idx := 0
		for _, session := range course.Schedule {
			if session.Day != day {
				continue
			}
			start, err := ParseMinutes(session.StartTime)
			if err != nil {
				return nil, fmt.Errorf("course %s: %w", course.Code, err)
			}
			end, err := ParseMinutes(session.EndTime)
			if err != nil {
				return nil, fmt.Errorf("course %s: %w", course.Code, err)
			}
			items = append(items, DayItem{
				Course:       course,
				Session:      session,
				StartMinutes: start,
				EndMinutes:   end,
				Idx:          idx,
			})
			idx++
		}
	}
	return items, nil
}
