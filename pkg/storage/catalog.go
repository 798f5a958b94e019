// Package storage persists the course catalog in SQLite. The catalog is
// imported wholesale from the courses document and queried per year/quarter
// by the schedule API; session times are validated on import, upstream of the
// overlap layout.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/ashutoshsundresh/folio/pkg/log"
	"github.com/ashutoshsundresh/folio/pkg/schedule"
)

// QuarterCourses is one unit of the courses document: the courses of one
// quarter of one academic year.
type QuarterCourses struct {
	Year    int               `json:"year"`
	Quarter string            `json:"quarter"`
	Courses []schedule.Course `json:"courses"`
}

type Catalog struct {
	db     *sql.DB
	logger *log.Logger
}

func Open(dbPath string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}

	catalog := &Catalog{
		db:     db,
		logger: log.ForService("storage"),
	}
	if err := catalog.initSchema(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) initSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS courses (
			year INTEGER NOT NULL,
			quarter TEXT NOT NULL,
			code TEXT NOT NULL,
			title TEXT NOT NULL,
			PRIMARY KEY (year, quarter, code)
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			year INTEGER NOT NULL,
			quarter TEXT NOT NULL,
			code TEXT NOT NULL,
			ord INTEGER NOT NULL,
			day TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			session_type TEXT NOT NULL,
			PRIMARY KEY (year, quarter, code, ord)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_day ON sessions(year, quarter, day)`,
	}
	for _, stmt := range statements {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

// ImportFile replaces the catalog with the contents of a courses document.
func (c *Catalog) ImportFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading courses file: %w", err)
	}

	var quarters []QuarterCourses
	if err := json.Unmarshal(data, &quarters); err != nil {
		return fmt.Errorf("unmarshaling courses file: %w", err)
	}

	return c.Import(quarters)
}

// Import validates and stores the given quarters, replacing everything
// previously in the catalog. A malformed day or time anywhere rejects the
// whole import; the layout downstream assumes well-formed sessions.
func (c *Catalog) Import(quarters []QuarterCourses) error {
	for _, q := range quarters {
		for _, course := range q.Courses {
			for _, s := range course.Schedule {
				if !schedule.ValidDay(s.Day) {
					return fmt.Errorf("course %s: invalid day %q", course.Code, s.Day)
				}
				start, err := schedule.ParseMinutes(s.StartTime)
				if err != nil {
					return fmt.Errorf("course %s: %w", course.Code, err)
				}
				end, err := schedule.ParseMinutes(s.EndTime)
				if err != nil {
					return fmt.Errorf("course %s: %w", course.Code, err)
				}
				if end <= start {
					return fmt.Errorf("course %s: session %s-%s ends before it starts", course.Code, s.StartTime, s.EndTime)
				}
			}
		}
	}

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil {
				c.logger.Warnf("failed to rollback transaction: %v", err)
			}
		}
	}()

	for _, stmt := range []string{"DELETE FROM sessions", "DELETE FROM courses"} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("clearing catalog: %w", err)
		}
	}

	courseStmt, err := tx.Prepare(`INSERT INTO courses (year, quarter, code, title) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing course insert: %w", err)
	}
	defer func() {
		_ = courseStmt.Close()
	}()

	sessionStmt, err := tx.Prepare(`INSERT INTO sessions (year, quarter, code, ord, day, start_time, end_time, session_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing session insert: %w", err)
	}
	defer func() {
		_ = sessionStmt.Close()
	}()

	total := 0
	for _, q := range quarters {
		for _, course := range q.Courses {
			if _, err := courseStmt.Exec(q.Year, q.Quarter, course.Code, course.Title); err != nil {
				return fmt.Errorf("inserting course %s: %w", course.Code, err)
			}
			for ord, s := range course.Schedule {
				if _, err := sessionStmt.Exec(q.Year, q.Quarter, course.Code, ord, s.Day, s.StartTime, s.EndTime, s.Type); err != nil {
					return fmt.Errorf("inserting session for %s: %w", course.Code, err)
				}
			}
			total++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	committed = true

	c.logger.Infof("imported %d courses across %d quarters", total, len(quarters))
	return nil
}

// Years lists the academic years present in the catalog, ascending.
func (c *Catalog) Years() ([]int, error) {
	rows, err := c.db.Query(`SELECT DISTINCT year FROM courses ORDER BY year`)
	if err != nil {
		return nil, fmt.Errorf("querying years: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("scanning year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// Quarters lists the quarters recorded for a year, in insertion order.
func (c *Catalog) Quarters(year int) ([]string, error) {
	rows, err := c.db.Query(`SELECT quarter FROM courses WHERE year = ? GROUP BY quarter ORDER BY MIN(rowid)`, year)
	if err != nil {
		return nil, fmt.Errorf("querying quarters: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var quarters []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("scanning quarter: %w", err)
		}
		quarters = append(quarters, q)
	}
	return quarters, rows.Err()
}

// Courses returns the courses of one quarter with their full schedules,
// ordered by code.
func (c *Catalog) Courses(year int, quarter string) ([]schedule.Course, error) {
	rows, err := c.db.Query(`SELECT code, title FROM courses WHERE year = ? AND quarter = ? ORDER BY code`, year, quarter)
	if err != nil {
		return nil, fmt.Errorf("querying courses: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var courses []schedule.Course
	byCode := make(map[string]int)
	for rows.Next() {
		var course schedule.Course
		if err := rows.Scan(&course.Code, &course.Title); err != nil {
			return nil, fmt.Errorf("scanning course: %w", err)
		}
		byCode[course.Code] = len(courses)
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sessionRows, err := c.db.Query(`SELECT code, day, start_time, end_time, session_type
		FROM sessions WHERE year = ? AND quarter = ? ORDER BY code, ord`, year, quarter)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer func() {
		_ = sessionRows.Close()
	}()

	for sessionRows.Next() {
		var code string
		var s schedule.Session
		if err := sessionRows.Scan(&code, &s.Day, &s.StartTime, &s.EndTime, &s.Type); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		if i, ok := byCode[code]; ok {
			courses[i].Schedule = append(courses[i].Schedule, s)
		}
	}
	return courses, sessionRows.Err()
}
