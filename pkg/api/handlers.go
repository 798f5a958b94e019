package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ashutoshsundresh/folio/pkg/schedule"
	"github.com/ashutoshsundresh/folio/pkg/search"
	"github.com/ashutoshsundresh/folio/pkg/version"
)

func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "Missing query parameter", "Query parameter 'q' is required")
		return
	}

	records := s.index.Get(r.Context())
	matches := search.Rank(records, query)

	results := make([]SearchResultResponse, len(matches))
	for i, m := range matches {
		results[i] = SearchResultResponse{
			ID:    m.Record.ID,
			Path:  m.Record.Path,
			Title: m.Record.Title,
			Text:  search.Highlight(m.Record, query),
			Score: m.Score,
		}
	}

	response := SearchResponse{
		Query:   query,
		Results: results,
		Count:   len(results),
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleContent(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Document())
}

func (s *Server) HandleYears(w http.ResponseWriter, r *http.Request) {
	years, err := s.catalog.Years()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to list years", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, YearsResponse{Years: years, Count: len(years)})
}

func (s *Server) HandleQuarters(w http.ResponseWriter, r *http.Request) {
	yearStr := r.URL.Query().Get("year")
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid year", fmt.Sprintf("Year %q is not a number", yearStr))
		return
	}

	quarters, err := s.catalog.Quarters(year)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to list quarters", err.Error())
		return
	}

	response := QuartersResponse{
		Year:     year,
		Quarters: quarters,
		Count:    len(quarters),
	}

	s.writeJSON(w, http.StatusOK, response)
}

// parseQuarterParams validates the year/quarter pair shared by the courses
// and schedule endpoints.
func parseQuarterParams(r *http.Request) (int, string, error) {
	yearStr := r.URL.Query().Get("year")
	quarter := r.URL.Query().Get("quarter")
	if yearStr == "" || quarter == "" {
		return 0, "", fmt.Errorf("parameters 'year' and 'quarter' are required")
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return 0, "", fmt.Errorf("invalid year %q", yearStr)
	}
	return year, quarter, nil
}

func (s *Server) HandleCourses(w http.ResponseWriter, r *http.Request) {
	year, quarter, err := parseQuarterParams(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid parameters", err.Error())
		return
	}

	courses, err := s.catalog.Courses(year, quarter)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to list courses", err.Error())
		return
	}

	response := CoursesResponse{
		Year:    year,
		Quarter: quarter,
		Courses: courses,
		Count:   len(courses),
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	year, quarter, err := parseQuarterParams(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid parameters", err.Error())
		return
	}

	day := r.URL.Query().Get("day")
	if !schedule.ValidDay(day) {
		s.writeError(w, http.StatusBadRequest, "Invalid day", fmt.Sprintf("Day %q is not a weekday name", day))
		return
	}

	courses, err := s.catalog.Courses(year, quarter)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to list courses", err.Error())
		return
	}

	items, err := schedule.DayItems(courses, day)
	if err != nil {
		// Times are validated at import, so this is a catalog bug.
		s.writeError(w, http.StatusInternalServerError, "Malformed catalog", err.Error())
		return
	}
	columns := schedule.Layout(items)

	itemResponses := make([]ScheduleItemResponse, len(items))
	for i, item := range items {
		itemResponses[i] = ScheduleItemResponse{
			Code:         item.Course.Code,
			Title:        item.Course.Title,
			Idx:          item.Idx,
			Session:      item.Session,
			StartMinutes: item.StartMinutes,
			EndMinutes:   item.EndMinutes,
			ColumnInfo:   columns[i],
		}
	}

	response := ScheduleResponse{
		Year:    year,
		Quarter: quarter,
		Day:     day,
		Items:   itemResponses,
		Count:   len(itemResponses),
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleContributions(w http.ResponseWriter, r *http.Request) {
	if s.github == nil {
		s.writeError(w, http.StatusServiceUnavailable, "GitHub not configured", "Set github.user and github.token in the configuration")
		return
	}

	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "Invalid year", fmt.Sprintf("Year %q is not a number", yearStr))
			return
		}
		calendar, err := s.github.Calendar(r.Context(), year)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, "Failed to fetch contributions", err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, calendar)
		return
	}

	years, err := s.github.AllYears(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch contributions", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, years)
}

func (s *Server) HandleRepos(w http.ResponseWriter, r *http.Request) {
	if s.github == nil {
		s.writeError(w, http.StatusServiceUnavailable, "GitHub not configured", "Set github.user and github.token in the configuration")
		return
	}

	repos, err := s.github.Repos(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch repositories", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, repos)
}

func (s *Server) HandleNowPlaying(w http.ResponseWriter, r *http.Request) {
	if s.playing == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Now-playing not configured", "Set nowplaying.url in the configuration")
		return
	}

	track := s.playing.Current()
	if track == nil {
		s.writeJSON(w, http.StatusOK, map[string]bool{"playing": false})
		return
	}
	s.writeJSON(w, http.StatusOK, track)
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.APIVersion(),
	}

	s.writeJSON(w, http.StatusOK, health)
}
