package api

import (
	"time"

	"github.com/ashutoshsundresh/folio/pkg/schedule"
)

type SearchResultResponse struct {
	ID    string `json:"id"`
	Path  string `json:"path"`
	Title string `json:"title"`
	// Text is the record excerpt with match highlighting, escaped and
	// ready for insertion as markup.
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type SearchResponse struct {
	Query   string                 `json:"query"`
	Results []SearchResultResponse `json:"results"`
	Count   int                    `json:"count"`
}

type YearsResponse struct {
	Years []int `json:"years"`
	Count int   `json:"count"`
}

type QuartersResponse struct {
	Year     int      `json:"year"`
	Quarters []string `json:"quarters"`
	Count    int      `json:"count"`
}

type CoursesResponse struct {
	Year    int               `json:"year"`
	Quarter string            `json:"quarter"`
	Courses []schedule.Course `json:"courses"`
	Count   int               `json:"count"`
}

type ScheduleItemResponse struct {
	Code  string `json:"code"`
	Title string `json:"title"`
	Idx   int    `json:"idx"`

	schedule.Session
	StartMinutes int `json:"startMinutes"`
	EndMinutes   int `json:"endMinutes"`

	schedule.ColumnInfo
}

type ScheduleResponse struct {
	Year    int                    `json:"year"`
	Quarter string                 `json:"quarter"`
	Day     string                 `json:"day"`
	Items   []ScheduleItemResponse `json:"items"`
	Count   int                    `json:"count"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
