package contrib

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIntensity(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{-3, 0},
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{4, 2},
		{7, 4},
		{8, 4},
		{9, 4},
		{100, 4},
	}

	for _, tt := range tests {
		if got := Intensity(tt.count); got != tt.want {
			t.Errorf("Intensity(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestCalendar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Variables struct {
				Login string `json:"login"`
				From  string `json:"from"`
				To    string `json:"to"`
			} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.Variables.Login != "octocat" {
			t.Errorf("login = %q, want octocat", req.Variables.Login)
		}
		if req.Variables.From != "2025-01-01T00:00:00Z" {
			t.Errorf("from = %q", req.Variables.From)
		}

		fmt.Fprint(w, `{"data":{"user":{"contributionsCollection":{"contributionCalendar":{
			"totalContributions": 12,
			"weeks": [
				{"contributionDays": [
					{"date": "2025-01-01", "contributionCount": 0},
					{"date": "2025-01-02", "contributionCount": 3}
				]},
				{"contributionDays": [
					{"date": "2025-01-08", "contributionCount": 9}
				]}
			]
		}}}}}`)
	}))
	defer srv.Close()

	c := NewClient("octocat", "")
	c.GraphQLURL = srv.URL

	cal, err := c.Calendar(context.Background(), 2025)
	if err != nil {
		t.Fatalf("Calendar failed: %v", err)
	}

	if cal.Year != 2025 {
		t.Errorf("year = %d", cal.Year)
	}
	if cal.Total != 12 {
		t.Errorf("total = %d, want 12", cal.Total)
	}
	if len(cal.Days) != 3 {
		t.Fatalf("got %d days, want 3 flattened across weeks", len(cal.Days))
	}

	want := []DayCount{
		{Date: "2025-01-01", Count: 0, Intensity: 0},
		{Date: "2025-01-02", Count: 3, Intensity: 2},
		{Date: "2025-01-08", Count: 9, Intensity: 4},
	}
	for i, day := range want {
		if cal.Days[i] != day {
			t.Errorf("day %d = %+v, want %+v", i, cal.Days[i], day)
		}
	}
}

func TestCalendarGraphQLError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors":[{"message":"Could not resolve to a User"}]}`)
	}))
	defer srv.Close()

	c := NewClient("nobody", "")
	c.GraphQLURL = srv.URL

	if _, err := c.Calendar(context.Background(), 2025); err == nil {
		t.Error("expected an error from the GraphQL errors payload")
	}
}

func TestCalendarHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient("octocat", "")
	c.GraphQLURL = srv.URL

	if _, err := c.Calendar(context.Background(), 2025); err == nil {
		t.Error("expected an error for a non-200 response")
	}
}
