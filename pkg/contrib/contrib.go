// Package contrib is the GitHub collaborator boundary: the contributions
// calendar proxy, which forwards one GraphQL query and reshapes the response
// into per-year day counts with derived heat intensities, and the public
// repository rail backing the projects display.
package contrib

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	gh "github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/ashutoshsundresh/folio/pkg/log"
)

const defaultGraphQLURL = "https://api.github.com/graphql"

type Client struct {
	user   string
	http   *http.Client
	rest   *gh.Client
	logger *log.Logger

	// GraphQLURL is the contributions endpoint. Overridable for tests.
	GraphQLURL string
}

func NewClient(user, token string) *Client {
	httpClient := &http.Client{Timeout: 20 * time.Second}
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	return &Client{
		user:       user,
		http:       httpClient,
		rest:       gh.NewClient(httpClient),
		logger:     log.ForService("contrib"),
		GraphQLURL: defaultGraphQLURL,
	}
}

// DayCount is one calendar day of the contributions graph. Intensity is the
// 0-4 heat bucket used for rendering.
type DayCount struct {
	Date      string `json:"date"`
	Count     int    `json:"count"`
	Intensity int    `json:"intensity"`
}

// YearContributions groups one calendar year of days.
type YearContributions struct {
	Year  int        `json:"year"`
	Total int        `json:"total"`
	Days  []DayCount `json:"days"`
}

// Intensity buckets a day count into 0-4: ceil(count/2), capped.
func Intensity(count int) int {
	if count <= 0 {
		return 0
	}
	bucket := (count + 1) / 2
	if bucket > 4 {
		return 4
	}
	return bucket
}

const calendarQuery = `query($login: String!, $from: DateTime!, $to: DateTime!) {
  user(login: $login) {
    contributionsCollection(from: $from, to: $to) {
      contributionCalendar {
        totalContributions
        weeks { contributionDays { date contributionCount } }
      }
    }
  }
}`

// Calendar fetches one calendar year of contributions.
func (c *Client) Calendar(ctx context.Context, year int) (*YearContributions, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	body, err := json.Marshal(map[string]any{
		"query": calendarQuery,
		"variables": map[string]any{
			"login": c.user,
			"from":  from.Format(time.RFC3339),
			"to":    to.Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.GraphQLURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying contributions: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("querying contributions: status %d", resp.StatusCode)
	}

	var payload struct {
		Data struct {
			User struct {
				ContributionsCollection struct {
					ContributionCalendar struct {
						TotalContributions int `json:"totalContributions"`
						Weeks              []struct {
							ContributionDays []struct {
								Date              string `json:"date"`
								ContributionCount int    `json:"contributionCount"`
							} `json:"contributionDays"`
						} `json:"weeks"`
					} `json:"contributionCalendar"`
				} `json:"contributionsCollection"`
			} `json:"user"`
		} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding contributions response: %w", err)
	}
	if len(payload.Errors) > 0 {
		return nil, fmt.Errorf("contributions query failed: %s", payload.Errors[0].Message)
	}

	calendar := payload.Data.User.ContributionsCollection.ContributionCalendar
	result := &YearContributions{
		Year:  year,
		Total: calendar.TotalContributions,
	}
	for _, week := range calendar.Weeks {
		for _, day := range week.ContributionDays {
			result.Days = append(result.Days, DayCount{
				Date:      day.Date,
				Count:     day.ContributionCount,
				Intensity: Intensity(day.ContributionCount),
			})
		}
	}
	return result, nil
}

// AllYears fetches every calendar year from account creation to now, most
// recent first.
func (c *Client) AllYears(ctx context.Context) ([]YearContributions, error) {
	user, _, err := c.rest.Users.Get(ctx, c.user)
	if err != nil {
		return nil, fmt.Errorf("fetching user %s: %w", c.user, err)
	}
	firstYear := user.GetCreatedAt().Year()

	var years []YearContributions
	for year := time.Now().UTC().Year(); year >= firstYear; year-- {
		cal, err := c.Calendar(ctx, year)
		if err != nil {
			return nil, fmt.Errorf("fetching %d: %w", year, err)
		}
		years = append(years, *cal)
	}
	return years, nil
}
