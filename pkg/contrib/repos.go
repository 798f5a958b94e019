package contrib

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v73/github"
)

// Repo is the subset of repository metadata the projects rail renders.
type Repo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	Stars       int    `json:"stars"`
	URL         string `json:"url"`
}

// Repos lists the user's public repositories, most recently pushed first.
func (c *Client) Repos(ctx context.Context) ([]Repo, error) {
	opts := &gh.RepositoryListByUserOptions{
		Type:        "owner",
		Sort:        "pushed",
		ListOptions: gh.ListOptions{PerPage: 30},
	}

	repos, _, err := c.rest.Repositories.ListByUser(ctx, c.user, opts)
	if err != nil {
		return nil, fmt.Errorf("listing repositories for %s: %w", c.user, err)
	}

	result := make([]Repo, 0, len(repos))
	for _, r := range repos {
		if r.GetFork() || r.GetPrivate() {
			continue
		}
		result = append(result, Repo{
			Name:        r.GetName(),
			Description: r.GetDescription(),
			Language:    r.GetLanguage(),
			Stars:       r.GetStargazersCount(),
			URL:         r.GetHTMLURL(),
		})
	}

	c.logger.Debugf("listed %d public repositories", len(result))
	return result, nil
}
