package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v57/github"
)

// ListRepositories fetches the authenticated user's repositories sorted
// by most recently updated first.
func (c *Client) ListRepositories(ctx context.Context) ([]Repository, error) {
	opts := &github.RepositoryListOptions{
		Sort:      "updated",
		Direction: "desc",
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	var allRepos []Repository
	for {
		slog.Debug("GitHub API: Listing repositories", "page", opts.Page)
		repos, resp, err := c.client.Repositories.List(ctx, "", opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories: %w", err)
		}

		for _, repo := range repos {
			allRepos = append(allRepos, Repository{
				Owner:       repo.GetOwner().GetLogin(),
				Name:        repo.GetName(),
				FullName:    repo.GetFullName(),
				Description: repo.GetDescription(),
				Private:     repo.GetPrivate(),
				UpdatedAt:   repo.GetUpdatedAt().Time,
				URL:         repo.GetHTMLURL(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

// CreateRepository creates a repository for the authenticated user.
func (c *Client) CreateRepository(ctx context.Context, name, description string, private bool) (*Repository, error) {
	newRepo := &github.Repository{
		Name:        github.String(name),
		Description: github.String(description),
		Private:     github.Bool(private),
	}

	slog.Debug("GitHub API: Creating repository", "name", name, "private", private)
	repo, _, err := c.client.Repositories.Create(ctx, "", newRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to create repository %s: %w", name, err)
	}

	return &Repository{
		Owner:       repo.GetOwner().GetLogin(),
		Name:        repo.GetName(),
		FullName:    repo.GetFullName(),
		Description: repo.GetDescription(),
		Private:     repo.GetPrivate(),
		UpdatedAt:   repo.GetUpdatedAt().Time,
		URL:         repo.GetHTMLURL(),
	}, nil
}

// DeleteRepository deletes a repository.
func (c *Client) DeleteRepository(ctx context.Context, owner, repo string) error {
	slog.Debug("GitHub API: Deleting repository", "owner", owner, "repo", repo)
	if _, err := c.client.Repositories.Delete(ctx, owner, repo); err != nil {
		return fmt.Errorf("failed to delete repository %s/%s: %w", owner, repo, err)
	}
	return nil
}
