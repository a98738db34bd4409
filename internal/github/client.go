// Package github wraps the GitHub REST API: one method per endpoint,
// uniform error wrapping, pagination handled inside each wrapper. All
// coordination (caching, fan-out, prefetch) lives above this package.
package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// Client wraps the GitHub API client.
type Client struct {
	client *github.Client
}

// NewClient creates a GitHub client authenticated with a bearer token.
func NewClient(ctx context.Context, token string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		client: github.NewClient(tc),
	}
}

// GetUser returns the profile of the authenticated user.
func (c *Client) GetUser(ctx context.Context) (*User, error) {
	slog.Debug("GitHub API: Getting authenticated user")
	user, _, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get authenticated user: %w", err)
	}

	return &User{
		Login:     user.GetLogin(),
		AvatarURL: user.GetAvatarURL(),
		Name:      user.GetName(),
	}, nil
}
