// Package auth is the seam between the application and whichever
// sign-in flow produces a bearer token: the contract is "a token and a
// profile, or an error".
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/friuns/vibehub/internal/account"
	"github.com/friuns/vibehub/internal/github"
)

// ErrRedirecting signals that the provider handed control to an
// external redirect flow; the caller should wait for it to complete
// rather than treat the sign-in as failed.
var ErrRedirecting = errors.New("sign-in redirect in progress")

// Identity is what a successful sign-in produces.
type Identity struct {
	Token   string
	Profile account.Profile
}

// Provider abstracts the sign-in flow.
type Provider interface {
	SignIn(ctx context.Context) (*Identity, error)
	SignOut(ctx context.Context) error
}

// TokenProvider signs in with a pre-issued personal access token by
// resolving the profile it belongs to.
type TokenProvider struct {
	Token string
}

// SignIn validates the token against the API and returns the identity
// it authenticates.
func (p *TokenProvider) SignIn(ctx context.Context) (*Identity, error) {
	if p.Token == "" {
		return nil, errors.New("no token provided")
	}

	client := github.NewClient(ctx, p.Token)
	user, err := client.GetUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token identity: %w", err)
	}

	return &Identity{
		Token: p.Token,
		Profile: account.Profile{
			Login:       user.Login,
			AvatarURL:   user.AvatarURL,
			DisplayName: user.Name,
		},
	}, nil
}

// SignOut is a no-op for personal tokens; revocation happens on the
// GitHub side.
func (p *TokenProvider) SignOut(context.Context) error {
	return nil
}
