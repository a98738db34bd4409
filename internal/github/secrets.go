package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v57/github"
)

// GetSecretsPublicKey fetches the repository's public key for secret
// encryption. Returns the key id and the base64-encoded key.
func (c *Client) GetSecretsPublicKey(ctx context.Context, owner, repo string) (string, string, error) {
	slog.Debug("GitHub API: Getting secrets public key", "owner", owner, "repo", repo)
	key, _, err := c.client.Actions.GetRepoPublicKey(ctx, owner, repo)
	if err != nil {
		return "", "", fmt.Errorf("failed to get secrets public key for %s/%s: %w", owner, repo, err)
	}

	return key.GetKeyID(), key.GetKey(), nil
}

// ListSecrets lists the repository's Actions secrets (metadata only;
// GitHub never returns values).
func (c *Client) ListSecrets(ctx context.Context, owner, repo string) ([]Secret, error) {
	opts := &github.ListOptions{
		PerPage: 100,
	}

	slog.Debug("GitHub API: Listing secrets", "owner", owner, "repo", repo)
	secrets, _, err := c.client.Actions.ListRepoSecrets(ctx, owner, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list secrets for %s/%s: %w", owner, repo, err)
	}

	var allSecrets []Secret
	for _, s := range secrets.Secrets {
		allSecrets = append(allSecrets, Secret{
			Name:      s.Name,
			CreatedAt: s.CreatedAt.Time,
			UpdatedAt: s.UpdatedAt.Time,
		})
	}

	return allSecrets, nil
}

// PutSecret creates or updates a repository secret. The value must
// already be sealed-box encrypted with the repository's public key.
func (c *Client) PutSecret(ctx context.Context, owner, repo, name, keyID, encryptedValue string) error {
	secret := &github.EncryptedSecret{
		Name:           name,
		KeyID:          keyID,
		EncryptedValue: encryptedValue,
	}

	slog.Debug("GitHub API: Putting secret", "owner", owner, "repo", repo, "name", name)
	if _, err := c.client.Actions.CreateOrUpdateRepoSecret(ctx, owner, repo, secret); err != nil {
		return fmt.Errorf("failed to put secret %s: %w", name, err)
	}
	return nil
}

// DeleteSecret deletes a repository secret.
func (c *Client) DeleteSecret(ctx context.Context, owner, repo, name string) error {
	slog.Debug("GitHub API: Deleting secret", "owner", owner, "repo", repo, "name", name)
	if _, err := c.client.Actions.DeleteRepoSecret(ctx, owner, repo, name); err != nil {
		return fmt.Errorf("failed to delete secret %s: %w", name, err)
	}
	return nil
}
