package github

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/go-github/v57/github"
)

const workflowsDir = ".github/workflows"

// GetFileContent reads a file from the repository's default branch and
// returns its decoded content and blob SHA.
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path string) (string, string, error) {
	slog.Debug("GitHub API: Getting file content", "owner", owner, "repo", repo, "path", path)
	fileContent, _, _, err := c.client.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s from %s/%s: %w", path, owner, repo, err)
	}
	if fileContent == nil {
		return "", "", fmt.Errorf("%s in %s/%s is a directory, not a file", path, owner, repo)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return "", "", fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return content, fileContent.GetSHA(), nil
}

// PutFileContent creates or updates a file on the repository's default
// branch. Pass the current blob SHA when updating an existing file, or
// an empty string when creating one.
func (c *Client) PutFileContent(ctx context.Context, owner, repo, path, message, content, sha string) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: []byte(content),
	}
	if sha != "" {
		opts.SHA = github.String(sha)
	}

	slog.Debug("GitHub API: Writing file content", "owner", owner, "repo", repo, "path", path)
	if _, _, err := c.client.Repositories.UpdateFile(ctx, owner, repo, path, opts); err != nil {
		return fmt.Errorf("failed to write %s to %s/%s: %w", path, owner, repo, err)
	}
	return nil
}

// ListWorkflowFiles lists the files under .github/workflows. A missing
// directory reads as an empty list, not an error.
func (c *Client) ListWorkflowFiles(ctx context.Context, owner, repo string) ([]WorkflowFile, error) {
	slog.Debug("GitHub API: Listing workflow files", "owner", owner, "repo", repo)
	_, dirContent, resp, err := c.client.Repositories.GetContents(ctx, owner, repo, workflowsDir, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == 404 {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list workflow files for %s/%s: %w", owner, repo, err)
	}

	var files []WorkflowFile
	for _, entry := range dirContent {
		name := entry.GetName()
		if !strings.HasSuffix(name, ".yml") && !strings.HasSuffix(name, ".yaml") {
			continue
		}
		files = append(files, WorkflowFile{
			Name: name,
			Path: entry.GetPath(),
			SHA:  entry.GetSHA(),
		})
	}

	return files, nil
}
