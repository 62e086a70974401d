package argus

import (
	"context"
	"fmt"
	"net/http"
)

// CreateRepository creates a repository within a project.
func (c *Client) CreateRepository(ctx context.Context, project, name string) (*Repository, error) {
	if err := validateName(name); err != nil {
		return nil, fmt.Errorf("invalid repository name: %w", err)
	}

	var repo Repository
	if err := c.do(ctx, http.MethodPost, reposPath(project), createRequest{Name: name}, &repo); err != nil {
		return nil, fmt.Errorf("failed to create repository %s/%s: %w", project, name, err)
	}

	c.logger.Debug("created repository", "project", project, "repo", repo.Name)
	return &repo, nil
}

// ListRepositories retrieves the list of the repositories of a project.
func (c *Client) ListRepositories(ctx context.Context, project string) ([]Repository, error) {
	var repos []Repository
	if err := c.do(ctx, http.MethodGet, reposPath(project), nil, &repos); err != nil {
		return nil, fmt.Errorf("failed to list repositories of %s: %w", project, err)
	}
	return repos, nil
}

// ListRemovedRepositories retrieves the names of the removed repositories
// of a project, which can be unremoved or purged.
func (c *Client) ListRemovedRepositories(ctx context.Context, project string) ([]string, error) {
	var removed []removedName
	if err := c.do(ctx, http.MethodGet, removedReposPath(project), nil, &removed); err != nil {
		return nil, fmt.Errorf("failed to list removed repositories of %s: %w", project, err)
	}

	names := make([]string, 0, len(removed))
	for _, r := range removed {
		names = append(names, r.Name)
	}
	return names, nil
}

// RemoveRepository removes a repository. A removed repository can be
// unremoved.
func (c *Client) RemoveRepository(ctx context.Context, project, name string) error {
	if err := c.do(ctx, http.MethodDelete, repoPath(project, name), nil, nil); err != nil {
		return fmt.Errorf("failed to remove repository %s/%s: %w", project, name, err)
	}

	c.logger.Debug("removed repository", "project", project, "repo", name)
	return nil
}

// PurgeRepository permanently deletes a repository that was removed
// before.
func (c *Client) PurgeRepository(ctx context.Context, project, name string) error {
	if err := c.do(ctx, http.MethodDelete, removedRepoPath(project, name), nil, nil); err != nil {
		return fmt.Errorf("failed to purge repository %s/%s: %w", project, name, err)
	}

	c.logger.Debug("purged repository", "project", project, "repo", name)
	return nil
}

// UnremoveRepository restores a removed repository.
func (c *Client) UnremoveRepository(ctx context.Context, project, name string) (*Repository, error) {
	var repo Repository
	if err := c.do(ctx, http.MethodPatch, repoPath(project, name), statusActivePatch, &repo); err != nil {
		return nil, fmt.Errorf("failed to unremove repository %s/%s: %w", project, name, err)
	}

	c.logger.Debug("unremoved repository", "project", project, "repo", repo.Name)
	return &repo, nil
}
