package argus

import (
	"context"
	"fmt"
	"net/http"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// nameRegex is the server's naming rule for projects and repositories.
var nameRegex = regexp.MustCompile(`^[0-9A-Za-z](?:[-+_0-9A-Za-z.]*[0-9A-Za-z])?$`)

// validateName enforces the server's naming rules before spending a
// round-trip on a create call.
func validateName(name string) error {
	if err := validation.Validate(name,
		validation.Required,
		validation.Match(nameRegex),
	); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

// createRequest is the body of project and repository create calls.
type createRequest struct {
	Name string `json:"name"`
}

// jsonPatchOp is a single RFC 6902 JSON Patch operation.
type jsonPatchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value string `json:"value"`
}

// statusActivePatch flips a removed project or repository back to active.
var statusActivePatch = []jsonPatchOp{
	{Op: "replace", Path: "/status", Value: "active"},
}

// removedName carries the only field the removed listings expose.
type removedName struct {
	Name string `json:"name"`
}

// CreateProject creates a project. The server records the authenticated
// principal as its creator.
func (c *Client) CreateProject(ctx context.Context, name string) (*Project, error) {
	if err := validateName(name); err != nil {
		return nil, fmt.Errorf("invalid project name: %w", err)
	}

	var project Project
	if err := c.do(ctx, http.MethodPost, projectsPath(), createRequest{Name: name}, &project); err != nil {
		return nil, fmt.Errorf("failed to create project %s: %w", name, err)
	}

	c.logger.Debug("created project", "project", project.Name)
	return &project, nil
}

// ListProjects retrieves the list of the projects.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, projectsPath(), nil, &projects); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// ListRemovedProjects retrieves the names of the removed projects, which
// can be unremoved or purged.
func (c *Client) ListRemovedProjects(ctx context.Context) ([]string, error) {
	var removed []removedName
	if err := c.do(ctx, http.MethodGet, removedProjectsPath(), nil, &removed); err != nil {
		return nil, fmt.Errorf("failed to list removed projects: %w", err)
	}

	names := make([]string, 0, len(removed))
	for _, r := range removed {
		names = append(names, r.Name)
	}
	return names, nil
}

// RemoveProject removes a project. A removed project can be unremoved.
func (c *Client) RemoveProject(ctx context.Context, name string) error {
	if err := c.do(ctx, http.MethodDelete, projectPath(name), nil, nil); err != nil {
		return fmt.Errorf("failed to remove project %s: %w", name, err)
	}

	c.logger.Debug("removed project", "project", name)
	return nil
}

// PurgeProject permanently deletes a project that was removed before.
func (c *Client) PurgeProject(ctx context.Context, name string) error {
	if err := c.do(ctx, http.MethodDelete, removedProjectPath(name), nil, nil); err != nil {
		return fmt.Errorf("failed to purge project %s: %w", name, err)
	}

	c.logger.Debug("purged project", "project", name)
	return nil
}

// UnremoveProject restores a removed project.
func (c *Client) UnremoveProject(ctx context.Context, name string) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodPatch, projectPath(name), statusActivePatch, &project); err != nil {
		return nil, fmt.Errorf("failed to unremove project %s: %w", name, err)
	}

	c.logger.Debug("unremoved project", "project", project.Name)
	return &project, nil
}
