package argus

import (
	"context"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-multierror"
)

// ListFiles retrieves the metadata of the files at the given revision
// matched by the path pattern. Content is not transferred; use GetFiles
// for that.
//
// A path pattern is a variant of glob:
//   - "/**" - find all files recursively
//   - "*.json" - find all JSON files recursively
//   - "/foo/*.json" - find all JSON files under the directory /foo
//   - "/*/foo.txt" - find all files named foo.txt at the second depth level
//   - "*.json,/bar/*.txt" - use comma to specify more than one pattern.
//     A file will be matched if any pattern matches.
func (c *Client) ListFiles(ctx context.Context, project, repo string, revision Revision, pathPattern string) ([]ListEntry, error) {
	var entries []ListEntry
	if err := c.do(ctx, http.MethodGet, listContentsPath(project, repo, revision, pathPattern), nil, &entries); err != nil {
		return nil, fmt.Errorf("failed to list files in %s/%s: %w", project, repo, err)
	}
	return entries, nil
}

// GetFile queries a file at the given revision with the given query.
func (c *Client) GetFile(ctx context.Context, project, repo string, revision Revision, query *Query) (*Entry, error) {
	if query == nil {
		return nil, fmt.Errorf("query is required")
	}

	var entry Entry
	if err := c.do(ctx, http.MethodGet, contentPath(project, repo, revision, query), nil, &entry); err != nil {
		return nil, fmt.Errorf("failed to get file %s from %s/%s: %w", query.path, project, repo, err)
	}
	return &entry, nil
}

// GetFiles retrieves the files at the given revision matched by the path
// pattern, content included. See ListFiles for the pattern syntax.
func (c *Client) GetFiles(ctx context.Context, project, repo string, revision Revision, pathPattern string) ([]Entry, error) {
	var entries []Entry
	if err := c.do(ctx, http.MethodGet, contentsPath(project, repo, revision, pathPattern), nil, &entries); err != nil {
		return nil, fmt.Errorf("failed to get files from %s/%s: %w", project, repo, err)
	}
	return entries, nil
}

// GetHistory retrieves the commits between two revisions that touched the
// given path. It returns metadata about the changes, not their content.
// A maxCommits of 0 leaves the limit to the server.
func (c *Client) GetHistory(ctx context.Context, project, repo string, from, to Revision, path string, maxCommits int) ([]Commit, error) {
	var commits []Commit
	if err := c.do(ctx, http.MethodGet, commitsPath(project, repo, from, to, path, maxCommits), nil, &commits); err != nil {
		return nil, fmt.Errorf("failed to get history of %s/%s: %w", project, repo, err)
	}
	return commits, nil
}

// pushRequest is the body of a push call.
type pushRequest struct {
	CommitMessage CommitMessage `json:"commitMessage"`
	Changes       []Change      `json:"changes"`
}

// Push commits the given changes on top of baseRevision. The push is
// rejected by the server if the repository moved past baseRevision in a
// conflicting way.
func (c *Client) Push(ctx context.Context, project, repo string, baseRevision Revision, message CommitMessage, changes []Change) (*PushResult, error) {
	if err := validatePush(message, changes); err != nil {
		return nil, err
	}

	body := pushRequest{
		CommitMessage: message,
		Changes:       changes,
	}

	var result PushResult
	if err := c.do(ctx, http.MethodPost, pushPath(project, repo, baseRevision), body, &result); err != nil {
		return nil, fmt.Errorf("failed to push to %s/%s: %w", project, repo, err)
	}

	c.logger.Debug("pushed changes",
		"project", project,
		"repo", repo,
		"changes", len(changes),
		"revision", result.Revision,
	)
	return &result, nil
}

// validatePush checks a change-set before it is sent, aggregating every
// problem so the caller sees all of them at once.
func validatePush(message CommitMessage, changes []Change) error {
	var result *multierror.Error

	if err := validation.Validate(message.Summary, validation.Required); err != nil {
		result = multierror.Append(result,
			fmt.Errorf("commit message summary: %w", err))
	}

	if len(changes) == 0 {
		result = multierror.Append(result,
			fmt.Errorf("no changes to push"))
	}

	for i, change := range changes {
		if change.Path == "" {
			result = multierror.Append(result,
				fmt.Errorf("change %d: path is required", i))
		}
		if change.Type == "" {
			result = multierror.Append(result,
				fmt.Errorf("change %d: type is required", i))
			continue
		}
		switch change.Type {
		case ChangeTypeUpsertJSON, ChangeTypeUpsertText, ChangeTypeRename,
			ChangeTypeApplyJSONPatch, ChangeTypeApplyTextPatch:
			if len(change.Content) == 0 {
				result = multierror.Append(result,
					fmt.Errorf("change %d: content is required for %s", i, change.Type))
			}
		}
	}

	return result.ErrorOrNil()
}
