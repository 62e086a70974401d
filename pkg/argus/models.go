package argus

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// Author identifies who created a project, repository or commit.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Project is a top-level namespace grouping repositories.
type Project struct {
	Name      string `json:"name"`
	Creator   Author `json:"creator,omitempty"`
	URL       string `json:"url,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// CreatedTime parses the CreatedAt timestamp. Server deployments differ in
// the timestamp format they emit, so the wire value stays a string and is
// parsed on demand.
func (p *Project) CreatedTime() (time.Time, error) {
	return dateparse.ParseAny(p.CreatedAt)
}

// Repository is a named version-controlled file tree within a project.
type Repository struct {
	Name         string   `json:"name"`
	Creator      Author   `json:"creator,omitempty"`
	HeadRevision Revision `json:"headRevision,omitempty"`
	URL          string   `json:"url,omitempty"`
	CreatedAt    string   `json:"createdAt,omitempty"`
}

// CreatedTime parses the CreatedAt timestamp.
func (r *Repository) CreatedTime() (time.Time, error) {
	return dateparse.ParseAny(r.CreatedAt)
}

// EntryType describes what kind of node an Entry or ListEntry is.
type EntryType string

const (
	// EntryTypeJSON is a UTF-8 encoded JSON file.
	EntryTypeJSON EntryType = "JSON"

	// EntryTypeText is a UTF-8 encoded text file.
	EntryTypeText EntryType = "TEXT"

	// EntryTypeDirectory is a directory.
	EntryTypeDirectory EntryType = "DIRECTORY"
)

// Entry is a file or a directory in a repository at a specific revision.
//
// The content of a JSON entry is the JSON document itself; the content of
// a text entry is a JSON string holding the file body. Directories carry
// no content.
type Entry struct {
	Path       string          `json:"path"`
	Type       EntryType       `json:"type"`
	Content    json.RawMessage `json:"content,omitempty"`
	Revision   Revision        `json:"revision,omitempty"`
	URL        string          `json:"url,omitempty"`
	ModifiedAt string          `json:"modifiedAt,omitempty"`
}

// TextContent returns the entry content as text. For text entries this is
// the file body; for JSON entries it is the serialized document.
func (e *Entry) TextContent() (string, error) {
	if len(e.Content) == 0 {
		return "", nil
	}
	if e.Type == EntryTypeText {
		var s string
		if err := json.Unmarshal(e.Content, &s); err != nil {
			return "", fmt.Errorf("failed to decode text content of %s: %w", e.Path, err)
		}
		return s, nil
	}
	return string(e.Content), nil
}

// JSONContent decodes the entry content into v.
func (e *Entry) JSONContent(v any) error {
	if len(e.Content) == 0 {
		return fmt.Errorf("entry %s has no content", e.Path)
	}
	if err := json.Unmarshal(e.Content, v); err != nil {
		return fmt.Errorf("failed to decode JSON content of %s: %w", e.Path, err)
	}
	return nil
}

// ModifiedTime parses the ModifiedAt timestamp.
func (e *Entry) ModifiedTime() (time.Time, error) {
	return dateparse.ParseAny(e.ModifiedAt)
}

// ListEntry is a directory listing item. Unlike Entry it never carries
// content.
type ListEntry struct {
	Path string    `json:"path"`
	Type EntryType `json:"type"`
}

// Markup identifies the markup language of a commit message detail.
type Markup string

const (
	MarkupPlaintext Markup = "PLAINTEXT"
	MarkupMarkdown  Markup = "MARKDOWN"
)

// CommitMessage describes a pushed change-set. Summary is required; Detail
// optionally elaborates in the given Markup.
type CommitMessage struct {
	Summary string `json:"summary"`
	Detail  string `json:"detail,omitempty"`
	Markup  Markup `json:"markup,omitempty"`
}

// Commit is one point in a repository's history.
type Commit struct {
	Revision      Revision      `json:"revision"`
	Author        Author        `json:"author,omitempty"`
	CommitMessage CommitMessage `json:"commitMessage"`
	PushedAt      string        `json:"pushedAt,omitempty"`
}

// PushedTime parses the PushedAt timestamp.
func (c *Commit) PushedTime() (time.Time, error) {
	return dateparse.ParseAny(c.PushedAt)
}

// PushResult reports the commit created by a successful push.
type PushResult struct {
	Revision Revision `json:"revision"`
	PushedAt string   `json:"pushedAt,omitempty"`
}

// PushedTime parses the PushedAt timestamp.
func (p *PushResult) PushedTime() (time.Time, error) {
	return dateparse.ParseAny(p.PushedAt)
}

// ChangeType describes how a single path is modified by a push.
type ChangeType string

const (
	// ChangeTypeUpsertJSON adds a JSON file or replaces an existing one.
	ChangeTypeUpsertJSON ChangeType = "UPSERT_JSON"

	// ChangeTypeUpsertText adds a text file or replaces an existing one.
	ChangeTypeUpsertText ChangeType = "UPSERT_TEXT"

	// ChangeTypeRemove removes an existing file.
	ChangeTypeRemove ChangeType = "REMOVE"

	// ChangeTypeRename renames an existing file to the path given as
	// content.
	ChangeTypeRename ChangeType = "RENAME"

	// ChangeTypeApplyJSONPatch applies an RFC 6902 JSON patch to a JSON
	// file.
	ChangeTypeApplyJSONPatch ChangeType = "APPLY_JSON_PATCH"

	// ChangeTypeApplyTextPatch applies a unified-format patch to a text
	// file.
	ChangeTypeApplyTextPatch ChangeType = "APPLY_TEXT_PATCH"
)

// Change is a single file modification within a push.
type Change struct {
	Path    string          `json:"path"`
	Type    ChangeType      `json:"type"`
	Content json.RawMessage `json:"content,omitempty"`
}

// NewUpsertJSON returns a change that adds the JSON file at path or
// replaces an existing one. The content may be any JSON-marshalable value.
func NewUpsertJSON(path string, content any) (Change, error) {
	raw, err := json.Marshal(content)
	if err != nil {
		return Change{}, fmt.Errorf("failed to marshal change content: %w", err)
	}
	return Change{Path: path, Type: ChangeTypeUpsertJSON, Content: raw}, nil
}

// NewUpsertText returns a change that adds the text file at path or
// replaces an existing one.
func NewUpsertText(path, content string) Change {
	raw, _ := json.Marshal(content)
	return Change{Path: path, Type: ChangeTypeUpsertText, Content: raw}
}

// NewRemove returns a change that removes the file at path.
func NewRemove(path string) Change {
	return Change{Path: path, Type: ChangeTypeRemove}
}

// NewRename returns a change that renames the file at path to newPath.
func NewRename(path, newPath string) Change {
	raw, _ := json.Marshal(newPath)
	return Change{Path: path, Type: ChangeTypeRename, Content: raw}
}

// NewApplyJSONPatch returns a change that applies an RFC 6902 JSON patch
// to the JSON file at path.
func NewApplyJSONPatch(path string, patch any) (Change, error) {
	raw, err := json.Marshal(patch)
	if err != nil {
		return Change{}, fmt.Errorf("failed to marshal change content: %w", err)
	}
	return Change{Path: path, Type: ChangeTypeApplyJSONPatch, Content: raw}, nil
}

// NewApplyTextPatch returns a change that applies a unified-format patch
// to the text file at path.
func NewApplyTextPatch(path, patch string) Change {
	raw, _ := json.Marshal(patch)
	return Change{Path: path, Type: ChangeTypeApplyTextPatch, Content: raw}
}

// WatchFileResult is produced by a file watcher when the watched file
// changes.
type WatchFileResult struct {
	Revision Revision `json:"revision"`
	Entry    Entry    `json:"entry"`
}

func (r *WatchFileResult) watchRevision() Revision { return r.Revision }

// WatchRepoResult is produced by a repository watcher when a commit
// touches the watched path pattern.
type WatchRepoResult struct {
	Revision Revision `json:"revision"`
}

func (r *WatchRepoResult) watchRevision() Revision { return r.Revision }
