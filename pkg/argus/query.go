package argus

import (
	"fmt"
	"net/url"
	"strings"
)

// queryType selects how the server renders file content for a query.
type queryType int

const (
	// queryIdentity serves the content in its natural type.
	queryIdentity queryType = iota

	// queryIdentityText serves the content as text.
	queryIdentityText

	// queryIdentityJSON serves the content as JSON.
	queryIdentityJSON

	// queryJSONPath applies JSON path expressions to a JSON file before
	// serving it.
	queryJSONPath
)

// Query addresses a single file in a repository, optionally transformed by
// the server before it is returned.
type Query struct {
	path        string
	queryType   queryType
	expressions []string
}

// normalizeFilePath anchors a file path at the repository root.
func normalizeFilePath(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

// NewQuery returns a query that retrieves the file at path as it is.
func NewQuery(path string) (*Query, error) {
	if path == "" {
		return nil, fmt.Errorf("query path cannot be empty")
	}
	return &Query{
		path:      normalizeFilePath(path),
		queryType: queryIdentity,
	}, nil
}

// NewTextQuery returns a query that retrieves the textual content of the
// file at path.
func NewTextQuery(path string) (*Query, error) {
	if path == "" {
		return nil, fmt.Errorf("query path cannot be empty")
	}
	return &Query{
		path:      normalizeFilePath(path),
		queryType: queryIdentityText,
	}, nil
}

// NewJSONQuery returns a query that retrieves the JSON content of the file
// at path.
func NewJSONQuery(path string) (*Query, error) {
	if path == "" {
		return nil, fmt.Errorf("query path cannot be empty")
	}
	return &Query{
		path:      normalizeFilePath(path),
		queryType: queryIdentityJSON,
	}, nil
}

// NewJSONPathQuery returns a query that applies a series of JSON path
// expressions to the JSON file at path and retrieves the result. The path
// must refer to a JSON file.
func NewJSONPathQuery(path string, expressions ...string) (*Query, error) {
	if !strings.HasSuffix(strings.ToLower(path), "json") {
		return nil, fmt.Errorf("JSON path queries require a JSON file, got %q", path)
	}
	return &Query{
		path:        normalizeFilePath(path),
		queryType:   queryJSONPath,
		expressions: expressions,
	}, nil
}

// Path returns the normalized file path this query addresses.
func (q *Query) Path() string {
	return q.path
}

// appendParams adds the query's server-side parameters to params.
func (q *Query) appendParams(params url.Values) {
	if q.queryType != queryJSONPath {
		return
	}
	for _, expr := range q.expressions {
		params.Add(paramJSONPath, expr)
	}
}
