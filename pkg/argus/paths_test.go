package argus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePathPattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/**"},
		{"**", "/**"},
		{"**/*.json", "/**/*.json"},
		{"*.json", "/**/*.json"},
		{"foo/bar.txt", "/**/foo/bar.txt"},
		{"/foo/*.json", "/foo/*.json"},
		{"/a.txt", "/a.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizePathPattern(tt.in))
		})
	}
}

func TestPathBuilders(t *testing.T) {
	query, err := NewQuery("/a.json")
	require.NoError(t, err)

	jsonPathQuery, err := NewJSONPathQuery("/a.json", "$.a", "$.b")
	require.NoError(t, err)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			"projects",
			projectsPath(),
			"/api/v1/projects",
		},
		{
			"removed projects",
			removedProjectsPath(),
			"/api/v1/projects?status=removed",
		},
		{
			"project",
			projectPath("foo"),
			"/api/v1/projects/foo",
		},
		{
			"removed project",
			removedProjectPath("foo"),
			"/api/v1/projects/foo/removed",
		},
		{
			"repos",
			reposPath("foo"),
			"/api/v1/projects/foo/repos",
		},
		{
			"removed repos",
			removedReposPath("foo"),
			"/api/v1/projects/foo/repos?status=removed",
		},
		{
			"repo",
			repoPath("foo", "bar"),
			"/api/v1/projects/foo/repos/bar",
		},
		{
			"removed repo",
			removedRepoPath("foo", "bar"),
			"/api/v1/projects/foo/repos/bar/removed",
		},
		{
			"list everything",
			listContentsPath("foo", "bar", 0, ""),
			"/api/v1/projects/foo/repos/bar/list/**",
		},
		{
			"list at revision",
			listContentsPath("foo", "bar", 3, "*.json"),
			"/api/v1/projects/foo/repos/bar/list/**/*.json?revision=3",
		},
		{
			"contents at head",
			contentsPath("foo", "bar", Head, "/a/*.txt"),
			"/api/v1/projects/foo/repos/bar/contents/a/*.txt?revision=-1",
		},
		{
			"content",
			contentPath("foo", "bar", 2, query),
			"/api/v1/projects/foo/repos/bar/contents/a.json?revision=2",
		},
		{
			"content with jsonpath",
			contentPath("foo", "bar", 2, jsonPathQuery),
			"/api/v1/projects/foo/repos/bar/contents/a.json?jsonpath=%24.a&jsonpath=%24.b&revision=2",
		},
		{
			"content unspecified revision",
			contentPath("foo", "bar", 0, query),
			"/api/v1/projects/foo/repos/bar/contents/a.json",
		},
		{
			"commits",
			commitsPath("foo", "bar", 1, 2, "/a.json", 5),
			"/api/v1/projects/foo/repos/bar/commits/1?maxCommits=5&path=%2Fa.json&to=2",
		},
		{
			"commits with defaults",
			commitsPath("foo", "bar", 0, 0, "", 0),
			"/api/v1/projects/foo/repos/bar/commits/",
		},
		{
			"push",
			pushPath("foo", "bar", Head),
			"/api/v1/projects/foo/repos/bar/contents?revision=-1",
		},
		{
			"push unspecified base",
			pushPath("foo", "bar", 0),
			"/api/v1/projects/foo/repos/bar/contents",
		},
		{
			"watch content",
			contentWatchPath("foo", "bar", jsonPathQuery),
			"/api/v1/projects/foo/repos/bar/contents/a.json?jsonpath=%24.a&jsonpath=%24.b",
		},
		{
			"watch repo",
			repoWatchPath("foo", "bar", ""),
			"/api/v1/projects/foo/repos/bar/contents/**",
		},
		{
			"watch repo pattern",
			repoWatchPath("foo", "bar", "/config/*.json"),
			"/api/v1/projects/foo/repos/bar/contents/config/*.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
