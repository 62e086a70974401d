package argus

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const apiPrefix = "/api/v1"

// Query parameter names understood by the server.
const (
	paramRevision   = "revision"
	paramJSONPath   = "jsonpath"
	paramPath       = "path"
	paramTo         = "to"
	paramMaxCommits = "maxCommits"
)

// normalizePathPattern rewrites a path pattern into the anchored form the
// server expects: an empty pattern matches everything, a bare "**" prefix
// is anchored at the root, and a relative pattern matches at any depth.
func normalizePathPattern(pathPattern string) string {
	switch {
	case pathPattern == "":
		return "/**"
	case strings.HasPrefix(pathPattern, "**"):
		return "/" + pathPattern
	case !strings.HasPrefix(pathPattern, "/"):
		return "/**/" + pathPattern
	}
	return pathPattern
}

// appendParams attaches the encoded query parameters to base when any are
// set.
func appendParams(base string, params url.Values) string {
	if len(params) == 0 {
		return base
	}
	return base + "?" + params.Encode()
}

func projectsPath() string {
	return apiPrefix + "/projects"
}

func removedProjectsPath() string {
	return apiPrefix + "/projects?status=removed"
}

func projectPath(project string) string {
	return fmt.Sprintf("%s/projects/%s", apiPrefix, project)
}

func removedProjectPath(project string) string {
	return fmt.Sprintf("%s/projects/%s/removed", apiPrefix, project)
}

func reposPath(project string) string {
	return fmt.Sprintf("%s/projects/%s/repos", apiPrefix, project)
}

func removedReposPath(project string) string {
	return fmt.Sprintf("%s/projects/%s/repos?status=removed", apiPrefix, project)
}

func repoPath(project, repo string) string {
	return fmt.Sprintf("%s/projects/%s/repos/%s", apiPrefix, project, repo)
}

func removedRepoPath(project, repo string) string {
	return fmt.Sprintf("%s/projects/%s/repos/%s/removed", apiPrefix, project, repo)
}

func listContentsPath(project, repo string, revision Revision, pathPattern string) string {
	base := fmt.Sprintf("%s/projects/%s/repos/%s/list%s",
		apiPrefix, project, repo, normalizePathPattern(pathPattern))

	params := url.Values{}
	if revision.Specified() {
		params.Set(paramRevision, revision.String())
	}
	return appendParams(base, params)
}

func contentsPath(project, repo string, revision Revision, pathPattern string) string {
	base := fmt.Sprintf("%s/projects/%s/repos/%s/contents%s",
		apiPrefix, project, repo, normalizePathPattern(pathPattern))

	params := url.Values{}
	if revision.Specified() {
		params.Set(paramRevision, revision.String())
	}
	return appendParams(base, params)
}

func contentPath(project, repo string, revision Revision, query *Query) string {
	base := fmt.Sprintf("%s/projects/%s/repos/%s/contents%s",
		apiPrefix, project, repo, query.path)

	params := url.Values{}
	if revision.Specified() {
		params.Set(paramRevision, revision.String())
	}
	query.appendParams(params)
	return appendParams(base, params)
}

// commitsPath renders the history endpoint. An unspecified from revision
// leaves the path segment empty so the server picks its default range.
func commitsPath(project, repo string, from, to Revision, path string, maxCommits int) string {
	fromSegment := ""
	if from.Specified() {
		fromSegment = from.String()
	}
	base := fmt.Sprintf("%s/projects/%s/repos/%s/commits/%s",
		apiPrefix, project, repo, fromSegment)

	params := url.Values{}
	if path != "" {
		params.Set(paramPath, path)
	}
	if to.Specified() {
		params.Set(paramTo, to.String())
	}
	if maxCommits > 0 {
		params.Set(paramMaxCommits, strconv.Itoa(maxCommits))
	}
	return appendParams(base, params)
}

func pushPath(project, repo string, baseRevision Revision) string {
	base := fmt.Sprintf("%s/projects/%s/repos/%s/contents", apiPrefix, project, repo)

	params := url.Values{}
	if baseRevision.Specified() {
		params.Set(paramRevision, baseRevision.String())
	}
	return appendParams(base, params)
}

func contentWatchPath(project, repo string, query *Query) string {
	base := fmt.Sprintf("%s/projects/%s/repos/%s/contents%s",
		apiPrefix, project, repo, query.path)

	params := url.Values{}
	query.appendParams(params)
	return appendParams(base, params)
}

func repoWatchPath(project, repo, pathPattern string) string {
	return fmt.Sprintf("%s/projects/%s/repos/%s/contents%s",
		apiPrefix, project, repo, normalizePathPattern(pathPattern))
}
