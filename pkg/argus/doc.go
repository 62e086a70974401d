// Package argus is a typed client for the Argus configuration service REST API.
//
// # Overview
//
// Argus stores configuration as files in version-controlled repositories,
// grouped into projects. Every change to a repository is a commit with a
// monotonically increasing revision number. The client covers three areas:
//
//  1. Administration: creating, listing, removing, purging and unremoving
//     projects and repositories.
//  2. Content: listing files, fetching file content at a revision, reading
//     commit history and pushing change-sets.
//  3. Watching: long-poll subscriptions that produce a result whenever a
//     watched file or path pattern changes.
//
// # Watching
//
// A watcher is a pull-based stream. Each call to Next drives one or more
// long-poll cycles against the server until something changed:
//
//	watcher, err := client.WatchFile("gateway", "config", query, argus.WatchOptions{})
//	if err != nil {
//		return err
//	}
//	defer watcher.Close()
//
//	for {
//		result, err := watcher.Next(ctx)
//		if err != nil {
//			return err
//		}
//		apply(result.Entry)
//	}
//
// Polls that come back empty (HTTP 304, or an expired long poll) are
// invisible to the caller: Next keeps polling. Server errors and transport
// failures are retried with capped exponential backoff. Only errors that
// retrying cannot fix end the stream: a client-side rejection such as 404
// or 410, or a response body the client cannot decode. Such a terminal
// error is returned exactly once; afterwards Next returns ErrWatcherClosed.
// Closing the watcher, or cancelling the context passed to Next, never
// produces a spurious error.
//
// Revisions produced by one watcher strictly increase. A change observed
// through Next is never delivered twice.
//
// # Configuration Example
//
//	client, err := argus.NewClient(argus.Config{
//		BaseURL: "https://argus.example.com",
//		Token:   os.Getenv("ARGUS_TOKEN"),
//	})
//
// # API Endpoints
//
// The client talks to the v1 REST surface:
//
// Projects:
//   - GET    /api/v1/projects
//   - GET    /api/v1/projects?status=removed
//   - POST   /api/v1/projects
//   - DELETE /api/v1/projects/:project
//   - DELETE /api/v1/projects/:project/removed
//   - PATCH  /api/v1/projects/:project
//
// Repositories:
//   - GET    /api/v1/projects/:project/repos
//   - GET    /api/v1/projects/:project/repos?status=removed
//   - POST   /api/v1/projects/:project/repos
//   - DELETE /api/v1/projects/:project/repos/:repo
//   - DELETE /api/v1/projects/:project/repos/:repo/removed
//   - PATCH  /api/v1/projects/:project/repos/:repo
//
// Content:
//   - GET  /api/v1/projects/:project/repos/:repo/list:pattern
//   - GET  /api/v1/projects/:project/repos/:repo/contents:path
//   - GET  /api/v1/projects/:project/repos/:repo/commits/:from
//   - POST /api/v1/projects/:project/repos/:repo/contents
//
// Watching reuses the contents endpoint with an If-None-Match header
// carrying the last known revision and a Prefer: wait=N header asking the
// server to hold the poll open.
//
// # Security
//
//   - Bearer token authentication; no Authorization header is sent when no
//     token is configured
//   - TLS with certificate verification
//   - Configurable TLS verification for dev/test environments
package argus
