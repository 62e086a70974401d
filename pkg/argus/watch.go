package argus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// Watch protocol headers. If-None-Match carries the last revision the
// watcher knows; Prefer asks the server to hold the poll open.
const (
	headerIfNoneMatch = "If-None-Match"
	headerPrefer      = "Prefer"
)

// watchTimeoutMargin is added on top of the long-poll wait hint when
// bounding a single cycle, so a server that answers right at the wait
// boundary is not cut off mid-response. An expired deadline is the
// expected idle outcome of a cycle, not a fault.
const watchTimeoutMargin = time.Second

// WatchOptions controls a single watch stream. The zero value asks for
// changes after the current latest commit with the default polling and
// retry behavior.
type WatchOptions struct {
	// From is the revision the stream considers already seen; only
	// changes past it are produced.
	// Default: Head
	From Revision

	// Timeout is the long-poll wait hint sent to the server, which holds
	// each poll open for up to this long before answering "no change".
	// Default: 60 seconds
	Timeout time.Duration

	// RetryInitialDelay is the backoff delay after the first failure.
	// Default: 1 second
	RetryInitialDelay time.Duration

	// RetryMaxDelay caps the backoff delay growth.
	// Default: 60 seconds
	RetryMaxDelay time.Duration
}

// watchResult is satisfied by the typed results a watch stream produces.
type watchResult interface {
	watchRevision() Revision
}

// stream drives the long-poll loop shared by file and repository
// watchers. One goroutine consumes it through next; close may be called
// from any goroutine.
type stream struct {
	client    *Client
	logger    hclog.Logger
	path      string
	wait      time.Duration
	newResult func() watchResult
	backoff   *backoff.ExponentialBackOff

	// sleep performs the backoff delay; swapped out by tests.
	sleep func(ctx context.Context, d time.Duration) error

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	// lastKnown and err belong to the consuming goroutine.
	lastKnown Revision
	err       error
}

// newStream wires a watch stream for path with opts applied.
func (c *Client) newStream(path string, opts WatchOptions, newResult func() watchResult) *stream {
	if !opts.From.Specified() {
		opts.From = Head
	}
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.RetryInitialDelay == 0 {
		opts.RetryInitialDelay = 1 * time.Second
	}
	if opts.RetryMaxDelay == 0 {
		opts.RetryMaxDelay = 60 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &stream{
		client: c,
		logger: c.logger.Named("watch").With(
			"watch_id", uuid.New().String(),
			"path", path,
		),
		path:      path,
		wait:      opts.Timeout,
		newResult: newResult,
		backoff:   newWatchBackoff(opts.RetryInitialDelay, opts.RetryMaxDelay),
		sleep:     sleepContext,
		ctx:       ctx,
		cancel:    cancel,
		lastKnown: opts.From,
	}
}

// newWatchBackoff builds the retry policy for a watch stream: jittered
// exponential growth from initial up to max, reset after every successful
// poll. Growth by 2x with 0.2 jitter keeps successive delays strictly
// increasing until the cap.
func newWatchBackoff(initial, max time.Duration) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial
	b.MaxInterval = max
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.2
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// sleepContext waits for d unless the context ends first.
func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// mergeDone derives a context from a that is also cancelled when b ends.
func mergeDone(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(a)
	stop := context.AfterFunc(b, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// poll performs one long-poll cycle: a single request, no retries. It
// returns the decoded result on a change, nil on "no change", and an
// error for everything the classifier needs to look at.
func (s *stream) poll(ctx context.Context) (watchResult, error) {
	header := http.Header{}
	header.Set(headerIfNoneMatch, s.lastKnown.String())
	header.Set(headerPrefer, fmt.Sprintf("wait=%d", int(s.wait.Seconds())))

	resp, err := s.client.send(ctx, http.MethodGet, s.path, nil, header, s.wait+watchTimeoutMargin)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotModified {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp)
	}

	result := s.newResult()
	if err := json.Unmarshal(resp.Body, result); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return result, nil
}

// next blocks until a change past the last known revision is available,
// the stream ends, or ctx is cancelled.
func (s *stream) next(ctx context.Context) (watchResult, error) {
	if s.err != nil {
		return nil, ErrWatcherClosed
	}

	pollCtx, stop := mergeDone(ctx, s.ctx)
	defer stop()

	for {
		result, err := s.poll(pollCtx)
		if err != nil {
			// The poll context bundles caller cancellation and Close;
			// pull those apart before classifying the failure.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if s.ctx.Err() != nil {
				return nil, ErrWatcherClosed
			}

			switch classifyWatchError(err) {
			case retryNow:
				s.logger.Debug("long poll expired, polling again",
					"last_known", s.lastKnown)
				continue

			case retryBackoff:
				delay := s.backoff.NextBackOff()
				s.logger.Debug("watch poll failed, backing off",
					"delay", delay,
					"error", err,
				)
				if serr := s.sleep(pollCtx, delay); serr != nil {
					if ctx.Err() != nil {
						return nil, ctx.Err()
					}
					return nil, ErrWatcherClosed
				}
				continue

			default: // abortWatch
				s.logger.Error("watch aborted", "error", err)
				s.err = err
				s.cancel()
				return nil, err
			}
		}

		if result == nil {
			// Not modified. Invisible to the caller.
			s.backoff.Reset()
			continue
		}

		revision := result.watchRevision()
		if s.lastKnown > 0 && revision <= s.lastKnown {
			// The server reported a change the stream already produced.
			// Revisions must strictly advance, so treat it as no change.
			s.logger.Warn("ignoring non-advancing revision",
				"revision", revision,
				"last_known", s.lastKnown,
			)
			s.backoff.Reset()
			continue
		}

		s.lastKnown = revision
		s.backoff.Reset()
		s.logger.Debug("change produced", "revision", revision)
		return result, nil
	}
}

// close ends the stream. Safe to call from any goroutine, any number of
// times.
func (s *stream) close() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.logger.Debug("watch closed")
	})
}

// FileWatcher produces successive versions of a single watched file. See
// Client.WatchFile.
type FileWatcher struct {
	s *stream
}

// Next blocks until the watched file changes past the last produced
// revision and returns the new result. Polls that find no change are
// handled internally; the caller only ever sees updates.
//
// Next returns ctx.Err() when the caller's context ends, ErrWatcherClosed
// after Close, and a terminal error exactly once when the watch cannot
// continue; after that the watcher behaves as closed. Next must not be
// called from multiple goroutines at once.
func (w *FileWatcher) Next(ctx context.Context) (*WatchFileResult, error) {
	result, err := w.s.next(ctx)
	if err != nil {
		return nil, err
	}
	return result.(*WatchFileResult), nil
}

// Close ends the watch. A blocked Next returns promptly with
// ErrWatcherClosed. Close is idempotent and safe to call from any
// goroutine.
func (w *FileWatcher) Close() error {
	w.s.close()
	return nil
}

// RepoWatcher produces a result for every commit that touches a watched
// path pattern. See Client.WatchRepo.
type RepoWatcher struct {
	s *stream
}

// Next blocks until a commit past the last produced revision touches the
// watched pattern. The error contract matches FileWatcher.Next.
func (w *RepoWatcher) Next(ctx context.Context) (*WatchRepoResult, error) {
	result, err := w.s.next(ctx)
	if err != nil {
		return nil, err
	}
	return result.(*WatchRepoResult), nil
}

// Close ends the watch. A blocked Next returns promptly with
// ErrWatcherClosed. Close is idempotent and safe to call from any
// goroutine.
func (w *RepoWatcher) Close() error {
	w.s.close()
	return nil
}

// WatchFile begins watching the file addressed by query. The watcher owns
// no goroutine: it only advances while Next is being called. Watchers are
// independent and cheap; callers decide how many to keep open.
func (c *Client) WatchFile(project, repo string, query *Query, opts WatchOptions) (*FileWatcher, error) {
	if query == nil {
		return nil, fmt.Errorf("query is required")
	}

	s := c.newStream(contentWatchPath(project, repo, query), opts, func() watchResult {
		return &WatchFileResult{}
	})
	return &FileWatcher{s: s}, nil
}

// WatchRepo begins watching a repository for commits that contain changes
// to the files matched by pathPattern. An empty pattern watches the whole
// repository. See ListFiles for the pattern syntax.
func (c *Client) WatchRepo(project, repo, pathPattern string, opts WatchOptions) (*RepoWatcher, error) {
	s := c.newStream(repoWatchPath(project, repo, pathPattern), opts, func() watchResult {
		return &WatchRepoResult{}
	})
	return &RepoWatcher{s: s}, nil
}
