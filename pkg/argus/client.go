package argus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Client is a typed client for the Argus REST API. It is safe for
// concurrent use by multiple goroutines.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     hclog.Logger
}

// NewClient creates a new Client. Zero values in cfg get defaults applied;
// see Config for the individual fields.
func NewClient(cfg Config) (*Client, error) {
	// Apply defaults
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.TLSVerify == nil {
		tlsVerify := true
		cfg.TLSVerify = &tlsVerify
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}

	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		config:     cfg,
		httpClient: cfg.newHTTPClient(),
		logger:     cfg.Logger.Named("argus"),
	}, nil
}

// do executes one API round-trip: it marshals body, sends the request with
// the configured timeout applied, maps non-2xx statuses to *APIError and
// decodes the response into result when one is expected. Responses without
// a body, such as 204, leave result untouched.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	resp, err := c.send(ctx, method, path, body, nil, c.config.Timeout)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp)
		c.logger.Debug("request rejected by server",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
		)
		return apiErr
	}

	if result != nil && resp.StatusCode != http.StatusNoContent && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, result); err != nil {
			return &DecodeError{Err: err}
		}
	}

	return nil
}
