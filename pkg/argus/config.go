package argus

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
)

// Config contains configuration for a Client.
type Config struct {
	// BaseURL is the base URL of the Argus server.
	// Example: "https://argus.example.com"
	BaseURL string

	// Token is the API token for authentication (Bearer token). Leave
	// empty for servers that accept anonymous access; no Authorization
	// header is sent then.
	Token string

	// Timeout bounds a single administrative or content API call. Watch
	// polls manage their own per-cycle deadlines.
	// Default: 30 seconds
	Timeout time.Duration

	// TLSVerify controls TLS certificate verification.
	// Set to false only for development/testing with self-signed certs.
	TLSVerify *bool

	// Logger receives client logs.
	// Default: a no-op logger
	Logger hclog.Logger
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, validation.By(checkHTTPURL)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

// checkHTTPURL verifies a value is an absolute http or https URL.
func checkHTTPURL(value any) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("must be a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https scheme, got: %q", u.Scheme)
	}
	return nil
}

// newHTTPClient creates the HTTP client used for all requests. The client
// itself carries no timeout: watch polls outlive any fixed value, so
// deadlines are applied per call through contexts.
func (c *Config) newHTTPClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &http.Client{
		Transport: transport,
	}
}
