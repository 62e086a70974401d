package argus

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient starts a mock server for handler and returns a client
// pointed at it. The server is torn down with the test.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL: server.URL,
		Token:   "test-token",
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(Config{
		BaseURL: "http://localhost:8080/",
	})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", client.config.BaseURL)
	assert.Equal(t, 30*time.Second, client.config.Timeout)
	require.NotNil(t, client.config.TLSVerify)
	assert.True(t, *client.config.TLSVerify)
	assert.NotNil(t, client.logger)
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:    "missing base URL",
			config:  Config{},
			wantErr: "BaseURL",
		},
		{
			name:    "unsupported scheme",
			config:  Config{BaseURL: "ftp://argus.example.com"},
			wantErr: "http or https",
		},
		{
			name:    "negative timeout",
			config:  Config{BaseURL: "http://localhost:8080", Timeout: -time.Second},
			wantErr: "Timeout",
		},
		{
			name:   "valid http",
			config: Config{BaseURL: "http://localhost:8080"},
		},
		{
			name:   "valid https",
			config: Config{BaseURL: "https://argus.example.com", Token: "tok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.config)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClient_AuthHeader(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	}))

	_, err := client.ListProjects(context.Background())
	require.NoError(t, err)
}

func TestClient_AnonymousAccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No token configured, so no Authorization header either.
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.ListProjects(context.Background())
	require.NoError(t, err)
}

func TestClient_APIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"exception":"com.example.ProjectExistsException","message":"project foo already exists"}`)
	}))

	_, err := client.CreateProject(context.Background(), "foo")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "com.example.ProjectExistsException", apiErr.Exception)
	assert.Contains(t, apiErr.Message, "already exists")
}

func TestClient_APIErrorPlainBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "Service Unavailable\n")
	}))

	_, err := client.ListProjects(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "Service Unavailable", apiErr.Message)
	assert.Empty(t, apiErr.Exception)
}

func TestClient_DecodeError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{broken`)
	}))

	_, err := client.ListProjects(context.Background())
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestClient_RequestTimeout(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	client.config.Timeout = 200 * time.Millisecond

	_, err := client.ListProjects(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAPIError_Error(t *testing.T) {
	withMessage := &APIError{StatusCode: 404, Message: "repository not found"}
	assert.Equal(t, "API error (status 404): repository not found", withMessage.Error())

	withoutMessage := &APIError{StatusCode: 500}
	assert.Equal(t, "API error (status 500)", withoutMessage.Error())
}

func TestDecodeError_Unwrap(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &DecodeError{Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to decode response")
}
