package giphy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		baseURL string
		apiKey  string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			baseURL: "https://api.giphy.com/v1",
			apiKey:  "test-key",
		},
		{
			name:    "missing URL",
			baseURL: "",
			apiKey:  "test-key",
			wantErr: true,
			errMsg:  "URL is required",
		},
		{
			name:    "missing API key",
			baseURL: "https://api.giphy.com/v1",
			apiKey:  "",
			wantErr: true,
			errMsg:  "API key is required",
		},
		{
			name:    "relative URL",
			baseURL: "api.giphy.com",
			apiKey:  "test-key",
			wantErr: true,
			errMsg:  "invalid giphy URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, tt.apiKey, logger)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.baseURL, client.BaseURL())
			assert.Equal(t, tt.apiKey, client.apiKey)
		})
	}
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	client, err := NewClient("https://api.giphy.com/v1/", "k", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "https://api.giphy.com/v1", client.BaseURL())
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient(DefaultBaseURL, "test-key", logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient(DefaultBaseURL, "test-key", logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.httpClient)
	})

	t.Run("with rate limit", func(t *testing.T) {
		client, err := NewClient(DefaultBaseURL, "test-key", logger, WithRateLimit(rate.Limit(2), 0))
		require.NoError(t, err)
		require.NotNil(t, client.limiter)
		assert.Equal(t, 1, client.limiter.Burst())
	})

	t.Run("zero rate limit disables limiter", func(t *testing.T) {
		client, err := NewClient(DefaultBaseURL, "test-key", logger, WithRateLimit(0, 5))
		require.NoError(t, err)
		assert.Nil(t, client.limiter)
	})
}

func TestGet(t *testing.T) {
	t.Run("builds URL with api key and params", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/v1/gifs/search", r.URL.Path)
			assert.Equal(t, "secret", r.URL.Query().Get("api_key"))
			assert.Equal(t, "cats", r.URL.Query().Get("q"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			assert.Equal(t, "gifbox-test", r.Header.Get("User-Agent"))
			w.Write([]byte(`{"data":[{"id":"1","slug":"cat-1"}],"meta":{"status":200}}`))
		}))
		defer server.Close()

		client, err := NewClient(server.URL+"/v1", "secret", zerolog.Nop(), WithUserAgent("gifbox-test"))
		require.NoError(t, err)

		var res GifsResponse
		err = client.Get(context.Background(), "/gifs/search", map[string][]string{"q": {"cats"}}, &res)
		require.NoError(t, err)
		require.Len(t, res.Data, 1)
		assert.Equal(t, "cat-1", res.Data[0].Slug)
		assert.Equal(t, 200, res.Meta.Status)
	})

	t.Run("non success status returns APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"message":"API rate limit exceeded"}`))
		}))
		defer server.Close()

		client, err := NewClient(server.URL, "k", zerolog.Nop())
		require.NoError(t, err)

		var res GifsResponse
		err = client.Get(context.Background(), "/gifs/trending", nil, &res)
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
		assert.Equal(t, "API rate limit exceeded", apiErr.Message)
		assert.True(t, apiErr.IsRateLimited())
		assert.Equal(t, http.StatusTooManyRequests, StatusCode(err))
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data": [`))
		}))
		defer server.Close()

		client, err := NewClient(server.URL, "k", zerolog.Nop())
		require.NoError(t, err)

		var res GifsResponse
		err = client.Get(context.Background(), "/gifs/trending", nil, &res)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("empty body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client, err := NewClient(server.URL, "k", zerolog.Nop())
		require.NoError(t, err)

		var res GifsResponse
		err = client.Get(context.Background(), "/gifs/trending", nil, &res)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		client, err := NewClient(url, "k", zerolog.Nop())
		require.NoError(t, err)

		var res GifsResponse
		err = client.Get(context.Background(), "/gifs/trending", nil, &res)
		assert.ErrorIs(t, err, ErrRequestFailed)
		assert.Equal(t, 0, StatusCode(err))
	})

	t.Run("cancelled context aborts the request", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		client, err := NewClient(server.URL, "k", zerolog.Nop())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		var res GifsResponse
		err = client.Get(ctx, "/gifs/trending", nil, &res)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "good" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"meta":{"status":401,"msg":"No API key found in request."}}`))
			return
		}
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"data":[],"meta":{"status":200}}`))
	}))
	defer server.Close()

	good, err := NewClient(server.URL, "good", zerolog.Nop())
	require.NoError(t, err)
	assert.NoError(t, good.Ping(context.Background()))

	bad, err := NewClient(server.URL, "bad", zerolog.Nop())
	require.NoError(t, err)
	err = bad.Ping(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsUnauthorized())
	assert.Equal(t, "No API key found in request.", apiErr.Message)
}

func TestAPIError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &APIError{
			StatusCode: 404,
			Message:    "Not Found",
		}
		assert.Equal(t, "giphy API error: status 404: Not Found", err.Error())
	})

	t.Run("IsNotFound", func(t *testing.T) {
		err := &APIError{StatusCode: 404}
		assert.True(t, err.IsNotFound())

		err.StatusCode = 500
		assert.False(t, err.IsNotFound())
	})

	t.Run("IsUnauthorized", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{401, true},
			{403, true},
			{404, false},
			{429, false},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			assert.Equal(t, tt.expected, err.IsUnauthorized())
		}
	})
}
