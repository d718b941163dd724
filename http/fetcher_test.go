package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/circulars"
	circhttp "github.com/fwojciec/circulars/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := circhttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
	})

	t.Run("decodes declared legacy charset", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			_, _ = w.Write([]byte("<p>Caf\xe9</p>"))
		}))
		defer server.Close()

		fetcher := circhttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<p>Café</p>", html)
	})

	t.Run("sends user agent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(r.UserAgent()))
		}))
		defer server.Close()

		fetcher := circhttp.NewFetcher(circhttp.WithUserAgent("test-agent/2"))
		defer fetcher.Close()

		body, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "test-agent/2", body)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		// Use a very short timeout that will expire before server responds
		fetcher := circhttp.NewFetcher(circhttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := circhttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("returns error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := circhttp.NewFetcher(circhttp.WithTimeout(100 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
	})

	t.Run("returns error for non-200 status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		fetcher := circhttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, "HTTP 404 for "+server.URL, circulars.ErrorMessage(err))
		assert.Equal(t, circulars.ENOTFOUND, circulars.ErrorCode(err))
	})

	t.Run("classifies status codes", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			status int
			code   string
		}{
			{http.StatusGone, circulars.ENOTFOUND},
			{http.StatusForbidden, circulars.EINVALID},
			{http.StatusTooManyRequests, circulars.EINTERNAL},
			{http.StatusServiceUnavailable, circulars.EINTERNAL},
		}
		for _, tt := range tests {
			t.Run(http.StatusText(tt.status), func(t *testing.T) {
				t.Parallel()

				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
				}))
				defer server.Close()

				_, err := circhttp.NewFetcher().Fetch(context.Background(), server.URL)

				require.Error(t, err)
				assert.Equal(t, tt.code, circulars.ErrorCode(err))
			})
		}
	})
}

func TestFetcher_Submit(t *testing.T) {
	t.Parallel()

	t.Run("posts form fields", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			require.NoError(t, r.ParseForm())
			_, _ = w.Write([]byte(r.PostForm.Get("hdnYear") + "/" + r.PostForm.Get("hdnMonth")))
		}))
		defer server.Close()

		fetcher := circhttp.NewFetcher()
		defer fetcher.Close()

		body, err := fetcher.Submit(context.Background(), server.URL, map[string]string{
			"hdnYear":  "2024",
			"hdnMonth": "3",
		})
		require.NoError(t, err)
		assert.Equal(t, "2024/3", body)
	})

	t.Run("replays session cookie from earlier fetch", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				http.SetCookie(w, &http.Cookie{Name: "ASP.NET_SessionId", Value: "s1", Path: "/"})
				_, _ = w.Write([]byte("form"))
				return
			}
			c, err := r.Cookie("ASP.NET_SessionId")
			if err != nil {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			_, _ = w.Write([]byte(c.Value))
		}))
		defer server.Close()

		fetcher := circhttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)

		body, err := fetcher.Submit(context.Background(), server.URL, map[string]string{"hdnYear": "2024"})
		require.NoError(t, err)
		assert.Equal(t, "s1", body)
	})

	t.Run("returns error for non-200 status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		fetcher := circhttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Submit(context.Background(), server.URL, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})
}

var (
	_ circulars.Fetcher       = (*circhttp.Fetcher)(nil)
	_ circulars.FormSubmitter = (*circhttp.Fetcher)(nil)
)
