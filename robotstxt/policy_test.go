package robotstxt_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/circulars"
	"github.com/fwojciec/circulars/robotstxt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func robotsServer(t *testing.T, status int, body string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		if hits != nil {
			hits.Add(1)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPolicy_Allowed(t *testing.T) {
	t.Parallel()

	const rules = "User-agent: circulars\nDisallow: /private/\n\nUser-agent: *\nDisallow: /\n"

	t.Run("applies rules for the product token", func(t *testing.T) {
		t.Parallel()

		srv := robotsServer(t, http.StatusOK, rules, nil)
		p := robotstxt.NewPolicy("circulars/1.0 (+https://example.org)")

		allowed, err := p.Allowed(context.Background(), srv.URL+"/scripts/Notification.aspx?Id=1")
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = p.Allowed(context.Background(), srv.URL+"/private/page.aspx")
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("falls back to wildcard group", func(t *testing.T) {
		t.Parallel()

		srv := robotsServer(t, http.StatusOK, rules, nil)
		p := robotstxt.NewPolicy("otherbot/2.0")

		allowed, err := p.Allowed(context.Background(), srv.URL+"/scripts/x.aspx")

		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("caches rules per host", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		srv := robotsServer(t, http.StatusOK, rules, &hits)
		p := robotstxt.NewPolicy("circulars/1.0")

		for range 3 {
			_, err := p.Allowed(context.Background(), srv.URL+"/scripts/x.aspx")
			require.NoError(t, err)
		}

		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("missing robots.txt allows everything", func(t *testing.T) {
		t.Parallel()

		srv := robotsServer(t, http.StatusNotFound, "", nil)
		p := robotstxt.NewPolicy("circulars/1.0")

		allowed, err := p.Allowed(context.Background(), srv.URL+"/private/x")

		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("server error denies everything", func(t *testing.T) {
		t.Parallel()

		srv := robotsServer(t, http.StatusInternalServerError, "", nil)
		p := robotstxt.NewPolicy("circulars/1.0")

		allowed, err := p.Allowed(context.Background(), srv.URL+"/scripts/x.aspx")

		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("unreachable host allows everything", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		p := robotstxt.NewPolicy("circulars/1.0")

		allowed, err := p.Allowed(context.Background(), srv.URL+"/scripts/x.aspx")

		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("rejects URL without host", func(t *testing.T) {
		t.Parallel()

		p := robotstxt.NewPolicy("circulars/1.0")

		_, err := p.Allowed(context.Background(), "/scripts/x.aspx")

		assert.Equal(t, circulars.EINVALID, circulars.ErrorCode(err))
	})

	t.Run("returns context error when cancelled", func(t *testing.T) {
		t.Parallel()

		srv := robotsServer(t, http.StatusOK, rules, nil)
		p := robotstxt.NewPolicy("circulars/1.0")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := p.Allowed(ctx, srv.URL+"/scripts/x.aspx")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestAgent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		userAgent string
		want      string
	}{
		{"circulars/1.0 (+https://example.org)", "circulars"},
		{"Mozilla/5.0 (X11; Linux x86_64)", "Mozilla"},
		{"bare", "bare"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.userAgent, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, robotstxt.Agent(tt.userAgent))
		})
	}
}
