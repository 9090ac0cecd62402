package app

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"exusiai.dev/folio-stats/internal/app/appcontext"
)

const (
	testAdminKey = "s3cret"

	upstreamPayload = `{"data": {
		"allQuestionsCount": [{"difficulty": "All", "count": 3300}],
		"matchedUser": {
			"username": "anujkarambalkar1504",
			"submitStats": {
				"acSubmissionNum": [{"difficulty": "All", "count": 180, "submissions": 42}],
				"totalSubmissionNum": [{"difficulty": "All", "count": 250, "submissions": 137}]
			},
			"profile": {"ranking": 254321}
		},
		"userContestRanking": null
	}}`
)

type upstream struct {
	calls atomic.Int32
	srv   *httptest.Server
}

func newUpstream(t *testing.T, h http.HandlerFunc) *upstream {
	t.Helper()
	u := &upstream{}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		h(w, r)
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func okUpstream(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(upstreamPayload))
}

func startup(t *testing.T, upstreamURL string) *fiber.App {
	t.Helper()

	t.Setenv("FOLIOSTATS_UPSTREAM_URL", upstreamURL)
	t.Setenv("FOLIOSTATS_LOG_FILE", "")
	t.Setenv("FOLIOSTATS_DEV_MODE", "true")
	t.Setenv("FOLIOSTATS_ADMIN_KEY", testAdminKey)
	t.Setenv("FOLIOSTATS_REDIS_URL", "")
	t.Setenv("FOLIOSTATS_WORKER_ENABLED", "false")

	var fiberApp *fiber.App
	fxApp := fxtest.New(t,
		append(Options(appcontext.Declare(appcontext.EnvServer)), fx.Populate(&fiberApp))...,
	)
	fxApp.RequireStart()
	t.Cleanup(fxApp.RequireStop)

	return fiberApp
}

func request(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestStatsEndpoint(t *testing.T) {
	up := newUpstream(t, okUpstream)
	app := startup(t, up.srv.URL)

	resp, first := request(t, app, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode, spew.Sdump(string(first)))
	assert.Equal(t, "public, s-maxage=3600, stale-while-revalidate=3600", resp.Header.Get("Cache-Control"))
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json"))
	assert.NotEmpty(t, resp.Header.Get("Last-Modified"))
	etag := resp.Header.Get("ETag")
	assert.True(t, strings.HasPrefix(etag, `W/"`), etag)

	assert.Equal(t, "anujkarambalkar1504", gjson.GetBytes(first, "username").String())
	assert.Equal(t, int64(180), gjson.GetBytes(first, "data.totalSolved").Int())
	assert.Equal(t, int64(3300), gjson.GetBytes(first, "data.totalQuestions").Int())
	assert.Equal(t, 30.66, gjson.GetBytes(first, "data.acceptanceRate").Float())
	assert.Equal(t, int64(254321), gjson.GetBytes(first, "data.ranking").Int())
	assert.False(t, gjson.GetBytes(first, "data.contestRating").Exists())
	assert.False(t, gjson.GetBytes(first, "data.easySolved").Exists())

	_, second := request(t, app, httptest.NewRequest(http.MethodGet, "/api/stats?username=anujkarambalkar1504", nil))
	assert.Equal(t, first, second)

	_, third := request(t, app, httptest.NewRequest(http.MethodGet, "/api/leetcode", nil))
	assert.Equal(t, first, third)
	assert.EqualValues(t, 1, up.calls.Load())

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("If-None-Match", etag)
	resp, body := request(t, app, req)
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
	assert.Empty(t, body)

	req = httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("If-Modified-Since", "Sat, 01 Jan 2000 00:00:00 GMT")
	resp, body = request(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "a copy older than the record is sent the record")
	assert.Equal(t, first, body)

	req = httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("If-Modified-Since", resp.Header.Get("Last-Modified"))
	resp, body = request(t, app, req)
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
	assert.Empty(t, body)

	req = httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("If-None-Match", "*")
	resp, _ = request(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, other := request(t, app, httptest.NewRequest(http.MethodGet, "/api/stats?username=john_doe", nil))
	assert.Equal(t, "john_doe", gjson.GetBytes(other, "username").String())
	assert.EqualValues(t, 2, up.calls.Load())
}

func TestStatsEndpointUpstreamFailure(t *testing.T) {
	up := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("service unavailable"))
	})
	app := startup(t, up.srv.URL)

	resp, body := request(t, app, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, resp.Header.Get("Cache-Control"), "s-maxage")
	assert.Equal(t, "Failed to fetch LeetCode data", gjson.GetBytes(body, "error").String())

	message := gjson.GetBytes(body, "message").String()
	assert.Contains(t, message, "503")
	assert.Contains(t, message, "service unavailable")

	request(t, app, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	assert.EqualValues(t, 2, up.calls.Load(), "failures are not cached")
}

func TestStatsEndpointInvalidUsername(t *testing.T) {
	up := newUpstream(t, okUpstream)
	app := startup(t, up.srv.URL)

	for _, username := range []string{"john%20doe", "..%2Fetc", strings.Repeat("a", 65)} {
		resp, body := request(t, app, httptest.NewRequest(http.MethodGet, "/api/stats?username="+username, nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, username)
		assert.Equal(t, "username", gjson.GetBytes(body, "violations.0.field").String())
	}
	assert.EqualValues(t, 0, up.calls.Load())
}

func TestMetaEndpoints(t *testing.T) {
	up := newUpstream(t, okUpstream)
	app := startup(t, up.srv.URL)

	for _, path := range []string{"/api", "/api/_/bininfo", "/api/_/health", "/metrics"} {
		resp, _ := request(t, app, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	resp, body := request(t, app, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.True(t, gjson.GetBytes(body, "error").Exists())
}

func TestAdminPurge(t *testing.T) {
	up := newUpstream(t, okUpstream)
	app := startup(t, up.srv.URL)

	request(t, app, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.EqualValues(t, 1, up.calls.Load())

	purge := func(auth string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/api/_/admin/purge", bytes.NewBufferString(`{"username": ""}`))
		req.Header.Set("Content-Type", "application/json")
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		resp, _ := request(t, app, req)
		return resp
	}

	assert.Equal(t, http.StatusUnauthorized, purge("").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, purge("Bearer wrong").StatusCode)
	assert.Equal(t, http.StatusOK, purge("Bearer "+testAdminKey).StatusCode)

	request(t, app, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	assert.EqualValues(t, 2, up.calls.Load())
}
