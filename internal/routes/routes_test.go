package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AnshRaj112/moments-backend/internal/config"
	"github.com/AnshRaj112/moments-backend/internal/handlers"
	"github.com/AnshRaj112/moments-backend/internal/metrics"
	"github.com/AnshRaj112/moments-backend/internal/models"
	"github.com/AnshRaj112/moments-backend/internal/store"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) *httptest.Server {
	t.Helper()
	cfg := config.Defaults()
	if mutate != nil {
		mutate(cfg)
	}
	m := metrics.New()
	s := store.New(store.WithLimits(cfg.MaxMoments, cfg.MaxReplies), store.WithObserver(m))
	m.RegisterFeed(s.Stats)

	srv := httptest.NewServer(NewRouter(cfg, handlers.New(s, nil, zap.NewNop()), m, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, srv.URL+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestFeedScenario(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := call(t, srv, http.MethodPost, "/api/moments", map[string]string{"text": "hello", "anonymousId": "u1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var moment models.Moment
	require.NoError(t, json.Unmarshal(body, &moment))
	assert.NotEmpty(t, moment.ID)
	assert.False(t, moment.CreatedAt.IsZero())
	assert.Equal(t, 0, moment.ReplyCount)

	resp, body = call(t, srv, http.MethodPost, "/api/replies", map[string]string{"text": "hi", "anonymousId": "u2", "momentId": moment.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var reply models.Reply
	require.NoError(t, json.Unmarshal(body, &reply))

	resp, body = call(t, srv, http.MethodGet, "/api/moments", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var feed []models.Moment
	require.NoError(t, json.Unmarshal(body, &feed))
	require.Len(t, feed, 1)
	require.Len(t, feed[0].Replies, 1)
	assert.Equal(t, "hi", feed[0].Replies[0].Text)
	assert.Equal(t, "u2", feed[0].Replies[0].AnonymousID)
	assert.Equal(t, 1, feed[0].ReplyCount)

	resp, _ = call(t, srv, http.MethodDelete, "/api/moments/"+moment.ID, map[string]string{"anonymousId": "u1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = call(t, srv, http.MethodGet, "/api/moments", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))

	resp, _ = call(t, srv, http.MethodDelete, "/api/replies/"+reply.ID, map[string]string{"anonymousId": "u2"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRetentionThroughAPI(t *testing.T) {
	srv := newTestServer(t, func(c *config.Config) { c.MaxMoments = 2 })

	var ids []string
	for _, text := range []string{"one", "two", "three"} {
		resp, body := call(t, srv, http.MethodPost, "/api/moments", map[string]string{"text": text, "anonymousId": "u1"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var m models.Moment
		require.NoError(t, json.Unmarshal(body, &m))
		ids = append(ids, m.ID)
	}

	_, body := call(t, srv, http.MethodGet, "/api/moments", nil)
	var feed []models.Moment
	require.NoError(t, json.Unmarshal(body, &feed))
	require.Len(t, feed, 2)
	assert.Equal(t, ids[2], feed[0].ID)
	assert.Equal(t, ids[1], feed[1].ID)

	_, body = call(t, srv, http.MethodGet, "/metrics", nil)
	assert.Contains(t, string(body), "moments_evicted_moments_total 1")
	assert.Contains(t, string(body), "moments_stored_moments 2")
}

func TestHealthAndUnknownRoutes(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := call(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	resp, _ = call(t, srv, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMetricsDisabled(t *testing.T) {
	cfg := config.Defaults()
	srv := httptest.NewServer(NewRouter(cfg, handlers.New(store.New(), nil, zap.NewNop()), nil, zap.NewNop()))
	defer srv.Close()

	resp, _ := call(t, srv, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductionSecurityHeaders(t *testing.T) {
	srv := newTestServer(t, func(c *config.Config) { c.Environment = "production" })

	resp, _ := call(t, srv, http.MethodGet, "/api/ping", nil)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}

func TestBodyLimit(t *testing.T) {
	srv := newTestServer(t, func(c *config.Config) { c.MaxBodyBytes = 64 })

	resp, body := call(t, srv, http.MethodPost, "/api/moments", map[string]string{
		"text": "hi", "anonymousId": "u1", "image": "data:image/png;base64," + strings.Repeat("A", 200),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, string(body))
}

func TestRecoveredPanicIsCounted(t *testing.T) {
	cfg := config.Defaults()
	m := metrics.New()
	r := NewRouter(cfg, handlers.New(store.New(), nil, zap.NewNop()), m, zap.NewNop())
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, _ := call(t, srv, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	_, body := call(t, srv, http.MethodGet, "/metrics", nil)
	assert.Contains(t, string(body), `moments_http_requests_total{method="GET",route="/boom",status="500"} 1`)
}

func TestDeleteWithoutIDThroughRouter(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := call(t, srv, http.MethodDelete, "/api/moments/", map[string]string{"anonymousId": "u1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Moment ID is required"}`, string(body))

	resp, body = call(t, srv, http.MethodDelete, "/api/replies/", map[string]string{"anonymousId": "u1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Reply ID is required"}`, string(body))

	resp, body = call(t, srv, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Not found"}`, string(body))
}
