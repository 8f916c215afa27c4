package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/dmitrijs2005/campusevents/internal/client/client"
	"github.com/dmitrijs2005/campusevents/internal/client/models"
	"github.com/dmitrijs2005/campusevents/internal/client/repositories"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// recorded is one request seen by the fake API.
type recorded struct {
	Method      string
	Path        string
	Query       url.Values
	Auth        string
	ContentType string
	Body        []byte
}

type recorder struct {
	mu   sync.Mutex
	reqs []recorded
}

func (rc *recorder) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		rc.mu.Lock()
		rc.reqs = append(rc.reqs, recorded{
			Method:      r.Method,
			Path:        r.URL.Path,
			Query:       r.URL.Query(),
			Auth:        r.Header.Get("Authorization"),
			ContentType: r.Header.Get("Content-Type"),
			Body:        body,
		})
		rc.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (rc *recorder) all() []recorded {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return append([]recorded(nil), rc.reqs...)
}

func (rc *recorder) last() recorded {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if len(rc.reqs) == 0 {
		return recorded{}
	}
	return rc.reqs[len(rc.reqs)-1]
}

// env is a fake API server, a migrated in-memory store and a client bound
// to both.
type env struct {
	srv   *httptest.Server
	rec   *recorder
	repos *repositories.Repositories
	api   *client.HTTPClient
}

func newEnv(t *testing.T, routes func(r chi.Router)) *env {
	t.Helper()

	rec := &recorder{}
	r := chi.NewRouter()
	r.Use(rec.middleware)
	if routes != nil {
		routes(r)
	}
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	repos, err := repositories.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	api, err := client.NewHTTPClient(srv.URL, repos.Credentials)
	require.NoError(t, err)

	return &env{srv: srv, rec: rec, repos: repos, api: api}
}

func (e *env) seed(t *testing.T, c *models.Credentials) {
	t.Helper()
	require.NoError(t, e.repos.Credentials.Save(context.Background(), c))
}

func (e *env) stored(t *testing.T) *models.Credentials {
	t.Helper()
	c, err := e.repos.Credentials.Load(context.Background())
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func reply(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, status, v) }
}

// bearerOnly answers v to requests carrying token and 401 otherwise.
func bearerOnly(token string, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Given token not valid for any token type"})
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func decodeBody(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m))
	return m
}
