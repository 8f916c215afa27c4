package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrijs2005/campusevents/internal/client/models"
	"github.com/dmitrijs2005/campusevents/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/campusevents/internal/logging"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"
)

// Endpoint paths of the authentication API, relative to the base URL.
const (
	LoginPath    = "/users/auth/login/"
	RegisterPath = "/users/auth/register/"
	RefreshPath  = "/users/auth/token/refresh/"
	MePath       = "/users/me/"
)

var (
	errNoRefreshToken = errors.New("no refresh token stored")
	errNoAccessIssued = errors.New("refresh response carries no access token")
)

// TokenStore is the part of the credential store the client depends on.
type TokenStore interface {
	Load(ctx context.Context) (*models.Credentials, error)
	UpdateAccess(ctx context.Context, access string) error
	Clear(ctx context.Context) error
}

// SessionExpiredFunc is notified after an unrecoverable 401 cleared the
// stored credentials.
type SessionExpiredFunc func(ctx context.Context, cause error)

type HTTPClient struct {
	baseURL string
	http    *http.Client
	store   TokenStore
	log     logging.Logger
	metrics *metrics

	refreshGroup singleflight.Group

	mu    sync.Mutex
	hooks []SessionExpiredFunc

	newRequestID func() string
	registerer   prometheus.Registerer
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the default transport client (no timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithRegisterer registers the client metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *HTTPClient) { c.registerer = reg }
}

// NewHTTPClient returns a client for the API rooted at baseURL which takes
// its tokens from store.
func NewHTTPClient(baseURL string, store TokenStore, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q: scheme and host are required", baseURL)
	}

	c := &HTTPClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{},
		store:        store,
		log:          logging.Nop(),
		newRequestID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	c.metrics = newMetrics(c.registerer)
	return c, nil
}

// BaseURL returns the API root without a trailing slash.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// OnSessionExpired adds fn to the listeners notified when a session is
// dropped after an unrecoverable 401.
func (c *HTTPClient) OnSessionExpired(fn SessionExpiredFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, fn)
}

// Do sends req and returns the 2xx response.
//
// Authenticated requests carry the stored access token. On 401 the stored
// refresh token is exchanged for a new access token and the request is sent
// once more with it; a request is never retried twice. When no refresh is
// possible, or the retry is rejected with 401 again, the stored credentials
// are cleared, the session-expired listeners are notified and an error
// wrapping ErrSessionExpired is returned.
//
// Other non-2xx statuses are returned as *APIError, transport failures wrap
// ErrUnavailable. Neither is retried.
func (c *HTTPClient) Do(ctx context.Context, req *Request) (*Response, error) {
	requestID := c.newRequestID()
	log := c.log.With("request_id", requestID, "method", req.Method, "path", req.Path)

	if req.Anonymous {
		return c.send(ctx, req, "", requestID)
	}

	token, err := c.accessToken(ctx, log)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, req, token, requestID)
	if StatusCode(err) != http.StatusUnauthorized {
		return resp, err
	}

	log.Debug(ctx, "access token rejected, refreshing")

	access, rerr := c.refreshAccess(ctx, log, token)
	switch {
	case errors.Is(rerr, errNoRefreshToken), errors.Is(rerr, errNoAccessIssued):
		return nil, c.expire(ctx, log, err)
	case rerr != nil:
		return nil, c.expire(ctx, log, fmt.Errorf("token refresh: %w", rerr))
	}

	resp, err = c.send(ctx, req, access, requestID)
	if StatusCode(err) == http.StatusUnauthorized {
		return nil, c.expire(ctx, log, err)
	}
	return resp, err
}

// JSON sends an authenticated request with an optional JSON body and decodes
// the response into out when out is non-nil.
func (c *HTTPClient) JSON(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.Do(ctx, &Request{Method: method, Path: path, Body: body})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}

func (c *HTTPClient) accessToken(ctx context.Context, log logging.Logger) (string, error) {
	creds, err := c.store.Load(ctx)
	switch {
	case err == nil:
		return creds.Access, nil
	case errors.Is(err, credentials.ErrNoSession):
		return "", nil
	case errors.Is(err, credentials.ErrCorrupt):
		log.Warn(ctx, "stored credentials unreadable, sending without token", "error", err)
		return "", nil
	default:
		return "", fmt.Errorf("load credentials: %w", err)
	}
}

// refreshAccess exchanges the stored refresh token for a new access token and
// persists it. Concurrent callers holding the same refresh token share one
// network call. If the stored access token already differs from rejected,
// another request refreshed it meanwhile and it is returned as is.
func (c *HTTPClient) refreshAccess(ctx context.Context, log logging.Logger, rejected string) (string, error) {
	creds, err := c.store.Load(ctx)
	if err != nil || creds.Refresh == "" {
		return "", errNoRefreshToken
	}
	if creds.Access != "" && creds.Access != rejected {
		log.Debug(ctx, "access token already refreshed")
		return creds.Access, nil
	}

	v, err, shared := c.refreshGroup.Do(creds.Refresh, func() (any, error) {
		// Detached so that one waiter giving up does not fail the others.
		ctx := context.WithoutCancel(ctx)

		resp, err := c.Do(ctx, &Request{
			Method:    http.MethodPost,
			Path:      RefreshPath,
			Body:      models.RefreshRequest{Refresh: creds.Refresh},
			Anonymous: true,
		})
		if err != nil {
			c.metrics.refreshes.WithLabelValues("failure").Inc()
			return "", err
		}

		var out models.RefreshResponse
		if err := resp.Decode(&out); err != nil {
			c.metrics.refreshes.WithLabelValues("failure").Inc()
			return "", err
		}
		if out.Access == "" {
			c.metrics.refreshes.WithLabelValues("empty").Inc()
			return "", errNoAccessIssued
		}

		if err := c.store.UpdateAccess(ctx, out.Access); err != nil {
			c.metrics.refreshes.WithLabelValues("failure").Inc()
			return "", fmt.Errorf("store refreshed token: %w", err)
		}

		c.metrics.refreshes.WithLabelValues("success").Inc()
		return out.Access, nil
	})
	if err != nil {
		log.Warn(ctx, "token refresh failed", "error", err, "shared", shared)
		return "", err
	}

	log.Info(ctx, "access token refreshed", "shared", shared)
	return v.(string), nil
}

// expire drops the stored session, notifies listeners and returns cause
// wrapped with ErrSessionExpired.
func (c *HTTPClient) expire(ctx context.Context, log logging.Logger, cause error) error {
	if err := c.store.Clear(ctx); err != nil {
		log.Error(ctx, "failed to clear credentials", "error", err)
	}
	c.metrics.expired.Inc()
	log.Warn(ctx, "session expired", "error", cause)

	c.mu.Lock()
	hooks := append([]SessionExpiredFunc(nil), c.hooks...)
	c.mu.Unlock()

	for _, fn := range hooks {
		fn(ctx, cause)
	}

	return fmt.Errorf("%w: %w", ErrSessionExpired, cause)
}

// send performs a single attempt.
func (c *HTTPClient) send(ctx context.Context, req *Request, token, requestID string) (*Response, error) {
	hr, err := c.build(ctx, req, token, requestID)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(hr)
	if err != nil {
		c.metrics.requests.WithLabelValues(req.Method, statusClass(0)).Inc()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.metrics.requests.WithLabelValues(req.Method, statusClass(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}
