package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/campusevents/internal/client/client"
	"github.com/dmitrijs2005/campusevents/internal/client/models"
	"github.com/dmitrijs2005/campusevents/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/campusevents/internal/logging"
)

// Displayable messages of the session.
const (
	MsgSessionExpired = "Session expired. Please log in again."
	MsgLoginFailed    = "Failed to login. Please check your credentials."
	MsgRegisterFailed = "Registration failed. Please try again."
)

// ErrIncompleteCredentials is returned when login or registration succeeded
// but the reply lacks a token or the profile.
var ErrIncompleteCredentials = errors.New("server returned incomplete credentials")

// AuthError is a failed login or registration. Message is meant for the user.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return e.Err }

// SessionState is a snapshot of the session.
type SessionState struct {
	Authenticated bool
	Loading       bool
	Error         string
	Profile       *models.Profile
}

// SessionService is the single source of truth for who is logged in.
//
// It is created in the loading state; Initialize resolves it from the stored
// credential record. Login and Register establish a session, Logout and
// session expiries reported by the client end it. All methods are safe for
// concurrent use and no lock is held across network calls.
type SessionService struct {
	api   SessionAPI
	store CredentialStore
	log   logging.Logger

	mu            sync.RWMutex
	profile       *models.Profile
	authenticated bool
	loading       bool
	errMsg        string
}

// NewSessionService returns a session bound to api and store and subscribes
// it to the session expiries api reports.
func NewSessionService(api SessionAPI, store CredentialStore, log logging.Logger) *SessionService {
	if log == nil {
		log = logging.Nop()
	}
	s := &SessionService{api: api, store: store, log: log, loading: true}
	api.OnSessionExpired(s.expired)
	return s
}

// Initialize restores the session from the stored record. With no record the
// session is logged out. Otherwise the profile is fetched from the server,
// which is authoritative; any failure clears the record and leaves the
// session logged out with MsgSessionExpired as its error.
func (s *SessionService) Initialize(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	creds, err := s.store.Load(ctx)
	if errors.Is(err, credentials.ErrNoSession) {
		s.log.Debug(ctx, "no stored session")
		return
	}
	if err == nil && creds.Access == "" {
		err = errors.New("no access token stored")
	}
	if err != nil {
		s.drop(ctx, fmt.Errorf("load session: %w", err))
		return
	}

	var p models.Profile
	if err := s.api.JSON(ctx, http.MethodGet, client.MePath, nil, &p); err != nil {
		s.drop(ctx, fmt.Errorf("fetch profile: %w", err))
		return
	}

	s.mu.Lock()
	s.profile = &p
	s.authenticated = true
	s.errMsg = ""
	s.mu.Unlock()

	s.log.Info(ctx, "session restored", "user_id", p.ID, "role", p.Role)
}

// Login authenticates with email and password, stores the returned record
// and returns the profile. On failure the current session is kept and the
// error is an *AuthError carrying the server message or MsgLoginFailed.
func (s *SessionService) Login(ctx context.Context, email, password string) (*models.Profile, error) {
	return s.authenticate(ctx, "login", client.LoginPath, models.LoginRequest{Email: email, Password: password}, MsgLoginFailed)
}

// Register creates an account and logs into it, like Login.
func (s *SessionService) Register(ctx context.Context, req models.RegisterRequest) (*models.Profile, error) {
	return s.authenticate(ctx, "register", client.RegisterPath, req, MsgRegisterFailed)
}

func (s *SessionService) authenticate(ctx context.Context, op, path string, body any, fallback string) (*models.Profile, error) {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	profile, err := s.establish(ctx, path, body)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		msg := client.ServerMessage(err)
		if msg == "" {
			msg = fallback
		}
		s.errMsg = msg
		s.log.Warn(ctx, op+" failed", "status", client.StatusCode(err), "error", err)
		return nil, &AuthError{Message: msg, Err: err}
	}

	s.profile = profile
	s.authenticated = true
	s.log.Info(ctx, op+" succeeded", "user_id", profile.ID, "role", profile.Role)
	return profile.Clone(), nil
}

func (s *SessionService) establish(ctx context.Context, path string, body any) (*models.Profile, error) {
	resp, err := s.api.Do(ctx, &client.Request{Method: http.MethodPost, Path: path, Body: body, Anonymous: true})
	if err != nil {
		return nil, err
	}

	var creds models.Credentials
	if err := resp.Decode(&creds); err != nil {
		return nil, err
	}
	if !creds.Complete() || creds.User == nil {
		return nil, ErrIncompleteCredentials
	}

	if err := s.store.Save(ctx, &creds); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return creds.User, nil
}

// Logout clears the stored record and the session. It is idempotent.
func (s *SessionService) Logout(ctx context.Context) error {
	err := s.store.Clear(ctx)

	s.mu.Lock()
	s.profile = nil
	s.authenticated = false
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Info(ctx, "logged out")
	return nil
}

// UpdateProfile replaces the in-memory profile, typically after a profile
// edit succeeded on the server. The stored record is not touched.
func (s *SessionService) UpdateProfile(p *models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p.Clone()
}

// AccessExpiry reports when the stored access token expires, if it is a JWT
// carrying an exp claim.
func (s *SessionService) AccessExpiry(ctx context.Context) (time.Time, bool) {
	creds, err := s.store.Load(ctx)
	if err != nil {
		return time.Time{}, false
	}
	return models.AccessTokenExpiry(creds.Access)
}

func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

func (s *SessionService) IsAdmin() bool {
	return s.Role() == models.RoleAdmin
}

func (s *SessionService) IsInstructor() bool {
	return s.Role() == models.RoleInstructor
}

// Role returns the role of the current profile, "" when there is none.
func (s *SessionService) Role() models.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return ""
	}
	return s.profile.Role
}

func (s *SessionService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Error returns the last displayable session error, "" when there is none.
func (s *SessionService) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// Profile returns a copy of the current profile, nil when logged out.
func (s *SessionService) Profile() *models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone()
}

func (s *SessionService) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SessionState{
		Authenticated: s.authenticated,
		Loading:       s.loading,
		Error:         s.errMsg,
		Profile:       s.profile.Clone(),
	}
}

// drop ends the session after a failed restore.
func (s *SessionService) drop(ctx context.Context, cause error) {
	if err := s.store.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear stored session", "error", err)
	}

	s.mu.Lock()
	s.profile = nil
	s.authenticated = false
	s.errMsg = MsgSessionExpired
	s.mu.Unlock()

	s.log.Warn(ctx, "stored session rejected", "error", cause)
}

// expired is subscribed to the client; the record is already cleared.
func (s *SessionService) expired(ctx context.Context, cause error) {
	s.mu.Lock()
	s.profile = nil
	s.authenticated = false
	s.errMsg = MsgSessionExpired
	s.mu.Unlock()

	s.log.Info(ctx, "session ended by server", "error", cause)
}
