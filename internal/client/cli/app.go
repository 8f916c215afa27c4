package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/dmitrijs2005/campusevents/internal/client/client"
	"github.com/dmitrijs2005/campusevents/internal/client/config"
	"github.com/dmitrijs2005/campusevents/internal/client/repositories"
	"github.com/dmitrijs2005/campusevents/internal/client/services"
	"github.com/dmitrijs2005/campusevents/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	config *config.Config
	log    logging.Logger

	repos    *repositories.Repositories
	api      *client.HTTPClient
	registry *prometheus.Registry

	session       *services.SessionService
	users         services.UserService
	events        services.EventService
	faculties     services.FacultyService
	notifications services.NotificationService
	prefs         *services.PreferencesService

	language string
	reader   *bufio.Reader
	out      io.Writer

	// expiryShown is set once the expiry notice has been printed.
	expiryShown atomic.Bool
}

// NewApp opens the local storage and wires the API client and services.
// The session is not restored yet, see Run.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repos, err := repositories.Open(ctx, c.StoragePath)
	if err != nil {
		log.Error(ctx, "error initializing storage", "path", c.StoragePath, "error", err)
		return nil, err
	}

	registry := prometheus.NewRegistry()
	api, err := client.NewHTTPClient(c.APIURL, repos.Credentials,
		client.WithHTTPClient(&http.Client{Timeout: c.Timeout}),
		client.WithLogger(log.With("component", "api")),
		client.WithRegisterer(registry),
	)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	a := &App{
		config:        c,
		log:           log,
		repos:         repos,
		api:           api,
		registry:      registry,
		session:       services.NewSessionService(api, repos.Credentials, log.With("component", "session")),
		users:         services.NewUserService(api),
		events:        services.NewEventService(api),
		faculties:     services.NewFacultyService(api),
		notifications: services.NewNotificationService(api),
		prefs:         services.NewPreferencesService(repos.Metadata),
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
	}
	api.OnSessionExpired(func(context.Context, error) {
		a.expiryShown.Store(true)
		fmt.Fprintln(a.out, services.MsgSessionExpired)
	})

	return a, nil
}

// Close releases the local storage.
func (a *App) Close() error {
	return a.repos.Close()
}

// Run restores the session, then runs the REPL on stdin until exit or EOF.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.initLanguage(ctx)

	fmt.Fprintln(a.out, "Campus Events CLI (type 'help' for commands)")
	a.expiryShown.Store(false)
	a.session.Initialize(ctx)
	if msg := a.session.Error(); msg != "" && !a.expiryShown.Load() {
		fmt.Fprintln(a.out, msg)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

// initLanguage picks the configured language for this run, or the stored one.
func (a *App) initLanguage(ctx context.Context) {
	if a.config.Language != "" {
		code, ok := services.MatchLanguage(a.config.Language)
		if !ok {
			a.log.Warn(ctx, "unsupported language, using default", "language", a.config.Language)
		}
		a.language = code
		return
	}

	code, err := a.prefs.Language(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to load preferred language", "error", err)
		code = services.DefaultLanguage
	}
	a.language = code
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// getStatus renders the prompt status, e.g. "(ada@campus.edu STUDENT) [en]".
func (a *App) getStatus() string {
	s := ""
	if p := a.session.Profile(); p != nil && a.session.IsAuthenticated() {
		s = fmt.Sprintf("(%s %s) ", p.Email, p.Role)
	}
	return s + "[" + a.language + "]"
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
