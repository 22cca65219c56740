// Package psicoapp is the client for the hosted PsicoApp backend: a relational
// table store plus auth service. Every operation is a single remote round-trip;
// the backend stays the system of record and the client keeps no local copies
// beyond what a caller holds in memory.
package psicoapp

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/psicoapp/psicoapp-connector-go/internals/http"
	"github.com/psicoapp/psicoapp-connector-go/internals/utils"
	"github.com/psicoapp/psicoapp-connector-go/psicoapp/models"
)

// ErrNotFound marks a requested entity that does not exist in the backend.
// Callers test for it with errors.Is.
var ErrNotFound = errors.New("not found")

type App struct {
	Client *http.Client

	url        string
	anonKey    string
	verifyCert bool
	timeout    time.Duration
	session    *models.Session
	logger     zerolog.Logger
}

func Ping(url string) error {
	client := http.NewClient(url, "", false)
	return client.Ping()
}

func NewApp(url string, anonKey string, verifyCert bool) *App {
	return &App{
		Client:     http.NewClient(url, anonKey, verifyCert),
		url:        url,
		anonKey:    anonKey,
		verifyCert: verifyCert,
		logger:     zerolog.Nop(),
	}
}

// Connect validates the backend URL and checks that the table API accepts the
// anonymous key before returning an App.
func Connect(url string, anonKey string, verifyCert bool) (*App, error) {
	url, err := utils.ValidateURL(url)
	if err != nil {
		return nil, errors.New("invalid url")
	}
	app := NewApp(url, anonKey, verifyCert)

	err = app.Client.CheckConnection()
	if err != nil {
		return nil, fmt.Errorf("cannot connect to PsicoApp backend: %s", err.Error())
	}
	return app, nil
}

// ConnectWithPassword connects and signs the clinician in, returning an App
// whose requests carry the session's access token.
func ConnectWithPassword(url string, anonKey string, email string, password string, verifyCert bool) (*App, error) {
	app, err := Connect(url, anonKey, verifyCert)
	if err != nil {
		return nil, err
	}
	session, err := app.SignIn(email, password)
	if err != nil {
		return nil, err
	}
	return app.WithSession(session), nil
}

// WithSession returns an App bound to the given session. The receiver is left
// untouched so an anonymous App can keep serving auth calls.
func (a *App) WithSession(session *models.Session) *App {
	bound := &App{
		Client:     http.NewSessionClient(a.url, a.anonKey, session.AccessToken, a.verifyCert),
		url:        a.url,
		anonKey:    a.anonKey,
		verifyCert: a.verifyCert,
		timeout:    a.timeout,
		session:    session,
		logger:     a.logger,
	}
	bound.Client.SetLogger(a.logger)
	bound.Client.SetTimeout(a.timeout)
	return bound
}

// SetTimeout configures the per-request timeout for every operation.
func (a *App) SetTimeout(timeout time.Duration) {
	a.timeout = timeout
	a.Client.SetTimeout(timeout)
}

// Session returns the bound session, or nil for an anonymous App.
func (a *App) Session() *models.Session {
	return a.session
}

func (a *App) SetLogger(logger zerolog.Logger) {
	a.logger = logger
	a.Client.SetLogger(logger)
}

// dataErr classifies a data-access failure: backend not-found answers become
// ErrNotFound, everything else is propagated unchanged under the operation
// name.
func (a *App) dataErr(op string, err error) error {
	var reqErr *http.RequestError
	if errors.As(err, &reqErr) && reqErr.NotFound() {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
