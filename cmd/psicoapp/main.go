package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/psicoapp/psicoapp-connector-go/internals/config"
	"github.com/psicoapp/psicoapp-connector-go/psicoapp"
	"github.com/psicoapp/psicoapp-connector-go/psicoapp/models"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "psicoapp",
		Short:         "Terminal client for the PsicoApp clinical records backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(signupCmd())
	rootCmd.AddCommand(recoverCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(patientsCmd())
	rootCmd.AddCommand(historiesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return logger
}

// anonApp builds an App carrying only the anonymous key, for auth commands.
func anonApp() (*psicoapp.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	app := psicoapp.NewApp(cfg.BackendURL, cfg.AnonKey, cfg.VerifyCert)
	app.SetLogger(newLogger(cfg))
	app.SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)
	return app, nil
}

// sessionApp rebuilds the signed-in App from the tokens in the environment.
func sessionApp() (*psicoapp.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("no session: set PSICOAPP_ACCESS_TOKEN (see 'psicoapp login')")
	}
	session, err := models.SessionFromTokens(cfg.AccessToken, cfg.RefreshToken)
	if err != nil {
		return nil, err
	}
	if session.Expired() {
		return nil, fmt.Errorf("the session has expired, sign in again with 'psicoapp login'")
	}

	app := psicoapp.NewApp(cfg.BackendURL, cfg.AnonKey, cfg.VerifyCert)
	app.SetLogger(newLogger(cfg))
	app.SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)
	return app.WithSession(session), nil
}

// consoleNavigator renders the screen alert contract on the terminal. A
// forced back-navigation has no screen stack to pop here; the failed state on
// the controller makes the command exit non-zero instead.
type consoleNavigator struct{}

func (consoleNavigator) Alert(message string) {
	fmt.Fprintln(os.Stderr, "aviso:", message)
}

func (consoleNavigator) AlertAndBack(message string) {
	fmt.Fprintln(os.Stderr, "aviso:", message)
}
