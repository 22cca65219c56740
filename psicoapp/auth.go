package psicoapp

import (
	"time"

	"github.com/psicoapp/psicoapp-connector-go/internals/http"
	"github.com/psicoapp/psicoapp-connector-go/psicoapp/models"
)

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailBody struct {
	Email string `json:"email"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// SignUp registers a new clinician account with the backend's auth service.
// Depending on project settings the account may still need email confirmation
// before it can sign in.
func (a *App) SignUp(email string, password string) error {
	body, err := http.JSONBody(credentialsBody{Email: email, Password: password})
	if err != nil {
		return err
	}
	if err := a.Client.PostAndCheck("/auth/v1/signup", body); err != nil {
		return a.dataErr("sign up", err)
	}
	return nil
}

// SignIn exchanges the clinician's credentials for a session.
func (a *App) SignIn(email string, password string) (*models.Session, error) {
	body, err := http.JSONBody(credentialsBody{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var resp tokenResponse
	if err := a.Client.PostAndParse("/auth/v1/token?grant_type=password", body, &resp); err != nil {
		return nil, a.dataErr("sign in", err)
	}

	session := &models.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		UserID:       resp.User.ID,
		Email:        resp.User.Email,
	}
	if resp.ExpiresIn > 0 {
		session.ExpiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	return session, nil
}

// SignOut revokes the bound session's tokens. On an anonymous App it is a
// no-op.
func (a *App) SignOut() error {
	if a.session == nil {
		return nil
	}
	if err := a.Client.PostAndCheck("/auth/v1/logout", nil); err != nil {
		return a.dataErr("sign out", err)
	}
	return nil
}

// RequestPasswordReset asks the auth service to mail a recovery link.
func (a *App) RequestPasswordReset(email string) error {
	body, err := http.JSONBody(emailBody{Email: email})
	if err != nil {
		return err
	}
	if err := a.Client.PostAndCheck("/auth/v1/recover", body); err != nil {
		return a.dataErr("request password reset", err)
	}
	return nil
}
