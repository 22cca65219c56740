package models

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the authenticated state of a signed-in clinician. The backend's
// auth service owns the tokens; the client only reads the claims it needs for
// display and expiry checks.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	Email        string
	ExpiresAt    time.Time
}

// SessionFromTokens rebuilds a Session from stored tokens by decoding the
// access token's claims. The signature is not verified here: the signing key
// belongs to the backend, which rejects tampered tokens on every call anyway.
func SessionFromTokens(accessToken string, refreshToken string) (*Session, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return nil, errors.New("access token is not a valid JWT: " + err.Error())
	}

	session := &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	if sub, err := claims.GetSubject(); err == nil {
		session.UserID = sub
	}
	if email, ok := claims["email"].(string); ok {
		session.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		session.ExpiresAt = exp.Time
	}
	if session.UserID == "" {
		return nil, errors.New("access token has no subject claim")
	}
	return session, nil
}

// Expired reports whether the access token's expiry has passed. A session
// without an expiry claim is treated as still valid.
func (s *Session) Expired() bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(s.ExpiresAt)
}
