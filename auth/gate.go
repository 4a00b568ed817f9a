// Package auth implements the single-admin login gate. Authentication state is a
// flag in the visitor's session, so it ends with the session.
package auth

import (
	"context"
	"crypto/subtle"

	"aipirat/apperr"
	"aipirat/session"

	"go.uber.org/zap"
)

// SessionKey is the session entry that marks an authenticated admin.
const SessionKey = "zenith_admin_session"

const sessionValue = "true"

// Credentials is the fixed admin account.
type Credentials struct {
	Username string
	Password string
}

// DefaultCredentials is the built-in account used when none is configured.
var DefaultCredentials = Credentials{Username: "admin", Password: "admin"}

type Gate struct {
	creds    Credentials
	sessions session.Store
	log      *zap.Logger
}

func NewGate(creds Credentials, sessions session.Store, log *zap.Logger) *Gate {
	if creds.Username == "" && creds.Password == "" {
		creds = DefaultCredentials
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{creds: creds, sessions: sessions, log: log}
}

// Login marks sid as authenticated when username and password match exactly.
// A mismatch returns false and leaves the session untouched.
func (g *Gate) Login(ctx context.Context, sid, username, password string) (bool, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.creds.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.creds.Password)) == 1
	if !userOK || !passOK {
		g.log.Info("admin login rejected", zap.String("username", username))
		return false, nil
	}

	if err := g.sessions.Set(ctx, sid, SessionKey, sessionValue); err != nil {
		return false, apperr.Wrap(err, apperr.CodeUnavailable, "could not start admin session")
	}
	g.log.Info("admin logged in")
	return true, nil
}

// Logout clears the flag. Logging out an unauthenticated session is a no-op.
func (g *Gate) Logout(ctx context.Context, sid string) error {
	if err := g.sessions.Delete(ctx, sid, SessionKey); err != nil {
		return apperr.Wrap(err, apperr.CodeUnavailable, "could not end admin session")
	}
	return nil
}

// IsAuthenticated reports whether sid carries the admin flag. Storage failures
// read as unauthenticated.
func (g *Gate) IsAuthenticated(ctx context.Context, sid string) bool {
	if sid == "" {
		return false
	}
	v, found, err := g.sessions.Get(ctx, sid, SessionKey)
	if err != nil {
		g.log.Warn("session lookup failed", zap.Error(err))
		return false
	}
	return found && v == sessionValue
}
