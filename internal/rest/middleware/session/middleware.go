// Package session authenticates REST requests against the session cache.
package session

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/belgahub/hub/internal/gateway"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

type sessionCtxKey struct{}

// FromContext retrieves the authenticated session from context.
// Returns nil on anonymous requests.
func FromContext(ctx context.Context) *gateway.Session {
	if session, ok := ctx.Value(sessionCtxKey{}).(*gateway.Session); ok {
		return session
	}

	return nil
}

// Middleware resolves bearer tokens to cached sessions.
type Middleware struct {
	sessions *gateway.SessionCache
	logger   *zap.Logger
}

// New creates a new session middleware.
func New(sessions *gateway.SessionCache, logger *zap.Logger) *Middleware {
	return &Middleware{
		sessions: sessions,
		logger:   logger,
	}
}

// Required rejects requests without a valid session.
func (m *Middleware) Required(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		session, err := m.resolve(req)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return nil
		}

		ctx := context.WithValue(req.Context(), sessionCtxKey{}, session)

		return next(w, req.WithContext(ctx))
	}
}

// Optional attaches a session when the token is valid and lets the
// request through anonymously otherwise.
func (m *Middleware) Optional(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		session, err := m.resolve(req)
		if err != nil {
			return next(w, req)
		}

		ctx := context.WithValue(req.Context(), sessionCtxKey{}, session)

		return next(w, req.WithContext(ctx))
	}
}

func (m *Middleware) resolve(req bunrouter.Request) (*gateway.Session, error) {
	token := bearerToken(req.Header.Get("Authorization"))
	if token == "" {
		return nil, gateway.ErrSessionExpired
	}

	session, err := m.sessions.Get(req.Context(), token)
	if err != nil {
		if !errors.Is(err, gateway.ErrSessionExpired) {
			m.logger.Error("Failed to resolve session", zap.Error(err))
		}

		return nil, err
	}

	return session, nil
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
