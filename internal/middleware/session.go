package middleware

import (
	"errors"
	"time"

	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/session"
	"github.com/careerconnect/connect-client/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// SessionContextKey is the key used to store the session manager in context
const SessionContextKey = "session"

var (
	ErrSessionNotFound = errors.New("session not found in context")
	ErrInvalidSession  = errors.New("invalid session type")
)

// SessionMiddleware seeds a session.Manager from the visitor's cookie and
// puts it in the context. It never rejects a request; guarding is done per
// route by GuardMiddleware.
func SessionMiddleware(tokens *jwt.TokenManager, cookie session.CookieConfig, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		manager := session.NewManager(session.NewCookiePersister(c, tokens, cookie), ttl)
		c.Set(SessionContextKey, manager)
		c.Next()
	}
}

// GetSessionStore extracts the session manager from context
func GetSessionStore(c *gin.Context) (*session.Manager, error) {
	val, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, ErrSessionNotFound
	}

	manager, ok := val.(*session.Manager)
	if !ok {
		return nil, ErrInvalidSession
	}

	return manager, nil
}

// CurrentSession returns the request's session, or the zero Session when
// SessionMiddleware did not run
func CurrentSession(c *gin.Context) models.Session {
	manager, err := GetSessionStore(c)
	if err != nil {
		return models.Session{}
	}
	return manager.Get()
}
