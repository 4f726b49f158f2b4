package session

import (
	"net/http"
	"time"

	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// CookieName is the cookie holding the signed session
const CookieName = "careerconnect_session"

// CookieConfig controls how the session cookie is written
type CookieConfig struct {
	Domain string
	Secure bool
}

// CookiePersister stores the session as one signed, HttpOnly cookie on the
// visitor's browser. The browser drops the cookie after the TTL and the
// signed expiry rejects it even if it is replayed later.
type CookiePersister struct {
	c      *gin.Context
	tokens *jwt.TokenManager
	cfg    CookieConfig
}

var _ Persister = (*CookiePersister)(nil)

// NewCookiePersister binds a persister to one request/response pair
func NewCookiePersister(c *gin.Context, tokens *jwt.TokenManager, cfg CookieConfig) *CookiePersister {
	return &CookiePersister{c: c, tokens: tokens, cfg: cfg}
}

func (p *CookiePersister) Load() (models.Session, error) {
	value, err := p.c.Cookie(CookieName)
	if err != nil || value == "" {
		return models.Session{}, nil
	}

	claims, err := p.tokens.Verify(value)
	if err != nil {
		return models.Session{}, err
	}

	return models.Session{
		Token:            claims.BackendToken,
		Role:             models.Role(claims.Role),
		UserID:           claims.UserID,
		ProfileImagePath: claims.Profile,
	}, nil
}

func (p *CookiePersister) Save(sess models.Session, ttl time.Duration) error {
	value, err := p.tokens.Sign(sess.Token, string(sess.Role), sess.UserID, sess.ProfileImagePath, ttl)
	if err != nil {
		return err
	}
	p.setCookie(value, int(ttl.Seconds()))
	return nil
}

func (p *CookiePersister) Clear() error {
	p.setCookie("", -1)
	return nil
}

func (p *CookiePersister) setCookie(value string, maxAge int) {
	p.c.SetSameSite(http.SameSiteLaxMode)
	p.c.SetCookie(
		CookieName,
		value,
		maxAge,
		"/",
		p.cfg.Domain,
		p.cfg.Secure,
		true, // HttpOnly
	)
}
