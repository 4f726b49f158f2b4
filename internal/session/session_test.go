package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/state"
	"github.com/careerconnect/connect-client/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "0123456789abcdef0123456789abcdef"

type failingPersister struct {
	MemoryPersister
}

func (p *failingPersister) Save(models.Session, time.Duration) error {
	return errors.New("disk full")
}

func TestManager_LoginThenGet(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		role    models.Role
		profile string
		userID  int
	}{
		{name: "student", token: "t1", role: models.RoleStudent, profile: "/uploads/s.png", userID: 1},
		{name: "mentor", token: "t2", role: models.RoleMentor, profile: "", userID: 22},
		{name: "admin", token: "opaque token with spaces", role: models.RoleAdmin, profile: "/a.png", userID: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(NewMemoryPersister(), DefaultTTL)

			require.NoError(t, m.Login(tt.token, tt.role, tt.profile, tt.userID))

			assert.Equal(t, models.Session{
				Token:            tt.token,
				Role:             tt.role,
				UserID:           tt.userID,
				ProfileImagePath: tt.profile,
			}, m.Get())
		})
	}
}

func TestManager_LoginOverwritesPreviousSession(t *testing.T) {
	m := NewManager(NewMemoryPersister(), DefaultTTL)
	require.NoError(t, m.Login("old", models.RoleMentor, "/old.png", 1))

	require.NoError(t, m.Login("new", models.RoleStudent, "", 2))

	assert.Equal(t, models.Session{Token: "new", Role: models.RoleStudent, UserID: 2}, m.Get())
}

func TestManager_LogoutClearsEverything(t *testing.T) {
	p := NewMemoryPersister()
	m := NewManager(p, DefaultTTL)
	require.NoError(t, m.Login("t", models.RoleStudent, "/p.png", 5))

	require.NoError(t, m.Logout())

	assert.True(t, m.Get().IsZero())
	stored, err := p.Load()
	require.NoError(t, err)
	assert.True(t, stored.IsZero())
}

func TestManager_LogoutIsIdempotent(t *testing.T) {
	m := NewManager(NewMemoryPersister(), DefaultTTL)

	assert.NoError(t, m.Logout())
	assert.NoError(t, m.Logout())
	assert.True(t, m.Get().IsZero())
}

func TestManager_SeedsFromPersister(t *testing.T) {
	p := NewMemoryPersister()
	require.NoError(t, p.Save(models.Session{Token: "t", Role: models.RoleMentor, UserID: 9, ProfileImagePath: "/m.png"}, time.Hour))

	m := NewManager(p, DefaultTTL)

	assert.Equal(t, 9, m.Get().UserID)
	assert.True(t, m.Get().IsAuthenticated())
}

func TestManager_IgnoresPartialStoredSession(t *testing.T) {
	p := NewMemoryPersister()
	require.NoError(t, p.Save(models.Session{Token: "t"}, time.Hour))

	m := NewManager(p, DefaultTTL)

	assert.True(t, m.Get().IsZero())
}

func TestManager_FailedSaveKeepsPreviousSession(t *testing.T) {
	m := NewManager(&failingPersister{MemoryPersister: MemoryPersister{now: time.Now}}, DefaultTTL)

	err := m.Login("t", models.RoleStudent, "", 1)

	assert.Error(t, err)
	assert.True(t, m.Get().IsZero())
}

type stickyPersister struct {
	MemoryPersister
}

func (p *stickyPersister) Clear() error {
	return errors.New("read-only file system")
}

func TestManager_FailedClearKeepsSession(t *testing.T) {
	m := NewManager(&stickyPersister{MemoryPersister: MemoryPersister{now: time.Now}}, DefaultTTL)
	require.NoError(t, m.Login("t", models.RoleStudent, "", 1))

	err := m.Logout()

	assert.Error(t, err)
	assert.Equal(t, "t", m.Get().Token)
}

func TestMemoryPersister_Expiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := NewMemoryPersister()
	p.now = func() time.Time { return now }
	require.NoError(t, p.Save(models.Session{Token: "t", Role: models.RoleStudent, UserID: 1}, 24*time.Hour))

	now = now.Add(23 * time.Hour)
	sess, err := p.Load()
	require.NoError(t, err)
	assert.Equal(t, "t", sess.Token)

	now = now.Add(time.Hour)
	sess, err = p.Load()
	require.NoError(t, err)
	assert.True(t, sess.IsZero())
}

func TestFilePersister_RoundTripAndExpiry(t *testing.T) {
	file := state.NewFile(filepath.Join(t.TempDir(), "state.yaml"))
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := NewFilePersister(file)
	p.now = func() time.Time { return now }

	m := NewManager(p, DefaultTTL)
	require.NoError(t, m.Login("tok", models.RoleMentor, "/p.png", 3))

	reopened := NewManager(p, DefaultTTL)
	assert.Equal(t, m.Get(), reopened.Get())

	now = now.Add(DefaultTTL)
	expired := NewManager(p, DefaultTTL)
	assert.True(t, expired.Get().IsZero())
}

func TestFilePersister_ClearKeepsSentRequests(t *testing.T) {
	file := state.NewFile(filepath.Join(t.TempDir(), "state.yaml"))
	require.NoError(t, state.NewSentSet(file, 3).Add(8))
	m := NewManager(NewFilePersister(file), DefaultTTL)
	require.NoError(t, m.Login("tok", models.RoleStudent, "", 3))

	require.NoError(t, m.Logout())

	doc, err := file.Read()
	require.NoError(t, err)
	assert.Nil(t, doc.Session)
	assert.Equal(t, []int{8}, doc.SentRequests[3])
}

func newCookieContext(cookies ...*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	c.Request = req
	return c, w
}

func TestCookiePersister_LoginWritesSignedCookie(t *testing.T) {
	tokens := jwt.NewTokenManager(testSecret, "test")
	c, w := newCookieContext()
	m := NewManager(NewCookiePersister(c, tokens, CookieConfig{Secure: true}), DefaultTTL)

	require.NoError(t, m.Login("backend-token", models.RoleStudent, "/s.png", 12))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, CookieName, cookie.Name)
	assert.Equal(t, 86400, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.NotContains(t, cookie.Value, "backend-token")

	next, _ := newCookieContext(&http.Cookie{Name: CookieName, Value: cookie.Value})
	restored := NewManager(NewCookiePersister(next, tokens, CookieConfig{}), DefaultTTL)
	assert.Equal(t, models.Session{
		Token:            "backend-token",
		Role:             models.RoleStudent,
		UserID:           12,
		ProfileImagePath: "/s.png",
	}, restored.Get())
}

func TestCookiePersister_TamperedCookieIsAbsentAndCleared(t *testing.T) {
	tokens := jwt.NewTokenManager(testSecret, "test")
	value, err := tokens.Sign("tok", "admin", 1, "", time.Hour)
	require.NoError(t, err)

	parts := strings.Split(value, ".")
	parts[2] = strings.Repeat("A", len(parts[2]))
	tampered := strings.Join(parts, ".")

	c, w := newCookieContext(&http.Cookie{Name: CookieName, Value: tampered})
	m := NewManager(NewCookiePersister(c, tokens, CookieConfig{}), DefaultTTL)

	assert.True(t, m.Get().IsZero())
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestCookiePersister_ForeignSecretRejected(t *testing.T) {
	other := jwt.NewTokenManager("ffffffffffffffffffffffffffffffff", "test")
	value, err := other.Sign("tok", "student", 1, "", time.Hour)
	require.NoError(t, err)

	c, _ := newCookieContext(&http.Cookie{Name: CookieName, Value: value})
	m := NewManager(NewCookiePersister(c, jwt.NewTokenManager(testSecret, "test"), CookieConfig{}), DefaultTTL)

	assert.False(t, m.Get().IsAuthenticated())
}
