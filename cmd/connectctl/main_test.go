package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/careerconnect/connect-client/internal/connection"
	"github.com/careerconnect/connect-client/internal/guard"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/session"
	"github.com/careerconnect/connect-client/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliEnv struct {
	t         *testing.T
	stateFile string
	calls     atomic.Int32
	backend   *httptest.Server
}

// newCLIEnv starts a fake backend serving routes and points the CLI at it
// with a fresh state file.
func newCLIEnv(t *testing.T, routes map[string]http.HandlerFunc) *cliEnv {
	t.Helper()

	env := &cliEnv{t: t, stateFile: filepath.Join(t.TempDir(), "state.yaml")}

	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.HandleFunc(pattern, handler)
	}
	env.backend = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.calls.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(env.backend.Close)

	t.Setenv("API_BASE_URL", env.backend.URL)
	t.Setenv("CLI_STATE_FILE", env.stateFile)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DISABLE_CIRCUIT_BREAKER", "true")

	return env
}

func (e *cliEnv) seedSession(sess models.Session) {
	e.t.Helper()
	store := session.NewManager(session.NewFilePersister(state.NewFile(e.stateFile)), time.Hour)
	require.NoError(e.t, store.Login(sess.Token, sess.Role, sess.ProfileImagePath, sess.UserID))
}

func (e *cliEnv) run(args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func respondJSON(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	}
}

func TestLoginPersistsSession(t *testing.T) {
	env := newCLIEnv(t, map[string]http.HandlerFunc{
		"POST /api/auth/login": respondJSON(http.StatusOK, models.LoginResponse{
			Token: "tok-1", Role: "mentor", Profile: "/p.png", UserID: 12,
		}),
	})

	out, err := env.run("login", "--email", "m@example.com", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, guard.MentorDashboardPath)

	out, err = env.run("whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "userId: 12")
	assert.Contains(t, out, "role: mentor")

	doc, err := state.NewFile(env.stateFile).Read()
	require.NoError(t, err)
	require.NotNil(t, doc.Session)
	assert.Equal(t, "tok-1", doc.Session.Token)
}

func TestLoginFailureKeepsNoSession(t *testing.T) {
	env := newCLIEnv(t, map[string]http.HandlerFunc{
		"POST /api/auth/login": respondJSON(http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"}),
	})

	_, err := env.run("login", "--email", "m@example.com", "--password", "wrong")
	require.Error(t, err)

	out, err := env.run("whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")
}

func TestLogoutClearsSession(t *testing.T) {
	env := newCLIEnv(t, nil)
	env.seedSession(models.Session{Token: "tok", Role: models.RoleStudent, UserID: 3})

	_, err := env.run("logout")
	require.NoError(t, err)

	doc, err := state.NewFile(env.stateFile).Read()
	require.NoError(t, err)
	assert.Nil(t, doc.Session)
}

func TestGuardRefusesAnonymousBeforeBackend(t *testing.T) {
	env := newCLIEnv(t, nil)

	_, err := env.run("connections", "requests")

	var redirect *RedirectError
	require.True(t, errors.As(err, &redirect))
	assert.Equal(t, guard.LandingPath, redirect.To)
	assert.Equal(t, guard.ReasonAnonymous, redirect.Reason)
	assert.Zero(t, env.calls.Load())
}

func TestGuardRefusesWrongRole(t *testing.T) {
	env := newCLIEnv(t, nil)
	env.seedSession(models.Session{Token: "tok", Role: models.RoleStudent, UserID: 3})

	_, err := env.run("resources", "create", "--name", "x")

	var redirect *RedirectError
	require.True(t, errors.As(err, &redirect))
	assert.Equal(t, guard.StudentDashboardPath, redirect.To)
	assert.Equal(t, guard.ReasonWrongRole, redirect.Reason)
	assert.Zero(t, env.calls.Load())

	_, err = env.run("skills", "catalog", "list")
	require.True(t, errors.As(err, &redirect))
	assert.Zero(t, env.calls.Load())
}

func TestSendRequestIsRememberedAcrossRuns(t *testing.T) {
	var sends atomic.Int32
	env := newCLIEnv(t, map[string]http.HandlerFunc{
		"POST /api/connections/send": func(w http.ResponseWriter, _ *http.Request) {
			sends.Add(1)
			w.WriteHeader(http.StatusCreated)
		},
		"GET /api/users": respondJSON(http.StatusOK, []models.User{
			{UserID: 3, Name: "Self"},
			{UserID: 9, Name: "Dana", IsMentor: true},
			{UserID: 10, Name: "Eli"},
		}),
	})
	env.seedSession(models.Session{Token: "tok", Role: models.RoleStudent, UserID: 3})

	out, err := env.run("connections", "send", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "sent to user 9")

	_, err = env.run("connections", "send", "9")
	assert.ErrorIs(t, err, connection.ErrAlreadySent)
	assert.Equal(t, int32(1), sends.Load())

	out, err = env.run("connections", "explore")
	require.NoError(t, err)
	assert.Contains(t, out, "Eli")
	assert.NotContains(t, out, "Dana")
	assert.NotContains(t, out, "Self")
}

func TestAcceptPrintsRemainingRequests(t *testing.T) {
	env := newCLIEnv(t, map[string]http.HandlerFunc{
		"GET /api/connections/requests/3": respondJSON(http.StatusOK, models.PendingRequestsResponse{
			PendingRequests: []models.ConnectionRequest{
				{ConnectionID: 1, UserID: 9, Name: "Dana", State: models.ConnectionPending},
				{ConnectionID: 2, UserID: 10, Name: "Eli", State: models.ConnectionPending},
			},
		}),
		"POST /api/connections/decide": respondJSON(http.StatusOK, nil),
	})
	env.seedSession(models.Session{Token: "tok", Role: models.RoleStudent, UserID: 3})

	out, err := env.run("connections", "accept", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Eli")
	assert.NotContains(t, out, "Dana")
}

func TestArgIDRejectsNonPositive(t *testing.T) {
	_, err := argID([]string{"0"}, 0, "userId")
	assert.Error(t, err)

	_, err = argID([]string{"abc"}, 0, "userId")
	assert.Error(t, err)

	id, err := argID([]string{"42"}, 0, "userId")
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestPrintMessagesPrintsOnlyNewOnes(t *testing.T) {
	var out bytes.Buffer
	messages := []models.Message{
		{MessageID: 1, SenderID: 3, Content: "hi"},
		{MessageID: 2, SenderID: 9, Content: "hello"},
	}

	cursor := printMessages(&out, 3, messages, 0)
	cursor = printMessages(&out, 3, append(messages, models.Message{MessageID: 3, SenderID: 9, Content: "new"}), cursor)

	assert.Equal(t, 3, cursor)
	assert.Equal(t, "you: hi\nthem: hello\nthem: new\n", out.String())
}

func TestPrintMessagesWithoutIDs(t *testing.T) {
	var out bytes.Buffer
	messages := []models.Message{
		{SenderID: 3, Content: "one"},
		{SenderID: 9, Content: "two"},
	}

	cursor := printMessages(&out, 3, messages, 0)
	printMessages(&out, 3, append(messages, models.Message{SenderID: 9, Content: "three"}), cursor)

	assert.Equal(t, "you: one\nthem: two\nthem: three\n", out.String())
}
