package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/careerconnect/connect-client/internal/connection"
	"github.com/careerconnect/connect-client/internal/crud"
	"github.com/careerconnect/connect-client/internal/messaging"
	"github.com/careerconnect/connect-client/internal/middleware"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/services"
	"github.com/careerconnect/connect-client/internal/session"
	apperrors "github.com/careerconnect/connect-client/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var mentorSession = models.Session{Token: "tok", Role: models.RoleMentor, UserID: 7}

// sessionRouter returns a router whose requests carry sess
func sessionRouter(sess models.Session) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		manager := session.NewManager(session.NewMemoryPersister(), time.Hour)
		if sess.IsAuthenticated() {
			_ = manager.Login(sess.Token, sess.Role, sess.ProfileImagePath, sess.UserID)
		}
		c.Set(middleware.SessionContextKey, manager)
		c.Next()
	})
	return router
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestAuthHandler_LoginStoresSession(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("Login", mock.Anything, mock.Anything, &models.LoginRequest{Email: "a@b.co", Password: "pw"}).
		Run(func(args mock.Arguments) {
			store := args.Get(1).(session.Store)
			require.NoError(t, store.Login("tok", models.RoleStudent, "", 3))
		}).
		Return(&models.LoginView{Success: true, Role: models.RoleStudent, UserID: 3, RedirectTo: "/dashboard"}, nil)

	handler := NewAuthHandler(auth, new(MockConnectionService))
	router := sessionRouter(models.Session{})
	router.POST("/login", handler.Login)

	w := serve(router, "POST", "/login", `{"email":"a@b.co","password":"pw"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	var view models.LoginView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "/dashboard", view.RedirectTo)
	auth.AssertExpectations(t)
}

func TestAuthHandler_LoginRejectsMalformedEmail(t *testing.T) {
	auth := new(MockAuthService)
	handler := NewAuthHandler(auth, new(MockConnectionService))
	router := sessionRouter(models.Session{})
	router.POST("/login", handler.Login)

	w := serve(router, "POST", "/login", `{"email":"nope","password":"pw"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", decodeError(t, w))
	auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthHandler_LoginBackendFailure(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &apperrors.ServerError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials", Operation: "login"})

	handler := NewAuthHandler(auth, new(MockConnectionService))
	router := sessionRouter(models.Session{})
	router.POST("/login", handler.Login)

	w := serve(router, "POST", "/login", `{"email":"a@b.co","password":"bad"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeError(t, w))
}

func TestAuthHandler_LogoutForgetsWorkflow(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("Logout", mock.Anything).Return(nil)
	conns := new(MockConnectionService)
	conns.On("Forget", 7).Return()

	handler := NewAuthHandler(auth, conns)
	router := sessionRouter(mentorSession)
	router.POST("/logout", handler.Logout)

	w := serve(router, "POST", "/logout", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redirectTo":"/login"`)
	conns.AssertExpectations(t)
}

func TestAuthHandler_LogoutWithoutSession(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("Logout", mock.Anything).Return(nil)
	conns := new(MockConnectionService)

	handler := NewAuthHandler(auth, conns)
	router := sessionRouter(models.Session{})
	router.POST("/logout", handler.Logout)

	w := serve(router, "POST", "/logout", "")

	assert.Equal(t, http.StatusOK, w.Code)
	conns.AssertNotCalled(t, "Forget", mock.Anything)
}

func TestConnectionHandler_SendRequest(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		serviceErr error
		callsSvc   bool
		wantStatus int
		wantError  string
	}{
		{name: "sent", path: "/connections/9", callsSvc: true, wantStatus: http.StatusCreated},
		{name: "already sent", path: "/connections/9", serviceErr: connection.ErrAlreadySent, callsSvc: true,
			wantStatus: http.StatusConflict, wantError: "Connection request already sent."},
		{name: "in flight", path: "/connections/9", serviceErr: connection.ErrSendInFlight, callsSvc: true,
			wantStatus: http.StatusConflict, wantError: "Already processing. Please wait."},
		{name: "network", path: "/connections/9", serviceErr: apperrors.NetworkError("send", errors.New("refused")), callsSvc: true,
			wantStatus: http.StatusBadGateway},
		{name: "bad id", path: "/connections/abc", wantStatus: http.StatusBadRequest, wantError: "Invalid userId"},
		{name: "zero id", path: "/connections/0", wantStatus: http.StatusBadRequest, wantError: "Invalid userId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockConnectionService)
			if tt.callsSvc {
				svc.On("SendRequest", mock.Anything, mentorSession, 9).Return(tt.serviceErr)
			}

			handler := NewConnectionHandler(svc)
			router := sessionRouter(mentorSession)
			router.POST("/connections/:userId", handler.SendRequest)

			w := serve(router, "POST", tt.path, "")

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, w))
			}
			if !tt.callsSvc {
				svc.AssertNotCalled(t, "SendRequest", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestConnectionHandler_Decide(t *testing.T) {
	t.Run("accept returns remaining requests", func(t *testing.T) {
		remaining := &models.RequestsView{Requests: []models.ConnectionRequest{{ConnectionID: 2, UserID: 4, Name: "Bo"}}}
		svc := new(MockConnectionService)
		svc.On("Decide", mock.Anything, mentorSession, 1, models.ActionAccept).Return(remaining, nil)

		router := sessionRouter(mentorSession)
		router.POST("/requests/:connectionId", NewConnectionHandler(svc).Decide)

		w := serve(router, "POST", "/requests/1", `{"action":"accept"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		var view models.RequestsView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Equal(t, remaining.Requests, view.Requests)
	})

	t.Run("unknown action", func(t *testing.T) {
		svc := new(MockConnectionService)
		router := sessionRouter(mentorSession)
		router.POST("/requests/:connectionId", NewConnectionHandler(svc).Decide)

		w := serve(router, "POST", "/requests/1", `{"action":"maybe"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Decide", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("decision in flight", func(t *testing.T) {
		svc := new(MockConnectionService)
		svc.On("Decide", mock.Anything, mentorSession, 1, models.ActionReject).Return(nil, connection.ErrDecisionInFlight)
		router := sessionRouter(mentorSession)
		router.POST("/requests/:connectionId", NewConnectionHandler(svc).Decide)

		w := serve(router, "POST", "/requests/1", `{"action":"reject"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperrors.InvalidInputError("name", "is required"), http.StatusBadRequest},
		{services.ErrNotOwner, http.StatusForbidden},
		{&apperrors.ServerError{StatusCode: 409, Operation: "op"}, http.StatusConflict},
		{&apperrors.ServerError{StatusCode: 404, Operation: "op"}, http.StatusNotFound},
		{&apperrors.ServerError{StatusCode: 401, Operation: "op"}, http.StatusUnauthorized},
		{&apperrors.ServerError{StatusCode: 500, Operation: "op"}, http.StatusBadGateway},
		{apperrors.NetworkError("op", errors.New("dial")), http.StatusBadGateway},
		{crud.ErrNotSupported, http.StatusMethodNotAllowed},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestResourceHandler_FormIsServedDegraded(t *testing.T) {
	svc := new(MockResourceService)
	svc.On("Form", mock.Anything, mentorSession).
		Return(&models.ResourceFormView{Skills: []models.Skill{{SkillID: 1, SkillName: "Go"}}, Error: "Some form data could not be loaded. Please try again later."})

	router := sessionRouter(mentorSession)
	router.GET("/createresource", NewResourceHandler(svc).Form)

	w := serve(router, "GET", "/createresource", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var view models.ResourceFormView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Len(t, view.Skills, 1)
	assert.Zero(t, view.MentorID)
	assert.NotEmpty(t, view.Error)
}

func TestResourceHandler_ListPassesFilters(t *testing.T) {
	svc := new(MockResourceService)
	svc.On("List", mock.Anything, mentorSession, "intro", 3).Return(&models.ResourceListView{}, nil)

	router := sessionRouter(mentorSession)
	router.GET("/resources", NewResourceHandler(svc).List)

	w := serve(router, "GET", "/resources?search=intro&skill=3", "")

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestJobHandler_CreateNetworkFailure(t *testing.T) {
	svc := new(MockJobService)
	svc.On("Create", mock.Anything, mentorSession, mock.AnythingOfType("*models.CreateJobRequest")).
		Return(nil, apperrors.NetworkError("create job", errors.New("refused")))

	router := sessionRouter(mentorSession)
	router.POST("/jobs", NewJobHandler(svc).Create)

	w := serve(router, "POST", "/jobs", `{"title":"Backend intern","company":"Acme"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, apperrors.UserMessage(apperrors.ErrNetwork), decodeError(t, w))
}

func TestJobHandler_ListEmpty(t *testing.T) {
	svc := new(MockJobService)
	svc.On("List", mock.Anything, mentorSession).Return(&models.JobsView{Message: "No jobs found"}, nil)

	router := sessionRouter(mentorSession)
	router.GET("/jobs", NewJobHandler(svc).List)

	w := serve(router, "GET", "/jobs", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No jobs found")
}

func TestMessageHandler_Send(t *testing.T) {
	svc := new(MockMessagingService)
	svc.On("Send", mock.Anything, mentorSession, 9, "hello").Return(nil)

	router := sessionRouter(mentorSession)
	router.POST("/messages/:peerId", NewMessageHandler(svc, new(MockConnectionService)).Send)

	w := serve(router, "POST", "/messages/9", `{"content":"hello"}`)
	assert.Equal(t, http.StatusAccepted, w.Code)

	w = serve(router, "POST", "/messages/9", `{"content":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertNumberOfCalls(t, "Send", 1)
}

// threadTransport serves a fixed conversation
type threadTransport struct {
	messages []models.Message
}

func (f *threadTransport) FetchThread(_ context.Context, _, _ int) ([]models.Message, error) {
	return f.messages, nil
}

func (f *threadTransport) SendMessage(_ context.Context, _, _ int, _ string) error {
	return nil
}

func TestMessageHandler_StreamPushesThread(t *testing.T) {
	transport := &threadTransport{messages: []models.Message{{MessageID: 1, SenderID: 9, ReceiverID: 7, Content: "hi"}}}
	svc := new(MockMessagingService)
	svc.On("Open", mentorSession, 9).Return(messaging.NewPoller(transport, 7, 9, time.Hour))

	router := sessionRouter(mentorSession)
	router.GET("/messages/:peerId/stream", NewMessageHandler(svc, new(MockConnectionService)).Stream)
	srv := httptest.NewServer(router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", srv.URL+"/messages/9/stream", http.NoBody)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	reader := bufio.NewReader(resp.Body)
	var event, data string
	for data == "" {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimPrefix(line, "event:")
		case strings.HasPrefix(line, "data:"):
			data = strings.TrimPrefix(line, "data:")
		}
	}

	assert.Equal(t, "thread", event)
	var view models.ThreadView
	require.NoError(t, json.Unmarshal([]byte(data), &view))
	assert.Equal(t, 9, view.PeerID)
	require.Len(t, view.Messages, 1)
	assert.Equal(t, "hi", view.Messages[0].Content)
}

type failingTransport struct{}

func (failingTransport) FetchThread(_ context.Context, _, _ int) ([]models.Message, error) {
	return nil, apperrors.NetworkError("fetchThread", errors.New("connection refused"))
}

func (failingTransport) SendMessage(_ context.Context, _, _ int, _ string) error {
	return nil
}

func TestMessageHandler_StreamReportsFailedRefresh(t *testing.T) {
	svc := new(MockMessagingService)
	svc.On("Open", mentorSession, 9).Return(messaging.NewPoller(failingTransport{}, 7, 9, 50*time.Millisecond))

	router := sessionRouter(mentorSession)
	router.GET("/messages/:peerId/stream", NewMessageHandler(svc, new(MockConnectionService)).Stream)
	srv := httptest.NewServer(router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", srv.URL+"/messages/9/stream", http.NoBody)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	reader := bufio.NewReader(resp.Body)
	var event, data string
	for data == "" {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimPrefix(line, "event:")
		case strings.HasPrefix(line, "data:"):
			data = strings.TrimPrefix(line, "data:")
		}
	}

	assert.Equal(t, "error", event)
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal([]byte(data), &body))
	assert.Equal(t, apperrors.UserMessage(apperrors.ErrNetwork), body.Message)
}

func TestMessageHandler_StreamRejectsSelf(t *testing.T) {
	svc := new(MockMessagingService)
	router := sessionRouter(mentorSession)
	router.GET("/messages/:peerId/stream", NewMessageHandler(svc, new(MockConnectionService)).Stream)

	w := serve(router, "GET", fmt.Sprintf("/messages/%d/stream", mentorSession.UserID), "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
}
