package services_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/pkg/backend"
	"github.com/careerconnect/connect-client/pkg/httpclient"
	"github.com/careerconnect/connect-client/pkg/logger"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

var testSession = models.Session{Token: "tok", Role: models.RoleMentor, UserID: 7}

// newBackend starts a fake backend serving routes ("METHOD /path" patterns)
// and returns a client pointed at it.
func newBackend(t *testing.T, routes map[string]http.HandlerFunc) *backend.Client {
	t.Helper()

	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.HandleFunc(pattern, handler)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return backend.NewClient(
		backend.Config{BaseURL: srv.URL, DisableCircuitBreaker: true},
		httpclient.NewStandardClient(5*time.Second),
	)
}

func respond(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}
