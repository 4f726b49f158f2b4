package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/careerconnect/connect-client/pkg/circuitbreaker"
	apperrors "github.com/careerconnect/connect-client/pkg/errors"
	"github.com/careerconnect/connect-client/pkg/httpclient"
	"github.com/careerconnect/connect-client/pkg/logger"
	"github.com/careerconnect/connect-client/pkg/metrics"
	"github.com/careerconnect/connect-client/pkg/tracing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	serviceName      = "careerconnect-backend"
	maxResponseBytes = 10 << 20
)

// Config configures the backend client
type Config struct {
	BaseURL               string
	DisableCircuitBreaker bool
}

// Client talks to the careerconnect REST backend. A Client is cheap to copy;
// WithToken returns a per-session view sharing the transport and breaker.
type Client struct {
	baseURL string
	http    httpclient.Client
	breaker *circuitbreaker.Breaker
	token   string
}

// NewClient creates a backend client. Calls are never retried; the circuit
// breaker only makes them fail fast while the backend is down.
func NewClient(cfg Config, httpClient httpclient.Client) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
	}

	if !cfg.DisableCircuitBreaker {
		c.breaker = circuitbreaker.New(circuitbreaker.Settings{
			Name:    serviceName,
			Healthy: countsAsSuccess,
		})
	}

	logger.Info("Backend client initialized",
		zap.String("base_url", c.baseURL),
		zap.Bool("circuit_breaker", c.breaker != nil))

	return c
}

// WithToken returns a copy of the client that authenticates as token
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// BaseURL returns the configured backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Available reports false while the circuit breaker is open
func (c *Client) Available() bool {
	if c.breaker == nil {
		return true
	}
	return c.breaker.Available()
}

// Only transport failures and 5xx answers mean the backend is unhealthy.
// A 409 or a 404 is a perfectly healthy answer.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	if apperrors.Is(err, context.Canceled) {
		return true
	}
	if apperrors.Is(err, apperrors.ErrNetwork) {
		return false
	}
	var serverErr *apperrors.ServerError
	if apperrors.As(err, &serverErr) {
		return serverErr.StatusCode < http.StatusInternalServerError
	}
	return true
}

type request struct {
	operation   string
	method      string
	path        string
	body        []byte
	contentType string
}

func (c *Client) getJSON(ctx context.Context, operation, path string, out any) error {
	return c.do(ctx, request{operation: operation, method: http.MethodGet, path: path}, out)
}

func (c *Client) deleteJSON(ctx context.Context, operation, path string, out any) error {
	return c.do(ctx, request{operation: operation, method: http.MethodDelete, path: path}, out)
}

func (c *Client) sendJSON(ctx context.Context, operation, method, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: failed to encode payload: %w", operation, err)
	}
	return c.do(ctx, request{
		operation:   operation,
		method:      method,
		path:        path,
		body:        body,
		contentType: "application/json",
	}, out)
}

func (c *Client) sendMultipart(ctx context.Context, operation, method, path string, form *multipartForm, out any) error {
	body, contentType, err := form.encode()
	if err != nil {
		return fmt.Errorf("%s: failed to encode form: %w", operation, err)
	}
	return c.do(ctx, request{
		operation:   operation,
		method:      method,
		path:        path,
		body:        body,
		contentType: contentType,
	}, out)
}

// do executes one backend call through the circuit breaker and records it
func (c *Client) do(ctx context.Context, r request, out any) (err error) {
	start := time.Now()
	requestID := uuid.NewString()

	ctx, span := tracing.StartBackendCall(ctx, r.operation, r.method, r.path)
	defer func() { tracing.EndBackendCall(span, err) }()

	call := func() error {
		return c.roundTrip(ctx, r, requestID, out)
	}

	if c.breaker != nil {
		err = c.breaker.Run(call)
		if apperrors.Is(err, circuitbreaker.ErrOpen) {
			err = apperrors.NetworkError(r.operation, err)
		}
	} else {
		err = call()
	}

	duration := metrics.MeasureDuration(start)
	status := metrics.StatusLabel(err)
	metrics.BackendRequestDuration.WithLabelValues(r.operation, status).Observe(duration)
	metrics.BackendRequestTotal.WithLabelValues(r.operation, status).Inc()

	fields := []zap.Field{
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.String("request_id", requestID),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	logger.LogAPICall(serviceName, r.operation, status, duration, fields...)

	return err
}

func (c *Client) roundTrip(ctx context.Context, r request, requestID string, out any) error {
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", r.operation, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.NetworkError(r.operation, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return apperrors.NetworkError(r.operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &apperrors.ServerError{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(data),
			Operation:  r.operation,
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", r.operation, err)
	}
	return nil
}

// extractMessage pulls the human readable message out of an error body.
// The backend uses either {"message": ...} or {"error": ...}.
func extractMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
