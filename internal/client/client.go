// internal/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
)

// Client talks to the MLM backend REST API. It holds no credentials: calls
// that need a signed-in member take the bearer token as an argument.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logrus.FieldLogger
}

// New creates a client for the configured backend
func New(cfg config.BackendConfig, logger logrus.FieldLogger) *Client {
	return NewWithHTTPClient(cfg, &http.Client{Timeout: cfg.Timeout}, logger)
}

// NewWithHTTPClient creates a client that sends requests through httpClient
func NewWithHTTPClient(cfg config.BackendConfig, httpClient *http.Client, logger logrus.FieldLogger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// envelope is the response shape every backend endpoint uses
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// request describes one backend call
type request struct {
	method   string
	path     string
	token    string
	query    url.Values
	body     interface{}
	fallback string
}

// do performs the call and decodes the envelope's data into out (if non-nil).
// Every failure is returned as *APIError carrying the server message or the
// request's fallback text.
func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return &APIError{Message: req.fallback, Err: fmt.Errorf("failed to encode request: %w", err)}
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return &APIError{Message: req.fallback, Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"method": req.method,
			"path":   req.path,
		}).Warn("Backend request failed")
		return &APIError{Message: req.fallback, Err: err}
	}
	defer resp.Body.Close()

	c.logger.WithFields(logrus.Fields{
		"method":      req.method,
		"path":        req.path,
		"status_code": resp.StatusCode,
		"latency":     time.Since(start),
	}).Debug("Backend request completed")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: req.fallback, Err: err}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: messageOr(env, req.fallback)}
	}
	if decodeErr != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: req.fallback, Err: fmt.Errorf("invalid response body: %w", decodeErr)}
	}
	if env.Success != nil && !*env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: messageOr(env, req.fallback)}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &APIError{StatusCode: resp.StatusCode, Message: req.fallback, Err: fmt.Errorf("invalid response data: %w", err)}
		}
	}

	return nil
}

func messageOr(env envelope, fallback string) string {
	if env.Message != "" {
		return env.Message
	}
	if env.Error != "" {
		return env.Error
	}
	return fallback
}

// Page selects a page of a listing
type Page struct {
	Page  int
	Limit int
}

func (p Page) values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", fmt.Sprint(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", fmt.Sprint(p.Limit))
	}
	return v
}
