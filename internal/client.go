package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultRequestTimeout bounds a single API call
const DefaultRequestTimeout = 30 * time.Second

// Client issues authenticated requests against a Graph-style base endpoint
type Client struct {
	baseURL string
	tokens  TokenProvider
	logger  *Logger
	http    *http.Client
	timeout time.Duration
}

// NewClient creates an API client for the given base URL
func NewClient(baseURL string, tokens TokenProvider, logger *Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		logger:  logger,
		http:    &http.Client{},
		timeout: DefaultRequestTimeout,
	}
}

// SetTimeout overrides the per-request timeout
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
	}
}

// graphErrorBody is the service error envelope
type graphErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Request performs an authenticated call and decodes the 2xx response body
// into out (skipped when out is nil or the body is empty). Caller headers
// override the defaults. Non-2xx responses and transport failures yield an
// APIError; a missing token yields an AuthError.
func (c *Client) Request(ctx context.Context, method, endpoint string, body interface{}, headers map[string]string, out interface{}) error {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		var authErr *AuthError
		if !errors.As(err, &authErr) {
			err = &AuthError{Reason: "token acquisition failed", Err: err}
		}
		return err
	}

	var reqBody io.Reader
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		if body != nil {
			encoded, err := json.Marshal(body)
			if err != nil {
				return fmt.Errorf("failed to encode request body: %w", err)
			}
			reqBody = bytes.NewReader(encoded)
		}
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	c.logger.Log(LogLevelVerbose, "api", fmt.Sprintf("%s %s", method, endpoint), nil)

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("request failed: %v", err), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read response: %v", err), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var envelope graphErrorBody
		if json.Unmarshal(respBody, &envelope) == nil && envelope.Error.Message != "" {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to decode response: %v", err), Err: err}
		}
	}
	return nil
}

// TestConnection calls the who-am-I endpoint. It logs the identity on
// success and warns (without failing) on any error.
func (c *Client) TestConnection(ctx context.Context) bool {
	var identity Identity
	if err := c.Request(ctx, http.MethodGet, "/me", nil, nil, &identity); err != nil {
		c.logger.Warnf("api", "connection test failed: %v", err)
		return false
	}
	c.logger.Infof("api", "connected as %s (%s)", identity.DisplayName, identity.UserPrincipalName)
	return true
}

// Identity returns the signed-in identity from the who-am-I endpoint
func (c *Client) Identity(ctx context.Context) (*Identity, error) {
	var identity Identity
	if err := c.Request(ctx, http.MethodGet, "/me", nil, nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}
