package api

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

	"github.com/dmitrijs2005/devfolio/internal/common"
	"github.com/dmitrijs2005/devfolio/internal/logging"
	"github.com/google/uuid"
)

// Authenticator supplies the bearer token and drops the session when the
// backend reports it expired. session.Store implements it.
type Authenticator interface {
	AccessToken() string
	Invalidate(ctx context.Context)
}

// Client performs requests against the REST API rooted at baseURL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	auth       Authenticator
	logger     logging.Logger
}

// NewClient builds a Client. A nil httpClient is replaced by one with a 30s
// timeout; a nil auth sends no token.
func NewClient(baseURL string, httpClient *http.Client, auth Authenticator, logger logging.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		auth:       auth,
		logger:     logger,
	}
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues GET path and decodes envelope data into T.
func Get[T any](ctx context.Context, c *Client, path string, opts ...CallOption) (T, error) {
	return call[T](ctx, c, http.MethodGet, path, nil, opts...)
}

// Post issues POST path with a JSON body.
func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...CallOption) (T, error) {
	return call[T](ctx, c, http.MethodPost, path, body, opts...)
}

// Put issues PUT path with a JSON body.
func Put[T any](ctx context.Context, c *Client, path string, body any, opts ...CallOption) (T, error) {
	return call[T](ctx, c, http.MethodPut, path, body, opts...)
}

// Delete issues DELETE path. Most delete endpoints return no data; use
// struct{} as T for those.
func Delete[T any](ctx context.Context, c *Client, path string, opts ...CallOption) (T, error) {
	return call[T](ctx, c, http.MethodDelete, path, nil, opts...)
}

func call[T any](ctx context.Context, c *Client, method, path string, body any, opts ...CallOption) (T, error) {
	var zero T

	env, err := c.Do(ctx, method, path, body, opts...)
	if err != nil {
		return zero, err
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return zero, nil
	}

	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return zero, &Error{
			StatusCode: env.StatusCode,
			Message:    fmt.Sprintf("failed to decode %s %s response", method, path),
			Err:        fmt.Errorf("%w: %v", common.ErrRequestFailed, err),
		}
	}
	return out, nil
}

// Do performs the request and returns the envelope of a successful call with
// data left undecoded. Any failure is an *Error.
func (c *Client) Do(ctx context.Context, method, path string, body any, opts ...CallOption) (*Envelope[json.RawMessage], error) {
	o := collect(opts)
	requestID := uuid.NewString()
	ctx = logging.WithAttrs(ctx, "method", method, "path", path, "request_id", requestID)

	req, err := c.newRequest(ctx, method, path, requestID, body, o)
	if err != nil {
		return nil, &Error{Message: err.Error(), Err: fmt.Errorf("%w: %v", common.ErrRequestFailed, err)}
	}

	c.logger.Debug(ctx, "api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "api transport failure", "error", err)
		return nil, &Error{Message: MessageNetwork, Err: fmt.Errorf("%w: %v", common.ErrNetwork, err)}
	}
	defer resp.Body.Close()

	env := decodeEnvelope(resp)

	c.logger.Debug(ctx, "api response", "status", resp.StatusCode)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && env.Success {
		return env, nil
	}

	return nil, c.failure(ctx, resp.StatusCode, env, o)
}

func (c *Client) newRequest(ctx context.Context, method, path, requestID string, body any, o callOptions) (*http.Request, error) {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if q := o.query.Encode(); q != "" {
		u += "?" + q
	}

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeaderName, requestID)

	if !o.anonymous && c.auth != nil {
		if token := c.auth.AccessToken(); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
		}
	}
	return req, nil
}

// decodeEnvelope never fails: an unreadable body yields an envelope
// synthesized from the status line.
func decodeEnvelope(resp *http.Response) *Envelope[json.RawMessage] {
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	synthesized := &Envelope[json.RawMessage]{
		Success:    ok,
		Message:    synthesizedMessage(resp.StatusCode),
		StatusCode: resp.StatusCode,
	}

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		synthesized.Success = false
		return synthesized
	}
	if len(bytes.TrimSpace(buf)) == 0 {
		return synthesized
	}

	var env rawEnvelope
	if err := json.Unmarshal(buf, &env); err != nil {
		synthesized.Success = false
		return synthesized
	}
	if env.StatusCode == 0 {
		env.StatusCode = resp.StatusCode
	}
	return &env
}

func (c *Client) failure(ctx context.Context, code int, env *Envelope[json.RawMessage], o callOptions) error {
	msg := env.Message
	if msg == "" {
		if code >= 200 && code < 300 {
			msg = MessageRequestFailed
		} else {
			msg = synthesizedMessage(code)
		}
	}

	apiErr := &Error{StatusCode: code, Message: msg, Errors: env.Errors, Err: common.ErrRequestFailed}

	switch {
	case code == http.StatusUnauthorized && o.anonymous:
		// bad credentials; keep the server's wording
	case code == http.StatusUnauthorized && o.keepSessionOn401:
		apiErr.Err = common.ErrFeatureUnavailable
	case code == http.StatusUnauthorized:
		apiErr.Message = MessageSessionExpired
		apiErr.Err = common.ErrSessionExpired
		if c.auth != nil {
			c.auth.Invalidate(ctx)
		}
	case code == http.StatusForbidden:
		apiErr.Message = MessageForbidden
		apiErr.Err = common.ErrForbidden
	}

	return apiErr
}

// IsSessionExpired reports whether err ended the session.
func IsSessionExpired(err error) bool {
	return errors.Is(err, common.ErrSessionExpired)
}
