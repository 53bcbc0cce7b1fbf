// Package client is the Go SDK for the teamup API. It wraps the REST
// transport, pipes responses through the viewmodel converters and
// translates transport failures into the apperrors taxonomy, so every
// error a caller sees resolves to one user-visible message.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"teamup/apperrors"
	"teamup/viewmodel"
)

// Doer is the transport the client depends on; *http.Client satisfies
// it and tests substitute their own.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to a teamup server. It is not safe for concurrent
// mutation of the authenticated user; UI code drives it from a single
// event loop.
type Client struct {
	baseURL string
	http    Doer
	storage SessionStorage

	token string
	user  *viewmodel.User
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient substitutes the transport.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

// WithStorage substitutes the durable session storage.
func WithStorage(s SessionStorage) Option {
	return func(c *Client) { c.storage = s }
}

// New creates a client for the given base URL. The authenticated user,
// if one was persisted, is restored from storage once at construction.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		storage: NewMemStorage(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.restoreSession()
	return c
}

// CurrentUser returns the authenticated user restored from storage or
// set by the last login, and whether one exists.
func (c *Client) CurrentUser() (viewmodel.User, bool) {
	if c.user == nil {
		return viewmodel.User{}, false
	}
	return *c.user, true
}

// errorBody is the shape the server uses for failures.
type errorBody struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors"`
}

// do performs one request/response cycle. A non-2xx status translates
// into the error taxonomy; the response body, when out is non-nil,
// decodes into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(apperrors.Unknown, "Something went wrong, try again", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return apperrors.Wrap(apperrors.Unknown, "Something went wrong, try again", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.Unknown, "Something went wrong, try again", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var serverErr errorBody
		_ = json.NewDecoder(resp.Body).Decode(&serverErr)
		return translateStatus(resp.StatusCode, serverErr)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperrors.Wrap(apperrors.MalformedResponse,
				"Server response could not be decoded", err)
		}
	}
	return nil
}

// translateStatus maps a failed response into the taxonomy, preserving
// per-field messages on validation failures.
func translateStatus(status int, body errorBody) error {
	message := body.Error
	if message == "" {
		message = "Something went wrong, try again"
	}
	appErr := apperrors.FromStatus(status, message)
	if appErr.Kind == apperrors.Validation && len(body.Errors) > 0 {
		appErr.Fields = body.Errors
		appErr.Message = "Form contains invalid fields"
	}
	return appErr
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func pathEscape(segment string) string {
	return url.PathEscape(segment)
}

func fmtPath(format string, segments ...string) string {
	escaped := make([]interface{}, len(segments))
	for i, s := range segments {
		escaped[i] = pathEscape(s)
	}
	return fmt.Sprintf(format, escaped...)
}
