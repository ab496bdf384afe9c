package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hongminglow/hotel-admin/internal/middleware"
)

// DefaultBaseURL is used when no API address is configured.
const DefaultBaseURL = "http://localhost:5000/api"

const maxBodyBytes = 8 << 20

// ErrBodyTooLarge is wrapped by the error returned for responses over the size cap.
var ErrBodyTooLarge = errors.New("response body too large")

// TokenSource supplies the persisted bearer token and tears the session
// down when the API rejects it. session.Manager implements it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate(ctx context.Context) error
}

// ExpiryHandler is notified after a 401 has cleared the session. The host
// shell decides how to navigate; the client never does.
type ExpiryHandler func(ctx context.Context, err *Error)

// Client sends API requests with the session's bearer credential attached.
// It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	tokens     TokenSource
	onExpired  ExpiryHandler
	logger     *slog.Logger
	timeout    time.Duration

	mu      sync.RWMutex
	baseURL string
	headers http.Header
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, transport chain included.
// The client is copied; hc itself is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// OnSessionExpired registers the handler fired once per 401 response.
func OnSessionExpired(fn ExpiryHandler) Option {
	return func(c *Client) { c.onExpired = fn }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTimeout bounds each request, including reading the body. It applies
// whatever HTTP client ends up in use, regardless of option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New builds a client for baseURL with JSON default headers.
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	hc := *c.httpClient
	c.httpClient = &hc
	if c.timeout > 0 {
		c.httpClient.Timeout = c.timeout
	}
	if c.httpClient.Transport == nil {
		c.httpClient.Transport = middleware.Chain(http.DefaultTransport,
			middleware.RequestID,
			middleware.Logging(c.logger),
		)
	}
	if err := c.Configure(baseURL, nil); err != nil {
		return nil, err
	}
	return c, nil
}

// Configure sets the remote endpoint and the static headers sent with every
// request. Content-Type and Accept default to application/json.
func (c *Client) Configure(baseURL string, defaultHeaders map[string]string) error {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("base url %q must be an absolute http(s) url", baseURL)
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "application/json")
	for k, v := range defaultHeaders {
		headers.Set(k, v)
	}

	c.mu.Lock()
	c.baseURL = strings.TrimRight(u.String(), "/")
	c.headers = headers
	c.mu.Unlock()
	return nil
}

// BaseURL returns the configured endpoint.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// RequestOption adjusts a single request.
type RequestOption func(*http.Request)

func WithQuery(q url.Values) RequestOption {
	return func(r *http.Request) { r.URL.RawQuery = q.Encode() }
}

func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) { r.Header.Set(key, value) }
}

// Do sends method path with body encoded as JSON (raw []byte and io.Reader
// bodies are sent as-is). Non-2xx answers come back as *Error; on 401 the
// session is torn down and the expiry handler fires before Do returns.
func (c *Client) Do(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(req)
	}
	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Method: method, Path: path, Message: "no response from API", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Method: method, Path: path, Status: resp.StatusCode, Message: "read response body", Err: err}
	}
	if len(data) > maxBodyBytes {
		return nil, &Error{
			Kind:    KindServer,
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("response body exceeds %d bytes", maxBodyBytes),
			Err:     ErrBodyTooLarge,
		}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &Response{Status: resp.StatusCode, Header: resp.Header, Body: data, method: method, path: path}, nil
	}

	apiErr := &Error{
		Kind:    kindForStatus(resp.StatusCode),
		Method:  method,
		Path:    path,
		Status:  resp.StatusCode,
		Message: errorMessage(resp.StatusCode, data),
		Body:    data,
	}
	if apiErr.Kind == KindAuth {
		c.expire(ctx, apiErr)
	}
	return nil, apiErr
}

// DoJSON is Do followed by decoding the payload into out.
func (c *Client) DoJSON(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	resp, err := c.Do(ctx, method, path, body, opts...)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	c.mu.RLock()
	base := c.baseURL
	headers := c.headers.Clone()
	c.mu.RUnlock()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	case io.Reader:
		reader = b
	default:
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, base+"/"+strings.TrimLeft(path, "/"), reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header = headers
	if body == nil {
		req.Header.Del("Content-Type")
	}
	return req, nil
}

func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	req.Header.Del("Authorization")
	if c.tokens == nil {
		return nil
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("read session token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

func (c *Client) expire(ctx context.Context, apiErr *Error) {
	ctx = context.WithoutCancel(ctx)
	if c.tokens != nil {
		if err := c.tokens.Invalidate(ctx); err != nil {
			c.logger.ErrorContext(ctx, "clear session after 401", "error", err)
			apiErr.Err = errors.Join(apiErr.Err, err)
		}
	}
	c.logger.InfoContext(ctx, "session expired", "method", apiErr.Method, "path", apiErr.Path)
	if c.onExpired != nil {
		c.onExpired(ctx, apiErr)
	}
}
