package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/socialfeed/internal/client/storage"
	"github.com/dmitrijs2005/socialfeed/internal/common"
	"github.com/dmitrijs2005/socialfeed/internal/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// HTTPClient implements Client over net/http.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	stores  storage.Stores
	log     logging.Logger
	metrics *Metrics

	// applied to a copy of http once all options ran
	jar     http.CookieJar
	timeout time.Duration

	mu    sync.RWMutex
	token string
}

type Option func(*HTTPClient)

// WithHTTPClient uses h as the template for requests. h itself is never
// modified; the client works on a copy with a cookie jar and timeout
// applied.
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) {
		if h != nil {
			c.http = h
		}
	}
}

// WithStores sets where the token is persisted. Without it both stores are
// in-memory.
func WithStores(s storage.Stores) Option {
	return func(c *HTTPClient) { c.stores = s }
}

// WithCookieJar sets the jar holding the server's cookies, csrftoken
// included.
func WithCookieJar(j http.CookieJar) Option {
	return func(c *HTTPClient) { c.jar = j }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func WithMetrics(m *Metrics) Option {
	return func(c *HTTPClient) { c.metrics = m }
}

// WithTimeout bounds every request. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

// NewHTTPClient creates a client for the API rooted at baseURL, e.g.
// "http://127.0.0.1:8000/api".
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &HTTPClient{
		baseURL: u,
		http:    &http.Client{},
		stores:  storage.NewMemoryStores(),
		log:     logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}

	h := *c.http
	switch {
	case c.jar != nil:
		h.Jar = c.jar
	case h.Jar == nil:
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		h.Jar = jar
	}
	if c.timeout > 0 {
		h.Timeout = c.timeout
	}
	c.http = &h
	return c, nil
}

// InitToken loads a token persisted by an earlier run, tab-scoped store
// first, and returns it ("" if none).
func (c *HTTPClient) InitToken(ctx context.Context) string {
	for _, s := range []storage.Store{c.stores.Tab, c.stores.Durable} {
		v, err := s.Get(ctx, storage.KeyAuthToken)
		if err != nil {
			c.log.Warn(ctx, "unable to read stored token", "error", err)
			continue
		}
		if len(v) > 0 {
			c.mu.Lock()
			c.token = string(v)
			c.mu.Unlock()
			return string(v)
		}
	}
	return ""
}

// SetToken holds token in memory and writes it to the durable store when
// remember is set, to the tab-scoped store otherwise. The other store is
// cleared so only one copy exists.
func (c *HTTPClient) SetToken(ctx context.Context, token string, remember bool) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	chosen, other := c.stores.Pick(remember)
	if err := chosen.Set(ctx, storage.KeyAuthToken, []byte(token)); err != nil {
		c.log.Warn(ctx, "failed to write token to storage", "error", err)
	}
	if err := other.Delete(ctx, storage.KeyAuthToken); err != nil {
		c.log.Warn(ctx, "failed to remove token from storage", "error", err)
	}
}

// ClearToken forgets the token in memory and in both stores.
func (c *HTTPClient) ClearToken(ctx context.Context) {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()

	for _, s := range []storage.Store{c.stores.Tab, c.stores.Durable} {
		if err := s.Delete(ctx, storage.KeyAuthToken); err != nil {
			c.log.Warn(ctx, "failed to remove token from storage", "error", err)
		}
	}
}

func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) HasToken() bool {
	return c.Token() != ""
}

// RequestOptions describes one API call. At most one of JSON and Form is
// used; Form wins.
type RequestOptions struct {
	Method  string
	Headers http.Header
	JSON    any
	Form    *Form
}

func isSafeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

// Request performs an authenticated call to path (relative to the base
// URL) and decodes a JSON response into out, which may be nil. A 204
// response leaves out untouched.
func (c *HTTPClient) Request(ctx context.Context, path string, opts RequestOptions, out any) error {
	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = http.MethodGet
	}

	body, contentType, err := encodeBody(opts)
	if err != nil {
		return err
	}

	header := http.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	for k, vs := range opts.Headers {
		header[http.CanonicalHeaderKey(k)] = vs
	}
	if tok := c.Token(); tok != "" {
		header.Set(common.AuthHeaderName, common.AuthScheme+" "+tok)
	}
	if !isSafeMethod(method) {
		c.attachCSRF(header)
	}

	resp, err := c.send(ctx, method, path, body, header)
	if err != nil {
		return err
	}
	return c.decode(ctx, resp, out, errorMessage)
}

func encodeBody(opts RequestOptions) (io.Reader, string, error) {
	if opts.Form != nil {
		buf, ct, err := opts.Form.encode()
		if err != nil {
			return nil, "", fmt.Errorf("encode form: %w", err)
		}
		return buf, ct, nil
	}
	if opts.JSON == nil {
		return nil, "application/json", nil
	}
	b, err := json.Marshal(opts.JSON)
	if err != nil {
		return nil, "", fmt.Errorf("encode json: %w", err)
	}
	return bytes.NewReader(b), "application/json", nil
}

// csrfToken returns the csrftoken cookie the server set for the API host.
func (c *HTTPClient) csrfToken() string {
	for _, ck := range c.http.Jar.Cookies(c.baseURL) {
		if ck.Name == common.CSRFCookieName {
			return ck.Value
		}
	}
	return ""
}

func (c *HTTPClient) attachCSRF(h http.Header) {
	if tok := c.csrfToken(); tok != "" {
		h.Set(common.CSRFHeaderName, tok)
	}
}

func (c *HTTPClient) endpoint(path string) string {
	return c.baseURL.String() + path
}

// send executes the request. Transport failures are wrapped in
// ErrUnavailable; the caller owns the response body.
func (c *HTTPClient) send(ctx context.Context, method, path string, body io.Reader, header http.Header) (*http.Response, error) {
	fullURL := c.endpoint(path)

	ctx, span := tracer.Start(ctx, "api "+method, trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header = header

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.observe(method, 0, elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		c.log.Error(ctx, "API error during fetch", "method", method, "url", fullURL, "error", err)
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}

	c.metrics.observe(method, resp.StatusCode, elapsed)
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, resp.Status)
	}
	c.log.Debug(ctx, "api request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", elapsed)
	return resp, nil
}

// decode consumes resp. Non-2xx statuses become *Error with a message from
// msgFn.
func (c *HTTPClient) decode(ctx context.Context, resp *http.Response, out any, msgFn func(int, []byte) string) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(resp.Body)
		apiErr := &Error{Status: resp.StatusCode, Message: msgFn(resp.StatusCode, b), Body: b}
		c.log.Error(ctx, "API error", "url", resp.Request.URL.String(), "status", resp.StatusCode, "error", apiErr.Message)
		return apiErr
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s response: %w", resp.Request.URL.Path, err)
	}
	return nil
}
