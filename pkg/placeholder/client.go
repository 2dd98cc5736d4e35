// Package placeholder is a thin client for the JSONPlaceholder REST API.
package placeholder

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samvad-hq/placeholder-checklist/pkg/httpclient"
)

const (
	// DefaultBaseURL is the public JSONPlaceholder endpoint.
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"
	// DefaultTimeout bounds every call made by a default transport.
	DefaultTimeout = 60 * time.Second
)

// Client issues GET and PUT requests against a fixed endpoint.
type Client struct {
	endpoint string
	http     httpclient.Client
	log      Logger
}

// NewClient builds a client for endpoint. A nil transport falls back to a
// resty client bounded by DefaultTimeout.
func NewClient(endpoint string, transport httpclient.Client, log Logger) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint is empty")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("endpoint %q must be an absolute URL", endpoint)
	}
	if transport == nil {
		transport = httpclient.NewRestyClient(DefaultTimeout)
	}
	return &Client{
		endpoint: endpoint,
		http:     transport,
		log:      ensureLogger(log),
	}, nil
}

// Endpoint returns the base URL the client was built with.
func (c *Client) Endpoint() string { return c.endpoint }

// Request sends method to endpoint/resource and shapes the result:
// ShapeJSON yields the decoded body, ShapeRaw the body bytes and ShapeFull a
// *Response. Unsupported methods and shapes fail before anything is sent.
func (c *Client) Request(ctx context.Context, method, resource string, body any, shape Shape) (any, error) {
	m, ok := normalizeMethod(method)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}
	if !shape.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedShape, string(shape))
	}

	target := c.endpoint + "/" + resource
	start := time.Now()

	var (
		resp httpclient.Response
		err  error
	)
	switch m {
	case http.MethodGet:
		resp, err = c.http.Get(ctx, target, nil)
	case http.MethodPut:
		resp, err = c.http.Put(ctx, target, body, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", m, target, err)
	}

	c.log.DebugObj("request completed", "request_meta", map[string]any{
		"method":     m,
		"url":        target,
		"status":     resp.StatusCode(),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	switch shape {
	case ShapeRaw:
		return resp.Body(), nil
	case ShapeFull:
		return newResponse(resp), nil
	default:
		v, err := Decode(resp.Body())
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", m, target, err)
		}
		return v, nil
	}
}

// Get fetches resource/ or, with WithID, resource/<id>.
func (c *Client) Get(ctx context.Context, resource string, opts ...Option) (any, error) {
	o := buildOptions(opts)
	return c.Request(ctx, http.MethodGet, o.path(resource), nil, o.shape)
}

// Put sends body to resource/ or, with WithID, resource/<id>.
func (c *Client) Put(ctx context.Context, resource string, body any, opts ...Option) (any, error) {
	o := buildOptions(opts)
	return c.Request(ctx, http.MethodPut, o.path(resource), body, o.shape)
}
