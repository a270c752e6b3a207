/*
httpclient implements a client for a proxy which exposes both the
OpenAI-compatible (/v1) and the Anthropic-compatible (/anthropic/v1) APIs,
and for the upstream OpenAI-compatible endpoint the proxy forwards to.
*/
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	// Packages
	uuid "github.com/google/uuid"
	client "github.com/mutablelogic/go-client"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	proxycheck "github.com/mutablelogic/proxycheck"
	opt "github.com/mutablelogic/proxycheck/pkg/opt"
	schema "github.com/mutablelogic/proxycheck/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client wraps the base HTTP client with typed methods for each route
type Client struct {
	*client.Client

	// Bearer token for authenticated routes, may be empty
	token string

	// Path elements placed before the OpenAI-compatible routes
	prefix []string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Per-call timeouts when none is set with WithTimeout
	DefaultGetTimeout  = 10 * time.Second
	DefaultPostTimeout = 30 * time.Second

	// Header which correlates a request with the proxy logs
	RequestIdHeader = "X-Request-Id"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a client for the proxy at url, e.g. "http://localhost:8765".
// The token is sent with authenticated routes only, and may be empty in
// which case those routes fail without making a request.
func New(url, token string, opts ...client.ClientOpt) (*Client, error) {
	return newClient(url, token, []string{"v1"}, opts...)
}

// NewUpstream creates a client for an OpenAI-compatible endpoint which already
// includes the version, e.g. "https://dashscope.aliyuncs.com/compatible-mode/v1".
// Only the OpenAI-compatible methods are meaningful on this client.
func NewUpstream(endpoint, token string, opts ...client.ClientOpt) (*Client, error) {
	return newClient(endpoint, token, nil, opts...)
}

func newClient(url, token string, prefix []string, opts ...client.ClientOpt) (*Client, error) {
	c := new(Client)
	defaults := []client.ClientOpt{
		client.OptEndpoint(url),
		client.OptUserAgent(schema.UserAgent),
	}
	if client, err := client.New(append(defaults, opts...)...); err != nil {
		return nil, err
	} else {
		c.Client = client
	}
	c.token = token
	c.prefix = prefix
	return c, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// HasToken returns true if the client can call authenticated routes
func (c *Client) HasToken() bool {
	return c.token != ""
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// statusTransport records the status code of the last response
type statusTransport struct {
	next http.RoundTripper
	code *int
}

// do performs a request with a deadline. The go-client timeout is disabled so
// that the context deadline is the only limit on the call. Any status other
// than 200 is an error.
func (c *Client) do(ctx context.Context, payload client.Payload, out any, auth bool, timeout time.Duration, opts []opt.Opt, reqopts ...client.RequestOpt) error {
	o, err := opt.Apply(opts...)
	if err != nil {
		return err
	}
	if auth && c.token == "" {
		return proxycheck.ErrUnauthorized.With("no access token")
	}

	// Timeout
	if d := o.GetDuration(opt.TimeoutKey); d > 0 {
		timeout = d
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Request id
	requestId := o.GetString(opt.RequestIdKey)
	if requestId == "" {
		requestId = uuid.NewString()
	}
	var code int
	reqopts = append(reqopts,
		client.OptReqHeader(RequestIdHeader, requestId),
		client.OptNoTimeout(),
		client.OptReqTransport(func(next http.RoundTripper) http.RoundTripper {
			return &statusTransport{next: next, code: &code}
		}),
	)
	if auth {
		reqopts = append(reqopts, client.OptToken(client.Token{Scheme: client.Bearer, Value: c.token}))
	}

	if err := c.DoWithContext(ctx, payload, out, reqopts...); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("request timed out after %v: %w", timeout, context.DeadlineExceeded)
		}
		return err
	}
	if code != http.StatusOK {
		return httpresponse.Err(code)
	}
	return nil
}

// openaiPath returns the path for an OpenAI-compatible route
func (c *Client) openaiPath(elems ...string) client.RequestOpt {
	path := make([]any, 0, len(c.prefix)+len(elems))
	for _, elem := range c.prefix {
		path = append(path, elem)
	}
	for _, elem := range elems {
		path = append(path, elem)
	}
	return client.OptPath(path...)
}

func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}
	resp, err := next.RoundTrip(req)
	if resp != nil {
		*t.code = resp.StatusCode
	}
	return resp, err
}
