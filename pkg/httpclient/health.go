package httpclient

import (
	"context"

	// Packages
	client "github.com/mutablelogic/go-client"
	opt "github.com/mutablelogic/proxycheck/pkg/opt"
	schema "github.com/mutablelogic/proxycheck/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Health returns the proxy health report. The route is not authenticated.
func (c *Client) Health(ctx context.Context, opts ...opt.Opt) (*schema.HealthResponse, error) {
	var response schema.HealthResponse
	if err := c.do(ctx, client.NewRequest(), &response, false, DefaultGetTimeout, opts, client.OptPath("health")); err != nil {
		return nil, err
	}
	return &response, nil
}
