package httpclient

import (
	"context"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	types "github.com/mutablelogic/go-server/pkg/types"
	proxycheck "github.com/mutablelogic/proxycheck"
	opt "github.com/mutablelogic/proxycheck/pkg/opt"
	schema "github.com/mutablelogic/proxycheck/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListModels returns the models on the OpenAI-compatible surface
func (c *Client) ListModels(ctx context.Context, opts ...opt.Opt) (*schema.ListModelsResponse, error) {
	var response schema.ListModelsResponse
	if err := c.do(ctx, client.NewRequest(), &response, true, DefaultGetTimeout, opts, c.openaiPath("models")); err != nil {
		return nil, err
	}
	return &response, nil
}

// ChatCompletion sends a single user message to the OpenAI-compatible surface.
// Use WithModel, WithTemperature and WithMaxTokens to change the defaults.
func (c *Client) ChatCompletion(ctx context.Context, prompt string, opts ...opt.Opt) (*schema.ChatCompletionResponse, error) {
	request, err := chatRequestFromOpts(prompt, opts...)
	if err != nil {
		return nil, err
	}

	// Create JSON payload
	payload, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, err
	}

	var response schema.ChatCompletionResponse
	if err := c.do(ctx, payload, &response, true, DefaultPostTimeout, opts, c.openaiPath("chat", "completions")); err != nil {
		return nil, err
	}
	return &response, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func chatRequestFromOpts(prompt string, opts ...opt.Opt) (*schema.ChatCompletionRequest, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, proxycheck.ErrBadParameter.With("empty prompt")
	}
	o, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}

	request := &schema.ChatCompletionRequest{
		Model:       schema.DefaultModel,
		Messages:    []schema.Message{{Role: schema.RoleUser, Content: prompt}},
		Temperature: types.Ptr(float64(schema.DefaultTemperature)),
		MaxTokens:   types.Ptr(uint(schema.DefaultMaxTokens)),
	}
	if model := o.GetString(opt.ModelKey); model != "" {
		request.Model = model
	}
	if o.Has(opt.TemperatureKey) {
		request.Temperature = types.Ptr(o.GetFloat64(opt.TemperatureKey))
	}
	if maxTokens := o.GetUint(opt.MaxTokensKey); maxTokens > 0 {
		request.MaxTokens = types.Ptr(maxTokens)
	}
	return request, nil
}
