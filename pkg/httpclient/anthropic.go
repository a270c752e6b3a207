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
// TYPES

// StreamFn is called with each text delta of a streamed message
type StreamFn func(text string)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// AnthropicModels returns the models on the Anthropic-compatible surface
func (c *Client) AnthropicModels(ctx context.Context, opts ...opt.Opt) (*schema.ListModelsResponse, error) {
	var response schema.ListModelsResponse
	if err := c.do(ctx, client.NewRequest(), &response, true, DefaultGetTimeout, opts,
		client.OptPath("anthropic", "v1", "models"),
		client.OptReqHeader("anthropic-version", schema.AnthropicVersion),
	); err != nil {
		return nil, err
	}
	return &response, nil
}

// Messages sends a single user message to the Anthropic-compatible surface
func (c *Client) Messages(ctx context.Context, prompt string, opts ...opt.Opt) (*schema.MessagesResponse, error) {
	request, err := messagesRequestFromOpts(prompt, opts...)
	if err != nil {
		return nil, err
	}

	// Create JSON payload
	payload, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, err
	}

	var response schema.MessagesResponse
	if err := c.do(ctx, payload, &response, true, DefaultPostTimeout, opts,
		client.OptPath("anthropic", "v1", "messages"),
		client.OptReqHeader("anthropic-version", schema.AnthropicVersion),
	); err != nil {
		return nil, err
	}
	return &response, nil
}

// MessagesStream sends a single user message with streaming enabled, calling
// fn with each text delta. The returned response carries the accumulated text
// as its single content block, or no content if no text was streamed.
func (c *Client) MessagesStream(ctx context.Context, prompt string, fn StreamFn, opts ...opt.Opt) (*schema.MessagesResponse, error) {
	request, err := messagesRequestFromOpts(prompt, opts...)
	if err != nil {
		return nil, err
	}
	request.Stream = true

	// Create JSON payload
	payload, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, err
	}

	// Accumulate the response from the events
	var (
		response  schema.MessagesResponse
		text      strings.Builder
		stopped   bool
		streamErr error
	)
	callback := func(event client.TextStreamEvent) error {
		if strings.TrimSpace(event.Data) == "" {
			return nil
		}
		var ev schema.StreamEvent
		if err := event.Json(&ev); err != nil {
			return err
		}
		switch ev.Type {
		case schema.EventMessageStart:
			if ev.Message != nil {
				response.Id = ev.Message.Id
				response.Role = ev.Message.Role
				response.Model = ev.Message.Model
			}
		case schema.EventContentBlockDelta:
			if ev.Delta != nil && ev.Delta.Text != "" {
				text.WriteString(ev.Delta.Text)
				if fn != nil {
					fn(ev.Delta.Text)
				}
			}
		case schema.EventMessageDelta:
			if ev.Delta != nil {
				response.StopReason = ev.Delta.StopReason
			}
		case schema.EventMessageStop:
			stopped = true
		case schema.EventError:
			if ev.Error != nil {
				streamErr = proxycheck.ErrUnexpectedResponse.Withf("%s: %s", ev.Error.Type, ev.Error.Message)
			} else {
				streamErr = proxycheck.ErrUnexpectedResponse.With("error event in stream")
			}
		}
		return nil
	}

	// Pass a non-nil out so the client decodes the event stream
	var discard struct{}
	if err := c.do(ctx, payload, &discard, true, DefaultPostTimeout, opts,
		client.OptPath("anthropic", "v1", "messages"),
		client.OptReqHeader("anthropic-version", schema.AnthropicVersion),
		client.OptReqHeader("Accept", "text/event-stream"),
		client.OptTextStreamCallback(callback),
	); err != nil {
		return nil, err
	}
	if streamErr != nil {
		return nil, streamErr
	}
	if !stopped {
		return nil, proxycheck.ErrUnexpectedResponse.With("stream ended without message_stop")
	}

	// Return the accumulated message
	response.Type = "message"
	if text.Len() > 0 {
		response.Content = []schema.ContentBlock{{Type: "text", Text: text.String()}}
	}
	return &response, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func messagesRequestFromOpts(prompt string, opts ...opt.Opt) (*schema.MessagesRequest, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, proxycheck.ErrBadParameter.With("empty prompt")
	}
	o, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}

	request := &schema.MessagesRequest{
		Model:       schema.DefaultModel,
		MaxTokens:   schema.DefaultMaxTokens,
		Temperature: types.Ptr(float64(schema.DefaultTemperature)),
		Messages:    []schema.Message{{Role: schema.RoleUser, Content: prompt}},
	}
	if model := o.GetString(opt.ModelKey); model != "" {
		request.Model = model
	}
	if o.Has(opt.TemperatureKey) {
		request.Temperature = types.Ptr(o.GetFloat64(opt.TemperatureKey))
	}
	if maxTokens := o.GetUint(opt.MaxTokensKey); maxTokens > 0 {
		request.MaxTokens = maxTokens
	}
	return request, nil
}
