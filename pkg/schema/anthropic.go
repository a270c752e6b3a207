package schema

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// MessagesRequest is the body of POST /anthropic/v1/messages. max_tokens and
// temperature sit at the top level.
type MessagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   uint      `json:"max_tokens"`
	Temperature *float64  `json:"temperature,omitempty"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream,omitempty"`
}

// MessagesResponse is the subset of an Anthropic message read back
type MessagesResponse struct {
	Id         string         `json:"id,omitempty"`
	Type       string         `json:"type,omitempty"`
	Role       string         `json:"role,omitempty"`
	Model      string         `json:"model,omitempty"`
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason,omitempty"`
	Usage      *MessagesUsage `json:"usage,omitempty"`
}

type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type MessagesUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// StreamEvent is one SSE data payload of a streamed message
type StreamEvent struct {
	Type    string            `json:"type"`
	Index   int               `json:"index,omitempty"`
	Message *MessagesResponse `json:"message,omitempty"`
	Delta   *StreamDelta      `json:"delta,omitempty"`
	Error   *StreamError      `json:"error,omitempty"`
}

type StreamDelta struct {
	Type       string `json:"type,omitempty"`
	Text       string `json:"text,omitempty"`
	StopReason string `json:"stop_reason,omitempty"`
}

type StreamError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	EventMessageStart      = "message_start"
	EventContentBlockStart = "content_block_start"
	EventContentBlockDelta = "content_block_delta"
	EventContentBlockStop  = "content_block_stop"
	EventMessageDelta      = "message_delta"
	EventMessageStop       = "message_stop"
	EventPing              = "ping"
	EventError             = "error"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Text returns the text of the first content block, and false when the
// response carries no content
func (r MessagesResponse) Text() (string, bool) {
	if len(r.Content) == 0 {
		return "", false
	}
	return r.Content[0].Text, true
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r MessagesRequest) String() string {
	return types.Stringify(r)
}

func (r MessagesResponse) String() string {
	return types.Stringify(r)
}
