package schema

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ListModelsResponse is returned by both /v1/models and /anthropic/v1/models
type ListModelsResponse struct {
	Object string  `json:"object,omitempty"`
	Data   []Model `json:"data"`
}

// Model is a single entry in a model listing
type Model struct {
	Id      string `json:"id"`
	Object  string `json:"object,omitempty"`
	Created int64  `json:"created,omitempty"`
	OwnedBy string `json:"owned_by,omitempty"`
}

// Message is a chat message in either API shape; both use plain string content
// for the requests sent here
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest is the body of POST /v1/chat/completions
type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature *float64  `json:"temperature,omitempty"`
	MaxTokens   *uint     `json:"max_tokens,omitempty"`
}

// ChatCompletionResponse is the subset of an OpenAI chat completion read back
type ChatCompletionResponse struct {
	Id      string       `json:"id,omitempty"`
	Object  string       `json:"object,omitempty"`
	Model   string       `json:"model,omitempty"`
	Choices []ChatChoice `json:"choices"`
	Usage   *ChatUsage   `json:"usage,omitempty"`
}

type ChatChoice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Ids returns the model identifiers in listing order
func (r ListModelsResponse) Ids() []string {
	result := make([]string, 0, len(r.Data))
	for _, m := range r.Data {
		result = append(result, m.Id)
	}
	return result
}

// Content returns the first choice's message content, and false when the
// response carries no choices
func (r ChatCompletionResponse) Content() (string, bool) {
	if len(r.Choices) == 0 {
		return "", false
	}
	return r.Choices[0].Message.Content, true
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r ListModelsResponse) String() string {
	return types.Stringify(r)
}

func (r ChatCompletionRequest) String() string {
	return types.Stringify(r)
}

func (r ChatCompletionResponse) String() string {
	return types.Stringify(r)
}
