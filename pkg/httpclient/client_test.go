package httpclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	// Packages
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	proxycheck "github.com/mutablelogic/proxycheck"
	httpclient "github.com/mutablelogic/proxycheck/pkg/httpclient"
	schema "github.com/mutablelogic/proxycheck/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// HELPERS

// recorder keeps the requests seen by the fake proxy
type recorder struct {
	sync.Mutex
	requests []*http.Request
	bodies   []map[string]any
}

func (r *recorder) add(req *http.Request) {
	r.Lock()
	defer r.Unlock()
	var body map[string]any
	if req.Body != nil {
		_ = json.NewDecoder(req.Body).Decode(&body)
	}
	r.requests = append(r.requests, req)
	r.bodies = append(r.bodies, body)
}

func (r *recorder) last() (*http.Request, map[string]any) {
	r.Lock()
	defer r.Unlock()
	if len(r.requests) == 0 {
		return nil, nil
	}
	return r.requests[len(r.requests)-1], r.bodies[len(r.bodies)-1]
}

func (r *recorder) count() int {
	r.Lock()
	defer r.Unlock()
	return len(r.requests)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// newProxy creates an httptest.Server that mimics the proxy routes
func newProxy(t *testing.T, rec *recorder) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"summary": map[string]any{"total": 2, "healthy": 1, "expired": 1},
		})
	})
	mux.HandleFunc("GET /v1/models", func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		writeJSON(w, http.StatusOK, map[string]any{
			"object": "list",
			"data":   []map[string]any{{"id": "qwen3-coder-plus"}, {"id": "qwen3-coder-flash"}},
		})
	})
	mux.HandleFunc("POST /v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		writeJSON(w, http.StatusOK, map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"role": "assistant", "content": "Hello!"}}},
		})
	})
	mux.HandleFunc("GET /anthropic/v1/models", func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		writeJSON(w, http.StatusOK, map[string]any{
			"data": []map[string]any{{"id": "claude-sonnet-4-5-20250929"}},
		})
	})
	mux.HandleFunc("POST /anthropic/v1/messages", func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		_, body := rec.last()
		if stream, _ := body["stream"].(bool); stream {
			w.Header().Set("Content-Type", "text/event-stream")
			w.WriteHeader(http.StatusOK)
			events := []string{
				`{"type":"message_start","message":{"id":"msg_1","role":"assistant","model":"qwen3-coder-plus","content":[]}}`,
				`{"type":"content_block_start","index":0}`,
				`{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"Hel"}}`,
				`{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"lo"}}`,
				`{"type":"content_block_stop","index":0}`,
				`{"type":"message_delta","delta":{"stop_reason":"end_turn"}}`,
				`{"type":"message_stop"}`,
			}
			for _, data := range events {
				var ev struct{ Type string }
				_ = json.Unmarshal([]byte(data), &ev)
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"type":    "message",
			"role":    "assistant",
			"content": []map[string]any{{"type": "text", "text": "Hi there"}},
		})
	})
	return httptest.NewServer(mux)
}

func newClient(t *testing.T, url, token string) *httpclient.Client {
	t.Helper()
	c, err := httpclient.New(url, token)
	require.NoError(t, err)
	return c
}

///////////////////////////////////////////////////////////////////////////////
// HEALTH

func TestHealth_Unauthenticated(t *testing.T) {
	assert := assert.New(t)
	rec := new(recorder)
	srv := newProxy(t, rec)
	defer srv.Close()

	health, err := newClient(t, srv.URL, "secret").Health(context.Background())
	require.NoError(t, err)
	assert.Equal("ok", health.Status)
	require.NotNil(t, health.Summary)
	assert.Equal(2, health.Summary.Total)
	assert.Equal(1, health.Summary.Expired)

	req, _ := rec.last()
	assert.Empty(req.Header.Get("Authorization"))
	assert.Equal(schema.UserAgent, req.Header.Get("User-Agent"))
	assert.NotEmpty(req.Header.Get(httpclient.RequestIdHeader))
}

func TestHealth_Status(t *testing.T) {
	// A non-2xx response is returned as an httpresponse.Err
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "down"})
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL, "").Health(context.Background())
	require.Error(t, err)
	var httpErr httpresponse.Err
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusServiceUnavailable, int(httpErr))
}

func TestHealth_NotOK(t *testing.T) {
	// Only 200 is a success, other 2xx codes are errors
	for _, code := range []int{http.StatusCreated, http.StatusAccepted} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, code, map[string]any{"status": "starting"})
		}))
		_, err := newClient(t, srv.URL, "").Health(context.Background())
		srv.Close()

		var httpErr httpresponse.Err
		if assert.ErrorAs(t, err, &httpErr) {
			assert.Equal(t, code, int(httpErr))
		}
	}
}

func TestHealth_Timeout(t *testing.T) {
	// A server slower than the timeout fails with a deadline error
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	}))
	defer srv.Close()
	defer close(done)

	_, err := newClient(t, srv.URL, "").Health(context.Background(), httpclient.WithTimeout(50*time.Millisecond))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

///////////////////////////////////////////////////////////////////////////////
// OPENAI

func TestListModels(t *testing.T) {
	assert := assert.New(t)
	rec := new(recorder)
	srv := newProxy(t, rec)
	defer srv.Close()

	models, err := newClient(t, srv.URL, "secret").ListModels(context.Background(), httpclient.WithRequestId("req-1"))
	require.NoError(t, err)
	assert.Equal([]string{"qwen3-coder-plus", "qwen3-coder-flash"}, models.Ids())

	req, _ := rec.last()
	assert.Equal("Bearer secret", req.Header.Get("Authorization"))
	assert.Equal(schema.UserAgent, req.Header.Get("User-Agent"))
	assert.Equal("req-1", req.Header.Get(httpclient.RequestIdHeader))
}

func TestListModels_NoToken(t *testing.T) {
	// Without a token no request is made
	rec := new(recorder)
	srv := newProxy(t, rec)
	defer srv.Close()

	_, err := newClient(t, srv.URL, "").ListModels(context.Background())
	assert.ErrorIs(t, err, proxycheck.ErrUnauthorized)
	assert.Equal(t, 0, rec.count())
}

func TestChatCompletion_Defaults(t *testing.T) {
	assert := assert.New(t)
	rec := new(recorder)
	srv := newProxy(t, rec)
	defer srv.Close()

	response, err := newClient(t, srv.URL, "secret").ChatCompletion(context.Background(), "hello")
	require.NoError(t, err)
	content, ok := response.Content()
	assert.True(ok)
	assert.Equal("Hello!", content)

	req, body := rec.last()
	assert.Equal("Bearer secret", req.Header.Get("Authorization"))
	assert.Equal(schema.DefaultModel, body["model"])
	assert.InDelta(0.3, body["temperature"], 1e-9)
	assert.Equal(float64(150), body["max_tokens"])
	messages, _ := body["messages"].([]any)
	require.Len(t, messages, 1)
	assert.Equal(map[string]any{"role": "user", "content": "hello"}, messages[0])
}

func TestChatCompletion_Options(t *testing.T) {
	assert := assert.New(t)
	rec := new(recorder)
	srv := newProxy(t, rec)
	defer srv.Close()

	_, err := newClient(t, srv.URL, "secret").ChatCompletion(context.Background(), "hello",
		httpclient.WithModel("other"),
		httpclient.WithTemperature(0),
		httpclient.WithMaxTokens(10),
	)
	require.NoError(t, err)

	_, body := rec.last()
	assert.Equal("other", body["model"])
	assert.Equal(float64(0), body["temperature"])
	assert.Equal(float64(10), body["max_tokens"])
}

func TestChatCompletion_EmptyPrompt(t *testing.T) {
	_, err := newClient(t, "http://localhost:1", "secret").ChatCompletion(context.Background(), "  ")
	assert.ErrorIs(t, err, proxycheck.ErrBadParameter)
}

func TestChatCompletion_Temperature(t *testing.T) {
	// Out of range values fail before a request is made
	rec := new(recorder)
	srv := newProxy(t, rec)
	defer srv.Close()

	_, err := newClient(t, srv.URL, "secret").ChatCompletion(context.Background(), "hello", httpclient.WithTemperature(2.5))
	assert.ErrorIs(t, err, proxycheck.ErrBadParameter)
	assert.Zero(t, rec.count())
}

func TestUpstream_Paths(t *testing.T) {
	// The upstream client does not add /v1 to the OpenAI routes
	assert := assert.New(t)
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		writeJSON(w, http.StatusOK, map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "ok"}}},
		})
	}))
	defer srv.Close()

	c, err := httpclient.NewUpstream(srv.URL+"/compatible-mode/v1", "secret")
	require.NoError(t, err)
	_, err = c.ChatCompletion(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal("/compatible-mode/v1/chat/completions", path)
}

///////////////////////////////////////////////////////////////////////////////
// ANTHROPIC

func TestAnthropicModels(t *testing.T) {
	assert := assert.New(t)
	rec := new(recorder)
	srv := newProxy(t, rec)
	defer srv.Close()

	models, err := newClient(t, srv.URL, "secret").AnthropicModels(context.Background())
	require.NoError(t, err)
	assert.Equal([]string{"claude-sonnet-4-5-20250929"}, models.Ids())

	req, _ := rec.last()
	assert.Equal("Bearer secret", req.Header.Get("Authorization"))
	assert.Equal(schema.AnthropicVersion, req.Header.Get("anthropic-version"))
}

func TestMessages(t *testing.T) {
	assert := assert.New(t)
	rec := new(recorder)
	srv := newProxy(t, rec)
	defer srv.Close()

	response, err := newClient(t, srv.URL, "secret").Messages(context.Background(), "hello")
	require.NoError(t, err)
	text, ok := response.Text()
	assert.True(ok)
	assert.Equal("Hi there", text)

	req, body := rec.last()
	assert.Equal(schema.AnthropicVersion, req.Header.Get("anthropic-version"))
	assert.Equal(float64(150), body["max_tokens"])
	assert.InDelta(0.3, body["temperature"], 1e-9)
	assert.NotContains(body, "stream")
	assert.NotContains(body, "choices")
}

func TestMessagesStream(t *testing.T) {
	assert := assert.New(t)
	rec := new(recorder)
	srv := newProxy(t, rec)
	defer srv.Close()

	var deltas []string
	response, err := newClient(t, srv.URL, "secret").MessagesStream(context.Background(), "hello", func(text string) {
		deltas = append(deltas, text)
	})
	require.NoError(t, err)
	assert.Equal([]string{"Hel", "lo"}, deltas)
	text, ok := response.Text()
	assert.True(ok)
	assert.Equal("Hello", text)
	assert.Equal("msg_1", response.Id)
	assert.Equal("end_turn", response.StopReason)

	_, body := rec.last()
	assert.Equal(true, body["stream"])
}

func TestMessagesStream_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "event: error\ndata: {\"type\":\"error\",\"error\":{\"type\":\"overloaded_error\",\"message\":\"busy\"}}\n\n")
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL, "secret").MessagesStream(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, proxycheck.ErrUnexpectedResponse)
	assert.Contains(t, err.Error(), "busy")
}
