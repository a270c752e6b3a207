/*
smoke runs the proxy smoke checks: a health check which gates an
OpenAI-compatible check and an Anthropic-compatible check, followed by a
printed summary. Every outcome is reported as text on the writer; no check
returns an error to its caller.
*/
package smoke

import (
	"context"
	"fmt"
	"io"
	"time"

	// Packages
	httpclient "github.com/mutablelogic/proxycheck/pkg/httpclient"
	opt "github.com/mutablelogic/proxycheck/pkg/opt"
	schema "github.com/mutablelogic/proxycheck/pkg/schema"
	otel "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Proxy is the set of proxy routes exercised by the checks
type Proxy interface {
	HasToken() bool
	Health(ctx context.Context, opts ...opt.Opt) (*schema.HealthResponse, error)
	ListModels(ctx context.Context, opts ...opt.Opt) (*schema.ListModelsResponse, error)
	ChatCompletion(ctx context.Context, prompt string, opts ...opt.Opt) (*schema.ChatCompletionResponse, error)
	AnthropicModels(ctx context.Context, opts ...opt.Opt) (*schema.ListModelsResponse, error)
	Messages(ctx context.Context, prompt string, opts ...opt.Opt) (*schema.MessagesResponse, error)
	MessagesStream(ctx context.Context, prompt string, fn httpclient.StreamFn, opts ...opt.Opt) (*schema.MessagesResponse, error)
}

// Runner runs the checks against a proxy and prints to a writer
type Runner struct {
	proxy       Proxy
	w           io.Writer
	url         string
	prompt      string
	stream      bool
	getTimeout  time.Duration
	postTimeout time.Duration
	reqopts     []opt.Opt
	tracer      trace.Tracer
}

// Opt sets an option on the runner
type Opt func(*Runner) error

var _ Proxy = (*httpclient.Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	tracerName = "github.com/mutablelogic/proxycheck/pkg/smoke"

	// Number of characters of a reply which are printed
	previewLength = 100
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a runner for the proxy which prints to w
func New(proxy Proxy, w io.Writer, opts ...Opt) (*Runner, error) {
	if proxy == nil {
		return nil, fmt.Errorf("proxy is nil")
	}
	if w == nil {
		w = io.Discard
	}
	r := &Runner{
		proxy:       proxy,
		w:           w,
		url:         schema.DefaultProxyURL,
		prompt:      schema.DefaultPrompt,
		getTimeout:  httpclient.DefaultGetTimeout,
		postTimeout: httpclient.DefaultPostTimeout,
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithURL sets the proxy address shown in the output
func WithURL(url string) Opt {
	return func(r *Runner) error {
		r.url = url
		return nil
	}
}

// WithPrompt sets the user message sent by both completion checks
func WithPrompt(prompt string) Opt {
	return func(r *Runner) error {
		if prompt == "" {
			return fmt.Errorf("empty prompt")
		}
		r.prompt = prompt
		return nil
	}
}

// WithStream makes the Anthropic check use a streamed message
func WithStream(stream bool) Opt {
	return func(r *Runner) error {
		r.stream = stream
		return nil
	}
}

// WithTimeouts sets the timeouts for model listings and completions
func WithTimeouts(get, post time.Duration) Opt {
	return func(r *Runner) error {
		if get <= 0 || post <= 0 {
			return fmt.Errorf("timeouts must be positive")
		}
		r.getTimeout, r.postTimeout = get, post
		return nil
	}
}

// WithRequestOpts adds options to the completion requests, such as the model
func WithRequestOpts(opts ...opt.Opt) Opt {
	return func(r *Runner) error {
		r.reqopts = append(r.reqopts, opts...)
		return nil
	}
}

// WithTracer replaces the tracer from the global provider
func WithTracer(tracer trace.Tracer) Opt {
	return func(r *Runner) error {
		if tracer != nil {
			r.tracer = tracer
		}
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Run checks the proxy health and, if healthy, both API surfaces. The
// summary and closing message are printed before returning.
func (r *Runner) Run(ctx context.Context) *Report {
	report := new(Report)

	report.Health = r.CheckHealth(ctx)
	if !report.Health.Pass {
		r.println()
		r.println(VerdictHealthFailed.Message(r.url))
		return report
	}

	openai := r.CheckOpenAI(ctx)
	anthropic := r.CheckAnthropic(ctx)
	report.OpenAI = &openai
	report.Anthropic = &anthropic

	r.PrintSummary(report)
	return report
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (r *Runner) println(args ...any) {
	fmt.Fprintln(r.w, args...)
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

func (r *Runner) getOpts() []opt.Opt {
	return []opt.Opt{httpclient.WithTimeout(r.getTimeout)}
}

func (r *Runner) postOpts() []opt.Opt {
	return []opt.Opt{opt.WithOpts(r.reqopts...), httpclient.WithTimeout(r.postTimeout)}
}
