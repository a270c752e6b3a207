package smoke

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	proxycheck "github.com/mutablelogic/proxycheck"
	table "github.com/mutablelogic/proxycheck/pkg/ui/table"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	CheckHealth    = "health"
	CheckOpenAI    = "openai"
	CheckAnthropic = "anthropic"
)

const noContent = "(no content returned)"

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CheckHealth calls the unauthenticated health route and prints the status
// together with the account and token summary when the proxy reports one.
func (r *Runner) CheckHealth(ctx context.Context) Result {
	return r.check(ctx, CheckHealth, func(ctx context.Context, span trace.Span) error {
		r.printf("🔍 Checking proxy health at %s/health\n", strings.TrimSuffix(r.url, "/"))
		health, err := r.proxy.Health(ctx, r.getOpts()...)
		if err != nil {
			return err
		}

		status := health.Status
		if status == "" {
			status = "unknown"
		}
		span.SetAttributes(attribute.String("proxy.status", status))
		r.printf("%s Proxy is healthy (status: %s)\n", table.Pass, status)

		if s := health.Summary; s != nil {
			r.printf("   Accounts: %d total, %d healthy, %d failed, %d expiring soon, %d expired\n",
				s.Total, s.Healthy, s.Failed, s.ExpiringSoon, s.Expired)
		}
		if u := health.TokenUsage; u != nil {
			r.printf("   Tokens today: %d input, %d output, %d total\n",
				u.InputTokensToday, u.OutputTokensToday, u.TotalTokensToday)
		}
		return nil
	})
}

// CheckOpenAI lists the models and requests a chat completion from the
// OpenAI-compatible surface. The completion is not requested when the
// listing fails.
func (r *Runner) CheckOpenAI(ctx context.Context) Result {
	return r.check(ctx, CheckOpenAI, func(ctx context.Context, span trace.Span) error {
		r.println("🔍 Checking OpenAI-compatible endpoints (/v1)")
		if err := r.requireToken(); err != nil {
			return err
		}

		// Models
		models, err := r.proxy.ListModels(ctx, r.getOpts()...)
		if err != nil {
			return fmt.Errorf("GET /v1/models: %w", err)
		}
		r.printModels("/v1/models", models.Ids())

		// Chat completion
		response, err := r.proxy.ChatCompletion(ctx, r.prompt, r.postOpts()...)
		if err != nil {
			return fmt.Errorf("POST /v1/chat/completions: %w", err)
		}
		content, ok := response.Content()
		if !ok {
			return fmt.Errorf("POST /v1/chat/completions: %w", proxycheck.ErrUnexpectedResponse.With("response contained no choices"))
		}
		r.printf("%s POST /v1/chat/completions: %s\n", table.Pass, Preview(content))
		return nil
	})
}

// CheckAnthropic lists the models and sends a message to the
// Anthropic-compatible surface, streamed when the runner is set to. An
// empty reply is a pass.
func (r *Runner) CheckAnthropic(ctx context.Context) Result {
	return r.check(ctx, CheckAnthropic, func(ctx context.Context, span trace.Span) error {
		r.println("🔍 Checking Claude-optimized endpoints (/anthropic/v1)")
		if err := r.requireToken(); err != nil {
			return err
		}

		// Models
		models, err := r.proxy.AnthropicModels(ctx, r.getOpts()...)
		if err != nil {
			return fmt.Errorf("GET /anthropic/v1/models: %w", err)
		}
		r.printModels("/anthropic/v1/models", models.Ids())

		// Message
		span.SetAttributes(attribute.Bool("stream", r.stream))
		if r.stream {
			r.printf("%s POST /anthropic/v1/messages (stream): ", table.Pass)
			preview := &streamPreview{remaining: previewLength}
			response, err := r.proxy.MessagesStream(ctx, r.prompt, func(text string) {
				r.printf("%s", preview.next(text))
			}, r.postOpts()...)
			if err != nil {
				r.println()
				return fmt.Errorf("POST /anthropic/v1/messages: %w", err)
			}
			if _, ok := response.Text(); !ok {
				r.printf("%s", noContent)
			}
			r.println()
			return nil
		}

		response, err := r.proxy.Messages(ctx, r.prompt, r.postOpts()...)
		if err != nil {
			return fmt.Errorf("POST /anthropic/v1/messages: %w", err)
		}
		text, ok := response.Text()
		if !ok {
			text = noContent
		}
		r.printf("%s POST /anthropic/v1/messages: %s\n", table.Pass, Preview(text))
		return nil
	})
}

// Preview returns the first hundred characters of s on one line, followed
// by "..." when s is longer
func Preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if runes := []rune(s); len(runes) > previewLength {
		return string(runes[:previewLength]) + "..."
	}
	return s
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// streamPreview is Preview applied to text as it arrives: whitespace runs
// collapse to one space and output stops after the preview length
type streamPreview struct {
	remaining int
	started   bool
	space     bool
}

func (p *streamPreview) next(text string) string {
	var out strings.Builder
	for _, ch := range text {
		if p.remaining <= 0 {
			break
		}
		if unicode.IsSpace(ch) {
			p.space = p.started
			continue
		}
		if p.space {
			out.WriteRune(' ')
			p.space = false
			p.remaining--
			if p.remaining <= 0 {
				break
			}
		}
		out.WriteRune(ch)
		p.remaining--
		p.started = true
	}
	return out.String()
}

// check runs fn inside a span and converts its error into a printed
// diagnostic and a failed result
func (r *Runner) check(ctx context.Context, name string, fn func(context.Context, trace.Span) error) (result Result) {
	ctx, endSpan := otel.StartSpan(r.tracer, ctx, "Check"+checkTitle(name),
		attribute.String("proxy.url", r.url),
	)
	defer func() { endSpan(result.Err) }()

	start := time.Now()
	err := fn(ctx, trace.SpanFromContext(ctx))
	result = Result{
		Name:     name,
		Pass:     err == nil,
		Err:      err,
		Duration: time.Since(start),
	}
	if err != nil {
		r.printf("%s %s\n", table.Fail, Describe(err))
	}
	r.println()
	return result
}

func checkTitle(name string) string {
	switch name {
	case CheckOpenAI:
		return "OpenAI"
	case CheckAnthropic:
		return "Anthropic"
	default:
		return "Health"
	}
}

func (r *Runner) requireToken() error {
	if !r.proxy.HasToken() {
		return proxycheck.ErrUnauthorized.With("no access token found in credentials")
	}
	return nil
}

func (r *Runner) printModels(path string, ids []string) {
	r.printf("%s GET %s: %d model(s)\n", table.Pass, path, len(ids))
	for _, id := range ids {
		r.printf("   - %s\n", id)
	}
}
