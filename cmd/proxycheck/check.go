package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	smoke "github.com/mutablelogic/proxycheck/pkg/smoke"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type RunCommand struct {
	Stream bool `name:"stream" help:"Stream the Anthropic message"`
	Strict bool `name:"strict" help:"Exit with an error when any check fails"`
}

type HealthCommand struct{}

type OpenAICommand struct{}

type AnthropicCommand struct {
	Stream bool `name:"stream" help:"Stream the message"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var errCheckFailed = errors.New("check failed")

const title = "Qwen Proxy Smoke Test"

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *RunCommand) Run(ctx *Globals) (err error) {
	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "RunCommand",
		attribute.Bool("stream", cmd.Stream),
	)
	defer func() { endSpan(err) }()

	fmt.Println(title)
	fmt.Println(strings.Repeat("=", len(title)))

	// Credentials are read once, and a missing record only fails the
	// authenticated checks
	cred, err := ctx.Credential(os.Stdout)
	if err != nil {
		return err
	}
	smoke.PrintEndpoint(os.Stdout, cred)
	fmt.Println()

	runner, err := ctx.Runner(cred, cmd.Stream)
	if err != nil {
		return err
	}
	report := runner.Run(parent)
	if cmd.Strict && !report.Passed() {
		return fmt.Errorf("%w: %s", errCheckFailed, report.Verdict())
	}
	return nil
}

func (cmd *HealthCommand) Run(ctx *Globals) (err error) {
	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "HealthCommand")
	defer func() { endSpan(err) }()

	runner, err := ctx.Runner(nil, false)
	if err != nil {
		return err
	}
	if result := runner.CheckHealth(parent); !result.Pass {
		return errCheckFailed
	}
	return nil
}

func (cmd *OpenAICommand) Run(ctx *Globals) (err error) {
	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "OpenAICommand")
	defer func() { endSpan(err) }()

	cred, err := ctx.Credential(os.Stdout)
	if err != nil {
		return err
	}
	runner, err := ctx.Runner(cred, false)
	if err != nil {
		return err
	}
	if result := runner.CheckOpenAI(parent); !result.Pass {
		return errCheckFailed
	}
	return nil
}

func (cmd *AnthropicCommand) Run(ctx *Globals) (err error) {
	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "AnthropicCommand",
		attribute.Bool("stream", cmd.Stream),
	)
	defer func() { endSpan(err) }()

	cred, err := ctx.Credential(os.Stdout)
	if err != nil {
		return err
	}
	runner, err := ctx.Runner(cred, cmd.Stream)
	if err != nil {
		return err
	}
	if result := runner.CheckAnthropic(parent); !result.Pass {
		return errCheckFailed
	}
	return nil
}
