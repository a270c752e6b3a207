package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	// Packages
	kong "github.com/alecthomas/kong"
	config "github.com/mutablelogic/proxycheck/pkg/config"
	otel "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Trace requests to stderr"`
	Verbose bool `name:"verbose" help:"Trace requests and response bodies to stderr"`

	// Tracing
	OtelEndpoint string `name:"otel-endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" help:"OTLP/HTTP collector for check spans"`

	// Configuration
	Config      string `name:"config" type:"path" help:"YAML configuration file"`
	URL         string `name:"url" help:"Proxy base URL, overrides PROXYCHECK_URL (default ${PROXY_URL})"`
	Credentials string `name:"credentials" type:"path" help:"Credential directory (default ~/.qwen)"`
	Account     string `name:"account" help:"Credential account, empty for oauth_creds.json"`
	Model       string `name:"model" help:"Model for completion requests (default ${MODEL})"`
	Prompt      string `name:"prompt" help:"Prompt sent by the completion checks"`

	// Context
	ctx      context.Context
	execName string
	tracer   trace.Tracer
	config   *config.Config
}

type CLI struct {
	Globals

	// Smoke checks
	Run       RunCommand       `cmd:"" name:"run" default:"1" help:"Check the proxy health and both API surfaces." group:"CHECK"`
	Health    HealthCommand    `cmd:"" name:"health" help:"Check the proxy health." group:"CHECK"`
	OpenAI    OpenAICommand    `cmd:"" name:"openai" help:"Check the OpenAI-compatible /v1 endpoints." group:"CHECK"`
	Anthropic AnthropicCommand `cmd:"" name:"anthropic" help:"Check the Anthropic-compatible /anthropic/v1 endpoints." group:"CHECK"`

	// Credentials
	Endpoint EndpointCommand `cmd:"" name:"endpoint" help:"Print the upstream endpoint and token expiry." group:"CREDENTIALS"`
	Accounts AccountsCommand `cmd:"" name:"accounts" help:"List credential accounts." group:"CREDENTIALS"`
	Direct   DirectCommand   `cmd:"" name:"direct" help:"Send a prompt straight to the upstream endpoint." group:"CREDENTIALS"`

	// Version
	Version VersionCommand `cmd:"" name:"version" help:"Print version information."`
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	exitCode := 0
	defer func() { os.Exit(exitCode) }()

	// Create a cli parser
	cli := CLI{}
	defaults := config.Defaults()
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Smoke test for a Qwen proxy with OpenAI and Anthropic compatible APIs"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{
			"PROXY_URL": defaults.Proxy.URL,
			"MODEL":     defaults.Request.Model,
		},
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.execName = execName()

	// Export spans when a collector is set
	if cli.OtelEndpoint != "" {
		provider, err := newTracerProvider(ctx, cli.OtelEndpoint, cli.Globals.execName)
		cmd.FatalIfErrorf(err)
		defer func() {
			if err := provider.Shutdown(context.Background()); err != nil {
				log.Println("otel:", err)
			}
		}()
		otel.SetTracerProvider(provider)
	}
	cli.Globals.tracer = otel.Tracer("github.com/mutablelogic/proxycheck")

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		exitCode = 1
		cmd.Errorf("%v", err)
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}
