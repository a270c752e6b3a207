package main

import (
	"fmt"
	"os"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	httpclient "github.com/mutablelogic/proxycheck/pkg/httpclient"
	smoke "github.com/mutablelogic/proxycheck/pkg/smoke"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type DirectCommand struct {
	Prompt string `arg:"" name:"prompt" help:"Prompt text, or the path of a file containing the prompt"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *DirectCommand) Run(ctx *Globals) (err error) {
	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "DirectCommand",
		attribute.Int("prompt.length", len(cmd.Prompt)),
	)
	defer func() { endSpan(err) }()

	cfg, err := ctx.Settings()
	if err != nil {
		return err
	}
	prompt, err := cmd.prompt()
	if err != nil {
		return err
	}

	fmt.Println("Qwen Direct API Test")
	fmt.Println(strings.Repeat("=", 20))
	fmt.Println("Prompt:", smoke.Preview(prompt))

	// Credentials
	cred, err := ctx.Credential(os.Stdout)
	if err != nil {
		return err
	} else if cred == nil {
		return errCheckFailed
	}
	if err := cred.Valid(); err != nil {
		fmt.Println("No access token found in credentials.")
		return errCheckFailed
	}
	endpoint := cred.Endpoint()
	fmt.Println("Using API endpoint:", endpoint)

	// Send the prompt to the upstream endpoint
	upstream, err := httpclient.NewUpstream(endpoint, cred.AccessToken, ctx.clientOpts()...)
	if err != nil {
		return err
	}
	fmt.Println("Making direct API call to Qwen...")
	response, err := upstream.ChatCompletion(parent, prompt,
		append(ctx.requestOpts(cfg), httpclient.WithTimeout(cfg.Proxy.PostTimeout))...,
	)
	if err != nil {
		fmt.Println("API call failed:", smoke.Describe(err))
		return errCheckFailed
	}
	content, ok := response.Content()
	if !ok {
		fmt.Println("API call failed: response contained no choices")
		return errCheckFailed
	}

	fmt.Println("Response from Qwen:")
	fmt.Println(content)
	fmt.Println()
	fmt.Println("Direct API call successful!")
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// prompt returns the argument, or the content of the file it names
func (cmd *DirectCommand) prompt() (string, error) {
	// Anything which does not stat as a regular file is prompt text
	if info, err := os.Stat(cmd.Prompt); err != nil || !info.Mode().IsRegular() {
		return cmd.Prompt, nil
	}
	data, err := os.ReadFile(cmd.Prompt)
	if err != nil {
		return "", fmt.Errorf("error reading file %s: %w", cmd.Prompt, err)
	}
	fmt.Printf("Using content of file '%s' as prompt\n", cmd.Prompt)
	return string(data), nil
}
