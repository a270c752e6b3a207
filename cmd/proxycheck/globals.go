package main

import (
	"io"
	"log"
	"os"

	// Packages
	client "github.com/mutablelogic/go-client"
	config "github.com/mutablelogic/proxycheck/pkg/config"
	credential "github.com/mutablelogic/proxycheck/pkg/credential"
	httpclient "github.com/mutablelogic/proxycheck/pkg/httpclient"
	opt "github.com/mutablelogic/proxycheck/pkg/opt"
	smoke "github.com/mutablelogic/proxycheck/pkg/smoke"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Settings returns the configuration with the command line flags applied
func (g *Globals) Settings() (*config.Config, error) {
	if g.config != nil {
		return g.config, nil
	}

	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}

	// Flags override the file and the environment
	if g.URL != "" {
		cfg.Proxy.URL = g.URL
	}
	if g.Credentials != "" {
		cfg.Credentials.Dir = g.Credentials
	}
	if g.Account != "" {
		cfg.Credentials.Account = g.Account
	}
	if g.Model != "" {
		cfg.Request.Model = g.Model
	}
	if g.Prompt != "" {
		cfg.Request.Prompt = g.Prompt
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if g.Debug {
		log.Printf("proxy=%s account=%q model=%s", cfg.Proxy.URL, cfg.Credentials.Account, cfg.Request.Model)
	}
	g.config = cfg
	return cfg, nil
}

// CredentialPath returns the credential file selected by the configuration
func (g *Globals) CredentialPath() (string, error) {
	cfg, err := g.Settings()
	if err != nil {
		return "", err
	}
	dir, err := g.credentialDir(cfg)
	if err != nil {
		return "", err
	}
	return credential.Path(dir, cfg.Credentials.Account), nil
}

// Credential loads the selected credential, printing a message to w and
// returning nil when it cannot be read
func (g *Globals) Credential(w io.Writer) (*credential.Credential, error) {
	path, err := g.CredentialPath()
	if err != nil {
		return nil, err
	}
	return smoke.LoadCredential(w, path), nil
}

// Client returns a client for the proxy which authenticates with the
// credential, if any
func (g *Globals) Client(cred *credential.Credential) (*httpclient.Client, error) {
	cfg, err := g.Settings()
	if err != nil {
		return nil, err
	}
	return httpclient.New(cfg.Proxy.URL, token(cred), g.clientOpts()...)
}

// Runner returns a smoke runner for the proxy which prints to stdout
func (g *Globals) Runner(cred *credential.Credential, stream bool) (*smoke.Runner, error) {
	cfg, err := g.Settings()
	if err != nil {
		return nil, err
	}
	proxy, err := g.Client(cred)
	if err != nil {
		return nil, err
	}
	return smoke.New(proxy, os.Stdout,
		smoke.WithURL(cfg.Proxy.URL),
		smoke.WithPrompt(cfg.Request.Prompt),
		smoke.WithStream(stream),
		smoke.WithTimeouts(cfg.Proxy.GetTimeout, cfg.Proxy.PostTimeout),
		smoke.WithRequestOpts(g.requestOpts(cfg)...),
		smoke.WithTracer(g.tracer),
	)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (g *Globals) credentialDir(cfg *config.Config) (string, error) {
	if cfg.Credentials.Dir != "" {
		return cfg.Credentials.Dir, nil
	}
	return credential.DefaultDir()
}

func (g *Globals) clientOpts() []client.ClientOpt {
	opts := []client.ClientOpt{}
	if g.Debug || g.Verbose {
		opts = append(opts, client.OptTrace(os.Stderr, g.Verbose))
	}
	if g.tracer != nil {
		opts = append(opts, client.OptTracer(g.tracer))
	}
	return opts
}

func (g *Globals) requestOpts(cfg *config.Config) []opt.Opt {
	return []opt.Opt{
		httpclient.WithModel(cfg.Request.Model),
		httpclient.WithTemperature(cfg.Request.Temperature),
		httpclient.WithMaxTokens(cfg.Request.MaxTokens),
	}
}

func token(cred *credential.Credential) string {
	if cred.Valid() != nil {
		return ""
	}
	return cred.AccessToken
}
