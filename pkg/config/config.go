// Package config provides the settings for a smoke-test run.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (explicit path, PROXYCHECK_CONFIG, ./proxycheck.yaml)
//  3. Environment variable overrides (PROXYCHECK_ prefix)
//  4. Validation
//
// Command line flags are applied by the caller between steps 3 and 4.
package config

import (
	"time"

	// Packages
	schema "github.com/mutablelogic/proxycheck/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Config holds the settings for a smoke-test run
type Config struct {
	Proxy       ProxyConfig       `yaml:"proxy"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Request     RequestConfig     `yaml:"request"`
}

// ProxyConfig holds the address of the proxy under test
type ProxyConfig struct {
	URL         string        `yaml:"url"`          // default: http://localhost:8765
	GetTimeout  time.Duration `yaml:"get_timeout"`  // default: 10s
	PostTimeout time.Duration `yaml:"post_timeout"` // default: 30s
}

// CredentialsConfig selects the credential record
type CredentialsConfig struct {
	Dir     string `yaml:"dir"`     // default: ~/.qwen
	Account string `yaml:"account"` // empty selects oauth_creds.json
}

// RequestConfig holds the completion request sent by the checks
type RequestConfig struct {
	Model       string  `yaml:"model"`       // default: qwen3-coder-plus
	Prompt      string  `yaml:"prompt"`      // default: a short greeting
	Temperature float64 `yaml:"temperature"` // default: 0.3
	MaxTokens   uint    `yaml:"max_tokens"`  // default: 150
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Defaults returns the built-in configuration. The credential directory is
// left empty and resolved to ~/.qwen when it is used.
func Defaults() Config {
	return Config{
		Proxy: ProxyConfig{
			URL:         schema.DefaultProxyURL,
			GetTimeout:  10 * time.Second,
			PostTimeout: 30 * time.Second,
		},
		Request: RequestConfig{
			Model:       schema.DefaultModel,
			Prompt:      schema.DefaultPrompt,
			Temperature: schema.DefaultTemperature,
			MaxTokens:   schema.DefaultMaxTokens,
		},
	}
}
