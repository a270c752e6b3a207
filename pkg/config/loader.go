package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	// Packages
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	EnvConfig      = "PROXYCHECK_CONFIG"
	EnvURL         = "PROXYCHECK_URL"
	EnvModel       = "PROXYCHECK_MODEL"
	EnvAccount     = "PROXYCHECK_ACCOUNT"
	EnvCredentials = "PROXYCHECK_CREDENTIALS"
	EnvGetTimeout  = "PROXYCHECK_GET_TIMEOUT"
	EnvPostTimeout = "PROXYCHECK_POST_TIMEOUT"
	EnvMaxTokens   = "PROXYCHECK_MAX_TOKENS"

	// Looked for in the working directory
	DefaultFile = "proxycheck.yaml"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Load returns the defaults overlaid with the YAML file (if any) and the
// environment. The result is not validated, so that the caller can apply
// command line flags first.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	// Discover and load the YAML file
	if path := discoverFile(path); path != "" {
		if err := loadYAMLFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// Apply environment overrides
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// discoverFile returns, in order: the explicit path, the PROXYCHECK_CONFIG
// variable, or ./proxycheck.yaml if it exists. Returns empty when there is
// no file to load.
func discoverFile(path string) string {
	if path != "" {
		return path
	}
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return DefaultFile
	}
	return ""
}

// loadYAMLFile parses a YAML file into cfg. Fields not present in the file
// retain their current values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvURL); v != "" {
		cfg.Proxy.URL = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.Request.Model = v
	}
	if v := os.Getenv(EnvAccount); v != "" {
		cfg.Credentials.Account = v
	}
	if v := os.Getenv(EnvCredentials); v != "" {
		cfg.Credentials.Dir = v
	}
	if v := os.Getenv(EnvGetTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvGetTimeout, err)
		}
		cfg.Proxy.GetTimeout = d
	}
	if v := os.Getenv(EnvPostTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPostTimeout, err)
		}
		cfg.Proxy.PostTimeout = d
	}
	if v := os.Getenv(EnvMaxTokens); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxTokens, err)
		}
		cfg.Request.MaxTokens = uint(n)
	}
	return nil
}
