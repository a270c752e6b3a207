package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	// Packages
	proxycheck "github.com/mutablelogic/proxycheck"
)

// Validate checks the configuration for required fields and valid values.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	// proxy.url must be an absolute http(s) URL
	if u, err := url.Parse(c.Proxy.URL); err != nil {
		errs = append(errs, fmt.Errorf("proxy.url: %w", err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, fmt.Errorf("proxy.url must be an http or https URL, got %q", c.Proxy.URL))
	} else if u.Host == "" {
		errs = append(errs, fmt.Errorf("proxy.url must include a host, got %q", c.Proxy.URL))
	}

	// Timeouts must be positive
	if c.Proxy.GetTimeout <= 0 {
		errs = append(errs, fmt.Errorf("proxy.get_timeout must be > 0, got %v", c.Proxy.GetTimeout))
	}
	if c.Proxy.PostTimeout <= 0 {
		errs = append(errs, fmt.Errorf("proxy.post_timeout must be > 0, got %v", c.Proxy.PostTimeout))
	}

	// Request parameters
	if strings.TrimSpace(c.Request.Model) == "" {
		errs = append(errs, fmt.Errorf("request.model is required"))
	}
	if strings.TrimSpace(c.Request.Prompt) == "" {
		errs = append(errs, fmt.Errorf("request.prompt is required"))
	}
	if c.Request.Temperature < 0 || c.Request.Temperature > 2 {
		errs = append(errs, fmt.Errorf("request.temperature must be between 0 and 2, got %v", c.Request.Temperature))
	}
	if c.Request.MaxTokens == 0 {
		errs = append(errs, fmt.Errorf("request.max_tokens must be > 0"))
	}

	// Account names become part of a file name
	if strings.ContainsAny(c.Credentials.Account, `/\`) {
		errs = append(errs, fmt.Errorf("credentials.account must not contain a path separator, got %q", c.Credentials.Account))
	}

	if err := errors.Join(errs...); err != nil {
		return proxycheck.ErrBadParameter.With(err)
	}
	return nil
}
