package httpclient

import (
	"time"

	// Packages
	proxycheck "github.com/mutablelogic/proxycheck"
	opt "github.com/mutablelogic/proxycheck/pkg/opt"
)

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithTimeout overrides the per-call timeout. Zero keeps the default.
func WithTimeout(timeout time.Duration) opt.Opt {
	if timeout == 0 {
		return nil
	}
	return opt.SetDuration(opt.TimeoutKey, timeout)
}

// WithRequestId sets the X-Request-Id header, otherwise a random one is used
func WithRequestId(id string) opt.Opt {
	return opt.SetString(opt.RequestIdKey, id)
}

// WithModel sets the model for completion requests
func WithModel(model string) opt.Opt {
	if model == "" {
		return nil
	}
	return opt.SetString(opt.ModelKey, model)
}

// WithTemperature sets the sampling temperature for completion requests,
// between 0 and 2
func WithTemperature(temperature float64) opt.Opt {
	if temperature < 0 || temperature > 2 {
		return opt.Error(proxycheck.ErrBadParameter.Withf("temperature %v out of range", temperature))
	}
	return opt.SetFloat64(opt.TemperatureKey, temperature)
}

// WithMaxTokens limits the length of the completion. Zero keeps the default.
func WithMaxTokens(maxTokens uint) opt.Opt {
	if maxTokens == 0 {
		return nil
	}
	return opt.SetUint(opt.MaxTokensKey, maxTokens)
}
