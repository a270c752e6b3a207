package opt

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// A generic option type, which can set options on a proxy request
type Opt func(*opts) error

// set of options
type opts struct {
	url.Values
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ModelKey       = "model"
	TemperatureKey = "temperature"
	MaxTokensKey   = "max_tokens"
	TimeoutKey     = "timeout"
	RequestIdKey   = "request_id"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Apply returns a structure of applied options
func Apply(o ...Opt) (*opts, error) {
	opts := &opts{Values: make(url.Values)}
	for _, opt := range o {
		if opt == nil {
			continue
		}
		if err := opt(opts); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// GetString returns the trimmed value for key, or empty string if not set
func (o *opts) GetString(key string) string {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

// GetFloat64 returns the float64 value for key, or 0 if not set or invalid
func (o *opts) GetFloat64(key string) float64 {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		if v, err := strconv.ParseFloat(strings.TrimSpace(values[0]), 64); err == nil {
			return v
		}
	}
	return 0
}

// GetUint returns the uint value for key, or 0 if not set or invalid
func (o *opts) GetUint(key string) uint {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		if v, err := strconv.ParseUint(strings.TrimSpace(values[0]), 10, 64); err == nil {
			return uint(v)
		}
	}
	return 0
}

// GetDuration returns the duration value for key, or 0 if not set or invalid
func (o *opts) GetDuration(key string) time.Duration {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		if v, err := time.ParseDuration(strings.TrimSpace(values[0])); err == nil {
			return v
		}
	}
	return 0
}

// Has returns true if the key exists
func (o *opts) Has(key string) bool {
	_, ok := o.Values[key]
	return ok
}

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// Error returns an option that always returns an error
func Error(err error) Opt {
	return func(o *opts) error {
		return err
	}
}

// WithOpts combines multiple options into a single option
func WithOpts(options ...Opt) Opt {
	return func(o *opts) error {
		for _, opt := range options {
			if opt == nil {
				continue
			}
			if err := opt(o); err != nil {
				return err
			}
		}
		return nil
	}
}

// SetString replaces any existing value for key
func SetString(key, value string) Opt {
	return func(o *opts) error {
		o.Values.Set(key, value)
		return nil
	}
}

// SetUint replaces any existing value for key
func SetUint(key string, value uint) Opt {
	return func(o *opts) error {
		o.Values.Set(key, fmt.Sprintf("%d", value))
		return nil
	}
}

// SetFloat64 replaces any existing value for key
func SetFloat64(key string, value float64) Opt {
	return func(o *opts) error {
		o.Values.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
		return nil
	}
}

// SetDuration replaces any existing value for key
func SetDuration(key string, value time.Duration) Opt {
	return func(o *opts) error {
		if value < 0 {
			return fmt.Errorf("%s: negative duration %v", key, value)
		}
		o.Values.Set(key, value.String())
		return nil
	}
}
