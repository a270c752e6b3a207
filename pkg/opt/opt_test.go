package opt_test

import (
	"errors"
	"testing"
	"time"

	// Packages
	opt "github.com/mutablelogic/proxycheck/pkg/opt"
	assert "github.com/stretchr/testify/assert"
)

func TestApplyEmpty(t *testing.T) {
	assert := assert.New(t)
	opts, err := opt.Apply()
	assert.NoError(err)
	assert.NotNil(opts)
	assert.False(opts.Has("missing"))
	assert.Equal("", opts.GetString("missing"))
	assert.Equal(uint(0), opts.GetUint("missing"))
	assert.Equal(time.Duration(0), opts.GetDuration("missing"))
}

func TestApplySkipsNil(t *testing.T) {
	opts, err := opt.Apply(nil, opt.SetString(opt.ModelKey, "m"), nil)
	assert.NoError(t, err)
	assert.Equal(t, "m", opts.GetString(opt.ModelKey))
}

func TestStringOptions(t *testing.T) {
	// Later values replace earlier ones
	assert := assert.New(t)
	opts, err := opt.Apply(opt.SetString(opt.ModelKey, "first"), opt.SetString(opt.ModelKey, " second "))
	assert.NoError(err)
	assert.Equal("second", opts.GetString(opt.ModelKey))
}

func TestUintOptions(t *testing.T) {
	opts, err := opt.Apply(opt.SetUint(opt.MaxTokensKey, 150))
	assert.NoError(t, err)
	assert.Equal(t, uint(150), opts.GetUint(opt.MaxTokensKey))
}

func TestFloatOptions(t *testing.T) {
	opts, err := opt.Apply(opt.SetFloat64(opt.TemperatureKey, 0.3))
	assert.NoError(t, err)
	assert.InDelta(t, 0.3, opts.GetFloat64(opt.TemperatureKey), 1e-9)
}

func TestDurationOptions(t *testing.T) {
	assert := assert.New(t)
	opts, err := opt.Apply(opt.SetDuration(opt.TimeoutKey, 1500*time.Millisecond))
	assert.NoError(err)
	assert.Equal(1500*time.Millisecond, opts.GetDuration(opt.TimeoutKey))

	_, err = opt.Apply(opt.SetDuration(opt.TimeoutKey, -time.Second))
	assert.Error(err)
}

func TestErrorOption(t *testing.T) {
	sentinel := errors.New("sentinel")
	_, err := opt.Apply(opt.SetString("a", "b"), opt.Error(sentinel))
	assert.ErrorIs(t, err, sentinel)
}

func TestWithOpts(t *testing.T) {
	assert := assert.New(t)
	opts, err := opt.Apply(opt.WithOpts(
		opt.SetString(opt.ModelKey, "m"),
		nil,
		opt.SetUint(opt.MaxTokensKey, 10),
	))
	assert.NoError(err)
	assert.Equal("m", opts.GetString(opt.ModelKey))
	assert.Equal(uint(10), opts.GetUint(opt.MaxTokensKey))
}
