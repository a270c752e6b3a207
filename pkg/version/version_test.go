package version_test

import (
	"encoding/json"
	"runtime"
	"testing"

	// Packages
	version "github.com/mutablelogic/proxycheck/pkg/version"
	assert "github.com/stretchr/testify/assert"
)

func Test_version_001(t *testing.T) {
	assert := assert.New(t)
	defer func(tag, branch string) { version.GitTag, version.GitBranch = tag, branch }(version.GitTag, version.GitBranch)

	version.GitTag, version.GitBranch = "v1.2.3", "main"
	assert.Equal("v1.2.3", version.Version())

	version.GitTag = ""
	assert.Equal("main", version.Version())

	version.GitBranch = ""
	assert.NotEmpty(version.Version())
}

func Test_version_002(t *testing.T) {
	assert := assert.New(t)
	defer func(tag string) { version.GitTag = tag }(version.GitTag)
	version.GitTag = "v0.0.1"

	var meta version.Metadata
	assert.NoError(json.Unmarshal(version.JSON("proxycheck"), &meta))
	assert.Equal("proxycheck", meta.Name)
	assert.Equal("v0.0.1", meta.Version)
	assert.Equal("v0.0.1", meta.Tag)
	assert.Equal(runtime.Version(), meta.Compiler)
	assert.Equal(runtime.GOOS+"/"+runtime.GOARCH, meta.Platform)
}
