package schema

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// DefaultProxyURL is where the proxy under test listens
	DefaultProxyURL = "http://localhost:8765"

	// DefaultUpstreamURL is the Qwen endpoint used when the credential
	// record carries no resource_url
	DefaultUpstreamURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"

	// DefaultModel is sent with every completion request
	DefaultModel = "qwen3-coder-plus"

	// DefaultPrompt is the single user message sent by the smoke checks
	DefaultPrompt = "Say hello in one short sentence."

	// UserAgent identifies the caller as the qwen-code client
	UserAgent = "QwenCode/1.0.0 (linux; x64)"

	// AnthropicVersion is the value of the anthropic-version header
	AnthropicVersion = "2023-06-01"

	// Sampling parameters for the smoke completions
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 150
)

// Role of the single message sent by the checks
const RoleUser = "user"
