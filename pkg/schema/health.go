package schema

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// HealthResponse is the body returned by the proxy on GET /health.
// Only Status is required; the rest is reported when present.
type HealthResponse struct {
	Status     string          `json:"status,omitempty"`
	Timestamp  string          `json:"timestamp,omitempty"`
	Summary    *HealthSummary  `json:"summary,omitempty"`
	TokenUsage *TokenUsage     `json:"token_usage,omitempty"`
	Accounts   []AccountHealth `json:"accounts,omitempty"`
}

// HealthSummary counts proxy accounts by state
type HealthSummary struct {
	Total              int `json:"total"`
	Healthy            int `json:"healthy"`
	Failed             int `json:"failed"`
	ExpiringSoon       int `json:"expiring_soon"`
	Expired            int `json:"expired"`
	TotalRequestsToday int `json:"total_requests_today"`
}

// TokenUsage is the proxy's token accounting for the current day
type TokenUsage struct {
	InputTokensToday  int `json:"input_tokens_today"`
	OutputTokensToday int `json:"output_tokens_today"`
	TotalTokensToday  int `json:"total_tokens_today"`
}

// AccountHealth is the per-account entry of a health response
type AccountHealth struct {
	Id             string  `json:"id"`
	Status         string  `json:"status"`
	ExpiresIn      *string `json:"expiresIn,omitempty"`
	RequestCount   int     `json:"requestCount"`
	AuthErrorCount int     `json:"authErrorCount"`
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r HealthResponse) String() string {
	return types.Stringify(r)
}
