package smoke

import (
	"fmt"
	"time"

	// Packages
	table "github.com/mutablelogic/proxycheck/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Result is the outcome of a single check
type Result struct {
	Name     string
	Pass     bool
	Err      error
	Duration time.Duration
}

// Report holds the results of a run. The API results are nil when the
// health check failed and they were not run.
type Report struct {
	Health    Result
	OpenAI    *Result
	Anthropic *Result
}

// Verdict is the overall outcome of a run
type Verdict int

// summaryTable renders the results as a table
type summaryTable []summaryRow

type summaryRow struct {
	label  string
	result Result
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Longest diagnostic shown in the summary table
const detailLength = 60

const (
	VerdictHealthFailed Verdict = iota
	VerdictAllPassed
	VerdictOpenAIOnly
	VerdictAnthropicOnly
	VerdictNonePassed
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Passed returns true when every check which ran passed
func (r *Report) Passed() bool {
	return r.Verdict() == VerdictAllPassed
}

// Map returns pass or fail keyed by check name, for the checks which ran
func (r *Report) Map() map[string]bool {
	result := map[string]bool{CheckHealth: r.Health.Pass}
	if r.OpenAI != nil {
		result[CheckOpenAI] = r.OpenAI.Pass
	}
	if r.Anthropic != nil {
		result[CheckAnthropic] = r.Anthropic.Pass
	}
	return result
}

// Verdict returns the overall outcome
func (r *Report) Verdict() Verdict {
	if !r.Health.Pass {
		return VerdictHealthFailed
	}
	openai := r.OpenAI != nil && r.OpenAI.Pass
	anthropic := r.Anthropic != nil && r.Anthropic.Pass
	switch {
	case openai && anthropic:
		return VerdictAllPassed
	case openai:
		return VerdictOpenAIOnly
	case anthropic:
		return VerdictAnthropicOnly
	default:
		return VerdictNonePassed
	}
}

// Message returns the closing message for the verdict. The url is the proxy
// address and is used when the health check failed.
func (v Verdict) Message(url string) string {
	switch v {
	case VerdictAllPassed:
		return "🎉 All tests passed! The proxy is working correctly."
	case VerdictOpenAIOnly:
		return "⚠️  Only the OpenAI-compatible /v1 endpoints work. Check the /anthropic routes of the proxy."
	case VerdictAnthropicOnly:
		return "⚠️  Only the Claude-optimized /anthropic endpoints work. Check the /v1 routes of the proxy."
	case VerdictNonePassed:
		return "❌ Both API checks failed. Check your credentials and the proxy logs."
	default:
		return fmt.Sprintf("❌ Proxy health check failed. Is the proxy running on %s?", url)
	}
}

func (v Verdict) String() string {
	switch v {
	case VerdictAllPassed:
		return "all_passed"
	case VerdictOpenAIOnly:
		return "openai_only"
	case VerdictAnthropicOnly:
		return "anthropic_only"
	case VerdictNonePassed:
		return "none_passed"
	default:
		return "health_failed"
	}
}

// PrintSummary prints the results table and the closing message
func (r *Runner) PrintSummary(report *Report) {
	r.println("📊 Summary")
	r.println(table.Render(newSummaryTable(report)))
	r.println()
	r.println(report.Verdict().Message(r.url))
}

///////////////////////////////////////////////////////////////////////////////
// TABLE

func newSummaryTable(report *Report) summaryTable {
	rows := summaryTable{{"Health", report.Health}}
	if report.OpenAI != nil {
		rows = append(rows, summaryRow{"OpenAI v1", *report.OpenAI})
	}
	if report.Anthropic != nil {
		rows = append(rows, summaryRow{"Claude-optimized", *report.Anthropic})
	}
	return rows
}

func (t summaryTable) Header() []string {
	return []string{"CHECK", "RESULT", "TIME", "DETAIL"}
}

func (t summaryTable) Len() int {
	return len(t)
}

func (t summaryTable) Row(i int) []any {
	row := t[i]
	return []any{
		table.Bold{Value: row.label},
		table.Status(row.result.Pass),
		row.result.Duration,
		table.Truncate(Describe(row.result.Err), detailLength),
	}
}
