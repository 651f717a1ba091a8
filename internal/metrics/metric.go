// Package metrics provides cost and usage tracking for agent runs.
package metrics

import "time"

// Metric represents a single recorded agent or skill execution.
// Metrics are append-only records written to a JSONL file with full
// attribution.
type Metric struct {
	// Attribution (for filtering/aggregation)
	RunID string `json:"run_id,omitempty"`
	Skill string `json:"skill,omitempty"`
	Agent string `json:"agent,omitempty"`

	// Provider info
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`

	// Cost and tokens
	CostUSD          float64 `json:"cost_usd,omitempty"`
	PromptTokens     int     `json:"prompt_tokens,omitempty"`
	CompletionTokens int     `json:"completion_tokens,omitempty"`
	TotalTokens      int     `json:"total_tokens,omitempty"`

	// Timing
	ExecutionSeconds float64 `json:"execution_seconds,omitempty"`

	// Status
	Attempts  int    `json:"attempts,omitempty"`
	Success   bool   `json:"success"`
	Status    string `json:"status,omitempty"`
	ErrorType string `json:"error_type,omitempty"`

	// Metadata
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Summary aggregates metrics across runs.
type Summary struct {
	Runs             int     `json:"runs"`
	Successes        int     `json:"successes"`
	Failures         int     `json:"failures"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	CostUSD          float64 `json:"cost_usd"`
	ExecutionSeconds float64 `json:"execution_seconds"`
}

// add folds a metric into the summary.
func (s *Summary) add(m Metric) {
	s.Runs++
	if m.Success {
		s.Successes++
	} else {
		s.Failures++
	}
	s.PromptTokens += m.PromptTokens
	s.CompletionTokens += m.CompletionTokens
	s.TotalTokens += m.TotalTokens
	s.CostUSD += m.CostUSD
	s.ExecutionSeconds += m.ExecutionSeconds
}
