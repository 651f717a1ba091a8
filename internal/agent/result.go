package agent

import "time"

// Status classifies the outcome of an agent run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusTimeout Status = "timeout"
)

// TokenUsage holds token accounting for a single agent run.
type TokenUsage struct {
	InputTokens  int     `json:"input_tokens" yaml:"input_tokens"`
	OutputTokens int     `json:"output_tokens" yaml:"output_tokens"`
	TotalTokens  int     `json:"total_tokens" yaml:"total_tokens"`
	CostUSD      float64 `json:"cost_usd,omitempty" yaml:"cost_usd,omitempty"`
}

// Normalize derives TotalTokens when the provider omits it.
func (u *TokenUsage) Normalize() {
	if u.TotalTokens == 0 {
		u.TotalTokens = u.InputTokens + u.OutputTokens
	}
}

// Add accumulates usage from another run.
func (u *TokenUsage) Add(other *TokenUsage) {
	if other == nil {
		return
	}
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.TotalTokens += other.TotalTokens
	u.CostUSD += other.CostUSD
}

// Result holds the outcome of an agent run.
//
// Invariant: Status is StatusSuccess exactly when ErrorMessage is empty.
// Constructors in this package maintain this; Consistent() checks it.
type Result struct {
	Status        Status        `json:"status" yaml:"status"`
	Output        any           `json:"output,omitempty" yaml:"output,omitempty"`
	Usage         *TokenUsage   `json:"token_usage,omitempty" yaml:"token_usage,omitempty"`
	ExecutionTime time.Duration `json:"execution_time" yaml:"execution_time"`
	Attempts      int           `json:"attempts" yaml:"attempts"`
	ErrorMessage  string        `json:"error_message,omitempty" yaml:"error_message,omitempty"`
}

// Ok reports whether the run completed successfully.
func (r *Result) Ok() bool {
	return r.Status == StatusSuccess
}

// Consistent reports whether the status field agrees with error presence.
func (r *Result) Consistent() bool {
	if r.Status == StatusSuccess {
		return r.ErrorMessage == ""
	}
	return r.ErrorMessage != ""
}
