package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jayleekr/hypeprooflab/internal/agent"
)

// Recorder accumulates metrics in memory and optionally appends each
// record to a JSONL file for later inspection.
type Recorder struct {
	mu      sync.Mutex
	metrics []Metric
	path    string // empty disables file persistence
}

// NewRecorder creates a metrics recorder. path may be empty to keep
// metrics in memory only.
func NewRecorder(path string) *Recorder {
	return &Recorder{path: path}
}

// Record stores a single metric.
func (r *Recorder) Record(m Metric) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	r.mu.Lock()
	r.metrics = append(r.metrics, m)
	path := r.path
	r.mu.Unlock()

	if path == "" {
		return nil
	}
	return appendJSONL(path, m)
}

// RecordOpts provides attribution for a metric recording.
type RecordOpts struct {
	RunID    string
	Skill    string
	Provider string
	Model    string
}

// RecordAgentResult records metrics from a completed agent run.
func (r *Recorder) RecordAgentResult(opts RecordOpts, agentName string, result *agent.Result) error {
	if result == nil {
		return fmt.Errorf("nil agent result")
	}

	m := Metric{
		RunID:    opts.RunID,
		Skill:    opts.Skill,
		Agent:    agentName,
		Provider: opts.Provider,
		Model:    opts.Model,

		ExecutionSeconds: result.ExecutionTime.Seconds(),
		Attempts:         result.Attempts,
		Success:          result.Ok(),
		Status:           string(result.Status),

		CreatedAt: time.Now(),
	}

	if result.Usage != nil {
		m.PromptTokens = result.Usage.InputTokens
		m.CompletionTokens = result.Usage.OutputTokens
		m.TotalTokens = result.Usage.TotalTokens
		m.CostUSD = result.Usage.CostUSD
	}
	if !result.Ok() {
		m.ErrorType = string(result.Status)
	}

	return r.Record(m)
}

// All returns a copy of every recorded metric.
func (r *Recorder) All() []Metric {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Metric, len(r.metrics))
	copy(out, r.metrics)
	return out
}

// Summarize aggregates all recorded metrics.
func (r *Recorder) Summarize() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	var s Summary
	for _, m := range r.metrics {
		s.add(m)
	}
	return s
}

// SummarizeByAgent aggregates recorded metrics per agent.
func (r *Recorder) SummarizeByAgent() map[string]Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]Summary)
	for _, m := range r.metrics {
		s := out[m.Agent]
		s.add(m)
		out[m.Agent] = s
	}
	return out
}

// appendJSONL appends a metric as a single JSON line.
func appendJSONL(path string, m Metric) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling metric: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening metrics file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing metric: %w", err)
	}
	return nil
}
