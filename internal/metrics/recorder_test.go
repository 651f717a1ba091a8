package metrics

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jayleekr/hypeprooflab/internal/agent"
)

func TestRecorderRecordAgentResult(t *testing.T) {
	r := NewRecorder("")

	res := &agent.Result{
		Status: agent.StatusSuccess,
		Usage: &agent.TokenUsage{
			InputTokens:  100,
			OutputTokens: 50,
			TotalTokens:  150,
			CostUSD:      0.01,
		},
		ExecutionTime: 2 * time.Second,
		Attempts:      1,
	}

	if err := r.RecordAgentResult(RecordOpts{Provider: "mock"}, "research", res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := r.All()
	if len(all) != 1 {
		t.Fatalf("expected 1 metric, got %d", len(all))
	}

	m := all[0]
	if m.Agent != "research" || m.Provider != "mock" {
		t.Errorf("unexpected attribution: %+v", m)
	}
	if !m.Success || m.TotalTokens != 150 {
		t.Errorf("unexpected metric: %+v", m)
	}
	if m.CreatedAt.IsZero() {
		t.Error("expected created_at set")
	}
}

func TestRecorderRecordsFailure(t *testing.T) {
	r := NewRecorder("")

	res := &agent.Result{
		Status:       agent.StatusTimeout,
		ErrorMessage: "agent research exceeded timeout of 30s",
		Attempts:     3,
	}

	if err := r.RecordAgentResult(RecordOpts{}, "research", res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := r.All()[0]
	if m.Success {
		t.Error("expected failure recorded")
	}
	if m.ErrorType != "timeout" {
		t.Errorf("unexpected error type: %s", m.ErrorType)
	}
	if m.Attempts != 3 {
		t.Errorf("unexpected attempts: %d", m.Attempts)
	}
}

func TestRecorderNilResult(t *testing.T) {
	r := NewRecorder("")
	if err := r.RecordAgentResult(RecordOpts{}, "research", nil); err == nil {
		t.Error("expected error for nil result")
	}
}

func TestRecorderSummaries(t *testing.T) {
	r := NewRecorder("")

	ok := &agent.Result{
		Status: agent.StatusSuccess,
		Usage:  &agent.TokenUsage{TotalTokens: 100, CostUSD: 0.01},
	}
	failed := &agent.Result{Status: agent.StatusError, ErrorMessage: "boom"}

	_ = r.RecordAgentResult(RecordOpts{}, "research", ok)
	_ = r.RecordAgentResult(RecordOpts{}, "research", ok)
	_ = r.RecordAgentResult(RecordOpts{}, "writing", failed)

	summary := r.Summarize()
	if summary.Runs != 3 || summary.Successes != 2 || summary.Failures != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if summary.TotalTokens != 200 {
		t.Errorf("unexpected tokens: %d", summary.TotalTokens)
	}

	byAgent := r.SummarizeByAgent()
	if byAgent["research"].Runs != 2 {
		t.Errorf("unexpected research summary: %+v", byAgent["research"])
	}
	if byAgent["writing"].Failures != 1 {
		t.Errorf("unexpected writing summary: %+v", byAgent["writing"])
	}
}

func TestRecorderAppendsJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.jsonl")
	r := NewRecorder(path)

	res := &agent.Result{Status: agent.StatusSuccess, Usage: &agent.TokenUsage{TotalTokens: 10}}
	_ = r.RecordAgentResult(RecordOpts{}, "research", res)
	_ = r.RecordAgentResult(RecordOpts{}, "analysis", res)

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening metrics file: %v", err)
	}
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var m Metric
		if err := json.Unmarshal(scanner.Bytes(), &m); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", lines+1, err)
		}
		lines++
	}
	if lines != 2 {
		t.Errorf("expected 2 JSONL lines, got %d", lines)
	}
}
