package analysis

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jayleekr/hypeprooflab/internal/providers"
)

func TestBuildUserPrompt(t *testing.T) {
	t.Run("without research data", func(t *testing.T) {
		prompt := BuildUserPrompt("summarize trends", nil)
		if !strings.Contains(prompt, "summarize trends") {
			t.Error("expected request in prompt")
		}
		if strings.Contains(prompt, "Research Data to Analyze") {
			t.Error("unexpected research section without data")
		}
	})

	t.Run("includes upstream research", func(t *testing.T) {
		data := map[string]any{
			"research": map[string]any{"findings": []string{"finding one"}},
		}
		prompt := BuildUserPrompt("summarize trends", data)
		if !strings.Contains(prompt, "Research Data to Analyze") {
			t.Error("expected research section")
		}
		if !strings.Contains(prompt, "finding one") {
			t.Error("expected research content in prompt")
		}
	})

	t.Run("passes string data through", func(t *testing.T) {
		data := map[string]any{"research": "raw research notes"}
		prompt := BuildUserPrompt("task", data)
		if !strings.Contains(prompt, "raw research notes") {
			t.Error("expected string data verbatim")
		}
	})
}

func TestParseResult(t *testing.T) {
	t.Run("structured response", func(t *testing.T) {
		raw := `{
			"themes": ["efficiency", "adoption"],
			"patterns": [{"pattern": "growth", "evidence": ["data"], "confidence": "high"}],
			"insights": [{"insight": "invest early", "confidence": "medium"}],
			"summary": "Two sentence summary.",
			"recommendations": ["do the thing"]
		}`

		out, err := ParseResult(&providers.ChatResult{
			Content:    raw,
			ParsedJSON: json.RawMessage(raw),
		}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		res := out.(*Result)
		if len(res.Themes) != 2 {
			t.Errorf("unexpected themes: %v", res.Themes)
		}
		if len(res.Patterns) != 1 || res.Patterns[0].Pattern != "growth" {
			t.Errorf("unexpected patterns: %+v", res.Patterns)
		}
		if res.Summary == "" {
			t.Error("expected summary")
		}
	})

	t.Run("falls back to raw text", func(t *testing.T) {
		out, err := ParseResult(&providers.ChatResult{Content: "unstructured analysis"}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		res := out.(*Result)
		if res.Summary != "unstructured analysis" {
			t.Errorf("expected raw content as summary, got %q", res.Summary)
		}
	})
}
