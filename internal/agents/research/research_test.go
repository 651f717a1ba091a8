package research

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jayleekr/hypeprooflab/internal/providers"
)

func TestBuildUserPrompt(t *testing.T) {
	prompt := BuildUserPrompt("quantum computing trends", nil)

	if !strings.Contains(prompt, "quantum computing trends") {
		t.Error("expected topic in prompt")
	}
	if !strings.Contains(prompt, "sources") {
		t.Error("expected source instructions in prompt")
	}
}

func TestParseResult(t *testing.T) {
	t.Run("structured response", func(t *testing.T) {
		raw := `{
			"findings": [{"finding": "adoption is growing", "confidence": "high"}],
			"sources": [{"url": "https://example.com", "description": "industry report"}],
			"confidence": "high",
			"additional_research": ["cost trends"]
		}`

		out, err := ParseResult(&providers.ChatResult{
			Content:    raw,
			ParsedJSON: json.RawMessage(raw),
		}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		res, ok := out.(*Result)
		if !ok {
			t.Fatalf("unexpected type %T", out)
		}
		if len(res.Findings) != 1 || res.Findings[0].Confidence != "high" {
			t.Errorf("unexpected findings: %+v", res.Findings)
		}
		if len(res.Sources) != 1 || res.Sources[0].URL != "https://example.com" {
			t.Errorf("unexpected sources: %+v", res.Sources)
		}
		if len(res.AdditionalResearch) != 1 {
			t.Errorf("unexpected additional research: %v", res.AdditionalResearch)
		}
		if res.RawResponse == "" {
			t.Error("expected raw response preserved")
		}
	})

	t.Run("recovers json from prose", func(t *testing.T) {
		content := "Here are my findings:\n\n" +
			`{"findings": [{"finding": "x"}], "sources": [], "confidence": "medium"}`

		out, err := ParseResult(&providers.ChatResult{Content: content}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		res := out.(*Result)
		if res.Confidence != "medium" {
			t.Errorf("unexpected confidence: %s", res.Confidence)
		}
	})

	t.Run("falls back to raw text", func(t *testing.T) {
		out, err := ParseResult(&providers.ChatResult{Content: "plain prose, no structure"}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		res := out.(*Result)
		if res.RawResponse != "plain prose, no structure" {
			t.Error("expected raw response preserved on fallback")
		}
		if res.Confidence != "low" {
			t.Errorf("expected low confidence on fallback, got %s", res.Confidence)
		}
	})
}

func TestOutputSchemaIsValidJSON(t *testing.T) {
	var schema map[string]any
	if err := json.Unmarshal(OutputSchema, &schema); err != nil {
		t.Fatalf("output schema is not valid JSON: %v", err)
	}
	if schema["type"] != "object" {
		t.Error("expected object schema")
	}
}
