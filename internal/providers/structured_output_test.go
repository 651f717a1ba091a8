package providers

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseStructuredJSON(t *testing.T) {
	t.Run("plain json", func(t *testing.T) {
		parsed, err := ParseStructuredJSON(`{"key": "value"}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var out map[string]string
		if err := json.Unmarshal(parsed, &out); err != nil {
			t.Fatalf("invalid json returned: %v", err)
		}
		if out["key"] != "value" {
			t.Errorf("unexpected value: %v", out)
		}
	})

	t.Run("fenced json", func(t *testing.T) {
		content := "```json\n{\"key\": \"value\"}\n```"
		parsed, err := ParseStructuredJSON(content)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !json.Valid(parsed) {
			t.Error("expected valid json")
		}
	})

	t.Run("json embedded in prose", func(t *testing.T) {
		content := `Here is the result you asked for:

{"findings": ["a", "b"], "confidence": "high"}

Let me know if you need more detail.`
		parsed, err := ParseStructuredJSON(content)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var out map[string]any
		if err := json.Unmarshal(parsed, &out); err != nil {
			t.Fatalf("invalid json returned: %v", err)
		}
		if out["confidence"] != "high" {
			t.Errorf("unexpected content: %v", out)
		}
	})

	t.Run("no json present", func(t *testing.T) {
		if _, err := ParseStructuredJSON("just some prose with no structure"); err == nil {
			t.Error("expected error for non-json content")
		}
	})
}

func TestValidateStructuredJSON(t *testing.T) {
	schema := json.RawMessage(`{
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"},
			"count": {"type": "integer"}
		}
	}`)

	t.Run("valid document", func(t *testing.T) {
		doc := json.RawMessage(`{"name": "test", "count": 3}`)
		if err := ValidateStructuredJSON(schema, doc); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing required field", func(t *testing.T) {
		doc := json.RawMessage(`{"count": 3}`)
		if err := ValidateStructuredJSON(schema, doc); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("wrong type", func(t *testing.T) {
		doc := json.RawMessage(`{"name": "test", "count": "three"}`)
		if err := ValidateStructuredJSON(schema, doc); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("unwraps schema envelope", func(t *testing.T) {
		wrapped := json.RawMessage(`{"schema": {
			"type": "object",
			"required": ["name"],
			"properties": {"name": {"type": "string"}}
		}}`)
		doc := json.RawMessage(`{"name": "test"}`)
		if err := ValidateStructuredJSON(wrapped, doc); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestMockClientStructuredOutput(t *testing.T) {
	client := NewMockClient()
	client.ResponseJSON = json.RawMessage(`{"answer": 42}`)

	res, err := client.Chat(context.Background(), &ChatRequest{
		Messages:       []Message{{Role: "user", Content: "question"}},
		ResponseFormat: &ResponseFormat{Type: "json_schema"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.ParsedJSON) == 0 {
		t.Fatal("expected parsed json")
	}
	if !strings.Contains(string(res.ParsedJSON), "42") {
		t.Errorf("unexpected parsed json: %s", res.ParsedJSON)
	}
}
