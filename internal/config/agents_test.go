package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/jayleekr/hypeprooflab/internal/agent"
)

func TestParseAgents(t *testing.T) {
	defaults := DefaultsCfg{Model: "anthropic/claude-sonnet-4", MaxRetries: 3, TimeoutSeconds: 300}

	t.Run("parses valid file", func(t *testing.T) {
		data := []byte(`
agents:
  - name: research
    role: Research Specialist
    tools: [web_search, web_fetch]
    max_retries: 5
    timeout_seconds: 120
  - name: writing
    role: Content Writer
`)
		agents, err := ParseAgents(data, defaults)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(agents) != 2 {
			t.Fatalf("expected 2 agents, got %d", len(agents))
		}

		if agents[0].MaxRetries != 5 {
			t.Errorf("explicit retries overridden: %d", agents[0].MaxRetries)
		}
		if agents[0].TimeoutSeconds != 120 {
			t.Errorf("explicit timeout overridden: %d", agents[0].TimeoutSeconds)
		}
		if len(agents[0].Tools) != 2 {
			t.Errorf("expected 2 tools, got %v", agents[0].Tools)
		}
	})

	t.Run("applies defaults to omitted fields", func(t *testing.T) {
		data := []byte(`
agents:
  - name: analysis
    role: Analysis Specialist
`)
		agents, err := ParseAgents(data, defaults)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		a := agents[0]
		if a.Model != "anthropic/claude-sonnet-4" {
			t.Errorf("expected default model, got %s", a.Model)
		}
		if a.MaxRetries != 3 {
			t.Errorf("expected default retries, got %d", a.MaxRetries)
		}
		if a.TimeoutSeconds != 300 {
			t.Errorf("expected default timeout, got %d", a.TimeoutSeconds)
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		data := []byte(`
agents:
  - name: research
    role: Research Specialist
    retries: 5
`)
		_, err := ParseAgents(data, defaults)
		if err == nil {
			t.Fatal("expected error for unknown field")
		}
		var cfgErr *agent.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("expected ConfigError, got %T", err)
		}
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		data := []byte(`
agents:
  - name: research
    role: One
  - name: research
    role: Two
`)
		_, err := ParseAgents(data, defaults)
		if err == nil || !strings.Contains(err.Error(), "duplicate") {
			t.Errorf("expected duplicate name error, got %v", err)
		}
	})

	t.Run("rejects missing name", func(t *testing.T) {
		data := []byte(`
agents:
  - role: Anonymous
`)
		if _, err := ParseAgents(data, defaults); err == nil {
			t.Error("expected error for missing name")
		}
	})

	t.Run("rejects empty file", func(t *testing.T) {
		if _, err := ParseAgents([]byte("agents: []\n"), defaults); err == nil {
			t.Error("expected error for empty agent list")
		}
	})
}

func TestApplyAgentDefaults(t *testing.T) {
	t.Run("built-in agents honor configured defaults", func(t *testing.T) {
		defaults := DefaultsCfg{Model: "openai/gpt-4o", MaxRetries: 1, TimeoutSeconds: 2}
		agents := ApplyAgentDefaults(DefaultAgents(), defaults)

		for _, a := range agents {
			if a.MaxRetries != 1 {
				t.Errorf("agent %s: expected configured retries 1, got %d", a.Name, a.MaxRetries)
			}
			if a.TimeoutSeconds != 2 {
				t.Errorf("agent %s: expected configured timeout 2, got %d", a.Name, a.TimeoutSeconds)
			}
			if a.Model != "openai/gpt-4o" {
				t.Errorf("agent %s: expected configured model, got %s", a.Name, a.Model)
			}
		}
	})

	t.Run("explicit values win over defaults", func(t *testing.T) {
		cfgs := []AgentCfg{{Name: "research", MaxRetries: 5, TimeoutSeconds: 60, Model: "custom"}}
		out := ApplyAgentDefaults(cfgs, DefaultsCfg{Model: "other", MaxRetries: 1, TimeoutSeconds: 2})

		if out[0].MaxRetries != 5 || out[0].TimeoutSeconds != 60 || out[0].Model != "custom" {
			t.Errorf("explicit fields overridden: %+v", out[0])
		}
	})

	t.Run("falls back to package defaults when unconfigured", func(t *testing.T) {
		out := ApplyAgentDefaults([]AgentCfg{{Name: "analysis"}}, DefaultsCfg{})
		if out[0].MaxRetries != 3 {
			t.Errorf("expected fallback retries 3, got %d", out[0].MaxRetries)
		}
		if out[0].TimeoutSeconds != 300 {
			t.Errorf("expected fallback timeout 300, got %d", out[0].TimeoutSeconds)
		}
	})
}

func TestDefaultAgents(t *testing.T) {
	agents := DefaultAgents()
	if len(agents) != 3 {
		t.Fatalf("expected 3 built-in agents, got %d", len(agents))
	}

	names := make(map[string]bool)
	for _, a := range agents {
		names[a.Name] = true
	}
	for _, want := range []string{"research", "analysis", "writing"} {
		if !names[want] {
			t.Errorf("missing built-in agent %q", want)
		}
	}
}
