package config

import (
	"strings"
	"testing"
)

func TestParseSkills(t *testing.T) {
	t.Run("parses valid file", func(t *testing.T) {
		data := []byte(`
skills:
  - name: produce
    description: Full content pipeline
    agents: [research, analysis, writing]
    quality_threshold: 0.8
  - name: survey
    agents: [research]
    parallel: true
`)
		skills, err := ParseSkills(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(skills) != 2 {
			t.Fatalf("expected 2 skills, got %d", len(skills))
		}
		if skills[0].QualityThreshold != 0.8 {
			t.Errorf("unexpected threshold: %f", skills[0].QualityThreshold)
		}
		if !skills[1].Parallel {
			t.Error("expected parallel flag to parse")
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		data := []byte(`
skills:
  - name: produce
    agents: [research]
    steps: [research]
`)
		if _, err := ParseSkills(data); err == nil {
			t.Error("expected error for unknown field")
		}
	})

	t.Run("rejects skill without agents", func(t *testing.T) {
		data := []byte(`
skills:
  - name: empty
    agents: []
`)
		_, err := ParseSkills(data)
		if err == nil || !strings.Contains(err.Error(), "no agents") {
			t.Errorf("expected no-agents error, got %v", err)
		}
	})

	t.Run("rejects out of range threshold", func(t *testing.T) {
		data := []byte(`
skills:
  - name: produce
    agents: [research]
    quality_threshold: 1.5
`)
		if _, err := ParseSkills(data); err == nil {
			t.Error("expected error for threshold above 1")
		}
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		data := []byte(`
skills:
  - name: produce
    agents: [research]
  - name: produce
    agents: [writing]
`)
		if _, err := ParseSkills(data); err == nil {
			t.Error("expected duplicate name error")
		}
	})
}

func TestDefaultSkills(t *testing.T) {
	skills := DefaultSkills()
	if len(skills) != 1 {
		t.Fatalf("expected 1 built-in skill, got %d", len(skills))
	}
	if skills[0].Name != "produce" {
		t.Errorf("unexpected skill name: %s", skills[0].Name)
	}
	if len(skills[0].Agents) != 3 {
		t.Errorf("expected 3 agents in produce skill, got %v", skills[0].Agents)
	}
}
