package prompts

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolverEmbeddedDefault(t *testing.T) {
	r := NewResolver("", nil)
	r.Register(EmbeddedPrompt{
		Key:  "agents.research.system",
		Text: "You are a research specialist for {{.Topic}}.",
	})

	resolved, err := r.Resolve("agents.research.system")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resolved.IsOverride {
		t.Error("expected embedded default, not override")
	}
	if resolved.Text != "You are a research specialist for {{.Topic}}." {
		t.Errorf("unexpected text: %s", resolved.Text)
	}
	if len(resolved.Variables) != 1 || resolved.Variables[0] != "Topic" {
		t.Errorf("unexpected variables: %v", resolved.Variables)
	}
	if resolved.Hash == "" {
		t.Error("expected hash computed at registration")
	}
}

func TestResolverFileOverride(t *testing.T) {
	dir := t.TempDir()
	overridePath := filepath.Join(dir, "agents.research.system.txt")
	if err := os.WriteFile(overridePath, []byte("Custom research prompt.\n"), 0o644); err != nil {
		t.Fatalf("writing override: %v", err)
	}

	r := NewResolver(dir, nil)
	r.Register(EmbeddedPrompt{
		Key:  "agents.research.system",
		Text: "Embedded default.",
	})

	resolved, err := r.Resolve("agents.research.system")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !resolved.IsOverride {
		t.Error("expected override to win")
	}
	if resolved.Text != "Custom research prompt." {
		t.Errorf("unexpected text: %q", resolved.Text)
	}
}

func TestResolverUnknownKey(t *testing.T) {
	r := NewResolver("", nil)
	if _, err := r.Resolve("agents.unknown.system"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestResolverAllEmbedded(t *testing.T) {
	r := NewResolver("", nil)
	r.Register(EmbeddedPrompt{Key: "a", Text: "one"})
	r.Register(EmbeddedPrompt{Key: "b", Text: "two"})

	if got := len(r.AllEmbedded()); got != 2 {
		t.Errorf("expected 2 embedded prompts, got %d", got)
	}
}
