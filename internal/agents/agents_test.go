package agents

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jayleekr/hypeprooflab/internal/agents/research"
	"github.com/jayleekr/hypeprooflab/internal/config"
	"github.com/jayleekr/hypeprooflab/internal/prompts"
	"github.com/jayleekr/hypeprooflab/internal/providers"
	"github.com/jayleekr/hypeprooflab/internal/registry"
)

func testDeps(t *testing.T) (Deps, *providers.MockClient) {
	t.Helper()

	mock := providers.NewMockClient()
	provReg := providers.NewRegistry()
	provReg.Register("mock", mock)

	resolver := prompts.NewResolver("", nil)
	RegisterPrompts(resolver)

	return Deps{
		Providers: provReg,
		Resolver:  resolver,
		Provider:  "mock",
	}, mock
}

func writeOverride(t *testing.T, dir, key, text string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, key+".txt"), []byte(text), 0o644); err != nil {
		t.Fatalf("writing override: %v", err)
	}
}

func TestRegisterAll(t *testing.T) {
	deps, _ := testDeps(t)
	reg := registry.New(nil)

	if err := RegisterAll(reg, config.DefaultAgents(), deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"research", "analysis", "writing"} {
		if !reg.Has(name) {
			t.Errorf("expected %s registered", name)
		}
	}
}

func TestNewFactoryUnknownKind(t *testing.T) {
	deps, _ := testDeps(t)

	_, err := NewFactory(config.AgentCfg{Name: "translator"}, deps)
	if err == nil {
		t.Error("expected error for unknown agent kind")
	}
}

func TestFactoryBuildsWorkingRunner(t *testing.T) {
	deps, mock := testDeps(t)
	mock.ResponseJSON = json.RawMessage(`{
		"findings": [{"finding": "x", "confidence": "high"}],
		"sources": [{"url": "https://example.com"}],
		"confidence": "high"
	}`)

	reg := registry.New(nil)
	if err := RegisterAll(reg, config.DefaultAgents(), deps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	runner, err := reg.Get("research")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := runner.Run(context.Background(), "some topic", nil)
	if !res.Ok() {
		t.Fatalf("expected success, got %s: %s", res.Status, res.ErrorMessage)
	}

	out, ok := res.Output.(*research.Result)
	if !ok {
		t.Fatalf("unexpected output type %T", res.Output)
	}
	if out.Confidence != "high" {
		t.Errorf("unexpected confidence: %s", out.Confidence)
	}
}

func TestFactoryUsesPromptOverride(t *testing.T) {
	deps, _ := testDeps(t)

	dir := t.TempDir()
	deps.Resolver = prompts.NewResolver(dir, nil)
	RegisterPrompts(deps.Resolver)

	writeOverride(t, dir, research.PromptKey, "Overridden research prompt.")

	factory, err := NewFactory(config.AgentCfg{Name: "research"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	runner, err := factory()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if runner.Definition().SystemPrompt != "Overridden research prompt." {
		t.Errorf("expected override applied, got %q", runner.Definition().SystemPrompt)
	}
}

func TestFactoryFailsForMissingProvider(t *testing.T) {
	deps, _ := testDeps(t)
	deps.Provider = "nonexistent"

	factory, err := NewFactory(config.AgentCfg{Name: "research"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := factory(); err == nil {
		t.Error("expected factory error for missing provider")
	}
}
