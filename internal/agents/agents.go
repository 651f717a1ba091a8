// Package agents wires the built-in agent definitions to configuration,
// prompt resolution, and LLM providers.
package agents

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jayleekr/hypeprooflab/internal/agent"
	"github.com/jayleekr/hypeprooflab/internal/agents/analysis"
	"github.com/jayleekr/hypeprooflab/internal/agents/research"
	"github.com/jayleekr/hypeprooflab/internal/agents/writing"
	"github.com/jayleekr/hypeprooflab/internal/config"
	"github.com/jayleekr/hypeprooflab/internal/prompts"
	"github.com/jayleekr/hypeprooflab/internal/providers"
	"github.com/jayleekr/hypeprooflab/internal/registry"
)

// Deps bundles the shared infrastructure an agent factory needs.
type Deps struct {
	Providers *providers.Registry
	Resolver  *prompts.Resolver
	Provider  string // LLM provider name to route agent calls through
	Logger    *slog.Logger
}

// builtin describes one of the built-in agent kinds.
type builtin struct {
	systemPrompt string
	promptKey    string
	outputSchema []byte
	buildPrompt  func(task string, data map[string]any) string
	parseOutput  func(res *providers.ChatResult, data map[string]any) (any, error)
}

var builtins = map[string]builtin{
	"research": {
		systemPrompt: research.SystemPrompt,
		promptKey:    research.PromptKey,
		outputSchema: research.OutputSchema,
		buildPrompt:  research.BuildUserPrompt,
		parseOutput:  research.ParseResult,
	},
	"analysis": {
		systemPrompt: analysis.SystemPrompt,
		promptKey:    analysis.PromptKey,
		outputSchema: analysis.OutputSchema,
		buildPrompt:  analysis.BuildUserPrompt,
		parseOutput:  analysis.ParseResult,
	},
	"writing": {
		systemPrompt: writing.SystemPrompt,
		promptKey:    writing.PromptKey,
		buildPrompt:  writing.BuildUserPrompt,
		parseOutput:  writing.ParseResult,
	},
}

// RegisterPrompts registers the built-in system prompts with the resolver
// so override files can be discovered and listed.
func RegisterPrompts(resolver *prompts.Resolver) {
	resolver.Register(prompts.EmbeddedPrompt{
		Key:         research.PromptKey,
		Text:        research.SystemPrompt,
		Description: "Research agent system prompt",
	})
	resolver.Register(prompts.EmbeddedPrompt{
		Key:         analysis.PromptKey,
		Text:        analysis.SystemPrompt,
		Description: "Analysis agent system prompt",
	})
	resolver.Register(prompts.EmbeddedPrompt{
		Key:         writing.PromptKey,
		Text:        writing.SystemPrompt,
		Description: "Writing agent system prompt",
	})
}

// NewFactory returns a registry factory for a configured agent.
// The runner is built lazily: prompt overrides and provider lookups
// happen on first Get, not at registration.
func NewFactory(cfg config.AgentCfg, deps Deps) (registry.Factory, error) {
	kind, ok := builtins[cfg.Name]
	if !ok {
		return nil, &agent.ConfigError{Msg: fmt.Sprintf("unknown agent kind %q", cfg.Name)}
	}

	return func() (*agent.Runner, error) {
		client, err := deps.Providers.Get(deps.Provider)
		if err != nil {
			return nil, &agent.ConfigError{Msg: fmt.Sprintf("agent %q: provider %q", cfg.Name, deps.Provider), Err: err}
		}

		systemPrompt := kind.systemPrompt
		if deps.Resolver != nil {
			if resolved, err := deps.Resolver.Resolve(kind.promptKey); err == nil {
				systemPrompt = resolved.Text
			}
		}

		def := agent.Definition{
			Name:         cfg.Name,
			Role:         cfg.Role,
			SystemPrompt: systemPrompt,
			BuildPrompt:  kind.buildPrompt,
			Tools:        cfg.Tools,
			Model:        cfg.Model,
			MaxTokens:    cfg.MaxTokens,
			Temperature:  cfg.Temperature,
			MaxRetries:   cfg.MaxRetries,
			Timeout:      time.Duration(cfg.TimeoutSeconds) * time.Second,
			OutputSchema: kind.outputSchema,
			ParseOutput:  kind.parseOutput,
		}

		return agent.NewRunner(def, client, deps.Logger)
	}, nil
}

// RegisterAll registers factories for every configured agent.
func RegisterAll(reg *registry.Registry, cfgs []config.AgentCfg, deps Deps) error {
	for _, cfg := range cfgs {
		factory, err := NewFactory(cfg, deps)
		if err != nil {
			return err
		}
		if err := reg.Register(cfg.Name, factory); err != nil {
			return err
		}
	}
	return nil
}
