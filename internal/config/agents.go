package config

import (
	"bytes"
	"fmt"
	"os"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/jayleekr/hypeprooflab/internal/agent"
)

// AgentCfg configures a single agent.
// Stored at: ~/.hypeproof/agents.yaml
type AgentCfg struct {
	Name           string   `yaml:"name"`
	Role           string   `yaml:"role"`
	Tools          []string `yaml:"tools,omitempty"`
	Model          string   `yaml:"model,omitempty"`
	MaxTokens      int      `yaml:"max_tokens,omitempty"`
	Temperature    float64  `yaml:"temperature,omitempty"`
	MaxRetries     int      `yaml:"max_retries,omitempty"`
	TimeoutSeconds int      `yaml:"timeout_seconds,omitempty"`
}

// AgentsFile is the top-level structure of agents.yaml.
type AgentsFile struct {
	Agents []AgentCfg `yaml:"agents"`
}

// DefaultAgents returns the built-in agent configurations. Retry,
// timeout, and model fields are left unset so the defaults section of
// config.yaml applies to them via ApplyAgentDefaults.
func DefaultAgents() []AgentCfg {
	return []AgentCfg{
		{
			Name:  "research",
			Role:  "Research Specialist",
			Tools: []string{"web_search", "web_fetch"},
		},
		{
			Name: "analysis",
			Role: "Analysis Specialist",
		},
		{
			Name: "writing",
			Role: "Content Writer",
		},
	}
}

// LoadAgents reads and validates agent configurations from a YAML file.
// Unknown fields are rejected so typos surface as errors instead of
// silently falling back to defaults.
func LoadAgents(path string, defaults DefaultsCfg) ([]AgentCfg, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &agent.ConfigError{Msg: fmt.Sprintf("reading agents file %s", path), Err: err}
	}
	return ParseAgents(data, defaults)
}

// ParseAgents parses agent configurations from YAML bytes.
func ParseAgents(data []byte, defaults DefaultsCfg) ([]AgentCfg, error) {
	var file AgentsFile
	dec := yamlv3.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, &agent.ConfigError{Msg: "parsing agents file", Err: err}
	}

	if len(file.Agents) == 0 {
		return nil, &agent.ConfigError{Msg: "agents file defines no agents"}
	}

	seen := make(map[string]bool, len(file.Agents))
	for i := range file.Agents {
		a := &file.Agents[i]
		if a.Name == "" {
			return nil, &agent.ConfigError{Msg: fmt.Sprintf("agent at index %d has no name", i)}
		}
		if seen[a.Name] {
			return nil, &agent.ConfigError{Msg: fmt.Sprintf("duplicate agent name %q", a.Name)}
		}
		seen[a.Name] = true
	}

	return ApplyAgentDefaults(file.Agents, defaults), nil
}

// ApplyAgentDefaults fills omitted model, retry, and timeout fields
// from the defaults section, falling back to package-level defaults.
// Built-in and file-loaded configurations go through the same pass.
func ApplyAgentDefaults(cfgs []AgentCfg, defaults DefaultsCfg) []AgentCfg {
	for i := range cfgs {
		a := &cfgs[i]
		if a.Model == "" {
			a.Model = defaults.Model
		}
		if a.MaxRetries <= 0 {
			if defaults.MaxRetries > 0 {
				a.MaxRetries = defaults.MaxRetries
			} else {
				a.MaxRetries = agent.DefaultMaxRetries
			}
		}
		if a.TimeoutSeconds <= 0 {
			if defaults.TimeoutSeconds > 0 {
				a.TimeoutSeconds = defaults.TimeoutSeconds
			} else {
				a.TimeoutSeconds = int(agent.DefaultTimeout.Seconds())
			}
		}
	}
	return cfgs
}

// WriteDefaultAgents writes the built-in agent configurations to path.
func WriteDefaultAgents(path string) error {
	data, err := yamlv3.Marshal(AgentsFile{Agents: DefaultAgents()})
	if err != nil {
		return fmt.Errorf("failed to marshal agents: %w", err)
	}

	header := []byte(`# HypeProof Lab agent definitions
# Omitted fields fall back to the defaults section of config.yaml

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
