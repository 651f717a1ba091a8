package config

import (
	"bytes"
	"fmt"
	"os"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/jayleekr/hypeprooflab/internal/agent"
)

// SkillCfg configures a multi-agent skill: an ordered chain of agents
// producing a combined deliverable.
// Stored at: ~/.hypeproof/skills.yaml
type SkillCfg struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Agents      []string `yaml:"agents"`
	Parallel    bool     `yaml:"parallel,omitempty"`
	// QualityThreshold is recorded with results but does not gate them.
	QualityThreshold float64 `yaml:"quality_threshold,omitempty"`
}

// SkillsFile is the top-level structure of skills.yaml.
type SkillsFile struct {
	Skills []SkillCfg `yaml:"skills"`
}

// DefaultSkills returns the built-in skill configurations.
func DefaultSkills() []SkillCfg {
	return []SkillCfg{
		{
			Name:        "produce",
			Description: "Research a topic, analyze the findings, and draft content",
			Agents:      []string{"research", "analysis", "writing"},
		},
	}
}

// LoadSkills reads and validates skill configurations from a YAML file.
func LoadSkills(path string) ([]SkillCfg, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &agent.ConfigError{Msg: fmt.Sprintf("reading skills file %s", path), Err: err}
	}
	return ParseSkills(data)
}

// ParseSkills parses skill configurations from YAML bytes.
// Unknown fields are rejected, matching ParseAgents.
func ParseSkills(data []byte) ([]SkillCfg, error) {
	var file SkillsFile
	dec := yamlv3.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, &agent.ConfigError{Msg: "parsing skills file", Err: err}
	}

	seen := make(map[string]bool, len(file.Skills))
	for i, s := range file.Skills {
		if s.Name == "" {
			return nil, &agent.ConfigError{Msg: fmt.Sprintf("skill at index %d has no name", i)}
		}
		if seen[s.Name] {
			return nil, &agent.ConfigError{Msg: fmt.Sprintf("duplicate skill name %q", s.Name)}
		}
		seen[s.Name] = true

		if len(s.Agents) == 0 {
			return nil, &agent.ConfigError{Msg: fmt.Sprintf("skill %q lists no agents", s.Name)}
		}
		if s.QualityThreshold < 0 || s.QualityThreshold > 1 {
			return nil, &agent.ConfigError{Msg: fmt.Sprintf("skill %q quality_threshold must be within [0, 1]", s.Name)}
		}
	}

	return file.Skills, nil
}

// WriteDefaultSkills writes the built-in skill configurations to path.
func WriteDefaultSkills(path string) error {
	data, err := yamlv3.Marshal(SkillsFile{Skills: DefaultSkills()})
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}

	header := []byte(`# HypeProof Lab skill definitions
# A skill chains agents in order; each agent receives the previous results

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
