package home

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultDirName is the default name for the hypeproof home directory.
	DefaultDirName = ".hypeproof"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"

	// AgentsFileName is the agent definitions file name.
	AgentsFileName = "agents.yaml"

	// SkillsFileName is the skill definitions file name.
	SkillsFileName = "skills.yaml"

	// PromptsDirName is the subdirectory for prompt override files.
	PromptsDirName = "prompts"

	// DraftsDirName is the subdirectory for produced content drafts.
	DraftsDirName = "drafts"

	// MetricsFileName is the JSONL file agent run metrics append to.
	MetricsFileName = "metrics.jsonl"
)

// Dir represents the hypeproof home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.hypeproof).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// AgentsPath returns the path to the agent definitions file.
func (d *Dir) AgentsPath() string {
	return filepath.Join(d.path, AgentsFileName)
}

// SkillsPath returns the path to the skill definitions file.
func (d *Dir) SkillsPath() string {
	return filepath.Join(d.path, SkillsFileName)
}

// PromptsDir returns the directory for prompt override files.
func (d *Dir) PromptsDir() string {
	return filepath.Join(d.path, PromptsDirName)
}

// DraftsDir returns the directory for produced content drafts.
func (d *Dir) DraftsDir() string {
	return filepath.Join(d.path, DraftsDirName)
}

// MetricsPath returns the path to the metrics JSONL file.
func (d *Dir) MetricsPath() string {
	return filepath.Join(d.path, MetricsFileName)
}

// DraftPath returns a timestamped path for a new draft about a topic.
func (d *Dir) DraftPath(topic, ext string) string {
	slug := slugify(topic)
	stamp := time.Now().Format("20060102-150405")
	return filepath.Join(d.DraftsDir(), fmt.Sprintf("%s-%s.%s", stamp, slug, ext))
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	for _, dir := range []string{d.PromptsDir(), d.DraftsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}

// AgentsExists returns true if the agents file exists in the home directory.
func (d *Dir) AgentsExists() bool {
	_, err := os.Stat(d.AgentsPath())
	return err == nil
}

// SkillsExists returns true if the skills file exists in the home directory.
func (d *Dir) SkillsExists() bool {
	_, err := os.Stat(d.SkillsPath())
	return err == nil
}

// slugify turns a topic into a short filesystem-safe token.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) > 48 {
		slug = slug[:48]
	}
	if slug == "" {
		slug = "draft"
	}
	return slug
}
