// Package prompts provides prompt management with embedded defaults and
// file-based overrides.
//
// Embedded prompt constants in code are the source of truth for defaults.
// A user may override any prompt by dropping a file named <key>.txt into
// the prompt overrides directory (~/.hypeproof/prompts).
//
// Resolution order for a key:
//  1. Override file (per-installation customization, if present)
//  2. Embedded default (from constants in code)
package prompts

// EmbeddedPrompt represents a built-in prompt registered by an agent.
type EmbeddedPrompt struct {
	Key         string   // Hierarchical key: agents.research.system
	Text        string   // The prompt text (Go template)
	Description string   // Human-readable description
	Variables   []string // Extracted template variables
	Hash        string   // SHA256 hash of the text for change detection
}

// ResolvedPrompt is the result of resolving a prompt key.
type ResolvedPrompt struct {
	Key        string   `json:"key"`
	Text       string   `json:"text"`
	Variables  []string `json:"variables,omitempty"`
	IsOverride bool     `json:"is_override"` // true if loaded from an override file
	Hash       string   `json:"hash"`        // SHA256 of the resolved text
}
