// Package research defines the web research agent: prompts, output
// schema, and response parsing.
package research

import (
	"encoding/json"
	"fmt"

	"github.com/jayleekr/hypeprooflab/internal/providers"
)

// PromptKey identifies the research system prompt for override resolution.
const PromptKey = "agents.research.system"

// SystemPrompt is the system prompt for the research agent.
const SystemPrompt = `You are a research specialist focused on gathering accurate information.

Your responsibilities:
1. Use web search to find recent, credible sources
2. Retrieve full content from URLs when needed
3. Prioritize official documentation, research papers, and authoritative sources
4. Summarize findings with clear citations
5. Flag information that requires further verification

Always cite your sources and indicate when information is uncertain.

Return your findings as JSON matching this structure:
{
  "findings": [{"finding": "...", "confidence": "high|medium|low"}],
  "sources": [{"url": "...", "description": "..."}],
  "confidence": "high|medium|low",
  "additional_research": ["area needing more investigation"]
}`

// OutputSchema validates the research agent's structured response.
var OutputSchema = json.RawMessage(`{
  "type": "object",
  "required": ["findings", "sources", "confidence"],
  "properties": {
    "findings": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["finding"],
        "properties": {
          "finding": {"type": "string"},
          "confidence": {"type": "string", "enum": ["high", "medium", "low"]}
        }
      }
    },
    "sources": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["url"],
        "properties": {
          "url": {"type": "string"},
          "description": {"type": "string"}
        }
      }
    },
    "confidence": {"type": "string", "enum": ["high", "medium", "low"]},
    "additional_research": {"type": "array", "items": {"type": "string"}}
  }
}`)

// Finding is a single research discovery with its confidence level.
type Finding struct {
	Finding    string `json:"finding"`
	Confidence string `json:"confidence,omitempty"`
}

// Source is a cited source URL with a short description.
type Source struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Result is the research agent's structured output.
type Result struct {
	Findings           []Finding `json:"findings"`
	Sources            []Source  `json:"sources"`
	Confidence         string    `json:"confidence"`
	AdditionalResearch []string  `json:"additional_research,omitempty"`
	RawResponse        string    `json:"raw_response,omitempty"`
}

// BuildUserPrompt builds the research request for a topic.
func BuildUserPrompt(topic string, _ map[string]any) string {
	return fmt.Sprintf(`Research the following topic and provide comprehensive findings:

Topic: %s

Please search for:
1. Latest information and trends
2. Official sources and documentation
3. Research papers or authoritative articles
4. Key statistics and data points
5. Expert opinions and analysis

Return JSON with findings, sources, an overall confidence level, and areas needing additional research.`, topic)
}

// ParseResult converts a chat result into a structured research result.
// When the response is not valid JSON the raw text is preserved so the
// run still yields usable output.
func ParseResult(res *providers.ChatResult, _ map[string]any) (any, error) {
	out := &Result{RawResponse: res.Content}

	data := res.ParsedJSON
	if len(data) == 0 {
		parsed, err := providers.ParseStructuredJSON(res.Content)
		if err != nil {
			out.Confidence = "low"
			return out, nil
		}
		data = parsed
	}

	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("decoding research output: %w", err)
	}
	return out, nil
}
