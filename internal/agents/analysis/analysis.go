// Package analysis defines the insight synthesis agent: prompts, output
// schema, and response parsing.
package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jayleekr/hypeprooflab/internal/providers"
)

// PromptKey identifies the analysis system prompt for override resolution.
const PromptKey = "agents.analysis.system"

// SystemPrompt is the system prompt for the analysis agent.
const SystemPrompt = `You are an analysis specialist focused on synthesizing research findings into actionable insights.

Your responsibilities:
1. Extract key themes and patterns from research data
2. Identify trends and correlations in findings
3. Generate structured analysis reports with clear sections
4. Provide data-driven insights with supporting evidence
5. Prioritize findings by relevance and impact

Always support insights with evidence and indicate confidence levels.

Return your analysis as JSON matching this structure:
{
  "themes": ["theme"],
  "patterns": [{"pattern": "...", "evidence": ["..."], "confidence": "high|medium|low"}],
  "insights": [{"insight": "...", "supporting_data": ["..."], "confidence": "high|medium|low"}],
  "summary": "2-3 sentence overview",
  "recommendations": ["actionable next step"]
}`

// OutputSchema validates the analysis agent's structured response.
var OutputSchema = json.RawMessage(`{
  "type": "object",
  "required": ["themes", "summary"],
  "properties": {
    "themes": {"type": "array", "items": {"type": "string"}},
    "patterns": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["pattern"],
        "properties": {
          "pattern": {"type": "string"},
          "evidence": {"type": "array", "items": {"type": "string"}},
          "confidence": {"type": "string", "enum": ["high", "medium", "low"]}
        }
      }
    },
    "insights": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["insight"],
        "properties": {
          "insight": {"type": "string"},
          "supporting_data": {"type": "array", "items": {"type": "string"}},
          "confidence": {"type": "string", "enum": ["high", "medium", "low"]}
        }
      }
    },
    "summary": {"type": "string"},
    "recommendations": {"type": "array", "items": {"type": "string"}}
  }
}`)

// Pattern is a trend discovered in research data.
type Pattern struct {
	Pattern    string   `json:"pattern"`
	Evidence   []string `json:"evidence,omitempty"`
	Confidence string   `json:"confidence,omitempty"`
}

// Insight is a data-driven conclusion with supporting evidence.
type Insight struct {
	Insight        string   `json:"insight"`
	SupportingData []string `json:"supporting_data,omitempty"`
	Confidence     string   `json:"confidence,omitempty"`
}

// Result is the analysis agent's structured output.
type Result struct {
	Themes          []string  `json:"themes"`
	Patterns        []Pattern `json:"patterns,omitempty"`
	Insights        []Insight `json:"insights,omitempty"`
	Summary         string    `json:"summary"`
	Recommendations []string  `json:"recommendations,omitempty"`
	RawResponse     string    `json:"raw_response,omitempty"`
}

// BuildUserPrompt builds the analysis request. Upstream research output
// is passed through data under the "research" key.
func BuildUserPrompt(task string, data map[string]any) string {
	var b strings.Builder
	b.WriteString("Analyze the following and provide comprehensive insights:\n\n")
	fmt.Fprintf(&b, "Analysis Request: %s\n", task)

	if data != nil {
		if research, ok := data["research"]; ok {
			b.WriteString("\nResearch Data to Analyze:\n")
			writeData(&b, research)
		}
	}

	b.WriteString(`
Please provide:
1. Key Themes (3-5 main themes)
2. Patterns (trends and correlations with evidence)
3. Insights (data-driven with supporting data)
4. Summary (concise 2-3 sentence overview)
5. Recommendations (actionable next steps)

For each finding, indicate confidence level (high/medium/low). Return JSON.`)

	return b.String()
}

func writeData(b *strings.Builder, v any) {
	if s, ok := v.(string); ok {
		b.WriteString(s)
		b.WriteString("\n")
		return
	}
	if data, err := json.MarshalIndent(v, "", "  "); err == nil {
		b.Write(data)
		b.WriteString("\n")
		return
	}
	fmt.Fprintf(b, "%v\n", v)
}

// ParseResult converts a chat result into a structured analysis result.
func ParseResult(res *providers.ChatResult, _ map[string]any) (any, error) {
	out := &Result{RawResponse: res.Content}

	data := res.ParsedJSON
	if len(data) == 0 {
		parsed, err := providers.ParseStructuredJSON(res.Content)
		if err != nil {
			out.Summary = res.Content
			return out, nil
		}
		data = parsed
	}

	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("decoding analysis output: %w", err)
	}
	return out, nil
}
