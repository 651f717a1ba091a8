// Package writing defines the content creation agent: prompts, format
// handling, and response parsing.
package writing

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jayleekr/hypeprooflab/internal/providers"
)

// PromptKey identifies the writing system prompt for override resolution.
const PromptKey = "agents.writing.system"

// SystemPrompt is the system prompt for the writing agent.
const SystemPrompt = `You are a professional content writer and storyteller specializing in creating engaging, well-structured content.

Your responsibilities:
1. Create compelling narratives from research and analysis data
2. Adapt tone and style based on target audience (technical, general, executive)
3. Structure content with clear introduction, body, and conclusion
4. Use engaging language that maintains reader/listener interest
5. Format content appropriately for the target medium (podcast, article, docs)

Content Formats:
- Podcast Scripts: Conversational tone, natural speech patterns, clear host cues
- Technical Articles: Professional tone, clear explanations, code examples where relevant
- Documentation: Clear, concise, structured with headings and examples

Quality Standards:
- Clear narrative arc with engaging introduction
- Well-organized sections with logical flow
- Appropriate technical depth for target audience
- Professional polish with attention to detail

Always maintain professional quality while adapting to the specific format and audience needs.`

// Supported content formats.
const (
	FormatArticle       = "article"
	FormatPodcastScript = "podcast_script"
	FormatDocumentation = "documentation"
)

// Options controls the deliverable's shape.
type Options struct {
	Format   string // article, podcast_script, documentation
	Tone     string // professional, casual, technical, engaging
	Audience string // technical, general, executive
}

// WithDefaults fills unset fields with the standard article profile.
func (o Options) WithDefaults() Options {
	if o.Format == "" {
		o.Format = FormatArticle
	}
	if o.Tone == "" {
		o.Tone = "professional"
	}
	if o.Audience == "" {
		o.Audience = "technical"
	}
	return o
}

// Metadata describes the produced content.
type Metadata struct {
	WordCount       int      `json:"word_count"`
	Tone            string   `json:"tone"`
	Audience        string   `json:"audience"`
	Sections        []string `json:"sections,omitempty"`
	ReadingMinutes  int      `json:"reading_minutes"`
	SpeakingMinutes int      `json:"speaking_minutes"`
}

// Result is the writing agent's structured output.
type Result struct {
	Content  string            `json:"content"`
	Format   string            `json:"format"`
	Sections map[string]string `json:"sections,omitempty"`
	Metadata Metadata          `json:"metadata"`
}

// formatInstructions maps a content format to its writing requirements.
var formatInstructions = map[string]string{
	FormatPodcastScript: `- Use conversational, natural speech patterns
- Include host cues and transitions in [brackets]
- Break complex ideas into digestible segments
- Use rhetorical questions to engage listeners
- Aim for 1500-2000 words (10-15 minutes spoken)`,
	FormatArticle: `- Use professional but engaging tone
- Include clear headings and subheadings
- Use bullet points for key takeaways
- Include relevant examples or case studies
- Aim for 1200-1800 words
- Use active voice and clear language`,
	FormatDocumentation: `- Use clear, concise language
- Include step-by-step instructions where applicable
- Use numbered lists for procedures
- Include examples for complex concepts
- Aim for clarity over creativity`,
}

// BuildUserPrompt builds the writing request. Upstream analysis output is
// passed through data under the "analysis" key; Options fields may be
// overridden via the "format", "tone", and "audience" keys.
func BuildUserPrompt(task string, data map[string]any) string {
	opts := OptionsFromData(data)

	var b strings.Builder
	b.WriteString("Create engaging content based on the following requirements:\n\n")
	fmt.Fprintf(&b, "Task: %s\n", task)
	fmt.Fprintf(&b, "Format: %s\n", opts.Format)
	fmt.Fprintf(&b, "Tone: %s\n", opts.Tone)
	fmt.Fprintf(&b, "Target Audience: %s\n", opts.Audience)

	if data != nil {
		if analysisData, ok := data["analysis"]; ok {
			b.WriteString("\nSource Material (Analysis Data):\n")
			if s, ok := analysisData.(string); ok {
				b.WriteString(s)
			} else if encoded, err := json.MarshalIndent(analysisData, "", "  "); err == nil {
				b.Write(encoded)
			} else {
				fmt.Fprintf(&b, "%v", analysisData)
			}
			b.WriteString("\n")
		}
	}

	if instructions, ok := formatInstructions[opts.Format]; ok {
		b.WriteString("\nFormat-Specific Requirements:\n")
		b.WriteString(instructions)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, `
Content Requirements:
1. Create a compelling introduction that hooks the reader/listener
2. Organize content into clear, logical sections
3. Maintain consistent tone throughout
4. Adjust technical depth for %s audience
5. Include a strong conclusion with key takeaways

Please structure your response with clear sections:
- Introduction
- Main Content (organized into subsections)
- Conclusion`, opts.Audience)

	return b.String()
}

// OptionsFromData extracts writing options from the shared data map.
func OptionsFromData(data map[string]any) Options {
	var opts Options
	if data != nil {
		if v, ok := data["format"].(string); ok {
			opts.Format = v
		}
		if v, ok := data["tone"].(string); ok {
			opts.Tone = v
		}
		if v, ok := data["audience"].(string); ok {
			opts.Audience = v
		}
	}
	return opts.WithDefaults()
}

// ParseResult converts a chat result into a structured writing result.
// The data map supplies the options the content was requested with.
func ParseResult(res *providers.ChatResult, data map[string]any) (any, error) {
	opts := OptionsFromData(data)
	content := res.Content
	sections := ExtractSections(content)
	wordCount := len(strings.Fields(content))

	sectionNames := make([]string, 0, len(sections))
	for name := range sections {
		sectionNames = append(sectionNames, name)
	}
	sort.Strings(sectionNames)

	return &Result{
		Content:  content,
		Format:   opts.Format,
		Sections: sections,
		Metadata: Metadata{
			WordCount:       wordCount,
			Tone:            opts.Tone,
			Audience:        opts.Audience,
			Sections:        sectionNames,
			ReadingMinutes:  ReadingTime(wordCount),
			SpeakingMinutes: SpeakingTime(wordCount),
		},
	}, nil
}

// sectionPattern matches markdown headings or bold section labels.
var sectionPattern = regexp.MustCompile(`(?m)^(?:\*\*|#{1,3}\s*)([A-Z][^:*\n]+)(?:\*\*)?:?\s*$`)

// ExtractSections splits content into named sections based on headings.
// Content before the first heading is ignored; when no headings are found
// the whole text is returned under "content".
func ExtractSections(content string) map[string]string {
	locs := sectionPattern.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return map[string]string{"content": strings.TrimSpace(content)}
	}

	sections := make(map[string]string, len(locs))
	for i, loc := range locs {
		name := content[loc[2]:loc[3]]
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))

		end := len(content)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		sections[key] = strings.TrimSpace(content[loc[1]:end])
	}
	return sections
}

// ReadingTime estimates reading minutes at 200 words per minute.
func ReadingTime(wordCount int) int {
	const wordsPerMinute = 200
	minutes := (wordCount + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// SpeakingTime estimates spoken minutes at 150 words per minute.
func SpeakingTime(wordCount int) int {
	const wordsPerMinute = 150
	minutes := (wordCount + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
