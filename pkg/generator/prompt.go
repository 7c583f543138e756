package generator

import (
	"fmt"
	"strings"
)

// PromptSettings are the stored style settings that shape generation
// prompts, resolved once per call and passed down.
type PromptSettings struct {
	BrandVoice      string
	WritingStyle    string // professional, conversational, educational, news, casual
	TargetAudience  string
	ContentLength   string // short, medium, long, comprehensive
	IncludeExamples bool
	IncludeStats    bool
	IncludeCTA      bool
}

// stylePrompts are the five fixed writing-style instructions
var stylePrompts = map[string]string{
	"professional":   "Write in a professional, authoritative tone. Use industry terminology appropriately and maintain a formal but accessible voice.",
	"conversational": `Write in a friendly, conversational tone as if talking to a colleague. Use "you" to address the reader directly.`,
	"educational":    "Write in an educational, tutorial-like style. Break down complex concepts into simple steps and explain everything clearly.",
	"news":           "Write in a journalistic news style. Lead with the most important information, use active voice, and be factual and objective.",
	"casual":         "Write in a casual, engaging tone. Be relatable, use humor where appropriate, and keep the reader entertained.",
}

// lengthTokens maps the length setting to the completion token budget
var lengthTokens = map[string]int{
	"short":         1000,
	"medium":        2000,
	"long":          3000,
	"comprehensive": 4000,
}

// lengthWords maps the length setting to the target word range named in
// the prompt text
var lengthWords = map[string]string{
	"short":         "500-700",
	"medium":        "1000-1200",
	"long":          "1500-1800",
	"comprehensive": "2000-2500",
}

// BuildSystemPrompt assembles the system message. The heading convention
// it dictates (# title, ## sections, ### subsections) is a contract the
// response parser and the block converter both rely on.
func BuildSystemPrompt(s PromptSettings) string {
	style, ok := stylePrompts[s.WritingStyle]
	if !ok {
		style = stylePrompts["professional"]
	}

	var sb strings.Builder
	sb.WriteString("You are an expert content writer for a technology blog. Your task is to write high-quality, SEO-optimized blog posts.\n\n")
	sb.WriteString("WRITING STYLE:\n" + style + "\n\n")

	if s.BrandVoice != "" {
		sb.WriteString("BRAND VOICE & PERSONALITY:\n" + s.BrandVoice + "\n\n")
	}
	if s.TargetAudience != "" {
		sb.WriteString("TARGET AUDIENCE:\n" + s.TargetAudience + "\n\n")
	}

	sb.WriteString("FORMATTING REQUIREMENTS:\n")
	sb.WriteString("- Use markdown formatting\n")
	sb.WriteString("- Start with a compelling introduction (no heading needed)\n")
	sb.WriteString("- Use ## for main section headings\n")
	sb.WriteString("- Use ### for subsections if needed\n")
	sb.WriteString("- Use bullet points and numbered lists where appropriate\n")
	sb.WriteString("- Make content scannable with short paragraphs\n")
	sb.WriteString("- Include a conclusion section\n")

	return sb.String()
}

// BuildUserPrompt assembles the user message. The requirement list keeps
// sequential numbering no matter which optional items are enabled.
func BuildUserPrompt(topic, category string, s PromptSettings) string {
	wordCount, ok := lengthWords[s.ContentLength]
	if !ok {
		wordCount = lengthWords["medium"]
	}

	var sb strings.Builder
	sb.WriteString("Write a comprehensive blog post about:\n\n")
	sb.WriteString(fmt.Sprintf("**Topic:** %s\n", topic))
	sb.WriteString(fmt.Sprintf("**Category:** %s\n", category))
	sb.WriteString(fmt.Sprintf("**Target Length:** %s words\n\n", wordCount))

	sb.WriteString("CONTENT REQUIREMENTS:\n")
	requirements := []string{
		"Create an engaging, SEO-friendly title (start with: # Title)",
		"Write a compelling introduction that hooks the reader",
		"Cover the topic thoroughly with well-organized sections",
		"Provide actionable insights and takeaways",
	}
	if s.IncludeExamples {
		requirements = append(requirements, "Include practical examples and real-world use cases")
	}
	if s.IncludeStats {
		requirements = append(requirements, "Include relevant statistics, data, or research when applicable (note: use general industry knowledge)")
	}
	if s.IncludeCTA {
		requirements = append(requirements, "End with a call-to-action that encourages engagement")
	}
	for i, req := range requirements {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, req))
	}

	sb.WriteString("\nIMPORTANT: Write the FULL article content. Do not use placeholders like [Write content here]. Generate complete, publication-ready content.")

	return sb.String()
}

// MaxTokens returns the completion budget for the length setting
func MaxTokens(contentLength string) int {
	if tokens, ok := lengthTokens[contentLength]; ok {
		return tokens
	}
	return lengthTokens["medium"]
}
