package generation

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// contentPromptTemplate asks the model for ready-to-post content for a platform.
const contentPromptTemplate = `
You are an expert content creator. Write a {{.Platform}} about "{{.Topic}}".

Tone: {{.Tone}}

Requirements:
- If it's a Twitter Thread, separate tweets with "---".
- If it's a LinkedIn Post, use professional formatting and hashtags.
- If it's a Blog Post, include a catchy title and clear headings.
- If it's an Email, include a subject line.
- If it's an Instagram Caption, include engaging emojis, 20-30 relevant hashtags, and a short script idea for a Reel/Story if applicable.
- If it's a TikTok Script, provide a scene-by-scene breakdown with visual cues and dialogue.
- If it's a YouTube Video Script, include a hook, intro, body paragraphs with visual cues, and a strong call-to-action (CTA).

Make it engaging, high-quality, and ready to post.
`

// refinePromptTemplate asks for a bare rewrite with no commentary around it.
const refinePromptTemplate = `
You are an expert editor. Rewrite the following text based on this instruction: "{{.Instruction}}".

ORIGINAL TEXT:
"{{.Text}}"

Output ONLY the rewritten text. Do not include any explanations or quotes.
`

var (
	contentPrompt = template.Must(template.New("content").Parse(contentPromptTemplate))
	refinePrompt  = template.Must(template.New("refine").Parse(refinePromptTemplate))
)

// contentPromptData represents the data passed to the content template
type contentPromptData struct {
	Topic    string
	Platform string
	Tone     string
}

// refinePromptData represents the data passed to the refine template
type refinePromptData struct {
	Text        string
	Instruction string
}

// BuildContentPrompt assembles the generation prompt for a topic, platform and tone.
// All three fields are required.
func BuildContentPrompt(topic, platform, tone string) (string, error) {
	if isBlank(topic) || isBlank(platform) || isBlank(tone) {
		return "", InvalidArgument("Missing required fields")
	}
	return execute(contentPrompt, contentPromptData{
		Topic:    strings.TrimSpace(topic),
		Platform: strings.TrimSpace(platform),
		Tone:     strings.TrimSpace(tone),
	})
}

// BuildRefinePrompt assembles the rewrite prompt for text and an instruction.
func BuildRefinePrompt(text, instruction string) (string, error) {
	if isBlank(text) || isBlank(instruction) {
		return "", InvalidArgument("Missing content or instruction")
	}
	return execute(refinePrompt, refinePromptData{
		Text:        text,
		Instruction: strings.TrimSpace(instruction),
	})
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s prompt template: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
