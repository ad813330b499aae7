package render

import (
	"fmt"
	"strings"

	"research-agents/internal/analyzer"
	"research-agents/internal/intent"
	"research-agents/internal/wiki"
)

const nextStepsBlock = `### 🚀 Next steps
1. Work through the key points above in order.
2. Set up a small hands-on experiment for each one.
3. Revisit the source article once the basics feel familiar.`

var remediationSuggestions = []string{
	"Rephrase the question using the subject's common name.",
	"Check the spelling of names and places.",
	"Ask about a broader topic and narrow down from there.",
}

// Render produces the final Markdown answer for a pipeline run. Given
// well-formed inputs it never fails; rendering is pure, so identical inputs
// always produce identical text.
func Render(query string, research wiki.Result, analysis analyzer.Result, mode intent.Mode) string {
	if mode == intent.ModeNoContent {
		return renderNoContent(query, research)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## 📚 %s\n\n", research.Topic)
	b.WriteString(banner(mode))
	fmt.Fprintf(&b, "**Difficulty:** %s\n\n", analysis.Difficulty)

	switch mode {
	case intent.ModeGettingStarted:
		b.WriteString("Start with these essentials:\n\n")
		for _, point := range analysis.KeyPoints {
			fmt.Fprintf(&b, "- **%s**\n", point)
		}
		b.WriteString("\n")
		b.WriteString(nextStepsBlock)
		b.WriteString("\n\n")
	case intent.ModeComparison:
		b.WriteString("Points to weigh when comparing:\n\n")
		writeBullets(&b, analysis.KeyPoints)
	default:
		b.WriteString("Key points:\n\n")
		writeBullets(&b, analysis.KeyPoints)
	}

	writeFooter(&b, research.URL, analysis.Advisory)
	return b.String()
}

func banner(mode intent.Mode) string {
	switch mode {
	case intent.ModeGettingStarted:
		return "🚀 *Getting started guide*\n\n"
	case intent.ModeComparison:
		return "⚖️ *Comparison briefing*\n\n"
	default:
		return "📖 *Topic overview*\n\n"
	}
}

func writeBullets(b *strings.Builder, points []string) {
	for _, point := range points {
		fmt.Fprintf(b, "- %s\n", point)
	}
	b.WriteString("\n")
}

func writeFooter(b *strings.Builder, url, advisory string) {
	if url != "" {
		fmt.Fprintf(b, "🔗 Source: %s\n\n", url)
	}
	fmt.Fprintf(b, "_%s_\n", advisory)
}

// renderNoContent explains the failure and suggests remediations. The reason
// shown prefers the structured fetch error, then falls back to a generic
// message.
func renderNoContent(query string, research wiki.Result) string {
	topic := research.Topic
	if topic == "" {
		topic = "(no topic derived)"
	}

	reason := failureReason(research)

	var b strings.Builder
	b.WriteString("## ❌ No answer found\n\n")
	fmt.Fprintf(&b, "I could not find reference material for **%q**.\n\n", query)
	fmt.Fprintf(&b, "- Topic attempted: %s\n", topic)
	fmt.Fprintf(&b, "- Reason: %s\n\n", reason)
	b.WriteString("Suggestions:\n\n")
	for _, s := range remediationSuggestions {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	return b.String()
}

func failureReason(research wiki.Result) string {
	switch {
	case research.Error == "not found":
		return fmt.Sprintf("no reference entry exists for %q", research.Topic)
	case research.Error != "":
		return research.Error
	case research.OK && research.Summary == "":
		return "the reference entry has no summary text"
	default:
		return "the research step returned no usable content"
	}
}
