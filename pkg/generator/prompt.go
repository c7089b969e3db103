package generator

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the instruction prompt for one block generation.
func BuildPrompt(gc Context, templateID string) (prompt string) {
	var sb strings.Builder

	sb.WriteString("You are writing one block of a first-person career narrative.\n\n")
	sb.WriteString(fmt.Sprintf("Block: %s\n", templateID))
	sb.WriteString(fmt.Sprintf("Voice: the %s mask, %s temperament, %s tone.\n", gc.Mask, gc.Personality, gc.Tone))

	if len(gc.FocusTags) > 0 {
		sb.WriteString(fmt.Sprintf("Focus areas: %s\n", strings.Join(gc.FocusTags, ", ")))
	}

	if len(gc.RecentEvents) > 0 {
		sb.WriteString("\nEvidence, most recent first:\n")
		for _, event := range gc.RecentEvents {
			sb.WriteString(fmt.Sprintf("- %s\n", event))
		}
	}

	sb.WriteString("\nRULES:\n")
	sb.WriteString("1. Write a single paragraph, no headings or lists.\n")
	sb.WriteString("2. Use ONLY the evidence above. Do not invent events, employers, or numbers.\n")
	sb.WriteString("3. Stay in the stated voice and tone throughout.\n")
	sb.WriteString("4. Return plain text only, no markdown fences.\n")

	prompt = sb.String()

	return prompt
}
