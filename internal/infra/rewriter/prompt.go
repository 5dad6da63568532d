package rewriter

import (
	"fmt"
	"strings"

	"healthinfo-simplifier/internal/domain/entity"
)

const (
	bulletsRule    = "3. Organize information using clear bullet points where appropriate to improve readability."
	paragraphsRule = "3. Do NOT use bullet points. Write in clear, concise paragraphs."
	keepLangRule   = "Ensure the text remains in the same language as the Original Text."
	translateRule  = "IMPORTANT: Translate the simplified text into %s. Ensure the translation is culturally appropriate and uses standard medical terminology for that language."
)

// BuildPrompt renders the health-communicator prompt for req.
func BuildPrompt(req Request) string {
	formatting := paragraphsRule
	if req.UseBullets {
		formatting = bulletsRule
	}

	language := keepLangRule
	if entity.IsTranslation(req.TargetLanguage) {
		language = fmt.Sprintf(translateRule, entity.NormalizeLanguage(req.TargetLanguage))
	}

	var b strings.Builder
	b.WriteString("You are an expert health communicator specializing in health literacy and patient education.\n")
	b.WriteString("Your task is to rewrite the following health education text based on the specific instruction provided.\n\n")
	fmt.Fprintf(&b, "Instruction: %s\n\n", req.Instruction)
	b.WriteString("Guidelines:\n")
	b.WriteString("1. Maintain all medical accuracy and key instructions.\n")
	b.WriteString("2. Use active voice.\n")
	b.WriteString(formatting + "\n")
	b.WriteString("4. Return ONLY the rewritten text.\n")
	b.WriteString("5. Do NOT include conversational filler like \"Here is the rewritten text\".\n")
	b.WriteString("6. Do NOT use markdown bolding (do not use double asterisks **).\n")
	b.WriteString("7. Ensure the tone is empathetic but professional.\n")
	b.WriteString("8. " + language + "\n")
	b.WriteString("9. Do NOT add advice, conclusions, summaries, or new facts. Use ONLY the exact information that appears in the original text. If something is not explicitly written in the original text, do NOT include it.\n\n")
	b.WriteString("Original Text:\n")
	b.WriteString("\"" + req.Text + "\"")
	return b.String()
}

// cleanCompletion trims the model output and falls back when it is empty.
func cleanCompletion(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return FallbackResponse
	}
	return s
}
