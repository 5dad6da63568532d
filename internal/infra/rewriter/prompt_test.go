package rewriter

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt_Paragraphs(t *testing.T) {
	got := BuildPrompt(Request{
		Text:           "Hypertension is a serious condition.",
		Instruction:    "Simplify this text to a Grade 6 reading level.",
		TargetLanguage: "Original",
	})

	want := `You are an expert health communicator specializing in health literacy and patient education.
Your task is to rewrite the following health education text based on the specific instruction provided.

Instruction: Simplify this text to a Grade 6 reading level.

Guidelines:
1. Maintain all medical accuracy and key instructions.
2. Use active voice.
3. Do NOT use bullet points. Write in clear, concise paragraphs.
4. Return ONLY the rewritten text.
5. Do NOT include conversational filler like "Here is the rewritten text".
6. Do NOT use markdown bolding (do not use double asterisks **).
7. Ensure the tone is empathetic but professional.
8. Ensure the text remains in the same language as the Original Text.
9. Do NOT add advice, conclusions, summaries, or new facts. Use ONLY the exact information that appears in the original text. If something is not explicitly written in the original text, do NOT include it.

Original Text:
"Hypertension is a serious condition."`

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildPrompt() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPrompt_Bullets(t *testing.T) {
	got := BuildPrompt(Request{Text: "x", Instruction: "y", UseBullets: true})

	assert.Contains(t, got, "\n3. Organize information using clear bullet points where appropriate to improve readability.\n")
	assert.NotContains(t, got, "Do NOT use bullet points")
}

func TestBuildPrompt_Language(t *testing.T) {
	tests := []struct {
		language  string
		translate bool
	}{
		{"", false},
		{"Original", false},
		{"English", false},
		{"Spanish", true},
		{"Chinese (Simplified)", true},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			got := BuildPrompt(Request{Text: "x", Instruction: "y", TargetLanguage: tt.language})
			if tt.translate {
				assert.Contains(t, got, "8. IMPORTANT: Translate the simplified text into "+tt.language+". Ensure the translation is culturally appropriate")
				assert.NotContains(t, got, keepLangRule)
			} else {
				assert.Contains(t, got, "8. "+keepLangRule)
				assert.NotContains(t, got, "Translate the simplified text")
			}
		})
	}
}

func TestBuildPrompt_KeepsTextVerbatim(t *testing.T) {
	text := "Line one.\nShe said \"rest\"."
	got := BuildPrompt(Request{Text: text, Instruction: "y"})
	assert.True(t, strings.HasSuffix(got, "Original Text:\n\""+text+"\""))
}

func TestCleanCompletion(t *testing.T) {
	assert.Equal(t, FallbackResponse, cleanCompletion(""))
	assert.Equal(t, FallbackResponse, cleanCompletion(" \n\t"))
	assert.Equal(t, "Rest often.", cleanCompletion("\n Rest often. \n"))
}
