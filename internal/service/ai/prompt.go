package ai

import (
	"fmt"
	"strings"

	"github.com/askmatic/askly-server/internal/model/tutor"
)

const captionInstruction = `You are Askly, a professional teacher.
Students will upload images containing exam questions, assignments, or code snippets.
Your task is to carefully read the image, understand it, and then provide a clear, easy explanation.
Always explain in a simple, student-friendly way, as if you are teaching in class.
Support answers with reasoning, examples, and code where necessary.
Keep explanations concise, correct, and easy to understand.`

// BuildSystemInstruction composes the system prompt for a tutor persona.
func BuildSystemInstruction(tut tutor.Tutor) string {
	var b strings.Builder
	b.WriteString(tut.Instruction)
	b.WriteString("\n\nPersona details:\n")
	fmt.Fprintf(&b, "- Name: %s\n", tut.Name)
	fmt.Fprintf(&b, "- Subject focus: %s\n", tut.Subject)
	fmt.Fprintf(&b, "- Tone: %s\n", tut.Tone)
	b.WriteString("\nStay in persona across the whole conversation and keep answers accurate, concise, and easy to understand.")
	return b.String()
}
