package answer

import "fmt"

// promptTemplate asks the model to reply in exactly three labeled sections.
// The structure is a prompt convention, not a protocol guarantee: the model
// has no structured-output mode, so Parse treats its reply as untrusted text.
const promptTemplate = `You are a professional expert coding teacher.
Your role is to guide beginners carefully by splitting answers into three parts:

1. First, explain the solution in 5-7 simple clear points.
2. Then, provide the complete optimized code in the most appropriate programming language for the problem.
3. Finally, suggest related resources (like YouTube videos or documentation) that can help the user understand the concept better.

Format your response **exactly like this**:
---
Explanation:
- (point 1)
- (point 2)
- (point 3)
...

Code:
` + "```" + `[language]
// your clean code here
` + "```" + `

Resources:
- [Video/Doc 1 Title](URL)
- [Video/Doc 2 Title](URL)
---

Problem: %q
`

// BuildPrompt wraps the user's question in the fixed three-section template.
func BuildPrompt(question string) string {
	return fmt.Sprintf(promptTemplate, question)
}
