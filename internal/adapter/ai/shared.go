package ai

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/autodebugdev/autodebug/internal/core"
)

// buildPrompt assembles the single debugging prompt: the user's stated
// goal, the full current source fenced with the language tag, and the
// diagnostics section with "None" placeholders for empty streams.
func buildPrompt(req core.FixRequest) string {
	stderrText := strings.TrimSpace(req.Stderr)
	if stderrText == "" {
		stderrText = "None. The code ran without crashing."
	}
	stdoutText := strings.TrimSpace(req.Stdout)
	if stdoutText == "" {
		stdoutText = "None"
	}

	return fmt.Sprintf(`You are an expert %s debugging agent specialized in code reasoning.
Your task is to fix both runtime errors and logical flaws based on the user's description.

### ULTIMATE GOAL (USER REQUEST):
"%s"

### BROKEN CODE (Current Version):
`+"```%s\n%s\n```"+`

### EXECUTION RESULT (Diagnostics):
- STDERR (Errors): %s
- STDOUT (Output): %s

### INSTRUCTION:
1. Analyze the ULTIMATE GOAL and the EXECUTION RESULT.
2. Fix the code to address the issue described by the user, prioritizing functional correctness.
3. Return ONLY the fully fixed %s code inside a markdown block.
4. NO explanations, no added text outside the code block.
`,
		req.Language.Name,
		req.UserRequest,
		req.Language.FenceTag,
		req.Code,
		stderrText,
		stdoutText,
		req.Language.Name,
	)
}

var anyFencePattern = regexp.MustCompile("(?s)```[a-zA-Z0-9+-]*\\n?(.*?)```")

// ExtractCode pulls the candidate source out of a model response: first
// a fenced block tagged with the target language, then any fenced
// block, finally the raw trimmed text.
func ExtractCode(response, fenceTag string) string {
	if fenceTag != "" {
		tagged := regexp.MustCompile("(?s)```" + regexp.QuoteMeta(fenceTag) + "\\n?(.*?)```")
		if m := tagged.FindStringSubmatch(response); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	if m := anyFencePattern.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1])
	}

	return strings.TrimSpace(response)
}
