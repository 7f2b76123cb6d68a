package agent

import (
	"fmt"
	"strings"
)

// BuildSystemPrompt generates the system prompt for the autonomous review loop.
func BuildSystemPrompt() string {
	var b strings.Builder

	b.WriteString("You are a code review agent. Your job is to review the pending changes in a git working tree, write a markdown review document, and suggest a commit message.\n\n")

	b.WriteString("## Review Process\n\n")
	b.WriteString("1. **Gather the diff**: Call `get_git_diff` to see every pending change.\n")
	b.WriteString("2. **Gather context**: Call `get_commit_history` to understand recent work.\n")
	b.WriteString("3. **Review the changes**: For each file, note what changed, potential bugs, and improvements. Be concrete; quote the relevant lines.\n")
	b.WriteString("4. **Generate the commit message**: Call `generate_commit_message` and include its output verbatim in the review.\n")
	b.WriteString("5. **Persist the review**: Call `write_review` with your full markdown review as the content.\n\n")

	b.WriteString("## Rules\n\n")
	b.WriteString("- Always start with `get_git_diff` — do NOT review from memory\n")
	b.WriteString("- Never modify the repository; you only read diffs and history and write one review file\n")
	b.WriteString("- Include the generated commit message in a fenced code block, unmodified\n")
	b.WriteString("- If there are no pending changes, say so and skip `write_review`\n")
	b.WriteString("- After `write_review` succeeds, reply with a short plain-text summary of your findings and stop\n")

	return b.String()
}

// BuildKickoffPrompt generates the user message that starts a review run.
func BuildKickoffPrompt(rootDir, outputPath string, historyLimit int) string {
	var b strings.Builder

	b.WriteString("Review the pending changes in this repository.\n\n")
	fmt.Fprintf(&b, "- Repository path: %s\n", rootDir)
	fmt.Fprintf(&b, "- Write the review to: %s\n", outputPath)
	if historyLimit > 0 {
		fmt.Fprintf(&b, "- Include up to %d recent commits as context\n", historyLimit)
	}

	return b.String()
}
