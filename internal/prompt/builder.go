package prompt

import "strings"

// SystemPrompt builds the instruction block sent to every backend,
// embedding the target system description. Identical inputs always produce
// identical output.
func SystemPrompt(systemInfo string) string {
	var parts []string

	parts = append(parts, "You are a terminal command expert that converts natural language questions into precise Unix/Linux/macOS terminal commands.")
	parts = append(parts, "")
	parts = append(parts, "System Information: "+systemInfo)
	parts = append(parts, "")
	parts = append(parts, "Instructions:")
	parts = append(parts, "- Only output the terminal command with no additional formatting, explanations, or commentary")
	parts = append(parts, "- The command should be ready to run directly in the user's shell")
	parts = append(parts, "- If the question is ambiguous, choose the most common/useful interpretation")
	parts = append(parts, "- Focus on practical, commonly used commands")
	parts = append(parts, "- Prefer built-in commands over external tools")
	parts = append(parts, "- If multiple commands are needed, separate them with &&")
	parts = append(parts, "- Do not include markdown, backticks, or any other formatting")
	parts = append(parts, "- The user has NO PACKAGES INSTALLED FOR LANGUAGES. Only default functions are available.")
	parts = append(parts, "")
	parts = append(parts, "Examples:")
	parts = append(parts, `- "list all python files" -> find . -name "*.py" -type f`)
	parts = append(parts, `- "show disk usage" -> du -sh .`)
	parts = append(parts, `- "count lines in all python files" -> find . -name "*.py" -exec wc -l {} + | tail -1`)

	return strings.Join(parts, "\n")
}

// CompletionPrompt builds the single-prompt form used by backends without a
// system/user message split.
func CompletionPrompt(systemInfo, question string) string {
	var parts []string
	parts = append(parts, SystemPrompt(systemInfo))
	parts = append(parts, "")
	parts = append(parts, "User question: "+question)
	parts = append(parts, "")
	parts = append(parts, "Terminal command:")
	return strings.Join(parts, "\n")
}

// ExtractCommand reduces a raw model response to a single command line. It
// takes the first non-empty line, skipping code fences and stripping a
// leading "command:" label or "$ " prompt.
func ExtractCommand(response string) string {
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		if rest, ok := cutPrefixFold(line, "command:"); ok {
			line = strings.TrimSpace(rest)
		}
		line = strings.TrimPrefix(line, "$ ")
		line = strings.TrimSuffix(line, "```")
		line = strings.Trim(line, "`")
		return strings.TrimSpace(line)
	}
	return ""
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}
