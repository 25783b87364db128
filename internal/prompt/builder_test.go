package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemPromptDeterministic(t *testing.T) {
	a := SystemPrompt("Linux x86_64\nShell: /bin/bash")
	b := SystemPrompt("Linux x86_64\nShell: /bin/bash")

	assert.Equal(t, a, b)
	assert.Contains(t, a, "System Information: Linux x86_64")
	assert.Contains(t, a, "Only output the terminal command")
}

func TestCompletionPromptEmbedsQuestion(t *testing.T) {
	p := CompletionPrompt("Linux", "show disk usage")

	assert.Contains(t, p, SystemPrompt("Linux"))
	assert.Contains(t, p, "User question: show disk usage")
	assert.Contains(t, p, "Terminal command:")
}

func TestExtractCommand(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{"plain", "du -sh .", "du -sh ."},
		{"surrounding whitespace", "  du -sh .\t\n", "du -sh ."},
		{"leading blank lines", "\n\ndu -sh .", "du -sh ."},
		{"fenced block", "```sh\ndu -sh .\n```", "du -sh ."},
		{"inline backticks", "`du -sh .`", "du -sh ."},
		{"command label", "Command: du -sh .", "du -sh ."},
		{"shell prompt prefix", "$ du -sh .", "du -sh ."},
		{"only first line", "du -sh .\nThis shows disk usage.", "du -sh ."},
		{"empty", "", ""},
		{"whitespace only", "   \n\t\n", ""},
		{"fences only", "```\n```", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCommand(tt.response))
		})
	}
}
