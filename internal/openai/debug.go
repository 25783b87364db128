package openai

import (
	"fmt"
	"os"
	"strings"
)

// debugConversation prints the outgoing conversation to stderr so the
// primary output stream stays a single command line.
func debugConversation(messages []ChatMessage, model string) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintln(os.Stderr, "🔍 DEBUG: OpenAI API Request")
	fmt.Fprintln(os.Stderr, rule)
	fmt.Fprintf(os.Stderr, "Model: %s\n", model)
	fmt.Fprintln(os.Stderr, strings.Repeat("-", 50))

	for i, msg := range messages {
		fmt.Fprintf(os.Stderr, "[%d] %s:\n", i+1, strings.ToUpper(msg.Role))
		fmt.Fprintln(os.Stderr, msg.Content)
		if i < len(messages)-1 {
			fmt.Fprintln(os.Stderr, strings.Repeat("-", 30))
		}
	}

	fmt.Fprintln(os.Stderr, rule)
	fmt.Fprintln(os.Stderr)
}
