package analysis

import "strings"

// Greeting is the assistant's only reply.
const Greeting = "Hi! I'm your Quanti-Test Assistant 🤖. How can I help you today?"

// Assistant answers sidebar chat prompts.
type Assistant struct{}

// Reply returns the canned greeting for any non-blank prompt.
func (Assistant) Reply(prompt string) (string, bool) {
	if strings.TrimSpace(prompt) == "" {
		return "", false
	}
	return Greeting, true
}
