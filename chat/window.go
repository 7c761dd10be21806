package chat

import (
	"fmt"
	"strings"
)

// DefaultWindow is how many recent turns are sent as context
const DefaultWindow = 4

// Window formats the last n messages as "{origin}: {text}" lines, oldest
// first. Older turns are dropped, not summarised.
func Window(messages []Message, n int) string {
	if n <= 0 {
		n = DefaultWindow
	}
	if len(messages) > n {
		messages = messages[len(messages)-n:]
	}

	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Origin, msg.Text))
	}
	return strings.Join(lines, "\n")
}
