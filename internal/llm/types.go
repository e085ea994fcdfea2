package llm

import "context"

// Request is a single chat-completion call: persona, instruction and generation budget.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// Completer turns a fully formed instruction into generated text.
// An empty result means the call failed.
type Completer interface {
	Complete(ctx context.Context, instruction string) string
}
