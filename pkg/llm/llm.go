package llm

import "context"

// Client generates text from a prompt. It is the only interface the
// rest of teamlens needs from the language model.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
