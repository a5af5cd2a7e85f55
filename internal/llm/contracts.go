package llm

import "context"

// Completer is the language-model collaborator: one prompt in, free-form
// text out. The reply is expected to contain a JSON object, optionally
// Markdown-fenced; nothing about it is trusted.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
