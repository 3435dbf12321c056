package ai

import "context"

// Client sends one prompt to a hosted model and returns its full text output.
// An empty systemPrompt selects plain single-turn generation.
type Client interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
