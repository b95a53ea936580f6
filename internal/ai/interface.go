// README: AI provider contracts (text completion and embeddings).
package ai

import "context"

// LLMProvider is the contract for free-text generation. The resolver treats
// it as an opaque, possibly-slow, possibly-failing function: text in, text out.
type LLMProvider interface {
	// Complete generates an answer for the assembled prompt.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Embedder turns text into a vector. The keyword classifiers never touch
// it; the FAQ pipeline attaches embeddings to captured draft questions so
// curators can cluster near-duplicates.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
