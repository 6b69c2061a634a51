// Package llm wraps the generative model behind a small prompt-in,
// text-out interface.
package llm

import "context"

// Generator produces an answer from a fully rendered prompt. Stream invokes
// fn for every token fragment as it arrives and returns the complete text.
type Generator interface {
	Call(ctx context.Context, prompt string) (string, error)
	Stream(ctx context.Context, prompt string, fn func(chunk string) error) (string, error)
}
