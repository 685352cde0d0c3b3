// Package llm abstracts the generative model used for triage classification.
package llm

import (
	"context"
	"errors"
)

var (
	ErrModelUnavailable = errors.New("MODEL_UNAVAILABLE")
	ErrEmptyCompletion  = errors.New("EMPTY_COMPLETION")
)

// Model produces a completion for a prompt. Implementations must honour
// ctx cancellation.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerateFunc adapts a function to the Model interface.
type GenerateFunc func(ctx context.Context, prompt string) (string, error)

func (f GenerateFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
