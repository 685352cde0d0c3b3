package llm

import (
	"context"
	"fmt"
	"sync"
)

// Loader constructs a ready-to-use model.
type Loader func(ctx context.Context) (Model, error)

// Lazy defers loading the model until the first Generate call. Concurrent
// first callers wait on a single load. A failed load is not remembered, the
// next call tries again. The loaded model lives for the process lifetime.
type Lazy struct {
	mu    sync.Mutex
	load  Loader
	model Model
}

func NewLazy(load Loader) *Lazy {
	return &Lazy{load: load}
}

func (l *Lazy) Generate(ctx context.Context, prompt string) (string, error) {
	m, err := l.get(ctx)
	if err != nil {
		return "", err
	}
	return m.Generate(ctx, prompt)
}

// Loaded reports whether the model has been loaded.
func (l *Lazy) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.model != nil
}

func (l *Lazy) get(ctx context.Context) (Model, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.model != nil {
		return l.model, nil
	}
	m, err := l.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	l.model = m
	return m, nil
}
