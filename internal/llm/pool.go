package llm

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"

	"pediatric-triage/internal/common/metrics"
)

// Pool bounds the number of in-flight inferences against a model.
type Pool struct {
	model    Model
	sem      *semaphore.Weighted
	provider string
}

// NewPool allows up to size concurrent Generate calls; size < 1 means 1.
func NewPool(model Model, size int, provider string) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		model:    model,
		sem:      semaphore.NewWeighted(int64(size)),
		provider: provider,
	}
}

// Generate waits for a free slot or for ctx to end, whichever comes first.
func (p *Pool) Generate(ctx context.Context, prompt string) (string, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer p.sem.Release(1)

	metrics.ModelInferenceActive.Inc()
	defer metrics.ModelInferenceActive.Dec()

	start := time.Now()
	out, err := p.model.Generate(ctx, prompt)
	metrics.ModelInferenceDuration.WithLabelValues(p.provider).Observe(time.Since(start).Seconds())
	return out, err
}
