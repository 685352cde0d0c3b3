// Package classifier asks the generative model for a triage verdict and
// turns whatever it answers into a well-formed one.
package classifier

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	apperrors "pediatric-triage/internal/common/errors"
	"pediatric-triage/internal/common/logger"
	"pediatric-triage/internal/common/metrics"
	"pediatric-triage/internal/llm"
	"pediatric-triage/internal/models"
)

const (
	FallbackReasoning = "AI analysis error. Precautionary triage applied."

	DefaultTimeout = 60 * time.Second
	cacheKeyPrefix = "triage:classification:"
)

// Source tells where a verdict came from.
type Source string

const (
	SourceModel    Source = "model"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)

// Fallback reasons, used as metric labels.
const (
	ReasonModelError     = "model_error"
	ReasonTimeout        = "timeout"
	ReasonNoJSON         = "no_json"
	ReasonIncompleteJSON = "incomplete_json"
	ReasonInvalidJSON    = "invalid_json"
	ReasonSchema         = "schema"
)

// Cache stores serialized verdicts keyed by prompt hash.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
}

type Classifier struct {
	model    llm.Model
	cache    Cache
	cacheTTL time.Duration
	timeout  time.Duration
	logger   logger.Logger
}

type Option func(*Classifier)

// WithTimeout bounds a single inference. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Classifier) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithCache enables the verdict cache. A nil cache disables it.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Classifier) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

func New(model llm.Model, log logger.Logger, opts ...Option) *Classifier {
	c := &Classifier{
		model:   model,
		timeout: DefaultTimeout,
		logger:  log.WithFields(map[string]interface{}{"component": "classifier"}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FallbackVerdict is the precautionary verdict used whenever classification
// fails.
func FallbackVerdict() *models.Verdict {
	return &models.Verdict{
		TriageLevel: models.LevelYellow,
		Reasoning:   FallbackReasoning,
		Confidence:  models.ConfidenceLow,
		HomeAdvice:  []string{},
		AdviceTexts: []string{},
	}
}

// Classify never fails: any model, parsing or schema error resolves to
// FallbackVerdict.
func (c *Classifier) Classify(ctx context.Context, narrative string) (*models.Verdict, Source) {
	prompt := BuildPrompt(narrative)
	key := cacheKey(prompt)

	if v, ok := c.lookup(ctx, key); ok {
		return v, SourceCache
	}

	inferCtx, cancel := context.WithTimeout(ctx, c.timeout)
	raw, err := c.model.Generate(inferCtx, prompt)
	timedOut := errors.Is(inferCtx.Err(), context.DeadlineExceeded)
	cancel()

	if err != nil {
		if timedOut || errors.Is(err, context.DeadlineExceeded) {
			return c.fallback(ReasonTimeout, apperrors.NewModelTimeoutError(c.timeout)), SourceFallback
		}
		return c.fallback(ReasonModelError, apperrors.NewModelUnavailableError(err)), SourceFallback
	}

	verdict, reason, perr := parse(raw)
	if perr != nil {
		c.logger.Debug("unusable model output", map[string]interface{}{"output": raw})
		return c.fallback(reason, perr), SourceFallback
	}

	if verdict.TriageLevel == models.LevelRed {
		verdict.Confidence = models.ConfidenceModelAugment
	}

	c.store(ctx, key, verdict)
	return verdict, SourceModel
}

// parse extracts and validates a verdict from raw model text. On failure it
// returns the fallback reason and a coded error.
func parse(raw string) (*models.Verdict, string, error) {
	obj, err := ExtractJSON(raw)
	if err != nil {
		reason := ReasonInvalidJSON
		switch {
		case errors.Is(err, ErrNoJSONObject):
			reason = ReasonNoJSON
		case errors.Is(err, ErrIncompleteJSON):
			reason = ReasonIncompleteJSON
		}
		return nil, reason, apperrors.NewModelOutputInvalidError(err)
	}

	result, err := verdictSchema.Validate(obj)
	if err != nil {
		return nil, ReasonSchema, apperrors.NewInternalError(err)
	}
	if !result.Valid {
		return nil, ReasonSchema, apperrors.NewSchemaValidationFailedError(result.GetErrorMessages())
	}
	return toVerdict(obj), "", nil
}

func (c *Classifier) fallback(reason string, err error) *models.Verdict {
	metrics.ModelFallbacks.WithLabelValues(reason).Inc()

	fields := map[string]interface{}{
		"reason": reason,
		"error":  err,
	}
	var se *apperrors.StandardError
	if errors.As(err, &se) {
		fields["errorCode"] = se.Code
	}
	c.logger.Warn("classification fell back to precautionary verdict", fields)
	return FallbackVerdict()
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *Classifier) lookup(ctx context.Context, key string) (*models.Verdict, bool) {
	if c.cache == nil {
		return nil, false
	}

	data, found, err := c.cache.Get(ctx, key)
	if err != nil {
		metrics.ClassificationCache.WithLabelValues("error").Inc()
		c.logger.Warn("classification cache read failed", map[string]interface{}{
			"error":     apperrors.NewCacheUnavailableError("get", err),
			"errorCode": apperrors.ErrCodeCacheUnavailable,
		})
		return nil, false
	}
	if !found {
		metrics.ClassificationCache.WithLabelValues("miss").Inc()
		return nil, false
	}

	var v models.Verdict
	if err := json.Unmarshal([]byte(data), &v); err != nil || !v.TriageLevel.Valid() {
		metrics.ClassificationCache.WithLabelValues("error").Inc()
		c.logger.Warn("discarding corrupt cache entry", map[string]interface{}{"key": key})
		return nil, false
	}
	if v.HomeAdvice == nil {
		v.HomeAdvice = []string{}
	}
	v.AdviceTexts = []string{}

	metrics.ClassificationCache.WithLabelValues("hit").Inc()
	return &v, true
}

func (c *Classifier) store(ctx context.Context, key string, v *models.Verdict) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, string(data), c.cacheTTL); err != nil {
		c.logger.Warn("classification cache write failed", map[string]interface{}{
			"error":     apperrors.NewCacheUnavailableError("set", err),
			"errorCode": apperrors.ErrCodeCacheUnavailable,
		})
	}
}
