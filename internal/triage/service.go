// Package triage runs the two-tier decision pipeline: deterministic red-flag
// rules first, the generative classifier only when no rule fires.
package triage

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"pediatric-triage/internal/catalog"
	"pediatric-triage/internal/classifier"
	"pediatric-triage/internal/common/logger"
	"pediatric-triage/internal/common/metrics"
	"pediatric-triage/internal/common/observability"
	"pediatric-triage/internal/models"
	"pediatric-triage/internal/summary"
)

// SourceRules labels verdicts produced by a red-flag override.
const SourceRules = "rules"

// RuleChecker returns an override verdict and the matching rule id, or nil.
type RuleChecker interface {
	Check(answers models.Answers) (*models.Verdict, string)
}

// Classifier produces a verdict from the clinical narrative. It must not fail.
type Classifier interface {
	Classify(ctx context.Context, narrative string) (*models.Verdict, classifier.Source)
}

// Assessment is the deterministic part of a decision.
type Assessment struct {
	Answers   models.Answers
	Dropped   map[string]string // question id -> reason
	Override  *models.Verdict
	Rule      string
	Narrative string
}

type Service struct {
	catalog    *catalog.Catalog
	rules      RuleChecker
	classifier Classifier
	obs        *observability.Observability
	logger     logger.Logger
}

func NewService(cat *catalog.Catalog, rules RuleChecker, cls Classifier, obs *observability.Observability, log logger.Logger) *Service {
	if obs == nil {
		obs = observability.NewNoop()
	}
	return &Service{
		catalog:    cat,
		rules:      rules,
		classifier: cls,
		obs:        obs,
		logger:     log.WithFields(map[string]interface{}{"component": "triage"}),
	}
}

// Assess validates answers against the catalog, runs the rules and renders
// the narrative. It never calls the model.
func (s *Service) Assess(answers models.Answers) *Assessment {
	accepted, dropped := s.filter(answers)
	override, rule := s.rules.Check(accepted)
	return &Assessment{
		Answers:   accepted,
		Dropped:   dropped,
		Override:  override,
		Rule:      rule,
		Narrative: summary.Build(s.catalog, accepted),
	}
}

// Triage produces the full response for a request. Model failures surface
// as the precautionary fallback verdict, never as an error.
func (s *Service) Triage(ctx context.Context, req *models.TriageRequest) *models.TriageResponse {
	start := time.Now()
	lang := models.NormalizeLanguage(req.Language)

	ctx, span := s.obs.StartSpan(ctx, "triage.decide",
		attribute.String("triage.language", string(lang)),
		attribute.Int("triage.answers", len(req.Answers)),
	)
	defer span.End()

	a := s.Assess(req.Answers)

	var (
		verdict *models.Verdict
		source  string
	)
	if a.Override != nil {
		verdict, source = a.Override, SourceRules
		metrics.RuleOverrides.WithLabelValues(a.Rule).Inc()
		s.logger.Info("red-flag rule override", map[string]interface{}{
			"rule": a.Rule,
		})
		span.SetAttributes(attribute.String("triage.rule", a.Rule))
	} else {
		var src classifier.Source
		verdict, src = s.classifier.Classify(ctx, a.Narrative)
		source = string(src)
	}

	verdict.AdviceTexts = catalog.ResolveAdvice(verdict.HomeAdvice, lang)
	if verdict.HomeAdvice == nil {
		verdict.HomeAdvice = []string{}
	}

	elapsed := time.Since(start)
	metrics.TriageVerdicts.WithLabelValues(string(verdict.TriageLevel), source).Inc()
	s.obs.RecordDecision(ctx, elapsed, string(verdict.TriageLevel), source)
	span.SetAttributes(
		attribute.String("triage.level", string(verdict.TriageLevel)),
		attribute.String("triage.source", source),
	)

	s.logger.Info("triage decided", map[string]interface{}{
		"level":      verdict.TriageLevel,
		"source":     source,
		"language":   lang,
		"answers":    len(a.Answers),
		"dropped":    len(a.Dropped),
		"durationMs": elapsed.Milliseconds(),
	})
	return verdict
}

func (s *Service) filter(answers models.Answers) (models.Answers, map[string]string) {
	accepted := make(models.Answers, len(answers))
	dropped := map[string]string{}
	for id, v := range answers {
		if err := s.catalog.Check(id, v); err != nil {
			reason := dropReason(err)
			dropped[id] = reason
			metrics.DroppedAnswers.WithLabelValues(reason).Inc()
			continue
		}
		accepted[id] = v
	}

	if len(dropped) > 0 {
		ids := make([]string, 0, len(dropped))
		for id := range dropped {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		s.logger.Warn("dropped invalid answers", map[string]interface{}{
			"questionIds": ids,
		})
	}
	return accepted, dropped
}

func dropReason(err error) string {
	switch {
	case errors.Is(err, catalog.ErrUnknownQuestion):
		return "unknown_question"
	case errors.Is(err, catalog.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, catalog.ErrUnknownOption):
		return "unknown_option"
	case errors.Is(err, catalog.ErrWrongType):
		return "wrong_type"
	default:
		return "invalid"
	}
}
