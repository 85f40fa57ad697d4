// Package scoring is the lead intent scoring engine: a rule layer, an
// external classifier with heuristic fallback, and the batch driver that
// combines them. The engine is stateless; callers pass leads and offer in.
package scoring

import (
	"context"
	"time"

	"lead_scoring_backend/internal/leads/domain"
	"lead_scoring_backend/platform/logger"
	"lead_scoring_backend/platform/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Service scores batches of leads.
type Service struct {
	classifier  Classifier
	concurrency int
	log         *logger.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithConcurrency lets up to n leads be classified at once. Result order
// always follows input order.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// New creates a scoring service around a classifier chain.
func New(classifier Classifier, log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.Discard()
	}
	s := &Service{
		classifier:  classifier,
		concurrency: 1,
		log:         log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunSummary describes a finished batch.
type RunSummary struct {
	RunID     string
	Leads     int
	Fallbacks int
	Duration  time.Duration
}

// ScoreLeads scores every lead independently and returns results in input
// order. Individual classification failures degrade to the heuristic; the
// only error returned is ctx.Err() when the run is cancelled between leads.
func (s *Service) ScoreLeads(ctx context.Context, leads []domain.Lead, offer domain.Offer) ([]domain.ScoreResult, error) {
	results, _, err := s.Run(ctx, leads, offer)
	return results, err
}

// Run is ScoreLeads plus a summary of the run.
func (s *Service) Run(ctx context.Context, leads []domain.Lead, offer domain.Offer) ([]domain.ScoreResult, RunSummary, error) {
	start := time.Now()
	summary := RunSummary{RunID: uuid.NewString(), Leads: len(leads)}
	ctx = context.WithValue(ctx, logger.RunIDKey, summary.RunID)

	results := make([]domain.ScoreResult, len(leads))
	sources := make([]string, len(leads))

	score := func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		results[i], sources[i] = s.scoreOne(ctx, leads[i], offer)
		return nil
	}

	if s.concurrency <= 1 {
		for i := range leads {
			if err := score(ctx, i); err != nil {
				return nil, summary, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.concurrency)
		for i := range leads {
			g.Go(func() error { return score(gctx, i) })
		}
		if err := g.Wait(); err != nil {
			return nil, summary, err
		}
	}

	for i, src := range sources {
		if src != SourceAI {
			summary.Fallbacks++
		}
		metrics.LeadsScored.WithLabelValues(string(results[i].Intent), src).Inc()
	}
	summary.Duration = time.Since(start)
	metrics.ScoringRuns.Inc()
	metrics.ScoringRunDuration.Observe(summary.Duration.Seconds())

	return results, summary, nil
}

func (s *Service) scoreOne(ctx context.Context, lead domain.Lead, offer domain.Offer) (domain.ScoreResult, string) {
	rule := RuleScore(lead, offer).Total()
	c := s.classify(ctx, lead, offer)

	return domain.ScoreResult{
		Name:      lead.Name,
		Role:      lead.Role,
		Company:   lead.Company,
		Intent:    c.Intent,
		Score:     min(domain.MaxScore, rule+c.Intent.Points()),
		Reasoning: c.Explanation,
	}, c.Source
}

// classify is the outer guard: whatever the classifier chain does, an
// error or a panic turns into the heuristic answer for this lead only.
func (s *Service) classify(ctx context.Context, lead domain.Lead, offer domain.Offer) (c Classification) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithContext(ctx).Error("classifier panicked", "panic", r, "lead", lead.Name)
			c = guardFallback(lead, offer)
		}
	}()

	result, err := s.classifier.Classify(ctx, lead, offer)
	if err != nil {
		s.log.WithContext(ctx).Warn("classification failed", "error", err, "lead", lead.Name)
		return guardFallback(lead, offer)
	}
	switch result.Intent {
	case domain.IntentHigh, domain.IntentMedium, domain.IntentLow:
	default:
		result.Intent = domain.IntentLow
	}
	return result
}

func guardFallback(lead domain.Lead, offer domain.Offer) Classification {
	return Classification{
		Intent:      HeuristicIntent(lead, offer),
		Explanation: ExplanationGuardFallback,
		Source:      SourceFallback,
	}
}
