// Package engine implements the adaptive question-selection core: candidate
// filtering, information-gain scoring, stage-based batch planning, and the
// termination/confidence policy. It holds no session state; callers own the
// profile and sequence calls per session.
package engine

import (
	"context"

	"adapter-quiz-service/internal/catalog"
	"adapter-quiz-service/internal/domain"
)

// Question ids the confidence policy and preference derivation key off.
const (
	questionDeviceCategory = "device_category"
	questionPortType       = "port_type"
	questionManufacturer   = "manufacturer_preference"
	questionCertification  = "certification_needs"
	questionBudget         = "budget_range"
	questionUsage          = "usage_scenario"

	optionNoPreference          = "no_preference"
	optionCertificationRequired = "required"
)

// ProductSource answers candidate queries. Implementations apply the
// predicates as a logical AND and return at most limit products; published
// filtering happens at the source. Transient failures must wrap
// domain.ErrCatalogUnavailable.
type ProductSource interface {
	Query(ctx context.Context, predicates []domain.FilterPredicate, limit int) ([]domain.Product, error)
}

// CatalogSource provides an atomic view of the question catalog per call.
type CatalogSource interface {
	Snapshot() *catalog.Set
}

// Config carries the tunable thresholds of the engine.
type Config struct {
	// BatchSize is the maximum number of questions per batch.
	BatchSize int
	// TotalBatches bounds the quiz length; batchIndex >= TotalBatches terminates.
	TotalBatches int
	// CandidateLimit caps the product set fed into entropy scoring. This is a
	// cost/variance trade-off, not a correctness bound.
	CandidateLimit int
	// ConfidenceTarget terminates the quiz once confidence reaches it.
	ConfidenceTarget float64
	// MinCandidates terminates the quiz once the catalog narrows this far.
	MinCandidates int
}

// DefaultConfig mirrors the production tuning: 4-question batches, 3 batches,
// 100-product scoring cap, stop at 0.85 confidence or 3 remaining products.
func DefaultConfig() Config {
	return Config{
		BatchSize:        4,
		TotalBatches:     3,
		CandidateLimit:   100,
		ConfidenceTarget: 0.85,
		MinCandidates:    3,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.BatchSize <= 0 {
		c.BatchSize = def.BatchSize
	}
	if c.TotalBatches <= 0 {
		c.TotalBatches = def.TotalBatches
	}
	if c.CandidateLimit <= 0 {
		c.CandidateLimit = def.CandidateLimit
	}
	if c.ConfidenceTarget <= 0 {
		c.ConfidenceTarget = def.ConfidenceTarget
	}
	if c.MinCandidates <= 0 {
		c.MinCandidates = def.MinCandidates
	}
	return c
}

// Engine wires the planner, policy, and record-answer operation to a product
// source and a question catalog.
type Engine struct {
	products  ProductSource
	questions CatalogSource
	cfg       Config
}

func New(products ProductSource, questions CatalogSource, cfg Config) *Engine {
	return &Engine{products: products, questions: questions, cfg: cfg.withDefaults()}
}

// Config returns the effective (default-filled) configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Candidates returns the products still eligible under every filter implied
// by the profile's answers, capped at CandidateLimit.
func (e *Engine) Candidates(ctx context.Context, profile domain.Profile) ([]domain.Product, error) {
	set := e.questions.Snapshot()
	return e.products.Query(ctx, profilePredicates(set, profile), e.cfg.CandidateLimit)
}

// profilePredicates collects the filter of every chosen option across all
// answered questions in answer order. Options without a filter contribute
// nothing; answers referencing questions no longer in the catalog are skipped.
func profilePredicates(set *catalog.Set, profile domain.Profile) []domain.FilterPredicate {
	var predicates []domain.FilterPredicate
	for _, answer := range profile.Answers {
		question, ok := set.Question(answer.QuestionID)
		if !ok {
			continue
		}
		for _, optionID := range answer.OptionIDs {
			option, ok := question.OptionByID(optionID)
			if !ok || len(option.Filter) == 0 {
				continue
			}
			predicates = append(predicates, option.Filter)
		}
	}
	return predicates
}
