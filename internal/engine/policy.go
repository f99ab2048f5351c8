package engine

import (
	"context"

	"adapter-quiz-service/internal/domain"
)

// confidenceCap bounds confidence regardless of bonuses.
const confidenceCap = 0.95

// Confidence scores how well the current narrowing is trusted: a base that
// grows with the answer count (capped at 0.7) plus bonuses for the answers
// that discriminate hardest, capped at 0.95 overall.
func (e *Engine) Confidence(profile domain.Profile) float64 {
	confidence := 0.3 + 0.05*float64(len(profile.Answers))
	if confidence > 0.7 {
		confidence = 0.7
	}

	if profile.Answered(questionDeviceCategory) {
		confidence += 0.1
	}
	if profile.Answered(questionPortType) {
		confidence += 0.1
	}
	if chosen, ok := profile.SingleAnswer(questionManufacturer); ok && chosen != optionNoPreference {
		confidence += 0.05
	}

	if confidence > confidenceCap {
		confidence = confidenceCap
	}
	return confidence
}

// ShouldTerminate reports whether the quiz should stop before planning the
// given batch: batches exhausted, confidence target reached, or the catalog
// narrowed to MinCandidates or fewer. A catalog failure propagates; it never
// counts as an empty catalog.
func (e *Engine) ShouldTerminate(ctx context.Context, profile domain.Profile, batchIndex int) (bool, error) {
	if batchIndex >= e.cfg.TotalBatches {
		return true, nil
	}
	if e.Confidence(profile) >= e.cfg.ConfidenceTarget {
		return true, nil
	}
	candidates, err := e.Candidates(ctx, profile)
	if err != nil {
		return false, err
	}
	return len(candidates) <= e.cfg.MinCandidates, nil
}
