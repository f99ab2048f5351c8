package engine

import (
	"math"

	"adapter-quiz-service/internal/domain"
)

// InformationGain scores how evenly a question's filtered options would
// partition the candidate set, as normalized Shannon entropy in [0,1].
// A candidate set of size <= 1, an empty candidate set, or a question whose
// options carry no filters all yield 0: there is nothing left to split.
func InformationGain(question domain.Question, candidates []domain.Product) float64 {
	n := len(candidates)
	if n <= 1 {
		return 0
	}

	filteredOptions := 0
	var splits []int
	for _, option := range question.Options {
		if len(option.Filter) == 0 {
			continue
		}
		filteredOptions++
		count := 0
		for _, product := range candidates {
			if option.Filter.MatchesProduct(product) {
				count++
			}
		}
		if count > 0 {
			splits = append(splits, count)
		}
	}

	maxEntropy := math.Log2(float64(filteredOptions))
	if filteredOptions == 0 || maxEntropy <= 0 {
		return 0
	}

	entropy := 0.0
	for _, split := range splits {
		p := float64(split) / float64(n)
		entropy -= p * math.Log2(p)
	}

	// Option splits may overlap, so the split "distribution" can sum past 1;
	// clamp to keep the contract.
	gain := entropy / maxEntropy
	if gain < 0 {
		return 0
	}
	if gain > 1 {
		return 1
	}
	return gain
}
