package memory

import (
	"context"

	"adapter-quiz-service/internal/domain"
)

// ProductSource serves candidate queries from a static product slice (useful
// for tests/demos and database-less setups). Products are assumed to be
// published already; the source only applies the quiz filters.
type ProductSource struct {
	products []domain.Product
}

func NewProductSource(products []domain.Product) *ProductSource {
	return &ProductSource{products: products}
}

func (s *ProductSource) Query(_ context.Context, predicates []domain.FilterPredicate, limit int) ([]domain.Product, error) {
	matched := make([]domain.Product, 0, len(s.products))
	for _, product := range s.products {
		if !domain.MatchesAll(predicates, product) {
			continue
		}
		matched = append(matched, product)
		if limit > 0 && len(matched) == limit {
			break
		}
	}
	return matched, nil
}
