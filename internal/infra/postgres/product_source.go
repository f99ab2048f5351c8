package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"adapter-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ProductSource reads published products from Postgres and applies the quiz
// filter predicates. Query failures wrap domain.ErrCatalogUnavailable so the
// planner never mistakes an outage for an empty catalog.
type ProductSource struct {
	pool *pgxpool.Pool
}

func NewProductSource(pool *pgxpool.Pool) *ProductSource {
	return &ProductSource{pool: pool}
}

func (s *ProductSource) Query(ctx context.Context, predicates []domain.FilterPredicate, limit int) ([]domain.Product, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, attributes FROM products WHERE published ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: query products: %v", domain.ErrCatalogUnavailable, err)
	}
	defer rows.Close()

	var matched []domain.Product
	for rows.Next() {
		var (
			product domain.Product
			raw     []byte
		)
		if err := rows.Scan(&product.ID, &product.Name, &raw); err != nil {
			return nil, fmt.Errorf("%w: scan product: %v", domain.ErrCatalogUnavailable, err)
		}
		if err := json.Unmarshal(raw, &product.Attributes); err != nil {
			return nil, fmt.Errorf("%w: decode attributes for %s: %v", domain.ErrCatalogUnavailable, product.ID, err)
		}
		if !domain.MatchesAll(predicates, product) {
			continue
		}
		matched = append(matched, product)
		if limit > 0 && len(matched) == limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read products: %v", domain.ErrCatalogUnavailable, err)
	}
	return matched, nil
}
