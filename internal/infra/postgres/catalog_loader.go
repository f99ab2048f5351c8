package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"adapter-quiz-service/internal/catalog"
	"adapter-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// CatalogLoader loads a question catalog revision (JSONB) from Postgres. The
// blob mirrors catalog.Set's JSON shape: canonical-ordered questions plus the
// per-stage weight tables.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

// Load fetches the named catalog revision and builds an indexed Set.
func (l *CatalogLoader) Load(ctx context.Context, name string) (*catalog.Set, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_catalogs WHERE name=$1`, name).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("load question catalog %q: %w", name, err)
	}

	var payload struct {
		Questions []domain.Question                    `json:"questions"`
		Stages    map[domain.Stage][]domain.StageEntry `json:"stages"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal question catalog %q: %w", name, err)
	}
	return catalog.NewSet(payload.Questions, payload.Stages), nil
}
