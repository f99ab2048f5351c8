package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"adapter-quiz-service/internal/catalog"
	"adapter-quiz-service/internal/config"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// NewSeedCmd loads the bundled sample products and the default question
// catalog into Postgres, mainly for local development.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed sample products and the default question catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath)
		},
	}
}

func runSeed(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	for _, product := range sampleProducts() {
		attrs, err := json.Marshal(product.Attributes)
		if err != nil {
			return fmt.Errorf("marshal attributes for %s: %w", product.ID, err)
		}
		_, err = db.ExecContext(ctx,
			`INSERT INTO products (id, name, attributes, published) VALUES (?, ?, ?::jsonb, TRUE)
			 ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, attributes=EXCLUDED.attributes, published=TRUE`,
			product.ID, product.Name, string(attrs))
		if err != nil {
			return fmt.Errorf("insert product %s: %w", product.ID, err)
		}
	}

	set := catalog.Default()
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("marshal question catalog: %w", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO question_catalogs (name, data) VALUES (?, ?::jsonb)
		 ON CONFLICT (name) DO UPDATE SET data=EXCLUDED.data`,
		"default", string(data)); err != nil {
		return fmt.Errorf("insert question catalog: %w", err)
	}

	log.Printf("seeded %d products and the default question catalog", len(sampleProducts()))
	return nil
}
