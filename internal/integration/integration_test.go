package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"adapter-quiz-service/internal/app"
	"adapter-quiz-service/internal/catalog"
	"adapter-quiz-service/internal/domain"
	"adapter-quiz-service/internal/engine"
	pginfra "adapter-quiz-service/internal/infra/postgres"
	pgmigrations "adapter-quiz-service/internal/infra/postgres/migrations"
	redisinfra "adapter-quiz-service/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

func TestQuizSessionEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedCatalog(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}

	set, err := pginfra.NewCatalogLoader(pool).Load(ctx, "default")
	if err != nil {
		t.Fatalf("load question catalog: %v", err)
	}

	source := redisinfra.NewCandidateCache(redisClient, pginfra.NewProductSource(pool), 5*time.Minute)
	eng := engine.New(source, catalog.NewRegistry(set), engine.DefaultConfig())
	sessionStore := redisinfra.NewSessionStore(redisClient, 5*time.Minute)
	service := app.NewQuizService(sessionStore, eng)

	batch, done, err := service.NextBatch(ctx, "s1")
	if err != nil {
		t.Fatalf("first batch: %v", err)
	}
	if done || batch.Stage != domain.StageInitial || len(batch.Questions) == 0 {
		t.Fatalf("unexpected first batch: done=%v %+v", done, batch)
	}

	if _, err := service.SubmitAnswer(ctx, "s1", "port_type", "usb_c"); err != nil {
		t.Fatalf("submit port_type: %v", err)
	}
	if _, err := service.SubmitAnswer(ctx, "s1", "manufacturer_preference", "anker"); err != nil {
		t.Fatalf("submit manufacturer: %v", err)
	}

	// usb_c + anker narrows the seeded catalog to 2 products: terminated.
	_, done, err = service.NextBatch(ctx, "s1")
	if err != nil {
		t.Fatalf("second batch: %v", err)
	}
	if !done {
		t.Fatalf("expected termination after narrowing")
	}

	rec, err := service.Results(ctx, "s1")
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if len(rec.Products) != 2 {
		t.Fatalf("expected 2 recommended products, got %d", len(rec.Products))
	}
	for _, product := range rec.Products {
		if product.Attributes["manufacturer"] != "anker" || product.Attributes["port_type_name"] != "usb_c" {
			t.Fatalf("recommendation violates filters: %+v", product)
		}
	}
}

func seedCatalog(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	for _, product := range seedProducts() {
		attrs, err := json.Marshal(product.Attributes)
		if err != nil {
			t.Fatalf("marshal attributes: %v", err)
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO products (id, name, attributes, published) VALUES (?, ?, ?::jsonb, TRUE)
			 ON CONFLICT (id) DO UPDATE SET attributes=EXCLUDED.attributes`,
			product.ID, product.Name, string(attrs)); err != nil {
			t.Fatalf("insert product %s: %v", product.ID, err)
		}
	}

	data, err := json.Marshal(catalog.Default())
	if err != nil {
		t.Fatalf("marshal question catalog: %v", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO question_catalogs (name, data) VALUES (?, ?::jsonb)
		 ON CONFLICT (name) DO UPDATE SET data=EXCLUDED.data`,
		"default", string(data)); err != nil {
		t.Fatalf("insert question catalog: %v", err)
	}
}

func seedProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "30W USB-C Charger", Attributes: map[string]any{
			"manufacturer": "anker", "port_type_name": "usb_c", "price": 19.99, "max_wattage": 30, "is_certified": true,
		}},
		{ID: "p2", Name: "65W GaN Charger", Attributes: map[string]any{
			"manufacturer": "anker", "port_type_name": "usb_c", "price": 49.99, "max_wattage": 65, "is_certified": true,
		}},
		{ID: "p3", Name: "96W Power Adapter", Attributes: map[string]any{
			"manufacturer": "apple", "port_type_name": "usb_c", "price": 79.0, "max_wattage": 96, "is_certified": true,
		}},
		{ID: "p4", Name: "USB-A Car Charger", Attributes: map[string]any{
			"manufacturer": "belkin", "port_type_name": "usb_a", "price": 14.99, "max_wattage": 24, "is_certified": false,
		}},
		{ID: "p5", Name: "Travel Adapter", Attributes: map[string]any{
			"manufacturer": "samsung", "port_type_name": "usb_c", "price": 34.99, "max_wattage": 45, "is_certified": true,
		}},
		{ID: "p6", Name: "3m HDMI Cable", Attributes: map[string]any{
			"manufacturer": "belkin", "port_type_name": "hdmi", "price": 24.99, "max_wattage": 0, "is_certified": true,
		}},
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
