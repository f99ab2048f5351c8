package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adapter-quiz-service/internal/app"
	"adapter-quiz-service/internal/catalog"
	"adapter-quiz-service/internal/config"
	"adapter-quiz-service/internal/domain"
	"adapter-quiz-service/internal/engine"
	"adapter-quiz-service/internal/infra/memory"
	pgcatalog "adapter-quiz-service/internal/infra/postgres"
	redisinfra "adapter-quiz-service/internal/infra/redis"
	transport "adapter-quiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	sessionTTL := config.TTLDuration(cfg.Redis.TTL, 30*time.Minute)
	cacheTTL := config.TTLDuration(cfg.Catalog.CacheTTL, 5*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	// Question catalog: database revision when configured, built-in set otherwise.
	registry := catalog.NewRegistry(catalog.Default())
	if pool != nil && cfg.Catalog.Name != "" {
		set, err := pgcatalog.NewCatalogLoader(pool).Load(ctx, cfg.Catalog.Name)
		if err != nil {
			return err
		}
		registry.Replace(set)
	}

	// Product source: postgres behind a candidate cache, or the bundled
	// sample catalog for database-less runs.
	var source engine.ProductSource = memory.NewProductSource(sampleProducts())
	if pool != nil {
		source = pgcatalog.NewProductSource(pool)
	}
	if redisClient != nil {
		source = redisinfra.NewCandidateCache(redisClient, source, cacheTTL)
	} else {
		source = memory.NewCandidateCache(source, cacheTTL)
	}

	eng := engine.New(source, registry, engine.Config{
		BatchSize:        cfg.Engine.BatchSize,
		TotalBatches:     cfg.Engine.TotalBatches,
		CandidateLimit:   cfg.Engine.CandidateLimit,
		ConfidenceTarget: cfg.Engine.ConfidenceTarget,
		MinCandidates:    cfg.Engine.MinCandidates,
	})

	var store app.SessionRepository
	if redisClient != nil {
		store = redisinfra.NewSessionStore(redisClient, sessionTTL)
	} else {
		store = memory.NewSessionStore()
	}
	service := app.NewQuizService(store, eng)
	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting adapter quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleProducts is a small bundled catalog so the service runs without a
// database; production deployments point Postgres at the real one.
func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Anker Nano 30W", Attributes: map[string]any{
			"manufacturer": "anker", "port_type_name": "usb_c", "price": 19.99,
			"max_wattage": 30, "is_certified": true, "port_count": 1, "cable_length_m": 0, "warranty_years": 2,
		}},
		{ID: "p2", Name: "Anker 65W GaN Charger", Attributes: map[string]any{
			"manufacturer": "anker", "port_type_name": "usb_c", "price": 49.99,
			"max_wattage": 65, "is_certified": true, "port_count": 2, "cable_length_m": 0, "warranty_years": 2,
		}},
		{ID: "p3", Name: "Apple 96W USB-C Power Adapter", Attributes: map[string]any{
			"manufacturer": "apple", "port_type_name": "usb_c", "price": 79.0,
			"max_wattage": 96, "is_certified": true, "port_count": 1, "cable_length_m": 0, "warranty_years": 1,
		}},
		{ID: "p4", Name: "Apple MagSafe Charger", Attributes: map[string]any{
			"manufacturer": "apple", "port_type_name": "magsafe", "price": 39.0,
			"max_wattage": 15, "is_certified": true, "port_count": 1, "cable_length_m": 1, "warranty_years": 1,
		}},
		{ID: "p5", Name: "Belkin USB-A Car Charger", Attributes: map[string]any{
			"manufacturer": "belkin", "port_type_name": "usb_a", "price": 14.99,
			"max_wattage": 24, "is_certified": false, "port_count": 2, "cable_length_m": 0, "warranty_years": 1,
		}},
		{ID: "p6", Name: "Samsung 45W Travel Adapter", Attributes: map[string]any{
			"manufacturer": "samsung", "port_type_name": "usb_c", "price": 34.99,
			"max_wattage": 45, "is_certified": true, "port_count": 1, "cable_length_m": 1, "warranty_years": 1,
		}},
		{ID: "p7", Name: "Belkin 3m HDMI Cable", Attributes: map[string]any{
			"manufacturer": "belkin", "port_type_name": "hdmi", "price": 24.99,
			"max_wattage": 0, "is_certified": true, "port_count": 1, "cable_length_m": 3, "warranty_years": 2,
		}},
		{ID: "p8", Name: "Anker Lightning Cable 1.8m", Attributes: map[string]any{
			"manufacturer": "anker", "port_type_name": "lightning", "price": 17.99,
			"max_wattage": 12, "is_certified": true, "port_count": 1, "cable_length_m": 1.8, "warranty_years": 2,
		}},
	}
}
