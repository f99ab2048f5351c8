package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Catalog struct {
		// Name selects the question catalog revision in question_catalogs;
		// empty falls back to the built-in default set.
		Name string `yaml:"name"`
		// CacheTTL bounds how long candidate query results are reused.
		CacheTTL string `yaml:"cache_ttl"`
	} `yaml:"catalog"`
	Engine struct {
		BatchSize        int     `yaml:"batch_size"`
		TotalBatches     int     `yaml:"total_batches"`
		CandidateLimit   int     `yaml:"candidate_limit"`
		ConfidenceTarget float64 `yaml:"confidence_target"`
		MinCandidates    int     `yaml:"min_candidates"`
	} `yaml:"engine"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
