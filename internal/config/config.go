package config

import (
	"context"
	"flag"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/twmb/franz-go/pkg/kgo"

	"corpus-audit/internal/env"
	"corpus-audit/internal/fetch"
)

const DefaultBase = "https://november7-730026606190.europe-west1.run.app"

type Config struct {
	Flags Flags

	// Optional sinks and cache; nil when the matching env var is unset so
	// the audit runs with no infrastructure at all.
	Kafka      *kgo.Client
	KafkaTopic string
	Redis      *redis.Client
	Pg         *pgxpool.Pool
}

type Flags struct {
	Base      string
	PageLimit int
	MaxPages  int
	Input     string
	Output    string
}

func parseFlags() Flags {
	var flags Flags

	flag.StringVar(&flags.Base, "base", env.GetEnvString("MESSAGES_API_BASE", DefaultBase), "Base URL of the messages API")
	flag.IntVar(&flags.PageLimit, "page-limit", fetch.DefaultPageLimit, "Messages per page")
	flag.IntVar(&flags.MaxPages, "max-pages", fetch.DefaultMaxPages, "Maximum pages to fetch")
	flag.StringVar(&flags.Input, "input", "", "Read the corpus from this JSON file instead of fetching")
	flag.StringVar(&flags.Output, "output", "", "Write the JSON report to this file instead of stdout")

	flag.Parse()

	return flags
}

func setupKafka(broker string) (*kgo.Client, error) {
	cl, err := kgo.NewClient(kgo.SeedBrokers(broker))
	if err != nil {
		return nil, fmt.Errorf("unable to create producer client: %w", err)
	}
	return cl, nil
}

func setupRedis(url string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: url,
		DB:   0,
	})
}

func setupPostgres(url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), url)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to PostgreSQL: %w", err)
	}
	return pool, nil
}

func SetupConfig() (*Config, error) {
	cfg := &Config{Flags: parseFlags()}

	if broker := env.GetEnvString("KAFKA_URL", ""); broker != "" {
		kafka, err := setupKafka(broker)
		if err != nil {
			return nil, fmt.Errorf("error configuring the app: %w", err)
		}
		cfg.Kafka = kafka
		cfg.KafkaTopic = env.GetEnvString("KAFKA_TOPIC_AUDIT", "audit-results")
	}

	if url := env.GetEnvString("REDIS_URL", ""); url != "" {
		cfg.Redis = setupRedis(url)
	}

	if url := env.GetEnvString("POSTGRES_URL", ""); url != "" {
		pg, err := setupPostgres(url)
		if err != nil {
			return nil, fmt.Errorf("error setting up Postgres: %w", err)
		}
		cfg.Pg = pg
	}

	return cfg, nil
}

func (c *Config) Close() {
	if c.Kafka != nil {
		c.Kafka.Close()
	}
	if c.Redis != nil {
		c.Redis.Close()
	}
	if c.Pg != nil {
		c.Pg.Close()
	}
}
