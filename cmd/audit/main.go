package main

import (
	"bytes"
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"corpus-audit/internal/audit"
	"corpus-audit/internal/cache"
	"corpus-audit/internal/config"
	"corpus-audit/internal/fetch"
	"corpus-audit/internal/message"
	"corpus-audit/internal/sink"
)

func init() {
	if os.Getenv("RUNNING_IN_DOCKER") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found (this is fine in Docker)")
		}
	}
}

func main() {
	cfg, err := config.SetupConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	defer cfg.Close()

	ctx := context.Background()
	startedAt := time.Now().UTC()

	msgs, source, err := loadCorpus(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}
	log.Printf("Loaded %d messages from %s", len(msgs), source)

	report := audit.Analyze(msgs, time.Now().UTC())

	var out bytes.Buffer
	if err := report.WriteJSON(&out); err != nil {
		log.Fatalf("Failed to encode report: %v", err)
	}

	if cfg.Flags.Output != "" {
		if err := os.WriteFile(cfg.Flags.Output, out.Bytes(), 0o644); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		log.Printf("Wrote report to %s", cfg.Flags.Output)
	} else {
		os.Stdout.Write(out.Bytes())
	}

	deliver(ctx, cfg, source, report, out.Bytes(), startedAt)
}

func loadCorpus(ctx context.Context, cfg *config.Config) ([]message.Record, string, error) {
	if cfg.Flags.Input != "" {
		raw, err := os.ReadFile(cfg.Flags.Input)
		if err != nil {
			return nil, "", err
		}
		msgs, err := message.ParseCorpus(raw)
		if err != nil {
			return nil, "", err
		}
		return msgs, cfg.Flags.Input, nil
	}

	var corpusCache *cache.Corpus
	if cfg.Redis != nil {
		corpusCache = cache.New(cfg.Redis)
		if msgs, ok := corpusCache.Get(ctx, cfg.Flags.Base); ok {
			log.Printf("Corpus cache hit for %s", cfg.Flags.Base)
			return msgs, cfg.Flags.Base, nil
		}
	}

	client := fetch.NewClient(cfg.Flags.Base)
	client.PageLimit = cfg.Flags.PageLimit
	client.MaxPages = cfg.Flags.MaxPages

	msgs, err := client.FetchAll(ctx)
	if err != nil {
		return nil, "", err
	}

	if corpusCache != nil {
		if err := corpusCache.Put(ctx, cfg.Flags.Base, msgs); err != nil {
			log.Printf("Corpus cache write failed: %v", err)
		}
	}

	return msgs, cfg.Flags.Base, nil
}

// deliver hands the finished report to whichever optional sinks are
// configured. Sink failures are logged, not fatal: the report has already
// been emitted.
func deliver(ctx context.Context, cfg *config.Config, source string, report audit.Report, reportJSON []byte, startedAt time.Time) {
	finishedAt := time.Now().UTC()

	if cfg.Kafka != nil {
		producer := sink.NewProducer(cfg.Kafka, cfg.KafkaTopic)
		err := producer.PublishSummary(ctx, sink.Summary{
			Source:     source,
			Messages:   report.Totals.Messages,
			Users:      report.Totals.Users,
			FinishedAt: finishedAt.Format(time.RFC3339Nano),
			Report:     reportJSON,
		})
		if err != nil {
			log.Printf("Kafka delivery failed: %v", err)
		}
	}

	if cfg.Pg != nil {
		store := sink.NewStore(cfg.Pg)
		if err := store.EnsureSchema(ctx); err != nil {
			log.Printf("Postgres schema check failed: %v", err)
			return
		}
		id, err := store.InsertRun(ctx, sink.Run{
			Source:       source,
			MessageCount: report.Totals.Messages,
			UserCount:    report.Totals.Users,
			Report:       reportJSON,
			StartedAt:    startedAt,
			FinishedAt:   finishedAt,
		})
		if err != nil {
			log.Printf("Postgres delivery failed: %v", err)
			return
		}
		log.Printf("Stored audit run id=%d", id)
	}
}
