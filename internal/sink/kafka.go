// Package sink delivers finished audit reports to optional downstream
// consumers. Sinks never influence the report itself.
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Summary is the record published after a run: headline counts plus the
// full report for consumers that want the detail.
type Summary struct {
	Source     string          `json:"source"`
	Messages   int             `json:"messages"`
	Users      int             `json:"users"`
	FinishedAt string          `json:"finished_at"`
	Report     json.RawMessage `json:"report"`
}

type Producer struct {
	client *kgo.Client
	topic  string
}

func NewProducer(client *kgo.Client, topic string) *Producer {
	return &Producer{client: client, topic: topic}
}

func (p *Producer) PublishSummary(ctx context.Context, summary Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("kafka publish: marshal error: %w", err)
	}

	record := &kgo.Record{
		Topic:     p.topic,
		Value:     data,
		Timestamp: time.Now(),
	}

	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("kafka publish error: %w", err)
	}
	log.Printf("Published audit summary (%d messages, %d users) to topic %s", summary.Messages, summary.Users, p.topic)
	return nil
}
