// Package export mirrors routed events to a Kafka topic for downstream
// analysis. Best-effort: write failures are logged and dropped.
package export

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/huntdesk/huntdesk/internal/config"
)

// Record is one exported event.
type Record struct {
	TraceID   string    `json:"trace_id"`
	Channel   string    `json:"channel"`
	SenderID  int64     `json:"sender_id"`
	Rule      string    `json:"rule"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher writes event records to Kafka.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher from config. Returns nil when the export
// is disabled or has no brokers configured.
func NewPublisher(cfg config.ExportConfig) *Publisher {
	if !cfg.Enabled || strings.TrimSpace(cfg.Brokers) == "" {
		return nil
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(strings.Split(cfg.Brokers, ",")...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			Async:        true,
		},
	}
}

// Publish writes one record. Safe to call on a nil publisher.
func (p *Publisher) Publish(ctx context.Context, rec Record) {
	if p == nil {
		return
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	value, err := json.Marshal(rec)
	if err != nil {
		slog.Warn("Event export encode failed", "error", err)
		return
	}
	msg := kafka.Message{
		Key:   []byte(rec.TraceID),
		Value: value,
		Time:  rec.Timestamp,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		slog.Warn("Event export write failed", "error", err)
	}
}

// Close flushes and closes the underlying writer. Safe on nil.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
