// Package kafka publishes the merged incident catalog to a Kafka topic for
// downstream consumers (notifications, analytics). Publishing is optional and
// feature-flagged; the HTTP API never depends on it.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/config"
	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/domain"
)

// Publisher produces incident messages to the sink topic.
// It implements pipeline.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured sink topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishCatalog serializes and publishes the merged catalog, one message per
// incident keyed by the incident's stable id, in a single WriteMessages call.
func (p *Publisher) PublishCatalog(ctx context.Context, incidents []domain.Incident) error {
	if len(incidents) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(incidents))
	for i := range incidents {
		msg, err := serializeToMessage(incidents[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return err
	}
	p.logger.Debug("catalog published to kafka", "incidents", len(incidents))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals an Incident into a Kafka message. Keying by the
// stable incident id lets compacted topics keep one record per fire.
func serializeToMessage(inc domain.Incident) (kafkago.Message, error) {
	data, err := json.Marshal(inc)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize incident: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(inc.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "is_active", Value: []byte(fmt.Sprintf("%t", inc.Active))},
			{Key: "updated_at", Value: []byte(inc.UpdatedAt.Format(time.RFC3339))},
		},
	}, nil
}
