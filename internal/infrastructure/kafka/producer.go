package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/example/supplychain-events/internal/metrics"
)

// publishTimeout bounds how long a handler may be blocked by an outbound
// publish. The broker client queues internally; past this deadline the send
// is abandoned and reported as an error to the caller.
const publishTimeout = 5 * time.Second

type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Producer{writer: writer, topic: topic}
}

// Publish sends one JSON-encoded event keyed for per-entity ordering.
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
	if err != nil {
		metrics.PublishFailures.WithLabelValues(p.topic).Inc()
		return err
	}
	metrics.EventsPublished.WithLabelValues(p.topic).Inc()
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
