package kafka

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/example/supplychain-events/internal/metrics"
)

type MessageHandler func(ctx context.Context, key, value []byte) error

type Consumer struct {
	reader *kafka.Reader
	topic  string
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{reader: reader, topic: topic}
}

// Consume fetches messages and hands them to handler until ctx is cancelled.
// Offsets are committed only after the handler returns, so a message
// abandoned mid-flight during shutdown is redelivered on restart
// (at-least-once). Handler errors are terminal: logged, then the offset is
// committed anyway — consumption never propagates errors upstream.
func (c *Consumer) Consume(ctx context.Context, handler MessageHandler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Error().Err(err).Str("topic", c.topic).Msg("fetch failed")
			continue
		}

		metrics.EventsConsumed.WithLabelValues(c.topic).Inc()

		if err := handler(ctx, msg.Key, msg.Value); err != nil {
			metrics.HandlerFailures.WithLabelValues(c.topic).Inc()
			log.Error().Err(err).
				Str("topic", c.topic).
				Str("key", string(msg.Key)).
				Msg("handler failed")
		}

		// Shutdown may have interrupted the handler; leave the offset
		// uncommitted so the message is redelivered.
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Error().Err(err).Str("topic", c.topic).Msg("commit failed")
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
