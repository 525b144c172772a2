package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/example/supplychain-events/internal/config"
	"github.com/example/supplychain-events/internal/event"
	"github.com/example/supplychain-events/internal/infrastructure/kafka"
	"github.com/example/supplychain-events/internal/logging"
	"github.com/example/supplychain-events/internal/metrics"
	"github.com/example/supplychain-events/internal/notification"
)

func main() {
	logging.Setup("choreographer")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	brokers := config.Brokers()
	topics := event.TopicsFromEnv()
	groupID := config.Env("KAFKA_GROUP_ID", "notification-service")

	addresses := notification.Addresses{
		Customer:  config.Env("NOTIFY_CUSTOMER_EMAIL", notification.DefaultAddresses().Customer),
		Warehouse: config.Env("NOTIFY_WAREHOUSE_EMAIL", notification.DefaultAddresses().Warehouse),
	}

	log.Info().
		Strs("brokers", brokers).
		Str("group", groupID).
		Str("downstream", topics.NotificationEmails).
		Msg("starting notification choreographer")

	producer := kafka.NewProducer(brokers, topics.NotificationEmails)
	defer producer.Close()

	choreo := notification.NewChoreographer(producer, addresses)

	consumers := []struct {
		topic   string
		handler kafka.MessageHandler
	}{
		{topics.OrderEvents, choreo.HandleOrderEvent},
		{topics.InventoryEvents, choreo.HandleInventoryEvent},
		{topics.ShipmentEvents, choreo.HandleShipmentEvent},
	}

	metrics.Serve(config.Env("METRICS_ADDR", ":2113"))

	// One consumer loop per upstream topic; each is an independent member of
	// the same consumer group.
	var wg sync.WaitGroup
	for _, c := range consumers {
		consumer := kafka.NewConsumer(brokers, c.topic, groupID)
		defer consumer.Close()

		wg.Add(1)
		go func(topic string, handler kafka.MessageHandler) {
			defer wg.Done()
			log.Info().Str("topic", topic).Msg("consuming")
			if err := consumer.Consume(ctx, handler); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Str("topic", topic).Msg("consumer stopped")
			}
		}(c.topic, c.handler)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutting down")
	cancel()
	waitWithGrace(&wg, config.ShutdownGrace)
}

// waitWithGrace waits for in-flight handlers, abandoning them after the
// grace period; their offsets stay uncommitted and redeliver on restart.
func waitWithGrace(wg *sync.WaitGroup, grace time.Duration) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(grace):
		log.Warn().Msg("grace period elapsed; abandoning in-flight handlers")
	}
}
