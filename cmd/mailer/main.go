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
	"github.com/example/supplychain-events/internal/email"
	"github.com/example/supplychain-events/internal/event"
	"github.com/example/supplychain-events/internal/infrastructure/kafka"
	"github.com/example/supplychain-events/internal/logging"
	"github.com/example/supplychain-events/internal/metrics"
)

func main() {
	logging.Setup("mailer")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	brokers := config.Brokers()
	topics := event.TopicsFromEnv()
	groupID := config.Env("KAFKA_GROUP_ID", "email-service")
	smtp := config.SMTPFromEnv()

	log.Info().
		Strs("brokers", brokers).
		Str("topic", topics.NotificationEmails).
		Str("group", groupID).
		Str("smtp", smtp.Host+":"+smtp.Port).
		Str("to", smtp.To).
		Msg("starting email sink")

	sink := email.NewSink(email.NewService(smtp.Host, smtp.Port, smtp.From, smtp.To))

	consumer := kafka.NewConsumer(brokers, topics.NotificationEmails, groupID)
	defer consumer.Close()

	metrics.Serve(config.Env("METRICS_ADDR", ":2114"))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := consumer.Consume(ctx, sink.HandleNotification); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("consumer stopped")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutting down")
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(config.ShutdownGrace):
		log.Warn().Msg("grace period elapsed; abandoning in-flight handlers")
	}
}
