package main

import (
	"context"
	"net/http"
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
	"github.com/example/supplychain-events/internal/realtime"
)

func main() {
	logging.Setup("realtime")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	brokers := config.Brokers()
	topics := event.TopicsFromEnv()
	groupID := config.Env("KAFKA_GROUP_ID", "realtime-service")

	log.Info().
		Strs("brokers", brokers).
		Str("topic", topics.NotificationEmails).
		Str("group", groupID).
		Msg("starting realtime broadcast sink")

	hub := realtime.NewHub()
	go hub.Run(ctx)

	sink := realtime.NewSink(hub)

	consumer := kafka.NewConsumer(brokers, topics.NotificationEmails, groupID)
	defer consumer.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := consumer.Consume(ctx, sink.HandleNotification); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("consumer stopped")
		}
	}()

	metrics.Serve(config.Env("METRICS_ADDR", ":2115"))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /ws/notifications", func(w http.ResponseWriter, r *http.Request) {
		realtime.ServeWS(hub, w, r)
	})

	server := &http.Server{
		Addr:    config.Env("HTTP_ADDR", ":8084"),
		Handler: mux,
	}
	go func() {
		log.Info().Str("addr", server.Addr).Msg("websocket feed listening")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ShutdownGrace)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)

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
