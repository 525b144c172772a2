package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/example/supplychain-events/internal/api"
	"github.com/example/supplychain-events/internal/auth"
	"github.com/example/supplychain-events/internal/config"
	"github.com/example/supplychain-events/internal/domain/inventory"
	"github.com/example/supplychain-events/internal/domain/order"
	"github.com/example/supplychain-events/internal/domain/shipment"
	"github.com/example/supplychain-events/internal/event"
	"github.com/example/supplychain-events/internal/infrastructure/kafka"
	"github.com/example/supplychain-events/internal/infrastructure/store"
	"github.com/example/supplychain-events/internal/logging"
	"github.com/example/supplychain-events/internal/metrics"
)

func main() {
	logging.Setup("api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	brokers := config.Brokers()
	topics := event.TopicsFromEnv()

	log.Info().
		Strs("brokers", brokers).
		Str("orderTopic", topics.OrderEvents).
		Str("inventoryTopic", topics.InventoryEvents).
		Str("shipmentTopic", topics.ShipmentEvents).
		Msg("starting request gateway")

	db, err := store.ConnectPostgres(config.PostgresURL())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer db.Close()

	if err := store.EnsureSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure schema")
	}

	orderProducer := kafka.NewProducer(brokers, topics.OrderEvents)
	defer orderProducer.Close()
	inventoryProducer := kafka.NewProducer(brokers, topics.InventoryEvents)
	defer inventoryProducer.Close()
	shipmentProducer := kafka.NewProducer(brokers, topics.ShipmentEvents)
	defer shipmentProducer.Close()

	orderSvc := order.NewService(store.NewOrderRepository(db), order.NewPublisher(orderProducer))
	inventorySvc := inventory.NewService(store.NewInventoryRepository(db), inventory.NewPublisher(inventoryProducer))
	shipmentSvc := shipment.NewService(store.NewShipmentRepository(db), shipment.NewPublisher(shipmentProducer))

	routerCfg := api.RouterConfig{
		Orders:    api.NewOrderHandlers(orderSvc),
		Inventory: api.NewInventoryHandlers(inventorySvc),
		Shipments: api.NewShipmentHandlers(shipmentSvc),
	}

	// Auth is optional: without a secret the gateway runs open (local dev).
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		if len(secret) < 32 {
			log.Fatal().Msg("JWT_SECRET must be at least 32 characters long")
		}
		tokens := auth.NewTokenService(secret, 15*time.Minute)
		operator := auth.Operator{
			Username:     config.Env("OPERATOR_USERNAME", "operator"),
			PasswordHash: os.Getenv("OPERATOR_PASSWORD_HASH"),
		}
		routerCfg.Tokens = tokens
		routerCfg.Auth = api.NewAuthHandlers(operator, tokens)
	} else {
		log.Warn().Msg("JWT_SECRET not set; gateway mutations are unauthenticated")
	}

	metrics.Serve(config.Env("METRICS_ADDR", ":2112"))

	server := &http.Server{
		Addr:    config.Env("HTTP_ADDR", ":8080"),
		Handler: api.NewRouter(routerCfg),
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("gateway listening")
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
}
