package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	EventsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "events_published_total",
		Help: "Total number of events published, by topic",
	}, []string{"topic"})
	PublishFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "event_publish_failures_total",
		Help: "Total number of failed publish attempts, by topic",
	}, []string{"topic"})
	EventsConsumed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "events_consumed_total",
		Help: "Total number of events consumed, by topic",
	}, []string{"topic"})
	HandlerFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "event_handler_failures_total",
		Help: "Total number of handler errors, by topic",
	}, []string{"topic"})
	NotificationsBuilt = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifications_built_total",
		Help: "Total number of notification events normalized and republished",
	})
	EmailsSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notification_emails_sent_total",
		Help: "Total number of notification emails sent",
	})
	EmailFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notification_email_failures_total",
		Help: "Total number of notification emails that failed to send",
	})
	BroadcastClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "realtime_connected_clients",
		Help: "Number of websocket clients currently connected",
	})
	BroadcastsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "realtime_broadcasts_dropped_total",
		Help: "Total number of broadcasts dropped because a client was too slow",
	})
)

func init() {
	prometheus.MustRegister(
		EventsPublished, PublishFailures, EventsConsumed, HandlerFailures,
		NotificationsBuilt, EmailsSent, EmailFailures,
		BroadcastClients, BroadcastsDropped,
	)
}

// Serve exposes /metrics on addr in the background.
func Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()
}
