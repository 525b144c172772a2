package email

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/example/supplychain-events/internal/metrics"
	"github.com/example/supplychain-events/internal/notification"
)

// Sink consumes the normalized notification stream and delivers each event as
// an email. Failures of any kind are logged and dropped: no retry, no dead
// letter, no effect on the other sink.
type Sink struct {
	sender Sender
}

func NewSink(sender Sender) *Sink {
	return &Sink{sender: sender}
}

// HandleNotification processes one message from the notification topic.
// Always returns nil so the offset advances regardless of outcome.
func (s *Sink) HandleNotification(ctx context.Context, key, value []byte) error {
	var event notification.Event
	if err := json.Unmarshal(value, &event); err != nil {
		log.Error().Err(err).Str("key", string(key)).Msg("dropping undecodable notification")
		return nil
	}

	if err := s.sender.SendNotification(event); err != nil {
		metrics.EmailFailures.Inc()
		log.Error().Err(err).
			Str("notificationId", event.NotificationID).
			Msg("failed to send notification email")
		return nil
	}

	metrics.EmailsSent.Inc()
	log.Info().
		Str("notificationId", event.NotificationID).
		Str("type", event.Type).
		Msg("notification email sent")
	return nil
}
