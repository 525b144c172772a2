package main

import (
	"context"
	"encoding/base64"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/example/supplychain-events/internal/config"
	"github.com/example/supplychain-events/internal/email"
	"github.com/example/supplychain-events/internal/logging"
)

// Lambda flavor of the email sink, triggered by an MSK event source mapping
// on the notification topic. Same semantics as cmd/mailer: every failure is
// logged and dropped, so the batch always succeeds.
var sink *email.Sink

func init() {
	logging.Setup("lambda-mailer")
	smtp := config.SMTPFromEnv()
	sink = email.NewSink(email.NewService(smtp.Host, smtp.Port, smtp.From, smtp.To))
	log.Info().Str("smtp", smtp.Host+":"+smtp.Port).Msg("lambda mailer initialized")
}

func handler(ctx context.Context, kafkaEvent events.KafkaEvent) error {
	for _, records := range kafkaEvent.Records {
		for _, record := range records {
			key, err := base64.StdEncoding.DecodeString(record.Key)
			if err != nil {
				log.Error().Err(err).Str("topic", record.Topic).Msg("undecodable record key")
				continue
			}
			value, err := base64.StdEncoding.DecodeString(record.Value)
			if err != nil {
				log.Error().Err(err).Str("topic", record.Topic).Msg("undecodable record value")
				continue
			}
			_ = sink.HandleNotification(ctx, key, value)
		}
	}
	return nil
}

func main() {
	lambda.Start(handler)
}
