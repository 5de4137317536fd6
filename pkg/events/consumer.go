package events

import (
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/subway/pkg/ctdf"
)

type BatchConsumer struct {
	Handle func(ctdf.Event)
}

func NewBatchConsumer() *BatchConsumer {
	return &BatchConsumer{
		Handle: func(event ctdf.Event) {
			log.Info().
				Str("type", string(event.Type)).
				Int64("line", int64(event.LineRef)).
				Time("timestamp", event.Timestamp).
				Msg(event.Summary())
		},
	}
}

func (consumer *BatchConsumer) Consume(batch rmq.Deliveries) {
	var decoded rmq.Deliveries

	for _, delivery := range batch {
		var event ctdf.Event
		if err := json.Unmarshal([]byte(delivery.Payload()), &event); err != nil {
			log.Error().Err(err).Str("payload", delivery.Payload()).Msg("Failed to decode event")

			// Kept in the rejected list for inspection
			if err := delivery.Reject(); err != nil {
				log.Error().Err(err).Msg("Failed to reject event")
			}
			continue
		}

		log.Debug().Msg(pretty.Sprint(event))
		consumer.Handle(event)
		decoded = append(decoded, delivery)
	}

	if ackErrors := decoded.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Error().Err(err).Msg("Failed to ack event")
		}
	}
}
