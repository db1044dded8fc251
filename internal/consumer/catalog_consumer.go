package consumer

import (
	"encoding/json"

	"github.com/campusmap/campus-events/internal/service"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Bindings are the routing keys that change what the catalog shows.
var Bindings = []string{"event.*", "attendance.*"}

type Invalidator interface {
	Invalidate()
}

// CatalogConsumer drops the local catalog snapshot whenever any replica
// reports a change.
type CatalogConsumer struct {
	catalog Invalidator
	log     zerolog.Logger
}

func NewCatalogConsumer(catalog Invalidator, log zerolog.Logger) *CatalogConsumer {
	return &CatalogConsumer{catalog: catalog, log: log}
}

// Start handles messages until msgs is closed.
func (cc *CatalogConsumer) Start(msgs <-chan amqp.Delivery) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			cc.handleMessage(msg)
		}
		cc.log.Info().Msg("channel closed, stopping consumer")
	}()
	return done
}

func (cc *CatalogConsumer) handleMessage(msg amqp.Delivery) {
	var n service.Notification
	if err := json.Unmarshal(msg.Body, &n); err != nil {
		cc.log.Error().Err(err).Str("routing_key", msg.RoutingKey).Msg("failed to unmarshal")
		_ = msg.Nack(false, false)
		return
	}

	cc.catalog.Invalidate()
	cc.log.Debug().
		Str("routing_key", msg.RoutingKey).
		Uint("event_id", n.EventID).
		Msg("catalog invalidated")
	_ = msg.Ack(false)
}
