package infrastructure

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/railbook/railbook/internal/booking/application"
	pkgApp "github.com/railbook/railbook/pkg/application"
	pkgDomain "github.com/railbook/railbook/pkg/domain"
)

// EventConsumer drains booking events from a broker subscription and feeds
// them to an event handler. It is the consuming side of the gochannel, kafka
// and redis backends; the in-memory bus delivers events synchronously and
// does not need one.
type EventConsumer struct {
	subscriber message.Subscriber
	handler    pkgApp.EventHandler[pkgDomain.Event[application.BookingEventData], application.BookingEventData]
	logger     pkgApp.AppLogger
}

func NewEventConsumer(
	subscriber message.Subscriber,
	handler pkgApp.EventHandler[pkgDomain.Event[application.BookingEventData], application.BookingEventData],
	logger pkgApp.AppLogger,
) *EventConsumer {
	return &EventConsumer{subscriber: subscriber, handler: handler, logger: logger}
}

// Start subscribes to each topic and consumes in the background until ctx is
// cancelled and the subscriber closes its channels.
func (c *EventConsumer) Start(ctx context.Context, topics ...string) error {
	for _, topic := range topics {
		messages, err := c.subscriber.Subscribe(ctx, topic)
		if err != nil {
			return err
		}
		go c.consume(ctx, topic, messages)
	}
	return nil
}

func (c *EventConsumer) consume(ctx context.Context, topic string, messages <-chan *message.Message) {
	for msg := range messages {
		var data application.BookingEventData
		if err := json.Unmarshal(msg.Payload, &data); err != nil {
			pkgApp.LogError(ctx, c.logger, "discarding undecodable event", err, map[string]interface{}{
				"topic":      topic,
				"message_id": msg.UUID,
			})
			msg.Ack()
			continue
		}

		event, ok := application.NewBookingEvent(topic, data)
		if !ok {
			pkgApp.LogError(ctx, c.logger, "discarding event from unknown topic", nil, map[string]interface{}{
				"topic":      topic,
				"message_id": msg.UUID,
			})
			msg.Ack()
			continue
		}

		if err := c.handler.Handle(ctx, event); err != nil {
			pkgApp.LogError(ctx, c.logger, "event handler failed, message left for redelivery", err, map[string]interface{}{
				"topic":      topic,
				"message_id": msg.UUID,
			})
			msg.Nack()
			continue
		}
		msg.Ack()
	}
}
