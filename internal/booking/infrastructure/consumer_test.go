package infrastructure

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/railbook/railbook/internal/booking/application"
	pkgDomain "github.com/railbook/railbook/pkg/domain"
)

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, map[string]interface{}) {}
func (nopLogger) Debug(context.Context, string, map[string]interface{}) {}
func (nopLogger) Error(context.Context, string, map[string]interface{}) {}
func (nopLogger) Trace(context.Context, string, map[string]interface{}) {}

type recordingEventHandler struct {
	got chan pkgDomain.Event[application.BookingEventData]
}

func (h recordingEventHandler) Handle(ctx context.Context, event pkgDomain.Event[application.BookingEventData]) error {
	h.got <- event
	return nil
}

func TestEventConsumerDeliversBrokerMessages(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := recordingEventHandler{got: make(chan pkgDomain.Event[application.BookingEventData], 1)}
	consumer := NewEventConsumer(pubSub, handler, nopLogger{})
	if err := consumer.Start(ctx, application.EventItineraryCommitted); err != nil {
		t.Fatalf("start: %v", err)
	}

	payload := []byte(`{"passengerId":7,"bookingRef":"REF-7","price":60,"realPrice":51}`)
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := pubSub.Publish(application.EventItineraryCommitted, msg); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case event := <-handler.got:
		if event.EventName() != application.EventItineraryCommitted {
			t.Errorf("event name = %q", event.EventName())
		}
		data := event.Payload()
		if data.PassengerID != 7 || data.BookingRef != "REF-7" || data.RealPrice != 51 {
			t.Errorf("payload = %+v", data)
		}
	case <-time.After(time.Second):
		t.Fatal("handler never saw the event")
	}
}

func TestEventConsumerSkipsUndecodableMessages(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := recordingEventHandler{got: make(chan pkgDomain.Event[application.BookingEventData], 2)}
	consumer := NewEventConsumer(pubSub, handler, nopLogger{})
	if err := consumer.Start(ctx, application.EventPassengerRegistered); err != nil {
		t.Fatalf("start: %v", err)
	}

	bad := message.NewMessage(watermill.NewUUID(), []byte(`{broken`))
	good := message.NewMessage(watermill.NewUUID(), []byte(`{"passengerId":1,"name":"Alice"}`))
	if err := pubSub.Publish(application.EventPassengerRegistered, bad, good); err != nil {
		t.Fatalf("publish: %v", err)
	}

	// The broken message is dropped; the one behind it still comes through.
	select {
	case event := <-handler.got:
		if event.Payload().Name != "Alice" {
			t.Errorf("payload = %+v", event.Payload())
		}
	case <-time.After(time.Second):
		t.Fatal("handler never saw the decodable event")
	}
	select {
	case event := <-handler.got:
		t.Errorf("unexpected second event %+v", event.Payload())
	case <-time.After(50 * time.Millisecond):
	}
}
