package adapter

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/railbook/railbook/pkg/domain"
)

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, map[string]interface{}) {}
func (nopLogger) Debug(context.Context, string, map[string]interface{}) {}
func (nopLogger) Error(context.Context, string, map[string]interface{}) {}
func (nopLogger) Trace(context.Context, string, map[string]interface{}) {}

type testEvent struct {
	payload string
}

func (e testEvent) EventName() string { return "TestEvent" }
func (e testEvent) Payload() string   { return e.payload }

type recordingHandler struct {
	got chan string
}

func (h recordingHandler) Handle(ctx context.Context, event domain.Event[string]) error {
	h.got <- event.Payload()
	return nil
}

func TestWatermillEventBusPublishesAndHandlesLocally(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx := context.Background()
	messages, err := pubSub.Subscribe(ctx, "TestEvent")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	bus := NewWatermillEventBus[domain.Event[string], string](pubSub, nopLogger{})
	handler := recordingHandler{got: make(chan string, 1)}
	bus.RegisterHandler("TestEvent", handler)

	if err := bus.Publish(ctx, testEvent{payload: "hello"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case got := <-handler.got:
		if got != "hello" {
			t.Errorf("local handler saw %q", got)
		}
	case <-time.After(time.Second):
		t.Fatal("local handler never ran")
	}

	select {
	case msg := <-messages:
		msg.Ack()
		if string(msg.Payload) != `"hello"` {
			t.Errorf("published payload = %s", msg.Payload)
		}
	case <-time.After(time.Second):
		t.Fatal("no message reached the transport")
	}
}
