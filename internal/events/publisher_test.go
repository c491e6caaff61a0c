package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewEvent(t *testing.T) {
	event := NewEvent(TypeUserSignedUp, UserSignedUpEvent{UserID: 1, Email: "a@example.com"})

	if event.ID == "" {
		t.Error("event ID should not be empty")
	}
	if event.Type != TypeUserSignedUp {
		t.Errorf("type = %q, want %q", event.Type, TypeUserSignedUp)
	}
	if event.Source != "quiz-service" {
		t.Errorf("source = %q, want quiz-service", event.Source)
	}
	if event.Version != "1.0" {
		t.Errorf("version = %q, want 1.0", event.Version)
	}
	if event.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
}

func TestGoChannelEventPublisher_DeliversToSubscriber(t *testing.T) {
	publisher := NewGoChannelEventPublisher(testLogger())
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := publisher.Subscribe(ctx, TypeQuizGraded)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	sent := NewEvent(TypeQuizGraded, QuizGradedEvent{QuizID: 7, CorrectCount: 3, IncorrectCount: 1})
	if err := publisher.Publish(ctx, sent); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case msg := <-messages:
		msg.Ack()

		var got Event
		if err := json.Unmarshal(msg.Payload, &got); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if got.ID != sent.ID || got.Type != TypeQuizGraded {
			t.Errorf("got event %s/%s, want %s/%s", got.ID, got.Type, sent.ID, sent.Type)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for the event")
	}
}

func TestGoChannelEventPublisher_NoSubscribers(t *testing.T) {
	publisher := NewGoChannelEventPublisher(testLogger())
	defer publisher.Close()

	ctx := context.Background()

	// Without subscribers events are dropped, not queued; a long-running
	// process publishing forever must not accumulate them.
	for i := 0; i < 1000; i++ {
		event := NewEvent(TypeUserSignedUp, UserSignedUpEvent{UserID: uint(i)})
		if err := publisher.Publish(ctx, event); err != nil {
			t.Fatalf("Publish %d failed: %v", i, err)
		}
	}
}
