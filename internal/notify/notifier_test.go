package notify_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/JaimeStill/accord/internal/notify"
)

// fakeMailer records sends and fails for configured addresses.
type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	fail map[string]error
}

func (f *fakeMailer) Send(ctx context.Context, to string, msg notify.Message) error {
	if err, ok := f.fail[to]; ok {
		return err
	}

	f.mu.Lock()
	f.sent = append(f.sent, to)
	f.mu.Unlock()
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBroadcastAllSucceed(t *testing.T) {
	mailer := &fakeMailer{}
	n := notify.NewNotifier(mailer, discard())

	addresses := []string{"a@example.com", "b@example.com", "c@example.com"}
	deliveries, err := n.Broadcast(context.Background(), addresses, notify.Message{
		Subject: "Review requested",
		Body:    "A new draft is ready.",
	})
	if err != nil {
		t.Fatalf("Broadcast() error = %v", err)
	}

	if len(deliveries) != 3 {
		t.Fatalf("deliveries = %d, want 3", len(deliveries))
	}
	for i, d := range deliveries {
		if d.Recipient != addresses[i] {
			t.Errorf("deliveries[%d].Recipient = %q, want %q", i, d.Recipient, addresses[i])
		}
		if !d.Sent {
			t.Errorf("deliveries[%d].Sent = false, want true", i)
		}
	}
}

func TestBroadcastPartialFailure(t *testing.T) {
	mailer := &fakeMailer{
		fail: map[string]error{"b@example.com": errors.New("mailbox full")},
	}
	n := notify.NewNotifier(mailer, discard())

	addresses := []string{"a@example.com", "b@example.com"}
	deliveries, err := n.Broadcast(context.Background(), addresses, notify.Message{Subject: "s"})
	if err != nil {
		t.Fatalf("Broadcast() error = %v, want nil for partial failure", err)
	}

	if !deliveries[0].Sent {
		t.Error("deliveries[0].Sent = false, want true")
	}
	if deliveries[1].Sent {
		t.Error("deliveries[1].Sent = true, want false")
	}
	if deliveries[1].Error == "" {
		t.Error("deliveries[1].Error is empty, want failure detail")
	}
}

func TestBroadcastTotalFailure(t *testing.T) {
	mailer := &fakeMailer{
		fail: map[string]error{
			"a@example.com": errors.New("refused"),
			"b@example.com": errors.New("refused"),
		},
	}
	n := notify.NewNotifier(mailer, discard())

	_, err := n.Broadcast(context.Background(), []string{"a@example.com", "b@example.com"}, notify.Message{Subject: "s"})
	if !errors.Is(err, notify.ErrAllDeliveriesFailed) {
		t.Errorf("Broadcast() error = %v, want ErrAllDeliveriesFailed", err)
	}
}

func TestBroadcastEmptyAudience(t *testing.T) {
	mailer := &fakeMailer{}
	n := notify.NewNotifier(mailer, discard())

	deliveries, err := n.Broadcast(context.Background(), nil, notify.Message{Subject: "s"})
	if err != nil {
		t.Fatalf("Broadcast() error = %v", err)
	}
	if len(deliveries) != 0 {
		t.Errorf("deliveries = %d, want 0", len(deliveries))
	}
	if len(mailer.sent) != 0 {
		t.Errorf("mailer sent %d messages, want 0", len(mailer.sent))
	}
}
