package notify

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentSends bounds parallel SMTP connections during fan-out.
const maxConcurrentSends = 4

// Notifier fans a message out to a set of addresses.
type Notifier struct {
	mailer Mailer
	logger *slog.Logger
}

// NewNotifier creates a Notifier over the given mailer.
func NewNotifier(mailer Mailer, logger *slog.Logger) *Notifier {
	return &Notifier{
		mailer: mailer,
		logger: logger.With("system", "notify"),
	}
}

// Broadcast sends msg to every address concurrently and records each
// outcome. Individual failures do not stop the fan-out and are reported in
// the returned deliveries; the call errors only when every delivery failed
// or the context was cancelled.
func (n *Notifier) Broadcast(ctx context.Context, addresses []string, msg Message) ([]Delivery, error) {
	if len(addresses) == 0 {
		return []Delivery{}, nil
	}

	deliveries := make([]Delivery, len(addresses))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSends)

	for i, addr := range addresses {
		g.Go(func() error {
			err := n.mailer.Send(gctx, addr, msg)

			d := Delivery{Recipient: addr, Sent: err == nil}
			if err != nil {
				d.Error = err.Error()
				n.logger.Warn("notification delivery failed",
					"recipient", addr,
					"error", err,
				)
			}

			deliveries[i] = d

			if gctx.Err() != nil {
				return gctx.Err()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return deliveries, err
	}

	sent := 0
	for _, d := range deliveries {
		if d.Sent {
			sent++
		}
	}

	if sent == 0 {
		return deliveries, ErrAllDeliveriesFailed
	}

	n.logger.Info("notifications sent",
		"recipients", len(addresses),
		"delivered", sent,
	)
	return deliveries, nil
}
