// Package notify delivers review requests to agreement recipients over
// email and reports per-recipient delivery outcomes.
package notify

import "github.com/JaimeStill/accord/internal/recipients"

// Message is a rendered notification ready for delivery.
type Message struct {
	Subject string
	Body    string
}

// Delivery records the outcome of a single send attempt.
type Delivery struct {
	Recipient string `json:"recipient"`
	Sent      bool   `json:"sent"`
	Error     string `json:"error,omitempty"`
}

// Emails extracts the addresses from a recipient list.
func Emails(recs []recipients.Recipient) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Email
	}
	return out
}
