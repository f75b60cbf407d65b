package notify

import "errors"

// ErrAllDeliveriesFailed indicates no recipient received the notification.
// Partial failure is reported through Delivery records instead; the review
// round can proceed as long as at least one reviewer was reached.
var ErrAllDeliveriesFailed = errors.New("all notification deliveries failed")
