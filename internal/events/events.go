package events

import "context"

// Event types
const (
	EventEscrowCreated        = "escrow_created"
	EventEscrowReleased       = "escrow_released"
	EventEscrowDisputed       = "escrow_disputed"
	EventPaymentReceived      = "payment_received"
	EventPaymentStatusUpdated = "payment_status_updated"
	EventTrainingEnrolled     = "training_enrolled"
)

// StreamNotifications carries everything the websocket hub fans out.
const StreamNotifications = "notifications"

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
