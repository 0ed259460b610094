package port

import "context"

// Notifier delivers user-facing messages. Delivery is fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, message string)
}
