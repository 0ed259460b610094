// Package notify delivers cart messages to the user.
package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/rl1809/cart-store/internal/port"
)

// LogNotifier writes user-facing messages to a logger.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, message string) {
	n.logger.Warn(message, zap.String("channel", "toast"))
}

// Recorder keeps every message it receives, in order.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *Recorder) Notify(ctx context.Context, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}

// Fanout delivers every message to each notifier in order.
type Fanout []port.Notifier

func (f Fanout) Notify(ctx context.Context, message string) {
	for _, n := range f {
		n.Notify(ctx, message)
	}
}
