package notifymock

import (
	"context"
	"sync"

	"bottlekeep-backend/internal/domain/notify"
)

var _ notify.Notifier = (*Notifier)(nil)

// Notifier collects messages in memory for assertions.
type Notifier struct {
	mu       sync.Mutex
	Messages []notify.Message
	Err      error
}

func (n *Notifier) Notify(_ context.Context, m notify.Message) error {
	if n.Err != nil {
		return n.Err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Messages = append(n.Messages, m)
	return nil
}

func (n *Notifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Messages)
}
