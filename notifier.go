package conveyor

import (
	"context"
	"sync"
)

// Notifier is a single-shot future for one task completion. Notifiers
// are created in advance via [Queue.CreateNotifier] and resolved
// positionally: the Nth notifier created is resolved by the Nth task
// completion that follows, regardless of which task that is. There is
// no name or identity check — a caller who creates a notifier
// expecting task X while an unrelated task Y completes first receives
// Y's outcome. Create exactly one notifier per task you intend to
// observe, in the order those tasks will complete.
//
// A notifier with no matching completion stays pending indefinitely.
type Notifier struct {
	done chan struct{}
	once sync.Once
	out  Outcome
}

func newNotifier() *Notifier {
	return &Notifier{done: make(chan struct{})}
}

// Done returns a channel that is closed when the notifier resolves.
func (n *Notifier) Done() <-chan struct{} { return n.done }

// Wait blocks until the notifier resolves or ctx is done. Only the
// waiting caller suspends; the queue's internal progress is never
// blocked by an awaited notifier.
func (n *Notifier) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-n.done:
		return n.out, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

// Outcome returns the settled outcome without blocking. The second
// return is false while the notifier is still pending.
func (n *Notifier) Outcome() (Outcome, bool) {
	select {
	case <-n.done:
		return n.out, true
	default:
		return Outcome{}, false
	}
}

// resolve settles the notifier. Resolving more than once is a no-op;
// the single writer is the queue's completion handler.
func (n *Notifier) resolve(out Outcome) {
	n.once.Do(func() {
		n.out = out
		close(n.done)
	})
}
