package runtime

import (
	"slices"

	"github.com/hashpad/turing/pkg/domain"
)

type subscriber struct {
	id  int
	obs domain.Observer
}

// Notifier is a synchronous fan-out of snapshots to observers.
// Delivery happens on the caller's goroutine, in subscription order.
type Notifier struct {
	subscribers []subscriber
	nextID      int
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers obs and returns a function that removes it.
func (n *Notifier) Subscribe(obs domain.Observer) func() {
	id := n.nextID
	n.nextID++
	n.subscribers = append(n.subscribers, subscriber{id: id, obs: obs})

	return func() {
		n.subscribers = slices.DeleteFunc(n.subscribers, func(s subscriber) bool {
			return s.id == id
		})
	}
}

// Notify delivers snap to every observer. Each observer gets its own copy of the tape.
func (n *Notifier) Notify(snap domain.Snapshot) {
	// Observers may unsubscribe while being notified.
	current := slices.Clone(n.subscribers)
	for _, s := range current {
		own := snap
		own.Tape = slices.Clone(snap.Tape)
		s.obs.Render(own)
	}
}

// Len returns the number of observers.
func (n *Notifier) Len() int {
	return len(n.subscribers)
}
