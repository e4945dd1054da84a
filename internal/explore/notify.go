package explore

// EventKind classifies a notification.
type EventKind int

const (
	EventInfo EventKind = iota
	EventSuccess
	EventError
	// EventRefresh asks the owning screen to re-fetch its collection.
	EventRefresh
)

// Event is one notification published by the dispatcher or a screen.
type Event struct {
	Kind    EventKind
	RowID   string // the affected row, if any
	Message string
}

// Notifier is an explicitly owned publish/subscribe channel for screen
// notifications. Subscribers are invoked synchronously in subscription order
// on the publisher's goroutine, which keeps delivery deterministic under the
// single-threaded event-loop model.
type Notifier struct {
	nextID int
	subs   []subscription
}

type subscription struct {
	id int
	fn func(Event)
}

// Subscription is the handle returned by Subscribe; Cancel detaches it.
type Subscription struct {
	id int
	n  *Notifier
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers a callback and returns its handle.
func (n *Notifier) Subscribe(fn func(Event)) *Subscription {
	n.nextID++
	n.subs = append(n.subs, subscription{id: n.nextID, fn: fn})
	return &Subscription{id: n.nextID, n: n}
}

// Publish delivers an event to every current subscriber.
func (n *Notifier) Publish(ev Event) {
	for _, s := range n.subs {
		s.fn(ev)
	}
}

// Cancel removes the subscription. Cancelling twice is harmless.
func (s *Subscription) Cancel() {
	if s.n == nil {
		return
	}
	subs := s.n.subs
	for i := range subs {
		if subs[i].id == s.id {
			s.n.subs = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	s.n = nil
}
