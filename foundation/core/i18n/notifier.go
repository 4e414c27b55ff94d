// File: notifier.go
// Title: Change Notification
// Description: Ordered observer list with synchronous dispatch and
//              per-subscriber panic isolation.

package i18n

import (
	"fmt"
	"sync"

	mdwlog "github.com/msto63/mdwloc/foundation/core/log"
)

// Notifier dispatches language changes to registered handlers. The zero
// value is ready to use.
type Notifier struct {
	mu       sync.Mutex
	nextID   uint64
	handlers []subscription

	// Logger receives recovered handler panics. Nil means the default logger.
	Logger *mdwlog.Logger
}

type subscription struct {
	id uint64
	fn ChangeHandler
}

// Subscribe registers fn and returns a function that removes it again.
// Calling the returned function more than once is harmless.
func (n *Notifier) Subscribe(fn ChangeHandler) func() {
	if fn == nil {
		return func() {}
	}

	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.handlers = append(n.handlers, subscription{id: id, fn: fn})
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { n.remove(id) })
	}
}

// Len returns the number of registered handlers.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.handlers)
}

// Notify calls every handler with code in registration order. Handlers run
// outside the lock so they may subscribe or unsubscribe themselves.
func (n *Notifier) Notify(code string) {
	n.mu.Lock()
	snapshot := make([]subscription, len(n.handlers))
	copy(snapshot, n.handlers)
	n.mu.Unlock()

	for _, s := range snapshot {
		n.dispatch(s, code)
	}
}

func (n *Notifier) dispatch(s subscription, code string) {
	defer func() {
		if r := recover(); r != nil {
			mdwlog.OrDefault(n.Logger).Error("language change handler panicked", mdwlog.Fields{
				"language":   code,
				"subscriber": s.id,
				"panic":      fmt.Sprint(r),
			})
		}
	}()
	s.fn(code)
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, s := range n.handlers {
		if s.id == id {
			n.handlers = append(n.handlers[:i:i], n.handlers[i+1:]...)
			return
		}
	}
}
