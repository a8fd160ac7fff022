package presentation

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"ethicsreview/internal/ports"
)

type NotificationKind string

const (
	KindError   NotificationKind = "error"
	KindSuccess NotificationKind = "success"
)

type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
	ShownAt time.Time        `json:"shownAt"`
}

// Notifications holds at most one visible message. Showing either kind replaces
// whatever is visible, and each message hides itself after ttl unless replaced.
type Notifications struct {
	clock clockwork.Clock
	ttl   time.Duration

	mu      sync.Mutex
	current *Notification
	gen     uint64
	timer   clockwork.Timer
}

var _ ports.Notifier = (*Notifications)(nil)

func NewNotifications(clock clockwork.Clock, ttl time.Duration) *Notifications {
	return &Notifications{clock: clock, ttl: ttl}
}

func (n *Notifications) Error(msg string)   { n.show(KindError, msg) }
func (n *Notifications) Success(msg string) { n.show(KindSuccess, msg) }

func (n *Notifications) show(kind NotificationKind, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gen++
	gen := n.gen
	n.current = &Notification{Kind: kind, Message: msg, ShownAt: n.clock.Now()}
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = n.clock.AfterFunc(n.ttl, func() { n.dismiss(gen) })
}

func (n *Notifications) dismiss(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.gen == gen {
		n.current = nil
	}
}

// Current returns the visible notification, if any.
func (n *Notifications) Current() *Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return nil
	}
	c := *n.current
	return &c
}
