// internal/domain/cart/notifier.go
package cart

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Notifier receives the user-facing messages produced by cart actions.
// Notifiers observe only; they cannot change cart state.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(n Notification)

// Notify calls f
func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}

// NopNotifier discards notifications
var NopNotifier Notifier = nopNotifier{}

// LogNotifier writes notifications to a logrus logger
type LogNotifier struct {
	logger logrus.FieldLogger
}

// NewLogNotifier creates a notifier that logs at info level
func NewLogNotifier(logger logrus.FieldLogger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs n
func (l *LogNotifier) Notify(n Notification) {
	l.logger.WithFields(logrus.Fields{
		"kind":       n.Kind,
		"product_id": n.ProductID,
	}).Info(n.Message)
}

// Collector keeps notifications so they can be returned to the client
type Collector struct {
	mu    sync.Mutex
	items []Notification
}

// Notify records n
func (c *Collector) Notify(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, n)
}

// Notifications returns everything collected so far
func (c *Collector) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Messages returns just the message text of collected notifications
func (c *Collector) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.items))
	for i, n := range c.items {
		out[i] = n.Message
	}
	return out
}

type multiNotifier []Notifier

func (m multiNotifier) Notify(n Notification) {
	for _, notifier := range m {
		notifier.Notify(n)
	}
}

// MultiNotifier fans a notification out to every non-nil notifier
func MultiNotifier(notifiers ...Notifier) Notifier {
	out := make(multiNotifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}
