package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultTTL matches the legacy popup dismiss delay.
const DefaultTTL = 3 * time.Second

// Notification is one transient popup message.
type Notification struct {
	ID      uint64    `json:"id"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier collects transient success popups. Each notification
// auto-dismisses after the TTL; dismissal timers are fire-and-forget
// and have no effect on data consistency.
type Notifier struct {
	mu     sync.Mutex
	ttl    time.Duration
	seq    uint64
	active []Notification
}

func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{ttl: ttl}
}

// Show enqueues a popup and schedules its dismissal.
func (n *Notifier) Show(title, message string) {
	n.mu.Lock()
	n.seq++
	id := n.seq
	n.active = append(n.active, Notification{
		ID:      id,
		Title:   title,
		Message: message,
		At:      time.Now(),
	})
	n.mu.Unlock()

	zap.L().Debug("popup", zap.String("title", title), zap.String("message", message))
	time.AfterFunc(n.ttl, func() { n.dismiss(id) })
}

// Success shows a popup with the standard success title.
func (n *Notifier) Success(message string) {
	n.Show("Success!", message)
}

func (n *Notifier) dismiss(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, a := range n.active {
		if a.ID == id {
			n.active = append(n.active[:i], n.active[i+1:]...)
			return
		}
	}
}

// Active returns the popups currently on screen.
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.active...)
}
