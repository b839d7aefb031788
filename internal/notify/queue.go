package notify

import (
	"sync"
	"time"

	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
	"github.com/google/uuid"
)

// DefaultCapacity bounds how many notifications are kept before the oldest
// ones are dropped.
const DefaultCapacity = 50

// Notification is a single operator-facing message.
type Notification struct {
	ID        string
	Level     interfaces.NotificationLevel
	Title     string
	Message   string
	CreatedAt time.Time
}

// Queue keeps notifications until they are dismissed.
type Queue struct {
	mu       sync.RWMutex
	items    []Notification
	capacity int
	now      func() time.Time
	id       func() string
	logger   interfaces.Logger
}

var _ interfaces.Notifier = (*Queue)(nil)

// Option configures a Queue.
type Option func(*Queue)

// WithCapacity overrides DefaultCapacity. Values below one are ignored.
func WithCapacity(capacity int) Option {
	return func(q *Queue) {
		if capacity > 0 {
			q.capacity = capacity
		}
	}
}

// WithClock overrides the notification timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(q *Queue) {
		if clock != nil {
			q.now = clock
		}
	}
}

// WithIDGenerator overrides notification id generation.
func WithIDGenerator(generator func() string) Option {
	return func(q *Queue) {
		if generator != nil {
			q.id = generator
		}
	}
}

// WithLogger mirrors every notification to logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(q *Queue) {
		q.logger = logger
	}
}

// NewQueue returns an empty queue.
func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		capacity: DefaultCapacity,
		now:      func() time.Time { return time.Now().UTC() },
		id:       uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(q)
		}
	}
	q.logger = logging.Ensure(q.logger)
	return q
}

// Notify appends a notification and returns its id.
func (q *Queue) Notify(level interfaces.NotificationLevel, title, message string) string {
	if level == "" {
		level = interfaces.NotificationInfo
	}
	entry := Notification{
		ID:        q.id(),
		Level:     level,
		Title:     title,
		Message:   message,
		CreatedAt: q.now(),
	}

	q.mu.Lock()
	q.items = append(q.items, entry)
	if overflow := len(q.items) - q.capacity; overflow > 0 {
		q.items = append([]Notification(nil), q.items[overflow:]...)
	}
	q.mu.Unlock()

	if level == interfaces.NotificationError {
		q.logger.Warn("notify.error", "title", title, "message", message)
	} else {
		q.logger.Debug("notify."+string(level), "title", title)
	}
	return entry.ID
}

// List returns pending notifications, oldest first.
func (q *Queue) List() []Notification {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return append([]Notification(nil), q.items...)
}

// Len reports the number of pending notifications.
func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.items)
}

// Dismiss removes the notification with id and reports whether it existed.
func (q *Queue) Dismiss(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, item := range q.items {
		if item.ID == id {
			q.items = append(q.items[:i:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear dismisses everything.
func (q *Queue) Clear() {
	q.mu.Lock()
	q.items = nil
	q.mu.Unlock()
}
