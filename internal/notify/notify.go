// Package notify keeps a small in-memory feed of store events for the
// web UI. Notifications are ephemeral: they do not persist across
// restarts and never travel with exports.
package notify

import (
	"sync"
	"time"
)

// Level classifies a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is one feed entry.
type Notification struct {
	ID        int64  `json:"id"`
	Level     Level  `json:"level"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt int64  `json:"created_at"`
}

// Center holds a bounded notification feed. When full, the oldest entry
// is dropped to make room.
type Center struct {
	mu    sync.Mutex
	max   int
	next  int64
	items []Notification
}

// NewCenter creates a feed holding at most max entries. A non-positive
// max yields a feed that discards everything.
func NewCenter(max int) *Center {
	if max < 0 {
		max = 0
	}
	return &Center{max: max}
}

// Push appends a notification, evicting the oldest entry if the feed is
// full.
func (c *Center) Push(level Level, message string) Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.next++
	n := Notification{
		ID:        c.next,
		Level:     level,
		Message:   message,
		CreatedAt: time.Now().UnixMilli(),
	}
	if c.max == 0 {
		return n
	}
	c.items = append(c.items, n)
	if len(c.items) > c.max {
		c.items = c.items[len(c.items)-c.max:]
	}
	return n
}

// List returns the feed newest first.
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, len(c.items))
	for i, n := range c.items {
		out[len(c.items)-1-i] = n
	}
	return out
}

// MarkRead flags one entry as read. Returns false if it was not present.
func (c *Center) MarkRead(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Read = true
			return true
		}
	}
	return false
}

// Dismiss removes one entry by id. Returns false if it was not present.
func (c *Center) Dismiss(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the feed.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
