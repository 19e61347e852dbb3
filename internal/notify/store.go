package notify

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shadowgoose/grantpulse/internal/models"
)

// storeCapacity bounds the in-memory log; insertions beyond it silently drop
// the oldest entries. This is a lossy, best-effort log, not an audit trail.
const storeCapacity = 100

// Store is a bounded, newest-first, in-memory notification log scoped to the
// process lifetime. The scheduler's sweeps and HTTP handlers touch it from
// different goroutines, so every operation takes the mutex.
type Store struct {
	mu            sync.Mutex
	notifications []models.Notification
	now           func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// Add stamps id, timestamp and read=false, then prepends the notification.
// Returns the stored value.
func (s *Store) Add(n models.Notification) models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	n.ID = uuid.NewString()
	n.Timestamp = s.now()
	n.Read = false

	s.notifications = append([]models.Notification{n}, s.notifications...)
	if len(s.notifications) > storeCapacity {
		s.notifications = s.notifications[:storeCapacity]
	}

	log.Printf("New notification [%s]: %s", n.Type, n.Title)
	return n
}

// List returns all notifications newest-first, each annotated with a
// relative-age string computed against the clock at call time.
func (s *Store) List() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := make([]models.Notification, len(s.notifications))
	for i, n := range s.notifications {
		n.TimeAgo = timeAgo(n.Timestamp, now)
		out[i] = n
	}
	return out
}

// MarkRead flips a single notification to read. Returns false when the id is
// unknown (e.g. already evicted).
func (s *Store) MarkRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return true
		}
	}
	return false
}

// MarkAllRead marks everything read and returns how many entries the store
// currently holds.
func (s *Store) MarkAllRead() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		s.notifications[i].Read = true
	}
	return len(s.notifications)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notifications)
}

func timeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
