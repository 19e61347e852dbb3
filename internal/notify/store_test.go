package notify

import (
	"fmt"
	"testing"
	"time"

	"github.com/shadowgoose/grantpulse/internal/models"
)

func TestStore_CapacityEvictsOldest(t *testing.T) {
	store := NewStore()

	for i := 0; i < 101; i++ {
		store.Add(models.Notification{
			Type:    models.NotificationSystem,
			Urgency: models.UrgencyInfo,
			Title:   fmt.Sprintf("notification %d", i),
		})
	}

	if store.Len() != 100 {
		t.Fatalf("expected store capped at 100, got %d", store.Len())
	}

	list := store.List()
	if list[0].Title != "notification 100" {
		t.Fatalf("expected newest first, got %q", list[0].Title)
	}
	if list[len(list)-1].Title != "notification 1" {
		t.Fatalf("expected oldest entry (notification 0) evicted, tail is %q", list[len(list)-1].Title)
	}
}

func TestStore_AddStampsFields(t *testing.T) {
	store := NewStore()
	stored := store.Add(models.Notification{
		ID:    "caller-supplied",
		Read:  true,
		Type:  models.NotificationTest,
		Title: "test",
	})

	if stored.ID == "" || stored.ID == "caller-supplied" {
		t.Fatalf("expected store-generated id, got %q", stored.ID)
	}
	if stored.Read {
		t.Fatal("expected read=false on insert")
	}
	if stored.Timestamp.IsZero() {
		t.Fatal("expected timestamp set on insert")
	}
}

func TestStore_MarkRead(t *testing.T) {
	store := NewStore()
	stored := store.Add(models.Notification{Type: models.NotificationTest, Title: "a"})

	if !store.MarkRead(stored.ID) {
		t.Fatal("expected MarkRead to find the notification")
	}
	if store.MarkRead("missing-id") {
		t.Fatal("expected MarkRead to return false for unknown id")
	}
	if !store.List()[0].Read {
		t.Fatal("expected notification marked read")
	}
}

func TestStore_MarkAllRead(t *testing.T) {
	store := NewStore()
	for i := 0; i < 5; i++ {
		store.Add(models.Notification{Type: models.NotificationSystem, Title: "n"})
	}

	if count := store.MarkAllRead(); count != 5 {
		t.Fatalf("expected count 5, got %d", count)
	}
	for _, n := range store.List() {
		if !n.Read {
			t.Fatalf("expected all read, %s is unread", n.ID)
		}
	}
}

func TestStore_ListComputesAgeAtCallTime(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore()
	store.now = func() time.Time { return current }

	store.Add(models.Notification{Type: models.NotificationSystem, Title: "aging"})

	if got := store.List()[0].TimeAgo; got != "Just now" {
		t.Fatalf("expected \"Just now\", got %q", got)
	}

	current = current.Add(5 * time.Minute)
	if got := store.List()[0].TimeAgo; got != "5m ago" {
		t.Fatalf("expected \"5m ago\", got %q", got)
	}

	current = current.Add(3 * time.Hour)
	if got := store.List()[0].TimeAgo; got != "3h ago" {
		t.Fatalf("expected \"3h ago\", got %q", got)
	}

	current = current.Add(48 * time.Hour)
	if got := store.List()[0].TimeAgo; got != "2d ago" {
		t.Fatalf("expected \"2d ago\", got %q", got)
	}
}
