package notify

import (
	"testing"
	"time"

	"github.com/shadowgoose/grantpulse/internal/models"
)

var sweepNow = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestEvaluateDeadline_SevenDaysOut(t *testing.T) {
	alert := EvaluateDeadline(models.GrantRecord{ID: "g1", Name: "Doc Fund", DueDate: "2025-01-08"}, sweepNow)
	if alert == nil {
		t.Fatal("expected an alert 7 days out")
	}
	if alert.Notification.Type != models.NotificationDeadlineAlert {
		t.Fatalf("expected deadline_alert, got %s", alert.Notification.Type)
	}
	if alert.Notification.Urgency != models.UrgencyInfo {
		t.Fatalf("expected info urgency, got %s", alert.Notification.Urgency)
	}
	if alert.EmailWorthy {
		t.Fatal("7 days out must not be email-worthy")
	}
}

func TestEvaluateDeadline_ThreeDaysOut(t *testing.T) {
	alert := EvaluateDeadline(models.GrantRecord{Name: "Doc Fund", DueDate: "2025-01-04"}, sweepNow)
	if alert == nil {
		t.Fatal("expected an alert 3 days out")
	}
	if alert.Notification.Urgency != models.UrgencyWarning {
		t.Fatalf("expected warning urgency, got %s", alert.Notification.Urgency)
	}
	if !alert.EmailWorthy {
		t.Fatal("3 days out must be email-worthy")
	}
}

func TestEvaluateDeadline_Tomorrow(t *testing.T) {
	alert := EvaluateDeadline(models.GrantRecord{Name: "Doc Fund", DueDate: "2025-01-02"}, sweepNow)
	if alert == nil {
		t.Fatal("expected an alert 1 day out")
	}
	if alert.Notification.Urgency != models.UrgencyUrgent {
		t.Fatalf("expected urgent urgency, got %s", alert.Notification.Urgency)
	}
	if !alert.EmailWorthy {
		t.Fatal("1 day out must be email-worthy")
	}
	if alert.Notification.Title != "Grant Deadline Tomorrow" {
		t.Fatalf("unexpected title %q", alert.Notification.Title)
	}
}

func TestEvaluateDeadline_Overdue(t *testing.T) {
	alert := EvaluateDeadline(models.GrantRecord{Name: "Doc Fund", DueDate: "2024-12-29"}, sweepNow)
	if alert == nil {
		t.Fatal("expected an overdue alert")
	}
	if alert.Notification.Type != models.NotificationOverdueAlert {
		t.Fatalf("expected overdue_alert, got %s", alert.Notification.Type)
	}
	if alert.Notification.Urgency != models.UrgencyUrgent {
		t.Fatalf("overdue is always urgent, got %s", alert.Notification.Urgency)
	}
	if got := alert.Notification.Metadata["daysOverdue"]; got != 3 {
		t.Fatalf("expected daysOverdue 3, got %v", got)
	}
}

func TestEvaluateDeadline_QuietDays(t *testing.T) {
	for _, due := range []string{"2025-01-07", "2025-01-06", "2025-01-03", "2025-01-01"} {
		if alert := EvaluateDeadline(models.GrantRecord{Name: "Doc Fund", DueDate: due}, sweepNow); alert != nil {
			t.Fatalf("expected no alert for due date %s, got %+v", due, alert.Notification)
		}
	}
}

func TestEvaluateDeadline_SkipsUnparseable(t *testing.T) {
	for _, due := range []string{"", "Ongoing", "ongoing", "whenever"} {
		if alert := EvaluateDeadline(models.GrantRecord{Name: "Doc Fund", DueDate: due}, sweepNow); alert != nil {
			t.Fatalf("expected no alert for due date %q", due)
		}
	}
}

func TestParseDueDate_Formats(t *testing.T) {
	cases := map[string]time.Time{
		"2025-03-15":           time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		"2025-03-15T17:00:00Z": time.Date(2025, 3, 15, 17, 0, 0, 0, time.UTC),
		"15/03/2025":           time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	for raw, expected := range cases {
		got, ok := ParseDueDate(raw)
		if !ok {
			t.Fatalf("expected %q to parse", raw)
		}
		if !got.Equal(expected) {
			t.Fatalf("%q: expected %s, got %s", raw, expected, got)
		}
	}
}
