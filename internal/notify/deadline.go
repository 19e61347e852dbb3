package notify

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shadowgoose/grantpulse/internal/models"
)

// Alert is the outcome of evaluating one grant's deadline against the clock.
// EmailWorthy flags the tiers close enough to warrant an email hand-off.
type Alert struct {
	Notification models.Notification
	DaysUntil    int
	EmailWorthy  bool
}

var dueDateFormats = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006",
}

// ParseDueDate parses the free-text due date field. The literal "Ongoing" and
// anything unparseable yield ok=false; such grants are skipped by sweeps.
func ParseDueDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "ongoing") {
		return time.Time{}, false
	}
	for _, format := range dueDateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EvaluateDeadline classifies a grant's deadline distance into an alert tier.
// Only day distances of exactly 7, 3 or 1 alert ahead of time (info, warning,
// urgent respectively); anything overdue alerts as urgent. The in-between
// days are intentionally quiet, which keeps hourly sweeps from re-alerting on
// every tick at the cost of coarse tiering.
func EvaluateDeadline(grant models.GrantRecord, now time.Time) *Alert {
	due, ok := ParseDueDate(grant.DueDate)
	if !ok {
		return nil
	}

	daysUntil := int(math.Ceil(due.Sub(now).Hours() / 24))

	if daysUntil == 7 || daysUntil == 3 || daysUntil == 1 {
		urgency := models.UrgencyInfo
		icon := "📅"
		when := fmt.Sprintf("in %d days", daysUntil)
		switch daysUntil {
		case 1:
			urgency = models.UrgencyUrgent
			icon = "🚨"
			when = "tomorrow"
		case 3:
			urgency = models.UrgencyWarning
			icon = "⚠️"
		}

		title := "Grant Deadline Tomorrow"
		if daysUntil != 1 {
			title = fmt.Sprintf("Grant Deadline in %d days", daysUntil)
		}

		return &Alert{
			Notification: models.Notification{
				Type:    models.NotificationDeadlineAlert,
				Urgency: urgency,
				Title:   title,
				Message: fmt.Sprintf("%s deadline is %s", grant.Name, when),
				Metadata: map[string]any{
					"grantId":    grant.ID,
					"grantTitle": grant.Name,
					"deadline":   grant.DueDate,
					"daysUntil":  daysUntil,
					"actionUrl":  "/grants/" + grant.ID,
					"icon":       icon,
				},
			},
			DaysUntil:   daysUntil,
			EmailWorthy: daysUntil <= 3,
		}
	}

	if daysUntil < 0 {
		daysOverdue := -daysUntil
		plural := ""
		if daysOverdue > 1 {
			plural = "s"
		}
		return &Alert{
			Notification: models.Notification{
				Type:    models.NotificationOverdueAlert,
				Urgency: models.UrgencyUrgent,
				Title:   "Grant Overdue",
				Message: fmt.Sprintf("%s was due %d day%s ago", grant.Name, daysOverdue, plural),
				Metadata: map[string]any{
					"grantId":     grant.ID,
					"grantTitle":  grant.Name,
					"deadline":    grant.DueDate,
					"daysOverdue": daysOverdue,
					"actionUrl":   "/grants/" + grant.ID,
					"icon":        "🔴",
				},
			},
			DaysUntil: daysUntil,
		}
	}

	return nil
}
