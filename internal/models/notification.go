package models

import "time"

// Notification types.
const (
	NotificationDeadlineAlert = "deadline_alert"
	NotificationOverdueAlert  = "overdue_alert"
	NotificationNewGrant      = "new_grant"
	NotificationDailySummary  = "daily_summary"
	NotificationSystem        = "system"
	NotificationTest          = "test"
)

// Urgency levels. Urgency is fully determined by the notification type and
// the day distance that produced it, never set freely.
const (
	UrgencyInfo    = "info"
	UrgencyWarning = "warning"
	UrgencyUrgent  = "urgent"
)

// Notification is one in-app alert. ID and Timestamp are stamped by the
// store on insert; TimeAgo is computed at list time, not at insertion time.
type Notification struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Type      string         `json:"type"`
	Urgency   string         `json:"urgency"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Read      bool           `json:"read"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	TimeAgo   string         `json:"time_ago,omitempty"`
}

// DailySummary aggregates the grant collection for the once-a-day digest.
// NewGrantsToday is a calendar-day match, unlike the new-grant sweep's
// rolling 24h lookback.
type DailySummary struct {
	TotalGrants       int `json:"total_grants"`
	EligibleGrants    int `json:"eligible_grants"`
	UpcomingDeadlines int `json:"upcoming_deadlines"`
	NewGrantsToday    int `json:"new_grants_today"`
}
