package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shadowgoose/grantpulse/internal/eligibility"
	"github.com/shadowgoose/grantpulse/internal/metrics"
	"github.com/shadowgoose/grantpulse/internal/models"
)

// GrantSource supplies the current grant collection, potentially merged from
// several underlying sources. Implementations must be safe to call
// repeatedly; a failed call costs one sweep and nothing more.
type GrantSource interface {
	ListGrants(ctx context.Context) ([]models.GrantRecord, error)
}

// Config controls sweep cadences and email targets.
type Config struct {
	DeadlineInterval  time.Duration
	NewGrantInterval  time.Duration
	SummaryHour       int // local hour of the once-daily summary
	NotificationEmail string
	DashboardURL      string
}

func DefaultConfig() Config {
	return Config{
		DeadlineInterval:  time.Hour,
		NewGrantInterval:  6 * time.Hour,
		SummaryHour:       9,
		NotificationEmail: "admin@shadowgoose.com",
		DashboardURL:      "http://localhost:4200",
	}
}

// Scheduler drives the periodic deadline, new-grant and daily-summary sweeps.
// Everything it touches is passed in at construction and nothing runs until
// Start is called; tests invoke the Run* methods directly instead of waiting
// on wall-clock ticks.
//
// There is no persisted watermark: "new" and "upcoming" are recomputed from
// the clock and the grants' own timestamps on every sweep, so a restart or
// two sweeps landing on the same day count can re-emit a semantically
// duplicate alert.
type Scheduler struct {
	source  GrantSource
	profile models.EligibilityProfile
	store   *Store
	mailer  Mailer
	cfg     Config
	now     func() time.Time
}

func NewScheduler(source GrantSource, profile models.EligibilityProfile, store *Store, mailer Mailer, cfg Config) *Scheduler {
	def := DefaultConfig()
	if cfg.DeadlineInterval <= 0 {
		cfg.DeadlineInterval = def.DeadlineInterval
	}
	if cfg.NewGrantInterval <= 0 {
		cfg.NewGrantInterval = def.NewGrantInterval
	}
	if cfg.SummaryHour < 0 || cfg.SummaryHour > 23 {
		cfg.SummaryHour = def.SummaryHour
	}
	if cfg.NotificationEmail == "" {
		cfg.NotificationEmail = def.NotificationEmail
	}
	if cfg.DashboardURL == "" {
		cfg.DashboardURL = def.DashboardURL
	}
	return &Scheduler{
		source:  source,
		profile: profile,
		store:   store,
		mailer:  mailer,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Start launches the three sweep loops. They run until ctx is cancelled.
// The deadline and new-grant sweeps fire once immediately on start.
func (s *Scheduler) Start(ctx context.Context) {
	log.Printf("Scheduler started (deadlines every %v, new grants every %v, summary at %02d:00)",
		s.cfg.DeadlineInterval, s.cfg.NewGrantInterval, s.cfg.SummaryHour)

	go s.loop(ctx, s.cfg.DeadlineInterval, func() { s.RunDeadlineSweep(ctx) })
	go s.loop(ctx, s.cfg.NewGrantInterval, func() { s.RunNewGrantSweep(ctx) })
	go s.summaryLoop(ctx)
}

func (s *Scheduler) loop(ctx context.Context, interval time.Duration, run func()) {
	run()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}

func (s *Scheduler) summaryLoop(ctx context.Context) {
	for {
		timer := time.NewTimer(s.nextSummaryTime().Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.RunDailySummary(ctx)
		}
	}
}

func (s *Scheduler) nextSummaryTime() time.Time {
	now := s.now()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.cfg.SummaryHour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// RunDeadlineSweep evaluates every grant's deadline and records alerts for
// the 7/3/1-day tiers and overdue grants. Alerts within 3 days are also
// handed to the mailer. Returns the notifications it produced.
func (s *Scheduler) RunDeadlineSweep(ctx context.Context) []models.Notification {
	grants, err := s.source.ListGrants(ctx)
	if err != nil {
		log.Printf("Deadline sweep: failed to list grants: %v", err)
		metrics.SweepsTotal.WithLabelValues("deadline", "error").Inc()
		return nil
	}

	now := s.now()
	var produced []models.Notification
	for _, grant := range grants {
		alert := EvaluateDeadline(grant, now)
		if alert == nil {
			continue
		}

		stored := s.store.Add(alert.Notification)
		metrics.NotificationsTotal.WithLabelValues(stored.Type).Inc()
		produced = append(produced, stored)

		if alert.EmailWorthy {
			subject, htmlBody, textBody := RenderDeadlineEmail(grant, alert.DaysUntil, s.cfg.DashboardURL)
			s.send(ctx, subject, htmlBody, textBody)
		}
	}

	if len(produced) > 0 {
		log.Printf("Deadline sweep generated %d alerts", len(produced))
	}
	metrics.SweepsTotal.WithLabelValues("deadline", "ok").Inc()
	return produced
}

// RunNewGrantSweep notifies for every grant added within the last 24 hours
// and, when any were found, sends one batched digest email. Grants with no
// recorded entry time count as new.
func (s *Scheduler) RunNewGrantSweep(ctx context.Context) []models.Notification {
	grants, err := s.source.ListGrants(ctx)
	if err != nil {
		log.Printf("New grant sweep: failed to list grants: %v", err)
		metrics.SweepsTotal.WithLabelValues("new_grants", "error").Inc()
		return nil
	}

	now := s.now()
	cutoff := now.Add(-24 * time.Hour)

	var fresh []models.GrantRecord
	var produced []models.Notification
	for _, grant := range grants {
		added := grant.AddedAt()
		if added.IsZero() {
			added = now
		}
		if !added.After(cutoff) {
			continue
		}

		fresh = append(fresh, grant)
		stored := s.store.Add(models.Notification{
			Type:    models.NotificationNewGrant,
			Urgency: models.UrgencyInfo,
			Title:   "New Grant Opportunity",
			Message: grant.Name + " - " + grant.AmountString,
			Metadata: map[string]any{
				"grantId":    grant.ID,
				"grantTitle": grant.Name,
				"funder":     grant.Funder,
				"amount":     grant.AmountString,
				"actionUrl":  "/grants/" + grant.ID,
				"icon":       "🆕",
			},
		})
		metrics.NotificationsTotal.WithLabelValues(stored.Type).Inc()
		produced = append(produced, stored)
	}

	if len(fresh) > 0 {
		log.Printf("New grant sweep found %d grants", len(fresh))
		subject, htmlBody, textBody := RenderNewGrantsEmail(fresh, s.cfg.DashboardURL)
		s.send(ctx, subject, htmlBody, textBody)
	}
	metrics.SweepsTotal.WithLabelValues("new_grants", "ok").Inc()
	return produced
}

// RunDailySummary records exactly one daily_summary notification carrying
// aggregate counts over the full grant collection. Grants without a stored
// assessment are assessed on the fly against the configured profile.
func (s *Scheduler) RunDailySummary(ctx context.Context) *models.Notification {
	grants, err := s.source.ListGrants(ctx)
	if err != nil {
		log.Printf("Daily summary: failed to list grants: %v", err)
		metrics.SweepsTotal.WithLabelValues("daily_summary", "error").Inc()
		return nil
	}

	now := s.now()
	summary := models.DailySummary{TotalGrants: len(grants)}
	for _, grant := range grants {
		assessment := grant.Assessment
		if assessment == nil {
			a := eligibility.Assess(grant, s.profile)
			assessment = &a
		}
		if assessment.Category == models.CategoryEligible || assessment.Category == models.CategoryEligibleWithAuspice {
			summary.EligibleGrants++
		}

		if due, ok := ParseDueDate(grant.DueDate); ok {
			days := due.Sub(now).Hours() / 24
			if days > 0 && days <= 7 {
				summary.UpcomingDeadlines++
			}
		}

		if added := grant.AddedAt(); !added.IsZero() && sameDay(added, now) {
			summary.NewGrantsToday++
		}
	}

	stored := s.store.Add(models.Notification{
		Type:    models.NotificationDailySummary,
		Urgency: models.UrgencyInfo,
		Title:   "Daily Grant Summary",
		Message: fmt.Sprintf("%d total grants, %d eligible, %d deadlines this week",
			summary.TotalGrants, summary.EligibleGrants, summary.UpcomingDeadlines),
		Metadata: map[string]any{
			"summary":   summary,
			"actionUrl": "/analytics",
			"icon":      "📊",
		},
	})
	metrics.NotificationsTotal.WithLabelValues(stored.Type).Inc()
	metrics.SweepsTotal.WithLabelValues("daily_summary", "ok").Inc()
	return &stored
}

// EmitTestNotification seeds a test entry and exercises the email hand-off so
// operators can verify the pipeline end to end.
func (s *Scheduler) EmitTestNotification(ctx context.Context) models.Notification {
	stored := s.store.Add(models.Notification{
		Type:    models.NotificationTest,
		Urgency: models.UrgencyInfo,
		Title:   "Notification System Test",
		Message: "This is a test notification to verify the system is working correctly.",
		Metadata: map[string]any{"icon": "🧪"},
	})
	metrics.NotificationsTotal.WithLabelValues(stored.Type).Inc()

	s.send(ctx, "Test Notification",
		"<h1>Test Email</h1><p>This is a test email notification.</p>",
		"Test Email: This is a test email notification.")
	return stored
}

func (s *Scheduler) send(ctx context.Context, subject, htmlBody, textBody string) {
	result, err := s.mailer.Send(ctx, s.cfg.NotificationEmail, subject, htmlBody, textBody)
	if err != nil || !result.Success {
		log.Printf("Email send failed for %q: err=%v result=%+v", subject, err, result)
		metrics.EmailsTotal.WithLabelValues("error").Inc()
		return
	}
	metrics.EmailsTotal.WithLabelValues("ok").Inc()
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
