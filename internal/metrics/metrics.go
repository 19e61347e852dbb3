// Package metrics exposes the Prometheus instrumentation shared by the
// scheduler and the HTTP layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SweepsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grantpulse_sweeps_total",
		Help: "Scheduler sweeps by task and result.",
	}, []string{"task", "result"})

	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grantpulse_notifications_total",
		Help: "Notifications recorded in the in-memory store, by type.",
	}, []string{"type"})

	EmailsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grantpulse_emails_total",
		Help: "Email hand-offs to the mailer, by result.",
	}, []string{"result"})

	AssessmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grantpulse_assessments_total",
		Help: "Eligibility assessments by resulting category.",
	}, []string{"category"})
)
