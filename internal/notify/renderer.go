package notify

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/shadowgoose/grantpulse/internal/models"
)

// emailPolicy strips scripts, iframes and unsafe attributes from grant
// descriptions before they are embedded in email HTML. Descriptions can
// originate from scraped pages, so they are treated as untrusted UGC.
var emailPolicy = bluemonday.UGCPolicy()

// RenderDeadlineEmail builds subject, HTML body and text body for a deadline
// alert. The content mirrors the dashboard's alert email: urgency banner,
// grant details block, dashboard link.
func RenderDeadlineEmail(grant models.GrantRecord, daysUntil int, dashboardURL string) (subject, htmlBody, textBody string) {
	subject = "Grant Deadline Alert: " + grant.Name

	urgencyText := fmt.Sprintf("%d DAYS", daysUntil)
	accent := "#F59E0B"
	if daysUntil == 1 {
		urgencyText = "TOMORROW"
		accent = "#EF4444"
	}

	category := "To be assessed"
	if grant.Assessment != nil {
		category = grant.Assessment.Category
	}

	var html strings.Builder
	html.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">`)
	html.WriteString(`<h1 style="color: #1D4ED8;">⏰ Grant Deadline Alert</h1>`)
	fmt.Fprintf(&html, `<div style="padding: 20px; border-left: 4px solid %s;">`, accent)
	fmt.Fprintf(&html, `<h2>%s</h2>`, emailPolicy.Sanitize(grant.Name))
	fmt.Fprintf(&html, `<p><strong style="color: %s;">Deadline: %s</strong></p>`, accent, urgencyText)
	fmt.Fprintf(&html, `<p>Due Date: %s</p>`, grant.DueDate)
	html.WriteString(`</div><div style="padding: 20px;">`)
	fmt.Fprintf(&html, `<p><strong>Funder:</strong> %s</p>`, emailPolicy.Sanitize(grant.Funder))
	fmt.Fprintf(&html, `<p><strong>Amount:</strong> %s</p>`, emailPolicy.Sanitize(grant.AmountString))
	fmt.Fprintf(&html, `<p><strong>Eligibility:</strong> %s</p>`, category)
	if grant.Description != "" {
		fmt.Fprintf(&html, `<p style="color: #6b7280;">%s</p>`, emailPolicy.Sanitize(grant.Description))
	}
	html.WriteString(`</div>`)
	fmt.Fprintf(&html, `<p><a href="%s">View Grant Details</a></p>`, dashboardURL)
	html.WriteString(`<p style="color: #64748b; font-size: 12px;">This is an automated notification from the Shadow Goose grant dashboard.</p></div>`)
	htmlBody = html.String()

	textBody = fmt.Sprintf(`Grant Deadline Alert: %s

Deadline: %s
Due Date: %s

Grant Details:
- Funder: %s
- Amount: %s
- Eligibility: %s

Visit %s to view full details.

This is an automated notification from the Shadow Goose grant dashboard.
`, grant.Name, urgencyText, grant.DueDate, grant.Funder, grant.AmountString, category, dashboardURL)

	return subject, htmlBody, textBody
}

// RenderNewGrantsEmail builds one batched digest covering every grant found
// by a new-grant sweep.
func RenderNewGrantsEmail(grants []models.GrantRecord, dashboardURL string) (subject, htmlBody, textBody string) {
	plural := ""
	if len(grants) > 1 {
		plural = "s"
	}
	subject = fmt.Sprintf("New Grant Opportunities Available (%d)", len(grants))

	var html strings.Builder
	html.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">`)
	fmt.Fprintf(&html, `<h1 style="color: #059669;">🆕 New Grant Opportunities</h1><p>%d new grant%s available</p>`, len(grants), plural)
	for _, grant := range grants {
		html.WriteString(`<div style="padding: 15px; border: 1px solid #e5e7eb; margin-bottom: 15px;">`)
		fmt.Fprintf(&html, `<h3>%s</h3>`, emailPolicy.Sanitize(grant.Name))
		fmt.Fprintf(&html, `<p><strong>Funder:</strong> %s</p>`, emailPolicy.Sanitize(grant.Funder))
		fmt.Fprintf(&html, `<p><strong>Amount:</strong> %s</p>`, emailPolicy.Sanitize(grant.AmountString))
		if grant.DueDate != "" {
			fmt.Fprintf(&html, `<p style="color: #ef4444;">Deadline: %s</p>`, grant.DueDate)
		}
		html.WriteString(`</div>`)
	}
	fmt.Fprintf(&html, `<p><a href="%s">View All Grants</a></p></div>`, dashboardURL)
	htmlBody = html.String()

	var text strings.Builder
	fmt.Fprintf(&text, "New Grant Opportunities Available (%d)\n", len(grants))
	for _, grant := range grants {
		fmt.Fprintf(&text, "\n%s\nFunder: %s\nAmount: %s\n", grant.Name, grant.Funder, grant.AmountString)
		if grant.DueDate != "" {
			fmt.Fprintf(&text, "Deadline: %s\n", grant.DueDate)
		}
		text.WriteString("---\n")
	}
	fmt.Fprintf(&text, "\nVisit %s to view all grants.\n", dashboardURL)
	textBody = text.String()

	return subject, htmlBody, textBody
}
