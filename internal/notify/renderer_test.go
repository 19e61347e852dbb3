package notify

import (
	"strings"
	"testing"

	"github.com/shadowgoose/grantpulse/internal/models"
)

func TestRenderDeadlineEmail_SanitizesDescription(t *testing.T) {
	grant := models.GrantRecord{
		Name:         "Doc Fund",
		Funder:       "Screen Australia",
		AmountString: "$50,000",
		DueDate:      "2025-03-01",
		Description:  `<p>Legit copy</p><script>alert("x")</script>`,
	}

	subject, htmlBody, textBody := RenderDeadlineEmail(grant, 1, "http://localhost:4200")

	if subject != "Grant Deadline Alert: Doc Fund" {
		t.Fatalf("unexpected subject %q", subject)
	}
	if strings.Contains(htmlBody, "<script>") {
		t.Fatal("expected scripts stripped from email HTML")
	}
	if !strings.Contains(htmlBody, "Legit copy") {
		t.Fatal("expected sanitized description kept")
	}
	if !strings.Contains(htmlBody, "TOMORROW") {
		t.Fatal("expected 1-day urgency text")
	}
	if !strings.Contains(textBody, "To be assessed") {
		t.Fatal("expected unassessed grants labelled in text body")
	}
}

func TestRenderNewGrantsEmail_BatchesAllGrants(t *testing.T) {
	grants := []models.GrantRecord{
		{Name: "Grant One", Funder: "F1", AmountString: "$10,000", DueDate: "2025-04-01"},
		{Name: "Grant Two", Funder: "F2", AmountString: "$20,000"},
	}

	subject, htmlBody, textBody := RenderNewGrantsEmail(grants, "http://localhost:4200")

	if subject != "New Grant Opportunities Available (2)" {
		t.Fatalf("unexpected subject %q", subject)
	}
	for _, name := range []string{"Grant One", "Grant Two"} {
		if !strings.Contains(htmlBody, name) || !strings.Contains(textBody, name) {
			t.Fatalf("expected %s in both bodies", name)
		}
	}
}
