package discovery

import (
	"testing"
	"time"
)

func TestDeadlineCandidatesFromText(t *testing.T) {
	text := `Applications open 1 February 2025 and close on 15 March 2025.
	Late submissions accepted until 2025-03-22. Assessment notified March 15, 2025.`

	dates := DeadlineCandidatesFromText(text)
	if len(dates) != 3 {
		t.Fatalf("expected 3 unique dates, got %d: %v", len(dates), dates)
	}
	if !dates[0].Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected earliest date first, got %s", dates[0])
	}
	if !dates[2].Equal(time.Date(2025, 3, 22, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected latest date last, got %s", dates[2])
	}
}

func TestDeadlineCandidatesFromText_NoDates(t *testing.T) {
	if dates := DeadlineCandidatesFromText("funding guidelines without a timeline"); dates != nil {
		t.Fatalf("expected nil, got %v", dates)
	}
}

func TestParseSnippetDate(t *testing.T) {
	cases := map[string]time.Time{
		"15/03/2025":     time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		"2 Jan 2026":     time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		"January 2 2026": time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	for token, expected := range cases {
		got, ok := parseSnippetDate(token)
		if !ok {
			t.Fatalf("expected %q to parse", token)
		}
		if !got.Equal(expected) {
			t.Fatalf("%q: expected %s, got %s", token, expected, got)
		}
	}

	if _, ok := parseSnippetDate("sometime soon"); ok {
		t.Fatal("expected non-date token to fail")
	}
}

func TestExtractPDFText_RejectsGarbage(t *testing.T) {
	if _, err := extractPDFText([]byte("not a pdf")); err == nil {
		t.Fatal("expected an error for non-PDF content")
	}
}
