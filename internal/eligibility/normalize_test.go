package eligibility

import "testing"

func TestNormalizeText_PunctuationBecomesSpace(t *testing.T) {
	got := NormalizeText("Arts/Culture: Film & Screen!")
	expected := "arts culture  film   screen "
	if got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestHTMLToText_StripsMarkup(t *testing.T) {
	got := HTMLToText("<p>Documentary  <strong>grants</strong></p>\n<p>for screen</p>")
	if got != "Documentary grants for screen" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestLoadProfile_EmbeddedDefault(t *testing.T) {
	profile, err := LoadProfile("")
	if err != nil {
		t.Fatalf("embedded profile failed to load: %v", err)
	}
	if len(profile.RequiredTags) == 0 {
		t.Fatal("expected required tags in embedded profile")
	}
	if profile.AmountRanges.Min <= 0 || profile.AmountRanges.Max <= profile.AmountRanges.Min {
		t.Fatalf("implausible amount range: %+v", profile.AmountRanges)
	}
}
