package geo

import "testing"

func TestNorm(t *testing.T) {
	for in, want := range map[string]string{
		"USA":           "usa",
		"United States": "usa",
		" u.s. ":        "usa",
		"UK":            "united kingdom",
		"England":       "united kingdom",
		"Germany":       "germany",
		"Narnia":        "narnia",
	} {
		if got := Norm(in); got != want {
			t.Errorf("Norm(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSameCountryAndRegion(t *testing.T) {
	if !SameCountry("USA", "united states") {
		t.Error("aliases of the same country should match")
	}
	if SameCountry("", "") {
		t.Error("two empty countries must not count as a match")
	}
	if !SameRegion("usa", "Canada") {
		t.Error("usa and canada share a region")
	}
	if SameRegion("usa", "japan") {
		t.Error("usa and japan do not share a region")
	}
	if SameRegion("narnia", "atlantis") {
		t.Error("unknown countries must not share a region")
	}
}

func TestCurrencyAndLanguage(t *testing.T) {
	if got := Currency("United States"); got != "USD" {
		t.Errorf("expected USD, got %q", got)
	}
	if got := Currency("narnia"); got != "" {
		t.Errorf("unknown countries have no currency, got %q", got)
	}
	if !SpeaksLanguage("UK", "English") {
		t.Error("the uk speaks english")
	}
	if SpeaksLanguage("japan", "english") {
		t.Error("japan should not match english")
	}
}
