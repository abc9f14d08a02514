package openai

import "testing"

func TestParseCandidatesClean(t *testing.T) {
	out, err := ParseCandidates(`[{"brandName":"Acme","matchScore":80}]`)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].BrandName != "Acme" {
		t.Errorf("unexpected result %+v", out)
	}
}

func TestParseCandidatesFenced(t *testing.T) {
	raw := "Sure! Here are the brands:\n```json\n[{\"brandName\":\"Acme\"},{\"brandName\":\"Globex\"}]\n```\nLet me know if you need more."
	out, err := ParseCandidates(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[1].BrandName != "Globex" {
		t.Errorf("unexpected result %+v", out)
	}
}

func TestParseCandidatesEnvelope(t *testing.T) {
	out, err := ParseCandidates(`{"matches":[{"brandName":"Acme"}]}`)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].BrandName != "Acme" {
		t.Errorf("unexpected result %+v", out)
	}
}

func TestParseCandidatesSingleObject(t *testing.T) {
	out, err := ParseCandidates(`The best fit is {"brandName":"Acme","fitReason":"gaming"} overall.`)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].FitReason != "gaming" {
		t.Errorf("unexpected result %+v", out)
	}
}

func TestParseCandidatesGarbage(t *testing.T) {
	for _, raw := range []string{"", "no json here", "[]", "```\n\n```"} {
		if _, err := ParseCandidates(raw); err == nil {
			t.Errorf("expected an error for %q", raw)
		}
	}
}
