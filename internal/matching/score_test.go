package matching

import (
	"testing"

	"github.com/manaiger/manaiger/internal/common"
)

func fitProfile() *common.CreatorProfile {
	return &common.CreatorProfile{
		UserId:    "1",
		Country:   "USA",
		Languages: []string{"english"},
		Platforms: []string{"youtube"},
		TopNiches: []string{"fitness"},
		DealTypes: []string{"sponsored_video"},
		MinRates:  map[string]float64{"youtube": 500},
		Currency:  "USD",
	}
}

func TestScorePerfectFit(t *testing.T) {
	c := &common.BrandCandidate{
		BrandName:     "IronPeak Nutrition",
		FitReason:     "Fitness supplement brand sponsoring workout channels",
		DealType:      "sponsored_video",
		EstimatedRate: 600,
		BrandCountry:  "United States",
	}
	if got := Score(fitProfile(), c); got != 100 {
		t.Errorf("expected a perfect 100, got %v", got)
	}
}

func TestScoreWorstFit(t *testing.T) {
	c := &common.BrandCandidate{
		BrandName:    "Acme",
		FitReason:    "generic consumer goods",
		BrandCountry: "japan",
	}
	// No overlap anywhere and no openness to international deals still
	// leaves the 5-point geo floor
	if got := Score(fitProfile(), c); got != 5 {
		t.Errorf("expected the 5-point floor, got %v", got)
	}
}

func TestScoreRegionAndRelatedNiche(t *testing.T) {
	p := fitProfile()
	c := &common.BrandCandidate{
		BrandName:     "MapleWell",
		FitReason:     "Health & wellness brand looking for active creators",
		DealType:      "integration",
		EstimatedRate: 500,
		BrandCountry:  "Canada",
	}
	// geo 25 (same region), niche 20 (wellness relates to fitness),
	// deal type 10 (integration compatible with sponsored_video),
	// language 10 (english, currency differs), rate 8 (meets minimum)
	if got := Score(p, c); got != 73 {
		t.Errorf("expected 73, got %v", got)
	}
	if got := Score(p, c); got < MinAcceptScore {
		t.Errorf("a solid regional fit should clear the accept threshold, got %v", got)
	}
}

func TestScoreNoMinimumRateIsNeutral(t *testing.T) {
	p := fitProfile()
	p.MinRates = nil

	c := &common.BrandCandidate{
		BrandName:    "FitFuel",
		FitReason:    "fitness drinks",
		BrandCountry: "usa",
	}
	// geo 35 + niche 25 + lang/currency 15 + neutral rate 8
	if got := Score(p, c); got != 83 {
		t.Errorf("expected 83 with the neutral rate score, got %v", got)
	}
}

func TestScoreBounds(t *testing.T) {
	p := fitProfile()
	for _, c := range []*common.BrandCandidate{
		{BrandName: "A"},
		{BrandName: "B", BrandCountry: "nowhere"},
		{BrandName: "Fitness Fitness Fitness", FitReason: "fitness fitness", BrandCountry: "usa", DealType: "sponsored_video", EstimatedRate: 10000},
	} {
		if got := Score(p, c); got < 0 || got > 100 {
			t.Errorf("score out of bounds for %s: %v", c.BrandName, got)
		}
	}
}
