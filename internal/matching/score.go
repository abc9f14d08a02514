package matching

import (
	"strings"

	"github.com/manaiger/manaiger/internal/common"
	"github.com/manaiger/manaiger/internal/geo"
)

// Minimum composite score a profile-aware candidate needs to be kept.
const MinAcceptScore = 70

// Score rates a candidate against a creator profile on a 0-100 scale:
// geo 35, niche 25, deal type 15, language/currency 15, rate fit 10.
func Score(p *common.CreatorProfile, c *common.BrandCandidate) float64 {
	s := geoScore(p, c) +
		nicheScore(p, c) +
		dealTypeScore(p, c) +
		langCurrencyScore(p, c) +
		rateScore(p, c)

	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func geoScore(p *common.CreatorProfile, c *common.BrandCandidate) float64 {
	if geo.SameCountry(c.BrandCountry, p.Country) {
		return 35
	}
	if geo.SameRegion(c.BrandCountry, p.Country) {
		return 25
	}
	if p.AcceptsInternational {
		return 15
	}
	return 5
}

// The suggestion provider does not tag candidates with a niche, so niche
// fit is read off the fit rationale text.
func nicheScore(p *common.CreatorProfile, c *common.BrandCandidate) float64 {
	text := strings.ToLower(c.FitReason + " " + c.BrandName)

	for _, niche := range p.TopNiches {
		if mentions(text, niche) {
			return 25
		}
	}

	for _, cat := range p.BrandCategories {
		if mentions(text, cat) {
			return 20
		}
	}
	for _, niche := range p.TopNiches {
		for _, rel := range common.RELATED_NICHES[strings.ToLower(niche)] {
			if mentions(text, rel) {
				return 20
			}
		}
	}

	// Weak textual relation: any meaningful word of a top niche shows up
	for _, niche := range p.TopNiches {
		for _, word := range strings.FieldsFunc(strings.ToLower(niche), func(r rune) bool {
			return r == ' ' || r == '&' || r == '/'
		}) {
			if len(word) > 3 && strings.Contains(text, word) {
				return 10
			}
		}
	}

	return 0
}

func mentions(text, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	return term != "" && strings.Contains(text, term)
}

func dealTypeScore(p *common.CreatorProfile, c *common.BrandCandidate) float64 {
	if c.DealType == "" {
		return 0
	}
	dt := strings.ToLower(c.DealType)
	for _, pref := range p.DealTypes {
		if strings.EqualFold(pref, dt) {
			return 15
		}
	}
	for _, pref := range p.DealTypes {
		if common.AreCompatibleDealTypes(strings.ToLower(pref), dt) {
			return 10
		}
	}
	return 0
}

func langCurrencyScore(p *common.CreatorProfile, c *common.BrandCandidate) float64 {
	langMatch := geo.SpeaksLanguage(c.BrandCountry, p.PrimaryLanguage())
	currencyMatch := p.Currency != "" && geo.Currency(c.BrandCountry) == strings.ToUpper(p.Currency)

	switch {
	case langMatch && currencyMatch:
		return 15
	case langMatch || currencyMatch:
		return 10
	case p.AcceptsInternational:
		return 5
	}
	return 0
}

func rateScore(p *common.CreatorProfile, c *common.BrandCandidate) float64 {
	min := p.MinRateFor(p.PrimaryPlatform())
	if min == 0 {
		// Creator set no minimum; neutral
		return 8
	}
	rate := c.EstimatedRate
	switch {
	case rate >= min*1.2:
		return 10
	case rate >= min:
		return 8
	case rate >= min*0.8:
		// Negotiable range
		return 5
	}
	return 0
}
