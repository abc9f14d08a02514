package common

// Shipping preferences for physical products.
const (
	ShipDigitalOnly   = "DIGITAL_ONLY"
	ShipDomestic      = "DOMESTIC"
	ShipInternational = "INTERNATIONAL"
)

// CreatorProfile is filled in during onboarding and drives brand matching.
// It is only ever superseded by an update, never deleted.
type CreatorProfile struct {
	UserId string `json:"userId"`

	Country  string `json:"country,omitempty"`
	Timezone string `json:"timezone,omitempty"`

	// Ordered by fluency; first entry is the content language
	Languages []string `json:"languages,omitempty"`

	Platforms []string `json:"platforms,omitempty"`

	// Channel handles keyed by platform, e.g. "youtube" -> channel id
	Handles map[string]string `json:"handles,omitempty"`

	// Keyed by platform, e.g. "YouTube" -> "10k-50k"
	AudienceSize map[string]string `json:"audienceSize,omitempty"`
	AvgViews     map[string]string `json:"avgViews,omitempty"`

	// 1 to 3 niches ordered by priority
	TopNiches []string `json:"topNiches,omitempty"`

	BrandCategories []string `json:"brandCategories,omitempty"`
	DealTypes       []string `json:"dealTypes,omitempty"`

	// Keyed by platform; zero value means the creator set no minimum
	MinRates map[string]float64 `json:"minRates,omitempty"`

	Currency string `json:"currency,omitempty"`

	AcceptsInternational bool   `json:"acceptsInternational,omitempty"`
	Shipping             string `json:"shipping,omitempty"`

	Updated int64 `json:"updated,omitempty"`
}

func (p *CreatorProfile) Check() error {
	if len(p.TopNiches) < 1 || len(p.TopNiches) > 3 {
		return ErrValidation("please pick 1 to 3 top niches")
	}
	switch p.Shipping {
	case "", ShipDigitalOnly, ShipDomestic, ShipInternational:
	default:
		return ErrValidation("invalid shipping preference %q", p.Shipping)
	}
	return nil
}

// The creator's minimum rate for the given platform, falling back to the
// first platform that has one. Zero means no minimum was set.
func (p *CreatorProfile) MinRateFor(platform string) float64 {
	if r, ok := p.MinRates[platform]; ok && r > 0 {
		return r
	}
	for _, pl := range p.Platforms {
		if r, ok := p.MinRates[pl]; ok && r > 0 {
			return r
		}
	}
	return 0
}

func (p *CreatorProfile) PrimaryPlatform() string {
	if len(p.Platforms) > 0 {
		return p.Platforms[0]
	}
	return ""
}

func (p *CreatorProfile) PrimaryLanguage() string {
	if len(p.Languages) > 0 {
		return p.Languages[0]
	}
	return ""
}
