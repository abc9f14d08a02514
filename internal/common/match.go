package common

import "strings"

// BrandMatch statuses; matches only ever move forward through these and
// become immutable once completed.
const (
	MatchDraft      = "draft"
	MatchSent       = "sent"
	MatchContacted  = "contacted"
	MatchInterested = "interested"
	MatchAccepted   = "accepted"
	MatchRejected   = "rejected"
	MatchCompleted  = "completed"
)

var matchOrder = map[string]int{
	MatchDraft:      0,
	MatchSent:       1,
	MatchContacted:  2,
	MatchInterested: 3,
	MatchAccepted:   4,
	MatchRejected:   4,
	MatchCompleted:  5,
}

func IsValidMatchStatus(st string) bool {
	_, ok := matchOrder[st]
	return ok
}

// Status changes may only move forward (same rank counts as a no-op for
// the accepted/rejected fork).
func CanAdvanceMatch(from, to string) bool {
	a, ok := matchOrder[from]
	if !ok {
		return false
	}
	b, ok := matchOrder[to]
	if !ok {
		return false
	}
	if from == MatchCompleted {
		return false
	}
	return b > a || (b == a && from != to)
}

// BrandMatch is a candidate or accepted brand-creator pairing produced by
// the matching pipeline (or entered by hand).
type BrandMatch struct {
	Id        string `json:"id"`
	CreatorId string `json:"creatorId"`
	BrandId   string `json:"brandId,omitempty"`

	// Free text; may not correspond to a Brand record yet
	BrandName string `json:"brandName"`

	FitReason     string `json:"fitReason,omitempty"`
	OutreachDraft string `json:"outreachDraft,omitempty"`

	Status string  `json:"status"`
	Score  float64 `json:"score,omitempty"`

	DealType      string  `json:"dealType,omitempty"`
	EstimatedRate float64 `json:"estimatedRate,omitempty"`

	BrandCountry  string `json:"brandCountry,omitempty"`
	NeedsShipping bool   `json:"needsShipping,omitempty"`
	BrandWebsite  string `json:"brandWebsite,omitempty"`
	BrandEmail    string `json:"brandEmail,omitempty"`

	Created int64 `json:"created,omitempty"`
	// Calendar month the match was created in ("2006-01"), used for quotas
	Month string `json:"month,omitempty"`
}

func (m *BrandMatch) Key() string {
	return strings.ToLower(strings.TrimSpace(m.BrandName))
}

// BrandCandidate is the strict schema accepted from the suggestion
// provider; anything that fails Sanitize is dropped at the boundary.
type BrandCandidate struct {
	BrandName     string  `json:"brandName"`
	FitReason     string  `json:"fitReason,omitempty"`
	OutreachDraft string  `json:"outreachDraft,omitempty"`
	MatchScore    float64 `json:"matchScore,omitempty"`
	DealType      string  `json:"dealType,omitempty"`
	EstimatedRate float64 `json:"estimatedRate,omitempty"`
	BrandCountry  string  `json:"brandCountry,omitempty"`
	NeedsShipping bool    `json:"requiresShipping,omitempty"`
	BrandWebsite  string  `json:"brandWebsite,omitempty"`
	BrandEmail    string  `json:"brandEmail,omitempty"`
}

// Sanitize validates and coerces a raw candidate. Returns false when the
// entry is unusable.
func (c *BrandCandidate) Sanitize() bool {
	c.BrandName = strings.TrimSpace(c.BrandName)
	if c.BrandName == "" {
		return false
	}
	if c.MatchScore < 0 {
		c.MatchScore = 0
	} else if c.MatchScore > 100 {
		c.MatchScore = 100
	}
	if c.EstimatedRate < 0 {
		c.EstimatedRate = 0
	}
	c.BrandCountry = strings.TrimSpace(c.BrandCountry)
	return true
}

func (c *BrandCandidate) Key() string {
	return strings.ToLower(strings.TrimSpace(c.BrandName))
}
