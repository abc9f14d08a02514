package matching

import (
	"encoding/json"
	"log"
	"sort"
	"time"

	"github.com/boltdb/bolt"

	"github.com/manaiger/manaiger/config"
	"github.com/manaiger/manaiger/internal/auth"
	"github.com/manaiger/manaiger/internal/common"
	"github.com/manaiger/manaiger/internal/subscriptions"
	"github.com/manaiger/manaiger/misc"
)

const (
	// Attempt/batch tuning. Each attempt over-asks to absorb the expected
	// duplicate and below-threshold rate.
	maxAttempts   = 4
	capPerRequest = 12

	// Stop once a batch keeps fewer than 20% of what came back (the
	// provider is out of unique brands), or once 80% of the ask is covered.
	minSurvivalRate = 0.2
	coverageCutoff  = 0.8
)

// Suggester is the external suggestion collaborator. Either profile or
// niche is set, never both.
type Suggester interface {
	Suggest(profile *common.CreatorProfile, niche string, count int, exclude []string) ([]*common.BrandCandidate, error)
}

type Pipeline struct {
	db  *bolt.DB
	cfg *config.Config
	sg  Suggester
}

func New(db *bolt.DB, cfg *config.Config, sg Suggester) *Pipeline {
	return &Pipeline{
		db:  db,
		cfg: cfg,
		sg:  sg,
	}
}

type Result struct {
	Matches []*common.BrandMatch `json:"matches"`

	Msg string `json:"msg,omitempty"`

	DuplicatesFiltered int `json:"duplicatesFiltered"`
	BelowThreshold     int `json:"belowThreshold,omitempty"`
	Attempts           int `json:"attempts"`
}

func planFor(p *auth.Principal) subscriptions.Plan {
	if plan := subscriptions.GetPlan(p.Plan); plan != nil {
		return plan
	}
	// Unknown tiers get free-plan treatment rather than a hard failure
	return subscriptions.GetPlan(subscriptions.FREE)
}

func (p *Pipeline) countMonthTx(tx *bolt.Tx, creatorId, month string) (n int) {
	misc.GetBucket(tx, p.cfg.Bucket.Match).ForEach(func(k, v []byte) error {
		var m common.BrandMatch
		if json.Unmarshal(v, &m) == nil && m.CreatorId == creatorId && m.Month == month {
			n++
		}
		return nil
	})
	return
}

// EnforceQuota returns the creator's remaining match slots for the current
// calendar month, or subscriptions.Unlimited for VIP.
func (p *Pipeline) EnforceQuota(principal *auth.Principal) (int, error) {
	plan := planFor(principal)
	limit := plan.MonthlyMatches()
	if limit == subscriptions.Unlimited {
		return subscriptions.Unlimited, nil
	}

	var used int
	p.db.View(func(tx *bolt.Tx) error {
		used = p.countMonthTx(tx, principal.Id, common.GetMonth())
		return nil
	})

	if used >= limit {
		return 0, &common.QuotaExceededError{Plan: plan.Name(), Limit: limit, Hint: plan.UpgradeHint()}
	}
	return limit - used, nil
}

// Generate runs the suggestion loop for the principal and persists up to
// desired new, deduplicated matches. With a profile the composite score
// gates acceptance; on the bare-niche path the provider's own score is
// trusted. Exhausting every attempt with nothing to show is a normal
// outcome, not an error.
func (p *Pipeline) Generate(principal *auth.Principal, profile *common.CreatorProfile, niche string, desired int, hints []string) (*Result, error) {
	if desired <= 0 {
		return nil, common.ErrValidation("count must be positive")
	}
	if profile == nil && niche == "" {
		return nil, common.ErrValidation("either a creator profile or a niche is required")
	}

	if _, err := p.EnforceQuota(principal); err != nil {
		return nil, err
	}

	// Exclusion set: every brand name this creator has ever been matched
	// with, plus caller hints. Survivors join it immediately so
	// within-run duplicates across attempts are caught too.
	excluded := make(map[string]struct{})
	p.db.View(func(tx *bolt.Tx) error {
		return misc.GetBucket(tx, p.cfg.Bucket.Match).ForEach(func(k, v []byte) error {
			var m common.BrandMatch
			if json.Unmarshal(v, &m) == nil && m.CreatorId == principal.Id {
				excluded[m.Key()] = struct{}{}
			}
			return nil
		})
	})
	for _, h := range misc.LowerSlice(hints) {
		excluded[h] = struct{}{}
	}

	res := &Result{}
	var accepted []*common.BrandCandidate

	for attempt := 0; attempt < maxAttempts && len(accepted) < desired; attempt++ {
		res.Attempts = attempt + 1

		ask := (desired - len(accepted)) * 2
		if ask > capPerRequest {
			ask = capPerRequest
		}

		cands, err := p.sg.Suggest(profile, niche, ask, excludeList(excluded))
		if err != nil {
			// Per-attempt failures are tolerated; the loop moves on
			log.Println("suggestion attempt failed:", err)
			continue
		}
		if len(cands) == 0 {
			break
		}

		survived := 0
		for _, cand := range cands {
			key := cand.Key()
			if _, dup := excluded[key]; dup {
				res.DuplicatesFiltered++
				continue
			}
			excluded[key] = struct{}{}

			if profile != nil {
				score := Score(profile, cand)
				if score < MinAcceptScore {
					res.BelowThreshold++
					continue
				}
				cand.MatchScore = score
			}

			accepted = append(accepted, cand)
			survived++
		}

		if len(accepted) >= desired {
			break
		}
		if float64(survived)/float64(len(cands)) < minSurvivalRate {
			break
		}
		if float64(len(accepted)) >= coverageCutoff*float64(desired) {
			break
		}
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].MatchScore > accepted[j].MatchScore
	})
	if len(accepted) > desired {
		accepted = accepted[:desired]
	}

	if len(accepted) == 0 {
		res.Msg = "No new unique brand matches were found this time. You have likely seen our current suggestions for your niches; try again soon."
		p.logEvent(principal, profile, niche, desired, res, 0)
		return res, nil
	}

	// Persist inside one transaction, re-checking the quota there so two
	// concurrent requests from the same creator cannot both slip past the
	// read-only check above.
	if err := p.db.Update(func(tx *bolt.Tx) error {
		plan := planFor(principal)
		if limit := plan.MonthlyMatches(); limit != subscriptions.Unlimited {
			remaining := limit - p.countMonthTx(tx, principal.Id, common.GetMonth())
			if remaining <= 0 {
				return &common.QuotaExceededError{Plan: plan.Name(), Limit: limit, Hint: plan.UpgradeHint()}
			}
			if len(accepted) > remaining {
				accepted = accepted[:remaining]
			}
		}

		now := time.Now().Unix()
		for _, cand := range accepted {
			id, err := misc.GetNextIndex(tx, p.cfg.Bucket.Match)
			if err != nil {
				return err
			}
			m := &common.BrandMatch{
				Id:            id,
				CreatorId:     principal.Id,
				BrandName:     cand.BrandName,
				FitReason:     cand.FitReason,
				OutreachDraft: cand.OutreachDraft,
				Status:        common.MatchDraft,
				Score:         cand.MatchScore,
				DealType:      cand.DealType,
				EstimatedRate: cand.EstimatedRate,
				BrandCountry:  cand.BrandCountry,
				NeedsShipping: cand.NeedsShipping,
				BrandWebsite:  cand.BrandWebsite,
				BrandEmail:    cand.BrandEmail,
				Created:       now,
				Month:         common.GetMonth(),
			}
			if err = misc.PutTxJson(tx, p.cfg.Bucket.Match, m.Id, m); err != nil {
				return err
			}
			res.Matches = append(res.Matches, m)
		}
		return nil
	}); err != nil {
		res.Matches = nil
		return nil, err
	}

	p.logEvent(principal, profile, niche, desired, res, len(res.Matches))
	return res, nil
}

func (p *Pipeline) logEvent(principal *auth.Principal, profile *common.CreatorProfile, niche string, desired int, res *Result, actual int) {
	if p.cfg.Loggers == nil {
		return
	}
	niches := []string{niche}
	if profile != nil {
		niches = profile.TopNiches
	}
	if err := p.cfg.Loggers.Log("brand_match.generated", map[string]interface{}{
		"creatorId":          principal.Id,
		"niches":             niches,
		"target":             desired,
		"actual":             actual,
		"duplicatesFiltered": res.DuplicatesFiltered,
		"belowThreshold":     res.BelowThreshold,
		"attempts":           res.Attempts,
	}); err != nil {
		log.Println("Failed to log brand match generation event!", principal.Id)
	}
}

func excludeList(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
