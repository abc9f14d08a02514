package matching

import (
	"errors"
	"testing"
	"time"

	"github.com/boltdb/bolt"

	"github.com/manaiger/manaiger/config"
	"github.com/manaiger/manaiger/internal/auth"
	"github.com/manaiger/manaiger/internal/common"
	"github.com/manaiger/manaiger/internal/subscriptions"
	"github.com/manaiger/manaiger/misc"
)

// stubSuggester replays canned batches per attempt; err entries fail the
// attempt instead.
type stubSuggester struct {
	batches [][]*common.BrandCandidate
	errs    []error
	calls   int
}

func (s *stubSuggester) Suggest(profile *common.CreatorProfile, niche string, count int, exclude []string) ([]*common.BrandCandidate, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i >= len(s.batches) {
		return nil, nil
	}
	return s.batches[i], nil
}

func testPipeline(t *testing.T, sg Suggester) (*Pipeline, *bolt.DB, *config.Config) {
	t.Helper()

	cfg := &config.Config{Sandbox: true}
	cfg.Bucket.Match = "match"

	db := misc.OpenDB(t.TempDir()+"/", "test")
	t.Cleanup(func() { db.Close() })

	if err := db.Update(func(tx *bolt.Tx) error {
		for _, b := range []string{"match", "index"} {
			if _, err := tx.CreateBucketIfNotExists([]byte(b)); err != nil {
				return err
			}
		}
		return misc.InitIndex(tx, "match", 1)
	}); err != nil {
		t.Fatal(err)
	}

	return New(db, cfg, sg), db, cfg
}

func seedMatch(t *testing.T, db *bolt.DB, cfg *config.Config, creatorId, brandName, month string) {
	t.Helper()
	if err := db.Update(func(tx *bolt.Tx) (err error) {
		m := &common.BrandMatch{
			CreatorId: creatorId,
			BrandName: brandName,
			Status:    common.MatchDraft,
			Created:   time.Now().Unix(),
			Month:     month,
		}
		if m.Id, err = misc.GetNextIndex(tx, cfg.Bucket.Match); err != nil {
			return
		}
		return misc.PutTxJson(tx, cfg.Bucket.Match, m.Id, m)
	}); err != nil {
		t.Fatal(err)
	}
}

func cand(name string, score float64) *common.BrandCandidate {
	return &common.BrandCandidate{BrandName: name, MatchScore: score, FitReason: name + " fits"}
}

func TestGenerateDedup(t *testing.T) {
	sg := &stubSuggester{batches: [][]*common.BrandCandidate{
		{cand("Nike", 90), cand("Nike Shoes", 85), cand("Adidas", 80), cand("nike", 75)},
	}}
	p, db, cfg := testPipeline(t, sg)

	principal := &auth.Principal{Id: "1", Plan: subscriptions.FREE}
	seedMatch(t, db, cfg, "1", "Nike", common.GetMonth())

	res, err := p.Generate(principal, nil, "sneakers", 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	// "Nike" collides with history, the second "nike" with itself;
	// "Nike Shoes" is a different brand and survives
	if res.DuplicatesFiltered != 2 {
		t.Errorf("expected 2 duplicates filtered, got %d", res.DuplicatesFiltered)
	}
	if len(res.Matches) != 2 {
		t.Fatalf("expected 2 new matches, got %d", len(res.Matches))
	}
	if res.Matches[0].BrandName != "Nike Shoes" || res.Matches[1].BrandName != "Adidas" {
		t.Errorf("unexpected matches, sorted by score: %s, %s", res.Matches[0].BrandName, res.Matches[1].BrandName)
	}
	for _, m := range res.Matches {
		if m.Status != common.MatchDraft {
			t.Errorf("new matches should start as drafts, got %s", m.Status)
		}
		if m.Month != common.GetMonth() {
			t.Errorf("match missing its quota month, got %q", m.Month)
		}
	}
}

func TestGenerateQuota(t *testing.T) {
	sg := &stubSuggester{batches: [][]*common.BrandCandidate{
		{cand("BrandA", 90), cand("BrandB", 85)},
	}}
	p, db, cfg := testPipeline(t, sg)

	principal := &auth.Principal{Id: "7", Plan: subscriptions.FREE}
	month := common.GetMonth()
	for _, name := range []string{"One", "Two", "Three"} {
		seedMatch(t, db, cfg, "7", name, month)
	}

	_, err := p.Generate(principal, nil, "tech", 2, nil)
	var qe *common.QuotaExceededError
	if !errors.As(err, &qe) {
		t.Fatalf("expected a quota error after 3 free-plan matches, got %v", err)
	}
	if qe.Limit != 3 || qe.Hint == "" {
		t.Errorf("quota error should carry the limit and an upgrade hint: %+v", qe)
	}

	// Last month's matches must not count against this month
	p2, db2, cfg2 := testPipeline(t, &stubSuggester{batches: [][]*common.BrandCandidate{{cand("Fresh", 90)}}})
	for _, name := range []string{"One", "Two", "Three"} {
		seedMatch(t, db2, cfg2, "7", name, "2006-01")
	}
	res, err := p2.Generate(principal, nil, "tech", 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Matches) != 1 {
		t.Errorf("expected 1 match, got %d", len(res.Matches))
	}
}

func TestGenerateVipUnlimited(t *testing.T) {
	sg := &stubSuggester{batches: [][]*common.BrandCandidate{
		{cand("BrandA", 90)},
	}}
	p, db, cfg := testPipeline(t, sg)

	principal := &auth.Principal{Id: "9", Plan: subscriptions.VIP}
	month := common.GetMonth()
	for _, name := range []string{"A", "B", "C", "D", "E", "F"} {
		seedMatch(t, db, cfg, "9", name, month)
	}

	if left, err := p.EnforceQuota(principal); err != nil || left != subscriptions.Unlimited {
		t.Fatalf("vip should never hit a quota, got %d, %v", left, err)
	}
	res, err := p.Generate(principal, nil, "tech", 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Matches) != 1 {
		t.Errorf("expected 1 match, got %d", len(res.Matches))
	}
}

func TestGenerateEmptyIsNotAnError(t *testing.T) {
	p, _, _ := testPipeline(t, &stubSuggester{})

	res, err := p.Generate(&auth.Principal{Id: "1"}, nil, "tech", 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Matches) != 0 {
		t.Errorf("expected no matches, got %d", len(res.Matches))
	}
	if res.Msg == "" {
		t.Error("an empty run should explain itself")
	}
}

func TestGenerateToleratesAttemptErrors(t *testing.T) {
	sg := &stubSuggester{
		errs: []error{errors.New("provider blew up"), nil},
		batches: [][]*common.BrandCandidate{
			nil,
			{cand("BrandA", 90), cand("BrandB", 85)},
		},
	}
	p, _, _ := testPipeline(t, sg)

	res, err := p.Generate(&auth.Principal{Id: "1"}, nil, "tech", 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Matches) != 2 {
		t.Fatalf("expected the second attempt to deliver, got %d matches", len(res.Matches))
	}
	if res.Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", res.Attempts)
	}
}

func TestGenerateScoreGateWithProfile(t *testing.T) {
	sg := &stubSuggester{batches: [][]*common.BrandCandidate{
		{
			&common.BrandCandidate{BrandName: "FitFuel", FitReason: "fitness supplements", BrandCountry: "usa", DealType: "sponsored_video", EstimatedRate: 600},
			&common.BrandCandidate{BrandName: "Acme", FitReason: "generic goods", BrandCountry: "japan"},
		},
	}}
	p, _, _ := testPipeline(t, sg)

	res, err := p.Generate(&auth.Principal{Id: "1"}, fitProfile(), "", 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Matches) != 1 || res.Matches[0].BrandName != "FitFuel" {
		t.Fatalf("only the scoring fit should survive, got %+v", res.Matches)
	}
	if res.BelowThreshold != 1 {
		t.Errorf("expected 1 candidate below threshold, got %d", res.BelowThreshold)
	}
	if res.Matches[0].Score < MinAcceptScore {
		t.Errorf("persisted match carries a sub-threshold score: %v", res.Matches[0].Score)
	}
}

func TestGenerateValidation(t *testing.T) {
	p, _, _ := testPipeline(t, &stubSuggester{})

	if _, err := p.Generate(&auth.Principal{Id: "1"}, nil, "tech", 0, nil); err == nil {
		t.Error("a non-positive count should be rejected")
	}
	if _, err := p.Generate(&auth.Principal{Id: "1"}, nil, "", 3, nil); err == nil {
		t.Error("niche-less, profile-less generation should be rejected")
	}
}
