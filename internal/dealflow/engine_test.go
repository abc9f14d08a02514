package dealflow

import (
	"errors"
	"testing"

	"github.com/boltdb/bolt"

	"github.com/manaiger/manaiger/config"
	"github.com/manaiger/manaiger/internal/auth"
	"github.com/manaiger/manaiger/internal/common"
	"github.com/manaiger/manaiger/misc"
)

var (
	creator = &auth.Principal{Id: "1", Name: "Casey Creator", Plan: "free"}
	rando   = &auth.Principal{Id: "2", Name: "Someone Else"}
)

func testEngine(t *testing.T) *Engine {
	t.Helper()

	cfg := &config.Config{Sandbox: true}
	cfg.Bucket.Deal = "deal"
	cfg.Bucket.DealActivity = "dealActivity"
	cfg.Bucket.Brand = "brand"
	cfg.Bucket.Conversation = "conversation"

	db := misc.OpenDB(t.TempDir()+"/", "test")
	t.Cleanup(func() { db.Close() })

	if err := db.Update(func(tx *bolt.Tx) error {
		for _, b := range []string{"deal", "dealActivity", "brand", "conversation", "index"} {
			if _, err := tx.CreateBucketIfNotExists([]byte(b)); err != nil {
				return err
			}
			if b != "index" {
				if err := misc.InitIndex(tx, b, 1); err != nil {
					return err
				}
			}
		}
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	return New(db, cfg)
}

func testTerms() *common.TermsSnapshot {
	return &common.TermsSnapshot{
		Price:        common.Price{Amount: 1500, Currency: "USD"},
		UsageRights:  "organic only, 90 days",
		Deliverables: []*common.Deliverable{{Platform: "youtube", Count: 1, Description: "60s integration"}},
	}
}

func TestDealHappyPath(t *testing.T) {
	e := testEngine(t)

	view, err := e.Create(creator, &CreateRequest{Title: "Holiday push", BrandName: "GlowCo"})
	if err != nil {
		t.Fatal(err)
	}
	if view.Status != common.DealProspect {
		t.Fatalf("new deals start in PROSPECT, got %s", view.Status)
	}
	id := view.Id

	if _, err = e.Transition(creator, id, common.DealOutreachSent, ""); err != nil {
		t.Fatal(err)
	}
	if _, err = e.MarkNegotiation(creator, id); err != nil {
		t.Fatal(err)
	}

	locked, err := e.LockAgreement(creator, id, testTerms())
	if err != nil {
		t.Fatal(err)
	}
	if locked.Status != common.DealAgreementLocked {
		t.Errorf("expected AGREEMENT_LOCKED, got %s", locked.Status)
	}
	if locked.Terms == nil || locked.Terms.Version != 1 {
		t.Errorf("first lock should snapshot terms at version 1, got %+v", locked.Terms)
	}
	if locked.AgreedAmount != 1500 {
		t.Errorf("agreed amount should come from the terms, got %v", locked.AgreedAmount)
	}
	if locked.Next != "create-invoice" {
		t.Errorf("a locked deal should point at invoicing, got %q", locked.Next)
	}

	d, err := e.MarkInvoiceSent(creator, id, "42")
	if err != nil {
		t.Fatal(err)
	}
	if d.Status != common.DealInvoiced || d.InvoiceId != "42" {
		t.Errorf("expected INVOICED with invoice 42, got %s/%s", d.Status, d.InvoiceId)
	}

	if d, err = e.MarkInvoicePaid(creator, id); err != nil {
		t.Fatal(err)
	}
	if d.Status != common.DealPaid || d.PaidAt == 0 || d.Closed == 0 {
		t.Errorf("PAID should stamp and close the deal: %+v", d)
	}

	log, err := e.ListActivity(creator, id)
	if err != nil {
		t.Fatal(err)
	}
	// created, 2 status changes, lock, invoiced, paid status change, payment
	if len(log) != 7 {
		t.Errorf("expected 7 activity entries, got %d", len(log))
	}
	// Newest first
	if log[0].Type != common.ActivityPaymentReceived {
		t.Errorf("expected the payment entry first, got %s", log[0].Type)
	}
	if log[len(log)-1].Type != common.ActivityDealCreated {
		t.Errorf("expected the creation entry last, got %s", log[len(log)-1].Type)
	}
}

func TestInvalidTransitionLeavesDealUntouched(t *testing.T) {
	e := testEngine(t)

	view, err := e.Create(creator, &CreateRequest{Title: "Skipping ahead"})
	if err != nil {
		t.Fatal(err)
	}

	_, err = e.Transition(creator, view.Id, common.DealPaid, "")
	var it *common.InvalidTransitionError
	if !errors.As(err, &it) {
		t.Fatalf("expected an invalid transition error, got %v", err)
	}
	if len(it.Allowed) == 0 {
		t.Error("the error should list the legal next states")
	}

	got, err := e.Get(creator, view.Id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != common.DealProspect {
		t.Errorf("a failed transition must not move the deal, got %s", got.Status)
	}
	log, _ := e.ListActivity(creator, view.Id)
	if len(log) != 1 {
		t.Errorf("a failed transition must not log activity, got %d entries", len(log))
	}
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	e := testEngine(t)

	view, _ := e.Create(creator, &CreateRequest{Title: "Typo"})
	_, err := e.Transition(creator, view.Id, "SHIPPED", "")
	var ve *common.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected a validation error for an unknown status, got %v", err)
	}
}

func TestDeclineRecordsReason(t *testing.T) {
	e := testEngine(t)

	view, _ := e.Create(creator, &CreateRequest{Title: "Not meant to be"})
	d, err := e.Transition(creator, view.Id, common.DealDeclined, "budget cut on the brand side")
	if err != nil {
		t.Fatal(err)
	}
	if d.LostReason != "budget cut on the brand side" {
		t.Errorf("decline notes should land in lostReason, got %q", d.LostReason)
	}
	if d.Closed == 0 {
		t.Error("declined deals should be closed out")
	}
	if _, err = e.Transition(creator, view.Id, common.DealProspect, ""); err == nil {
		t.Error("terminal deals must not move again")
	}
}

func TestReopenNegotiation(t *testing.T) {
	e := testEngine(t)

	view, _ := e.Create(creator, &CreateRequest{Title: "Second thoughts", BrandName: "GlowCo"})
	id := view.Id
	e.Transition(creator, id, common.DealOutreachSent, "")
	e.MarkNegotiation(creator, id)
	if _, err := e.LockAgreement(creator, id, testTerms()); err != nil {
		t.Fatal(err)
	}

	// Reopen is only legal from AGREEMENT_LOCKED and keeps the last
	// snapshot around for history
	d, err := e.ReopenNegotiation(creator, id, "brand wants a second video")
	if err != nil {
		t.Fatal(err)
	}
	if d.Status != common.DealNegotiation {
		t.Fatalf("expected NEGOTIATION after reopen, got %s", d.Status)
	}
	if d.AgreementLocked != 0 {
		t.Error("reopening should clear the lock timestamp")
	}
	if d.Terms == nil || d.Terms.Version != 1 {
		t.Error("reopening must keep the previous terms snapshot")
	}

	if _, err = e.ReopenNegotiation(creator, id, "again"); err == nil {
		t.Error("reopen should only be legal from AGREEMENT_LOCKED")
	}

	terms := testTerms()
	terms.Price.Amount = 2500
	locked, err := e.LockAgreement(creator, id, terms)
	if err != nil {
		t.Fatal(err)
	}
	if locked.Terms.Version != 2 {
		t.Errorf("re-locking should bump the terms version, got %d", locked.Terms.Version)
	}
	if locked.AgreedAmount != 2500 {
		t.Errorf("re-locking should take the new amount, got %v", locked.AgreedAmount)
	}
}

func TestLockRequiresNegotiation(t *testing.T) {
	e := testEngine(t)

	view, _ := e.Create(creator, &CreateRequest{Title: "Too eager"})
	_, err := e.LockAgreement(creator, view.Id, testTerms())
	var it *common.InvalidTransitionError
	if !errors.As(err, &it) {
		t.Fatalf("locking from PROSPECT should be an invalid transition, got %v", err)
	}

	if _, err = e.LockAgreement(creator, view.Id, &common.TermsSnapshot{}); err == nil {
		t.Error("empty terms should not pass validation")
	}
}

func TestEnsureOutreachIdempotent(t *testing.T) {
	e := testEngine(t)

	d, err := e.EnsureOutreach(creator, "GlowCo", "")
	if err != nil {
		t.Fatal(err)
	}
	if d.Status != common.DealOutreachSent {
		t.Fatalf("expected a fresh OUTREACH_SENT deal, got %s", d.Status)
	}
	if d.Title == "" {
		t.Error("auto-created deals should get a default title")
	}

	again, err := e.EnsureOutreach(creator, "glowco ", "")
	if err != nil {
		t.Fatal(err)
	}
	if again.Id != d.Id {
		t.Fatalf("a re-send must not open a second deal: %s vs %s", again.Id, d.Id)
	}

	// A deal past outreach never regresses
	e.MarkNegotiation(creator, d.Id)
	again, err = e.EnsureOutreach(creator, "GlowCo", "")
	if err != nil {
		t.Fatal(err)
	}
	if again.Status != common.DealNegotiation {
		t.Errorf("re-sending outreach must not regress the deal, got %s", again.Status)
	}

	log, _ := e.ListActivity(creator, d.Id)
	var resent int
	for _, a := range log {
		if a.Type == common.ActivityOutreachResent {
			resent++
		}
	}
	if resent != 2 {
		t.Errorf("expected 2 re-send entries, got %d", resent)
	}
}

func TestOwnershipReadsAsNotFound(t *testing.T) {
	e := testEngine(t)

	view, _ := e.Create(creator, &CreateRequest{Title: "Private"})

	_, err := e.Get(rando, view.Id)
	var nf *common.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("foreign deals must read as not found, got %v", err)
	}
	if _, err = e.Transition(rando, view.Id, common.DealOutreachSent, ""); !errors.As(err, &nf) {
		t.Errorf("foreign transitions must read as not found, got %v", err)
	}
}

func TestConversations(t *testing.T) {
	e := testEngine(t)

	view, _ := e.Create(creator, &CreateRequest{Title: "Chatty", BrandName: "GlowCo"})

	if _, err := e.LogConversation(creator, view.Id, &common.ConversationLog{Channel: "carrier pigeon", Direction: common.DirOutbound}); err == nil {
		t.Error("unknown channels should be rejected")
	}

	for i, cl := range []*common.ConversationLog{
		{Channel: common.ChannelEmail, Direction: common.DirOutbound, Summary: "intro", TS: 100},
		{Channel: common.ChannelEmail, Direction: common.DirInbound, Summary: "interested", Disposition: common.DispInterest, TS: 200},
	} {
		if _, err := e.LogConversation(creator, view.Id, cl); err != nil {
			t.Fatalf("conversation %d: %v", i, err)
		}
	}

	convs, err := e.ListConversations(creator, view.Id)
	if err != nil {
		t.Fatal(err)
	}
	if len(convs) != 2 || convs[0].Summary != "intro" {
		t.Errorf("conversations should come back oldest first, got %+v", convs)
	}

	// Each log also lands in the activity stream
	log, _ := e.ListActivity(creator, view.Id)
	var logged int
	for _, a := range log {
		if a.Type == common.ActivityConversationLogged {
			logged++
		}
	}
	if logged != 2 {
		t.Errorf("expected 2 conversation activity entries, got %d", logged)
	}
}
