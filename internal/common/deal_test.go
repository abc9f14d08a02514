package common

import "testing"

func TestDealTransitions(t *testing.T) {
	legal := [][2]string{
		{DealProspect, DealOutreachSent},
		{DealOutreachSent, DealNegotiation},
		{DealNegotiation, DealAgreementLocked},
		{DealAgreementLocked, DealInvoiced},
		{DealInvoiced, DealPaid},
		{DealProspect, DealDeclined},
		{DealOutreachSent, DealDeclined},
		{DealNegotiation, DealDeclined},
		{DealAgreementLocked, DealDeclined},
		{DealInvoiced, DealDeclined},
	}
	for _, tr := range legal {
		if !CanTransition(tr[0], tr[1]) {
			t.Errorf("expected %s -> %s to be legal", tr[0], tr[1])
		}
	}

	illegal := [][2]string{
		{DealProspect, DealNegotiation},
		{DealProspect, DealPaid},
		{DealOutreachSent, DealAgreementLocked},
		{DealNegotiation, DealInvoiced},
		// The reopen back-edge must not be reachable through the
		// generic transition table
		{DealAgreementLocked, DealNegotiation},
		{DealPaid, DealDeclined},
		{DealDeclined, DealProspect},
		{DealPaid, DealProspect},
	}
	for _, tr := range illegal {
		if CanTransition(tr[0], tr[1]) {
			t.Errorf("expected %s -> %s to be illegal", tr[0], tr[1])
		}
	}
}

func TestTerminalStates(t *testing.T) {
	for _, st := range []string{DealProspect, DealOutreachSent, DealNegotiation, DealAgreementLocked, DealInvoiced} {
		if IsTerminal(st) {
			t.Errorf("%s should not be terminal", st)
		}
	}
	for _, st := range []string{DealPaid, DealDeclined} {
		if !IsTerminal(st) {
			t.Errorf("%s should be terminal", st)
		}
		if len(NextStates(st)) != 0 {
			t.Errorf("%s should have no next states", st)
		}
	}
}

func TestDealStamp(t *testing.T) {
	var d Deal
	d.Stamp(DealPaid, 42)
	if d.PaidAt != 42 || d.Closed != 42 {
		t.Errorf("PAID should stamp both paidAt and closed, got %d/%d", d.PaidAt, d.Closed)
	}

	d = Deal{}
	d.Stamp(DealDeclined, 7)
	if d.Closed != 7 || d.PaidAt != 0 {
		t.Errorf("DECLINED should only stamp closed, got closed=%d paidAt=%d", d.Closed, d.PaidAt)
	}
}

func TestTermsCheck(t *testing.T) {
	var terms *TermsSnapshot
	if terms.Check() == nil {
		t.Error("nil terms should not pass")
	}

	terms = &TermsSnapshot{Price: Price{Amount: 500}}
	if terms.Check() == nil {
		t.Error("terms without deliverables should not pass")
	}

	terms.Deliverables = []*Deliverable{{Platform: "youtube", Count: 1}}
	if err := terms.Check(); err != nil {
		t.Errorf("valid terms rejected: %v", err)
	}

	terms.Price.Amount = 0
	if terms.Check() == nil {
		t.Error("terms without a price should not pass")
	}
}

func TestMatchAdvance(t *testing.T) {
	if !CanAdvanceMatch(MatchDraft, MatchSent) {
		t.Error("draft -> sent should be legal")
	}
	if !CanAdvanceMatch(MatchSent, MatchRejected) {
		t.Error("sent -> rejected should be legal")
	}
	if CanAdvanceMatch(MatchSent, MatchDraft) {
		t.Error("matches must not move backwards")
	}
	if CanAdvanceMatch(MatchCompleted, MatchAccepted) {
		t.Error("completed matches are immutable")
	}
}
