package common

// Deal statuses. A deal only ever moves forward through these; the single
// back-edge (AGREEMENT_LOCKED -> NEGOTIATION) is reserved for the explicit
// reopen operation and is deliberately absent from DealTransitions.
const (
	DealProspect        = "PROSPECT"
	DealOutreachSent    = "OUTREACH_SENT"
	DealNegotiation     = "NEGOTIATION"
	DealAgreementLocked = "AGREEMENT_LOCKED"
	DealInvoiced        = "INVOICED"
	DealPaid            = "PAID"
	DealDeclined        = "DECLINED"
)

var DealTransitions = map[string][]string{
	DealProspect:        {DealOutreachSent, DealDeclined},
	DealOutreachSent:    {DealNegotiation, DealDeclined},
	DealNegotiation:     {DealAgreementLocked, DealDeclined},
	DealAgreementLocked: {DealInvoiced, DealDeclined},
	DealInvoiced:        {DealPaid, DealDeclined},
	DealPaid:            {},
	DealDeclined:        {},
}

func IsValidDealStatus(st string) bool {
	_, ok := DealTransitions[st]
	return ok
}

func CanTransition(from, to string) bool {
	for _, st := range DealTransitions[from] {
		if st == to {
			return true
		}
	}
	return false
}

func NextStates(from string) []string {
	return DealTransitions[from]
}

func IsTerminal(st string) bool {
	return st == DealPaid || st == DealDeclined
}

type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency,omitempty"`
	Schedule string  `json:"schedule,omitempty"`
}

type Deliverable struct {
	Platform    string `json:"platform,omitempty"`
	Count       int    `json:"count,omitempty"`
	Description string `json:"description,omitempty"`
}

// TermsSnapshot is written once per lock and never mutated; re-locking
// after a reopen writes a new snapshot with a bumped version.
type TermsSnapshot struct {
	Version int `json:"version"`

	Price        Price          `json:"price"`
	UsageRights  string         `json:"usageRights,omitempty"`
	Deliverables []*Deliverable `json:"deliverables,omitempty"`
	DueDate      string         `json:"dueDate,omitempty"`
	Contact      string         `json:"contact,omitempty"`
	Evidence     []string       `json:"evidence,omitempty"`
}

func (t *TermsSnapshot) Check() error {
	if t == nil {
		return ErrValidation("terms are required")
	}
	if t.Price.Amount <= 0 {
		return ErrValidation("terms need a price")
	}
	if len(t.Deliverables) == 0 {
		return ErrValidation("terms need at least one deliverable")
	}
	return nil
}

// Deal tracks a single creator-brand partnership through the pipeline.
// Deals are never hard-deleted; Closed marks the logical end.
type Deal struct {
	Id        string `json:"id"`
	CreatorId string `json:"creatorId"`
	BrandId   string `json:"brandId,omitempty"`
	BrandName string `json:"brandName,omitempty"`

	Title  string `json:"title"`
	Status string `json:"status"`

	ProposedAmount float64 `json:"proposedAmount,omitempty"`
	AgreedAmount   float64 `json:"agreedAmount,omitempty"`

	// Unix timestamps, stamped once per transition
	Created         int64 `json:"created,omitempty"`
	OutreachSent    int64 `json:"outreachSent,omitempty"`
	NegotiationAt   int64 `json:"negotiationAt,omitempty"`
	AgreementLocked int64 `json:"agreementLocked,omitempty"`
	InvoicedAt      int64 `json:"invoicedAt,omitempty"`
	PaidAt          int64 `json:"paidAt,omitempty"`
	Closed          int64 `json:"closed,omitempty"`

	Terms *TermsSnapshot `json:"terms,omitempty"`

	LostReason string `json:"lostReason,omitempty"`
	InvoiceId  string `json:"invoiceId,omitempty"`
}

func (d *Deal) Check() error {
	if d.Title == "" {
		return ErrValidation("deal title is required")
	}
	return nil
}

// Stamp records the timestamp matching the status being entered.
func (d *Deal) Stamp(status string, now int64) {
	switch status {
	case DealOutreachSent:
		d.OutreachSent = now
	case DealNegotiation:
		d.NegotiationAt = now
	case DealAgreementLocked:
		d.AgreementLocked = now
	case DealInvoiced:
		d.InvoicedAt = now
	case DealPaid:
		d.PaidAt = now
		d.Closed = now
	case DealDeclined:
		d.Closed = now
	}
}
