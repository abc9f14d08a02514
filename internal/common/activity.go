package common

// Activity types written by the deal engine.
const (
	ActivityDealCreated        = "deal.created"
	ActivityStatusChanged      = "status.changed"
	ActivityOutreachSent       = "outreach.sent"
	ActivityOutreachResent     = "outreach.resent"
	ActivityAgreementLocked    = "agreement.locked"
	ActivityNegotiationReopen  = "negotiation.reopened"
	ActivityConversationLogged = "conversation.logged"
	ActivityPaymentReceived    = "payment.received"
)

// DealActivity is an append-only audit entry; rows are immutable once
// written.
type DealActivity struct {
	Id     string `json:"id"`
	DealId string `json:"dealId"`

	Type    string `json:"type"`
	Message string `json:"msg,omitempty"`

	// Display name or email of the principal that caused the entry
	Actor string `json:"actor,omitempty"`

	Meta map[string]interface{} `json:"meta,omitempty"`

	TS int64 `json:"ts"`
	// Insert sequence, used to break timestamp ties when listing
	Seq int64 `json:"seq,omitempty"`
}
