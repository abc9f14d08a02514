package common

// Invoice statuses.
const (
	InvoiceUnpaid   = "unpaid"
	InvoicePaid     = "paid"
	InvoiceVoid     = "void"
	InvoiceRefunded = "refunded"
)

// Payment methods.
const (
	PayPlatform   = "platform"
	PayCustomLink = "custom_link"
)

type Invoice struct {
	Id        string `json:"id"`
	CreatorId string `json:"creatorId"`
	DealId    string `json:"dealId,omitempty"`

	BrandName string  `json:"brandName"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency,omitempty"`

	Status string `json:"status"`

	Method       string `json:"method"`
	CustomLink   string `json:"customLink,omitempty"`
	Instructions string `json:"instructions,omitempty"`

	// External payment references (Stripe invoice id and the like)
	StripeId string `json:"stripeId,omitempty"`

	Created int64 `json:"created,omitempty"`
	PaidAt  int64 `json:"paidAt,omitempty"`
}

func (inv *Invoice) Check() error {
	if inv.Amount <= 0 {
		return ErrValidation("invoice needs a positive amount")
	}
	if inv.BrandName == "" {
		return ErrValidation("invoice needs a brand name")
	}
	switch inv.Method {
	case PayPlatform:
	case PayCustomLink:
		if inv.CustomLink == "" {
			return ErrValidation("custom link invoices need a payment link")
		}
	default:
		return ErrValidation("invalid payment method %q", inv.Method)
	}
	return nil
}
