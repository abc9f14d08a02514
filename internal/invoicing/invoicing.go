package invoicing

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/boltdb/bolt"
	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/customer"
	"github.com/stripe/stripe-go/v72/invoice"
	"github.com/stripe/stripe-go/v72/invoiceitem"

	"github.com/manaiger/manaiger/config"
	"github.com/manaiger/manaiger/internal/auth"
	"github.com/manaiger/manaiger/internal/common"
	"github.com/manaiger/manaiger/misc"
)

// Service creates and settles invoices. Platform-hosted invoices go out
// through Stripe; custom-link invoices just carry the creator's own
// payment link. Deal status reactions live in the deal engine, not here.
type Service struct {
	db  *bolt.DB
	cfg *config.Config
}

func New(db *bolt.DB, cfg *config.Config) *Service {
	stripe.Key = cfg.Stripe.Key
	return &Service{
		db:  db,
		cfg: cfg,
	}
}

type CreateRequest struct {
	DealId string `json:"dealId,omitempty"`

	BrandName string  `json:"brandName,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
	Currency  string  `json:"currency,omitempty"`

	Method       string `json:"method"`
	CustomLink   string `json:"customLink,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// Create builds the invoice record, pushing a hosted invoice to Stripe
// first when asked to; provider failures are hard errors and nothing is
// persisted.
func (s *Service) Create(p *auth.Principal, req *CreateRequest) (*common.Invoice, error) {
	inv := &common.Invoice{
		CreatorId:    p.Id,
		DealId:       req.DealId,
		BrandName:    req.BrandName,
		Amount:       req.Amount,
		Currency:     req.Currency,
		Status:       common.InvoiceUnpaid,
		Method:       req.Method,
		CustomLink:   req.CustomLink,
		Instructions: req.Instructions,
		Created:      time.Now().Unix(),
	}
	if inv.Method == "" {
		inv.Method = common.PayPlatform
	}
	if inv.Currency == "" {
		inv.Currency = "USD"
	}

	// Deal-backed invoices inherit the agreed amount and brand
	if req.DealId != "" {
		var d common.Deal
		if err := s.db.View(func(tx *bolt.Tx) error {
			return misc.GetTxJson(tx, s.cfg.Bucket.Deal, req.DealId, &d)
		}); err != nil || d.CreatorId != p.Id {
			return nil, common.ErrNotFound("deal")
		}
		if inv.Amount == 0 {
			inv.Amount = d.AgreedAmount
		}
		if inv.BrandName == "" {
			inv.BrandName = d.BrandName
		}
		if inv.Currency == "USD" && d.Terms != nil && d.Terms.Price.Currency != "" {
			inv.Currency = d.Terms.Price.Currency
		}
	}

	if err := inv.Check(); err != nil {
		return nil, err
	}

	if inv.Method == common.PayPlatform && !s.cfg.Sandbox && s.cfg.Stripe.Key != "" {
		stripeId, err := s.createHosted(p, inv)
		if err != nil {
			return nil, &common.ExternalError{Provider: "stripe", Err: err}
		}
		inv.StripeId = stripeId
	}

	if err := s.db.Update(func(tx *bolt.Tx) (err error) {
		if inv.Id, err = misc.GetNextIndex(tx, s.cfg.Bucket.Invoice); err != nil {
			return
		}
		return misc.PutTxJson(tx, s.cfg.Bucket.Invoice, inv.Id, inv)
	}); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) createHosted(p *auth.Principal, inv *common.Invoice) (string, error) {
	cust, err := customer.New(&stripe.CustomerParams{
		Email:       stripe.String(p.Email),
		Description: stripe.String("ManAIger invoice for " + inv.BrandName),
	})
	if err != nil {
		return "", err
	}

	if _, err = invoiceitem.New(&stripe.InvoiceItemParams{
		Customer:    stripe.String(cust.ID),
		Amount:      stripe.Int64(int64(inv.Amount * 100)),
		Currency:    stripe.String(inv.Currency),
		Description: stripe.String(inv.BrandName + " partnership"),
	}); err != nil {
		return "", err
	}

	si, err := invoice.New(&stripe.InvoiceParams{
		Customer:         stripe.String(cust.ID),
		CollectionMethod: stripe.String(string(stripe.InvoiceCollectionMethodSendInvoice)),
		DaysUntilDue:     stripe.Int64(30),
	})
	if err != nil {
		return "", err
	}
	return si.ID, nil
}

func (s *Service) Get(p *auth.Principal, invoiceId string) (*common.Invoice, error) {
	var inv common.Invoice
	if err := s.db.View(func(tx *bolt.Tx) error {
		return misc.GetTxJson(tx, s.cfg.Bucket.Invoice, invoiceId, &inv)
	}); err != nil || inv.CreatorId != p.Id {
		return nil, common.ErrNotFound("invoice")
	}
	return &inv, nil
}

func (s *Service) List(p *auth.Principal) ([]*common.Invoice, error) {
	out := []*common.Invoice{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return misc.GetBucket(tx, s.cfg.Bucket.Invoice).ForEach(func(k, v []byte) error {
			var inv common.Invoice
			if json.Unmarshal(v, &inv) == nil && inv.CreatorId == p.Id {
				out = append(out, &inv)
			}
			return nil
		})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Created > out[j].Created })
	return out, err
}

// MarkPaid settles an unpaid invoice. Terminal statuses conflict rather
// than silently re-settling.
func (s *Service) MarkPaid(p *auth.Principal, invoiceId string) (*common.Invoice, error) {
	var inv common.Invoice
	if err := s.db.Update(func(tx *bolt.Tx) error {
		if misc.GetTxJson(tx, s.cfg.Bucket.Invoice, invoiceId, &inv) != nil || inv.CreatorId != p.Id {
			return common.ErrNotFound("invoice")
		}
		if inv.Status != common.InvoiceUnpaid {
			return &common.ConflictError{Msg: "invoice is already " + inv.Status}
		}
		inv.Status = common.InvoicePaid
		inv.PaidAt = time.Now().Unix()
		return misc.PutTxJson(tx, s.cfg.Bucket.Invoice, inv.Id, &inv)
	}); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Void cancels an unpaid invoice.
func (s *Service) Void(p *auth.Principal, invoiceId string) (*common.Invoice, error) {
	var inv common.Invoice
	if err := s.db.Update(func(tx *bolt.Tx) error {
		if misc.GetTxJson(tx, s.cfg.Bucket.Invoice, invoiceId, &inv) != nil || inv.CreatorId != p.Id {
			return common.ErrNotFound("invoice")
		}
		if inv.Status != common.InvoiceUnpaid {
			return &common.ConflictError{Msg: "invoice is already " + inv.Status}
		}
		inv.Status = common.InvoiceVoid
		return misc.PutTxJson(tx, s.cfg.Bucket.Invoice, inv.Id, &inv)
	}); err != nil {
		return nil, err
	}
	return &inv, nil
}
