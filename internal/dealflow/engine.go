package dealflow

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/boltdb/bolt"

	"github.com/manaiger/manaiger/config"
	"github.com/manaiger/manaiger/internal/auth"
	"github.com/manaiger/manaiger/internal/common"
	"github.com/manaiger/manaiger/misc"
)

// Engine drives deals through the partnership pipeline. Every operation
// commits the deal write and its activity entry in a single bolt
// transaction, so the audit log can never drift from the deal state.
type Engine struct {
	db  *bolt.DB
	cfg *config.Config
}

func New(db *bolt.DB, cfg *config.Config) *Engine {
	return &Engine{
		db:  db,
		cfg: cfg,
	}
}

type CreateRequest struct {
	Title          string  `json:"title"`
	BrandId        string  `json:"brandId,omitempty"`
	BrandName      string  `json:"brandName,omitempty"`
	ProposedAmount float64 `json:"proposedAmount,omitempty"`
}

// DealView is the denormalized shape handed back to callers: the deal
// plus the brand's contact fields flattened in, and an optional pointer
// telling the caller what to do next.
type DealView struct {
	*common.Deal

	BrandWebsite string `json:"brandWebsite,omitempty"`
	BrandEmail   string `json:"brandEmail,omitempty"`

	Next string `json:"next,omitempty"`
}

// Create opens a deal in PROSPECT, finding or creating the referenced
// brand by name when no brand id is given.
func (e *Engine) Create(p *auth.Principal, req *CreateRequest) (*DealView, error) {
	if req.Title == "" {
		return nil, common.ErrValidation("deal title is required")
	}

	var (
		d     = &common.Deal{}
		brand *common.Brand
	)
	if err := e.db.Update(func(tx *bolt.Tx) (err error) {
		if brand, err = e.resolveBrandTx(tx, req.BrandId, req.BrandName); err != nil {
			return
		}

		if d.Id, err = misc.GetNextIndex(tx, e.cfg.Bucket.Deal); err != nil {
			return
		}
		d.CreatorId = p.Id
		d.Title = req.Title
		d.Status = common.DealProspect
		d.ProposedAmount = req.ProposedAmount
		d.Created = time.Now().Unix()
		if brand != nil {
			d.BrandId = brand.Id
			d.BrandName = brand.Name
		} else {
			d.BrandName = req.BrandName
		}

		if err = misc.PutTxJson(tx, e.cfg.Bucket.Deal, d.Id, d); err != nil {
			return
		}
		return e.logActivityTx(tx, p, d, common.ActivityDealCreated, "Deal created", nil)
	}); err != nil {
		return nil, err
	}

	return viewOf(d, brand), nil
}

func (e *Engine) Get(p *auth.Principal, dealId string) (*DealView, error) {
	var (
		d     *common.Deal
		brand *common.Brand
	)
	if err := e.db.View(func(tx *bolt.Tx) (err error) {
		if d, err = e.getDealTx(tx, p, dealId); err != nil {
			return
		}
		brand = e.getBrandTx(tx, d.BrandId)
		return nil
	}); err != nil {
		return nil, err
	}
	return viewOf(d, brand), nil
}

func (e *Engine) List(p *auth.Principal) ([]*common.Deal, error) {
	deals := []*common.Deal{}
	err := e.db.View(func(tx *bolt.Tx) error {
		return misc.GetBucket(tx, e.cfg.Bucket.Deal).ForEach(func(k, v []byte) error {
			var d common.Deal
			if json.Unmarshal(v, &d) == nil && d.CreatorId == p.Id {
				deals = append(deals, &d)
			}
			return nil
		})
	})
	sort.Slice(deals, func(i, j int) bool { return deals[i].Created > deals[j].Created })
	return deals, err
}

// Transition moves a deal along one of the legal forward edges. The
// reopen back-edge is intentionally not reachable from here.
func (e *Engine) Transition(p *auth.Principal, dealId, target, notes string) (*common.Deal, error) {
	if !common.IsValidDealStatus(target) {
		return nil, common.ErrValidation("unknown deal status %q", target)
	}

	var d *common.Deal
	if err := e.db.Update(func(tx *bolt.Tx) (err error) {
		if d, err = e.getDealTx(tx, p, dealId); err != nil {
			return
		}
		return e.transitionTx(tx, p, d, target, notes)
	}); err != nil {
		return nil, err
	}
	return d, nil
}

// MarkNegotiation is sugar for the OUTREACH_SENT -> NEGOTIATION move.
func (e *Engine) MarkNegotiation(p *auth.Principal, dealId string) (*common.Deal, error) {
	return e.Transition(p, dealId, common.DealNegotiation, "")
}

// LockAgreement snapshots the agreed terms as a new immutable version and
// moves the deal to AGREEMENT_LOCKED. Invoicing itself belongs to the
// invoicing collaborator; the returned view carries the pointer.
func (e *Engine) LockAgreement(p *auth.Principal, dealId string, terms *common.TermsSnapshot) (*DealView, error) {
	if err := terms.Check(); err != nil {
		return nil, err
	}

	var (
		d     *common.Deal
		brand *common.Brand
	)
	if err := e.db.Update(func(tx *bolt.Tx) (err error) {
		if d, err = e.getDealTx(tx, p, dealId); err != nil {
			return
		}
		if d.Status != common.DealNegotiation {
			return &common.InvalidTransitionError{
				From:    d.Status,
				To:      common.DealAgreementLocked,
				Allowed: common.NextStates(d.Status),
			}
		}

		version := 1
		if d.Terms != nil {
			version = d.Terms.Version + 1
		}
		terms.Version = version

		from := d.Status
		d.Terms = terms
		d.AgreedAmount = terms.Price.Amount
		d.Status = common.DealAgreementLocked
		d.Stamp(common.DealAgreementLocked, time.Now().Unix())

		if err = misc.PutTxJson(tx, e.cfg.Bucket.Deal, d.Id, d); err != nil {
			return
		}
		brand = e.getBrandTx(tx, d.BrandId)
		return e.logActivityTx(tx, p, d, common.ActivityAgreementLocked,
			"Agreement locked at version "+strconv.Itoa(version),
			map[string]interface{}{"from": from, "to": d.Status, "version": version})
	}); err != nil {
		return nil, err
	}

	view := viewOf(d, brand)
	view.Next = "create-invoice"
	return view, nil
}

// ReopenNegotiation is the single back-edge in the graph: only legal from
// AGREEMENT_LOCKED. The last terms snapshot is kept for history.
func (e *Engine) ReopenNegotiation(p *auth.Principal, dealId, reason string) (*common.Deal, error) {
	var d *common.Deal
	if err := e.db.Update(func(tx *bolt.Tx) (err error) {
		if d, err = e.getDealTx(tx, p, dealId); err != nil {
			return
		}
		if d.Status != common.DealAgreementLocked {
			return &common.InvalidTransitionError{
				From:    d.Status,
				To:      common.DealNegotiation,
				Allowed: common.NextStates(d.Status),
			}
		}

		from := d.Status
		d.Status = common.DealNegotiation
		d.AgreementLocked = 0

		if err = misc.PutTxJson(tx, e.cfg.Bucket.Deal, d.Id, d); err != nil {
			return
		}
		return e.logActivityTx(tx, p, d, common.ActivityNegotiationReopen,
			"Negotiation reopened: "+reason,
			map[string]interface{}{"from": from, "to": d.Status, "reason": reason})
	}); err != nil {
		return nil, err
	}
	return d, nil
}

// EnsureOutreach is the deal-layer side effect of sending outreach:
// creates a deal in OUTREACH_SENT if the creator has none for this brand,
// advances a PROSPECT deal, and never regresses anything later in the
// pipeline (a re-send only appends an activity entry).
func (e *Engine) EnsureOutreach(p *auth.Principal, brandName, title string) (*common.Deal, error) {
	if brandName == "" {
		return nil, common.ErrValidation("brand name is required")
	}

	var d *common.Deal
	if err := e.db.Update(func(tx *bolt.Tx) (err error) {
		d = e.findDealByBrandTx(tx, p, brandName)

		switch {
		case d == nil:
			brand, err := e.resolveBrandTx(tx, "", brandName)
			if err != nil {
				return err
			}
			now := time.Now().Unix()
			d = &common.Deal{
				CreatorId: p.Id,
				BrandId:   brand.Id,
				BrandName: brand.Name,
				Title:     title,
				Status:    common.DealOutreachSent,
				Created:   now,
			}
			if d.Title == "" {
				d.Title = brand.Name + " Partnership"
			}
			d.Stamp(common.DealOutreachSent, now)
			if d.Id, err = misc.GetNextIndex(tx, e.cfg.Bucket.Deal); err != nil {
				return err
			}
			if err = misc.PutTxJson(tx, e.cfg.Bucket.Deal, d.Id, d); err != nil {
				return err
			}
			return e.logActivityTx(tx, p, d, common.ActivityOutreachSent, "Outreach sent to "+brand.Name, nil)

		case d.Status == common.DealProspect:
			from := d.Status
			d.Status = common.DealOutreachSent
			d.Stamp(common.DealOutreachSent, time.Now().Unix())
			if err = misc.PutTxJson(tx, e.cfg.Bucket.Deal, d.Id, d); err != nil {
				return
			}
			return e.logActivityTx(tx, p, d, common.ActivityOutreachSent, "Outreach sent to "+d.BrandName,
				map[string]interface{}{"from": from, "to": d.Status})

		default:
			// Already OUTREACH_SENT or later; only record the re-send
			return e.logActivityTx(tx, p, d, common.ActivityOutreachResent, "Outreach re-sent to "+d.BrandName, nil)
		}
	}); err != nil {
		return nil, err
	}
	return d, nil
}

// MarkInvoiceSent is the invoicing collaborator's callback once an
// invoice exists for the deal.
func (e *Engine) MarkInvoiceSent(p *auth.Principal, dealId, invoiceId string) (*common.Deal, error) {
	var d *common.Deal
	if err := e.db.Update(func(tx *bolt.Tx) (err error) {
		if d, err = e.getDealTx(tx, p, dealId); err != nil {
			return
		}
		d.InvoiceId = invoiceId
		return e.transitionTx(tx, p, d, common.DealInvoiced, "")
	}); err != nil {
		return nil, err
	}
	return d, nil
}

// MarkInvoicePaid advances INVOICED -> PAID and records the payment.
func (e *Engine) MarkInvoicePaid(p *auth.Principal, dealId string) (*common.Deal, error) {
	var d *common.Deal
	if err := e.db.Update(func(tx *bolt.Tx) (err error) {
		if d, err = e.getDealTx(tx, p, dealId); err != nil {
			return
		}
		if err = e.transitionTx(tx, p, d, common.DealPaid, ""); err != nil {
			return
		}
		return e.logActivityTx(tx, p, d, common.ActivityPaymentReceived, "Payment received",
			map[string]interface{}{"amount": d.AgreedAmount})
	}); err != nil {
		return nil, err
	}
	return d, nil
}

// LogConversation appends an exchange record; no state-machine effect.
func (e *Engine) LogConversation(p *auth.Principal, dealId string, cl *common.ConversationLog) (*common.ConversationLog, error) {
	if err := cl.Check(); err != nil {
		return nil, err
	}

	if err := e.db.Update(func(tx *bolt.Tx) (err error) {
		d, err := e.getDealTx(tx, p, dealId)
		if err != nil {
			return
		}
		cl.DealId = d.Id
		if cl.TS == 0 {
			cl.TS = time.Now().Unix()
		}
		if cl.Id, err = misc.GetNextIndex(tx, e.cfg.Bucket.Conversation); err != nil {
			return
		}
		if err = misc.PutTxJson(tx, e.cfg.Bucket.Conversation, cl.Id, cl); err != nil {
			return
		}
		return e.logActivityTx(tx, p, d, common.ActivityConversationLogged,
			"Conversation logged ("+cl.Channel+" "+cl.Direction+")",
			map[string]interface{}{"channel": cl.Channel, "disposition": cl.Disposition})
	}); err != nil {
		return nil, err
	}
	return cl, nil
}

// ListConversations returns the deal's exchanges oldest-first, the order
// the reply generator wants them in.
func (e *Engine) ListConversations(p *auth.Principal, dealId string) ([]*common.ConversationLog, error) {
	out := []*common.ConversationLog{}
	if err := e.db.View(func(tx *bolt.Tx) error {
		if _, err := e.getDealTx(tx, p, dealId); err != nil {
			return err
		}
		return misc.GetBucket(tx, e.cfg.Bucket.Conversation).ForEach(func(k, v []byte) error {
			var cl common.ConversationLog
			if json.Unmarshal(v, &cl) == nil && cl.DealId == dealId {
				out = append(out, &cl)
			}
			return nil
		})
	}); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TS < out[j].TS })
	return out, nil
}

// ListActivity returns the audit log newest-first.
func (e *Engine) ListActivity(p *auth.Principal, dealId string) ([]*common.DealActivity, error) {
	out := []*common.DealActivity{}
	if err := e.db.View(func(tx *bolt.Tx) error {
		if _, err := e.getDealTx(tx, p, dealId); err != nil {
			return err
		}
		return misc.GetBucket(tx, e.cfg.Bucket.DealActivity).ForEach(func(k, v []byte) error {
			var a common.DealActivity
			if json.Unmarshal(v, &a) == nil && a.DealId == dealId {
				out = append(out, &a)
			}
			return nil
		})
	}); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq > out[j].Seq })
	return out, nil
}

///////// internals /////////

// getDealTx loads the deal and enforces ownership; a foreign-owned deal
// reads as not-found so existence never leaks across creators.
func (e *Engine) getDealTx(tx *bolt.Tx, p *auth.Principal, dealId string) (*common.Deal, error) {
	var d common.Deal
	if misc.GetTxJson(tx, e.cfg.Bucket.Deal, dealId, &d) != nil || d.CreatorId != p.Id {
		return nil, common.ErrNotFound("deal")
	}
	return &d, nil
}

func (e *Engine) transitionTx(tx *bolt.Tx, p *auth.Principal, d *common.Deal, target, notes string) error {
	if !common.CanTransition(d.Status, target) {
		return &common.InvalidTransitionError{
			From:    d.Status,
			To:      target,
			Allowed: common.NextStates(d.Status),
		}
	}

	from := d.Status
	d.Status = target
	d.Stamp(target, time.Now().Unix())
	if target == common.DealDeclined {
		d.LostReason = notes
	}

	if err := misc.PutTxJson(tx, e.cfg.Bucket.Deal, d.Id, d); err != nil {
		return err
	}

	meta := map[string]interface{}{"from": from, "to": target}
	if notes != "" {
		meta["notes"] = notes
	}
	return e.logActivityTx(tx, p, d, common.ActivityStatusChanged, from+" -> "+target, meta)
}

func (e *Engine) logActivityTx(tx *bolt.Tx, p *auth.Principal, d *common.Deal, typ, msg string, meta map[string]interface{}) error {
	id, err := misc.GetNextIndex(tx, e.cfg.Bucket.DealActivity)
	if err != nil {
		return err
	}
	seq, _ := strconv.ParseInt(id, 10, 64)
	a := &common.DealActivity{
		Id:      id,
		DealId:  d.Id,
		Type:    typ,
		Message: msg,
		Actor:   p.Name,
		Meta:    meta,
		TS:      time.Now().Unix(),
		Seq:     seq,
	}
	return misc.PutTxJson(tx, e.cfg.Bucket.DealActivity, a.Id, a)
}

func (e *Engine) getBrandTx(tx *bolt.Tx, brandId string) *common.Brand {
	if brandId == "" {
		return nil
	}
	var b common.Brand
	if misc.GetTxJson(tx, e.cfg.Bucket.Brand, brandId, &b) == nil && b.Id != "" {
		return &b
	}
	return nil
}

// resolveBrandTx finds the brand by id or (case-insensitively) by name,
// creating a directory entry when the name is new.
func (e *Engine) resolveBrandTx(tx *bolt.Tx, brandId, brandName string) (*common.Brand, error) {
	if brandId != "" {
		if b := e.getBrandTx(tx, brandId); b != nil {
			return b, nil
		}
		return nil, common.ErrNotFound("brand")
	}
	if brandName == "" {
		return nil, nil
	}

	key := misc.TrimKey(brandName)
	var found *common.Brand
	misc.GetBucket(tx, e.cfg.Bucket.Brand).ForEach(func(k, v []byte) error {
		var b common.Brand
		if json.Unmarshal(v, &b) == nil && misc.TrimKey(b.Name) == key {
			found = &b
		}
		return nil
	})
	if found != nil {
		return found, nil
	}

	b := &common.Brand{
		Name:    brandName,
		Active:  true,
		Created: time.Now().Unix(),
	}
	var err error
	if b.Id, err = misc.GetNextIndex(tx, e.cfg.Bucket.Brand); err != nil {
		return nil, err
	}
	return b, misc.PutTxJson(tx, e.cfg.Bucket.Brand, b.Id, b)
}

func (e *Engine) findDealByBrandTx(tx *bolt.Tx, p *auth.Principal, brandName string) (found *common.Deal) {
	key := misc.TrimKey(brandName)
	misc.GetBucket(tx, e.cfg.Bucket.Deal).ForEach(func(k, v []byte) error {
		var d common.Deal
		if json.Unmarshal(v, &d) == nil && d.CreatorId == p.Id && misc.TrimKey(d.BrandName) == key {
			found = &d
		}
		return nil
	})
	return
}

func viewOf(d *common.Deal, brand *common.Brand) *DealView {
	view := &DealView{Deal: d}
	if brand != nil {
		view.BrandWebsite = brand.Website
		view.BrandEmail = brand.ContactEmail
	}
	return view
}
