package server

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/manaiger/manaiger/internal/auth"
	"github.com/manaiger/manaiger/internal/common"
	"github.com/manaiger/manaiger/internal/invoicing"
	"github.com/manaiger/manaiger/internal/templates"
	"github.com/manaiger/manaiger/misc"
)

///////// Invoices /////////

// createDealInvoice invoices a locked deal and advances it to INVOICED.
func createDealInvoice(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := auth.GetPrincipal(c)
		dealId := c.Param("id")

		var req invoicing.CreateRequest
		misc.BindJSON(c, &req)
		req.DealId = dealId

		view, err := s.Deals.Get(p, dealId)
		if err != nil {
			abortWithErr(c, err)
			return
		}
		if view.Status != common.DealAgreementLocked {
			abortWithErr(c, &common.InvalidTransitionError{
				From:    view.Status,
				To:      common.DealInvoiced,
				Allowed: common.NextStates(view.Status),
			})
			return
		}

		inv, err := s.Invoices.Create(p, &req)
		if err != nil {
			abortWithErr(c, err)
			return
		}

		d, err := s.Deals.MarkInvoiceSent(p, dealId, inv.Id)
		if err != nil {
			abortWithErr(c, err)
			return
		}
		c.JSON(200, gin.H{"invoice": inv, "deal": d})
	}
}

// createInvoice is the standalone path for off-platform deals.
func createInvoice(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req invoicing.CreateRequest
		if err := misc.BindJSON(c, &req); err != nil {
			misc.AbortWithErr(c, 400, err)
			return
		}

		inv, err := s.Invoices.Create(auth.GetPrincipal(c), &req)
		if err != nil {
			abortWithErr(c, err)
			return
		}
		c.JSON(200, inv)
	}
}

func getInvoices(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		invoices, err := s.Invoices.List(auth.GetPrincipal(c))
		if err != nil {
			abortWithErr(c, err)
			return
		}
		c.JSON(200, invoices)
	}
}

func getInvoice(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		inv, err := s.Invoices.Get(auth.GetPrincipal(c), c.Param("id"))
		if err != nil {
			abortWithErr(c, err)
			return
		}
		c.JSON(200, inv)
	}
}

// markInvoicePaid settles the invoice, closes out a backing deal and
// drops the creator a confirmation email.
func markInvoicePaid(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := auth.GetPrincipal(c)

		inv, err := s.Invoices.MarkPaid(p, c.Param("id"))
		if err != nil {
			abortWithErr(c, err)
			return
		}

		var d *common.Deal
		if inv.DealId != "" {
			if d, err = s.Deals.MarkInvoicePaid(p, inv.DealId); err != nil {
				abortWithErr(c, err)
				return
			}
		}

		if !s.Cfg.Sandbox && p.Email != "" {
			if mc := s.Cfg.MailClient(); mc != nil {
				email := templates.PaymentReceivedEmail.Render(map[string]interface{}{
					"Name":     p.Name,
					"Brand":    inv.BrandName,
					"Amount":   strconv.FormatFloat(inv.Amount, 'f', 2, 64),
					"Currency": inv.Currency,
				})
				if resp, err := mc.SendMessage(email, "Payment received for "+inv.BrandName, p.Email, p.Name,
					[]string{"payment received"}); err != nil || len(resp) != 1 || resp[0].RejectReason != "" {
					// The payment went through; a failed notification is not fatal
					s.Alert("payment notification failed for invoice "+inv.Id, err)
				}
			}
		}

		c.JSON(200, gin.H{"invoice": inv, "deal": d})
	}
}

func voidInvoice(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		inv, err := s.Invoices.Void(auth.GetPrincipal(c), c.Param("id"))
		if err != nil {
			abortWithErr(c, err)
			return
		}
		c.JSON(200, inv)
	}
}
