package server

import (
	"errors"

	"github.com/boltdb/bolt"
	"github.com/gin-gonic/gin"

	"github.com/manaiger/manaiger/internal/auth"
	"github.com/manaiger/manaiger/internal/common"
	"github.com/manaiger/manaiger/internal/templates"
	"github.com/manaiger/manaiger/misc"
)

type outreachRequest struct {
	// Recipient overrides; default to the match's stored contact info
	Email   string `json:"email,omitempty"`
	Contact string `json:"contact,omitempty"`

	// Message body; defaults to the match's outreach draft
	Body string `json:"body,omitempty"`

	Subject string `json:"subject,omitempty"`
}

// sendOutreach emails the brand behind a match, advances the match to
// sent and makes sure a deal in OUTREACH_SENT backs it.
func sendOutreach(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := auth.GetPrincipal(c)

		var req outreachRequest
		misc.BindJSON(c, &req)

		var m common.BrandMatch
		if err := s.db.View(func(tx *bolt.Tx) error {
			if misc.GetTxJson(tx, s.Cfg.Bucket.Match, c.Param("id"), &m) != nil || m.CreatorId != p.Id {
				return common.ErrNotFound("brand match")
			}
			return nil
		}); err != nil {
			abortWithErr(c, err)
			return
		}

		to := req.Email
		if to == "" {
			to = m.BrandEmail
		}
		if to == "" {
			abortWithErr(c, common.ErrValidation("no contact email on file for %s; pass one in the request", m.BrandName))
			return
		}

		body := req.Body
		if body == "" {
			body = m.OutreachDraft
		}
		if body == "" {
			abortWithErr(c, common.ErrValidation("no outreach draft on this match; pass a body in the request"))
			return
		}

		contact := req.Contact
		if contact == "" {
			contact = m.BrandName + " team"
		}
		subject := req.Subject
		if subject == "" {
			subject = "Partnership inquiry from " + p.Name
		}

		if !s.Cfg.Sandbox {
			mc := s.Cfg.MailClient()
			if mc == nil {
				abortWithErr(c, &common.ExternalError{Provider: "mandrill", Err: errors.New("mail is not configured")})
				return
			}
			email := templates.OutreachEmail.Render(map[string]interface{}{
				"Contact":     contact,
				"Body":        body,
				"CreatorName": p.Name,
			})
			resp, err := mc.SendMessage(email, subject, to, contact, []string{"outreach"})
			if err != nil || len(resp) != 1 || resp[0].RejectReason != "" {
				s.Alert("outreach email failed for match "+m.Id, err)
				abortWithErr(c, &common.ExternalError{Provider: "mandrill", Err: errors.New("outreach email was rejected")})
				return
			}
		}

		if common.CanAdvanceMatch(m.Status, common.MatchSent) {
			if err := s.db.Update(func(tx *bolt.Tx) error {
				m.Status = common.MatchSent
				return misc.PutTxJson(tx, s.Cfg.Bucket.Match, m.Id, &m)
			}); err != nil {
				misc.AbortWithErr(c, 500, err)
				return
			}
		}

		d, err := s.Deals.EnsureOutreach(p, m.BrandName, "")
		if err != nil {
			abortWithErr(c, err)
			return
		}

		c.JSON(200, gin.H{"match": &m, "deal": d})
	}
}
