package server

import (
	"github.com/gin-gonic/gin"

	"github.com/manaiger/manaiger/internal/auth"
	"github.com/manaiger/manaiger/internal/common"
	"github.com/manaiger/manaiger/internal/dealflow"
	"github.com/manaiger/manaiger/misc"
)

///////// Deals /////////

func createDeal(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dealflow.CreateRequest
		if err := misc.BindJSON(c, &req); err != nil {
			misc.AbortWithErr(c, 400, err)
			return
		}

		view, err := s.Deals.Create(auth.GetPrincipal(c), &req)
		if err != nil {
			abortWithErr(c, err)
			return
		}
		c.JSON(200, view)
	}
}

func getDeals(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		deals, err := s.Deals.List(auth.GetPrincipal(c))
		if err != nil {
			abortWithErr(c, err)
			return
		}
		c.JSON(200, deals)
	}
}

func getDeal(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := s.Deals.Get(auth.GetPrincipal(c), c.Param("id"))
		if err != nil {
			abortWithErr(c, err)
			return
		}
		c.JSON(200, view)
	}
}

type transitionRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

func transitionDeal(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req transitionRequest
		if err := misc.BindJSON(c, &req); err != nil {
			misc.AbortWithErr(c, 400, err)
			return
		}

		d, err := s.Deals.Transition(auth.GetPrincipal(c), c.Param("id"), req.Status, req.Notes)
		if err != nil {
			abortWithErr(c, err)
			return
		}
		c.JSON(200, d)
	}
}

func markNegotiation(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := s.Deals.MarkNegotiation(auth.GetPrincipal(c), c.Param("id"))
		if err != nil {
			abortWithErr(c, err)
			return
		}
		c.JSON(200, d)
	}
}

func lockAgreement(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var terms common.TermsSnapshot
		if err := misc.BindJSON(c, &terms); err != nil {
			misc.AbortWithErr(c, 400, err)
			return
		}

		view, err := s.Deals.LockAgreement(auth.GetPrincipal(c), c.Param("id"), &terms)
		if err != nil {
			abortWithErr(c, err)
			return
		}
		c.JSON(200, view)
	}
}

type reopenRequest struct {
	Reason string `json:"reason,omitempty"`
}

func reopenNegotiation(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reopenRequest
		misc.BindJSON(c, &req)

		d, err := s.Deals.ReopenNegotiation(auth.GetPrincipal(c), c.Param("id"), req.Reason)
		if err != nil {
			abortWithErr(c, err)
			return
		}
		c.JSON(200, d)
	}
}

func getDealActivity(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		log, err := s.Deals.ListActivity(auth.GetPrincipal(c), c.Param("id"))
		if err != nil {
			abortWithErr(c, err)
			return
		}
		c.JSON(200, log)
	}
}

///////// Conversations /////////

func logConversation(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cl common.ConversationLog
		if err := misc.BindJSON(c, &cl); err != nil {
			misc.AbortWithErr(c, 400, err)
			return
		}

		out, err := s.Deals.LogConversation(auth.GetPrincipal(c), c.Param("id"), &cl)
		if err != nil {
			abortWithErr(c, err)
			return
		}
		c.JSON(200, out)
	}
}

func getConversations(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		convs, err := s.Deals.ListConversations(auth.GetPrincipal(c), c.Param("id"))
		if err != nil {
			abortWithErr(c, err)
			return
		}
		c.JSON(200, convs)
	}
}

// suggestReply hands the deal plus its conversation history to the
// suggestion provider and returns a drafted next message.
func suggestReply(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := auth.GetPrincipal(c)
		id := c.Param("id")

		view, err := s.Deals.Get(p, id)
		if err != nil {
			abortWithErr(c, err)
			return
		}
		convs, err := s.Deals.ListConversations(p, id)
		if err != nil {
			abortWithErr(c, err)
			return
		}

		reply, err := s.ai.SuggestReply(view.Deal, convs)
		if err != nil {
			abortWithErr(c, err)
			return
		}
		c.JSON(200, gin.H{"dealId": id, "reply": reply})
	}
}
