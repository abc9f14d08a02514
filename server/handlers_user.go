package server

import (
	"time"

	"github.com/boltdb/bolt"
	"github.com/gin-gonic/gin"

	"github.com/manaiger/manaiger/internal/auth"
	"github.com/manaiger/manaiger/internal/common"
	"github.com/manaiger/manaiger/internal/subscriptions"
	"github.com/manaiger/manaiger/misc"
)

///////// Users /////////

type signUpRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Plan  string `json:"plan,omitempty"`
}

func signUp(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signUpRequest
		if err := misc.BindJSON(c, &req); err != nil {
			misc.AbortWithErr(c, 400, err)
			return
		}
		if req.Plan != "" && subscriptions.GetPlan(req.Plan) == nil {
			misc.AbortWithErr(c, 400, common.ErrValidation("unknown plan %q", req.Plan))
			return
		}

		u, err := s.auth.SignUp(req.Name, req.Email, req.Plan)
		if err != nil {
			if err == auth.ErrEmailExists {
				misc.AbortWithErr(c, 409, err)
			} else {
				misc.AbortWithErr(c, 400, err)
			}
			return
		}
		// The key is only ever returned here
		c.JSON(200, u)
	}
}

///////// Creator profiles /////////

func getProfile(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := auth.GetPrincipal(c)

		var prof common.CreatorProfile
		if err := s.db.View(func(tx *bolt.Tx) error {
			return misc.GetTxJson(tx, s.Cfg.Bucket.Profile, p.Id, &prof)
		}); err != nil {
			abortWithErr(c, common.ErrNotFound("profile"))
			return
		}
		c.JSON(200, &prof)
	}
}

func putProfile(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := auth.GetPrincipal(c)

		var prof common.CreatorProfile
		if err := misc.BindJSON(c, &prof); err != nil {
			misc.AbortWithErr(c, 400, err)
			return
		}
		if err := prof.Check(); err != nil {
			abortWithErr(c, err)
			return
		}

		prof.UserId = p.Id
		prof.Updated = time.Now().Unix()
		if err := s.db.Update(func(tx *bolt.Tx) error {
			return misc.PutTxJson(tx, s.Cfg.Bucket.Profile, p.Id, &prof)
		}); err != nil {
			misc.AbortWithErr(c, 500, err)
			return
		}
		c.JSON(200, misc.StatusOK(p.Id))
	}
}

// profileOf loads the caller's profile; nil when onboarding was skipped.
func profileOf(s *Server, p *auth.Principal) *common.CreatorProfile {
	var prof common.CreatorProfile
	if err := s.db.View(func(tx *bolt.Tx) error {
		return misc.GetTxJson(tx, s.Cfg.Bucket.Profile, p.Id, &prof)
	}); err != nil || prof.UserId == "" {
		return nil
	}
	return &prof
}
