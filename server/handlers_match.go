package server

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/boltdb/bolt"
	"github.com/gin-gonic/gin"

	"github.com/manaiger/manaiger/internal/auth"
	"github.com/manaiger/manaiger/internal/common"
	"github.com/manaiger/manaiger/misc"
)

///////// Brand matches /////////

func createMatch(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := auth.GetPrincipal(c)

		var m common.BrandMatch
		if err := misc.BindJSON(c, &m); err != nil {
			misc.AbortWithErr(c, 400, err)
			return
		}
		if m.BrandName == "" {
			abortWithErr(c, common.ErrValidation("brand name is required"))
			return
		}
		if m.Status == "" {
			m.Status = common.MatchDraft
		} else if !common.IsValidMatchStatus(m.Status) {
			abortWithErr(c, common.ErrValidation("unknown match status %q", m.Status))
			return
		}

		m.CreatorId = p.Id
		m.Created = time.Now().Unix()
		m.Month = common.GetMonth()
		if err := s.db.Update(func(tx *bolt.Tx) (err error) {
			if m.Id, err = misc.GetNextIndex(tx, s.Cfg.Bucket.Match); err != nil {
				return
			}
			return misc.PutTxJson(tx, s.Cfg.Bucket.Match, m.Id, &m)
		}); err != nil {
			misc.AbortWithErr(c, 500, err)
			return
		}
		c.JSON(200, &m)
	}
}

func getMatches(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := auth.GetPrincipal(c)
		status := c.Query("status")
		month := c.Query("month")
		offset, _ := strconv.Atoi(c.Query("offset"))
		limit, _ := strconv.Atoi(c.Query("limit"))

		matches := []*common.BrandMatch{}
		s.db.View(func(tx *bolt.Tx) error {
			return misc.GetBucket(tx, s.Cfg.Bucket.Match).ForEach(func(k, v []byte) error {
				var m common.BrandMatch
				if json.Unmarshal(v, &m) != nil || m.CreatorId != p.Id {
					return nil
				}
				if status != "" && m.Status != status {
					return nil
				}
				if month != "" && m.Month != month {
					return nil
				}
				matches = append(matches, &m)
				return nil
			})
		})
		sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })

		if offset > 0 {
			if offset > len(matches) {
				offset = len(matches)
			}
			matches = matches[offset:]
		}
		if limit > 0 && limit < len(matches) {
			matches = matches[:limit]
		}
		c.JSON(200, matches)
	}
}

type matchStatusRequest struct {
	Status string `json:"status"`
}

func setMatchStatus(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := auth.GetPrincipal(c)

		var req matchStatusRequest
		if err := misc.BindJSON(c, &req); err != nil {
			misc.AbortWithErr(c, 400, err)
			return
		}
		if !common.IsValidMatchStatus(req.Status) {
			abortWithErr(c, common.ErrValidation("unknown match status %q", req.Status))
			return
		}

		var m common.BrandMatch
		if err := s.db.Update(func(tx *bolt.Tx) error {
			if misc.GetTxJson(tx, s.Cfg.Bucket.Match, c.Param("id"), &m) != nil || m.CreatorId != p.Id {
				return common.ErrNotFound("brand match")
			}
			if !common.CanAdvanceMatch(m.Status, req.Status) {
				return &common.ConflictError{Msg: "match status can only move forward from " + m.Status}
			}
			m.Status = req.Status
			return misc.PutTxJson(tx, s.Cfg.Bucket.Match, m.Id, &m)
		}); err != nil {
			abortWithErr(c, err)
			return
		}
		c.JSON(200, &m)
	}
}

///////// Suggestion pipeline /////////

type suggestRequest struct {
	Count int    `json:"count,omitempty"`
	Niche string `json:"niche,omitempty"`

	// Brand names the caller wants excluded on top of match history
	ExcludeBrands []string `json:"excludeBrands,omitempty"`
}

// suggestBrands is the lightweight path: a bare niche and no composite
// scoring, the provider's own confidence is taken at face value.
func suggestBrands(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := auth.GetPrincipal(c)

		var req suggestRequest
		if err := misc.BindJSON(c, &req); err != nil {
			misc.AbortWithErr(c, 400, err)
			return
		}
		if req.Count == 0 {
			req.Count = 3
		}
		if req.Niche == "" {
			// Fall back to the profile's top niche when one exists
			if prof := profileOf(s, p); prof != nil && len(prof.TopNiches) > 0 {
				req.Niche = prof.TopNiches[0]
			}
		}

		res, err := s.Matches.Generate(p, nil, req.Niche, req.Count, req.ExcludeBrands)
		if err != nil {
			abortWithErr(c, err)
			return
		}
		c.JSON(200, res)
	}
}

// generateMatches is the full monthly path: requires an onboarded
// profile and gates candidates on the composite fit score.
func generateMatches(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := auth.GetPrincipal(c)

		var req suggestRequest
		if err := misc.BindJSON(c, &req); err != nil {
			misc.AbortWithErr(c, 400, err)
			return
		}
		if req.Count == 0 {
			req.Count = 5
		}

		prof := profileOf(s, p)
		if prof == nil {
			abortWithErr(c, common.ErrValidation("complete your creator profile before generating monthly matches"))
			return
		}

		res, err := s.Matches.Generate(p, prof, "", req.Count, req.ExcludeBrands)
		if err != nil {
			abortWithErr(c, err)
			return
		}
		c.JSON(200, res)
	}
}
