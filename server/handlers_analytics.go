package server

import (
	"github.com/gin-gonic/gin"

	"github.com/manaiger/manaiger/internal/auth"
	"github.com/manaiger/manaiger/internal/common"
	"github.com/manaiger/manaiger/misc"
)

// getAnalytics serves channel stats for a linked platform. The handle
// comes from the creator profile unless overridden via ?handle=.
func getAnalytics(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := auth.GetPrincipal(c)

		var platform misc.Platform
		switch c.Param("platform") {
		case "youtube":
			platform = misc.PlatformYouTube
		case "twitch":
			platform = misc.PlatformTwitch
		default:
			abortWithErr(c, common.ErrValidation("unsupported platform %q", c.Param("platform")))
			return
		}

		handle := c.Query("handle")
		if handle == "" {
			if prof := profileOf(s, p); prof != nil {
				handle = prof.Handles[string(platform)]
			}
		}

		snap, err := s.Analytics.Get(platform, p.Id, handle)
		if err != nil {
			abortWithErr(c, err)
			return
		}
		c.JSON(200, snap)
	}
}
