package server

import (
	"log"

	"github.com/boltdb/bolt"
	"github.com/gin-gonic/gin"
	"github.com/missionMeteora/iodb"

	"github.com/manaiger/manaiger/config"
	"github.com/manaiger/manaiger/internal/analytics"
	"github.com/manaiger/manaiger/internal/auth"
	"github.com/manaiger/manaiger/internal/dealflow"
	"github.com/manaiger/manaiger/internal/invoicing"
	"github.com/manaiger/manaiger/internal/matching"
	"github.com/manaiger/manaiger/misc"
	"github.com/manaiger/manaiger/platforms/openai"
)

type Server struct {
	Cfg *config.Config

	db    *bolt.DB
	cache *iodb.DB
	r     *gin.Engine

	auth *auth.Auth
	ai   *openai.Client

	Deals     *dealflow.Engine
	Matches   *matching.Pipeline
	Invoices  *invoicing.Service
	Analytics *analytics.Service
}

func New(cfg *config.Config, r *gin.Engine) (*Server, error) {
	db := misc.OpenDB(cfg.DBPath, cfg.DBName)

	var cache *iodb.DB
	if cfg.CacheDBPath != "" {
		var err error
		if cache, err = iodb.New(cfg.CacheDBPath, nil); err != nil {
			return nil, err
		}
	}

	ai := openai.New(cfg)
	srv := &Server{
		Cfg:       cfg,
		db:        db,
		cache:     cache,
		r:         r,
		auth:      auth.New(db, cfg),
		ai:        ai,
		Deals:     dealflow.New(db, cfg),
		Matches:   matching.New(db, cfg, ai),
		Invoices:  invoicing.New(db, cfg),
		Analytics: analytics.New(cache, cfg),
	}

	if err := srv.initializeDB(); err != nil {
		return nil, err
	}

	srv.initializeRoutes(r)
	return srv, nil
}

func (s *Server) initializeDB() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range s.Cfg.Bucket.All {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return err
			}
		}
		for _, bucket := range s.Cfg.Bucket.All {
			if bucket == "index" {
				continue
			}
			if err := misc.InitIndex(tx, bucket, 1); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Server) initializeRoutes(r *gin.Engine) {
	api := r.Group(s.Cfg.APIPath)

	api.POST("/signUp", signUp(s))

	verified := api.Group("", s.auth.VerifyUser())

	verified.GET("/profile", getProfile(s))
	verified.PUT("/profile", putProfile(s))

	verified.POST("/deals", createDeal(s))
	verified.GET("/deals", getDeals(s))
	verified.GET("/deals/:id", getDeal(s))
	verified.POST("/deals/:id/transition", transitionDeal(s))
	verified.POST("/deals/:id/mark-negotiation", markNegotiation(s))
	verified.POST("/deals/:id/lock-agreement", lockAgreement(s))
	verified.POST("/deals/:id/reopen-negotiation", reopenNegotiation(s))
	verified.GET("/deals/:id/activity", getDealActivity(s))
	verified.POST("/deals/:id/conversations", logConversation(s))
	verified.GET("/deals/:id/conversations", getConversations(s))
	verified.POST("/deals/:id/suggest-reply", suggestReply(s))
	verified.POST("/deals/:id/invoice", createDealInvoice(s))

	verified.POST("/brand-matches", createMatch(s))
	verified.GET("/brand-matches", getMatches(s))
	verified.PATCH("/brand-matches/:id/status", setMatchStatus(s))
	verified.POST("/brand-matches/:id/outreach", sendOutreach(s))
	verified.POST("/suggest-brands-from-my-niches", suggestBrands(s))
	verified.POST("/generate-monthly-brand-matches", generateMatches(s))

	verified.POST("/invoices", createInvoice(s))
	verified.GET("/invoices", getInvoices(s))
	verified.GET("/invoices/:id", getInvoice(s))
	verified.POST("/invoices/:id/paid", markInvoicePaid(s))
	verified.POST("/invoices/:id/void", voidInvoice(s))

	verified.GET("/analytics/:platform", getAnalytics(s))
}

func (s *Server) Run() error {
	return s.r.Run(s.Cfg.Host + ":" + s.Cfg.Port)
}

func (s *Server) Close() error {
	if s.cache != nil {
		s.cache.Close()
	}
	if s.Cfg.Loggers != nil {
		s.Cfg.Loggers.Close()
	}
	return s.db.Close()
}

// Alert surfaces an operational problem without failing the request.
func (s *Server) Alert(msg string, err error) {
	log.Println("ALERT:", msg, err)
}
