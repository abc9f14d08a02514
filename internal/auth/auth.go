package auth

import (
	"errors"
	"time"

	"github.com/boltdb/bolt"
	"github.com/gin-gonic/gin"

	"github.com/manaiger/manaiger/config"
	"github.com/manaiger/manaiger/misc"
)

const (
	ApiKeyHeader = `x-apikey`

	principalKey = `principal`
)

var (
	ErrInvalidAPIKey = errors.New("invalid or missing api key")
	ErrInvalidUserID = errors.New("invalid user id")
	ErrEmailExists   = errors.New("a user with that email already exists")
)

type Auth struct {
	db  *bolt.DB
	cfg *config.Config
}

func New(db *bolt.DB, cfg *config.Config) *Auth {
	return &Auth{
		db:  db,
		cfg: cfg,
	}
}

// User is an account holder; every user is a creator in this product.
type User struct {
	Id    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`

	// Subscription tier: free, starter, pro, vip
	Plan string `json:"plan,omitempty"`

	APIKey string `json:"apiKey,omitempty"`

	Created int64 `json:"created,omitempty"`
}

// Principal is the authenticated identity passed explicitly into every
// core operation; ownership and quota checks key off of it.
type Principal struct {
	Id    string
	Plan  string
	Name  string
	Email string
}

func (u *User) Principal() *Principal {
	actor := u.Name
	if actor == "" {
		actor = u.Email
	}
	return &Principal{Id: u.Id, Plan: u.Plan, Name: actor, Email: u.Email}
}

// SignUp creates the user and its api key mapping in one transaction.
func (a *Auth) SignUp(name, email, plan string) (*User, error) {
	email = misc.TrimEmail(email)
	if email == "" {
		return nil, ErrInvalidUserID
	}

	u := &User{
		Name:    name,
		Email:   email,
		Plan:    plan,
		APIKey:  misc.PseudoUUID() + misc.PseudoUUID(),
		Created: time.Now().Unix(),
	}

	if err := a.db.Update(func(tx *bolt.Tx) (err error) {
		var existing User
		if misc.GetTxJson(tx, a.cfg.Bucket.User, email, &existing) == nil {
			return ErrEmailExists
		}
		if u.Id, err = misc.GetNextIndex(tx, a.cfg.Bucket.User); err != nil {
			return
		}
		if err = misc.PutTxJson(tx, a.cfg.Bucket.User, u.Id, u); err != nil {
			return
		}
		// Email -> id mapping shares the user bucket, same as the api keys
		// get their own bucket keyed by the raw key
		if err = misc.PutTxJson(tx, a.cfg.Bucket.User, email, &User{Id: u.Id}); err != nil {
			return
		}
		return misc.PutTxJson(tx, a.cfg.Bucket.ApiKey, u.APIKey, u.Id)
	}); err != nil {
		return nil, err
	}

	return u, nil
}

func (a *Auth) GetUserTx(tx *bolt.Tx, id string) *User {
	var u User
	if misc.GetTxJson(tx, a.cfg.Bucket.User, id, &u) == nil && u.Id != "" {
		return &u
	}
	return nil
}

func (a *Auth) GetUser(id string) (u *User) {
	a.db.View(func(tx *bolt.Tx) error {
		u = a.GetUserTx(tx, id)
		return nil
	})
	return
}

func (a *Auth) getUserByKeyTx(tx *bolt.Tx, key string) *User {
	if key == "" {
		return nil
	}
	var id string
	if misc.GetTxJson(tx, a.cfg.Bucket.ApiKey, key, &id) != nil || id == "" {
		return nil
	}
	return a.GetUserTx(tx, id)
}

// VerifyUser resolves the x-apikey header into a Principal and aborts
// with a 401 when it can't.
func (a *Auth) VerifyUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var u *User
		a.db.View(func(tx *bolt.Tx) error {
			u = a.getUserByKeyTx(tx, c.Request.Header.Get(ApiKeyHeader))
			return nil
		})
		if u == nil {
			misc.AbortWithErr(c, 401, ErrInvalidAPIKey)
			return
		}
		c.Set(principalKey, u.Principal())
	}
}

// GetPrincipal returns the principal set by VerifyUser; nil outside of an
// authenticated request.
func GetPrincipal(c *gin.Context) *Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(*Principal); ok {
			return p
		}
	}
	return nil
}
