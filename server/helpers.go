package server

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/manaiger/manaiger/internal/common"
	"github.com/manaiger/manaiger/misc"
)

// errCode maps the domain error taxonomy onto HTTP statuses. Anything
// untyped is treated as an internal failure.
func errCode(err error) int {
	var (
		ve *common.ValidationError
		nf *common.NotFoundError
		it *common.InvalidTransitionError
		qe *common.QuotaExceededError
		ce *common.ConflictError
		xe *common.ExternalError
	)
	switch {
	case errors.As(err, &ve):
		return 400
	case errors.As(err, &nf):
		return 404
	case errors.As(err, &it):
		return 422
	case errors.As(err, &qe):
		return 402
	case errors.As(err, &ce):
		return 409
	case errors.As(err, &xe):
		return 502
	}
	return 500
}

func abortWithErr(c *gin.Context, err error) {
	misc.AbortWithErr(c, errCode(err), err)
}
