package controllers

import (
	"errors"
	"strconv"

	"catering/pkg/resp"
	"catering/rules"
	"catering/services"
	"catering/utils"

	"github.com/gin-gonic/gin"
)

// fail maps service errors onto the response envelope.
func fail(c *gin.Context, err error) {
	var (
		verr *rules.ValidationError
		perr *rules.PermissionError
		aerr *rules.AdvisoryError
	)
	switch {
	case errors.As(err, &verr):
		resp.Invalid(c, "validation failed", verr.Issues)
	case errors.As(err, &perr):
		resp.Forbidden(c, perr.Reason)
	case errors.As(err, &aerr):
		resp.Conflict(c, "confirmation required", aerr.Warnings)
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, "not found")
	case errors.Is(err, rules.ErrDataFetch):
		resp.BadGateway(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}

func callerOf(c *gin.Context) services.Caller {
	return services.Caller{UserID: utils.CurrentUserID(c), Role: utils.CurrentRole(c)}
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}
