package controllers

import (
	"strconv"

	"github.com/futureintern/platform/internal/app/auth"
	"github.com/futureintern/platform/internal/middleware"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
)

// Routes behind JWTAuth always carry an identity; reaching this means the
// route was registered without it.
var errUnauthenticated = apperrors.ErrTokenNotFound

// parseIDParam reads a positive integer path parameter. It writes the error
// response itself and returns false when the value is unusable.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(name, "must be a positive integer"))
		return 0, false
	}
	return id, true
}

func requireActor(ctx *gin.Context) (auth.Actor, bool) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, errUnauthenticated)
	}
	return actor, ok
}
