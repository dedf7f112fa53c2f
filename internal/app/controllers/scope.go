package controllers

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/yigit/admissions/internal/app/auth"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/middleware"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

// ScopeResolver authorizes a caller and yields the owner rows are scoped to
type ScopeResolver interface {
	ResolveScope(ctx context.Context, caller *models.Identity, mode auth.AccessMode, target int64) (int64, error)
}

// resolveOwner writes the error response itself and reports false on failure
func resolveOwner(c *gin.Context, guard ScopeResolver, mode auth.AccessMode) (int64, bool) {
	identity, _ := middleware.IdentityFromContext(c)

	var target int64
	if mode == auth.AccessAdminMirror {
		target = targetUserID(c)
	}

	ownerID, err := guard.ResolveScope(c.Request.Context(), identity, mode, target)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return 0, false
	}
	return ownerID, true
}

// targetUserID reads user_id from the query, then from the JSON body
func targetUserID(c *gin.Context) int64 {
	var target dto.TargetUser
	if err := c.ShouldBindQuery(&target); err == nil && target.UserID > 0 {
		return target.UserID
	}
	if err := c.ShouldBindBodyWith(&target, binding.JSON); err == nil {
		return target.UserID
	}
	return 0
}

// bindBody binds the JSON body so that it can be read again by later binds
func bindBody(c *gin.Context, obj any) bool {
	if err := c.ShouldBindBodyWith(obj, binding.JSON); err != nil {
		if errors.Is(err, io.EOF) {
			middleware.HandleAPIError(c, apperrors.NewBadRequestError("request body is required"))
			return false
		}
		middleware.HandleBindError(c, err)
		return false
	}
	return true
}

// pathOrQueryID reads a positive integer id from the path parameter or the
// query string. found is false when neither carries one.
func pathOrQueryID(c *gin.Context, name string) (id int64, found bool, err error) {
	raw := c.Param(name)
	if raw == "" {
		raw = c.Query(name)
	}
	if raw == "" {
		return 0, false, nil
	}
	id, err = strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, true, apperrors.NewValidationError(name + " must be a positive integer")
	}
	return id, true, nil
}
