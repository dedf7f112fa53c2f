package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/logger"
)

// HandleAPIError maps an application error to a status and error body.
// Unknown errors are logged and reported as 500 without their text.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// before not found: a failed login may also wrap ErrUserNotFound
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, apperrors.Message(err), err)
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "token expired", err)
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "invalid token", err)
	case errors.Is(err, apperrors.ErrUnauthenticated):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, apperrors.Message(err), err)
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, apperrors.Message(err), err)
	case errors.Is(err, apperrors.ErrValidationFailed):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, apperrors.Message(err), err)
	case errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeBadRequest, apperrors.Message(err), err)
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, apperrors.Message(err), err)
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, apperrors.Message(err), err)
	default:
		logger.Error().Err(err).Str("method", c.Request.Method).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "internal server error", nil)
	}
}

// HandleBindError reports a request body or query that failed to bind
func HandleBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := FormatValidationError(verrs)
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, firstMessage(verrs)).WithFields(fields))
		return
	}
	logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Malformed request payload")
	respondError(c, http.StatusBadRequest, dto.ErrorCodeBadRequest, "invalid request body", nil)
}

// respondError writes the error body. A code carried by the error overrides
// the category code.
func respondError(c *gin.Context, status int, code dto.ErrorCode, message string, err error) {
	if own := apperrors.Code(err); own != "" {
		code = dto.ErrorCode(own)
	}
	c.JSON(status, dto.NewErrorResponse(code, message))
}
