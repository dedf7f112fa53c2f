package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/admissions/internal/app/auth"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/middleware"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

// RecordService manages one kind of singleton record
type RecordService[P models.Record] interface {
	Kind() models.RecordKind
	Get(ctx context.Context, ownerID int64) (P, error)
	Create(ctx context.Context, ownerID int64, rec P) error
	Update(ctx context.Context, ownerID int64, rec P) error
	Delete(ctx context.Context, ownerID int64) error
}

// RecordController serves get/create/update/delete of one record kind in
// one access mode. Req is the request payload and Resp the response body.
type RecordController[P models.Record, Req any, Resp any] struct {
	service RecordService[P]
	guard   ScopeResolver
	mode    auth.AccessMode
	decode  func(*Req) (P, error)
	encode  func(P) Resp
}

// NewRecordController creates a new RecordController
func NewRecordController[P models.Record, Req any, Resp any](
	service RecordService[P],
	guard ScopeResolver,
	mode auth.AccessMode,
	decode func(*Req) (P, error),
	encode func(P) Resp,
) *RecordController[P, Req, Resp] {
	return &RecordController[P, Req, Resp]{
		service: service,
		guard:   guard,
		mode:    mode,
		decode:  decode,
		encode:  encode,
	}
}

func (h *RecordController[P, Req, Resp]) message(action string) dto.SuccessResponse {
	return dto.NewSuccessResponse(h.service.Kind().Label() + " " + action)
}

func (h *RecordController[P, Req, Resp]) bind(c *gin.Context) (P, bool) {
	var zero P
	var req Req
	if !bindBody(c, &req) {
		return zero, false
	}
	rec, err := h.decode(&req)
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError(err.Error()))
		return zero, false
	}
	return rec, true
}

// Get returns the scoped record
// @Summary Get a record
// @Tags records
// @Produce json
// @Security TokenAuth
// @Param user_id query int false "Target user (admin endpoints)"
// @Success 200 {object} dto.StudentResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /student [get]
func (h *RecordController[P, Req, Resp]) Get(c *gin.Context) {
	ownerID, ok := resolveOwner(c, h.guard, h.mode)
	if !ok {
		return
	}

	rec, err := h.service.Get(c.Request.Context(), ownerID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.encode(rec))
}

// Create stores the scoped record when none exists
// @Summary Create a record
// @Tags records
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body dto.StudentRequest true "Record"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Record already exists"
// @Router /student [post]
func (h *RecordController[P, Req, Resp]) Create(c *gin.Context) {
	ownerID, ok := resolveOwner(c, h.guard, h.mode)
	if !ok {
		return
	}
	rec, ok := h.bind(c)
	if !ok {
		return
	}

	if err := h.service.Create(c.Request.Context(), ownerID, rec); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.message("added"))
}

// Update replaces every field of the scoped record
// @Summary Replace a record
// @Tags records
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body dto.StudentRequest true "Record"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /student [put]
func (h *RecordController[P, Req, Resp]) Update(c *gin.Context) {
	ownerID, ok := resolveOwner(c, h.guard, h.mode)
	if !ok {
		return
	}
	rec, ok := h.bind(c)
	if !ok {
		return
	}

	if err := h.service.Update(c.Request.Context(), ownerID, rec); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.message("updated"))
}

// Delete removes the scoped record
// @Summary Delete a record
// @Tags records
// @Produce json
// @Security TokenAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /student [delete]
func (h *RecordController[P, Req, Resp]) Delete(c *gin.Context) {
	ownerID, ok := resolveOwner(c, h.guard, h.mode)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.message("deleted"))
}
