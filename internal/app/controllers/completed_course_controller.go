package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/yigit/admissions/internal/app/auth"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/middleware"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

// CompletedCourseService manages the courses a user has completed
type CompletedCourseService interface {
	List(ctx context.Context, ownerID int64) ([]*models.CompletedCourse, error)
	Create(ctx context.Context, ownerID int64, cc *models.CompletedCourse) error
	Update(ctx context.Context, ownerID int64, cc *models.CompletedCourse) error
	Delete(ctx context.Context, ownerID, courseID int64) error
}

// CompletedCourseController handles completed courses in one access mode
type CompletedCourseController struct {
	service CompletedCourseService
	guard   ScopeResolver
	mode    auth.AccessMode
}

// NewCompletedCourseController creates a new CompletedCourseController
func NewCompletedCourseController(service CompletedCourseService, guard ScopeResolver, mode auth.AccessMode) *CompletedCourseController {
	return &CompletedCourseController{
		service: service,
		guard:   guard,
		mode:    mode,
	}
}

// Get returns the scoped user's completions joined with course names
// @Summary List completed courses
// @Tags completed-courses
// @Produce json
// @Security TokenAuth
// @Success 200 {array} dto.CompletedCourseResponse
// @Failure 404 {object} dto.ErrorResponse "No completed courses"
// @Router /completedcourse [get]
func (h *CompletedCourseController) Get(c *gin.Context) {
	ownerID, ok := resolveOwner(c, h.guard, h.mode)
	if !ok {
		return
	}

	list, err := h.service.List(c.Request.Context(), ownerID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromCompletedCourses(list))
}

// Create records a completed course
// @Summary Add a completed course
// @Tags completed-courses
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body dto.CompletedCourseRequest true "Completion"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course already completed"
// @Router /completedcourse [post]
func (h *CompletedCourseController) Create(c *gin.Context) {
	ownerID, ok := resolveOwner(c, h.guard, h.mode)
	if !ok {
		return
	}
	var req dto.CompletedCourseRequest
	if !bindBody(c, &req) {
		return
	}

	if err := h.service.Create(c.Request.Context(), ownerID, req.ToModel(ownerID)); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse("completed course added"))
}

// Update replaces marks and term of a completion
// @Summary Replace a completed course
// @Tags completed-courses
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body dto.CompletedCourseRequest true "Completion"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Course not completed"
// @Router /completedcourse [put]
func (h *CompletedCourseController) Update(c *gin.Context) {
	ownerID, ok := resolveOwner(c, h.guard, h.mode)
	if !ok {
		return
	}
	var req dto.CompletedCourseRequest
	if !bindBody(c, &req) {
		return
	}

	if err := h.service.Update(c.Request.Context(), ownerID, req.ToModel(ownerID)); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse("completed course updated"))
}

// Delete removes a completion identified by course_id
// @Summary Delete a completed course
// @Tags completed-courses
// @Produce json
// @Security TokenAuth
// @Param course_id query int false "Course ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Course not completed"
// @Router /completedcourse [delete]
func (h *CompletedCourseController) Delete(c *gin.Context) {
	ownerID, ok := resolveOwner(c, h.guard, h.mode)
	if !ok {
		return
	}
	courseID, ok := completedCourseKey(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID, courseID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse("completed course deleted"))
}

func completedCourseKey(c *gin.Context) (int64, bool) {
	var key dto.CompletedCourseKey
	var err error
	if c.Query("course_id") != "" {
		err = c.ShouldBindQuery(&key)
	} else {
		err = c.ShouldBindBodyWith(&key, binding.JSON)
	}

	switch {
	case errors.Is(err, io.EOF):
		middleware.HandleAPIError(c, apperrors.NewValidationError("course_id is required"))
		return 0, false
	case err != nil:
		middleware.HandleBindError(c, err)
		return 0, false
	}
	return key.CourseID, true
}
