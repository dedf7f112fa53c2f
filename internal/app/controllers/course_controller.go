package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/middleware"
	"github.com/yigit/admissions/internal/pkg/helpers"
)

// CourseService manages the course catalog
type CourseService interface {
	CreateCourse(ctx context.Context, course *models.Course) error
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	ListCourses(ctx context.Context, page, size int) ([]*models.Course, int64, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id int64) error
}

// CourseController handles the admin course catalog
type CourseController struct {
	courseService CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// courseID finds the id in the path, the query or the JSON body
func (cc *CourseController) courseID(c *gin.Context) (int64, bool, error) {
	id, found, err := pathOrQueryID(c, "id")
	if found || err != nil {
		return id, found, err
	}
	var key dto.CourseKey
	if err := c.ShouldBindBodyWith(&key, binding.JSON); err == nil && key.ID != 0 {
		return key.ID, true, nil
	}
	return 0, false, nil
}

// GetCourse returns one course, or a page of the catalog when no id is given
// @Summary Get or list catalog courses
// @Tags courses
// @Produce json
// @Security TokenAuth
// @Param id query int false "Course ID"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.CourseResponse
// @Success 200 {object} dto.PaginatedResponse{items=[]dto.CourseResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/course [get]
func (cc *CourseController) GetCourse(c *gin.Context) {
	id, found, err := cc.courseID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	if !found {
		cc.listCourses(c)
		return
	}

	course, err := cc.courseService.GetCourse(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromCourse(course))
}

func (cc *CourseController) listCourses(c *gin.Context) {
	page, size := helpers.ParsePaginationParams(c)
	courses, total, err := cc.courseService.ListCourses(c.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PaginatedResponse{
		Items:      dto.FromCourses(courses),
		Pagination: helpers.NewPaginationInfo(total, page, size),
	})
}

// CreateCourse adds a course to the catalog
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body dto.CreateCourseRequest true "Course"
// @Success 200 {object} dto.SuccessResponse "Course Added"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Name or code already used"
// @Router /admin/course [post]
func (cc *CourseController) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if !bindBody(c, &req) {
		return
	}

	if err := cc.courseService.CreateCourse(c.Request.Context(), req.ToModel()); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse("Course Added"))
}

// UpdateCourse replaces every field of a course
// @Summary Replace a course
// @Tags courses
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body dto.UpdateCourseRequest true "Course"
// @Success 200 {object} dto.SuccessResponse "Course Updated"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /admin/course [put]
func (cc *CourseController) UpdateCourse(c *gin.Context) {
	var req dto.UpdateCourseRequest
	if !bindBody(c, &req) {
		return
	}

	id, found, err := pathOrQueryID(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	if !found {
		id = req.ID
	}

	if err := cc.courseService.UpdateCourse(c.Request.Context(), req.ToModel(id)); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse("Course Updated"))
}

// DeleteCourse removes a course no completion refers to
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security TokenAuth
// @Param id query int false "Course ID"
// @Success 200 {object} dto.SuccessResponse "Course deleted"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Course in use"
// @Router /admin/course [delete]
func (cc *CourseController) DeleteCourse(c *gin.Context) {
	id, _, err := cc.courseID(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := cc.courseService.DeleteCourse(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse("Course deleted"))
}
