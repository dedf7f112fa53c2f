package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/helpers"
	"github.com/yigit/admissions/internal/pkg/metrics"
)

const courseKind = "course"

// CourseService manages the course catalog
type CourseService struct {
	courses CourseStore
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courses CourseStore, m *metrics.Metrics, logger zerolog.Logger) *CourseService {
	return &CourseService{
		courses: courses,
		metrics: m,
		logger:  logger,
	}
}

func validateCourse(course *models.Course, requireCode bool) error {
	course.Name = strings.TrimSpace(course.Name)
	if course.Name == "" {
		return apperrors.NewValidationError("name is required")
	}
	if requireCode && (course.Code == nil || strings.TrimSpace(*course.Code) == "") {
		return apperrors.NewValidationError("code is required")
	}
	return nil
}

func validateCourseID(id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("id is required")
	}
	return nil
}

// CreateCourse adds a course whose name and code are both unused
func (s *CourseService) CreateCourse(ctx context.Context, course *models.Course) (err error) {
	defer func() { s.metrics.RecordOperation(courseKind, "create", outcome(err)) }()

	if err := validateCourse(course, true); err != nil {
		return err
	}

	exists, err := s.courses.CourseExistsByNameOrCode(ctx, course.Name, course.Code, 0)
	if err != nil {
		return fmt.Errorf("error checking course uniqueness: %w", err)
	}
	if exists {
		return apperrors.ErrCourseAlreadyExists
	}

	if _, err := s.courses.CreateCourse(ctx, course); err != nil {
		return err
	}
	s.logger.Info().Int64("courseID", course.ID).Str("name", course.Name).Msg("Course created")
	return nil
}

// GetCourse returns a course by id
func (s *CourseService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	if err := validateCourseID(id); err != nil {
		return nil, err
	}
	course, err := s.courses.GetCourseByID(ctx, id)
	s.metrics.RecordOperation(courseKind, "get", outcome(err))
	return course, err
}

// ListCourses returns one 1-based page of the catalog and the total count
func (s *CourseService) ListCourses(ctx context.Context, page, size int) ([]*models.Course, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	courses, total, err := s.courses.ListCourses(ctx, offset, limit)
	s.metrics.RecordOperation(courseKind, "list", outcome(err))
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// UpdateCourse replaces every field of an existing course
func (s *CourseService) UpdateCourse(ctx context.Context, course *models.Course) (err error) {
	defer func() { s.metrics.RecordOperation(courseKind, "update", outcome(err)) }()

	if err := validateCourseID(course.ID); err != nil {
		return err
	}
	if err := validateCourse(course, false); err != nil {
		return err
	}

	exists, err := s.courses.CourseExists(ctx, course.ID)
	if err != nil {
		return fmt.Errorf("error checking course: %w", err)
	}
	if !exists {
		return apperrors.ErrCourseNotFound
	}

	taken, err := s.courses.CourseExistsByNameOrCode(ctx, course.Name, course.Code, course.ID)
	if err != nil {
		return fmt.Errorf("error checking course uniqueness: %w", err)
	}
	if taken {
		return apperrors.ErrCourseAlreadyExists
	}

	if err := s.courses.UpdateCourse(ctx, course); err != nil {
		return err
	}
	s.logger.Info().Int64("courseID", course.ID).Msg("Course updated")
	return nil
}

// DeleteCourse removes a course that no completion references
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	if err := validateCourseID(id); err != nil {
		return err
	}
	err := s.courses.DeleteCourse(ctx, id)
	s.metrics.RecordOperation(courseKind, "delete", outcome(err))
	if err == nil {
		s.logger.Info().Int64("courseID", id).Msg("Course deleted")
	}
	return err
}
