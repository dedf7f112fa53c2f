package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/metrics"
)

const completedCourseKind = "completedcourse"

// CompletedCourseService manages the completions of a resolved owner
type CompletedCourseService struct {
	completed CompletedCourseStore
	courses   CourseStore
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewCompletedCourseService creates a new CompletedCourseService
func NewCompletedCourseService(completed CompletedCourseStore, courses CourseStore, m *metrics.Metrics, logger zerolog.Logger) *CompletedCourseService {
	return &CompletedCourseService{
		completed: completed,
		courses:   courses,
		metrics:   m,
		logger:    logger,
	}
}

// List returns the owner's completions. Having none is reported as not found.
func (s *CompletedCourseService) List(ctx context.Context, ownerID int64) ([]*models.CompletedCourse, error) {
	list, err := s.completed.ListByOwner(ctx, ownerID)
	if err == nil && len(list) == 0 {
		err = apperrors.ErrCompletedCoursesEmpty
	}
	s.metrics.RecordOperation(completedCourseKind, "get", outcome(err))
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Create records a completion of an existing course
func (s *CompletedCourseService) Create(ctx context.Context, ownerID int64, cc *models.CompletedCourse) (err error) {
	defer func() { s.metrics.RecordOperation(completedCourseKind, "create", outcome(err)) }()

	exists, err := s.courses.CourseExists(ctx, cc.CourseID)
	if err != nil {
		return fmt.Errorf("error checking course: %w", err)
	}
	if !exists {
		return apperrors.ErrCourseNotFound
	}

	cc.UserID = ownerID
	if _, err := s.completed.Insert(ctx, cc); err != nil {
		return err
	}
	s.logger.Info().Int64("userID", ownerID).Int64("courseID", cc.CourseID).Msg("Completed course recorded")
	return nil
}

// Update replaces marks and term of an existing completion
func (s *CompletedCourseService) Update(ctx context.Context, ownerID int64, cc *models.CompletedCourse) error {
	cc.UserID = ownerID
	err := s.completed.Update(ctx, cc)
	s.metrics.RecordOperation(completedCourseKind, "update", outcome(err))
	return err
}

// Delete removes the completion of courseID
func (s *CompletedCourseService) Delete(ctx context.Context, ownerID, courseID int64) error {
	err := s.completed.Delete(ctx, ownerID, courseID)
	s.metrics.RecordOperation(completedCourseKind, "delete", outcome(err))
	return err
}
