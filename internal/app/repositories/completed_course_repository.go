package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/db"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/dberrors"
	"github.com/yigit/admissions/internal/pkg/logger"
)

// CompletedCourseRepository handles the user to course completion links
type CompletedCourseRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewCompletedCourseRepository creates a new CompletedCourseRepository
func NewCompletedCourseRepository(q db.Querier) *CompletedCourseRepository {
	return &CompletedCourseRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListByOwner returns the user's completed courses joined with course names
func (r *CompletedCourseRepository) ListByOwner(ctx context.Context, userID int64) ([]*models.CompletedCourse, error) {
	sql, args, err := r.sb.Select("cc.id", "cc.user_id", "cc.course_id", "cc.marks", "cc.term_of_completion", "c.name").
		From("completed_courses cc").
		Join("courses c ON c.id = cc.course_id").
		Where(squirrel.Eq{"cc.user_id": userID}).
		OrderBy("cc.id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list completed courses SQL")
		return nil, fmt.Errorf("failed to build list completed courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing list completed courses query")
		return nil, fmt.Errorf("error querying completed courses: %w", err)
	}
	defer rows.Close()

	completed := []*models.CompletedCourse{}
	for rows.Next() {
		cc := &models.CompletedCourse{}
		if err := rows.Scan(&cc.ID, &cc.UserID, &cc.CourseID, &cc.Marks, &cc.TermOfCompletion, &cc.CourseName); err != nil {
			logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning completed course row")
			return nil, fmt.Errorf("error scanning completed course row: %w", err)
		}
		completed = append(completed, cc)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating completed course rows")
		return nil, fmt.Errorf("error iterating completed course rows: %w", err)
	}

	return completed, nil
}

// Insert records a completion. A repeated (user, course) pair is a conflict
// and an unknown course is reported as not found.
func (r *CompletedCourseRepository) Insert(ctx context.Context, cc *models.CompletedCourse) (int64, error) {
	sql, args, err := r.sb.Insert("completed_courses").
		Columns("user_id", "course_id", "marks", "term_of_completion").
		Values(cc.UserID, cc.CourseID, cc.Marks, cc.TermOfCompletion).
		Suffix("ON CONFLICT (user_id, course_id) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert completed course SQL")
		return 0, fmt.Errorf("failed to build insert completed course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&cc.ID); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return 0, apperrors.ErrCompletedCourseExists
		case dberrors.IsForeignKeyViolation(err, "completed_courses_course_id_fkey"):
			return 0, apperrors.ErrCourseNotFound
		case dberrors.IsForeignKeyViolation(err):
			return 0, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", cc.UserID).Int64("courseID", cc.CourseID).Msg("Error executing insert completed course query")
		return 0, fmt.Errorf("error creating completed course: %w", err)
	}
	return cc.ID, nil
}

// Update replaces marks and term of the (user, course) completion
func (r *CompletedCourseRepository) Update(ctx context.Context, cc *models.CompletedCourse) error {
	sql, args, err := r.sb.Update("completed_courses").
		Set("marks", cc.Marks).
		Set("term_of_completion", cc.TermOfCompletion).
		Where(squirrel.Eq{"user_id": cc.UserID, "course_id": cc.CourseID}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update completed course SQL")
		return fmt.Errorf("failed to build update completed course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&cc.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrCompletedCourseNotFound
		}
		logger.Error().Err(err).Int64("userID", cc.UserID).Int64("courseID", cc.CourseID).Msg("Error executing update completed course query")
		return fmt.Errorf("error updating completed course: %w", err)
	}
	return nil
}

// Delete removes the (user, course) completion
func (r *CompletedCourseRepository) Delete(ctx context.Context, userID, courseID int64) error {
	sql, args, err := r.sb.Delete("completed_courses").
		Where(squirrel.Eq{"user_id": userID, "course_id": courseID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete completed course SQL")
		return fmt.Errorf("failed to build delete completed course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Int64("courseID", courseID).Msg("Error executing delete completed course query")
		return fmt.Errorf("error deleting completed course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCompletedCourseNotFound
	}
	return nil
}
