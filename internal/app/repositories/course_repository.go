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

var courseColumns = []string{"id", "name", "code", "pre_requisite", "level"}

// CourseRepository handles catalog database operations
type CourseRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(q db.Querier) *CourseRepository {
	return &CourseRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(&course.ID, &course.Name, &course.Code, &course.PreRequisite, &course.Level)
	return course, err
}

// CreateCourse creates a new course
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) (int64, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("name", "code", "pre_requisite", "level").
		Values(course.Name, course.Code, course.PreRequisite, course.Level).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return 0, fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.ID); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrCourseAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create course query")
		return 0, fmt.Errorf("error creating course: %w", err)
	}
	return course.ID, nil
}

// GetCourseByID retrieves a course by ID
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by ID SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return course, nil
}

// ListCourses returns one page of the catalog ordered by name, plus the total count
func (r *CourseRepository) ListCourses(ctx context.Context, offset uint64, limit int) ([]*models.Course, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("courses").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count courses SQL")
		return nil, 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting courses")
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		OrderBy("name ASC", "id ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, 0, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, 0, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning course row during list")
			return nil, 0, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course rows")
		return nil, 0, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, total, nil
}

// UpdateCourse replaces every field of an existing course
func (r *CourseRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"name":          course.Name,
			"code":          course.Code,
			"pre_requisite": course.PreRequisite,
			"level":         course.Level,
		}).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update course SQL")
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseAlreadyExists
		}
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// DeleteCourse deletes a course. Courses referenced by completed courses are kept.
func (r *CourseRepository) DeleteCourse(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete course SQL")
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, "completed_courses_course_id_fkey") {
			return apperrors.ErrCourseInUse
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// CourseExistsByNameOrCode reports whether another course, other than
// excludeID, already uses name or code.
func (r *CourseRepository) CourseExistsByNameOrCode(ctx context.Context, name string, code *string, excludeID int64) (bool, error) {
	match := squirrel.Or{squirrel.Eq{"name": name}}
	if code != nil {
		match = append(match, squirrel.Eq{"code": *code})
	}

	sql, args, err := r.sb.Select("1").
		From("courses").
		Where(squirrel.And{match, squirrel.NotEq{"id": excludeID}}).
		Prefix("SELECT EXISTS (").Suffix(")").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building course exists SQL")
		return false, fmt.Errorf("failed to build course existence query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("name", name).Msg("Error checking course existence")
		return false, fmt.Errorf("error checking course existence: %w", err)
	}
	return exists, nil
}

// CourseExists reports whether a course with id exists
func (r *CourseRepository) CourseExists(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building course id exists SQL")
		return false, fmt.Errorf("failed to build course id existence query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error checking course id existence")
		return false, fmt.Errorf("error checking course existence: %w", err)
	}
	return exists, nil
}
