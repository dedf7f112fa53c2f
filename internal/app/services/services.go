package services

import (
	"context"

	"github.com/yigit/admissions/internal/app/models"
)

// Store contracts consumed by the services. The Postgres repositories and
// the memory backend both implement them.

// UserStore persists users, roles and role links
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User, roles []*models.Role) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UserExists(ctx context.Context, id int64) (bool, error)
	UpdateUniquifier(ctx context.Context, userID int64, uniquifier string) error
	GetRoleByName(ctx context.Context, name models.RoleName) (*models.Role, error)
	CreateRole(ctx context.Context, role *models.Role) (int64, error)
	AssignRole(ctx context.Context, userID, roleID int64) error
}

// RecordStore persists one singleton record kind
type RecordStore[P models.Record] interface {
	FindByOwner(ctx context.Context, userID int64) (P, error)
	Insert(ctx context.Context, rec P) error
	Replace(ctx context.Context, rec P) error
	DeleteByOwner(ctx context.Context, userID int64) error
}

// CourseStore persists the course catalog
type CourseStore interface {
	CreateCourse(ctx context.Context, course *models.Course) (int64, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	ListCourses(ctx context.Context, offset uint64, limit int) ([]*models.Course, int64, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id int64) error
	CourseExistsByNameOrCode(ctx context.Context, name string, code *string, excludeID int64) (bool, error)
	CourseExists(ctx context.Context, id int64) (bool, error)
}

// CompletedCourseStore persists completions keyed by (user, course)
type CompletedCourseStore interface {
	ListByOwner(ctx context.Context, userID int64) ([]*models.CompletedCourse, error)
	Insert(ctx context.Context, cc *models.CompletedCourse) (int64, error)
	Update(ctx context.Context, cc *models.CompletedCourse) error
	Delete(ctx context.Context, userID, courseID int64) error
}

// Outcome labels for operation metrics
const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

func outcome(err error) string {
	if err != nil {
		return outcomeFailure
	}
	return outcomeSuccess
}
