//go:build integration

package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/yigit/admissions/internal/app/migrations"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("admissions"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	migrator, err := migrations.NewMigrator(pool, zerolog.Nop())
	require.NoError(t, err)
	defer migrator.Close()
	require.NoError(t, migrator.Up(ctx))

	return pool
}

func createUser(t *testing.T, repos *Repositories, email string, roles ...*models.Role) int64 {
	t.Helper()
	id, err := repos.UserRepository.CreateUser(context.Background(), &models.User{
		Email:      email,
		Password:   "hash",
		FullName:   "Test User",
		Active:     true,
		Uniquifier: "u-" + email,
	}, roles)
	require.NoError(t, err)
	return id
}

func TestPostgresRepositories(t *testing.T) {
	pool := setupPostgres(t)
	repos := NewRepositories(pool)
	ctx := context.Background()

	t.Run("users and roles", func(t *testing.T) {
		_, err := repos.UserRepository.CreateRole(ctx, &models.Role{Name: models.RoleAdmin})
		require.NoError(t, err)
		_, err = repos.UserRepository.CreateRole(ctx, &models.Role{Name: models.RoleAdmin})
		assert.ErrorIs(t, err, apperrors.ErrRoleAlreadyExists)

		admin, err := repos.UserRepository.GetRoleByName(ctx, models.RoleAdmin)
		require.NoError(t, err)

		id := createUser(t, repos, "admin@example.com", admin)
		user, err := repos.UserRepository.GetUserByEmail(ctx, "admin@example.com")
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, []models.RoleName{models.RoleAdmin}, user.Roles)

		_, err = repos.UserRepository.CreateUser(ctx, &models.User{Email: "admin@example.com", Password: "x", FullName: "Dup", Uniquifier: "d"}, nil)
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

		require.NoError(t, repos.UserRepository.UpdateUniquifier(ctx, id, "rotated"))
		user, err = repos.UserRepository.GetUserByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "rotated", user.Uniquifier)

		exists, err := repos.UserRepository.UserExists(ctx, id+1000)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("singleton records", func(t *testing.T) {
		owner := createUser(t, repos, "school@example.com")
		marks := "91.5"

		rec := &models.SchoolRecord{SchoolName: "KV", Marks: &marks}
		rec.SetOwnerID(owner)
		require.NoError(t, repos.SchoolRecordRepository.Insert(ctx, rec))
		assert.NotZero(t, rec.RecordID())

		dup := &models.SchoolRecord{SchoolName: "Other"}
		dup.SetOwnerID(owner)
		assert.ErrorIs(t, repos.SchoolRecordRepository.Insert(ctx, dup), apperrors.ErrConflict)

		got, err := repos.SchoolRecordRepository.FindByOwner(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, "KV", got.SchoolName)
		require.NotNil(t, got.Marks)
		assert.Equal(t, "91.5", *got.Marks)

		replacement := &models.SchoolRecord{SchoolName: "DPS"}
		replacement.SetOwnerID(owner)
		require.NoError(t, repos.SchoolRecordRepository.Replace(ctx, replacement))
		got, err = repos.SchoolRecordRepository.FindByOwner(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, "DPS", got.SchoolName)
		assert.Nil(t, got.Marks)

		require.NoError(t, repos.SchoolRecordRepository.DeleteByOwner(ctx, owner))
		_, err = repos.SchoolRecordRepository.FindByOwner(ctx, owner)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})

	t.Run("catalog and completions", func(t *testing.T) {
		owner := createUser(t, repos, "learner@example.com")
		code := "C123"

		courseID, err := repos.CourseRepository.CreateCourse(ctx, &models.Course{Name: "MAD1", Code: &code})
		require.NoError(t, err)

		exists, err := repos.CourseRepository.CourseExistsByNameOrCode(ctx, "Other", &code, 0)
		require.NoError(t, err)
		assert.True(t, exists)
		exists, err = repos.CourseRepository.CourseExistsByNameOrCode(ctx, "MAD1", &code, courseID)
		require.NoError(t, err)
		assert.False(t, exists)

		marks := 80
		_, err = repos.CompletedCourseRepository.Insert(ctx, &models.CompletedCourse{UserID: owner, CourseID: courseID, Marks: &marks})
		require.NoError(t, err)
		_, err = repos.CompletedCourseRepository.Insert(ctx, &models.CompletedCourse{UserID: owner, CourseID: courseID})
		assert.ErrorIs(t, err, apperrors.ErrConflict)

		list, err := repos.CompletedCourseRepository.ListByOwner(ctx, owner)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "MAD1", list[0].CourseName)

		assert.ErrorIs(t, repos.CourseRepository.DeleteCourse(ctx, courseID), apperrors.ErrCourseInUse)

		require.NoError(t, repos.CompletedCourseRepository.Delete(ctx, owner, courseID))
		require.NoError(t, repos.CourseRepository.DeleteCourse(ctx, courseID))

		courses, total, err := repos.CourseRepository.ListCourses(ctx, 0, 10)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, courses)
	})
}
