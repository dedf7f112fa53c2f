package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	store := New()

	admin := &models.Role{Name: models.RoleAdmin}
	_, err := store.Users.CreateRole(ctx, admin)
	require.NoError(t, err)
	_, err = store.Users.CreateRole(ctx, &models.Role{Name: models.RoleAdmin})
	assert.ErrorIs(t, err, apperrors.ErrRoleAlreadyExists)

	user := &models.User{Email: "a@example.com", Password: "hash", Uniquifier: "u1", Active: true}
	id, err := store.Users.CreateUser(ctx, user, []*models.Role{admin})
	require.NoError(t, err)
	assert.Equal(t, []models.RoleName{models.RoleAdmin}, user.Roles)

	_, err = store.Users.CreateUser(ctx, &models.User{Email: "a@example.com"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	byEmail, err := store.Users.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)
	assert.True(t, byEmail.HasRole(models.RoleAdmin))

	require.NoError(t, store.Users.UpdateUniquifier(ctx, id, "u2"))
	byID, err := store.Users.GetUserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "u2", byID.Uniquifier)

	_, err = store.Users.GetUserByID(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	exists, err := store.Users.UserExists(ctx, id)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRecordStoreSingleton(t *testing.T) {
	ctx := context.Background()
	store := New().SchoolRecords

	first := &models.SchoolRecord{SchoolName: "Springfield High"}
	first.SetOwnerID(7)
	require.NoError(t, store.Insert(ctx, first))
	assert.NotZero(t, first.ID)

	second := &models.SchoolRecord{SchoolName: "Shelbyville High"}
	second.SetOwnerID(7)
	err := store.Insert(ctx, second)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "school details already exist", err.Error())

	got, err := store.FindByOwner(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Springfield High", got.SchoolName)

	// mutating the returned copy leaves the store untouched
	got.SchoolName = "changed"
	again, err := store.FindByOwner(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Springfield High", again.SchoolName)

	replacement := &models.SchoolRecord{SchoolName: "North High", City: strPtr("Ogdenville")}
	replacement.SetOwnerID(7)
	require.NoError(t, store.Replace(ctx, replacement))
	assert.Equal(t, first.ID, replacement.ID)

	require.NoError(t, store.DeleteByOwner(ctx, 7))
	_, err = store.FindByOwner(ctx, 7)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	missing := &models.SchoolRecord{SchoolName: "x"}
	missing.SetOwnerID(8)
	assert.ErrorIs(t, store.Replace(ctx, missing), apperrors.ErrResourceNotFound)
	assert.ErrorIs(t, store.DeleteByOwner(ctx, 8), apperrors.ErrResourceNotFound)
}

func TestCoursesAndCompletions(t *testing.T) {
	ctx := context.Background()
	store := New()

	uid, err := store.Users.CreateUser(ctx, &models.User{Email: "s@example.com", Uniquifier: "u"}, nil)
	require.NoError(t, err)

	mad := &models.Course{Name: "MAD1", Code: strPtr("C123")}
	_, err = store.Courses.CreateCourse(ctx, mad)
	require.NoError(t, err)
	dbms := &models.Course{Name: "DBMS", Code: strPtr("C124")}
	_, err = store.Courses.CreateCourse(ctx, dbms)
	require.NoError(t, err)

	_, err = store.Courses.CreateCourse(ctx, &models.Course{Name: "Other", Code: strPtr("C123")})
	assert.ErrorIs(t, err, apperrors.ErrCourseAlreadyExists)

	page, total, err := store.Courses.ListCourses(ctx, 0, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, page, 1)
	assert.Equal(t, "DBMS", page[0].Name)

	page, _, err = store.Courses.ListCourses(ctx, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, page)

	marks := 80
	_, err = store.CompletedCourses.Insert(ctx, &models.CompletedCourse{UserID: uid, CourseID: mad.ID, Marks: &marks})
	require.NoError(t, err)
	_, err = store.CompletedCourses.Insert(ctx, &models.CompletedCourse{UserID: uid, CourseID: dbms.ID})
	require.NoError(t, err)
	_, err = store.CompletedCourses.Insert(ctx, &models.CompletedCourse{UserID: uid, CourseID: mad.ID})
	assert.ErrorIs(t, err, apperrors.ErrCompletedCourseExists)
	_, err = store.CompletedCourses.Insert(ctx, &models.CompletedCourse{UserID: uid, CourseID: 404})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	list, err := store.CompletedCourses.ListByOwner(ctx, uid)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "MAD1", list[0].CourseName)
	assert.Equal(t, 80, *list[0].Marks)
	assert.Equal(t, "DBMS", list[1].CourseName)

	assert.ErrorIs(t, store.Courses.DeleteCourse(ctx, mad.ID), apperrors.ErrCourseInUse)

	require.NoError(t, store.CompletedCourses.Delete(ctx, uid, mad.ID))
	assert.ErrorIs(t, store.CompletedCourses.Delete(ctx, uid, mad.ID), apperrors.ErrCompletedCourseNotFound)
	require.NoError(t, store.Courses.DeleteCourse(ctx, mad.ID))

	_, err = store.Courses.GetCourseByID(ctx, mad.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}
