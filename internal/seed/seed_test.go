package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/repositories/memory"
	"github.com/yigit/admissions/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

const sample = `
roles:
  - name: admin
    description: Administrator
  - name: user
courses:
  - name: MAD1
    code: C123
    level: foundation
  - name: Statistics
admins:
  - email: Root@Example.com
    password: change-me-now
    full_name: Root
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Len(t, f.Roles, 2)
	assert.Equal(t, "C123", f.Courses[0].Code)
	assert.Empty(t, f.Courses[1].Code)
	assert.Equal(t, "Root@Example.com", f.Admins[0].Email)

	_, err = Parse([]byte("roles: [unterminated"))
	assert.Error(t, err)
}

func TestLoadMissingFileFallsBackToDefault(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Default(), f)
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	seeder := NewSeeder(store.Users, store.Courses, hasher, zerolog.Nop())

	f, err := Parse([]byte(sample))
	require.NoError(t, err)

	res, err := seeder.Run(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 5}, res)

	res, err = seeder.Run(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 5}, res)

	admin, err := store.Users.GetUserByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.True(t, admin.HasRole(models.RoleAdmin))
	assert.True(t, hasher.Verify(admin.Password, "change-me-now"))

	_, total, err := store.Courses.ListCourses(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestRunCollectsErrors(t *testing.T) {
	store := memory.New()
	seeder := NewSeeder(store.Users, store.Courses, auth.NewBcryptHasher(bcrypt.MinCost), zerolog.Nop())

	// no admin role provisioned
	res, err := seeder.Run(context.Background(), &File{
		Courses: []Course{{Name: "Only"}},
		Admins:  []Admin{{Email: "a@example.com", Password: "secret-pass"}},
	})
	assert.Error(t, err)
	assert.Equal(t, 1, res.Created)
}
