package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConstraintHelpers(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "completed_courses_course_id_fkey"}

	assert.True(t, IsUniqueViolation(dup))
	assert.True(t, IsDuplicateConstraintError(dup, "users_email_key"))
	assert.False(t, IsDuplicateConstraintError(dup, "courses_name_key"))

	assert.True(t, IsForeignKeyViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk, "completed_courses_course_id_fkey"))
	assert.False(t, IsForeignKeyViolation(fk, "other"))
	assert.False(t, IsForeignKeyViolation(dup))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}
