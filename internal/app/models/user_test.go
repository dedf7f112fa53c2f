package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimaryRole(t *testing.T) {
	tests := []struct {
		name  string
		roles []RoleName
		want  RoleName
	}{
		{name: "no roles", roles: nil, want: RoleUser},
		{name: "single admin", roles: []RoleName{RoleAdmin}, want: RoleAdmin},
		{name: "user and admin", roles: []RoleName{RoleUser, RoleAdmin}, want: RoleAdmin},
		{name: "custom role", roles: []RoleName{"reviewer", RoleUser}, want: "reviewer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Roles: tt.roles}
			assert.Equal(t, tt.want, u.PrimaryRole())
			assert.Equal(t, tt.want, u.Identity().PrimaryRole())
		})
	}
}

func TestIdentityCopiesRoles(t *testing.T) {
	u := &User{ID: 7, Email: "a@x.io", Active: true, Uniquifier: "u1", Roles: []RoleName{RoleAdmin}}
	id := u.Identity()
	u.Roles[0] = RoleUser

	assert.True(t, id.IsAdmin())
	assert.Equal(t, int64(7), id.UserID)
	assert.Equal(t, "u1", id.Uniquifier)
}

func TestRecordOwnership(t *testing.T) {
	var rec Record = &SchoolRecord{SchoolName: "Central"}
	rec.SetOwnerID(42)
	assert.Equal(t, int64(42), rec.OwnerID())
	assert.Equal(t, "school details", KindSchoolRecord.Label())
}
