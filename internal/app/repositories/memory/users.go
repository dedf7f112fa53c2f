package memory

import (
	"context"
	"slices"
	"time"

	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

// UserStore keeps users, roles and role links
type UserStore struct {
	t *tables
}

func (s *UserStore) rolesOf(userID int64) []models.RoleName {
	names := []models.RoleName{}
	for _, role := range s.t.roles {
		if _, ok := s.t.userRoles[userID][role.ID]; ok {
			names = append(names, role.Name)
		}
	}
	slices.Sort(names)
	return names
}

func (s *UserStore) snapshot(u *models.User) *models.User {
	cp := *u
	cp.Roles = s.rolesOf(u.ID)
	return &cp
}

// CreateUser stores user and links it to roles
func (s *UserStore) CreateUser(_ context.Context, user *models.User, roles []*models.Role) (int64, error) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	if _, taken := s.t.emails[user.Email]; taken {
		return 0, apperrors.ErrEmailAlreadyExists
	}
	for _, role := range roles {
		if known, ok := s.t.roles[role.Name]; !ok || known.ID != role.ID {
			return 0, apperrors.ErrRoleNotFound
		}
	}

	s.t.nextUserID++
	user.ID = s.t.nextUserID
	user.CreatedAt = time.Now().UTC()

	stored := *user
	stored.Roles = nil
	s.t.users[user.ID] = &stored
	s.t.emails[user.Email] = user.ID

	links := make(map[int64]struct{}, len(roles))
	for _, role := range roles {
		links[role.ID] = struct{}{}
	}
	s.t.userRoles[user.ID] = links
	user.Roles = s.rolesOf(user.ID)

	return user.ID, nil
}

// GetUserByEmail retrieves a user with roles by email
func (s *UserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	id, ok := s.t.emails[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return s.snapshot(s.t.users[id]), nil
}

// GetUserByID retrieves a user with roles by id
func (s *UserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	user, ok := s.t.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return s.snapshot(user), nil
}

// UserExists reports whether a user with id exists
func (s *UserStore) UserExists(_ context.Context, id int64) (bool, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	_, ok := s.t.users[id]
	return ok, nil
}

// UpdateUniquifier replaces the session uniquifier
func (s *UserStore) UpdateUniquifier(_ context.Context, userID int64, uniquifier string) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	user, ok := s.t.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Uniquifier = uniquifier
	return nil
}

// GetRoleByName retrieves a role by name
func (s *UserStore) GetRoleByName(_ context.Context, name models.RoleName) (*models.Role, error) {
	s.t.mu.RLock()
	defer s.t.mu.RUnlock()

	role, ok := s.t.roles[name]
	if !ok {
		return nil, apperrors.ErrRoleNotFound
	}
	cp := *role
	return &cp, nil
}

// CreateRole inserts a role
func (s *UserStore) CreateRole(_ context.Context, role *models.Role) (int64, error) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	if _, ok := s.t.roles[role.Name]; ok {
		return 0, apperrors.ErrRoleAlreadyExists
	}
	s.t.nextRoleID++
	role.ID = s.t.nextRoleID
	cp := *role
	s.t.roles[role.Name] = &cp
	return role.ID, nil
}

// AssignRole links a user to a role; repeated links are ignored
func (s *UserStore) AssignRole(_ context.Context, userID, roleID int64) error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()

	if _, ok := s.t.users[userID]; !ok {
		return apperrors.ErrUserNotFound
	}
	found := false
	for _, role := range s.t.roles {
		if role.ID == roleID {
			found = true
			break
		}
	}
	if !found {
		return apperrors.ErrRoleNotFound
	}
	s.t.userRoles[userID][roleID] = struct{}{}
	return nil
}
