// Package seed provisions roles, catalog courses and admin accounts from a
// YAML file. Running it again skips whatever already exists.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/services"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/auth"
	"gopkg.in/yaml.v3"
)

// File is the content of a seed file
type File struct {
	Roles   []Role   `yaml:"roles"`
	Courses []Course `yaml:"courses"`
	Admins  []Admin  `yaml:"admins"`
}

// Role to provision
type Role struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Course to add to the catalog
type Course struct {
	Name         string `yaml:"name"`
	Code         string `yaml:"code"`
	PreRequisite string `yaml:"pre_requisite"`
	Level        string `yaml:"level"`
}

// Admin account to create with the admin role
type Admin struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	FullName string `yaml:"full_name"`
}

// Result counts what a run created and skipped
type Result struct {
	Created int
	Skipped int
}

// Default provisions the two built-in roles only
func Default() *File {
	return &File{Roles: []Role{
		{Name: string(models.RoleAdmin), Description: "Administrator"},
		{Name: string(models.RoleUser), Description: "Applicant"},
	}}
}

// Parse decodes a seed file
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

// Load reads the seed file at path. A missing file yields Default.
func Load(path string, logger zerolog.Logger) (*File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn().Str("path", path).Msg("Seed file not found, provisioning default roles only")
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Seeder applies seed files to the stores
type Seeder struct {
	users   services.UserStore
	courses services.CourseStore
	hasher  auth.PasswordHasher
	logger  zerolog.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(users services.UserStore, courses services.CourseStore, hasher auth.PasswordHasher, logger zerolog.Logger) *Seeder {
	return &Seeder{
		users:   users,
		courses: courses,
		hasher:  hasher,
		logger:  logger.With().Str("component", "seed").Logger(),
	}
}

// Run applies f. Every entry is attempted; the errors of failed entries are
// joined and returned together.
func (s *Seeder) Run(ctx context.Context, f *File) (Result, error) {
	var res Result
	var finalErr error

	for _, r := range f.Roles {
		created, err := s.seedRole(ctx, r)
		finalErr = errors.Join(finalErr, err)
		res.count(created, err)
	}
	for _, c := range f.Courses {
		created, err := s.seedCourse(ctx, c)
		finalErr = errors.Join(finalErr, err)
		res.count(created, err)
	}
	for _, a := range f.Admins {
		created, err := s.seedAdmin(ctx, a)
		finalErr = errors.Join(finalErr, err)
		res.count(created, err)
	}

	s.logger.Info().Int("created", res.Created).Int("skipped", res.Skipped).Msg("Seed finished")
	return res, finalErr
}

func (r *Result) count(created bool, err error) {
	switch {
	case err != nil:
	case created:
		r.Created++
	default:
		r.Skipped++
	}
}

func (s *Seeder) seedRole(ctx context.Context, r Role) (bool, error) {
	name := models.RoleName(strings.ToLower(strings.TrimSpace(r.Name)))
	if name == "" {
		return false, errors.New("seed role without name")
	}

	role := &models.Role{Name: name}
	if r.Description != "" {
		role.Description = &r.Description
	}
	if _, err := s.users.CreateRole(ctx, role); err != nil {
		if errors.Is(err, apperrors.ErrRoleAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("role %q: %w", name, err)
	}
	s.logger.Info().Str("role", string(name)).Msg("Role created")
	return true, nil
}

func (s *Seeder) seedCourse(ctx context.Context, c Course) (bool, error) {
	course := &models.Course{
		Name:         strings.TrimSpace(c.Name),
		Code:         optional(c.Code),
		PreRequisite: optional(c.PreRequisite),
		Level:        optional(c.Level),
	}
	if course.Name == "" {
		return false, errors.New("seed course without name")
	}

	exists, err := s.courses.CourseExistsByNameOrCode(ctx, course.Name, course.Code, 0)
	if err != nil {
		return false, fmt.Errorf("course %q: %w", course.Name, err)
	}
	if exists {
		return false, nil
	}
	if _, err := s.courses.CreateCourse(ctx, course); err != nil {
		return false, fmt.Errorf("course %q: %w", course.Name, err)
	}
	s.logger.Info().Str("course", course.Name).Msg("Course created")
	return true, nil
}

func (s *Seeder) seedAdmin(ctx context.Context, a Admin) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(a.Email))
	if email == "" || a.Password == "" {
		return false, errors.New("seed admin requires email and password")
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return false, fmt.Errorf("admin %q: %w", email, err)
	}

	role, err := s.users.GetRoleByName(ctx, models.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("admin %q: %w", email, err)
	}
	hash, err := s.hasher.Hash(a.Password)
	if err != nil {
		return false, fmt.Errorf("admin %q: %w", email, err)
	}

	fullName := strings.TrimSpace(a.FullName)
	if fullName == "" {
		fullName = "Administrator"
	}
	user := &models.User{
		Email:      email,
		Password:   hash,
		FullName:   fullName,
		Active:     true,
		Uniquifier: auth.NewUniquifier(),
	}
	if _, err := s.users.CreateUser(ctx, user, []*models.Role{role}); err != nil {
		return false, fmt.Errorf("admin %q: %w", email, err)
	}
	s.logger.Info().Int64("userID", user.ID).Str("email", email).Msg("Admin account created")
	return true, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
