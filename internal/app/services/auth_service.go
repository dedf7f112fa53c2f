package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/auth"
	"github.com/yigit/admissions/internal/pkg/cache"
	"github.com/yigit/admissions/internal/pkg/metrics"
)

// errInvalidLogin is returned for both unknown emails and wrong passwords
var errInvalidLogin = apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "invalid email or password")

// AuthOptions tunes registration behaviour
type AuthOptions struct {
	AllowAdminRegistration bool
}

// AuthService handles login, registration and token resolution
type AuthService struct {
	users   UserStore
	hasher  auth.PasswordHasher
	tokens  *auth.TokenService
	cache   cache.IdentityCache
	metrics *metrics.Metrics
	options AuthOptions
	logger  zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new AuthService. A nil cache disables caching.
func NewAuthService(
	users UserStore,
	hasher auth.PasswordHasher,
	tokens *auth.TokenService,
	identityCache cache.IdentityCache,
	m *metrics.Metrics,
	options AuthOptions,
	logger zerolog.Logger,
) *AuthService {
	if identityCache == nil {
		identityCache = cache.Noop{}
	}
	return &AuthService{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		cache:   identityCache,
		metrics: m,
		options: options,
		logger:  logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// burnHash spends one hash verification so unknown emails cost the same as
// wrong passwords.
func (s *AuthService) burnHash(password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("not-a-real-password")
		if err != nil {
			s.logger.Warn().Err(err).Msg("Could not prepare dummy password hash")
		}
		s.dummyHash = hash
	})
	if s.dummyHash != "" {
		s.hasher.Verify(s.dummyHash, password)
	}
}

// Login authenticates a user and issues a token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.burnHash(req.Password)
			return nil, fmt.Errorf("%w: %w", errInvalidLogin, apperrors.ErrUserNotFound)
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}

	if !s.hasher.Verify(user.Password, req.Password) {
		s.logger.Info().Int64("userID", user.ID).Msg("Login rejected: wrong password")
		return nil, errInvalidLogin
	}
	if !user.Active {
		return nil, apperrors.ErrAccountDisabled
	}

	token, expiresIn, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	s.cache.Fill(ctx, user.Identity())
	s.logger.Info().Int64("userID", user.ID).Msg("User logged in")

	return &dto.LoginResponse{
		Token:     token,
		Role:      string(user.PrimaryRole()),
		TokenType: "Bearer",
		ExpiresIn: expiresIn,
	}, nil
}

// Register creates a user. The admin role is attached only when requested,
// allowed by configuration and already provisioned; every other role name is
// ignored.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.Identity, error) {
	email := normalizeEmail(req.Email)
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, apperrors.NewValidationError("full_name is required")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if auth.IsPasswordTooLong(err) {
			return nil, apperrors.NewValidationError("password is too long")
		}
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var roles []*models.Role
	if models.RoleName(strings.ToLower(strings.TrimSpace(req.Role))) == models.RoleAdmin {
		if !s.options.AllowAdminRegistration {
			s.logger.Warn().Str("email", email).Msg("Admin registration requested while disabled, ignoring role")
		} else {
			role, err := s.users.GetRoleByName(ctx, models.RoleAdmin)
			switch {
			case err == nil:
				roles = append(roles, role)
			case errors.Is(err, apperrors.ErrRoleNotFound):
				s.logger.Warn().Str("email", email).Msg("Admin role is not provisioned, registering without it")
			default:
				return nil, fmt.Errorf("error loading admin role: %w", err)
			}
		}
	}

	user := &models.User{
		Email:      email,
		Password:   hash,
		FullName:   fullName,
		Active:     true,
		Uniquifier: auth.NewUniquifier(),
	}
	if _, err := s.users.CreateUser(ctx, user, roles); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("user creation error: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.PrimaryRole())).Msg("User registered")
	return user.Identity(), nil
}

// Resolve maps a bearer token to the active identity it was issued for.
// It never changes session state.
func (s *AuthService) Resolve(ctx context.Context, token string) (*models.Identity, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	identity, hit := s.cache.Get(ctx, claims.UserID)
	s.metrics.CacheResult(s.cache.Backend(), hit)
	if !hit {
		user, err := s.users.GetUserByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				return nil, apperrors.NewCustomError(apperrors.ErrUnauthenticated, "token does not match a user")
			}
			return nil, fmt.Errorf("error resolving token: %w", err)
		}
		identity = user.Identity()
		// a logout racing this read has already cached the rotated identity
		s.cache.Fill(ctx, identity)
	}

	if !identity.Active {
		return nil, apperrors.ErrAccountDisabled
	}
	if identity.Uniquifier != claims.Uniquifier {
		return nil, apperrors.NewCustomError(apperrors.ErrUnauthenticated, "token has been revoked")
	}
	return identity, nil
}

// Logout rotates the caller's uniquifier, revoking every token issued so far.
// The rotated identity overwrites the cache entry so that a concurrent
// Resolve cannot put the old one back.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if err := s.users.UpdateUniquifier(ctx, userID, auth.NewUniquifier()); err != nil {
		return fmt.Errorf("error rotating session: %w", err)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to reload identity after logout, evicting cache entry")
		s.cache.Invalidate(ctx, userID)
	} else {
		s.cache.Set(ctx, user.Identity())
	}

	s.logger.Info().Int64("userID", userID).Msg("User logged out")
	return nil
}
