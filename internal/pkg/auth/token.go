package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

// TokenConfig defines token issuing settings
type TokenConfig struct {
	SecretKey string
	// TTL of zero issues tokens without expiry
	TTL    time.Duration
	Issuer string
}

// TokenService issues and verifies bearer tokens bound to a user's uniquifier
type TokenService struct {
	config TokenConfig
	now    func() time.Time
}

// NewTokenService creates a new token service
func NewTokenService(config TokenConfig) *TokenService {
	return &TokenService{
		config: config,
		now:    time.Now,
	}
}

// Claims defines token content
type Claims struct {
	UserID     int64  `json:"uid"`
	Uniquifier string `json:"fsu"`
	jwt.RegisteredClaims
}

// Issue signs a token for user. expiresIn is zero when tokens do not expire.
func (s *TokenService) Issue(user *models.User) (token string, expiresIn int64, err error) {
	if user.Uniquifier == "" {
		return "", 0, errors.New("cannot issue token: user has no uniquifier")
	}

	now := s.now()
	claims := &Claims{
		UserID:     user.ID,
		Uniquifier: user.Uniquifier,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   s.config.Issuer,
			Subject:  fmt.Sprintf("%d", user.ID),
			ID:       uuid.NewString(),
		},
	}
	if s.config.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.config.TTL))
		expiresIn = int64(s.config.TTL.Seconds())
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, expiresIn, nil
}

// Parse verifies signature, issuer and expiry and returns the claims.
// Failures are reported as apperrors.ErrTokenExpired or apperrors.ErrTokenInvalid.
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.SecretKey), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID <= 0 || claims.Uniquifier == "" {
		return nil, apperrors.ErrTokenInvalid
	}
	return claims, nil
}

// ExtractBearerToken strips an optional "Bearer " prefix from a header value
func ExtractBearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

// NewUniquifier returns a fresh session uniquifier
func NewUniquifier() string {
	return uuid.NewString()
}
