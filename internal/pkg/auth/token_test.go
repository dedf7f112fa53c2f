package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

func newTestTokenService(ttl time.Duration) *TokenService {
	return NewTokenService(TokenConfig{SecretKey: "test-secret", TTL: ttl, Issuer: "admissions-test"})
}

func TestIssueAndParse(t *testing.T) {
	svc := newTestTokenService(time.Hour)
	user := &models.User{ID: 11, Uniquifier: "uniq-1"}

	token, expiresIn, err := svc.Issue(user)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(11), claims.UserID)
	assert.Equal(t, "uniq-1", claims.Uniquifier)
	assert.NotEmpty(t, claims.ID)
}

func TestIssueWithoutExpiry(t *testing.T) {
	svc := newTestTokenService(0)
	token, expiresIn, err := svc.Issue(&models.User{ID: 1, Uniquifier: "u"})
	require.NoError(t, err)
	assert.Zero(t, expiresIn)

	svc.now = func() time.Time { return time.Now().Add(10 * 365 * 24 * time.Hour) }
	_, err = svc.Parse(token)
	assert.NoError(t, err)
}

func TestParseExpired(t *testing.T) {
	svc := newTestTokenService(time.Minute)
	token, _, err := svc.Issue(&models.User{ID: 1, Uniquifier: "u"})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestParseRejectsForeignTokens(t *testing.T) {
	svc := newTestTokenService(time.Hour)
	other := NewTokenService(TokenConfig{SecretKey: "other-secret", TTL: time.Hour, Issuer: "admissions-test"})
	token, _, err := other.Issue(&models.User{ID: 1, Uniquifier: "u"})
	require.NoError(t, err)

	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = svc.Parse("garbage")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = svc.Parse("")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestIssueRequiresUniquifier(t *testing.T) {
	_, _, err := newTestTokenService(time.Hour).Issue(&models.User{ID: 1})
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	assert.Equal(t, "abc", ExtractBearerToken("Bearer abc"))
	assert.Equal(t, "abc", ExtractBearerToken("bearer  abc "))
	assert.Equal(t, "abc", ExtractBearerToken("abc"))
	assert.Equal(t, "", ExtractBearerToken(""))
}
