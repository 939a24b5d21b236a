package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/tutorhub/internal/app/models"
)

func testJWTService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret-key-for-signing",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "tutorhub.test",
	})
}

func TestGenerateTokenPair_RoundTrip(t *testing.T) {
	svc := testJWTService()
	user := &models.User{ID: 7, Username: "jdoe", IsStaff: true}

	accessToken, refreshToken, expiresIn, err := svc.GenerateTokenPair(user, models.RoleTutor)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "jdoe", claims.Username)
	assert.Equal(t, string(models.RoleTutor), claims.Role)
	assert.True(t, claims.IsStaff)
}

func TestValidateToken_RejectsExpired(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		SecretKey:       "test-secret-key-for-signing",
		AccessTokenExp:  -time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "tutorhub.test",
	})
	user := &models.User{ID: 1, Username: "jdoe"}

	accessToken, _, _, err := svc.GenerateTokenPair(user, models.RoleStudent)
	require.NoError(t, err)

	_, err = svc.ValidateToken(accessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_RejectsWrongKey(t *testing.T) {
	svc := testJWTService()
	other := NewJWTService(JWTConfig{
		SecretKey:       "a-different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "tutorhub.test",
	})
	user := &models.User{ID: 1, Username: "jdoe"}

	accessToken, _, _, err := other.GenerateTokenPair(user, models.RoleStudent)
	require.NoError(t, err)

	_, err = svc.ValidateToken(accessToken)
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("abc.def.ghi")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestGetRefreshTokenExpiry(t *testing.T) {
	svc := testJWTService()
	expiry := svc.GetRefreshTokenExpiry()
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiry, time.Minute)
}
