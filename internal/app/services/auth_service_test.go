package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/tutorhub/internal/app/models/dto"
	"github.com/emre/tutorhub/internal/pkg/apperrors"
	"github.com/emre/tutorhub/internal/pkg/auth"
)

func newAuthService(env *testEnv) *AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key-for-signing",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "tutorhub.test",
	})
	return NewAuthService(env.users, env.profiles, env.tokens, jwtService)
}

func registerRequest(username string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:        username,
		Password:        "s3cretpass",
		ConfirmPassword: "s3cretpass",
	}
}

func TestRegisterUser_CreatesAccountWithProfile(t *testing.T) {
	env := newTestEnv()
	svc := newAuthService(env)

	user, err := svc.RegisterUser(context.Background(), registerRequest("jdoe"))
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "s3cretpass", user.Password, "password must be stored hashed")
}

func TestRegisterUser_PasswordsMustMatch(t *testing.T) {
	env := newTestEnv()
	svc := newAuthService(env)

	req := registerRequest("jdoe")
	req.ConfirmPassword = "different"
	_, err := svc.RegisterUser(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	env := newTestEnv()
	svc := newAuthService(env)

	_, err := svc.RegisterUser(context.Background(), registerRequest("jdoe"))
	require.NoError(t, err)

	_, err = svc.RegisterUser(context.Background(), registerRequest("jdoe"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRegisterUser_RejectsBadUsername(t *testing.T) {
	env := newTestEnv()
	svc := newAuthService(env)

	for _, username := range []string{"ab", "has spaces", "bad#char"} {
		req := registerRequest(username)
		_, err := svc.RegisterUser(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "username %q", username)
	}
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	env := newTestEnv()
	svc := newAuthService(env)

	user, err := svc.RegisterUser(context.Background(), registerRequest("jdoe"))
	require.NoError(t, err)
	env.profiles.add(user.ID, "UNSET")

	tokens, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "jdoe", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.Positive(t, tokens.ExpiresIn)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv()
	svc := newAuthService(env)

	user, err := svc.RegisterUser(context.Background(), registerRequest("jdoe"))
	require.NoError(t, err)
	env.profiles.add(user.ID, "UNSET")

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Username: "jdoe", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownUserLooksLikeBadCredentials(t *testing.T) {
	env := newTestEnv()
	svc := newAuthService(env)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefreshAccessToken_RotatesToken(t *testing.T) {
	env := newTestEnv()
	svc := newAuthService(env)

	user, err := svc.RegisterUser(context.Background(), registerRequest("jdoe"))
	require.NoError(t, err)
	env.profiles.add(user.ID, "UNSET")

	tokens, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "jdoe", Password: "s3cretpass"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshAccessToken(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, refreshed.RefreshToken)

	// The rotated-out token is dead
	_, err = svc.RefreshAccessToken(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestRefreshAccessToken_UnknownToken(t *testing.T) {
	env := newTestEnv()
	svc := newAuthService(env)

	_, err := svc.RefreshAccessToken(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestLogout_RevokesToken(t *testing.T) {
	env := newTestEnv()
	svc := newAuthService(env)

	user, err := svc.RegisterUser(context.Background(), registerRequest("jdoe"))
	require.NoError(t, err)
	env.profiles.add(user.ID, "UNSET")

	tokens, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "jdoe", Password: "s3cretpass"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), tokens.RefreshToken))

	_, err = svc.RefreshAccessToken(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}
