package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/partner-desk/internal/auth"
	"github.com/spec-kit/partner-desk/internal/config"
	"github.com/spec-kit/partner-desk/internal/repository"
)

func newAuthService() (*AuthService, *auth.TokenManager) {
	tokens := auth.NewTokenManager("test-secret", 30)
	svc := NewAuthService(config.AuthConfig{BcryptCost: 4}, repository.NewMemoryUserRepository(), tokens)
	return svc, tokens
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, tokens := newAuthService()

	session, err := svc.RegisterUser(ctx, " Ada ", "Ada@Example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "Ada", session.User.Name)
	assert.Equal(t, "ada@example.com", session.User.Email)
	assert.NotEqual(t, "s3cret-pass", session.User.PasswordHash)

	claims, err := tokens.ParseToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.Subject)

	login, err := svc.LoginUser(ctx, "ada@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, login.User.ID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()

	_, err := svc.RegisterUser(ctx, "Ada", "ada@example.com", "s3cret-pass")
	require.NoError(t, err)
	_, err = svc.RegisterUser(ctx, "Other", "ADA@example.com", "another-pass")
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()
	_, err := svc.RegisterUser(ctx, "Ada", "ada@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.LoginUser(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.LoginUser(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
