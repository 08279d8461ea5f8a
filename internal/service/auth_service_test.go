package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService() (*AuthService, *fakeProfileStore) {
	profiles := newFakeProfileStore()
	return NewAuthService(profiles, "test-secret", time.Hour), profiles
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	profile, err := svc.Register(ctx, "ana@example.com", "hunter22", "Ana", "+5491122334455", "ABC-123")
	require.NoError(t, err)
	assert.NotEmpty(t, profile.ID)
	assert.NotEqual(t, "hunter22", profile.PasswordHash)

	_, err = svc.Register(ctx, "ana@example.com", "hunter22", "Ana", "", "")
	assert.Error(t, err, "duplicate email")

	token, logged, err := svc.Login(ctx, "ana@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, profile.ID, logged.ID)

	_, _, err = svc.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "hunter22", "", "", "")
	assert.Error(t, err)
	_, err = svc.Register(ctx, "ana@example.com", "short", "", "", "")
	assert.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	svc, profiles := newTestAuthService()
	ctx := context.Background()

	profile, err := svc.Register(ctx, "admin@example.com", "hunter22", "Admin", "", "")
	require.NoError(t, err)
	profiles.profiles[profile.ID].IsAdmin = true

	token, _, err := svc.Login(ctx, "admin@example.com", "hunter22")
	require.NoError(t, err)

	userID, isAdmin, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, userID)
	assert.True(t, isAdmin)

	_, _, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// Token signed with a different secret is rejected.
	other := NewAuthService(profiles, "other-secret", time.Hour)
	foreign, _, err := other.Login(ctx, "admin@example.com", "hunter22")
	require.NoError(t, err)
	_, _, err = svc.ValidateToken(foreign)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestUpdatePassword(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	profile, err := svc.Register(ctx, "ana@example.com", "hunter22", "Ana", "", "")
	require.NoError(t, err)

	err = svc.UpdatePassword(ctx, profile.ID, "wrong", "newpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.UpdatePassword(ctx, profile.ID, "hunter22", "tiny")
	assert.Error(t, err)

	require.NoError(t, svc.UpdatePassword(ctx, profile.ID, "hunter22", "newpassword"))
	_, _, err = svc.Login(ctx, "ana@example.com", "newpassword")
	assert.NoError(t, err)
	_, _, err = svc.Login(ctx, "ana@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
