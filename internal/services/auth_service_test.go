// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firenoc/firenoc-backend/internal/config"
	"github.com/firenoc/firenoc-backend/internal/models"
)

func newAuthService(env *testEnv) *AuthService {
	return NewAuthService(env.db, config.JWTConfig{AccessTokenTTL: 1, RefreshTokenTTL: 24})
}

func TestRegister_GrantsApplicantRole(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	resp, err := auth.Register(&RegisterRequest{
		FullName: "Asha Verma",
		Email:    "Asha.Verma@Example.com",
		Password: "Sup3r!Secret",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "asha.verma@example.com", resp.User.Email)
	assert.Equal(t, []string{"applicant"}, resp.User.RoleNames())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	req := &RegisterRequest{
		FullName: "Asha Verma",
		Email:    "asha@example.com",
		Password: "Sup3r!Secret",
	}
	_, err := auth.Register(req)
	require.NoError(t, err)

	_, err = auth.Register(req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_WeakPasswordRejected(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	_, err := auth.Register(&RegisterRequest{
		FullName: "Asha Verma",
		Email:    "asha@example.com",
		Password: "password",
	})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	_, err := auth.Register(&RegisterRequest{
		FullName: "Asha Verma",
		Email:    "asha@example.com",
		Password: "Sup3r!Secret",
	})
	require.NoError(t, err)

	resp, err := auth.Login(&LoginRequest{Email: "asha@example.com", Password: "Sup3r!Secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = auth.Login(&LoginRequest{Email: "asha@example.com", Password: "wrong-password1!A"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(&LoginRequest{Email: "nobody@example.com", Password: "Sup3r!Secret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	registered, err := auth.Register(&RegisterRequest{
		FullName: "Asha Verma",
		Email:    "asha@example.com",
		Password: "Sup3r!Secret",
	})
	require.NoError(t, err)

	refreshed, err := auth.RefreshToken(registered.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, refreshed.User.ID)

	_, err = auth.RefreshToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)
	user := env.createUser(t, models.RoleApplicant)

	updated, err := auth.UpdateProfile(user.ID, &UpdateProfileRequest{
		Phone:        "+91 98765 43210",
		Organization: "Verma Constructions",
	})
	require.NoError(t, err)
	assert.Equal(t, "Verma Constructions", updated.Organization)
}
