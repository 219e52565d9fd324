package service

import (
	"context"
	"testing"
	"time"

	"github.com/chopdesk/chopdesk-api/pkg/apperror"
	"github.com/chopdesk/chopdesk-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthEnv() (*AuthService, *fakeUserRepo, *fakeTenantRepo) {
	users := newFakeUserRepo()
	tenants := newFakeTenantRepo()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	svc := NewAuthService(users, tenants, jwtManager, &fakeTxManager{})
	return svc, users, tenants
}

func TestRegisterCreatesTenantAndOwner(t *testing.T) {
	svc, users, tenants := newAuthEnv()

	output, err := svc.Register(context.Background(), &RegisterInput{
		RestaurantName: "Chez Awa",
		FirstName:      "Awa",
		LastName:       "Diallo",
		Email:          "awa@example.com",
		Password:       "secret-password",
	})
	require.NoError(t, err)

	assert.Equal(t, "owner", output.User.Role)
	assert.NotEmpty(t, output.AccessToken)
	assert.NotEmpty(t, output.RefreshToken)

	tenant, err := tenants.GetBySlug(context.Background(), "chez-awa")
	require.NoError(t, err)
	require.NotNil(t, tenant)
	assert.Equal(t, output.User.ID, tenant.OwnerID)
	assert.Equal(t, tenant.ID, output.User.TenantID)

	stored, err := users.GetByEmail(context.Background(), "awa@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret-password", stored.Password, "password must be hashed")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthEnv()

	input := &RegisterInput{
		RestaurantName: "Chez Awa",
		FirstName:      "Awa",
		LastName:       "Diallo",
		Email:          "awa@example.com",
		Password:       "secret-password",
	}
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	input.RestaurantName = "Another Place"
	_, err = svc.Register(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthEnv()

	_, err := svc.Register(context.Background(), &RegisterInput{
		RestaurantName: "Chez Awa",
		FirstName:      "Awa",
		LastName:       "Diallo",
		Email:          "awa@example.com",
		Password:       "secret-password",
	})
	require.NoError(t, err)

	output, err := svc.Login(context.Background(), &LoginInput{
		Email:    "awa@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, output.AccessToken)

	_, err = svc.Login(context.Background(), &LoginInput{
		Email:    "awa@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginInput{
		Email:    "nobody@example.com",
		Password: "secret-password",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	svc, _, _ := newAuthEnv()

	registered, err := svc.Register(context.Background(), &RegisterInput{
		RestaurantName: "Chez Awa",
		FirstName:      "Awa",
		LastName:       "Diallo",
		Email:          "awa@example.com",
		Password:       "secret-password",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
