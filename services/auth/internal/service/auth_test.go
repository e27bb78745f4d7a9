package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngo/storefront/pkg/hash"
	"github.com/minhngo/storefront/pkg/tokens"
	"github.com/minhngo/storefront/services/auth/internal/repo"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	pwHash, err := hash.HashPassword("secret")
	require.NoError(t, err)

	return &AuthService{
		Repo: repo.NewInMemoryCredentials(repo.Credential{
			Username:     "admin",
			PasswordHash: pwHash,
			Role:         "Admin",
		}),
		JWTSecret: []byte("test-jwt-secret"),
		Issuer:    "storefront-auth",
		Audience:  "storefront",
		TokenTTL:  time.Hour,
	}
}

func TestLogin_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "empty username", username: "", password: "secret"},
		{name: "empty password", username: "admin", password: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestAuthService(t)
			res, err := svc.Login(context.Background(), tt.username, tt.password)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "unknown user", username: "nobody", password: "secret"},
		{name: "wrong password", username: "admin", password: "wrong"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newTestAuthService(t)
			res, err := svc.Login(context.Background(), tt.username, tt.password)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	res, err := svc.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	assert.Equal(t, "Admin", res.Role)
	assert.WithinDuration(t, res.IssuedAt.Add(time.Hour), res.ExpiresAt, time.Second)

	claims, err := tokens.AccessClaimsFromToken(res.Token, svc.JWTSecret, svc.Issuer, svc.Audience)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "Admin", claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, res.ExpiresAt, claims.ExpiresAt.Time, time.Second)
}
