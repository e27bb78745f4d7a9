package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	secret   = []byte("test-secret")
	issuer   = "storefront-auth"
	audience = "storefront"
)

func TestIssueAndParse_RoundTrip(t *testing.T) {
	t.Parallel()

	issuedAt := time.Now().UTC()
	tok, err := Issue(secret, issuer, audience, "admin", "Admin User", "Admin", issuedAt, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := AccessClaimsFromToken(tok, secret, issuer, audience)
	require.NoError(t, err)

	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "Admin User", claims.Name)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, issuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, issuedAt.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestAccessClaimsFromToken_Rejections(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	expired, err := Issue(secret, issuer, audience, "admin", "admin", "Admin", now.Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)

	wrongIssuer, err := Issue(secret, "someone-else", audience, "admin", "admin", "Admin", now, time.Hour)
	require.NoError(t, err)

	wrongAudience, err := Issue(secret, issuer, "someone-else", "admin", "admin", "Admin", now, time.Hour)
	require.NoError(t, err)

	wrongKey, err := Issue([]byte("other-secret"), issuer, audience, "admin", "admin", "Admin", now, time.Hour)
	require.NoError(t, err)

	// Unsigned token with the right claims must still be rejected.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, AccessClaims{
		Role: "Admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: expired},
		{name: "wrong issuer", token: wrongIssuer},
		{name: "wrong audience", token: wrongAudience},
		{name: "wrong key", token: wrongKey},
		{name: "unsigned", token: unsigned},
		{name: "garbage", token: "not-a-jwt"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims, err := AccessClaimsFromToken(tt.token, secret, issuer, audience)
			require.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}
