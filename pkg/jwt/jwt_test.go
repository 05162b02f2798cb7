package jwt_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/pkg/jwt"
)

func mintToken(t *testing.T, secret string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.Claims{
		StaffID: "staff-1",
		Email:   "desk@example.com",
		Role:    "librarian",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateToken(t *testing.T) {
	manager := jwt.NewManager("test-secret")

	claims, err := manager.ValidateToken(mintToken(t, "test-secret", time.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "staff-1", claims.StaffID)
	assert.Equal(t, "librarian", claims.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	manager := jwt.NewManager("test-secret")

	_, err := manager.ValidateToken(mintToken(t, "other-secret", time.Now().Add(time.Hour)))
	require.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	manager := jwt.NewManager("test-secret")

	_, err := manager.ValidateToken(mintToken(t, "test-secret", time.Now().Add(-time.Minute)))
	require.Error(t, err)
}

func TestValidateToken_RejectsNonHMAC(t *testing.T) {
	manager := jwt.NewManager("test-secret")

	unsigned, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, jwtlib.RegisteredClaims{
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = manager.ValidateToken(unsigned)
	require.Error(t, err)
}
