package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/travelia/travelia-backend/internal/config"
	"github.com/travelia/travelia-backend/internal/service"
)

func newAuthService() *service.AuthService {
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: 4, // min cost keeps the test fast
	}
	return service.NewAuthService(cfg, nil)
}

// TestPasswordHashing verifies a hashed password round-trips and a wrong
// password is rejected with the credentials sentinel.
func TestPasswordHashing(t *testing.T) {
	svc := newAuthService()

	hash, err := svc.HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)

	require.NoError(t, svc.CheckPassword(hash, "hunter22"))
	require.ErrorIs(t, svc.CheckPassword(hash, "wrong"), service.ErrInvalidCredentials)
}

// signTestToken builds a token the way GenerateToken does, without the
// session registry side effect.
func signTestToken(t *testing.T, secret string, claims service.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// TestValidateToken verifies claims survive a sign/parse round trip.
func TestValidateToken(t *testing.T) {
	svc := newAuthService()

	now := time.Now()
	signed := signTestToken(t, "test-secret", service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			Subject:   "42",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		AdminID: 42,
		Role:    "admin",
	})

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	require.Equal(t, 42, claims.AdminID)
	require.Equal(t, "admin", claims.Role)
	require.Equal(t, "jti-1", claims.ID)
}

// TestValidateToken_wrongSecret verifies a token signed with another
// secret fails validation.
func TestValidateToken_wrongSecret(t *testing.T) {
	svc := newAuthService()

	signed := signTestToken(t, "other-secret", service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		AdminID: 1,
		Role:    "admin",
	})

	_, err := svc.ValidateToken(signed)
	require.Error(t, err)
}

// TestValidateToken_expired verifies an expired token is rejected.
func TestValidateToken_expired(t *testing.T) {
	svc := newAuthService()

	signed := signTestToken(t, "test-secret", service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		AdminID: 1,
		Role:    "admin",
	})

	_, err := svc.ValidateToken(signed)
	require.Error(t, err)
}

// TestValidateToken_garbage verifies a malformed token is rejected.
func TestValidateToken_garbage(t *testing.T) {
	svc := newAuthService()

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
}
