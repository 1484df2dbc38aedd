package auth

import (
	"testing"
	"time"

	"canteen/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			JWTSecret: "test_secret_key_very_long_for_testing",
			Issuer:    "https://id.campus.test",
			Audience:  "authenticated",
		},
	}
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.GenerateAccessToken(userID, "student@campus.test", time.Minute)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "student@campus.test", claims.Email)
	assert.Equal(t, "https://id.campus.test", claims.Issuer)
}

func TestJWTService_MissingSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})

	assert.Error(t, err)
}

func TestJWTService_RejectsInvalidTokens(t *testing.T) {
	cfg := newTestConfig()
	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	other := newTestConfig()
	other.Auth.JWTSecret = "another_secret_key_very_long_for_testing"
	otherSvc, err := NewJWTService(other)
	require.NoError(t, err)

	wrongAudience := newTestConfig()
	wrongAudience.Auth.Audience = "service_role"
	wrongAudienceSvc, err := NewJWTService(wrongAudience)
	require.NoError(t, err)

	userID := uuid.New()
	foreignToken, err := otherSvc.GenerateAccessToken(userID, "", time.Minute)
	require.NoError(t, err)
	audienceToken, err := wrongAudienceSvc.GenerateAccessToken(userID, "", time.Minute)
	require.NoError(t, err)

	expiredSvc := svc.(*jwtService)
	expiredSvc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expiredSvc.GenerateAccessToken(userID, "", time.Minute)
	require.NoError(t, err)
	expiredSvc.now = time.Now

	nonUUIDToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		Issuer:    cfg.Auth.Issuer,
		Audience:  jwt.ClaimStrings{cfg.Auth.Audience},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte(cfg.Auth.JWTSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "clearly-not-a-jwt-token-format"},
		{name: "wrong secret", token: foreignToken},
		{name: "wrong audience", token: audienceToken},
		{name: "expired", token: expiredToken},
		{name: "subject not uuid", token: nonUUIDToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}
