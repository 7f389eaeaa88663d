package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adminhub/backend/internal/infrastructure/config"
)

func newTestService(mutate ...func(*config.JWTConfig)) *JWTService {
	cfg := config.JWTConfig{
		Secret:                 "access-secret-for-tests",
		RefreshSecret:          "refresh-secret-for-tests",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "adminhub-test",
		MaxRefreshCount:        3,
	}
	for _, m := range mutate {
		m(&cfg)
	}
	return NewJWTService(cfg)
}

func testInput() GenerateTokenInput {
	return GenerateTokenInput{
		TenantID:     uuid.New(),
		UserID:       uuid.New(),
		Username:     "alice",
		RoleIDs:      []uuid.UUID{uuid.New()},
		Capabilities: []string{"company:read", "company:write"},
	}
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestService()
	input := testInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))

	t.Run("access token carries the full identity", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, input.TenantID.String(), claims.TenantID)
		assert.Equal(t, input.UserID.String(), claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, input.Capabilities, claims.Capabilities)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("refresh token stays minimal", func(t *testing.T) {
		claims, err := svc.ValidateRefreshToken(pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, claims.TokenType)
		assert.Empty(t, claims.Username)
		assert.Empty(t, claims.Capabilities)
		assert.Zero(t, claims.RefreshCount)
	})

	t.Run("each pair gets distinct JTIs", func(t *testing.T) {
		second, err := svc.GenerateTokenPair(input)
		require.NoError(t, err)

		first, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		other, err := svc.ValidateAccessToken(second.AccessToken)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, other.ID)
	})
}

func TestValidateAccessToken(t *testing.T) {
	svc := newTestService()

	t.Run("rejects a refresh token", func(t *testing.T) {
		pair, err := svc.GenerateTokenPair(testInput())
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a tampered token", func(t *testing.T) {
		pair, err := svc.GenerateTokenPair(testInput())
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken + "x")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := newTestService(func(cfg *config.JWTConfig) { cfg.Secret = "some-other-secret" })
		pair, err := other.GenerateTokenPair(testInput())
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := newTestService(func(cfg *config.JWTConfig) { cfg.AccessTokenExpiration = -time.Minute })
		pair, err := expired.GenerateTokenPair(testInput())
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestRefreshTokenPair(t *testing.T) {
	svc := newTestService()

	t.Run("rotation increments the refresh count", func(t *testing.T) {
		pair, err := svc.GenerateTokenPair(testInput())
		require.NoError(t, err)

		rotated, err := svc.RefreshTokenPair(pair.RefreshToken, []string{"company:read"})
		require.NoError(t, err)

		claims, err := svc.ValidateRefreshToken(rotated.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, 1, claims.RefreshCount)
	})

	t.Run("new access token carries the supplied capabilities", func(t *testing.T) {
		pair, err := svc.GenerateTokenPair(testInput())
		require.NoError(t, err)

		rotated, err := svc.RefreshTokenPair(pair.RefreshToken, []string{"project:read"})
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(rotated.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, []string{"project:read"}, claims.Capabilities)
	})

	t.Run("the chain dies at the configured maximum", func(t *testing.T) {
		limited := newTestService(func(cfg *config.JWTConfig) { cfg.MaxRefreshCount = 2 })
		pair, err := limited.GenerateTokenPair(testInput())
		require.NoError(t, err)

		refreshToken := pair.RefreshToken
		for i := 0; i < 2; i++ {
			rotated, err := limited.RefreshTokenPair(refreshToken, nil)
			require.NoError(t, err)
			refreshToken = rotated.RefreshToken
		}

		_, err = limited.RefreshTokenPair(refreshToken, nil)
		assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
	})

	t.Run("an access token cannot be used as a refresh token", func(t *testing.T) {
		pair, err := svc.GenerateTokenPair(testInput())
		require.NoError(t, err)

		_, err = svc.RefreshTokenPair(pair.AccessToken, nil)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestClaims_HasCapability(t *testing.T) {
	claims := &Claims{Capabilities: []string{"company:read", "project:write"}}

	assert.True(t, claims.HasCapability("company:read"))
	assert.False(t, claims.HasCapability("company:write"))
	// Exact matches only: neither prefixes nor wildcards grant anything.
	assert.False(t, claims.HasCapability("company"))
	assert.False(t, claims.HasCapability("company:*"))
	assert.False(t, claims.HasCapability("*"))
}

func TestClaims_GetRemainingTTL(t *testing.T) {
	svc := newTestService()
	pair, err := svc.GenerateTokenPair(testInput())
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	ttl := claims.GetRemainingTTL()
	assert.Greater(t, ttl, 14*time.Minute)
	assert.LessOrEqual(t, ttl, 15*time.Minute)

	assert.Zero(t, (&Claims{}).GetRemainingTTL())
}

func TestNewJWTService_RefreshSecretFallback(t *testing.T) {
	svc := newTestService(func(cfg *config.JWTConfig) { cfg.RefreshSecret = "" })
	pair, err := svc.GenerateTokenPair(testInput())
	require.NoError(t, err)

	// With no dedicated refresh secret the access secret signs both tokens.
	_, err = svc.ValidateRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)
}
