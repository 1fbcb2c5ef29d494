package utils_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-ticket-booking/internal/utils"
)

func TestNewAccessToken_RoundTrip(t *testing.T) {
	secret := "test-secret"
	tok, err := utils.NewAccessToken(secret, 42, "CUSTOMER", 15)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), tok.Exp, 5*time.Second)

	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.EqualValues(t, 42, claims["sub"])
	assert.Equal(t, "CUSTOMER", claims["role"])
}

func TestNewAccessToken_WrongSecretRejected(t *testing.T) {
	tok, err := utils.NewAccessToken("right-secret", 1, "ADMIN", 5)
	require.NoError(t, err)

	_, err = jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	assert.Error(t, err)
}

func TestNewRefreshToken_UniqueAndHashed(t *testing.T) {
	a, err := utils.NewRefreshToken(7)
	require.NoError(t, err)
	b, err := utils.NewRefreshToken(7)
	require.NoError(t, err)

	assert.Len(t, a.Raw, 96)
	assert.NotEqual(t, a.Raw, b.Raw)

	// Hashing is deterministic and never equals the raw token.
	assert.Equal(t, utils.HashRefreshRaw(a.Raw), utils.HashRefreshRaw(a.Raw))
	assert.NotEqual(t, a.Raw, utils.HashRefreshRaw(a.Raw))
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := utils.HashPassword("s3cret-password", 4)
	require.NoError(t, err)

	assert.True(t, utils.VerifyPassword(hash, "s3cret-password"))
	assert.False(t, utils.VerifyPassword(hash, "wrong-password"))
}
