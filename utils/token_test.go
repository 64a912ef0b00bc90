package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_AccessTokenRoundTrip(t *testing.T) {
	mgr := NewTokenManager("test-secret", 30, 1440)
	userID := uuid.New()

	token, err := mgr.CreateAccessToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := mgr.DecodeAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, userID, decoded)
}

func TestTokenManager_DecodeRejectsBadTokens(t *testing.T) {
	mgr := NewTokenManager("test-secret", 30, 1440)

	t.Run("garbage_token", func(t *testing.T) {
		_, err := mgr.DecodeAccessToken("not-a-jwt")
		require.Error(t, err)
	})

	t.Run("wrong_secret", func(t *testing.T) {
		other := NewTokenManager("other-secret", 30, 1440)
		token, err := other.CreateAccessToken(uuid.New())
		require.NoError(t, err)

		_, err = mgr.DecodeAccessToken(token)
		require.Error(t, err)
	})

	t.Run("expired_token", func(t *testing.T) {
		expired := NewTokenManager("test-secret", -1, 1440)
		token, err := expired.CreateAccessToken(uuid.New())
		require.NoError(t, err)

		_, err = mgr.DecodeAccessToken(token)
		require.Error(t, err)
	})
}

func TestTokenManager_VerifyRefreshToken(t *testing.T) {
	mgr := NewTokenManager("test-secret", 30, 1440)

	token, err := mgr.CreateRefreshToken()
	require.NoError(t, err)
	require.True(t, mgr.VerifyRefreshToken(token))

	require.False(t, mgr.VerifyRefreshToken("not-a-jwt"))

	expired := NewTokenManager("test-secret", 30, -1)
	token, err = expired.CreateRefreshToken()
	require.NoError(t, err)
	require.False(t, mgr.VerifyRefreshToken(token))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	require.True(t, CheckPassword("s3cret-pass", hash))
	require.False(t, CheckPassword("wrong-pass", hash))
}

func TestRandomHelpers(t *testing.T) {
	s := RandomString(8)
	require.Len(t, s, 8)
	require.NotEqual(t, s, RandomString(8))

	code := RandomOtpCode()
	require.GreaterOrEqual(t, code, 100000)
	require.LessOrEqual(t, code, 999999)
}
