package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken("user-uid-1", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	uid, err := VerifyAccessToken(token, "secret")
	require.NoError(t, err)
	require.Equal(t, "user-uid-1", uid)
}

func TestVerifyAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken("user-uid-1", "secret")
	require.NoError(t, err)

	_, err = VerifyAccessToken(token, "other-secret")
	require.Error(t, err)
}

func TestVerifyAccessTokenGarbage(t *testing.T) {
	_, err := VerifyAccessToken("not-a-token", "secret")
	require.Error(t, err)
}
