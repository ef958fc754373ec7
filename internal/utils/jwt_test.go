package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "HS256", time.Hour)

	token, err := m.GenerateToken(7, "cook", true)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "cook", claims.Username)
	assert.True(t, claims.IsAdmin)
	assert.NotEmpty(t, claims.ID)
	assert.InDelta(t, time.Hour.Seconds(), claims.RemainingTTL().Seconds(), 5)
}

func TestJWTTokensHaveDistinctIDs(t *testing.T) {
	m := NewJWTManager("secret", "HS256", time.Hour)

	a, err := m.GenerateToken(1, "a", false)
	require.NoError(t, err)
	b, err := m.GenerateToken(1, "a", false)
	require.NoError(t, err)

	ca, err := m.ValidateToken(a)
	require.NoError(t, err)
	cb, err := m.ValidateToken(b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestJWTRejectsForeignSecretAndExpired(t *testing.T) {
	m := NewJWTManager("secret", "HS256", time.Hour)
	other := NewJWTManager("other", "HS256", time.Hour)

	token, err := other.GenerateToken(1, "a", false)
	require.NoError(t, err)
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewJWTManager("secret", "HS256", -time.Minute)
	token, err = expired.GenerateToken(1, "a", false)
	require.NoError(t, err)
	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTRejectsOtherAlgorithm(t *testing.T) {
	hs384 := NewJWTManager("secret", "HS384", time.Hour)
	token, err := hs384.GenerateToken(1, "a", false)
	require.NoError(t, err)

	_, err = NewJWTManager("secret", "HS256", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewJWTManager("secret", "", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAuthorization(t *testing.T) {
	cases := []struct {
		header string
		token  string
		err    error
	}{
		{"Bearer abc", "abc", nil},
		{"Token abc", "abc", nil},
		{"token  abc ", "abc", nil},
		{"", "", ErrMissingToken},
		{"abc", "", ErrAuthScheme},
		{"Basic abc", "", ErrAuthScheme},
		{"Bearer ", "", ErrAuthScheme},
	}
	for _, tc := range cases {
		token, err := ParseAuthorization(tc.header)
		if tc.err != nil {
			assert.ErrorIs(t, err, tc.err, tc.header)
			continue
		}
		require.NoError(t, err, tc.header)
		assert.Equal(t, tc.token, token)
	}
}
