package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("alice", testSecret, time.Hour, TokenIssuer)
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, TokenIssuer, claims.Issuer)
}

func TestParseAndValidateJWT_Rejects(t *testing.T) {
	expired, err := GenerateJWT("alice", testSecret, -time.Minute, TokenIssuer)
	require.NoError(t, err)
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	otherKey, err := GenerateJWT("alice", "another-secret", time.Hour, TokenIssuer)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"expired", expired, jwt.ErrTokenExpired},
		{"no subject", noSubject, ErrMissingSubject},
		{"wrong key", otherKey, jwt.ErrTokenSignatureInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAndValidateJWT(tt.token, testSecret)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err = GenerateJWT("", testSecret, time.Hour, TokenIssuer)
	assert.ErrorIs(t, err, ErrMissingSubject)
}
