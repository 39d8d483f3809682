package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mintToken(t *testing.T, claims *Claims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return signed
}

func TestEvaluate(t *testing.T) {
	now := time.Now()

	t.Run("absent token is unauthenticated without purge", func(t *testing.T) {
		res := Evaluate("", now)
		assert.Equal(t, StateUnauthenticated, res.State)
		assert.False(t, res.Purge)
		assert.Nil(t, res.Claims)
	})

	t.Run("valid token is authenticated with claims", func(t *testing.T) {
		token := mintToken(t, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "u1",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
			Name: "Ann",
		})

		res := Evaluate(token, now)
		require.Equal(t, StateAuthenticated, res.State)
		require.NotNil(t, res.Claims)
		assert.Equal(t, "u1", res.Claims.Subject)
		assert.Equal(t, "Ann", res.Claims.Name)
		assert.Equal(t, token, res.Token)
		assert.False(t, res.Purge)
	})

	t.Run("expired token is unauthenticated and purged", func(t *testing.T) {
		token := mintToken(t, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "u1",
				ExpiresAt: jwt.NewNumericDate(now.Add(-time.Second)),
			},
		})

		res := Evaluate(token, now)
		assert.Equal(t, StateUnauthenticated, res.State)
		assert.True(t, res.Purge)
		assert.Nil(t, res.Claims)
	})

	t.Run("expiry equal to now counts as expired", func(t *testing.T) {
		exp := now.Truncate(time.Second)
		token := mintToken(t, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(exp),
			},
		})

		res := Evaluate(token, exp)
		assert.Equal(t, StateUnauthenticated, res.State)
		assert.True(t, res.Purge)
	})

	t.Run("malformed token is unauthenticated and purged", func(t *testing.T) {
		res := Evaluate("not-a-jwt", now)
		assert.Equal(t, StateUnauthenticated, res.State)
		assert.True(t, res.Purge)
	})

	t.Run("token without expiry is treated as malformed", func(t *testing.T) {
		token := mintToken(t, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
		})

		res := Evaluate(token, now)
		assert.Equal(t, StateUnauthenticated, res.State)
		assert.True(t, res.Purge)
	})

	t.Run("evaluation is idempotent", func(t *testing.T) {
		token := mintToken(t, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "u1",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		})

		first := Evaluate(token, now)
		second := Evaluate(token, now)
		assert.Equal(t, first.State, second.State)
		assert.Equal(t, first.Purge, second.Purge)
		assert.Equal(t, first.Claims.Subject, second.Claims.Subject)
	})
}
