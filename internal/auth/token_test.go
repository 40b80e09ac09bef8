package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fashion-oms/oms-service/internal/auth"
	"github.com/fashion-oms/oms-service/internal/domain"
)

func TestTokenManager(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		tm := auth.NewTokenManager("secret", 5)

		token, exp, err := tm.GenerateToken("e1", domain.EmployeeRoleAdmin)
		require.NoError(t, err)
		assert.False(t, exp.IsZero())

		claims, err := tm.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, "e1", claims.EmployeeID)
		assert.Equal(t, domain.EmployeeRoleAdmin, claims.Role)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		issuer := auth.NewTokenManager("secret-a", 5)
		verifier := auth.NewTokenManager("secret-b", 5)

		token, _, err := issuer.GenerateToken("e1", domain.EmployeeRoleStaff)
		require.NoError(t, err)

		_, err = verifier.ParseToken(token)
		require.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		tm := auth.NewTokenManager("secret", 5)
		_, err := tm.ParseToken("not-a-jwt")
		require.Error(t, err)
	})
}
