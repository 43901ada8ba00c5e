package jwt

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTripsClaims(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	dept := "dept-1"

	token, exp, err := svc.GenerateAccessToken("user-1", user.RoleDepartmentHead, &dept)
	require.NoError(t, err)
	assert.Greater(t, exp, time.Now().Unix())

	parsed, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := parsed.AsMap(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, string(user.RoleDepartmentHead), claims["role"])
	assert.Equal(t, "dept-1", claims["department_id"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestGenerateAccessToken_OtherSecretRejected(t *testing.T) {
	token, _, err := NewJWTService("a", time.Hour).GenerateAccessToken("u", user.RoleAdmin, nil)
	require.NoError(t, err)

	_, err = NewJWTService("b", time.Hour).JWTAuth().Decode(token)
	assert.Error(t, err)
}
