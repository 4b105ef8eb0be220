package util

import (
	"testing"
	"time"

	"lms_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{
		TenantID: "tenant-1",
		Email:    "s@example.com",
		Role:     model.Student,
	}
	user.ID = "user-1"

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "tenant-1", claims.TenantID)
	assert.Equal(t, model.Student, claims.Role)
	assert.Equal(t, "s@example.com", claims.Email)
}

func TestJWTWrongSecret(t *testing.T) {
	user := &model.User{TenantID: "tenant-1", Role: model.Student}
	user.ID = "user-1"

	token, err := GenerateJWT(user, "secret-a", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret-b")
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	user := &model.User{TenantID: "tenant-1", Role: model.Student}
	user.ID = "user-1"

	token, err := GenerateJWT(user, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret")
	assert.Error(t, err)
}
