package service

import (
	"testing"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(env *testEnv) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(env.userRepo, env.tenantRepo, cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	user, err := auth.Register(env.tenant.ID, RegisterRequest{
		Email:    "s@example.com",
		Name:     "Student",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, model.Student, user.Role)
	assert.NotEqual(t, "password123", user.Password) // bcrypt散列

	resp, err := auth.Login(env.tenant.ID, LoginRequest{Email: "s@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	claims, err := util.ParseJWT(resp.Token, "test-secret-test-secret-test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, env.tenant.ID, claims.TenantID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	_, err := auth.Register(env.tenant.ID, RegisterRequest{Email: "s@example.com", Name: "A", Password: "password123"})
	require.NoError(t, err)

	_, err = auth.Register(env.tenant.ID, RegisterRequest{Email: "s@example.com", Name: "B", Password: "password123"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestRegisterSameEmailDifferentTenant(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	other := model.Tenant{Name: "Other", Subdomain: "other", MaxUsers: 10, Active: true}
	require.NoError(t, env.db.Create(&other).Error)

	// 邮箱唯一性以租户为边界
	_, err := auth.Register(env.tenant.ID, RegisterRequest{Email: "s@example.com", Name: "A", Password: "password123"})
	require.NoError(t, err)
	_, err = auth.Register(other.ID, RegisterRequest{Email: "s@example.com", Name: "B", Password: "password123"})
	assert.NoError(t, err)
}

func TestRegisterQuotaExceeded(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	require.NoError(t, env.db.Model(&model.Tenant{}).
		Where("id = ?", env.tenant.ID).
		Update("max_users", 1).Error)

	_, err := auth.Register(env.tenant.ID, RegisterRequest{Email: "a@example.com", Name: "A", Password: "password123"})
	require.NoError(t, err)

	_, err = auth.Register(env.tenant.ID, RegisterRequest{Email: "b@example.com", Name: "B", Password: "password123"})
	assert.ErrorIs(t, err, util.ErrTenantQuotaExceeded)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	_, err := auth.Register(env.tenant.ID, RegisterRequest{Email: "s@example.com", Name: "A", Password: "password123"})
	require.NoError(t, err)

	_, err = auth.Login(env.tenant.ID, LoginRequest{Email: "s@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = auth.Login(env.tenant.ID, LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestLoginDisabledUser(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	user, err := auth.Register(env.tenant.ID, RegisterRequest{Email: "s@example.com", Name: "A", Password: "password123"})
	require.NoError(t, err)
	require.NoError(t, env.userRepo.SetDisabled(env.tenant.ID, user.ID, true))

	_, err = auth.Login(env.tenant.ID, LoginRequest{Email: "s@example.com", Password: "password123"})
	assert.ErrorIs(t, err, util.ErrUserDisabled)
}
