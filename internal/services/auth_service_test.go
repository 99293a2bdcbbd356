package services_test

import (
	"testing"

	"broadcast_backend/internal/models"
	"broadcast_backend/internal/services/dto"
	"broadcast_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_LoginUpdatesLastLogin(t *testing.T) {
	f := newFixture(t)

	resp, err := f.auth.Login(f.DB, &dto.LoginRequest{Email: "student@test.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, f.student.UserID, resp.User.ID)
	assert.NotZero(t, resp.User.LastLogin)

	claims, err := f.auth.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, f.student.UserID, claims.UserID)
	assert.False(t, claims.SiteAdmin)

	user, err := f.userRepo.FindByID(f.DB, f.student.UserID)
	require.NoError(t, err)
	assert.Equal(t, resp.User.LastLogin, user.LastLogin)
}

func TestAuthService_BadCredentials(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Login(f.DB, &dto.LoginRequest{Email: "student@test.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.auth.Login(f.DB, &dto.LoginRequest{Email: "nobody@test.com", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.auth.ParseToken("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestUserService_CreateAndAssign(t *testing.T) {
	f := newFixture(t)

	user, err := f.users.CreateUser(f.DB, &dto.CreateUserRequest{
		Email: "new@test.com", Password: "password123", FirstName: "New",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@test.com", user.Email)

	_, err = f.users.CreateUser(f.DB, &dto.CreateUserRequest{Email: "new@test.com", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	err = f.users.AssignRole(f.DB, &dto.AssignRoleRequest{UserID: user.ID, ContextID: f.courseCtx.ID, Role: models.RoleManager})
	require.NoError(t, err)

	err = f.users.AssignRole(f.DB, &dto.AssignRoleRequest{UserID: user.ID, ContextID: 9999, Role: models.RoleManager})
	assert.ErrorIs(t, err, apperrors.ErrContextNotFound)

	err = f.users.AssignRole(f.DB, &dto.AssignRoleRequest{UserID: 9999, ContextID: f.courseCtx.ID, Role: models.RoleManager})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
