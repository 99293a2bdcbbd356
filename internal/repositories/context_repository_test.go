package repositories_test

import (
	"fmt"
	"testing"

	"broadcast_backend/internal/models"
	"broadcast_backend/internal/repositories"
	"broadcast_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextRepository_Tree(t *testing.T) {
	tdb := testutil.NewTestDB(t)
	repo := repositories.NewContextRepository()

	assert.Equal(t, fmt.Sprintf("/%d", tdb.Site.ID), tdb.Site.Path)
	assert.Equal(t, 1, tdb.Site.Depth)

	cat, catCtx := tdb.CreateCategory(t, "Science", tdb.Site)
	course, courseCtx := tdb.CreateCourse(t, "Physics", cat.ID, catCtx)

	assert.Equal(t, fmt.Sprintf("/%d/%d", tdb.Site.ID, catCtx.ID), catCtx.Path)
	assert.Equal(t, 3, courseCtx.Depth)

	found, err := repo.FindByInstance(tdb.DB, models.ContextLevelCourse, course.ID)
	require.NoError(t, err)
	assert.Equal(t, courseCtx.ID, found.ID)

	chain, err := found.AncestorIDs()
	require.NoError(t, err)
	assert.Equal(t, []uint{tdb.Site.ID, catCtx.ID, courseCtx.ID}, chain)

	byIDs, err := repo.FindByIDs(tdb.DB, chain)
	require.NoError(t, err)
	require.Len(t, byIDs, 3)
	assert.Equal(t, tdb.Site.ID, byIDs[0].ID, "по глубине: сначала корень")
}

func TestContextRepository_NotFound(t *testing.T) {
	tdb := testutil.NewTestDB(t)
	repo := repositories.NewContextRepository()

	_, err := repo.FindByID(tdb.DB, 999)
	assert.ErrorIs(t, err, repositories.ErrContextNotFound)

	_, err = repo.FindByInstance(tdb.DB, models.ContextLevelCategory, 999)
	assert.ErrorIs(t, err, repositories.ErrContextNotFound)

	_, err = repo.CreateChild(tdb.DB, nil, models.ContextLevelCategory, 1, "orphan")
	assert.ErrorIs(t, err, repositories.ErrContextNotFound)
}

func TestUserRepository_RolesAndLogin(t *testing.T) {
	tdb := testutil.NewTestDB(t)
	repo := repositories.NewUserRepository()
	user := tdb.CreateUser(t, "teacher@test.com", "password123", false)

	err := repo.Create(tdb.DB, &models.User{Email: "teacher@test.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, repositories.ErrUserAlreadyExists)

	tdb.AssignRole(t, user.ID, tdb.Site.ID, models.RoleTeacher)
	tdb.AssignRole(t, user.ID, tdb.Site.ID, models.RoleTeacher)

	roles, err := repo.FindRoles(tdb.DB, user.ID)
	require.NoError(t, err)
	assert.Len(t, roles, 1, "повторное назначение игнорируется")

	roles, err = repo.FindRolesInContexts(tdb.DB, user.ID, []uint{tdb.Site.ID + 100})
	require.NoError(t, err)
	assert.Empty(t, roles)

	require.NoError(t, repo.UpdateLastLogin(tdb.DB, user.ID, 1591842950))
	got, err := repo.FindByEmail(tdb.DB, "teacher@test.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1591842950), got.LastLogin)

	_, err = repo.FindByID(tdb.DB, user.ID+100)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}
