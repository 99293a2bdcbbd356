package services_test

import (
	"testing"
	"time"

	"broadcast_backend/internal/repositories"
	"broadcast_backend/internal/services"
	"broadcast_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextService_AncestorsCachedCopy(t *testing.T) {
	f := newFixture(t)
	svc := services.NewContextService(repositories.NewContextRepository(), f.Site.ID, time.Minute)

	chain, err := svc.AncestorIDs(f.DB, f.courseCtx.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{f.Site.ID, f.categoryCtx.ID, f.courseCtx.ID}, chain)

	// изменение результата не портит кэш
	chain[0] = 0
	again, err := svc.AncestorIDs(f.DB, f.courseCtx.ID)
	require.NoError(t, err)
	assert.Equal(t, f.Site.ID, again[0])

	_, err = svc.AncestorIDs(f.DB, 9999)
	assert.ErrorIs(t, err, apperrors.ErrContextNotFound)

	names, err := svc.ContextNames(f.DB, again)
	require.NoError(t, err)
	assert.Equal(t, "Physics", names[f.courseCtx.ID])
	assert.Equal(t, "System", names[f.Site.ID])
}
