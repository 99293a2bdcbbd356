package services_test

import (
	"testing"

	"broadcast_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrivacyService_ExportAndDelete(t *testing.T) {
	f := newFixture(t)
	first := f.createBroadcast(t, f.siteRequest("One"))
	second := f.createBroadcast(t, f.siteRequest("Two"))
	require.NoError(t, f.broadcasts.AcknowledgeBroadcast(f.DB, f.student, f.courseCtx.ID, first))
	require.NoError(t, f.broadcasts.AcknowledgeBroadcast(f.DB, f.student, f.Site.ID, second))

	export, err := f.privacy.ExportUserData(f.DB, f.student.UserID)
	require.NoError(t, err)
	assert.Len(t, export.Acknowledgements, 2)

	deleted, err := f.privacy.DeleteContextData(f.DB, f.courseCtx.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = f.privacy.DeleteUserData(f.DB, f.student.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	// после удаления подтверждений рассылки снова видны
	assert.Equal(t, []uint{first, second}, visibleIDs(t, f, f.student, f.courseCtx.ID, activeFrom+1))
}

func TestPrivacyService_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.privacy.ExportUserData(f.DB, 9999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, err = f.privacy.DeleteContextData(f.DB, 9999)
	assert.ErrorIs(t, err, apperrors.ErrContextNotFound)

	deleted, err := f.privacy.DeleteUserData(f.DB, 9999)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
