package services_test

import (
	"testing"

	"broadcast_backend/internal/services/dto"
	"broadcast_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_BroadcastTable(t *testing.T) {
	f := newFixture(t)
	f.createBroadcast(t, f.siteRequest("Bravo"))
	f.createBroadcast(t, f.courseRequest("Alpha"))

	table, err := f.reports.GetBroadcastTable(f.DB, f.admin, &dto.BroadcastTableQuery{Sort: "title", Order: "asc"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), table.Total)
	assert.Equal(t, 1, table.TotalPages)
	require.Len(t, table.Broadcasts, 2)
	assert.Equal(t, "Alpha", table.Broadcasts[0].Title)
	assert.Equal(t, "course", table.Broadcasts[0].ScopeLevel)
	assert.Equal(t, "Physics", table.Broadcasts[0].ContextName)
	assert.Equal(t, "system", table.Broadcasts[1].ScopeLevel)
	// окно 2020 года давно закрыто
	assert.True(t, table.Broadcasts[0].Expired)

	_, err = f.reports.GetBroadcastTable(f.DB, f.student, &dto.BroadcastTableQuery{}, 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestReportService_AcknowledgementReport(t *testing.T) {
	f := newFixture(t)
	id := f.createBroadcast(t, f.siteRequest("Read me"))
	other := f.createBroadcast(t, f.siteRequest("Other"))
	require.NoError(t, f.broadcasts.AcknowledgeBroadcast(f.DB, f.student, f.courseCtx.ID, id))
	require.NoError(t, f.broadcasts.AcknowledgeBroadcast(f.DB, f.teacher, f.Site.ID, other))

	report, err := f.reports.GetAcknowledgementReport(f.DB, f.admin, id, 1, 20)
	require.NoError(t, err)
	require.Len(t, report.Entries, 1)
	entry := report.Entries[0]
	assert.Equal(t, f.student.UserID, entry.UserID)
	assert.Equal(t, "student@test.com", entry.Email)
	assert.Equal(t, "Physics", entry.Location)
	assert.Equal(t, "Read me", entry.BroadcastTitle)

	all, err := f.reports.GetAcknowledgementReport(f.DB, f.admin, 0, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)

	_, err = f.reports.GetAcknowledgementReport(f.DB, f.admin, id+100, 1, 20)
	assert.ErrorIs(t, err, apperrors.ErrBroadcastNotFound)
}
