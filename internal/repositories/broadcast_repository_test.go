package repositories_test

import (
	"testing"

	"broadcast_backend/internal/models"
	"broadcast_backend/internal/repositories"
	"broadcast_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	activeFrom  int64 = 1591842960
	activeUntil int64 = 1591846560
)

func siteBroadcast(tdb *testutil.TestDB, title string) *models.Broadcast {
	return &models.Broadcast{
		ContextID:   tdb.Site.ID,
		Title:       title,
		Body:        "<p>" + title + "</p>",
		BodyFormat:  models.FormatHTML,
		Mode:        models.BroadcastModeModal,
		TimeCreated: activeFrom - 100,
		TimeStart:   activeFrom,
		TimeEnd:     activeUntil,
	}
}

func TestBroadcastRepository_VisibleWindowIsStrict(t *testing.T) {
	tdb := testutil.NewTestDB(t)
	repo := repositories.NewBroadcastRepository()
	b := tdb.CreateBroadcast(t, siteBroadcast(tdb, "Window"))

	filter := repositories.VisibilityFilter{ContextIDs: []uint{tdb.Site.ID}, UserID: 5}

	for _, tc := range []struct {
		now  int64
		want bool
	}{
		{activeFrom - 1, false},
		{activeFrom, false},
		{activeFrom + 1, true},
		{activeUntil - 1, true},
		{activeUntil, false},
		{activeUntil + 10, false},
	} {
		filter.Now = tc.now
		found, err := repo.FindVisible(tdb.DB, filter)
		require.NoError(t, err)
		has, err := repo.HasVisible(tdb.DB, filter)
		require.NoError(t, err)

		assert.Equal(t, tc.want, has, "now=%d", tc.now)
		if tc.want {
			require.Len(t, found, 1)
			assert.Equal(t, b.ID, found[0].ID)
		} else {
			assert.Empty(t, found, "now=%d", tc.now)
		}
	}
}

func TestBroadcastRepository_VisibleOnlyInChain(t *testing.T) {
	tdb := testutil.NewTestDB(t)
	repo := repositories.NewBroadcastRepository()
	_, catCtx := tdb.CreateCategory(t, "Science", tdb.Site)
	_, otherCtx := tdb.CreateCategory(t, "Arts", tdb.Site)

	b := siteBroadcast(tdb, "Science only")
	b.ContextID = catCtx.ID
	tdb.CreateBroadcast(t, b)

	filter := repositories.VisibilityFilter{Now: activeFrom + 1, UserID: 5}

	filter.ContextIDs = []uint{tdb.Site.ID, catCtx.ID}
	found, err := repo.FindVisible(tdb.DB, filter)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	filter.ContextIDs = []uint{tdb.Site.ID, otherCtx.ID}
	found, err = repo.FindVisible(tdb.DB, filter)
	require.NoError(t, err)
	assert.Empty(t, found)

	filter.ContextIDs = nil
	has, err := repo.HasVisible(tdb.DB, filter)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestBroadcastRepository_LoggedInRule(t *testing.T) {
	tdb := testutil.NewTestDB(t)
	repo := repositories.NewBroadcastRepository()
	b := siteBroadcast(tdb, "Logged in only")
	b.LoggedIn = true
	tdb.CreateBroadcast(t, b)

	filter := repositories.VisibilityFilter{ContextIDs: []uint{tdb.Site.ID}, UserID: 5, Now: activeFrom + 10}

	for _, tc := range []struct {
		lastLogin int64
		want      bool
	}{
		{0, true},
		{activeFrom - 10, true},
		{activeFrom, true},
		{activeFrom + 1, false},
	} {
		filter.LastLogin = tc.lastLogin
		has, err := repo.HasVisible(tdb.DB, filter)
		require.NoError(t, err)
		assert.Equal(t, tc.want, has, "lastLogin=%d", tc.lastLogin)
	}
}

func TestBroadcastRepository_AcknowledgementHidesPerUser(t *testing.T) {
	tdb := testutil.NewTestDB(t)
	repo := repositories.NewBroadcastRepository()
	b := tdb.CreateBroadcast(t, siteBroadcast(tdb, "Ack"))

	ack := &models.BroadcastAcknowledgement{BroadcastID: b.ID, UserID: 5, ContextID: tdb.Site.ID, AckTime: activeFrom + 5}
	require.NoError(t, repo.CreateAcknowledgement(tdb.DB, ack))
	// повтор не создает вторую строку
	require.NoError(t, repo.CreateAcknowledgement(tdb.DB, &models.BroadcastAcknowledgement{
		BroadcastID: b.ID, UserID: 5, ContextID: tdb.Site.ID, AckTime: activeFrom + 6,
	}))

	count, err := repo.CountAcknowledgements(tdb.DB, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	filter := repositories.VisibilityFilter{ContextIDs: []uint{tdb.Site.ID}, Now: activeFrom + 10}

	filter.UserID = 5
	has, err := repo.HasVisible(tdb.DB, filter)
	require.NoError(t, err)
	assert.False(t, has)

	filter.UserID = 6
	has, err = repo.HasVisible(tdb.DB, filter)
	require.NoError(t, err)
	assert.True(t, has, "подтверждение одного пользователя не скрывает рассылку от других")
}

func TestBroadcastRepository_DeleteCascadesAcknowledgements(t *testing.T) {
	tdb := testutil.NewTestDB(t)
	repo := repositories.NewBroadcastRepository()
	b := tdb.CreateBroadcast(t, siteBroadcast(tdb, "Doomed"))

	for _, userID := range []uint{5, 6, 7} {
		require.NoError(t, repo.CreateAcknowledgement(tdb.DB, &models.BroadcastAcknowledgement{
			BroadcastID: b.ID, UserID: userID, ContextID: tdb.Site.ID, AckTime: activeFrom + 1,
		}))
	}

	require.NoError(t, repo.Delete(tdb.DB, b.ID))

	count, err := repo.CountAcknowledgements(tdb.DB, b.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = repo.FindByID(tdb.DB, b.ID)
	assert.ErrorIs(t, err, repositories.ErrBroadcastNotFound)

	assert.ErrorIs(t, repo.Delete(tdb.DB, b.ID), repositories.ErrBroadcastNotFound)
}

func TestBroadcastRepository_UpdateKeepsTimeCreated(t *testing.T) {
	tdb := testutil.NewTestDB(t)
	repo := repositories.NewBroadcastRepository()
	b := tdb.CreateBroadcast(t, siteBroadcast(tdb, "Before"))

	changed := &models.Broadcast{
		BaseModel:  models.BaseModel{ID: b.ID},
		ContextID:  tdb.Site.ID,
		Title:      "After",
		BodyFormat: models.FormatMoodle,
		Mode:       models.BroadcastModeBoth,
		TimeStart:  activeFrom + 100,
		TimeEnd:    activeUntil + 100,
	}
	require.NoError(t, repo.Update(tdb.DB, changed))

	got, err := repo.FindByID(tdb.DB, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Title)
	assert.Equal(t, models.FormatMoodle, got.BodyFormat)
	assert.Equal(t, models.BroadcastModeBoth, got.Mode)
	assert.Equal(t, b.TimeCreated, got.TimeCreated)

	changed.ID = b.ID + 100
	assert.ErrorIs(t, repo.Update(tdb.DB, changed), repositories.ErrBroadcastNotFound)
}

func TestBroadcastRepository_FindNamesOrderedByTitle(t *testing.T) {
	tdb := testutil.NewTestDB(t)
	repo := repositories.NewBroadcastRepository()
	tdb.CreateBroadcast(t, siteBroadcast(tdb, "Charlie"))
	tdb.CreateBroadcast(t, siteBroadcast(tdb, "Alpha"))
	tdb.CreateBroadcast(t, siteBroadcast(tdb, "Bravo"))

	names, err := repo.FindNames(tdb.DB)
	require.NoError(t, err)
	require.Len(t, names, 3)
	assert.Equal(t, "Alpha", names[0].Title)
	assert.Equal(t, "Bravo", names[1].Title)
	assert.Equal(t, "Charlie", names[2].Title)
}

func TestBroadcastRepository_FindWithPagination(t *testing.T) {
	tdb := testutil.NewTestDB(t)
	repo := repositories.NewBroadcastRepository()
	for _, title := range []string{"b", "a", "c"} {
		tdb.CreateBroadcast(t, siteBroadcast(tdb, title))
	}

	rows, total, err := repo.FindWithPagination(tdb.DB, repositories.BroadcastTableCriteria{
		SortBy: "title", Order: "asc", Page: 1, PageSize: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].Title)
	assert.Equal(t, "b", rows[1].Title)
	assert.Equal(t, "System", rows[0].ContextName)
	assert.Equal(t, int(models.ContextLevelSystem), rows[0].ContextLevel)
}

func TestBroadcastRepository_AcknowledgementReportAndPrivacy(t *testing.T) {
	tdb := testutil.NewTestDB(t)
	repo := repositories.NewBroadcastRepository()
	user := tdb.CreateUser(t, "student@test.com", "password123", false)
	b := tdb.CreateBroadcast(t, siteBroadcast(tdb, "Report"))

	require.NoError(t, repo.CreateAcknowledgement(tdb.DB, &models.BroadcastAcknowledgement{
		BroadcastID: b.ID, UserID: user.ID, ContextID: tdb.Site.ID, AckTime: activeFrom + 1,
	}))

	rows, total, err := repo.FindAcknowledgementReport(tdb.DB, b.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Report", rows[0].BroadcastTitle)
	assert.Equal(t, user.Email, rows[0].Email)
	assert.Equal(t, "System", rows[0].ContextName)

	acks, err := repo.FindAcknowledgementsByUser(tdb.DB, user.ID)
	require.NoError(t, err)
	assert.Len(t, acks, 1)

	deleted, err := repo.DeleteAcknowledgementsByContext(tdb.DB, tdb.Site.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = repo.DeleteAcknowledgementsByUser(tdb.DB, user.ID)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
