package db_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/balkashynov/breathe/internal/catalog"
	"github.com/balkashynov/breathe/internal/db"
	"github.com/balkashynov/breathe/internal/models"
)

func openTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, db.Initialize(filepath.Join(t.TempDir(), "nested", "breathe.db")))
	t.Cleanup(func() { _ = db.Close() })
}

func TestInitializeRejectsEmptyPath(t *testing.T) {
	assert.Error(t, db.Initialize(""))
}

func TestLoadPreferencesCreatesDefaults(t *testing.T) {
	openTestDB(t)

	pref, err := db.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultModeID, pref.ModeID)
	assert.Equal(t, "none", pref.Voice)
	assert.Equal(t, 0.7, pref.BackgroundVolume)
}

func TestSavePreferences(t *testing.T) {
	openTestDB(t)

	require.NoError(t, db.SaveMode(0))
	require.NoError(t, db.SaveVoice(catalog.VoiceAmara))
	require.NoError(t, db.SaveVolume(0))

	pref, err := db.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, 0, pref.ModeID)
	assert.Equal(t, "amara", pref.Voice)
	assert.Equal(t, 0.0, pref.BackgroundVolume)

	assert.Error(t, db.SaveMode(99))
	assert.Error(t, db.SaveVolume(1.2))
}

func TestSaveTrack(t *testing.T) {
	openTestDB(t)

	pref, err := db.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, catalog.SilenceTrackID, pref.TrackID)

	require.NoError(t, db.SaveTrack(5))
	pref, err = db.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, 5, pref.TrackID)

	assert.Error(t, db.SaveTrack(16))
	assert.Error(t, db.SaveTrack(-1))
}

func TestDefaultVolumeSeedsFirstRun(t *testing.T) {
	openTestDB(t)
	db.SetDefaultVolume(0.25)
	t.Cleanup(func() { db.SetDefaultVolume(0.7) })

	// out of range is ignored
	db.SetDefaultVolume(3)

	pref, err := db.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, 0.25, pref.BackgroundVolume)

	// an existing row keeps its level
	db.SetDefaultVolume(0.9)
	pref, err = db.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, 0.25, pref.BackgroundVolume)
}

func TestStoryVoiceResetsOnLoad(t *testing.T) {
	openTestDB(t)

	require.NoError(t, db.SaveVoice(catalog.VoiceKaiTwoMinutes))

	pref, err := db.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, "none", pref.Voice)

	var stored models.Preference
	require.NoError(t, db.DB.First(&stored, models.PreferenceID).Error)
	assert.Equal(t, "none", stored.Voice, "reset is written back")
}

func TestPracticeLifecycle(t *testing.T) {
	openTestDB(t)

	active, err := db.GetActivePractice()
	require.NoError(t, err)
	assert.Nil(t, active)

	p, err := db.StartPractice(models.KindPanic, catalog.PanicModeID, "kai")
	require.NoError(t, err)
	assert.Equal(t, models.KindPanic, p.Kind)

	_, err = db.StartPractice(models.KindBreathing, 2, "none")
	assert.Error(t, err, "only one practice is tracked at a time")

	active, err = db.GetActivePractice()
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, p.ID, active.ID)

	stopped, err := db.StopActivePractice(3)
	require.NoError(t, err)
	require.NotNil(t, stopped.FinishedAt)
	assert.Equal(t, 3, stopped.Cycles)
	assert.GreaterOrEqual(t, stopped.DurationSeconds, 0)

	_, err = db.StopActivePractice(0)
	assert.Error(t, err)
}

func TestStartPracticeReportsLookupErrors(t *testing.T) {
	openTestDB(t)

	failQueries := func(tx *gorm.DB) { _ = tx.AddError(errors.New("disk I/O error")) }
	require.NoError(t, db.DB.Callback().Query().Before("gorm:query").Register("test:fail_queries", failQueries))

	_, err := db.StartPractice(models.KindBreathing, 2, "none")
	assert.ErrorContains(t, err, "disk I/O error")

	_, err = db.GetActivePractice()
	assert.ErrorContains(t, err, "disk I/O error")

	db.DB.Callback().Query().Remove("test:fail_queries")

	var count int64
	require.NoError(t, db.DB.Model(&models.Practice{}).Count(&count).Error)
	assert.Zero(t, count, "nothing is created when the lookup fails")
}

func TestPracticeQueries(t *testing.T) {
	openTestDB(t)

	for _, mode := range []int{0, 3, 9} {
		_, err := db.StartPractice(models.KindBreathing, mode, "none")
		require.NoError(t, err)
		_, err = db.StopActivePractice(1)
		require.NoError(t, err)
	}
	_, err := db.StartPractice(models.KindStory, 2, "luma-1m")
	require.NoError(t, err)

	recent, err := db.RecentPractices(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 9, recent[0].ModeID)

	all, err := db.GetPracticesInRange(time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, all, 3, "unfinished practice excluded")
	assert.Equal(t, 0, all[0].ModeID)
}
