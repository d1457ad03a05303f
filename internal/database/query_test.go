package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gangbro/missionboard/internal/model"
)

func getTestManager(t *testing.T) *DatabaseManager {
	db, err := GetDatabase(":memory:", false)
	require.NoError(t, err)

	dbm := New(db)
	require.NoError(t, dbm.Migrate())

	return dbm
}

func addMission(t *testing.T, dbm *DatabaseManager, chief uint, name, category string, status model.MissionStatus, created time.Time) *model.Mission {
	m := &model.Mission{ChiefID: chief, Name: name, Category: category, Status: status, CreatedAt: created}
	require.NoError(t, dbm.Create(m))

	return m
}

func names(views []*model.MissionView) []string {
	res := make([]string, len(views))
	for i, v := range views {
		res[i] = v.Name
	}

	return res
}

func TestMissionViewsOrder(t *testing.T) {
	dbm := getTestManager(t)
	now := time.Now()

	require.NoError(t, dbm.Create(&model.Brawler{Username: "boss", DisplayName: "Big Boss"}))

	addMission(t, dbm, 1, "old open", "heist", model.StatusOpen, now.Add(-time.Hour*3))
	addMission(t, dbm, 1, "new completed", "heist", model.StatusCompleted, now)
	addMission(t, dbm, 1, "mid running", "heist", model.StatusInProgress, now.Add(-time.Hour))
	addMission(t, dbm, 1, "new failed", "heist", model.StatusFailed, now.Add(-time.Minute))

	views, err := dbm.MissionQuery().Views()
	require.NoError(t, err)

	assert.Equal(t, []string{"mid running", "old open", "new completed", "new failed"}, names(views))
	assert.Equal(t, "Big Boss", views[0].ChiefDisplayName)
}

func TestMissionFilter(t *testing.T) {
	dbm := getTestManager(t)
	now := time.Now()

	addMission(t, dbm, 1, "Bank Raid", "heist", model.StatusOpen, now)
	addMission(t, dbm, 2, "raid the docks", "smuggling", model.StatusOpen, now.Add(-time.Minute))
	addMission(t, dbm, 2, "100% legit", "smuggling", model.StatusCompleted, now.Add(-time.Hour))
	addMission(t, dbm, 3, "under_cover", "heist", model.StatusFailed, now.Add(-time.Hour*2))

	open := model.StatusOpen

	for _, d := range []struct {
		name   string
		filter model.MissionFilter
		res    []string
	}{
		{"all", model.MissionFilter{}, []string{"Bank Raid", "raid the docks", "100% legit", "under_cover"}},
		{"name_ci", model.MissionFilter{Name: "RAID"}, []string{"Bank Raid", "raid the docks"}},
		{"percent_literal", model.MissionFilter{Name: "%"}, []string{"100% legit"}},
		{"underscore_literal", model.MissionFilter{Name: "a_d"}, []string{}},
		{"underscore_match", model.MissionFilter{Name: "r_c"}, []string{"under_cover"}},
		{"status", model.MissionFilter{Status: &open}, []string{"Bank Raid", "raid the docks"}},
		{"category", model.MissionFilter{Category: "heist"}, []string{"Bank Raid", "under_cover"}},
		{"exclude_chief", model.MissionFilter{ExcludeChiefID: 2}, []string{"Bank Raid", "under_cover"}},
		{"page_2", model.MissionFilter{Page: 2, Limit: 3}, []string{"under_cover"}},
	} {
		t.Run(d.name, func(t *testing.T) {
			f := d.filter
			f.Normalize()

			views, err := dbm.MissionQuery().Filter(&f).Views()
			require.NoError(t, err)
			assert.Equal(t, d.res, names(views))
		})
	}
}

func TestSoftDeletedHidden(t *testing.T) {
	dbm := getTestManager(t)

	m := addMission(t, dbm, 1, "gone", "heist", model.StatusOpen, time.Now())

	require.NoError(t, dbm.MissionQuery().Id(m.ID).Chief(1).SoftDelete())
	require.ErrorIs(t, dbm.MissionQuery().Id(m.ID).Chief(1).SoftDelete(), ErrNoRecord)

	one, err := dbm.MissionQuery().Id(m.ID).One()
	require.NoError(t, err)
	assert.Nil(t, one)

	view, err := dbm.MissionQuery().Id(m.ID).View()
	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestCrewMembersAndParticipant(t *testing.T) {
	dbm := getTestManager(t)
	now := time.Now()

	require.NoError(t, dbm.Create(&model.Brawler{Username: "chief"}))
	require.NoError(t, dbm.Create(&model.Brawler{Username: "muscle", DisplayName: "The Muscle"}))

	done := addMission(t, dbm, 1, "done job", "heist", model.StatusCompleted, now.Add(-time.Hour))
	open := addMission(t, dbm, 1, "open job", "heist", model.StatusOpen, now)
	other := addMission(t, dbm, 3, "other job", "heist", model.StatusOpen, now)

	require.NoError(t, dbm.Create(&model.CrewMembership{MissionID: done.ID, BrawlerID: 1}))
	require.NoError(t, dbm.Create(&model.CrewMembership{MissionID: done.ID, BrawlerID: 2}))
	require.NoError(t, dbm.Create(&model.CrewMembership{MissionID: open.ID, BrawlerID: 2}))

	members, err := dbm.CrewQuery().Mission(done.ID).Members()
	require.NoError(t, err)
	require.Len(t, members, 2)

	assert.Equal(t, "chief", members[0].DisplayName)
	assert.Equal(t, "The Muscle", members[1].DisplayName)
	assert.Equal(t, int64(1), members[1].MissionSuccessCount)
	assert.Equal(t, int64(2), members[1].MissionJoinedCount)

	views, err := dbm.MissionQuery().Participant(2).Order("missions.created_at DESC").Views()
	require.NoError(t, err)
	assert.Equal(t, []string{"open job", "done job"}, names(views))
	assert.Equal(t, int64(1), views[0].CrewCount)
	assert.Equal(t, int64(2), views[1].CrewCount)

	n, err := dbm.CrewQuery().Mission(other.ID).Count()
	require.NoError(t, err)
	assert.Zero(t, n)

	removed, err := dbm.CrewQuery().Mission(done.ID).Brawler(2).Delete()
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestSystemStats(t *testing.T) {
	dbm := getTestManager(t)

	stats, err := dbm.SystemStats()
	require.NoError(t, err)
	assert.InDelta(t, 100.0, stats.SuccessRate, 0.001)

	require.NoError(t, dbm.Create(&model.Brawler{Username: "a"}))
	require.NoError(t, dbm.Create(&model.Brawler{Username: "b"}))

	addMission(t, dbm, 1, "won", "x", model.StatusCompleted, time.Now())
	addMission(t, dbm, 1, "lost", "x", model.StatusFailed, time.Now())

	stats, err = dbm.SystemStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.ActiveMembers)
	assert.Equal(t, int64(1), stats.MissionsCompleted)
	assert.Equal(t, int64(1), stats.MissionsFailed)
	assert.InDelta(t, 50.0, stats.SuccessRate, 0.001)
}
