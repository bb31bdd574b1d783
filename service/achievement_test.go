package service

import (
	"Doodly/dao"
	"Doodly/models"
	"Doodly/pkg/snowflake"
	"Doodly/pkg/timeutil"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{
		StatsDAO:       dao.NewUserStatsDAO(db),
		PostDAO:        dao.NewPostDAO(db),
		AchievementDAO: dao.NewAchievementDAO(db),
	}
}

func setStats(t *testing.T, db *gorm.DB, stats *models.UserStats) {
	t.Helper()
	require.NoError(t, db.Create(stats).Error)
}

func TestFirstPostUnlocks(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAchievementService(db)
	child := seedChild(t, db, models.AgeGroupKids, true)
	setStats(t, db, &models.UserStats{ChildID: child.ID, TotalPosts: 1})

	fresh, err := svc.EvaluateAndUnlock(context.Background(), child.ID)
	require.NoError(t, err)
	assert.Contains(t, fresh, "first_post")

	// second evaluation unlocks nothing new
	fresh, err = svc.EvaluateAndUnlock(context.Background(), child.ID)
	require.NoError(t, err)
	assert.Empty(t, fresh)
}

func TestProgressIsCappedAtTarget(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAchievementService(db)
	child := seedChild(t, db, models.AgeGroupKids, true)
	setStats(t, db, &models.UserStats{ChildID: child.ID, TotalPosts: 7})

	views, err := svc.ListForChild(context.Background(), child.ID)
	require.NoError(t, err)

	byID := map[string]int64{}
	earned := map[string]bool{}
	for _, v := range views {
		byID[v.ID] = v.Progress
		earned[v.ID] = v.Earned
	}
	assert.Equal(t, int64(1), byID["first_post"])
	assert.True(t, earned["first_post"])
	assert.Equal(t, int64(7), byID["posts_10"])
	assert.False(t, earned["posts_10"])
}

func TestTripleDayUnlocks(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAchievementService(db)
	child := seedChild(t, db, models.AgeGroupKids, true)
	setStats(t, db, &models.UserStats{ChildID: child.ID, TotalPosts: 3})

	day := timeutil.Today()
	for _, slot := range []string{models.SlotDaily1, models.SlotDaily2, models.SlotFreeDraw} {
		require.NoError(t, db.Create(&models.Post{
			ID:       uint64(snowflake.GenID()),
			ChildID:  child.ID,
			PostDay:  day,
			TimeSlot: slot,
			ImageKey: "k",
			ImageURL: "u",
			Status:   models.PostStatusApproved,
		}).Error)
	}

	fresh, err := svc.EvaluateAndUnlock(context.Background(), child.ID)
	require.NoError(t, err)
	assert.Contains(t, fresh, "triple_play")
}

func TestLevelBadges(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAchievementService(db)
	child := seedChild(t, db, models.AgeGroupKids, true)
	// 450 points is level 5
	setStats(t, db, &models.UserStats{ChildID: child.ID, TotalPoints: 450})

	fresh, err := svc.EvaluateAndUnlock(context.Background(), child.ID)
	require.NoError(t, err)
	assert.Contains(t, fresh, "rising_star")
	assert.NotContains(t, fresh, "art_legend")
}

func TestUnlockedAtComesFromLedger(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAchievementService(db)
	child := seedChild(t, db, models.AgeGroupKids, true)
	setStats(t, db, &models.UserStats{ChildID: child.ID, TotalPosts: 1})

	before := time.Now().Add(-time.Second)
	_, err := svc.EvaluateAndUnlock(context.Background(), child.ID)
	require.NoError(t, err)

	views, err := svc.ListForChild(context.Background(), child.ID)
	require.NoError(t, err)
	for _, v := range views {
		if v.ID != "first_post" {
			continue
		}
		require.NotNil(t, v.UnlockedAt)
		assert.True(t, v.UnlockedAt.After(before))
		return
	}
	t.Fatal("first_post missing from list")
}

func TestRejectedPostsDoNotCountTimeBuckets(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAchievementService(db)
	child := seedChild(t, db, models.AgeGroupKids, true)
	setStats(t, db, &models.UserStats{ChildID: child.ID})

	require.NoError(t, db.Create(&models.Post{
		ID:       uint64(snowflake.GenID()),
		ChildID:  child.ID,
		PostDay:  timeutil.Today(),
		TimeSlot: models.SlotDaily1,
		ImageKey: "k",
		ImageURL: "u",
		Status:   models.PostStatusRejected,
	}).Error)

	views, err := svc.ListForChild(context.Background(), child.ID)
	require.NoError(t, err)
	for _, v := range views {
		assert.False(t, v.Earned, "badge %s should not be earned", v.ID)
	}
}
