package service

import (
	"Doodly/dao"
	"Doodly/models"
	"Doodly/pkg/response"
	"Doodly/pkg/snowflake"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestChildService(db *gorm.DB, storage *fakeStorage) *ChildService {
	return &ChildService{
		DB:       db,
		ChildDAO: dao.NewChildDAO(db),
		PostDAO:  dao.NewPostDAO(db),
		StatsDAO: dao.NewUserStatsDAO(db),
		Storage:  storage,
	}
}

func TestCreateChildValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newTestChildService(db, &fakeStorage{})
	parentID := uint64(snowflake.GenID())

	cases := []struct {
		name     string
		username string
		ageGroup string
		pin      string
	}{
		{"bad age group", "mia_draws", "teenagers", "1234"},
		{"pin too short", "mia_draws", models.AgeGroupKids, "123"},
		{"pin not digits", "mia_draws", models.AgeGroupKids, "abcd"},
		{"username uppercase", "MiaDraws", models.AgeGroupKids, "1234"},
		{"username too short", "mi", models.AgeGroupKids, "1234"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateChild(context.Background(), parentID, tc.username, "Mia", tc.ageGroup, tc.pin, "")
			var be *response.BizError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, http.StatusBadRequest, be.Code)
		})
	}
}

func TestCreateChildHashesPin(t *testing.T) {
	db := newTestDB(t)
	svc := newTestChildService(db, &fakeStorage{})

	child, err := svc.CreateChild(context.Background(), 1, "mia_draws", "Mia", models.AgeGroupKids, "4321", "")
	require.NoError(t, err)
	assert.NotEqual(t, "4321", child.PinHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(child.PinHash), []byte("4321")))
	assert.False(t, child.ParentalConsent, "consent starts off")
}

func TestCreateChildUsernameTaken(t *testing.T) {
	db := newTestDB(t)
	svc := newTestChildService(db, &fakeStorage{})

	_, err := svc.CreateChild(context.Background(), 1, "mia_draws", "Mia", models.AgeGroupKids, "4321", "")
	require.NoError(t, err)

	_, err = svc.CreateChild(context.Background(), 2, "mia_draws", "Other Mia", models.AgeGroupKids, "9999", "")
	var be *response.BizError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusConflict, be.Code)
}

func TestOwnershipChecks(t *testing.T) {
	db := newTestDB(t)
	svc := newTestChildService(db, &fakeStorage{})
	child := seedChild(t, db, models.AgeGroupKids, false)

	_, err := svc.GetOwnedChild(context.Background(), child.ParentID, child.ID)
	require.NoError(t, err)

	_, err = svc.GetOwnedChild(context.Background(), child.ParentID+1, child.ID)
	var be *response.BizError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusForbidden, be.Code)
}

func TestDeleteChildWalksBackLikeCounters(t *testing.T) {
	db := newTestDB(t)
	svc := newTestChildService(db, &fakeStorage{})
	leaving := seedChild(t, db, models.AgeGroupKids, true)
	friend := seedChild(t, db, models.AgeGroupKids, true)

	// the friend liked one of the leaving child's posts
	theirPost := seedApprovedPost(t, db, leaving.ID, models.SlotDaily1)
	require.NoError(t, db.Create(&models.PostLike{PostID: theirPost.ID, ChildID: friend.ID, Status: 1}).Error)

	// and the leaving child liked one of the friend's
	friendPost := seedApprovedPost(t, db, friend.ID, models.SlotDaily1)
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", friendPost.ID).Update("likes_count", 1).Error)
	require.NoError(t, db.Create(&models.PostLike{PostID: friendPost.ID, ChildID: leaving.ID, Status: 1}).Error)

	require.NoError(t, db.Create(&models.UserStats{
		ChildID:       friend.ID,
		LikesGiven:    1,
		LikesReceived: 1,
	}).Error)

	require.NoError(t, svc.DeleteChild(context.Background(), leaving.ParentID, leaving.ID))

	stats, err := svc.StatsDAO.GetByChildID(context.Background(), friend.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.LikesGiven)
	assert.Zero(t, stats.LikesReceived)

	var liked models.Post
	require.NoError(t, db.First(&liked, "id = ?", friendPost.ID).Error)
	assert.Zero(t, liked.LikesCount)

	var orphans int64
	require.NoError(t, db.Model(&models.PostLike{}).Count(&orphans).Error)
	assert.Zero(t, orphans)
}

func TestDeleteChildCascades(t *testing.T) {
	db := newTestDB(t)
	storage := &fakeStorage{}
	svc := newTestChildService(db, storage)
	child := seedChild(t, db, models.AgeGroupKids, true)

	post := seedApprovedPost(t, db, child.ID, models.SlotDaily1)
	require.NoError(t, db.Create(&models.UserStats{ChildID: child.ID, TotalPosts: 1}).Error)
	require.NoError(t, db.Create(&models.PostLike{PostID: post.ID, ChildID: child.ID + 1, Status: 1}).Error)

	require.NoError(t, svc.DeleteChild(context.Background(), child.ParentID, child.ID))

	var posts, stats int64
	require.NoError(t, db.Model(&models.Post{}).Where("child_id = ?", child.ID).Count(&posts).Error)
	require.NoError(t, db.Model(&models.UserStats{}).Where("child_id = ?", child.ID).Count(&stats).Error)
	assert.Zero(t, posts)
	assert.Zero(t, stats)
	assert.Contains(t, storage.deleted, post.ImageKey)
}
