package service

import (
	"Doodly/dao"
	"Doodly/models"
	"Doodly/pkg/llm"
	"Doodly/pkg/response"
	"Doodly/pkg/timeutil"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateApprovedPost(t *testing.T) {
	db := newTestDB(t)
	storage := &fakeStorage{}
	svc := newTestPostService(t, db, storage, approve())
	child := seedChild(t, db, models.AgeGroupKids, true)

	result, err := svc.Create(context.Background(), child.ID, models.SlotDaily1, "a red dragon", imageHeader())
	require.NoError(t, err)

	assert.Equal(t, models.PostStatusApproved, result.Post.Status)
	assert.Equal(t, int64(pointsPerPost), result.PointsEarned)
	assert.NotEmpty(t, result.Post.ShareCode)
	assert.Equal(t, timeutil.Today(), result.Post.PostDay)

	stats, err := svc.StatsDAO.GetByChildID(context.Background(), child.ID)
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, int64(1), stats.TotalPosts)
	assert.Equal(t, int64(1), stats.CurrentStreak)
	assert.Equal(t, int64(1), stats.BestStreak)
	assert.Equal(t, int64(pointsPerPost), stats.TotalPoints)
	assert.Equal(t, timeutil.Today(), stats.LastPostDay)
}

func TestCreateSlotConflict(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPostService(t, db, &fakeStorage{}, approve())
	child := seedChild(t, db, models.AgeGroupKids, true)

	_, err := svc.Create(context.Background(), child.ID, models.SlotDaily1, "", imageHeader())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), child.ID, models.SlotDaily1, "", imageHeader())
	var conflict *SlotTakenError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, models.SlotDaily1, conflict.TimeSlot)
	assert.Equal(t, timeutil.Today(), conflict.PostDay)

	// a different slot still works
	_, err = svc.Create(context.Background(), child.ID, models.SlotFreeDraw, "", imageHeader())
	require.NoError(t, err)
}

func TestCreateSlotRaceCaughtByUniqueIndex(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPostService(t, db, &fakeStorage{}, approve())
	child := seedChild(t, db, models.AgeGroupKids, true)

	_, err := svc.Create(context.Background(), child.ID, models.SlotDaily1, "", imageHeader())
	require.NoError(t, err)

	// same key inserted behind the pre-check's back
	err = db.Create(&models.Post{
		ID:       12345,
		ChildID:  child.ID,
		PostDay:  timeutil.Today(),
		TimeSlot: models.SlotDaily1,
		ImageKey: "k",
		ImageURL: "u",
		Status:   models.PostStatusApproved,
	}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestCreateBothDailySlotsBonus(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPostService(t, db, &fakeStorage{}, approve())
	child := seedChild(t, db, models.AgeGroupKids, true)

	first, err := svc.Create(context.Background(), child.ID, models.SlotDaily1, "", imageHeader())
	require.NoError(t, err)
	assert.Equal(t, int64(pointsPerPost), first.PointsEarned)

	second, err := svc.Create(context.Background(), child.ID, models.SlotDaily2, "", imageHeader())
	require.NoError(t, err)
	assert.Equal(t, int64(pointsPerPost+bothSlotsBonus), second.PointsEarned)

	stats, err := svc.StatsDAO.GetByChildID(context.Background(), child.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalPosts)
	assert.Equal(t, int64(2*pointsPerPost+bothSlotsBonus), stats.TotalPoints)
	// two posts on the same day are still one streak day
	assert.Equal(t, int64(1), stats.CurrentStreak)
}

func TestCreateModerationUnavailableFailsClosed(t *testing.T) {
	db := newTestDB(t)
	storage := &fakeStorage{}
	svc := newTestPostService(t, db, storage, &fakeModeration{err: errors.New("provider down")})
	child := seedChild(t, db, models.AgeGroupKids, true)

	_, err := svc.Create(context.Background(), child.ID, models.SlotDaily1, "", imageHeader())
	var be *response.BizError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusServiceUnavailable, be.Code)

	// uploaded object cleaned up, no row written
	assert.Len(t, storage.deleted, 1)
	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateRejectedArtwork(t *testing.T) {
	db := newTestDB(t)
	storage := &fakeStorage{}
	svc := newTestPostService(t, db, storage,
		&fakeModeration{decision: llm.Decision{Outcome: llm.OutcomeReject, Reasons: []string{"violence"}}})
	child := seedChild(t, db, models.AgeGroupKids, true)

	_, err := svc.Create(context.Background(), child.ID, models.SlotDaily1, "", imageHeader())
	var be *response.BizError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusUnprocessableEntity, be.Code)
	assert.Len(t, storage.deleted, 1)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateHeldForReview(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPostService(t, db, &fakeStorage{},
		&fakeModeration{decision: llm.Decision{Outcome: llm.OutcomeReview, Reasons: []string{"violence"}}})
	child := seedChild(t, db, models.AgeGroupKids, true)

	result, err := svc.Create(context.Background(), child.ID, models.SlotDaily1, "", imageHeader())
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusPending, result.Post.Status)
	assert.Zero(t, result.PointsEarned)

	// no counters move until a human approves
	stats, err := svc.StatsDAO.GetByChildID(context.Background(), child.ID)
	require.NoError(t, err)
	assert.Nil(t, stats)
}

func TestReviewApprovePendingPost(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPostService(t, db, &fakeStorage{},
		&fakeModeration{decision: llm.Decision{Outcome: llm.OutcomeReview}})
	child := seedChild(t, db, models.AgeGroupKids, true)

	result, err := svc.Create(context.Background(), child.ID, models.SlotDaily1, "", imageHeader())
	require.NoError(t, err)

	require.NoError(t, svc.Review(context.Background(), result.Post.ID, true))

	post, err := svc.PostDAO.FindByID(context.Background(), result.Post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusApproved, post.Status)

	stats, err := svc.StatsDAO.GetByChildID(context.Background(), child.ID)
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, int64(1), stats.TotalPosts)
	assert.Equal(t, int64(pointsPerPost), stats.TotalPoints)
}

func TestReviewStaleApprovalKeepsStreak(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPostService(t, db, &fakeStorage{}, approve())
	child := seedChild(t, db, models.AgeGroupKids, true)

	today := timeutil.Today()
	require.NoError(t, db.Create(&models.UserStats{
		ChildID:       child.ID,
		TotalPosts:    3,
		TotalPoints:   30,
		CurrentStreak: 5,
		BestStreak:    5,
		LastPostDay:   today,
	}).Error)

	// held post from three days back, only approved now
	staleDay := timeutil.PrevDay(timeutil.PrevDay(timeutil.PrevDay(today)))
	held := &models.Post{
		ID:       77001,
		ChildID:  child.ID,
		PostDay:  staleDay,
		TimeSlot: models.SlotFreeDraw,
		ImageKey: "k",
		ImageURL: "u",
		Status:   models.PostStatusPending,
	}
	require.NoError(t, db.Create(held).Error)

	require.NoError(t, svc.Review(context.Background(), held.ID, true))

	stats, err := svc.StatsDAO.GetByChildID(context.Background(), child.ID)
	require.NoError(t, err)
	// the post still pays out, but the streak the child kept alive since
	// does not rewind
	assert.Equal(t, int64(4), stats.TotalPosts)
	assert.Equal(t, int64(30+pointsPerPost), stats.TotalPoints)
	assert.Equal(t, int64(5), stats.CurrentStreak)
	assert.Equal(t, today, stats.LastPostDay)
}

func TestCreateStorageOutageIsNotClientFault(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPostService(t, db, &fakeStorage{failUp: errors.New("connection refused")}, approve())
	child := seedChild(t, db, models.AgeGroupKids, true)

	_, err := svc.Create(context.Background(), child.ID, models.SlotDaily1, "", imageHeader())
	var be *response.BizError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusBadGateway, be.Code)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateInvalidImageStays400(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPostService(t, db,
		&fakeStorage{failUp: response.NewError(http.StatusBadRequest, "unsupported image type: text/plain")},
		approve())
	child := seedChild(t, db, models.AgeGroupKids, true)

	_, err := svc.Create(context.Background(), child.ID, models.SlotDaily1, "", imageHeader())
	var be *response.BizError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusBadRequest, be.Code)
}

func TestReviewRejectApprovedPost(t *testing.T) {
	db := newTestDB(t)
	storage := &fakeStorage{}
	svc := newTestPostService(t, db, storage, approve())
	child := seedChild(t, db, models.AgeGroupKids, true)

	result, err := svc.Create(context.Background(), child.ID, models.SlotDaily1, "", imageHeader())
	require.NoError(t, err)

	require.NoError(t, svc.Review(context.Background(), result.Post.ID, false))

	post, err := svc.PostDAO.FindByID(context.Background(), result.Post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusRejected, post.Status)

	stats, err := svc.StatsDAO.GetByChildID(context.Background(), child.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalPosts)
	assert.NotEmpty(t, storage.deleted)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPostService(t, db, &fakeStorage{}, approve())
	owner := seedChild(t, db, models.AgeGroupKids, true)
	other := seedChild(t, db, models.AgeGroupKids, true)

	result, err := svc.Create(context.Background(), owner.ID, models.SlotDaily1, "", imageHeader())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), other.ID, result.Post.ID)
	var be *response.BizError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusForbidden, be.Code)

	require.NoError(t, svc.Delete(context.Background(), owner.ID, result.Post.ID))
	stats, err := svc.StatsDAO.GetByChildID(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalPosts)
}

func TestGetHidesUnapprovedFromOthers(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPostService(t, db, &fakeStorage{},
		&fakeModeration{decision: llm.Decision{Outcome: llm.OutcomeReview}})
	owner := seedChild(t, db, models.AgeGroupKids, true)
	other := seedChild(t, db, models.AgeGroupKids, true)

	result, err := svc.Create(context.Background(), owner.ID, models.SlotDaily1, "", imageHeader())
	require.NoError(t, err)

	// owner sees the pending post
	post, err := svc.Get(context.Background(), owner.ID, result.Post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusPending, post.Status)

	// everyone else gets a 404
	_, err = svc.Get(context.Background(), other.ID, result.Post.ID)
	var be *response.BizError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusNotFound, be.Code)
}

func TestGalleryExcludesNoConsent(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPostService(t, db, &fakeStorage{}, approve())
	withConsent := seedChild(t, db, models.AgeGroupKids, true)
	noConsent := seedChild(t, db, models.AgeGroupKids, false)

	_, err := svc.Create(context.Background(), withConsent.ID, models.SlotDaily1, "", imageHeader())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), noConsent.ID, models.SlotDaily1, "", imageHeader())
	require.NoError(t, err)

	items, err := svc.Gallery(context.Background(), dao.GalleryFilter{Sort: "newest", Limit: 20})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, withConsent.Username, items[0].Username)
}

func TestResolveShareCode(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPostService(t, db, &fakeStorage{}, approve())
	child := seedChild(t, db, models.AgeGroupKids, true)

	result, err := svc.Create(context.Background(), child.ID, models.SlotDaily1, "", imageHeader())
	require.NoError(t, err)

	item, err := svc.ResolveShareCode(context.Background(), result.Post.ShareCode)
	require.NoError(t, err)
	assert.Equal(t, result.Post.ID, item.Post.ID)
	assert.Equal(t, child.Username, item.Username)

	_, err = svc.ResolveShareCode(context.Background(), "nosuchcode")
	var be *response.BizError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusNotFound, be.Code)
}
