package service

import (
	"Doodly/dao"
	"Doodly/models"
	"Doodly/pkg/llm"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeGenerator struct {
	calls int
	err   error
}

func (f *fakeGenerator) GeneratePromptText(_ context.Context, req llm.PromptRequest) (*llm.PromptResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &llm.PromptResult{
		PromptText:     "Draw a " + req.Theme,
		CommunityTitle: req.Theme + " gallery",
		Difficulty:     "easy",
	}, nil
}

func newTestPromptService(db *gorm.DB, gen PromptTextGenerator) *PromptService {
	return NewPromptService(dao.NewPromptDAO(db), gen)
}

func TestGenerateMatrixCoversAllGroupsAndSlots(t *testing.T) {
	db := newTestDB(t)
	gen := &fakeGenerator{}
	svc := newTestPromptService(db, gen)

	generated, fallback, err := svc.GenerateMatrix(context.Background(), "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, len(models.AgeGroups)*len(models.DailySlots), generated)
	assert.Zero(t, fallback)

	for _, ageGroup := range models.AgeGroups {
		prompts, err := svc.PromptDAO.FindByDayGroup(context.Background(), "2026-08-30", ageGroup)
		require.NoError(t, err)
		require.Len(t, prompts, len(models.DailySlots))
		for _, p := range prompts {
			assert.True(t, p.Generated)
			assert.NotEmpty(t, p.PromptText)
			assert.NotEmpty(t, p.ThemeCategory)
		}
	}
}

func TestGenerateMatrixFallsBackOnModelFailure(t *testing.T) {
	db := newTestDB(t)
	gen := &fakeGenerator{err: errors.New("model down")}
	svc := newTestPromptService(db, gen)

	generated, fallback, err := svc.GenerateMatrix(context.Background(), "2026-08-30")
	require.NoError(t, err)
	assert.Zero(t, generated)
	assert.Equal(t, len(models.AgeGroups)*len(models.DailySlots), fallback)

	prompts, err := svc.PromptDAO.FindByDayGroup(context.Background(), "2026-08-30", models.AgeGroupKids)
	require.NoError(t, err)
	require.Len(t, prompts, len(models.DailySlots))
	for _, p := range prompts {
		assert.False(t, p.Generated)
		// static fallback still gives the child something drawable
		assert.NotEmpty(t, p.PromptText)
	}
}

func TestGenerateMatrixReplacesExistingDay(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPromptService(db, &fakeGenerator{})

	_, _, err := svc.GenerateMatrix(context.Background(), "2026-08-30")
	require.NoError(t, err)
	_, _, err = svc.GenerateMatrix(context.Background(), "2026-08-30")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Prompt{}).Where("day = ?", "2026-08-30").Count(&count).Error)
	assert.Equal(t, int64(len(models.AgeGroups)*len(models.DailySlots)), count)
}

func TestGetTodayGeneratesLazily(t *testing.T) {
	db := newTestDB(t)
	gen := &fakeGenerator{}
	svc := newTestPromptService(db, gen)

	prompts, err := svc.GetToday(context.Background(), models.AgeGroupTweens)
	require.NoError(t, err)
	require.Len(t, prompts, len(models.DailySlots))

	// second call hits the day cache, no extra model calls
	callsAfterFirst := gen.calls
	again, err := svc.GetToday(context.Background(), models.AgeGroupTweens)
	require.NoError(t, err)
	assert.Len(t, again, len(models.DailySlots))
	assert.Equal(t, callsAfterFirst, gen.calls)
}

func TestGetTodayRejectsUnknownAgeGroup(t *testing.T) {
	db := newTestDB(t)
	svc := newTestPromptService(db, &fakeGenerator{})

	_, err := svc.GetToday(context.Background(), "teenagers")
	assert.Error(t, err)
}
