package dao

import (
	"Doodly/models"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PromptDAO struct {
	Repo[models.Prompt]
}

func NewPromptDAO(db *gorm.DB) *PromptDAO {
	return &PromptDAO{Repo: NewRepo[models.Prompt](db)}
}

// Upsert writes the prompt for its (day, age_group, time_slot) key, replacing
// an existing row's content. Regeneration relies on this.
func (d *PromptDAO) Upsert(ctx context.Context, prompt *models.Prompt) error {
	return d.Db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "day"}, {Name: "age_group"}, {Name: "time_slot"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"difficulty", "prompt_text", "community_title", "theme_category",
			"style_hints", "generated", "updated_at",
		}),
	}).Create(prompt).Error
}

// GetBySlot returns nil, nil when the slot has no prompt yet.
func (d *PromptDAO) GetBySlot(ctx context.Context, day, ageGroup, timeSlot string) (*models.Prompt, error) {
	var prompt models.Prompt
	err := d.Db.WithContext(ctx).
		Where("day = ? AND age_group = ? AND time_slot = ?", day, ageGroup, timeSlot).
		First(&prompt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

// FindByDayGroup returns the day's prompts for an age group, slot order.
func (d *PromptDAO) FindByDayGroup(ctx context.Context, day, ageGroup string) ([]*models.Prompt, error) {
	var prompts []*models.Prompt
	err := d.Db.WithContext(ctx).
		Where("day = ? AND age_group = ?", day, ageGroup).
		Order("time_slot ASC").
		Find(&prompts).Error
	return prompts, err
}

// RecentCategories returns the theme categories used for an age group over
// the last few days, newest first. Feeds the repeat-decay in theme
// selection.
func (d *PromptDAO) RecentCategories(ctx context.Context, ageGroup string, limit int) ([]string, error) {
	var categories []string
	err := d.Db.WithContext(ctx).
		Model(&models.Prompt{}).
		Where("age_group = ? AND theme_category <> ''", ageGroup).
		Order("day DESC, time_slot ASC").
		Limit(limit).
		Pluck("theme_category", &categories).Error
	return categories, err
}
