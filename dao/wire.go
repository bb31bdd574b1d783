package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewParentDAO,
	NewChildDAO,
	NewPromptDAO,
	NewPostDAO,
	NewPostLikeDAO,
	NewPromptStatsDAO,
	NewUserStatsDAO,
	NewAchievementDAO,
)
