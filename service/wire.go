package service

import (
	"Doodly/pkg/llm"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(AuthService), "*"),
	wire.Bind(new(IAuthService), new(*AuthService)),

	wire.Struct(new(ChildService), "*"),
	wire.Bind(new(IChildService), new(*ChildService)),

	NewPromptService,
	wire.Bind(new(IPromptService), new(*PromptService)),

	wire.Struct(new(PostService), "*"),
	wire.Bind(new(IPostService), new(*PostService)),

	wire.Struct(new(LikeService), "*"),
	wire.Bind(new(ILikeService), new(*LikeService)),

	wire.Struct(new(AchievementService), "*"),
	wire.Bind(new(IAchievementService), new(*AchievementService)),
	wire.Bind(new(AchievementEvaluator), new(*AchievementService)),

	wire.Struct(new(StatsService), "*"),
	wire.Bind(new(IStatsService), new(*StatsService)),

	wire.Struct(new(ModerationService), "*"),
	wire.Bind(new(IModerationService), new(*ModerationService)),

	llm.NewClient,
	wire.Bind(new(PromptTextGenerator), new(*llm.Client)),

	NewStorageService,
)
