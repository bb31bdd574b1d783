//go:build wireinject
// +build wireinject

package main

import (
	"Doodly/config"
	"Doodly/dao"
	"Doodly/dao/cache"
	"Doodly/handler"
	"Doodly/pkg/client"
	"Doodly/pkg/database"
	"Doodly/pkg/events"
	"Doodly/pkg/mailer"
	"Doodly/pkg/oss"
	"Doodly/pkg/server"
	"Doodly/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(

		database.NewDB,
		client.NewRedisClient,
		config.ProvideOssConfig,
		config.ProvideOpenAIConfig,
		config.ProvideSmtpConfig,
		config.ProvideRocketMQConfig,
		oss.NewClient,
		mailer.NewSmtpMailer,
		events.NewPublisher,

		cache.ProviderSet,
		dao.ProviderSet,
		service.ProviderSet,

		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.Child), "*"),
		wire.Struct(new(handler.Prompt), "*"),
		wire.Struct(new(handler.Post), "*"),
		wire.Struct(new(handler.Gallery), "*"),
		wire.Struct(new(handler.Stats), "*"),
		wire.Struct(new(handler.Admin), "*"),

		wire.Struct(new(server.Handlers), "*"),
		server.NewGinEngine,
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil
}
