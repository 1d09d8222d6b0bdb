//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"context"

	"github.com/bionicotaku/lingo-services-admin/internal/controllers"
	loader "github.com/bionicotaku/lingo-services-admin/internal/infrastructure/config_loader"
	"github.com/bionicotaku/lingo-services-admin/internal/infrastructure/database"
	"github.com/bionicotaku/lingo-services-admin/internal/infrastructure/gcs"
	"github.com/bionicotaku/lingo-services-admin/internal/repositories"
	"github.com/bionicotaku/lingo-services-admin/internal/server"
	"github.com/bionicotaku/lingo-services-admin/internal/services"
	"github.com/bionicotaku/lingo-services-admin/internal/tasks/outbox"

	txconfig "github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// wireApp init kratos application.
func wireApp(
	context.Context,
	loader.ServiceMetadata,
	*loader.Server,
	*loader.Data,
	*loader.Storage,
	*loader.Outbox,
	txconfig.Config,
	log.Logger,
) (*kratos.App, func(), error) {
	panic(wire.Build(
		database.ProviderSet,
		gcs.ProviderSet,
		repositories.ProviderSet,
		services.ProviderSet,
		controllers.ProviderSet,
		server.ProviderSet,
		outbox.ProviderSet,
		newApp,
	))
}
