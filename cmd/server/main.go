// Package main boots the Kratos HTTP entrypoint for the catalog admin service.
package main

import (
	"context"
	"flag"

	loader "github.com/bionicotaku/lingo-services-admin/internal/infrastructure/config_loader"
	loginfra "github.com/bionicotaku/lingo-services-admin/internal/infrastructure/logger"
	"github.com/bionicotaku/lingo-services-admin/internal/tasks/outbox"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	_ "go.uber.org/automaxprocs"
)

var flagconf string

func init() {
	flag.StringVar(&flagconf, "conf", "", "config path, eg: -conf configs")
}

func newApp(meta loader.ServiceMetadata, logger log.Logger, hs *http.Server, publisher *outbox.PublisherTask) *kratos.App {
	return kratos.New(
		kratos.ID(meta.InstanceID),
		kratos.Name(meta.Name),
		kratos.Version(meta.Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(
			hs,
			publisher,
		),
	)
}

func main() {
	flag.Parse()

	// Load bootstrap configuration and derive logger settings.
	bundle, err := loader.Build(loader.Params{ConfPath: flagconf})
	if err != nil {
		panic(err)
	}

	// Build the structured logger used by the entire application.
	logger, err := loginfra.NewLogger(bundle.Service.LoggerConfig())
	if err != nil {
		panic(err)
	}

	// Assemble all dependencies (pool, handlers, tasks, etc.) via Wire and create the Kratos app.
	app, cleanup, err := wireApp(
		context.Background(),
		bundle.Service,
		bundle.Bootstrap.Server,
		bundle.Bootstrap.Data,
		bundle.Bootstrap.Storage,
		bundle.Bootstrap.Outbox,
		bundle.TxConfig,
		logger,
	)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	// Start the application and block until a stop signal is received.
	if err := app.Run(); err != nil {
		panic(err)
	}
}
