package loader

import (
	"github.com/bionicotaku/lingo-services-admin/internal/infrastructure/logger"

	txconfig "github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/google/wire"
)

// ProviderSet exposes configuration-derived dependencies for Wire graphs.
var ProviderSet = wire.NewSet(
	ProvideServiceMetadata,
	ProvideBootstrap,
	ProvideServerConfig,
	ProvideDataConfig,
	ProvideStorageConfig,
	ProvideOutboxConfig,
	ProvideTxManagerConfig,
	ProvideLoggerConfig,
)

// ProvideServiceMetadata returns the resolved ServiceMetadata from the bundle.
func ProvideServiceMetadata(b *Bundle) ServiceMetadata {
	if b == nil {
		return ServiceMetadata{}
	}
	return b.Service
}

// ProvideBootstrap exposes the strongly typed bootstrap configuration.
func ProvideBootstrap(b *Bundle) *Bootstrap {
	if b == nil {
		return nil
	}
	return b.Bootstrap
}

// ProvideServerConfig returns the server section of the bootstrap configuration.
func ProvideServerConfig(bc *Bootstrap) *Server {
	if bc == nil {
		return nil
	}
	return bc.Server
}

// ProvideDataConfig returns the data section of the bootstrap configuration.
func ProvideDataConfig(bc *Bootstrap) *Data {
	if bc == nil {
		return nil
	}
	return bc.Data
}

// ProvideStorageConfig returns the storage section of the bootstrap configuration.
func ProvideStorageConfig(bc *Bootstrap) *Storage {
	if bc == nil {
		return nil
	}
	return bc.Storage
}

// ProvideOutboxConfig returns the outbox section of the bootstrap configuration.
func ProvideOutboxConfig(bc *Bootstrap) *Outbox {
	if bc == nil {
		return nil
	}
	return bc.Outbox
}

// ProvideTxManagerConfig exposes the transaction manager configuration.
func ProvideTxManagerConfig(b *Bundle) txconfig.Config {
	if b == nil {
		return txconfig.Config{}
	}
	return b.TxConfig
}

// ProvideLoggerConfig derives the logger configuration from service metadata.
func ProvideLoggerConfig(meta ServiceMetadata) logger.Config {
	return meta.LoggerConfig()
}
