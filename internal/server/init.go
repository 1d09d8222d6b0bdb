package server

import "github.com/google/wire"

// ProviderSet 导出传输层的依赖装配。
var ProviderSet = wire.NewSet(
	NewTelemetry,
	NewHTTPServer,
)
