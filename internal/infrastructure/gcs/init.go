package gcs

import (
	"github.com/bionicotaku/lingo-services-admin/internal/services"

	"github.com/google/wire"
)

// ProviderSet 暴露 GCS Store 构造器并绑定到用例层端口。
var ProviderSet = wire.NewSet(
	NewStore,
	wire.Bind(new(services.BlobStore), new(*Store)),
)
