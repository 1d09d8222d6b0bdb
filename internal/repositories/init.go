package repositories

import (
	"github.com/bionicotaku/lingo-services-admin/internal/services"

	"github.com/google/wire"
)

// ProviderSet 导出仓储层的依赖装配，并绑定到用例层端口。
var ProviderSet = wire.NewSet(
	NewVideoRepository,
	NewCategoryRepository,
	NewGenreRepository,
	NewCastMemberRepository,
	NewOutboxRepository,
	wire.Bind(new(services.VideoRepo), new(*VideoRepository)),
	wire.Bind(new(services.CategoryRepo), new(*CategoryRepository)),
	wire.Bind(new(services.GenreRepo), new(*GenreRepository)),
	wire.Bind(new(services.CastMemberRepo), new(*CastMemberRepository)),
	wire.Bind(new(services.OutboxRepo), new(*OutboxRepository)),
)
