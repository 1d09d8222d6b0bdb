package services

import "github.com/google/wire"

// ProviderSet 导出业务用例层的依赖装配。
var ProviderSet = wire.NewSet(
	NewVideoUsecase,
	NewTaxonomyUsecase,
)
