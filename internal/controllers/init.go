package controllers

import (
	loader "github.com/bionicotaku/lingo-services-admin/internal/infrastructure/config_loader"

	"github.com/google/wire"
)

// ProviderSet 导出控制器层的依赖装配。
var ProviderSet = wire.NewSet(
	ProvideHandlerTimeouts,
	NewBaseHandler,
	NewVideoHandler,
	NewCatalogHandler,
)

// ProvideHandlerTimeouts 从服务器配置推导各类 Handler 的超时策略。
// 命令路径包含文件上传，默认超时远宽于查询路径。
func ProvideHandlerTimeouts(c *loader.Server) HandlerTimeouts {
	timeouts := HandlerTimeouts{}
	if c != nil && c.HTTP != nil {
		timeouts.Default = c.HTTP.Timeout.AsDuration()
		timeouts.Command = c.HTTP.Timeout.AsDuration()
	}
	return timeouts
}
