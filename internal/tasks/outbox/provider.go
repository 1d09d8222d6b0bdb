package outbox

import (
	"context"
	"errors"

	loader "github.com/bionicotaku/lingo-services-admin/internal/infrastructure/config_loader"

	"github.com/bionicotaku/lingo-utils/gcpubsub"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet 导出发布任务及其 Pub/Sub 依赖的装配。
var ProviderSet = wire.NewSet(
	ProvideConfig,
	ProvidePubSubComponent,
	gcpubsub.ProvidePublisher,
	NewPublisherTask,
)

// ProvideConfig 从配置节推导任务参数。
func ProvideConfig(c *loader.Outbox) Config {
	if c == nil {
		return Config{}
	}
	return Config{
		PollInterval: c.PollInterval.AsDuration(),
		BatchSize:    c.BatchSize,
		RetryBackoff: c.RetryBackoff.AsDuration(),
		OrderingKey:  c.OrderingKey,
	}
}

// ProvidePubSubComponent 初始化 Pub/Sub 组件及其 Wire cleanup。
func ProvidePubSubComponent(ctx context.Context, c *loader.Outbox, logger log.Logger) (*gcpubsub.Component, func(), error) {
	if c == nil || c.ProjectID == "" || c.TopicID == "" {
		return nil, nil, errors.New("outbox pubsub configuration is required (set PUBSUB_PROJECT_ID / PUBSUB_TOPIC_ID)")
	}
	orderingEnabled := c.OrderingKey
	component, cleanup, err := gcpubsub.NewComponent(ctx, gcpubsub.Config{
		ProjectID:          c.ProjectID,
		TopicID:            c.TopicID,
		OrderingKeyEnabled: &orderingEnabled,
	}, gcpubsub.Dependencies{Logger: logger})
	if err != nil {
		return nil, nil, err
	}
	return component, cleanup, nil
}
