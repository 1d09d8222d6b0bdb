// Package outbox 实现发件箱事件的轮询发布任务。
//
// 任务作为 Kratos transport.Server 随应用启停：每个轮询周期在单个事务内
// 用 FOR UPDATE SKIP LOCKED 认领一批到期事件，逐条发布到 Pub/Sub，
// 成功的批量落已发布标记，失败的记录原因并按退避推迟重试。
// 多副本并发轮询时互不认领同一事件。
package outbox

import (
	"context"
	"time"

	"github.com/bionicotaku/lingo-services-admin/internal/models/po"
	"github.com/bionicotaku/lingo-services-admin/internal/repositories"

	"github.com/bionicotaku/lingo-utils/gcpubsub"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

const (
	defaultPollInterval = 2 * time.Second
	defaultBatchSize    = 64
	defaultRetryBackoff = 30 * time.Second
	// maxBackoffSteps 限制线性退避的最大倍数，防止事件无限推迟。
	maxBackoffSteps = 10
)

// Config 控制发布任务的轮询节奏与重试策略。
type Config struct {
	PollInterval time.Duration
	BatchSize    int32
	RetryBackoff time.Duration
	OrderingKey  bool
}

// eventStore 是发布任务需要的发件箱存储行为，由 repositories.OutboxRepository 实现。
type eventStore interface {
	ClaimPending(ctx context.Context, sess txmanager.Session, limit int32) ([]po.OutboxEvent, error)
	MarkPublished(ctx context.Context, sess txmanager.Session, eventIDs []uuid.UUID) error
	RecordFailure(ctx context.Context, sess txmanager.Session, eventID uuid.UUID, reason string, retryAt time.Time) error
}

// PublisherTask 轮询发件箱并向 Pub/Sub 发布事件。
type PublisherTask struct {
	repo      eventStore
	txManager txmanager.Manager
	publisher gcpubsub.Publisher
	cfg       Config
	log       *log.Helper
	now       func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewPublisherTask 构造发布任务，零值配置回退到内置默认。
func NewPublisherTask(repo *repositories.OutboxRepository, tx txmanager.Manager, pub gcpubsub.Publisher, cfg Config, logger log.Logger) *PublisherTask {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = defaultRetryBackoff
	}
	return &PublisherTask{
		repo:      repo,
		txManager: tx,
		publisher: pub,
		cfg:       cfg,
		log:       log.NewHelper(logger),
		now:       time.Now,
	}
}

// Start 实现 transport.Server，阻塞直到 Stop 被调用。
func (t *PublisherTask) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})
	defer close(t.done)

	t.log.Infof("outbox publisher started: poll_interval=%s batch_size=%d", t.cfg.PollInterval, t.cfg.BatchSize)

	ticker := time.NewTicker(t.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-runCtx.Done():
			t.log.Info("outbox publisher stopped")
			return nil
		case <-ticker.C:
			if err := t.drain(runCtx); err != nil && runCtx.Err() == nil {
				t.log.Errorf("outbox drain failed: %v", err)
			}
		}
	}
}

// Stop 实现 transport.Server，通知轮询退出并等待当前批次完成。
func (t *PublisherTask) Stop(ctx context.Context) error {
	if t.cancel != nil {
		t.cancel()
	}
	if t.done != nil {
		select {
		case <-t.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// drain 处理一个批次：认领、发布、落标记，全程在同一事务内。
// 认领行在事务期间保持行锁，发布中途崩溃时事务回滚，事件回到待发布状态。
func (t *PublisherTask) drain(ctx context.Context) error {
	return t.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		events, err := t.repo.ClaimPending(txCtx, sess, t.cfg.BatchSize)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}

		published := make([]uuid.UUID, 0, len(events))
		for _, ev := range events {
			if pubErr := t.publish(txCtx, ev); pubErr != nil {
				t.log.WithContext(txCtx).Warnf("publish outbox event failed: event_id=%s type=%s err=%v", ev.EventID, ev.EventType, pubErr)
				retryAt := t.now().Add(t.backoff(ev.FailureCount + 1))
				if recErr := t.repo.RecordFailure(txCtx, sess, ev.EventID, pubErr.Error(), retryAt); recErr != nil {
					return recErr
				}
				continue
			}
			published = append(published, ev.EventID)
		}

		if len(published) > 0 {
			if err := t.repo.MarkPublished(txCtx, sess, published); err != nil {
				return err
			}
			t.log.WithContext(txCtx).Infof("outbox events published: count=%d", len(published))
		}
		return nil
	})
}

func (t *PublisherTask) publish(ctx context.Context, ev po.OutboxEvent) error {
	msg := gcpubsub.Message{
		Data:       ev.Payload,
		Attributes: ev.Attributes,
	}
	if t.cfg.OrderingKey {
		// 同一聚合的事件按顺序投递
		msg.OrderingKey = ev.AggregateID.String()
	}
	_, err := t.publisher.Publish(ctx, msg)
	return err
}

// backoff 按失败次数线性放大重试间隔，封顶 maxBackoffSteps 倍。
func (t *PublisherTask) backoff(failures int32) time.Duration {
	steps := failures
	if steps > maxBackoffSteps {
		steps = maxBackoffSteps
	}
	if steps < 1 {
		steps = 1
	}
	return time.Duration(steps) * t.cfg.RetryBackoff
}
