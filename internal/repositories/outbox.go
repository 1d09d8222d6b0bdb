package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-admin/internal/models/po"
	"github.com/bionicotaku/lingo-services-admin/internal/services"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OutboxRepository 实现事务性发件箱的写入与认领。
//
// Enqueue 必须与业务写入共享同一事务，保证"行提交即事件入队"；
// ClaimPending 使用 FOR UPDATE SKIP LOCKED，多副本并发轮询互不阻塞。
type OutboxRepository struct {
	pool *pgxpool.Pool
	log  *log.Helper
}

// NewOutboxRepository 构造 OutboxRepository。
func NewOutboxRepository(pool *pgxpool.Pool, logger log.Logger) *OutboxRepository {
	return &OutboxRepository{pool: pool, log: log.NewHelper(logger)}
}

func (r *OutboxRepository) db(sess txmanager.Session) dbtx {
	if sess != nil {
		return sess.Tx()
	}
	return r.pool
}

const enqueueOutboxSQL = `
INSERT INTO catalog.outbox_events (
	event_id, aggregate_type, aggregate_id, event_type, payload, attributes, available_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)`

// Enqueue 在当前事务内写入一条待发布事件。
//
// jsonb 列的入参必须是 json.RawMessage：简单协议下 pgx 只能按 Go 类型推断
// 线上类型，map 无法推断、裸 []byte 会被当作 bytea 发送。
func (r *OutboxRepository) Enqueue(ctx context.Context, sess txmanager.Session, msg services.OutboxMessage) error {
	attrs, err := encodeAttributes(msg.Attributes)
	if err != nil {
		return fmt.Errorf("encode outbox attributes: %w", err)
	}
	if _, err := r.db(sess).Exec(ctx, enqueueOutboxSQL,
		msg.EventID, msg.AggregateType, msg.AggregateID, msg.EventType,
		json.RawMessage(msg.Payload), attrs, msg.AvailableAt,
	); err != nil {
		return fmt.Errorf("enqueue outbox event: %w", err)
	}
	return nil
}

func encodeAttributes(attrs map[string]string) (json.RawMessage, error) {
	if len(attrs) == 0 {
		return json.RawMessage(`{}`), nil
	}
	raw, err := json.Marshal(attrs)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

const claimPendingSQL = `
SELECT event_id, aggregate_type, aggregate_id, event_type, payload, attributes,
	available_at, published_at, failure_count, last_error, created_at
FROM catalog.outbox_events
WHERE published_at IS NULL AND available_at <= now()
ORDER BY available_at
LIMIT $1
FOR UPDATE SKIP LOCKED`

// ClaimPending 认领一批到期未发布的事件，须在事务内调用。
func (r *OutboxRepository) ClaimPending(ctx context.Context, sess txmanager.Session, limit int32) ([]po.OutboxEvent, error) {
	rows, err := r.db(sess).Query(ctx, claimPendingSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("claim outbox events: %w", err)
	}
	defer rows.Close()

	events := make([]po.OutboxEvent, 0, limit)
	for rows.Next() {
		var ev po.OutboxEvent
		if err := rows.Scan(
			&ev.EventID, &ev.AggregateType, &ev.AggregateID, &ev.EventType,
			&ev.Payload, &ev.Attributes,
			&ev.AvailableAt, &ev.PublishedAt, &ev.FailureCount, &ev.LastError, &ev.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan outbox event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox events: %w", err)
	}
	return events, nil
}

const markPublishedSQL = `
UPDATE catalog.outbox_events SET published_at = now(), last_error = NULL
WHERE event_id = ANY($1::uuid[])`

// MarkPublished 批量标记事件已发布。
func (r *OutboxRepository) MarkPublished(ctx context.Context, sess txmanager.Session, eventIDs []uuid.UUID) error {
	if len(eventIDs) == 0 {
		return nil
	}
	if _, err := r.db(sess).Exec(ctx, markPublishedSQL, eventIDs); err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}
	return nil
}

const recordFailureSQL = `
UPDATE catalog.outbox_events SET
	failure_count = failure_count + 1,
	last_error    = $2,
	available_at  = $3
WHERE event_id = $1`

// RecordFailure 记录一次发布失败并按退避时间推迟下次尝试。
func (r *OutboxRepository) RecordFailure(ctx context.Context, sess txmanager.Session, eventID uuid.UUID, cause string, retryAt time.Time) error {
	if _, err := r.db(sess).Exec(ctx, recordFailureSQL, eventID, cause, retryAt); err != nil {
		return fmt.Errorf("record outbox failure: %w", err)
	}
	return nil
}
