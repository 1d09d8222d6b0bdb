package services

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-services-admin/internal/models/events"
	"github.com/bionicotaku/lingo-services-admin/internal/models/vo"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/google/uuid"
)

// Get 返回单个视频的完整视图（关联 ID + 文件 URL），软删除行不可见。
func (uc *VideoUsecase) Get(ctx context.Context, videoID uuid.UUID) (*vo.VideoDetail, error) {
	agg, err := uc.repo.FindDetail(ctx, nil, videoID)
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			return nil, ErrVideoNotFound
		}
		uc.log.WithContext(ctx).Errorf("get video failed: video_id=%s err=%v", videoID, err)
		return nil, errors.InternalServer(reasonVideoPersistFailed, "failed to load video").WithCause(err)
	}
	return vo.NewVideoDetail(agg.Video, agg.CategoryIDs, agg.GenreIDs, agg.CastMemberIDs, uc.blobs.PublicURL), nil
}

// Delete 软删除视频并写入 video.deleted 事件。行可通过 Restore 恢复；
// Blob 不随软删除清理。
func (uc *VideoUsecase) Delete(ctx context.Context, input DeleteVideoInput) error {
	return uc.tombstone(ctx, input.VideoID, events.TypeVideoDeleted, input.Reason, func(txCtx context.Context, sess txmanager.Session) error {
		return uc.repo.SoftDelete(txCtx, sess, input.VideoID)
	})
}

// Restore 恢复软删除的视频并写入 video.restored 事件。
func (uc *VideoUsecase) Restore(ctx context.Context, videoID uuid.UUID) error {
	return uc.tombstone(ctx, videoID, events.TypeVideoRestored, nil, func(txCtx context.Context, sess txmanager.Session) error {
		return uc.repo.Restore(txCtx, sess, videoID)
	})
}

// ForceDelete 物理删除视频行。Blob 孤儿清理不在本服务职责内，
// 由离线回收任务按 {videoID}/ 前缀处理。
func (uc *VideoUsecase) ForceDelete(ctx context.Context, videoID uuid.UUID) error {
	reason := "purged"
	return uc.tombstone(ctx, videoID, events.TypeVideoDeleted, &reason, func(txCtx context.Context, sess txmanager.Session) error {
		return uc.repo.HardDelete(txCtx, sess, videoID)
	})
}

// tombstone 在单事务内执行删除类写操作并入队仅含标识的事件。
func (uc *VideoUsecase) tombstone(ctx context.Context, videoID uuid.UUID, eventType string, reason *string, mutate func(context.Context, txmanager.Session) error) error {
	txErr := uc.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		if err := mutate(txCtx, sess); err != nil {
			return err
		}
		occurredAt := uc.now().UTC()
		eventID := uuid.New()
		payload, buildErr := events.NewVideoTombstone(eventType, videoID, eventID, occurredAt, reason)
		if buildErr != nil {
			return fmt.Errorf("build %s event: %w", eventType, buildErr)
		}
		return uc.outbox.Enqueue(txCtx, sess, OutboxMessage{
			EventID:       eventID,
			AggregateType: events.AggregateVideo,
			AggregateID:   videoID,
			EventType:     eventType,
			Payload:       payload,
			Attributes:    events.Attributes(eventID, eventType, videoID, occurredAt),
			AvailableAt:   occurredAt,
		})
	})
	if txErr != nil {
		if errors.Is(txErr, ErrVideoNotFound) {
			return ErrVideoNotFound
		}
		if errors.Is(txErr, context.DeadlineExceeded) {
			uc.log.WithContext(ctx).Warnf("%s timeout: video_id=%s", eventType, videoID)
			return errors.GatewayTimeout(reasonCommandTimeout, "delete timeout")
		}
		uc.log.WithContext(ctx).Errorf("%s failed: video_id=%s err=%v", eventType, videoID, txErr)
		return errors.InternalServer(reasonVideoPersistFailed, "failed to delete video").WithCause(txErr)
	}
	uc.log.WithContext(ctx).Infof("%s: video_id=%s", eventType, videoID)
	return nil
}
