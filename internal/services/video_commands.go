package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bionicotaku/lingo-services-admin/internal/models/events"
	"github.com/bionicotaku/lingo-services-admin/internal/models/po"
	"github.com/bionicotaku/lingo-services-admin/internal/models/vo"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// VideoUsecase 封装视频写路径的编排逻辑：
// 文件暂存 → 单事务内持久化标量与关联同步 → 提交后上传 Blob → 失败补偿删除。
type VideoUsecase struct {
	repo      VideoRepo
	outbox    OutboxRepo
	blobs     BlobStore
	txManager txmanager.Manager
	log       *log.Helper

	now      func() time.Time
	newID    func() uuid.UUID
	fileName func(original string) string
}

// NewVideoUsecase 构造视频用例实例。
func NewVideoUsecase(repo VideoRepo, outbox OutboxRepo, blobs BlobStore, tx txmanager.Manager, logger log.Logger) *VideoUsecase {
	return &VideoUsecase{
		repo:      repo,
		outbox:    outbox,
		blobs:     blobs,
		txManager: tx,
		log:       log.NewHelper(logger),
		now:       time.Now,
		newID:     uuid.New,
		fileName:  GenerateFileName,
	}
}

// WithClock 覆盖时间源，便于测试。
func (uc *VideoUsecase) WithClock(clock func() time.Time) *VideoUsecase {
	if clock != nil {
		uc.now = clock
	}
	return uc
}

// WithIDGenerator 覆盖实体 ID 生成函数，便于测试。
func (uc *VideoUsecase) WithIDGenerator(gen func() uuid.UUID) *VideoUsecase {
	if gen != nil {
		uc.newID = gen
	}
	return uc
}

// WithFileNamer 覆盖对象名生成函数，便于测试。
func (uc *VideoUsecase) WithFileNamer(namer func(string) string) *VideoUsecase {
	if namer != nil {
		uc.fileName = namer
	}
	return uc
}

// Create 创建视频：暂存文件后在单事务内写入行与关联并入队事件，
// 提交成功后再上传暂存文件；任一上传失败将补偿删除本次已上传对象。
//
// 事务失败时不触达 Blob 存储；上传失败时数据库行保留（已记录在案的
// 不一致窗口），调用方应按失败处理并重试或人工修复。
func (uc *VideoUsecase) Create(ctx context.Context, input CreateVideoInput) (*vo.VideoDetail, error) {
	rating, err := po.ParseRating(input.Rating)
	if err != nil {
		return nil, errors.BadRequest(reasonVideoInvalid, err.Error())
	}
	if input.Duration <= 0 {
		return nil, errors.BadRequest(reasonVideoInvalid, "duration must be positive")
	}

	assignments, staged, err := stageFiles(input.Files, uc.fileName)
	if err != nil {
		return nil, errors.BadRequest(reasonVideoInvalid, err.Error())
	}

	videoID := uc.newID()
	row := &po.Video{
		VideoID:      videoID,
		Title:        input.Title,
		Description:  input.Description,
		YearLaunched: input.YearLaunched,
		Opened:       input.Opened,
		Rating:       rating,
		Duration:     input.Duration,
	}
	for field, name := range assignments {
		n := name
		row.SetFileName(field, &n)
	}

	txErr := uc.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		created, repoErr := uc.repo.Create(txCtx, sess, row)
		if repoErr != nil {
			return repoErr
		}
		if syncErr := uc.syncRelations(txCtx, sess, videoID, input.CategoryIDs, input.GenreIDs, input.CastMemberIDs); syncErr != nil {
			return syncErr
		}

		occurredAt := created.CreatedAt.UTC()
		if occurredAt.IsZero() {
			occurredAt = uc.now().UTC()
		}
		eventID := uuid.New()
		payload, buildErr := events.NewVideoSnapshot(events.TypeVideoCreated, created, input.CategoryIDs, input.GenreIDs, input.CastMemberIDs, eventID, occurredAt)
		if buildErr != nil {
			return fmt.Errorf("build video created event: %w", buildErr)
		}
		return uc.outbox.Enqueue(txCtx, sess, OutboxMessage{
			EventID:       eventID,
			AggregateType: events.AggregateVideo,
			AggregateID:   videoID,
			EventType:     events.TypeVideoCreated,
			Payload:       payload,
			Attributes:    events.Attributes(eventID, events.TypeVideoCreated, videoID, occurredAt),
			AvailableAt:   occurredAt,
		})
	})
	if txErr != nil {
		// 事务已回滚且尚未触达 Blob 存储，直接上抛
		if notFound := taxonomyNotFound(txErr); notFound != nil {
			return nil, notFound
		}
		if errors.Is(txErr, context.DeadlineExceeded) {
			uc.log.WithContext(ctx).Warnf("create video timeout: title=%s", input.Title)
			return nil, errors.GatewayTimeout(reasonCommandTimeout, "create timeout")
		}
		uc.log.WithContext(ctx).Errorf("create video failed: title=%s err=%v", input.Title, txErr)
		return nil, errors.InternalServer(reasonVideoPersistFailed, "failed to create video").WithCause(fmt.Errorf("create video: %w", txErr))
	}

	if upErr := uc.uploadStaged(ctx, videoID, staged); upErr != nil {
		uc.log.WithContext(ctx).Errorf("upload after create failed: video_id=%s err=%v", videoID, upErr)
		return nil, errors.InternalServer(reasonVideoUploadFailed, "failed to upload video files").WithCause(upErr)
	}

	uc.log.WithContext(ctx).Infof("CreateVideo: video_id=%s title=%s files=%d", videoID, input.Title, len(staged))
	return uc.detail(ctx, videoID)
}

// Update 部分更新视频：先定位目标（不存在为终态错误，不开启事务），
// 暂存新文件并捕获被替换字段的旧对象名；事务提交且新文件全部上传成功后，
// 才删除旧对象，保证读方始终能取到新旧之一。
func (uc *VideoUsecase) Update(ctx context.Context, input UpdateVideoInput) (*vo.VideoDetail, error) {
	var rating *po.Rating
	if input.Rating != nil {
		parsed, err := po.ParseRating(*input.Rating)
		if err != nil {
			return nil, errors.BadRequest(reasonVideoInvalid, err.Error())
		}
		rating = &parsed
	}
	if input.Duration != nil && *input.Duration <= 0 {
		return nil, errors.BadRequest(reasonVideoInvalid, "duration must be positive")
	}

	current, err := uc.repo.FindByID(ctx, nil, input.VideoID)
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			return nil, ErrVideoNotFound
		}
		uc.log.WithContext(ctx).Errorf("find video failed: video_id=%s err=%v", input.VideoID, err)
		return nil, errors.InternalServer(reasonVideoPersistFailed, "failed to load video").WithCause(err)
	}

	assignments, staged, err := stageFiles(input.Files, uc.fileName)
	if err != nil {
		return nil, errors.BadRequest(reasonVideoInvalid, err.Error())
	}

	// 被替换文件字段的旧对象路径：提交并上传成功之前绝不删除
	var oldPaths []string
	for field, name := range assignments {
		if prev := current.FileName(field); prev != nil && *prev != "" && *prev != name {
			oldPaths = append(oldPaths, po.BlobPath(input.VideoID, *prev))
		}
	}

	row := UpdateVideoRow{
		VideoID:      input.VideoID,
		Title:        input.Title,
		Description:  input.Description,
		YearLaunched: input.YearLaunched,
		Opened:       input.Opened,
		Rating:       rating,
		Duration:     input.Duration,
	}
	for field, name := range assignments {
		n := name
		row.SetFileName(field, &n)
	}

	var updated *po.Video
	txErr := uc.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		v, repoErr := uc.repo.Update(txCtx, sess, row)
		if repoErr != nil {
			return repoErr
		}
		if syncErr := uc.syncRelations(txCtx, sess, input.VideoID, input.CategoryIDs, input.GenreIDs, input.CastMemberIDs); syncErr != nil {
			return syncErr
		}

		occurredAt := v.UpdatedAt.UTC()
		if occurredAt.IsZero() {
			occurredAt = uc.now().UTC()
		}
		eventID := uuid.New()
		payload, buildErr := events.NewVideoSnapshot(events.TypeVideoUpdated, v, input.CategoryIDs, input.GenreIDs, input.CastMemberIDs, eventID, occurredAt)
		if buildErr != nil {
			return fmt.Errorf("build video updated event: %w", buildErr)
		}
		if enqErr := uc.outbox.Enqueue(txCtx, sess, OutboxMessage{
			EventID:       eventID,
			AggregateType: events.AggregateVideo,
			AggregateID:   input.VideoID,
			EventType:     events.TypeVideoUpdated,
			Payload:       payload,
			Attributes:    events.Attributes(eventID, events.TypeVideoUpdated, input.VideoID, occurredAt),
			AvailableAt:   occurredAt,
		}); enqErr != nil {
			return enqErr
		}
		updated = v
		return nil
	})
	if txErr != nil {
		// 事务已回滚：行保持更新前状态，旧 Blob 原封不动
		if errors.Is(txErr, ErrVideoNotFound) {
			return nil, ErrVideoNotFound
		}
		if notFound := taxonomyNotFound(txErr); notFound != nil {
			return nil, notFound
		}
		if errors.Is(txErr, context.DeadlineExceeded) {
			uc.log.WithContext(ctx).Warnf("update video timeout: video_id=%s", input.VideoID)
			return nil, errors.GatewayTimeout(reasonCommandTimeout, "update timeout")
		}
		uc.log.WithContext(ctx).Errorf("update video failed: video_id=%s err=%v", input.VideoID, txErr)
		return nil, errors.InternalServer(reasonVideoPersistFailed, "failed to update video").WithCause(fmt.Errorf("update video: %w", txErr))
	}

	if upErr := uc.uploadStaged(ctx, input.VideoID, staged); upErr != nil {
		// 行已提交且引用新对象名：按失败上抛，旧对象保留待人工或重试修复
		uc.log.WithContext(ctx).Errorf("upload after update failed: video_id=%s err=%v", input.VideoID, upErr)
		return nil, errors.InternalServer(reasonVideoUploadFailed, "failed to upload video files").WithCause(upErr)
	}

	// 全部成功后才清理被替换的旧对象；清理失败只记录，不影响结果
	uc.deleteBlobs(context.WithoutCancel(ctx), oldPaths, nil)

	uc.log.WithContext(ctx).Infof("UpdateVideo: video_id=%s files=%d replaced=%d", updated.VideoID, len(staged), len(oldPaths))
	return uc.detail(ctx, input.VideoID)
}

// syncRelations 依固定顺序同步三组多对多关联；切片为 nil 的关联不触碰。
func (uc *VideoUsecase) syncRelations(ctx context.Context, sess txmanager.Session, videoID uuid.UUID, categories, genres, castMembers []uuid.UUID) error {
	if categories != nil {
		if err := uc.repo.ReplaceCategories(ctx, sess, videoID, categories); err != nil {
			return fmt.Errorf("sync categories: %w", err)
		}
	}
	if genres != nil {
		if err := uc.repo.ReplaceGenres(ctx, sess, videoID, genres); err != nil {
			return fmt.Errorf("sync genres: %w", err)
		}
	}
	if castMembers != nil {
		if err := uc.repo.ReplaceCastMembers(ctx, sess, videoID, castMembers); err != nil {
			return fmt.Errorf("sync cast members: %w", err)
		}
	}
	return nil
}

// uploadStaged 并发上传暂存文件（最多 4 个）。任一失败时删除本次已上传的
// 全部对象（含并行兄弟任务的成果），并返回首个上传错误。
func (uc *VideoUsecase) uploadStaged(ctx context.Context, videoID uuid.UUID, staged []stagedUpload) error {
	if len(staged) == 0 {
		return nil
	}

	var mu sync.Mutex
	uploaded := make([]string, 0, len(staged))

	g, gctx := errgroup.WithContext(ctx)
	for _, item := range staged {
		g.Go(func() error {
			path := po.BlobPath(videoID, item.Name)
			if err := uc.blobs.Put(gctx, path, item.Payload, item.ContentType); err != nil {
				return fmt.Errorf("upload %s: %w", item.Field, err)
			}
			mu.Lock()
			uploaded = append(uploaded, path)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// 补偿删除使用不可取消的上下文，保证清理不被同一失败连带中断
		uc.deleteBlobs(context.WithoutCancel(ctx), uploaded, err)
		return err
	}
	return nil
}

// deleteBlobs 逐个删除对象。删除失败不得掩盖原始错误：双方都记录日志，
// 调用方仍然收到（或保持）cause 对应的结果。
func (uc *VideoUsecase) deleteBlobs(ctx context.Context, paths []string, cause error) {
	for _, path := range paths {
		if err := uc.blobs.Delete(ctx, path); err != nil {
			if cause != nil {
				uc.log.WithContext(ctx).Errorf("compensating delete failed: path=%s err=%v cause=%v", path, err, cause)
			} else {
				uc.log.WithContext(ctx).Errorf("delete old blob failed: path=%s err=%v", path, err)
			}
		}
	}
}

// detail 提交完成后刷新实体，返回含关联与文件 URL 的视图。
func (uc *VideoUsecase) detail(ctx context.Context, videoID uuid.UUID) (*vo.VideoDetail, error) {
	agg, err := uc.repo.FindDetail(ctx, nil, videoID)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("refresh video failed: video_id=%s err=%v", videoID, err)
		return nil, errors.InternalServer(reasonVideoPersistFailed, "failed to refresh video").WithCause(err)
	}
	return vo.NewVideoDetail(agg.Video, agg.CategoryIDs, agg.GenreIDs, agg.CastMemberIDs, uc.blobs.PublicURL), nil
}
