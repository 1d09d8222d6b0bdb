// Package repositories 提供基于 pgx 的持久化实现。
//
// 所有写方法都接收 txmanager.Session：传入非 nil 会在事务内执行，
// 传入 nil 则直接走连接池（只读查询常用）。
package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/bionicotaku/lingo-services-admin/internal/models/po"
	"github.com/bionicotaku/lingo-services-admin/internal/services"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// dbtx 是 pgx.Tx 与 *pgxpool.Pool 的公共子集。
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// VideoRepository 实现 services.VideoRepo。
type VideoRepository struct {
	pool *pgxpool.Pool
	log  *log.Helper
}

// NewVideoRepository 构造 VideoRepository。
func NewVideoRepository(pool *pgxpool.Pool, logger log.Logger) *VideoRepository {
	return &VideoRepository{pool: pool, log: log.NewHelper(logger)}
}

func (r *VideoRepository) db(sess txmanager.Session) dbtx {
	if sess != nil {
		return sess.Tx()
	}
	return r.pool
}

const videoColumns = `video_id, title, description, year_launched, opened, rating, duration,
	thumb_file, banner_file, trailer_file, video_file, created_at, updated_at, deleted_at`

const insertVideoSQL = `
INSERT INTO catalog.videos (
	video_id, title, description, year_launched, opened, rating, duration,
	thumb_file, banner_file, trailer_file, video_file
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + videoColumns

// Create 插入新视频行并返回数据库生成的时间戳。
func (r *VideoRepository) Create(ctx context.Context, sess txmanager.Session, video *po.Video) (*po.Video, error) {
	row := r.db(sess).QueryRow(ctx, insertVideoSQL,
		video.VideoID, video.Title, video.Description, video.YearLaunched, video.Opened,
		video.Rating, video.Duration,
		video.ThumbFile, video.BannerFile, video.TrailerFile, video.VideoFile,
	)
	created, err := scanVideo(row)
	if err != nil {
		return nil, fmt.Errorf("insert video: %w", err)
	}
	return created, nil
}

const updateVideoSQL = `
UPDATE catalog.videos SET
	title         = COALESCE($2, title),
	description   = COALESCE($3, description),
	year_launched = COALESCE($4, year_launched),
	opened        = COALESCE($5, opened),
	rating        = COALESCE($6, rating),
	duration      = COALESCE($7, duration),
	thumb_file    = COALESCE($8, thumb_file),
	banner_file   = COALESCE($9, banner_file),
	trailer_file  = COALESCE($10, trailer_file),
	video_file    = COALESCE($11, video_file),
	updated_at    = now()
WHERE video_id = $1 AND deleted_at IS NULL
RETURNING ` + videoColumns

// Update 按字段部分更新；nil 字段保持原值。未命中行映射为 ErrVideoNotFound。
func (r *VideoRepository) Update(ctx context.Context, sess txmanager.Session, input services.UpdateVideoRow) (*po.Video, error) {
	row := r.db(sess).QueryRow(ctx, updateVideoSQL,
		input.VideoID, input.Title, input.Description, input.YearLaunched, input.Opened,
		input.Rating, input.Duration,
		input.ThumbFile, input.BannerFile, input.TrailerFile, input.VideoFile,
	)
	updated, err := scanVideo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.ErrVideoNotFound
		}
		return nil, fmt.Errorf("update video: %w", err)
	}
	return updated, nil
}

const findVideoSQL = `
SELECT ` + videoColumns + `
FROM catalog.videos
WHERE video_id = $1 AND deleted_at IS NULL`

// FindByID 读取未删除的视频行。
func (r *VideoRepository) FindByID(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.Video, error) {
	row := r.db(sess).QueryRow(ctx, findVideoSQL, videoID)
	video, err := scanVideo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.ErrVideoNotFound
		}
		return nil, fmt.Errorf("find video: %w", err)
	}
	return video, nil
}

const findVideoDetailSQL = `
SELECT ` + videoColumns + `,
	COALESCE((SELECT array_agg(vc.category_id ORDER BY vc.category_id)
		FROM catalog.video_categories vc WHERE vc.video_id = v.video_id), '{}')::uuid[],
	COALESCE((SELECT array_agg(vg.genre_id ORDER BY vg.genre_id)
		FROM catalog.video_genres vg WHERE vg.video_id = v.video_id), '{}')::uuid[],
	COALESCE((SELECT array_agg(vm.cast_member_id ORDER BY vm.cast_member_id)
		FROM catalog.video_cast_members vm WHERE vm.video_id = v.video_id), '{}')::uuid[]
FROM catalog.videos v
WHERE v.video_id = $1 AND v.deleted_at IS NULL`

// FindDetail 读取视频行及其全部关联 ID。
func (r *VideoRepository) FindDetail(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*services.VideoAggregate, error) {
	var (
		video       po.Video
		categories  []uuid.UUID
		genres      []uuid.UUID
		castMembers []uuid.UUID
	)
	err := r.db(sess).QueryRow(ctx, findVideoDetailSQL, videoID).Scan(
		&video.VideoID, &video.Title, &video.Description, &video.YearLaunched, &video.Opened,
		&video.Rating, &video.Duration,
		&video.ThumbFile, &video.BannerFile, &video.TrailerFile, &video.VideoFile,
		&video.CreatedAt, &video.UpdatedAt, &video.DeletedAt,
		&categories, &genres, &castMembers,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.ErrVideoNotFound
		}
		return nil, fmt.Errorf("find video detail: %w", err)
	}
	return &services.VideoAggregate{
		Video:         &video,
		CategoryIDs:   categories,
		GenreIDs:      genres,
		CastMemberIDs: castMembers,
	}, nil
}

const softDeleteVideoSQL = `
UPDATE catalog.videos SET deleted_at = now(), updated_at = now()
WHERE video_id = $1 AND deleted_at IS NULL`

// SoftDelete 标记删除。
func (r *VideoRepository) SoftDelete(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) error {
	tag, err := r.db(sess).Exec(ctx, softDeleteVideoSQL, videoID)
	if err != nil {
		return fmt.Errorf("soft delete video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return services.ErrVideoNotFound
	}
	return nil
}

const restoreVideoSQL = `
UPDATE catalog.videos SET deleted_at = NULL, updated_at = now()
WHERE video_id = $1 AND deleted_at IS NOT NULL`

// Restore 撤销软删除。
func (r *VideoRepository) Restore(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) error {
	tag, err := r.db(sess).Exec(ctx, restoreVideoSQL, videoID)
	if err != nil {
		return fmt.Errorf("restore video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return services.ErrVideoNotFound
	}
	return nil
}

const hardDeleteVideoSQL = `DELETE FROM catalog.videos WHERE video_id = $1`

// HardDelete 物理删除；关联行由外键级联清理。
func (r *VideoRepository) HardDelete(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) error {
	tag, err := r.db(sess).Exec(ctx, hardDeleteVideoSQL, videoID)
	if err != nil {
		return fmt.Errorf("hard delete video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return services.ErrVideoNotFound
	}
	return nil
}

func scanVideo(row pgx.Row) (*po.Video, error) {
	var video po.Video
	if err := row.Scan(
		&video.VideoID, &video.Title, &video.Description, &video.YearLaunched, &video.Opened,
		&video.Rating, &video.Duration,
		&video.ThumbFile, &video.BannerFile, &video.TrailerFile, &video.VideoFile,
		&video.CreatedAt, &video.UpdatedAt, &video.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &video, nil
}
