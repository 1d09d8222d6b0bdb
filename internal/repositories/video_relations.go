package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/bionicotaku/lingo-services-admin/internal/services"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// 关联同步采用整体替换语义：先删除不在目标集合中的行，再幂等补齐缺失行。
// 两条语句都只触碰差集，重复提交相同集合不会产生写放大。

const (
	deleteVideoCategoriesSQL = `
DELETE FROM catalog.video_categories
WHERE video_id = $1 AND category_id <> ALL($2::uuid[])`

	insertVideoCategoriesSQL = `
INSERT INTO catalog.video_categories (video_id, category_id)
SELECT $1, unnest($2::uuid[])
ON CONFLICT DO NOTHING`

	deleteVideoGenresSQL = `
DELETE FROM catalog.video_genres
WHERE video_id = $1 AND genre_id <> ALL($2::uuid[])`

	insertVideoGenresSQL = `
INSERT INTO catalog.video_genres (video_id, genre_id)
SELECT $1, unnest($2::uuid[])
ON CONFLICT DO NOTHING`

	deleteVideoCastMembersSQL = `
DELETE FROM catalog.video_cast_members
WHERE video_id = $1 AND cast_member_id <> ALL($2::uuid[])`

	insertVideoCastMembersSQL = `
INSERT INTO catalog.video_cast_members (video_id, cast_member_id)
SELECT $1, unnest($2::uuid[])
ON CONFLICT DO NOTHING`
)

// ReplaceCategories 将视频的分类关联整体替换为 ids。
func (r *VideoRepository) ReplaceCategories(ctx context.Context, sess txmanager.Session, videoID uuid.UUID, ids []uuid.UUID) error {
	return r.replaceRelation(ctx, sess, "categories", deleteVideoCategoriesSQL, insertVideoCategoriesSQL, services.ErrCategoryNotFound, videoID, ids)
}

// ReplaceGenres 将视频的类型关联整体替换为 ids。
func (r *VideoRepository) ReplaceGenres(ctx context.Context, sess txmanager.Session, videoID uuid.UUID, ids []uuid.UUID) error {
	return r.replaceRelation(ctx, sess, "genres", deleteVideoGenresSQL, insertVideoGenresSQL, services.ErrGenreNotFound, videoID, ids)
}

// ReplaceCastMembers 将视频的演职人员关联整体替换为 ids。
func (r *VideoRepository) ReplaceCastMembers(ctx context.Context, sess txmanager.Session, videoID uuid.UUID, ids []uuid.UUID) error {
	return r.replaceRelation(ctx, sess, "cast members", deleteVideoCastMembersSQL, insertVideoCastMembersSQL, services.ErrCastMemberNotFound, videoID, ids)
}

func (r *VideoRepository) replaceRelation(ctx context.Context, sess txmanager.Session, kind, deleteSQL, insertSQL string, notFound error, videoID uuid.UUID, ids []uuid.UUID) error {
	target := dedupIDs(ids)
	db := r.db(sess)
	if _, err := db.Exec(ctx, deleteSQL, videoID, target); err != nil {
		return fmt.Errorf("prune %s: %w", kind, err)
	}
	if len(target) == 0 {
		return nil
	}
	if _, err := db.Exec(ctx, insertSQL, videoID, target); err != nil {
		if isForeignKeyViolation(err) {
			return notFound
		}
		return fmt.Errorf("attach %s: %w", kind, err)
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// dedupIDs 去重并保序；返回值永不为 nil，空集合编码为空数组。
func dedupIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
