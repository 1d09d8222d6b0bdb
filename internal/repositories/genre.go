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
	"github.com/jackc/pgx/v5/pgxpool"
)

// GenreRepository 实现 services.GenreRepo。
type GenreRepository struct {
	pool *pgxpool.Pool
	log  *log.Helper
}

// NewGenreRepository 构造 GenreRepository。
func NewGenreRepository(pool *pgxpool.Pool, logger log.Logger) *GenreRepository {
	return &GenreRepository{pool: pool, log: log.NewHelper(logger)}
}

func (r *GenreRepository) db(sess txmanager.Session) dbtx {
	if sess != nil {
		return sess.Tx()
	}
	return r.pool
}

const genreColumns = `genre_id, name, is_active, created_at, updated_at, deleted_at`

const insertGenreSQL = `
INSERT INTO catalog.genres (genre_id, name, is_active)
VALUES ($1, $2, $3)
RETURNING ` + genreColumns

// Create 插入新类型。
func (r *GenreRepository) Create(ctx context.Context, sess txmanager.Session, genre *po.Genre) (*po.Genre, error) {
	row := r.db(sess).QueryRow(ctx, insertGenreSQL, genre.GenreID, genre.Name, genre.IsActive)
	created, err := scanGenre(row)
	if err != nil {
		return nil, fmt.Errorf("insert genre: %w", err)
	}
	return created, nil
}

const updateGenreSQL = `
UPDATE catalog.genres SET
	name       = COALESCE($2, name),
	is_active  = COALESCE($3, is_active),
	updated_at = now()
WHERE genre_id = $1 AND deleted_at IS NULL
RETURNING ` + genreColumns

// Update 部分更新类型；nil 字段保持原值。
func (r *GenreRepository) Update(ctx context.Context, sess txmanager.Session, input services.UpdateGenreRow) (*po.Genre, error) {
	row := r.db(sess).QueryRow(ctx, updateGenreSQL, input.GenreID, input.Name, input.IsActive)
	updated, err := scanGenre(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.ErrGenreNotFound
		}
		return nil, fmt.Errorf("update genre: %w", err)
	}
	return updated, nil
}

const findGenreSQL = `
SELECT ` + genreColumns + `
FROM catalog.genres
WHERE genre_id = $1 AND deleted_at IS NULL`

// FindByID 读取未删除的类型。
func (r *GenreRepository) FindByID(ctx context.Context, sess txmanager.Session, genreID uuid.UUID) (*po.Genre, error) {
	row := r.db(sess).QueryRow(ctx, findGenreSQL, genreID)
	genre, err := scanGenre(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.ErrGenreNotFound
		}
		return nil, fmt.Errorf("find genre: %w", err)
	}
	return genre, nil
}

const findGenreCategoryIDsSQL = `
SELECT category_id FROM catalog.genre_categories
WHERE genre_id = $1
ORDER BY category_id`

// FindCategoryIDs 读取类型当前关联的全部分类 ID。
func (r *GenreRepository) FindCategoryIDs(ctx context.Context, sess txmanager.Session, genreID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db(sess).Query(ctx, findGenreCategoryIDsSQL, genreID)
	if err != nil {
		return nil, fmt.Errorf("find genre categories: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0, 8)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan genre category: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre categories: %w", err)
	}
	return ids, nil
}

const softDeleteGenreSQL = `
UPDATE catalog.genres SET deleted_at = now(), updated_at = now()
WHERE genre_id = $1 AND deleted_at IS NULL`

// SoftDelete 标记删除类型。
func (r *GenreRepository) SoftDelete(ctx context.Context, sess txmanager.Session, genreID uuid.UUID) error {
	tag, err := r.db(sess).Exec(ctx, softDeleteGenreSQL, genreID)
	if err != nil {
		return fmt.Errorf("soft delete genre: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return services.ErrGenreNotFound
	}
	return nil
}

const (
	deleteGenreCategoriesSQL = `
DELETE FROM catalog.genre_categories
WHERE genre_id = $1 AND category_id <> ALL($2::uuid[])`

	insertGenreCategoriesSQL = `
INSERT INTO catalog.genre_categories (genre_id, category_id)
SELECT $1, unnest($2::uuid[])
ON CONFLICT DO NOTHING`
)

// ReplaceCategories 将类型的分类关联整体替换为 ids。
func (r *GenreRepository) ReplaceCategories(ctx context.Context, sess txmanager.Session, genreID uuid.UUID, ids []uuid.UUID) error {
	target := dedupIDs(ids)
	db := r.db(sess)
	if _, err := db.Exec(ctx, deleteGenreCategoriesSQL, genreID, target); err != nil {
		return fmt.Errorf("prune genre categories: %w", err)
	}
	if len(target) == 0 {
		return nil
	}
	if _, err := db.Exec(ctx, insertGenreCategoriesSQL, genreID, target); err != nil {
		if isForeignKeyViolation(err) {
			return services.ErrCategoryNotFound
		}
		return fmt.Errorf("attach genre categories: %w", err)
	}
	return nil
}

func scanGenre(row pgx.Row) (*po.Genre, error) {
	var genre po.Genre
	if err := row.Scan(
		&genre.GenreID, &genre.Name, &genre.IsActive,
		&genre.CreatedAt, &genre.UpdatedAt, &genre.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &genre, nil
}
