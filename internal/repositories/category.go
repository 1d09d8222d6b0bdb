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

// CategoryRepository 实现 services.CategoryRepo。
type CategoryRepository struct {
	pool *pgxpool.Pool
	log  *log.Helper
}

// NewCategoryRepository 构造 CategoryRepository。
func NewCategoryRepository(pool *pgxpool.Pool, logger log.Logger) *CategoryRepository {
	return &CategoryRepository{pool: pool, log: log.NewHelper(logger)}
}

func (r *CategoryRepository) db(sess txmanager.Session) dbtx {
	if sess != nil {
		return sess.Tx()
	}
	return r.pool
}

const categoryColumns = `category_id, name, description, is_active, created_at, updated_at, deleted_at`

const insertCategorySQL = `
INSERT INTO catalog.categories (category_id, name, description, is_active)
VALUES ($1, $2, $3, $4)
RETURNING ` + categoryColumns

// Create 插入新分类。
func (r *CategoryRepository) Create(ctx context.Context, sess txmanager.Session, category *po.Category) (*po.Category, error) {
	row := r.db(sess).QueryRow(ctx, insertCategorySQL,
		category.CategoryID, category.Name, category.Description, category.IsActive)
	created, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return created, nil
}

const updateCategorySQL = `
UPDATE catalog.categories SET
	name        = COALESCE($2, name),
	description = COALESCE($3, description),
	is_active   = COALESCE($4, is_active),
	updated_at  = now()
WHERE category_id = $1 AND deleted_at IS NULL
RETURNING ` + categoryColumns

// Update 部分更新分类；nil 字段保持原值。
func (r *CategoryRepository) Update(ctx context.Context, sess txmanager.Session, input services.UpdateCategoryRow) (*po.Category, error) {
	row := r.db(sess).QueryRow(ctx, updateCategorySQL,
		input.CategoryID, input.Name, input.Description, input.IsActive)
	updated, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return updated, nil
}

const findCategorySQL = `
SELECT ` + categoryColumns + `
FROM catalog.categories
WHERE category_id = $1 AND deleted_at IS NULL`

// FindByID 读取未删除的分类。
func (r *CategoryRepository) FindByID(ctx context.Context, sess txmanager.Session, categoryID uuid.UUID) (*po.Category, error) {
	row := r.db(sess).QueryRow(ctx, findCategorySQL, categoryID)
	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return category, nil
}

const softDeleteCategorySQL = `
UPDATE catalog.categories SET deleted_at = now(), updated_at = now()
WHERE category_id = $1 AND deleted_at IS NULL`

// SoftDelete 标记删除分类。
func (r *CategoryRepository) SoftDelete(ctx context.Context, sess txmanager.Session, categoryID uuid.UUID) error {
	tag, err := r.db(sess).Exec(ctx, softDeleteCategorySQL, categoryID)
	if err != nil {
		return fmt.Errorf("soft delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return services.ErrCategoryNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*po.Category, error) {
	var category po.Category
	if err := row.Scan(
		&category.CategoryID, &category.Name, &category.Description, &category.IsActive,
		&category.CreatedAt, &category.UpdatedAt, &category.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &category, nil
}
