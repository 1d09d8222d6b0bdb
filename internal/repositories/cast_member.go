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

// CastMemberRepository 实现 services.CastMemberRepo。
type CastMemberRepository struct {
	pool *pgxpool.Pool
	log  *log.Helper
}

// NewCastMemberRepository 构造 CastMemberRepository。
func NewCastMemberRepository(pool *pgxpool.Pool, logger log.Logger) *CastMemberRepository {
	return &CastMemberRepository{pool: pool, log: log.NewHelper(logger)}
}

func (r *CastMemberRepository) db(sess txmanager.Session) dbtx {
	if sess != nil {
		return sess.Tx()
	}
	return r.pool
}

const castMemberColumns = `cast_member_id, name, type, created_at, updated_at, deleted_at`

const insertCastMemberSQL = `
INSERT INTO catalog.cast_members (cast_member_id, name, type)
VALUES ($1, $2, $3)
RETURNING ` + castMemberColumns

// Create 插入新演职人员。
func (r *CastMemberRepository) Create(ctx context.Context, sess txmanager.Session, member *po.CastMember) (*po.CastMember, error) {
	row := r.db(sess).QueryRow(ctx, insertCastMemberSQL, member.CastMemberID, member.Name, member.Type)
	created, err := scanCastMember(row)
	if err != nil {
		return nil, fmt.Errorf("insert cast member: %w", err)
	}
	return created, nil
}

const updateCastMemberSQL = `
UPDATE catalog.cast_members SET
	name       = COALESCE($2, name),
	type       = COALESCE($3, type),
	updated_at = now()
WHERE cast_member_id = $1 AND deleted_at IS NULL
RETURNING ` + castMemberColumns

// Update 部分更新演职人员；nil 字段保持原值。
func (r *CastMemberRepository) Update(ctx context.Context, sess txmanager.Session, input services.UpdateCastMemberRow) (*po.CastMember, error) {
	row := r.db(sess).QueryRow(ctx, updateCastMemberSQL, input.CastMemberID, input.Name, input.Type)
	updated, err := scanCastMember(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.ErrCastMemberNotFound
		}
		return nil, fmt.Errorf("update cast member: %w", err)
	}
	return updated, nil
}

const findCastMemberSQL = `
SELECT ` + castMemberColumns + `
FROM catalog.cast_members
WHERE cast_member_id = $1 AND deleted_at IS NULL`

// FindByID 读取未删除的演职人员。
func (r *CastMemberRepository) FindByID(ctx context.Context, sess txmanager.Session, memberID uuid.UUID) (*po.CastMember, error) {
	row := r.db(sess).QueryRow(ctx, findCastMemberSQL, memberID)
	member, err := scanCastMember(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.ErrCastMemberNotFound
		}
		return nil, fmt.Errorf("find cast member: %w", err)
	}
	return member, nil
}

const softDeleteCastMemberSQL = `
UPDATE catalog.cast_members SET deleted_at = now(), updated_at = now()
WHERE cast_member_id = $1 AND deleted_at IS NULL`

// SoftDelete 标记删除演职人员。
func (r *CastMemberRepository) SoftDelete(ctx context.Context, sess txmanager.Session, memberID uuid.UUID) error {
	tag, err := r.db(sess).Exec(ctx, softDeleteCastMemberSQL, memberID)
	if err != nil {
		return fmt.Errorf("soft delete cast member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return services.ErrCastMemberNotFound
	}
	return nil
}

func scanCastMember(row pgx.Row) (*po.CastMember, error) {
	var member po.CastMember
	if err := row.Scan(
		&member.CastMemberID, &member.Name, &member.Type,
		&member.CreatedAt, &member.UpdatedAt, &member.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &member, nil
}
