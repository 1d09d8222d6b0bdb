package services

import (
	"context"
	"fmt"

	"github.com/bionicotaku/lingo-services-admin/internal/models/po"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// CategoryRepo 定义 Category 的持久化接口。
type CategoryRepo interface {
	Create(ctx context.Context, sess txmanager.Session, category *po.Category) (*po.Category, error)
	Update(ctx context.Context, sess txmanager.Session, input UpdateCategoryRow) (*po.Category, error)
	FindByID(ctx context.Context, sess txmanager.Session, categoryID uuid.UUID) (*po.Category, error)
	SoftDelete(ctx context.Context, sess txmanager.Session, categoryID uuid.UUID) error
}

// GenreRepo 定义 Genre 的持久化接口，含其与 Category 的关联同步。
type GenreRepo interface {
	Create(ctx context.Context, sess txmanager.Session, genre *po.Genre) (*po.Genre, error)
	Update(ctx context.Context, sess txmanager.Session, input UpdateGenreRow) (*po.Genre, error)
	FindByID(ctx context.Context, sess txmanager.Session, genreID uuid.UUID) (*po.Genre, error)
	FindCategoryIDs(ctx context.Context, sess txmanager.Session, genreID uuid.UUID) ([]uuid.UUID, error)
	SoftDelete(ctx context.Context, sess txmanager.Session, genreID uuid.UUID) error
	ReplaceCategories(ctx context.Context, sess txmanager.Session, genreID uuid.UUID, ids []uuid.UUID) error
}

// CastMemberRepo 定义 CastMember 的持久化接口。
type CastMemberRepo interface {
	Create(ctx context.Context, sess txmanager.Session, member *po.CastMember) (*po.CastMember, error)
	Update(ctx context.Context, sess txmanager.Session, input UpdateCastMemberRow) (*po.CastMember, error)
	FindByID(ctx context.Context, sess txmanager.Session, memberID uuid.UUID) (*po.CastMember, error)
	SoftDelete(ctx context.Context, sess txmanager.Session, memberID uuid.UUID) error
}

// UpdateCategoryRow 是 Category 的部分更新参数。
type UpdateCategoryRow struct {
	CategoryID  uuid.UUID
	Name        *string
	Description *string
	IsActive    *bool
}

// UpdateGenreRow 是 Genre 的部分更新参数。
type UpdateGenreRow struct {
	GenreID  uuid.UUID
	Name     *string
	IsActive *bool
}

// UpdateCastMemberRow 是 CastMember 的部分更新参数。
type UpdateCastMemberRow struct {
	CastMemberID uuid.UUID
	Name         *string
	Type         *po.CastMemberType
}

// CreateGenreInput 表示创建 Genre 的输入；CategoryIDs 为 nil 表示不关联。
type CreateGenreInput struct {
	Name        string
	IsActive    bool
	CategoryIDs []uuid.UUID
}

// UpdateGenreInput 表示更新 Genre 的输入；CategoryIDs 语义同视频关联：
// nil 保留现状，空切片清空。
type UpdateGenreInput struct {
	GenreID     uuid.UUID
	Name        *string
	IsActive    *bool
	CategoryIDs []uuid.UUID
}

// TaxonomyUsecase 封装分类 / 类型 / 演职人员的增删改用例。
type TaxonomyUsecase struct {
	categories  CategoryRepo
	genres      GenreRepo
	castMembers CastMemberRepo
	txManager   txmanager.Manager
	log         *log.Helper
	newID       func() uuid.UUID
}

// NewTaxonomyUsecase 构造 TaxonomyUsecase。
func NewTaxonomyUsecase(categories CategoryRepo, genres GenreRepo, castMembers CastMemberRepo, tx txmanager.Manager, logger log.Logger) *TaxonomyUsecase {
	return &TaxonomyUsecase{
		categories:  categories,
		genres:      genres,
		castMembers: castMembers,
		txManager:   tx,
		log:         log.NewHelper(logger),
		newID:       uuid.New,
	}
}

// WithIDGenerator 覆盖实体 ID 生成函数，便于测试。
func (uc *TaxonomyUsecase) WithIDGenerator(gen func() uuid.UUID) *TaxonomyUsecase {
	if gen != nil {
		uc.newID = gen
	}
	return uc
}

// CreateCategory 创建分类。
func (uc *TaxonomyUsecase) CreateCategory(ctx context.Context, name string, description *string, isActive bool) (*po.Category, error) {
	if name == "" {
		return nil, errors.BadRequest(reasonTaxonomyInvalid, "name is required")
	}
	row := &po.Category{CategoryID: uc.newID(), Name: name, Description: description, IsActive: isActive}
	var created *po.Category
	err := uc.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		c, repoErr := uc.categories.Create(txCtx, sess, row)
		created = c
		return repoErr
	})
	if err != nil {
		uc.log.WithContext(ctx).Errorf("create category failed: name=%s err=%v", name, err)
		return nil, errors.InternalServer(reasonTaxonomyFailed, "failed to create category").WithCause(err)
	}
	return created, nil
}

// UpdateCategory 部分更新分类。
func (uc *TaxonomyUsecase) UpdateCategory(ctx context.Context, input UpdateCategoryRow) (*po.Category, error) {
	var updated *po.Category
	err := uc.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		c, repoErr := uc.categories.Update(txCtx, sess, input)
		updated = c
		return repoErr
	})
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		uc.log.WithContext(ctx).Errorf("update category failed: category_id=%s err=%v", input.CategoryID, err)
		return nil, errors.InternalServer(reasonTaxonomyFailed, "failed to update category").WithCause(err)
	}
	return updated, nil
}

// DeleteCategory 软删除分类。
func (uc *TaxonomyUsecase) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	return uc.softDelete(ctx, "category", categoryID, ErrCategoryNotFound, uc.categories.SoftDelete)
}

// CreateGenre 创建类型，并在同一事务内同步其分类关联。
func (uc *TaxonomyUsecase) CreateGenre(ctx context.Context, input CreateGenreInput) (*po.Genre, error) {
	if input.Name == "" {
		return nil, errors.BadRequest(reasonTaxonomyInvalid, "name is required")
	}
	row := &po.Genre{GenreID: uc.newID(), Name: input.Name, IsActive: input.IsActive}
	var created *po.Genre
	err := uc.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		g, repoErr := uc.genres.Create(txCtx, sess, row)
		if repoErr != nil {
			return repoErr
		}
		if input.CategoryIDs != nil {
			if syncErr := uc.genres.ReplaceCategories(txCtx, sess, g.GenreID, input.CategoryIDs); syncErr != nil {
				return fmt.Errorf("sync genre categories: %w", syncErr)
			}
		}
		created = g
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		uc.log.WithContext(ctx).Errorf("create genre failed: name=%s err=%v", input.Name, err)
		return nil, errors.InternalServer(reasonTaxonomyFailed, "failed to create genre").WithCause(err)
	}
	return created, nil
}

// UpdateGenre 部分更新类型；CategoryIDs 出现时整体替换其分类关联。
func (uc *TaxonomyUsecase) UpdateGenre(ctx context.Context, input UpdateGenreInput) (*po.Genre, error) {
	var updated *po.Genre
	err := uc.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		g, repoErr := uc.genres.Update(txCtx, sess, UpdateGenreRow{GenreID: input.GenreID, Name: input.Name, IsActive: input.IsActive})
		if repoErr != nil {
			return repoErr
		}
		if input.CategoryIDs != nil {
			if syncErr := uc.genres.ReplaceCategories(txCtx, sess, input.GenreID, input.CategoryIDs); syncErr != nil {
				return fmt.Errorf("sync genre categories: %w", syncErr)
			}
		}
		updated = g
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrGenreNotFound) {
			return nil, ErrGenreNotFound
		}
		if errors.Is(err, ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		uc.log.WithContext(ctx).Errorf("update genre failed: genre_id=%s err=%v", input.GenreID, err)
		return nil, errors.InternalServer(reasonTaxonomyFailed, "failed to update genre").WithCause(err)
	}
	return updated, nil
}

// GenreCategoryIDs 读取类型当前关联的全部分类 ID。
func (uc *TaxonomyUsecase) GenreCategoryIDs(ctx context.Context, genreID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := uc.genres.FindCategoryIDs(ctx, nil, genreID)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("load genre categories failed: genre_id=%s err=%v", genreID, err)
		return nil, errors.InternalServer(reasonTaxonomyFailed, "failed to load genre categories").WithCause(err)
	}
	return ids, nil
}

// DeleteGenre 软删除类型。
func (uc *TaxonomyUsecase) DeleteGenre(ctx context.Context, genreID uuid.UUID) error {
	return uc.softDelete(ctx, "genre", genreID, ErrGenreNotFound, uc.genres.SoftDelete)
}

// CreateCastMember 创建演职人员。
func (uc *TaxonomyUsecase) CreateCastMember(ctx context.Context, name string, rawType int16) (*po.CastMember, error) {
	if name == "" {
		return nil, errors.BadRequest(reasonTaxonomyInvalid, "name is required")
	}
	memberType, err := po.ParseCastMemberType(rawType)
	if err != nil {
		return nil, errors.BadRequest(reasonTaxonomyInvalid, err.Error())
	}
	row := &po.CastMember{CastMemberID: uc.newID(), Name: name, Type: memberType}
	var created *po.CastMember
	txErr := uc.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		m, repoErr := uc.castMembers.Create(txCtx, sess, row)
		created = m
		return repoErr
	})
	if txErr != nil {
		uc.log.WithContext(ctx).Errorf("create cast member failed: name=%s err=%v", name, txErr)
		return nil, errors.InternalServer(reasonTaxonomyFailed, "failed to create cast member").WithCause(txErr)
	}
	return created, nil
}

// UpdateCastMember 部分更新演职人员。
func (uc *TaxonomyUsecase) UpdateCastMember(ctx context.Context, input UpdateCastMemberRow) (*po.CastMember, error) {
	var updated *po.CastMember
	err := uc.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		m, repoErr := uc.castMembers.Update(txCtx, sess, input)
		updated = m
		return repoErr
	})
	if err != nil {
		if errors.Is(err, ErrCastMemberNotFound) {
			return nil, ErrCastMemberNotFound
		}
		uc.log.WithContext(ctx).Errorf("update cast member failed: cast_member_id=%s err=%v", input.CastMemberID, err)
		return nil, errors.InternalServer(reasonTaxonomyFailed, "failed to update cast member").WithCause(err)
	}
	return updated, nil
}

// DeleteCastMember 软删除演职人员。
func (uc *TaxonomyUsecase) DeleteCastMember(ctx context.Context, memberID uuid.UUID) error {
	return uc.softDelete(ctx, "cast member", memberID, ErrCastMemberNotFound, uc.castMembers.SoftDelete)
}

func (uc *TaxonomyUsecase) softDelete(ctx context.Context, kind string, id uuid.UUID, notFound error, fn func(context.Context, txmanager.Session, uuid.UUID) error) error {
	err := uc.txManager.WithinTx(ctx, txmanager.TxOptions{}, func(txCtx context.Context, sess txmanager.Session) error {
		return fn(txCtx, sess, id)
	})
	if err != nil {
		if errors.Is(err, notFound) {
			return notFound
		}
		uc.log.WithContext(ctx).Errorf("delete %s failed: id=%s err=%v", kind, id, err)
		return errors.InternalServer(reasonTaxonomyFailed, "failed to delete "+kind).WithCause(err)
	}
	return nil
}
