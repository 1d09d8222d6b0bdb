package controllers

import (
	"fmt"
	stdhttp "net/http"

	"github.com/bionicotaku/lingo-services-admin/internal/controllers/dto"
	"github.com/bionicotaku/lingo-services-admin/internal/models/po"
	"github.com/bionicotaku/lingo-services-admin/internal/models/vo"
	"github.com/bionicotaku/lingo-services-admin/internal/services"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"
)

const reasonTaxonomyInvalid = "TAXONOMY_INVALID_ARGUMENT"

// CatalogHandler 暴露分类 / 类型 / 演职人员的管理 HTTP 接口。
type CatalogHandler struct {
	*BaseHandler
	taxonomy *services.TaxonomyUsecase
	log      *log.Helper
}

// NewCatalogHandler 构造 CatalogHandler。
func NewCatalogHandler(base *BaseHandler, taxonomy *services.TaxonomyUsecase, logger log.Logger) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler: base,
		taxonomy:    taxonomy,
		log:         log.NewHelper(logger),
	}
}

// Register 挂载路由。
func (h *CatalogHandler) Register(r *khttp.Router) {
	r.POST("/categories", h.createCategory)
	r.PATCH("/categories/{category_id}", h.updateCategory)
	r.DELETE("/categories/{category_id}", h.deleteCategory)

	r.POST("/genres", h.createGenre)
	r.PATCH("/genres/{genre_id}", h.updateGenre)
	r.DELETE("/genres/{genre_id}", h.deleteGenre)

	r.POST("/cast-members", h.createCastMember)
	r.PATCH("/cast-members/{cast_member_id}", h.updateCastMember)
	r.DELETE("/cast-members/{cast_member_id}", h.deleteCastMember)
}

func (h *CatalogHandler) createCategory(ctx khttp.Context) error {
	var req dto.CreateCategoryRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest(reasonTaxonomyInvalid, err.Error())
	}
	if err := req.Validate(); err != nil {
		return errors.BadRequest(reasonTaxonomyInvalid, err.Error())
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	opCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()

	category, err := h.taxonomy.CreateCategory(opCtx, req.Name, req.Description, isActive)
	if err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusCreated, vo.NewCategoryView(category))
}

func (h *CatalogHandler) updateCategory(ctx khttp.Context) error {
	categoryID, err := pathUUID(ctx, "category_id")
	if err != nil {
		return err
	}
	var req dto.UpdateCategoryRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest(reasonTaxonomyInvalid, err.Error())
	}
	if err := req.Validate(); err != nil {
		return errors.BadRequest(reasonTaxonomyInvalid, err.Error())
	}

	opCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()

	category, err := h.taxonomy.UpdateCategory(opCtx, services.UpdateCategoryRow{
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusOK, vo.NewCategoryView(category))
}

func (h *CatalogHandler) deleteCategory(ctx khttp.Context) error {
	categoryID, err := pathUUID(ctx, "category_id")
	if err != nil {
		return err
	}

	opCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()

	if err := h.taxonomy.DeleteCategory(opCtx, categoryID); err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusNoContent, nil)
}

func (h *CatalogHandler) createGenre(ctx khttp.Context) error {
	var req dto.CreateGenreRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest(reasonTaxonomyInvalid, err.Error())
	}
	if err := req.Validate(); err != nil {
		return errors.BadRequest(reasonTaxonomyInvalid, err.Error())
	}
	categoryIDs, err := parsePathlessUUIDs(req.CategoriesID)
	if err != nil {
		return errors.BadRequest(reasonTaxonomyInvalid, err.Error())
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	opCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()

	genre, err := h.taxonomy.CreateGenre(opCtx, services.CreateGenreInput{
		Name:        req.Name,
		IsActive:    isActive,
		CategoryIDs: categoryIDs,
	})
	if err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusCreated, vo.NewGenreView(genre, categoryIDs))
}

func (h *CatalogHandler) updateGenre(ctx khttp.Context) error {
	genreID, err := pathUUID(ctx, "genre_id")
	if err != nil {
		return err
	}
	var req dto.UpdateGenreRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest(reasonTaxonomyInvalid, err.Error())
	}
	if err := req.Validate(); err != nil {
		return errors.BadRequest(reasonTaxonomyInvalid, err.Error())
	}
	categoryIDs, err := parsePathlessUUIDs(req.CategoriesID)
	if err != nil {
		return errors.BadRequest(reasonTaxonomyInvalid, err.Error())
	}

	opCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()

	genre, err := h.taxonomy.UpdateGenre(opCtx, services.UpdateGenreInput{
		GenreID:     genreID,
		Name:        req.Name,
		IsActive:    req.IsActive,
		CategoryIDs: categoryIDs,
	})
	if err != nil {
		return err
	}
	current, err := h.taxonomy.GenreCategoryIDs(opCtx, genreID)
	if err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusOK, vo.NewGenreView(genre, current))
}

func (h *CatalogHandler) deleteGenre(ctx khttp.Context) error {
	genreID, err := pathUUID(ctx, "genre_id")
	if err != nil {
		return err
	}

	opCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()

	if err := h.taxonomy.DeleteGenre(opCtx, genreID); err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusNoContent, nil)
}

func (h *CatalogHandler) createCastMember(ctx khttp.Context) error {
	var req dto.CreateCastMemberRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest(reasonTaxonomyInvalid, err.Error())
	}
	if err := req.Validate(); err != nil {
		return errors.BadRequest(reasonTaxonomyInvalid, err.Error())
	}

	opCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()

	member, err := h.taxonomy.CreateCastMember(opCtx, req.Name, req.Type)
	if err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusCreated, vo.NewCastMemberView(member))
}

func (h *CatalogHandler) updateCastMember(ctx khttp.Context) error {
	memberID, err := pathUUID(ctx, "cast_member_id")
	if err != nil {
		return err
	}
	var req dto.UpdateCastMemberRequest
	if err := ctx.Bind(&req); err != nil {
		return errors.BadRequest(reasonTaxonomyInvalid, err.Error())
	}
	if err := req.Validate(); err != nil {
		return errors.BadRequest(reasonTaxonomyInvalid, err.Error())
	}

	var memberType *po.CastMemberType
	if req.Type != nil {
		parsed, err := po.ParseCastMemberType(*req.Type)
		if err != nil {
			return errors.BadRequest(reasonTaxonomyInvalid, err.Error())
		}
		memberType = &parsed
	}

	opCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()

	member, err := h.taxonomy.UpdateCastMember(opCtx, services.UpdateCastMemberRow{
		CastMemberID: memberID,
		Name:         req.Name,
		Type:         memberType,
	})
	if err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusOK, vo.NewCastMemberView(member))
}

func (h *CatalogHandler) deleteCastMember(ctx khttp.Context) error {
	memberID, err := pathUUID(ctx, "cast_member_id")
	if err != nil {
		return err
	}

	opCtx, cancel := h.WithTimeout(ctx, HandlerTypeCommand)
	defer cancel()

	if err := h.taxonomy.DeleteCastMember(opCtx, memberID); err != nil {
		return err
	}
	return ctx.Result(stdhttp.StatusNoContent, nil)
}

func parsePathlessUUIDs(raw []string) ([]uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("categories_id: invalid uuid %q", s)
		}
		out = append(out, id)
	}
	return out, nil
}
