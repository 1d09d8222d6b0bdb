package vo

import (
	"time"

	"github.com/bionicotaku/lingo-services-admin/internal/models/po"

	"github.com/google/uuid"
)

// CategoryView 是分类的对外视图。
type CategoryView struct {
	CategoryID  uuid.UUID `json:"category_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCategoryView 由持久化对象构造视图。
func NewCategoryView(c *po.Category) *CategoryView {
	if c == nil {
		return nil
	}
	return &CategoryView{
		CategoryID:  c.CategoryID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// GenreView 是类型的对外视图。
type GenreView struct {
	GenreID     uuid.UUID   `json:"genre_id"`
	Name        string      `json:"name"`
	IsActive    bool        `json:"is_active"`
	CategoryIDs []uuid.UUID `json:"categories_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewGenreView 由持久化对象与分类关联构造视图。
func NewGenreView(g *po.Genre, categoryIDs []uuid.UUID) *GenreView {
	if g == nil {
		return nil
	}
	view := &GenreView{
		GenreID:   g.GenreID,
		Name:      g.Name,
		IsActive:  g.IsActive,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
	if len(categoryIDs) > 0 {
		view.CategoryIDs = append([]uuid.UUID(nil), categoryIDs...)
	}
	return view
}

// CastMemberView 是演职人员的对外视图。
type CastMemberView struct {
	CastMemberID uuid.UUID `json:"cast_member_id"`
	Name         string    `json:"name"`
	Type         int16     `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewCastMemberView 由持久化对象构造视图。
func NewCastMemberView(m *po.CastMember) *CastMemberView {
	if m == nil {
		return nil
	}
	return &CastMemberView{
		CastMemberID: m.CastMemberID,
		Name:         m.Name,
		Type:         int16(m.Type),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
