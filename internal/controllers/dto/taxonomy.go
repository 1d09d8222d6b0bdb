package dto

// CreateCategoryRequest 是创建分类的请求体。
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// Validate 校验请求体。
func (r *CreateCategoryRequest) Validate() error { return validate.Struct(r) }

// UpdateCategoryRequest 是部分更新分类的请求体。
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// Validate 校验请求体。
func (r *UpdateCategoryRequest) Validate() error { return validate.Struct(r) }

// CreateGenreRequest 是创建类型的请求体。
type CreateGenreRequest struct {
	Name         string   `json:"name" validate:"required,max=255"`
	IsActive     *bool    `json:"is_active"`
	CategoriesID []string `json:"categories_id" validate:"omitempty,dive,uuid"`
}

// Validate 校验请求体。
func (r *CreateGenreRequest) Validate() error { return validate.Struct(r) }

// UpdateGenreRequest 是部分更新类型的请求体。
type UpdateGenreRequest struct {
	Name         *string  `json:"name" validate:"omitempty,max=255"`
	IsActive     *bool    `json:"is_active"`
	CategoriesID []string `json:"categories_id" validate:"omitempty,dive,uuid"`
}

// Validate 校验请求体。
func (r *UpdateGenreRequest) Validate() error { return validate.Struct(r) }

// CreateCastMemberRequest 是创建演职人员的请求体。
type CreateCastMemberRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Type int16  `json:"type" validate:"required"`
}

// Validate 校验请求体。
func (r *CreateCastMemberRequest) Validate() error { return validate.Struct(r) }

// UpdateCastMemberRequest 是部分更新演职人员的请求体。
type UpdateCastMemberRequest struct {
	Name *string `json:"name" validate:"omitempty,max=255"`
	Type *int16  `json:"type"`
}

// Validate 校验请求体。
func (r *UpdateCastMemberRequest) Validate() error { return validate.Struct(r) }
