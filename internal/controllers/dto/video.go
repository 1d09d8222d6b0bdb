// Package dto 定义对外 HTTP 接口的请求结构与校验规则。
package dto

import (
	"fmt"

	"github.com/bionicotaku/lingo-services-admin/internal/models/po"
	"github.com/bionicotaku/lingo-services-admin/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// CreateVideoRequest 是创建视频的请求体（JSON 或 multipart 表单字段）。
type CreateVideoRequest struct {
	Title         string   `json:"title" validate:"required,max=255"`
	Description   string   `json:"description" validate:"required"`
	YearLaunched  int32    `json:"year_launched" validate:"required,min=1,max=9999"`
	Opened        bool     `json:"opened"`
	Rating        string   `json:"rating" validate:"required"`
	Duration      int32    `json:"duration" validate:"required,min=1"`
	CategoriesID  []string `json:"categories_id" validate:"omitempty,dive,uuid"`
	GenresID      []string `json:"genres_id" validate:"omitempty,dive,uuid"`
	CastMembersID []string `json:"cast_members_id" validate:"omitempty,dive,uuid"`

	// Files 由 multipart 解析阶段填充，不参与 JSON 反序列化。
	Files map[po.FileField]services.FileInput `json:"-"`
}

// ToInput 校验并转换为用例层输入。
func (r *CreateVideoRequest) ToInput() (services.CreateVideoInput, error) {
	if err := validate.Struct(r); err != nil {
		return services.CreateVideoInput{}, err
	}
	categories, err := parseUUIDs(r.CategoriesID, "categories_id")
	if err != nil {
		return services.CreateVideoInput{}, err
	}
	genres, err := parseUUIDs(r.GenresID, "genres_id")
	if err != nil {
		return services.CreateVideoInput{}, err
	}
	castMembers, err := parseUUIDs(r.CastMembersID, "cast_members_id")
	if err != nil {
		return services.CreateVideoInput{}, err
	}
	return services.CreateVideoInput{
		Title:         r.Title,
		Description:   r.Description,
		YearLaunched:  r.YearLaunched,
		Opened:        r.Opened,
		Rating:        r.Rating,
		Duration:      r.Duration,
		CategoryIDs:   categories,
		GenreIDs:      genres,
		CastMemberIDs: castMembers,
		Files:         r.Files,
	}, nil
}

// UpdateVideoRequest 是部分更新视频的请求体；指针字段缺省表示不修改，
// 关联 ID 切片缺省表示保持现状、空切片表示清空。
type UpdateVideoRequest struct {
	Title         *string  `json:"title" validate:"omitempty,max=255"`
	Description   *string  `json:"description"`
	YearLaunched  *int32   `json:"year_launched" validate:"omitempty,min=1,max=9999"`
	Opened        *bool    `json:"opened"`
	Rating        *string  `json:"rating"`
	Duration      *int32   `json:"duration" validate:"omitempty,min=1"`
	CategoriesID  []string `json:"categories_id" validate:"omitempty,dive,uuid"`
	GenresID      []string `json:"genres_id" validate:"omitempty,dive,uuid"`
	CastMembersID []string `json:"cast_members_id" validate:"omitempty,dive,uuid"`

	Files map[po.FileField]services.FileInput `json:"-"`

	// 区分"字段缺省"与"显式空切片"：multipart 解析时按表单键是否出现填充。
	CategoriesSet  bool `json:"-"`
	GenresSet      bool `json:"-"`
	CastMembersSet bool `json:"-"`
}

// ToInput 校验并转换为用例层输入。
func (r *UpdateVideoRequest) ToInput(videoID uuid.UUID) (services.UpdateVideoInput, error) {
	if err := validate.Struct(r); err != nil {
		return services.UpdateVideoInput{}, err
	}
	input := services.UpdateVideoInput{
		VideoID:      videoID,
		Title:        r.Title,
		Description:  r.Description,
		YearLaunched: r.YearLaunched,
		Opened:       r.Opened,
		Rating:       r.Rating,
		Duration:     r.Duration,
		Files:        r.Files,
	}
	if r.CategoriesID != nil || r.CategoriesSet {
		ids, err := parseUUIDs(r.CategoriesID, "categories_id")
		if err != nil {
			return services.UpdateVideoInput{}, err
		}
		if ids == nil {
			ids = []uuid.UUID{}
		}
		input.CategoryIDs = ids
	}
	if r.GenresID != nil || r.GenresSet {
		ids, err := parseUUIDs(r.GenresID, "genres_id")
		if err != nil {
			return services.UpdateVideoInput{}, err
		}
		if ids == nil {
			ids = []uuid.UUID{}
		}
		input.GenreIDs = ids
	}
	if r.CastMembersID != nil || r.CastMembersSet {
		ids, err := parseUUIDs(r.CastMembersID, "cast_members_id")
		if err != nil {
			return services.UpdateVideoInput{}, err
		}
		if ids == nil {
			ids = []uuid.UUID{}
		}
		input.CastMemberIDs = ids
	}
	return input, nil
}

func parseUUIDs(raw []string, field string) ([]uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid uuid %q", field, s)
		}
		out = append(out, id)
	}
	return out, nil
}
