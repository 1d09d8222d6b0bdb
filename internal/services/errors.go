package services

import "github.com/go-kratos/kratos/v2/errors"

// 错误 reason 常量，随 kratos errors 返回给 Controller 层做状态码映射。
const (
	reasonVideoNotFound      = "VIDEO_NOT_FOUND"
	reasonVideoInvalid       = "VIDEO_INVALID_ARGUMENT"
	reasonVideoPersistFailed = "VIDEO_PERSIST_FAILED"
	reasonVideoUploadFailed  = "VIDEO_UPLOAD_FAILED"
	reasonCategoryNotFound   = "CATEGORY_NOT_FOUND"
	reasonGenreNotFound      = "GENRE_NOT_FOUND"
	reasonCastMemberNotFound = "CAST_MEMBER_NOT_FOUND"
	reasonTaxonomyInvalid    = "TAXONOMY_INVALID_ARGUMENT"
	reasonTaxonomyFailed     = "TAXONOMY_PERSIST_FAILED"
	reasonCommandTimeout     = "COMMAND_TIMEOUT"
)

// ErrVideoNotFound 是视频不存在时返回的哨兵错误。
var ErrVideoNotFound = errors.NotFound(reasonVideoNotFound, "video not found")

// ErrCategoryNotFound 是分类不存在时返回的哨兵错误。
var ErrCategoryNotFound = errors.NotFound(reasonCategoryNotFound, "category not found")

// ErrGenreNotFound 是类型不存在时返回的哨兵错误。
var ErrGenreNotFound = errors.NotFound(reasonGenreNotFound, "genre not found")

// ErrCastMemberNotFound 是演职人员不存在时返回的哨兵错误。
var ErrCastMemberNotFound = errors.NotFound(reasonCastMemberNotFound, "cast member not found")

// taxonomyNotFound 识别关联同步时命中的分类 / 类型 / 演职人员缺失哨兵。
func taxonomyNotFound(err error) error {
	for _, sentinel := range []error{ErrCategoryNotFound, ErrGenreNotFound, ErrCastMemberNotFound} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return nil
}
