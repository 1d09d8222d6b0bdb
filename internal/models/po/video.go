// Package po 定义面向持久化的数据对象（Persistent Objects），由 Repository 层使用。
// PO 对象映射数据库表结构，不直接暴露给上层业务逻辑。
package po

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Rating 表示视频的内容分级。
type Rating string

// 内容分级常量
const (
	RatingFree Rating = "L"  // 自由级（全年龄）
	Rating10   Rating = "10" // 10 岁以上
	Rating12   Rating = "12" // 12 岁以上
	Rating14   Rating = "14" // 14 岁以上
	Rating16   Rating = "16" // 16 岁以上
	Rating18   Rating = "18" // 18 岁以上
)

// RatingList 枚举全部合法分级，校验层与文档共用。
var RatingList = []Rating{RatingFree, Rating10, Rating12, Rating14, Rating16, Rating18}

// ParseRating 将原始字符串解析为 Rating，非法值返回错误。
func ParseRating(raw string) (Rating, error) {
	r := Rating(raw)
	for _, candidate := range RatingList {
		if r == candidate {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid rating: %q", raw)
}

// FileField 标识视频上的某个文件字段（同时也是数据库列名）。
type FileField string

// 视频可携带的四类文件
const (
	FileFieldThumb   FileField = "thumb_file"   // 缩略图
	FileFieldBanner  FileField = "banner_file"  // 横幅图
	FileFieldTrailer FileField = "trailer_file" // 预告片
	FileFieldVideo   FileField = "video_file"   // 正片
)

// FileFields 按固定顺序枚举全部文件字段。
var FileFields = []FileField{FileFieldThumb, FileFieldBanner, FileFieldTrailer, FileFieldVideo}

// 各文件字段的上传大小上限（字节）
const (
	ThumbFileMaxSize   = 5 << 20  // 5MB
	BannerFileMaxSize  = 10 << 20 // 10MB
	TrailerFileMaxSize = 1 << 30  // 1GB
	VideoFileMaxSize   = 50 << 30 // 50GB
)

// MaxSize 返回指定文件字段允许的最大字节数，未知字段返回 0。
func (f FileField) MaxSize() int64 {
	switch f {
	case FileFieldThumb:
		return ThumbFileMaxSize
	case FileFieldBanner:
		return BannerFileMaxSize
	case FileFieldTrailer:
		return TrailerFileMaxSize
	case FileFieldVideo:
		return VideoFileMaxSize
	default:
		return 0
	}
}

// Video 表示 catalog.videos 表的数据库实体。
// 文件列仅存储生成后的对象名，真实字节存放在 Blob 存储的 {video_id}/{name} 路径下。
type Video struct {
	VideoID      uuid.UUID `db:"video_id"`      // 主键（UUID v4，由用例层生成）
	Title        string    `db:"title"`         // 标题（必填）
	Description  string    `db:"description"`   // 描述（必填）
	YearLaunched int32     `db:"year_launched"` // 上映年份
	Opened       bool      `db:"opened"`        // 是否公开上架
	Rating       Rating    `db:"rating"`        // 内容分级
	Duration     int32     `db:"duration"`      // 时长（分钟）

	// 文件引用列：为空表示该文件尚未上传
	ThumbFile   *string `db:"thumb_file"`
	BannerFile  *string `db:"banner_file"`
	TrailerFile *string `db:"trailer_file"`
	VideoFile   *string `db:"video_file"`

	CreatedAt time.Time  `db:"created_at"` // 记录创建时间
	UpdatedAt time.Time  `db:"updated_at"` // 最近更新时间
	DeletedAt *time.Time `db:"deleted_at"` // 软删除时间戳，默认查询排除非空行
}

// FileName 读取指定文件字段当前存储的对象名。
func (v *Video) FileName(field FileField) *string {
	switch field {
	case FileFieldThumb:
		return v.ThumbFile
	case FileFieldBanner:
		return v.BannerFile
	case FileFieldTrailer:
		return v.TrailerFile
	case FileFieldVideo:
		return v.VideoFile
	default:
		return nil
	}
}

// SetFileName 写入指定文件字段的对象名。
func (v *Video) SetFileName(field FileField, name *string) {
	switch field {
	case FileFieldThumb:
		v.ThumbFile = name
	case FileFieldBanner:
		v.BannerFile = name
	case FileFieldTrailer:
		v.TrailerFile = name
	case FileFieldVideo:
		v.VideoFile = name
	}
}

// BlobPath 返回某个对象名在 Blob 存储中的完整路径（{video_id}/{name}）。
func (v *Video) BlobPath(name string) string {
	return BlobPath(v.VideoID, name)
}

// BlobPath 按照 {entityID}/{name} 约定拼接对象路径。
func BlobPath(videoID uuid.UUID, name string) string {
	return videoID.String() + "/" + name
}
