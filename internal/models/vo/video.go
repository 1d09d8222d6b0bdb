// Package vo 定义视图对象（View Objects），用于向上层传递业务数据。
// VO 对象由 Service 层返回，经 Controller 层转换为 API 响应，隔离内部数据结构。
package vo

import (
	"time"

	"github.com/bionicotaku/lingo-services-admin/internal/models/po"
	"github.com/google/uuid"
)

// VideoDetail 封装视频完整视图：标量字段、三组关联 ID 与可直接访问的文件 URL。
// 文件 URL 由 Service 层结合 Blob 存储解析，列为空时对应 URL 为 nil。
type VideoDetail struct {
	VideoID      uuid.UUID `json:"video_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	YearLaunched int32     `json:"year_launched"`
	Opened       bool      `json:"opened"`
	Rating       string    `json:"rating"`
	Duration     int32     `json:"duration"`

	// 文件引用（对象名）与解析后的访问 URL
	ThumbFile      *string `json:"thumb_file"`
	BannerFile     *string `json:"banner_file"`
	TrailerFile    *string `json:"trailer_file"`
	VideoFile      *string `json:"video_file"`
	ThumbFileURL   *string `json:"thumb_file_url"`
	BannerFileURL  *string `json:"banner_file_url"`
	TrailerFileURL *string `json:"trailer_file_url"`
	VideoFileURL   *string `json:"video_file_url"`

	// 关联 ID 列表
	CategoryIDs   []uuid.UUID `json:"categories_id"`
	GenreIDs      []uuid.UUID `json:"genres_id"`
	CastMemberIDs []uuid.UUID `json:"cast_members_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewVideoDetail 从持久化实体与关联 ID 构造 VO。
// urlFor 将 Blob 路径解析为可访问 URL，传 nil 表示不解析。
func NewVideoDetail(video *po.Video, categories, genres, castMembers []uuid.UUID, urlFor func(path string) string) *VideoDetail {
	if video == nil {
		return nil
	}
	detail := &VideoDetail{
		VideoID:      video.VideoID,
		Title:        video.Title,
		Description:  video.Description,
		YearLaunched: video.YearLaunched,
		Opened:       video.Opened,
		Rating:       string(video.Rating),
		Duration:     video.Duration,

		ThumbFile:   video.ThumbFile,
		BannerFile:  video.BannerFile,
		TrailerFile: video.TrailerFile,
		VideoFile:   video.VideoFile,

		// 防御性拷贝，避免调用方修改底层切片
		CategoryIDs:   append([]uuid.UUID(nil), categories...),
		GenreIDs:      append([]uuid.UUID(nil), genres...),
		CastMemberIDs: append([]uuid.UUID(nil), castMembers...),

		CreatedAt: video.CreatedAt,
		UpdatedAt: video.UpdatedAt,
	}
	if urlFor != nil {
		detail.ThumbFileURL = resolveURL(video, video.ThumbFile, urlFor)
		detail.BannerFileURL = resolveURL(video, video.BannerFile, urlFor)
		detail.TrailerFileURL = resolveURL(video, video.TrailerFile, urlFor)
		detail.VideoFileURL = resolveURL(video, video.VideoFile, urlFor)
	}
	return detail
}

func resolveURL(video *po.Video, name *string, urlFor func(path string) string) *string {
	if name == nil || *name == "" {
		return nil
	}
	url := urlFor(video.BlobPath(*name))
	return &url
}
