package services

import (
	"context"
	"time"

	"github.com/bionicotaku/lingo-services-admin/internal/models/po"

	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/google/uuid"
)

// VideoRepo 定义 Video 实体的持久化行为接口，由 repositories 层实现。
// 所有写方法都接受 txmanager.Session，sess 为 nil 时在连接池上直接执行。
type VideoRepo interface {
	Create(ctx context.Context, sess txmanager.Session, video *po.Video) (*po.Video, error)
	Update(ctx context.Context, sess txmanager.Session, input UpdateVideoRow) (*po.Video, error)
	FindByID(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*po.Video, error)
	FindDetail(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) (*VideoAggregate, error)
	SoftDelete(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) error
	Restore(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) error
	HardDelete(ctx context.Context, sess txmanager.Session, videoID uuid.UUID) error

	// 多对多关联同步：将关联集合整体替换为 ids（空切片表示清空）。
	// 未变化的关联行保持原样，不做无谓写入。
	ReplaceCategories(ctx context.Context, sess txmanager.Session, videoID uuid.UUID, ids []uuid.UUID) error
	ReplaceGenres(ctx context.Context, sess txmanager.Session, videoID uuid.UUID, ids []uuid.UUID) error
	ReplaceCastMembers(ctx context.Context, sess txmanager.Session, videoID uuid.UUID, ids []uuid.UUID) error
}

// OutboxRepo 定义事务性 Outbox 写入行为。
type OutboxRepo interface {
	Enqueue(ctx context.Context, sess txmanager.Session, msg OutboxMessage) error
}

// BlobStore 抽象 Blob 存储（GCS 等），路径约定为 {videoID}/{objectName}。
type BlobStore interface {
	Put(ctx context.Context, path string, data []byte, contentType string) error
	// Delete 删除对象；对象不存在不视为错误。
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	PublicURL(path string) string
}

// OutboxMessage 描述一条待入队的 Outbox 事件。
type OutboxMessage struct {
	EventID       uuid.UUID
	AggregateType string
	AggregateID   uuid.UUID
	EventType     string
	Payload       []byte
	Attributes    map[string]string
	AvailableAt   time.Time
}

// VideoAggregate 聚合视频行与其三组关联 ID，由 FindDetail 返回。
type VideoAggregate struct {
	Video         *po.Video
	CategoryIDs   []uuid.UUID
	GenreIDs      []uuid.UUID
	CastMemberIDs []uuid.UUID
}

// FileUpload 表示一个待上传的原始文件载荷。
type FileUpload struct {
	OriginalName string // 客户端文件名，仅用于推导扩展名
	ContentType  string
	Payload      []byte
}

// FileInput 表示属性包中某个文件字段的取值：
// 二选一——StoredName 为已生成的对象名（幂等重提交，不触发上传），
// Upload 为待暂存的原始载荷。
type FileInput struct {
	StoredName string
	Upload     *FileUpload
}

// CreateVideoInput 表示创建视频的属性包。
// 关联切片为 nil 表示不建立该关联；Files 中缺失的字段表示不携带该文件。
type CreateVideoInput struct {
	Title        string
	Description  string
	YearLaunched int32
	Opened       bool
	Rating       string
	Duration     int32

	CategoryIDs   []uuid.UUID
	GenreIDs      []uuid.UUID
	CastMemberIDs []uuid.UUID

	Files map[po.FileField]FileInput
}

// UpdateVideoInput 表示部分更新的属性包。
// 标量指针为 nil 表示不修改；关联切片为 nil 表示保留现有关联、
// 空切片表示清空；Files 中出现的字段表示替换该文件。
type UpdateVideoInput struct {
	VideoID uuid.UUID

	Title        *string
	Description  *string
	YearLaunched *int32
	Opened       *bool
	Rating       *string
	Duration     *int32

	CategoryIDs   []uuid.UUID
	GenreIDs      []uuid.UUID
	CastMemberIDs []uuid.UUID

	Files map[po.FileField]FileInput
}

// DeleteVideoInput 表示软删除视频的输入。
type DeleteVideoInput struct {
	VideoID uuid.UUID
	Reason  *string
}

// UpdateVideoRow 是 Repository 层的部分更新参数，nil 字段不写入。
type UpdateVideoRow struct {
	VideoID      uuid.UUID
	Title        *string
	Description  *string
	YearLaunched *int32
	Opened       *bool
	Rating       *po.Rating
	Duration     *int32

	ThumbFile   *string
	BannerFile  *string
	TrailerFile *string
	VideoFile   *string
}

// SetFileName 按字段写入文件列的新对象名。
func (r *UpdateVideoRow) SetFileName(field po.FileField, name *string) {
	switch field {
	case po.FileFieldThumb:
		r.ThumbFile = name
	case po.FileFieldBanner:
		r.BannerFile = name
	case po.FileFieldTrailer:
		r.TrailerFile = name
	case po.FileFieldVideo:
		r.VideoFile = name
	}
}
