// Package events 定义写入 Outbox 的领域事件及其 JSON 载荷编码。
// 事件由 Service 层在业务事务内构造，Outbox 发布任务负责投递到 Pub/Sub。
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bionicotaku/lingo-services-admin/internal/models/po"
	"github.com/google/uuid"
)

// 事件类型常量，同时作为 Pub/Sub 消息属性 event_type 的取值。
const (
	TypeVideoCreated  = "video.created"
	TypeVideoUpdated  = "video.updated"
	TypeVideoDeleted  = "video.deleted"
	TypeVideoRestored = "video.restored"
)

// AggregateVideo 是视频聚合的固定标识。
const AggregateVideo = "video"

// SchemaVersion 标记当前载荷结构版本，消费方据此做兼容处理。
const SchemaVersion = 1

// VideoPayload 是视频事件的 JSON 载荷。
// 删除 / 恢复事件只携带标识字段，创建 / 更新事件携带完整快照。
type VideoPayload struct {
	SchemaVersion int       `json:"schema_version"`
	EventID       uuid.UUID `json:"event_id"`
	EventType     string    `json:"event_type"`
	VideoID       uuid.UUID `json:"video_id"`
	OccurredAt    time.Time `json:"occurred_at"`

	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	YearLaunched *int32  `json:"year_launched,omitempty"`
	Opened       *bool   `json:"opened,omitempty"`
	Rating       *string `json:"rating,omitempty"`
	Duration     *int32  `json:"duration,omitempty"`

	ThumbFile   *string `json:"thumb_file,omitempty"`
	BannerFile  *string `json:"banner_file,omitempty"`
	TrailerFile *string `json:"trailer_file,omitempty"`
	VideoFile   *string `json:"video_file,omitempty"`

	CategoryIDs   []uuid.UUID `json:"categories_id,omitempty"`
	GenreIDs      []uuid.UUID `json:"genres_id,omitempty"`
	CastMemberIDs []uuid.UUID `json:"cast_members_id,omitempty"`

	Reason *string `json:"reason,omitempty"` // 删除事件的可选原因
}

// NewVideoSnapshot 以完整快照构造创建 / 更新事件载荷。
func NewVideoSnapshot(eventType string, video *po.Video, categories, genres, castMembers []uuid.UUID, eventID uuid.UUID, occurredAt time.Time) ([]byte, error) {
	if video == nil {
		return nil, fmt.Errorf("build %s event: video is nil", eventType)
	}
	rating := string(video.Rating)
	payload := VideoPayload{
		SchemaVersion: SchemaVersion,
		EventID:       eventID,
		EventType:     eventType,
		VideoID:       video.VideoID,
		OccurredAt:    occurredAt.UTC(),

		Title:        &video.Title,
		Description:  &video.Description,
		YearLaunched: &video.YearLaunched,
		Opened:       &video.Opened,
		Rating:       &rating,
		Duration:     &video.Duration,

		ThumbFile:   video.ThumbFile,
		BannerFile:  video.BannerFile,
		TrailerFile: video.TrailerFile,
		VideoFile:   video.VideoFile,

		CategoryIDs:   categories,
		GenreIDs:      genres,
		CastMemberIDs: castMembers,
	}
	return json.Marshal(payload)
}

// NewVideoTombstone 构造删除 / 恢复事件载荷，仅携带标识与原因。
func NewVideoTombstone(eventType string, videoID uuid.UUID, eventID uuid.UUID, occurredAt time.Time, reason *string) ([]byte, error) {
	if videoID == uuid.Nil {
		return nil, fmt.Errorf("build %s event: video id is nil", eventType)
	}
	payload := VideoPayload{
		SchemaVersion: SchemaVersion,
		EventID:       eventID,
		EventType:     eventType,
		VideoID:       videoID,
		OccurredAt:    occurredAt.UTC(),
		Reason:        reason,
	}
	return json.Marshal(payload)
}

// Attributes 生成 Pub/Sub 消息属性，发布任务与消费方共用键名。
func Attributes(eventID uuid.UUID, eventType string, videoID uuid.UUID, occurredAt time.Time) map[string]string {
	return map[string]string{
		"event_id":       eventID.String(),
		"event_type":     eventType,
		"aggregate_type": AggregateVideo,
		"aggregate_id":   videoID.String(),
		"occurred_at":    occurredAt.UTC().Format(time.RFC3339Nano),
		"schema_version": fmt.Sprintf("%d", SchemaVersion),
	}
}
