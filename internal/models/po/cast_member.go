package po

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CastMemberType 表示演职人员类型。
type CastMemberType int16

// 演职人员类型常量
const (
	CastMemberTypeDirector CastMemberType = 1 // 导演
	CastMemberTypeActor    CastMemberType = 2 // 演员
)

// ParseCastMemberType 校验并转换原始类型值。
func ParseCastMemberType(raw int16) (CastMemberType, error) {
	t := CastMemberType(raw)
	switch t {
	case CastMemberTypeDirector, CastMemberTypeActor:
		return t, nil
	default:
		return 0, fmt.Errorf("invalid cast member type: %d", raw)
	}
}

// CastMember 表示 catalog.cast_members 表的数据库实体。
type CastMember struct {
	CastMemberID uuid.UUID      `db:"cast_member_id"` // 主键（UUID v4）
	Name         string         `db:"name"`           // 姓名（必填）
	Type         CastMemberType `db:"type"`           // 导演 / 演员
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"` // 软删除时间戳
}
