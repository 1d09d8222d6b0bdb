package po

import (
	"time"

	"github.com/google/uuid"
)

// Category 表示 catalog.categories 表的数据库实体。
type Category struct {
	CategoryID  uuid.UUID  `db:"category_id"` // 主键（UUID v4）
	Name        string     `db:"name"`        // 分类名称（必填）
	Description *string    `db:"description"` // 描述（可选）
	IsActive    bool       `db:"is_active"`   // 是否启用
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"` // 软删除时间戳
}
