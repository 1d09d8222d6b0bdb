package po

import (
	"time"

	"github.com/google/uuid"
)

// Genre 表示 catalog.genres 表的数据库实体。
// Genre 与 Category 之间存在独立的多对多关联（catalog.genre_categories）。
type Genre struct {
	GenreID   uuid.UUID  `db:"genre_id"` // 主键（UUID v4）
	Name      string     `db:"name"`     // 类型名称（必填）
	IsActive  bool       `db:"is_active"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"` // 软删除时间戳
}
