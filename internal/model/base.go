package model

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// newID 生成主键。数据库侧的 gen_random_uuid() 只在 PostgreSQL 迁移中声明，
// 这里在写入前补齐，保证 sqlite 测试库与生产库行为一致。
func newID(id *string) {
	if *id == "" {
		*id = uuid.New().String()
	}
}
