package model

import (
	"time"
)

// Mapping 短链接映射
// URLKey 与 SecretKey 全局唯一，行只做软删除，因此密钥永不复用
type Mapping struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	URLKey    string    `gorm:"column:url_key;size:32;uniqueIndex;not null" json:"url_key"`
	TargetURL string    `gorm:"type:text;not null" json:"target_url"`
	SecretKey string    `gorm:"size:128;uniqueIndex;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	Clicks    int64     `gorm:"not null;default:0" json:"clicks"`
}

// TableName 指定表名
func (Mapping) TableName() string {
	return "urls"
}
