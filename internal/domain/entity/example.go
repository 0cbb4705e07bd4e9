package entity

import "time"

// Example 示例法案，用于展示和引导生成
type Example struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null;uniqueIndex"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	Category    string    `json:"category,omitempty" gorm:"type:varchar(100);index"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Example) TableName() string {
	return "examples"
}
