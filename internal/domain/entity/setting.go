package entity

import "time"

// 生成流程读取的配置键
const (
	SettingDefaultLegislator      = "default_legislator"
	SettingMaxTokensPerRequest    = "max_tokens_per_request"
	SettingEnableAPIUsageTracking = "enable_api_usage_tracking"
)

// GenerationSettingKeys 生成流程允许读取的配置键
var GenerationSettingKeys = []string{
	SettingDefaultLegislator,
	SettingMaxTokensPerRequest,
	SettingEnableAPIUsageTracking,
}

// Setting 键值配置项
type Setting struct {
	ID          int64     `json:"-" gorm:"primaryKey;autoIncrement"`
	Key         string    `json:"key" gorm:"type:varchar(100);not null;uniqueIndex"`
	Value       string    `json:"value" gorm:"type:text;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Setting) TableName() string {
	return "settings"
}
