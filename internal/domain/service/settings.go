package service

import "context"

// GenerationSettings 单次生成流程使用的配置快照，流程内不可变
type GenerationSettings struct {
	// MaxTokensPerRequest 为 nil 表示不限制
	MaxTokensPerRequest    *int
	EnableAPIUsageTracking bool
	// DefaultLegislator 为空表示未设置
	DefaultLegislator string
}

// DefaultGenerationSettings 配置读取失败时使用的默认值
func DefaultGenerationSettings() GenerationSettings {
	return GenerationSettings{}
}

// SettingsProvider 读取生成配置，永不失败
type SettingsProvider interface {
	GetRelevantSettings(ctx context.Context) GenerationSettings
}
