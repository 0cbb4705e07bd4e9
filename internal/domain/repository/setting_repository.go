package repository

import (
	"context"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
)

// SettingRepository 键值配置仓储接口
type SettingRepository interface {
	// GetByKeys 读取指定键，不存在的键不出现在结果中
	GetByKeys(ctx context.Context, keys []string) ([]*entity.Setting, error)

	// List 读取全部配置
	List(ctx context.Context) ([]*entity.Setting, error)

	// Upsert 按 key 插入或更新
	Upsert(ctx context.Context, setting *entity.Setting) error
}
