package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
)

// SettingRepository 键值配置仓储实现
type SettingRepository struct {
	client *Client
}

// NewSettingRepository 创建配置仓储
func NewSettingRepository(client *Client) *SettingRepository {
	return &SettingRepository{client: client}
}

// GetByKeys 读取指定键
func (r *SettingRepository) GetByKeys(ctx context.Context, keys []string) ([]*entity.Setting, error) {
	ctx, span := tracer.Start(ctx, "postgres.SettingRepository.GetByKeys")
	defer span.End()

	if len(keys) == 0 {
		return nil, nil
	}

	var settings []*entity.Setting
	if err := getDB(ctx, r.client.db).Where("key IN ?", keys).Order("key ASC").Find(&settings).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// List 读取全部配置
func (r *SettingRepository) List(ctx context.Context) ([]*entity.Setting, error) {
	ctx, span := tracer.Start(ctx, "postgres.SettingRepository.List")
	defer span.End()

	var settings []*entity.Setting
	if err := getDB(ctx, r.client.db).Order("key ASC").Find(&settings).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}

// Upsert 按 key 插入或更新 value 与 description
func (r *SettingRepository) Upsert(ctx context.Context, setting *entity.Setting) error {
	ctx, span := tracer.Start(ctx, "postgres.SettingRepository.Upsert")
	defer span.End()

	setting.UpdatedAt = time.Now()
	err := getDB(ctx, r.client.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_at"}),
	}).Create(setting).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to upsert setting %s: %w", setting.Key, err)
	}
	return nil
}
