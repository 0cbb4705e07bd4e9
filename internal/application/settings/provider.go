// Package settings 提供生成流程的配置读取与管理
package settings

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
	"github.com/DanieelRC/LegislaBot/internal/domain/repository"
	"github.com/DanieelRC/LegislaBot/internal/domain/service"
	apperrors "github.com/DanieelRC/LegislaBot/pkg/errors"
	"github.com/DanieelRC/LegislaBot/pkg/logger"
)

// Provider 基于 settings 表的配置服务
type Provider struct {
	repo       repository.SettingRepository
	transactor repository.Transactor
}

var _ service.SettingsProvider = (*Provider)(nil)

// NewProvider 创建配置服务
func NewProvider(repo repository.SettingRepository, transactor repository.Transactor) *Provider {
	return &Provider{repo: repo, transactor: transactor}
}

// GetRelevantSettings 只读取生成流程需要的三个键。
// 存储出错时记录日志并返回默认值，调用方永远拿到可用的配置。
func (p *Provider) GetRelevantSettings(ctx context.Context) service.GenerationSettings {
	rows, err := p.repo.GetByKeys(ctx, entity.GenerationSettingKeys)
	if err != nil {
		logger.Warn(ctx, "failed to load generation settings, using defaults", "error", err.Error())
		return service.DefaultGenerationSettings()
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		if row != nil {
			values[row.Key] = row.Value
		}
	}
	return fromValues(values)
}

// fromValues 将键值映射为 GenerationSettings
func fromValues(values map[string]string) service.GenerationSettings {
	s := service.DefaultGenerationSettings()

	if v := strings.TrimSpace(values[entity.SettingDefaultLegislator]); v != "" {
		s.DefaultLegislator = v
	}
	if v, ok := values[entity.SettingMaxTokensPerRequest]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			s.MaxTokensPerRequest = &n
		}
	}
	s.EnableAPIUsageTracking = values[entity.SettingEnableAPIUsageTracking] == "true"

	return s
}

// GetAllSettings 读取全部配置，按 key 排序
func (p *Provider) GetAllSettings(ctx context.Context) ([]*entity.Setting, error) {
	rows, err := p.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list settings")
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows, nil
}

// UpdateSetting 插入或更新单个配置
func (p *Provider) UpdateSetting(ctx context.Context, key, value, description string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return apperrors.ErrInvalidParam.WithDetail("setting key is required")
	}
	if err := validateValue(key, value); err != nil {
		return err
	}
	if err := p.repo.Upsert(ctx, &entity.Setting{Key: key, Value: value, Description: description}); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update setting")
	}
	logger.Info(ctx, "setting updated", "key", key)
	return nil
}

// UpdateSettings 在一个事务中批量更新
func (p *Provider) UpdateSettings(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return apperrors.ErrInvalidParam.WithDetail("no settings to update")
	}
	keys := make([]string, 0, len(values))
	for k, v := range values {
		if strings.TrimSpace(k) == "" {
			return apperrors.ErrInvalidParam.WithDetail("setting key is required")
		}
		if err := validateValue(k, v); err != nil {
			return err
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	apply := func(ctx context.Context) error {
		for _, k := range keys {
			if err := p.repo.Upsert(ctx, &entity.Setting{Key: strings.TrimSpace(k), Value: values[k]}); err != nil {
				return err
			}
		}
		return nil
	}

	var err error
	if p.transactor != nil {
		err = p.transactor.WithTransaction(ctx, apply)
	} else {
		err = apply(ctx)
	}
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update settings")
	}
	logger.Info(ctx, "settings updated", "keys", keys)
	return nil
}

// validateValue 对生成流程使用的键做格式校验，其它键原样保存
func validateValue(key, value string) error {
	switch key {
	case entity.SettingMaxTokensPerRequest:
		v := strings.TrimSpace(value)
		if v == "" {
			return nil
		}
		if _, err := strconv.Atoi(v); err != nil {
			return apperrors.ErrInvalidParam.WithDetail("max_tokens_per_request must be an integer")
		}
	case entity.SettingEnableAPIUsageTracking:
		if value != "true" && value != "false" {
			return apperrors.ErrInvalidParam.WithDetail("enable_api_usage_tracking must be true or false")
		}
	}
	return nil
}
