package repository

import (
	"context"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
)

// APIUsageRepository 用量流水仓储接口
type APIUsageRepository interface {
	Create(ctx context.Context, usage *entity.APIUsage) error

	// SummaryByAPI 按 api_name 汇总
	SummaryByAPI(ctx context.Context, r TimeRange) ([]*entity.UsageSummary, error)

	// Daily 按自然日汇总，按日期升序
	Daily(ctx context.Context, r TimeRange) ([]*entity.DailyUsage, error)
}
