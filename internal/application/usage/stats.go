package usage

import (
	"context"
	"time"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
	"github.com/DanieelRC/LegislaBot/internal/domain/repository"
	apperrors "github.com/DanieelRC/LegislaBot/pkg/errors"
)

// DefaultDailyWindow 每日统计的默认天数
const DefaultDailyWindow = 30

// Stats 用量统计查询
type Stats struct {
	repo repository.APIUsageRepository
	now  func() time.Time
}

// NewStats 创建用量统计服务
func NewStats(repo repository.APIUsageRepository) *Stats {
	return &Stats{repo: repo, now: time.Now}
}

// Summary 按 API 名称汇总，from/to 为零值时不限
func (s *Stats) Summary(ctx context.Context, from, to time.Time) ([]*entity.UsageSummary, error) {
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, apperrors.ErrInvalidParam.WithDetail("start_date must not be after end_date")
	}
	rows, err := s.repo.SummaryByAPI(ctx, repository.TimeRange{From: from, To: to})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load usage summary")
	}
	if rows == nil {
		rows = []*entity.UsageSummary{}
	}
	return rows, nil
}

// Daily 最近 days 天的按日汇总，days 非正时取 30
func (s *Stats) Daily(ctx context.Context, days int) ([]*entity.DailyUsage, error) {
	if days <= 0 {
		days = DefaultDailyWindow
	}
	to := s.now()
	from := to.AddDate(0, 0, -days)

	rows, err := s.repo.Daily(ctx, repository.TimeRange{From: from, To: to})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load daily usage")
	}
	if rows == nil {
		rows = []*entity.DailyUsage{}
	}
	return rows, nil
}
