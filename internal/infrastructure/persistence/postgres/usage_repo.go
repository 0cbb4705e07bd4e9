package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
	"github.com/DanieelRC/LegislaBot/internal/domain/repository"
)

// APIUsageRepository 用量流水仓储实现
type APIUsageRepository struct {
	client *Client
}

// NewAPIUsageRepository 创建用量仓储
func NewAPIUsageRepository(client *Client) *APIUsageRepository {
	return &APIUsageRepository{client: client}
}

// Create 追加一条用量记录
func (r *APIUsageRepository) Create(ctx context.Context, usage *entity.APIUsage) error {
	ctx, span := tracer.Start(ctx, "postgres.APIUsageRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client.db).Create(usage).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create api usage: %w", err)
	}
	return nil
}

// SummaryByAPI 按 api_name 汇总请求数、token 与成本
func (r *APIUsageRepository) SummaryByAPI(ctx context.Context, tr repository.TimeRange) ([]*entity.UsageSummary, error) {
	ctx, span := tracer.Start(ctx, "postgres.APIUsageRepository.SummaryByAPI")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var rows []*entity.UsageSummary
	err := inRange(db.Model(&entity.APIUsage{}), tr).
		Select("api_name, COUNT(*) AS requests, COALESCE(SUM(tokens_used), 0) AS total_tokens, COALESCE(SUM(cost_estimate), 0) AS total_cost").
		Group("api_name").
		Order("api_name ASC").
		Scan(&rows).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to summarize api usage: %w", err)
	}
	return rows, nil
}

// Daily 按自然日汇总
func (r *APIUsageRepository) Daily(ctx context.Context, tr repository.TimeRange) ([]*entity.DailyUsage, error) {
	ctx, span := tracer.Start(ctx, "postgres.APIUsageRepository.Daily")
	defer span.End()

	db := getDB(ctx, r.client.db)
	day := dayExpr(db)
	var rows []*entity.DailyUsage
	err := inRange(db.Model(&entity.APIUsage{}), tr).
		Select(day + " AS date, COALESCE(SUM(tokens_used), 0) AS tokens, COALESCE(SUM(cost_estimate), 0) AS cost").
		Group(day).
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to aggregate daily usage: %w", err)
	}
	return rows, nil
}

func inRange(q *gorm.DB, tr repository.TimeRange) *gorm.DB {
	if !tr.From.IsZero() {
		q = q.Where("created_at >= ?", tr.From)
	}
	if !tr.To.IsZero() {
		q = q.Where("created_at < ?", tr.To)
	}
	return q
}

// dayExpr 按方言生成 YYYY-MM-DD 表达式
func dayExpr(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "strftime('%Y-%m-%d', created_at)"
	}
	return "TO_CHAR(created_at, 'YYYY-MM-DD')"
}
