package usage

import (
	"context"
	"strings"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
	"github.com/DanieelRC/LegislaBot/internal/domain/repository"
	"github.com/DanieelRC/LegislaBot/internal/domain/service"
	"github.com/DanieelRC/LegislaBot/pkg/logger"
	"github.com/DanieelRC/LegislaBot/pkg/metrics"
)

// Recorder 将每次 LLM 调用追加到 api_usage
type Recorder struct {
	repo   repository.APIUsageRepository
	prices PriceTable
}

var _ service.UsageRecorder = (*Recorder)(nil)

// NewRecorder 创建用量记录器，prices 为空时使用内置价格表
func NewRecorder(repo repository.APIUsageRepository, prices PriceTable) *Recorder {
	if len(prices) == 0 {
		prices = DefaultPriceTable()
	}
	return &Recorder{repo: repo, prices: prices}
}

// Record 追加一条用量记录。存储失败只记录日志和指标，不返回错误。
func (r *Recorder) Record(ctx context.Context, in service.UsageInput) {
	if r == nil || r.repo == nil {
		return
	}

	tokens := in.TokensUsed
	if tokens < 0 {
		logger.Warn(ctx, "negative token count reported, storing zero",
			"api_name", in.APIName,
			"tokens_used", tokens,
		)
		tokens = 0
	}

	cost := in.CostEstimate
	if cost <= 0 {
		cost = r.prices.Estimate(in.APIName, tokens)
	}

	row := &entity.APIUsage{
		APIName:      strings.TrimSpace(in.APIName),
		TokensUsed:   tokens,
		CostEstimate: cost,
		RequestType:  strings.TrimSpace(in.RequestType),
	}
	if err := r.repo.Create(ctx, row); err != nil {
		metrics.UsageRecordFailures.WithLabelValues(row.RequestType).Inc()
		logger.Error(ctx, "failed to record api usage", err,
			"api_name", row.APIName,
			"request_type", row.RequestType,
			"tokens_used", row.TokensUsed,
		)
		return
	}

	logger.Debug(ctx, "api usage recorded",
		"api_name", row.APIName,
		"request_type", row.RequestType,
		"tokens_used", row.TokensUsed,
		"cost_estimate", row.CostEstimate,
	)
}
