package dto

import "github.com/DanieelRC/LegislaBot/internal/domain/entity"

// UsageSummaryResponse 按 API 汇总的用量
type UsageSummaryResponse struct {
	Usage []*entity.UsageSummary `json:"usage"`
}

// DailyUsageResponse 按天汇总的用量
type DailyUsageResponse struct {
	DailyUsage []*entity.DailyUsage `json:"daily_usage"`
}

// CheckEnvResponse 凭证检查响应
type CheckEnvResponse struct {
	Success     bool     `json:"success"`
	MissingVars []string `json:"missing_vars,omitempty"`
}
