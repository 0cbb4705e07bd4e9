package entity

import "time"

// 用量记录的请求类型，对应三个生成阶段
const (
	RequestTypeResearch        = "research"
	RequestTypeDraftGeneration = "draft_generation"
	RequestTypeRefinement      = "refinement"
)

// APIUsage 一次 LLM 调用的用量流水，只追加不修改
type APIUsage struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	APIName      string    `json:"api_name" gorm:"type:varchar(100);not null;index"`
	TokensUsed   int       `json:"tokens_used" gorm:"not null"`
	CostEstimate float64   `json:"cost_estimate" gorm:"type:decimal(10,6);default:0"`
	RequestType  string    `json:"request_type,omitempty" gorm:"type:varchar(50)"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName 指定表名
func (APIUsage) TableName() string {
	return "api_usage"
}

// UsageSummary 按 API 名称汇总的用量
type UsageSummary struct {
	APIName     string  `json:"api_name"`
	Requests    int64   `json:"requests"`
	TotalTokens int64   `json:"total_tokens"`
	TotalCost   float64 `json:"total_cost"`
}

// DailyUsage 按天汇总的用量
type DailyUsage struct {
	Date   string  `json:"date"`
	Tokens int64   `json:"tokens"`
	Cost   float64 `json:"cost"`
}
