package service

import "context"

// UsageInput 一次 LLM 调用的用量数据
type UsageInput struct {
	// APIName 形如 openai/gpt-4o
	APIName     string
	TokensUsed  int
	RequestType string
	// CostEstimate 为 0 时由记录器按价格表估算
	CostEstimate float64
}

// UsageRecorder 记录 LLM 用量。
// 实现必须是 best-effort：失败只记日志，不影响生成流程。
type UsageRecorder interface {
	Record(ctx context.Context, in UsageInput)
}
