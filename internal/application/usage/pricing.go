// Package usage 记录与统计 LLM 用量
package usage

import (
	"math"
	"strings"

	"github.com/DanieelRC/LegislaBot/internal/config"
)

// DefaultPerToken 价格表中没有的模型按此估算
const DefaultPerToken = 0.00001

// PriceTable 模型名（小写）到每 token 成本的映射
type PriceTable map[string]float64

// DefaultPriceTable 内置价格表
func DefaultPriceTable() PriceTable {
	return PriceTable{
		"gpt-4":           0.00003,
		"gpt-4o":          0.00003,
		"gpt-3.5-turbo":   0.000005,
		"gemini-1.5-pro":  0.000007,
		"claude-3-sonnet": 0.000015,
	}
}

// PerToken 按 API 名称查找单价，api 名称形如 openai/gpt-4o，只匹配斜杠后的模型名
func (t PriceTable) PerToken(apiName string) float64 {
	model := strings.ToLower(strings.TrimSpace(apiName))
	if i := strings.LastIndex(model, "/"); i >= 0 {
		model = model[i+1:]
	}
	if p, ok := t[model]; ok {
		return p
	}
	return DefaultPerToken
}

// Estimate 估算成本，保留 6 位小数以匹配 decimal(10,6)
func (t PriceTable) Estimate(apiName string, tokens int) float64 {
	if tokens <= 0 {
		return 0
	}
	cost := float64(tokens) * t.PerToken(apiName)
	return math.Round(cost*1e6) / 1e6
}

// PriceTableFrom 在内置价格表上覆盖配置中的单价
func PriceTableFrom(prices []config.ModelPrice) PriceTable {
	t := DefaultPriceTable()
	for _, p := range prices {
		model := strings.ToLower(strings.TrimSpace(p.Model))
		if model == "" || p.PerToken < 0 {
			continue
		}
		t[model] = p.PerToken
	}
	return t
}
