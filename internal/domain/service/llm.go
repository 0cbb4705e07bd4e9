// Package service 定义跨层的领域端口
package service

import "context"

// Stage 生成阶段
type Stage string

const (
	StageResearch Stage = "research"
	StageDraft    Stage = "draft"
	StageRefine   Stage = "refine"
)

// RequestType 阶段对应的用量记录类型
func (s Stage) RequestType() string {
	switch s {
	case StageResearch:
		return "research"
	case StageDraft:
		return "draft_generation"
	case StageRefine:
		return "refinement"
	}
	return string(s)
}

// GenerateRequest 一次文本生成请求
type GenerateRequest struct {
	Prompt string
	// System 为空表示不发送系统指令
	System      string
	Temperature float32
	// MaxTokens 为 nil 表示使用提供商默认上限
	MaxTokens *int
}

// GenerateResult 生成结果
type GenerateResult struct {
	Text       string
	TokensUsed int
}

// TextGenerator 文本生成能力，Gemini 与 OpenAI 各有一个实现
type TextGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)

	// Model 返回模型名，例如 gpt-4o
	Model() string
}

// GeneratorFactory 按提供商名获取生成器。
// 凭证缺失时返回 *ConfigError，调用方不会发起任何网络请求。
type GeneratorFactory interface {
	Get(ctx context.Context, provider string) (TextGenerator, error)
}
