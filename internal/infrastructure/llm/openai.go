package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/DanieelRC/LegislaBot/internal/config"
	"github.com/DanieelRC/LegislaBot/internal/domain/service"
)

// OpenAIGenerator 基于 Eino OpenAI ChatModel 的 TextGenerator（起草与润色阶段）
type OpenAIGenerator struct {
	name  string
	model string
	chat  model.BaseChatModel
}

// NewOpenAIGenerator 创建 OpenAI 生成器，温度与 max tokens 在每次调用时传入
func NewOpenAIGenerator(ctx context.Context, name string, cfg config.ProviderConfig) (*OpenAIGenerator, error) {
	chat, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model for %s: %w", name, err)
	}
	return newOpenAIGenerator(name, cfg.Model, chat), nil
}

func newOpenAIGenerator(name, modelName string, chat model.BaseChatModel) *OpenAIGenerator {
	return &OpenAIGenerator{name: name, model: modelName, chat: chat}
}

// Generate 系统提示作为 system 消息，用户提示作为 user 消息
func (g *OpenAIGenerator) Generate(ctx context.Context, req service.GenerateRequest) (*service.GenerateResult, error) {
	msgs := make([]*schema.Message, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		msgs = append(msgs, schema.SystemMessage(req.System))
	}
	msgs = append(msgs, schema.UserMessage(req.Prompt))

	opts := []model.Option{model.WithTemperature(req.Temperature)}
	if req.MaxTokens != nil && *req.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(*req.MaxTokens))
	}

	// 直接调用组件（不经过 compose 图）时需要手动挂载全局回调
	ctx = callbacks.InitCallbacks(ctx, &callbacks.RunInfo{
		Name:      "bill." + service.StageFromContext(ctx),
		Type:      "OpenAI",
		Component: components.ComponentOfChatModel,
	})

	out, err := g.chat.Generate(ctx, msgs, opts...)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, service.ErrEmptyResponse
	}

	res := &service.GenerateResult{Text: out.Content}
	if out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
		res.TokensUsed = out.ResponseMeta.Usage.TotalTokens
	}
	return res, nil
}

func (g *OpenAIGenerator) Model() string { return g.model }
