package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/DanieelRC/LegislaBot/internal/config"
	"github.com/DanieelRC/LegislaBot/internal/domain/service"
)

// GeminiGenerator 基于 Google GenAI SDK 的 TextGenerator（调研阶段）
type GeminiGenerator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiGenerator 创建 Gemini 生成器
func NewGeminiGenerator(ctx context.Context, cfg config.ProviderConfig) (*GeminiGenerator, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: cfg.Model, timeout: cfg.Timeout}, nil
}

// Generate 超时通过 context 控制
func (g *GeminiGenerator) Generate(ctx context.Context, req service.GenerateRequest) (*service.GenerateResult, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	gc := geminiConfig(req)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), gc)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content failed: %w", err)
	}
	if resp == nil {
		return nil, service.ErrEmptyResponse
	}

	res := &service.GenerateResult{Text: resp.Text()}
	if resp.UsageMetadata != nil {
		res.TokensUsed = int(resp.UsageMetadata.TotalTokenCount)
	}
	return res, nil
}

func (g *GeminiGenerator) Model() string { return g.model }

// geminiConfig 把通用请求参数转换为 GenAI 配置，max tokens 未设置时交给服务端默认值
func geminiConfig(req service.GenerateRequest) *genai.GenerateContentConfig {
	gc := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if strings.TrimSpace(req.System) != "" {
		gc.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.MaxTokens != nil && *req.MaxTokens > 0 {
		gc.MaxOutputTokens = int32(*req.MaxTokens)
	}
	return gc
}
