// Package chain 实现法案生成的三个阶段：调研、起草、润色
package chain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/DanieelRC/LegislaBot/internal/config"
	"github.com/DanieelRC/LegislaBot/internal/domain/service"
	workflowprompt "github.com/DanieelRC/LegislaBot/internal/workflow/prompt"
	"github.com/DanieelRC/LegislaBot/pkg/logger"
	"github.com/DanieelRC/LegislaBot/pkg/metrics"
	"github.com/DanieelRC/LegislaBot/pkg/tracer"
)

// StageConfig 单个阶段使用的提供商与温度
type StageConfig struct {
	Provider    string
	Temperature float32
}

// Config 三个阶段的配置
type Config struct {
	Research StageConfig
	Draft    StageConfig
	Refine   StageConfig
}

// DefaultConfig 调研用 Gemini，起草与润色用 GPT-4o，温度逐级降低
func DefaultConfig() Config {
	return Config{
		Research: StageConfig{Provider: "google", Temperature: 0.3},
		Draft:    StageConfig{Provider: "openai", Temperature: 0.2},
		Refine:   StageConfig{Provider: "openai", Temperature: 0.1},
	}
}

// ConfigFrom 由配置文件中的阶段设置构造
func ConfigFrom(s config.StagesConfig) Config {
	return Config{
		Research: StageConfig{Provider: s.Research.Provider, Temperature: s.Research.Temperature},
		Draft:    StageConfig{Provider: s.Draft.Provider, Temperature: s.Draft.Temperature},
		Refine:   StageConfig{Provider: s.Refine.Provider, Temperature: s.Refine.Temperature},
	}
}

type BillChain struct {
	factory  service.GeneratorFactory
	recorder service.UsageRecorder
	prompts  *workflowprompt.Registry
	cfg      Config
	now      func() time.Time
}

// NewBillChain recorder 可以为 nil，此时不记录用量
func NewBillChain(factory service.GeneratorFactory, recorder service.UsageRecorder, cfg Config) *BillChain {
	return &BillChain{
		factory:  factory,
		recorder: recorder,
		prompts:  workflowprompt.NewRegistry(),
		cfg:      cfg,
		now:      time.Now,
	}
}

// Research 调研阶段，输出带分类（来源、类型、摘要、相关性）的调研文本
func (c *BillChain) Research(ctx context.Context, topic string, settings service.GenerationSettings) (string, error) {
	vars := workflowprompt.DateVars(c.now())
	vars["topic"] = strings.TrimSpace(topic)
	return c.invoke(ctx, service.StageResearch, workflowprompt.PromptResearchV1, vars, settings)
}

// Draft 起草阶段，基于调研结果生成四段式法案草稿
func (c *BillChain) Draft(ctx context.Context, research, topic string, settings service.GenerationSettings) (string, error) {
	vars := workflowprompt.DateVars(c.now())
	vars["topic"] = strings.TrimSpace(topic)
	vars["research"] = strings.TrimSpace(research)
	vars["legislator_line"] = ""
	vars["legislator_suffix"] = ""
	if l := strings.TrimSpace(settings.DefaultLegislator); l != "" {
		vars["legislator_line"] = fmt.Sprintf("Considera que este proyecto podría ser presentado por %s.", l)
		vars["legislator_suffix"] = ", " + l
	}
	return c.invoke(ctx, service.StageDraft, workflowprompt.PromptDraftV1, vars, settings)
}

// Refine 润色阶段，保持结构，去掉评论与加粗
func (c *BillChain) Refine(ctx context.Context, draft string, settings service.GenerationSettings) (string, error) {
	vars := workflowprompt.DateVars(c.now())
	vars["draft"] = strings.TrimSpace(draft)
	return c.invoke(ctx, service.StageRefine, workflowprompt.PromptRefineV1, vars, settings)
}

func (c *BillChain) stageConfig(stage service.Stage) StageConfig {
	switch stage {
	case service.StageResearch:
		return c.cfg.Research
	case service.StageDraft:
		return c.cfg.Draft
	default:
		return c.cfg.Refine
	}
}

// checkCredentials 按调研、起草、润色的顺序解析每个不同的提供商，返回第一个 ConfigError。
// 其他错误留给所属阶段处理。
func (c *BillChain) checkCredentials(ctx context.Context) error {
	seen := make(map[string]bool, 3)
	for _, sc := range []StageConfig{c.cfg.Research, c.cfg.Draft, c.cfg.Refine} {
		p := strings.TrimSpace(sc.Provider)
		if seen[p] {
			continue
		}
		seen[p] = true
		if _, err := c.factory.Get(ctx, p); err != nil && service.IsConfigError(err) {
			return err
		}
	}
	return nil
}

func (c *BillChain) invoke(
	ctx context.Context,
	stage service.Stage,
	promptID workflowprompt.PromptID,
	vars map[string]any,
	settings service.GenerationSettings,
) (string, error) {
	if c == nil || c.factory == nil {
		return "", fmt.Errorf("llm factory not configured")
	}

	sc := c.stageConfig(stage)
	provider := strings.TrimSpace(sc.Provider)
	ctx = service.WithStageProvider(ctx, stage, provider)
	ctx = logger.WithContext(ctx, logger.StageKey, string(stage))

	// 凭证检查发生在任何网络请求之前，且覆盖所有阶段的提供商
	if err := c.checkCredentials(ctx); err != nil {
		logger.Error(ctx, "llm provider not configured", err)
		return "", err
	}

	gen, err := c.factory.Get(ctx, provider)
	if err != nil {
		if service.IsConfigError(err) {
			logger.Error(ctx, "llm provider not configured", err, "provider", provider)
			return "", err
		}
		return "", &service.ProviderError{Stage: stage, Provider: provider, Err: err}
	}

	rendered, err := c.prompts.Render(ctx, promptID, vars)
	if err != nil {
		return "", err
	}

	ctx, span := tracer.Start(ctx, "chain."+string(stage))
	defer span.End()
	model := gen.Model()
	span.SetAttributes(
		attribute.String("llm.provider", provider),
		attribute.String("llm.model", model),
		attribute.Float64("llm.temperature", float64(sc.Temperature)),
	)

	req := service.GenerateRequest{
		Prompt:      rendered.User,
		System:      rendered.System,
		Temperature: sc.Temperature,
		MaxTokens:   settings.MaxTokensPerRequest,
	}

	start := time.Now()
	res, err := gen.Generate(ctx, req)
	metrics.LLMCallDuration.WithLabelValues(string(stage), provider, model).Observe(time.Since(start).Seconds())
	if err == nil && (res == nil || strings.TrimSpace(res.Text) == "") {
		err = service.ErrEmptyResponse
	}
	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(string(stage), provider, model, "error").Inc()
		pErr := &service.ProviderError{Stage: stage, Provider: provider, Err: err}
		tracer.RecordError(span, pErr)
		logger.Error(ctx, "llm stage failed", err, "provider", provider, "model", model)
		return "", pErr
	}

	metrics.LLMCallTotal.WithLabelValues(string(stage), provider, model, "success").Inc()
	if res.TokensUsed > 0 {
		metrics.LLMTokensUsed.WithLabelValues(string(stage), provider, model).Add(float64(res.TokensUsed))
	}
	span.SetAttributes(attribute.Int("llm.tokens_used", res.TokensUsed))
	logger.Info(ctx, "llm stage completed",
		"provider", provider,
		"model", model,
		"tokens_used", res.TokensUsed,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if settings.EnableAPIUsageTracking && c.recorder != nil {
		c.recorder.Record(ctx, service.UsageInput{
			APIName:     provider + "/" + model,
			TokensUsed:  res.TokensUsed,
			RequestType: stage.RequestType(),
		})
	}

	return res.Text, nil
}
