// Package bill 编排法案生成流程并管理草稿、法案与异步任务
package bill

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/DanieelRC/LegislaBot/internal/domain/service"
	apperrors "github.com/DanieelRC/LegislaBot/pkg/errors"
	"github.com/DanieelRC/LegislaBot/pkg/logger"
	"github.com/DanieelRC/LegislaBot/pkg/metrics"
	"github.com/DanieelRC/LegislaBot/pkg/tracer"
)

// ErrorPrefix 流程失败时统一的错误前缀，不区分阶段
const ErrorPrefix = "Error al generar el proyecto de ley: "

// ErrEmptyTopic 主题为空或只有空白
var ErrEmptyTopic = apperrors.New(apperrors.CodeInvalidParam, "topic is required")

// Stages 三个生成阶段
type Stages interface {
	Research(ctx context.Context, topic string, settings service.GenerationSettings) (string, error)
	Draft(ctx context.Context, research, topic string, settings service.GenerationSettings) (string, error)
	Refine(ctx context.Context, draft string, settings service.GenerationSettings) (string, error)
}

// GenerationError 带统一前缀的流程错误，保留底层错误链
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return ErrorPrefix + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Pipeline 顺序执行调研、起草、润色，任一阶段失败立即返回
type Pipeline struct {
	settings service.SettingsProvider
	stages   Stages
}

// NewPipeline 创建生成流程
func NewPipeline(settings service.SettingsProvider, stages Stages) *Pipeline {
	return &Pipeline{settings: settings, stages: stages}
}

// Generate 为主题生成法案全文，返回润色阶段的原始输出。
// 不重试，不返回部分结果。
func (p *Pipeline) Generate(ctx context.Context, topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", ErrEmptyTopic
	}

	ctx = service.WithTopic(ctx, topic)
	ctx, span := tracer.Start(ctx, "bill.Pipeline.Generate")
	defer span.End()
	span.SetAttributes(attribute.Int("bill.topic_length", len(topic)))

	start := time.Now()
	text, err := p.run(ctx, topic)
	metrics.BillGenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BillGenerationTotal.WithLabelValues("failed").Inc()
		tracer.RecordError(span, err)
		logger.Error(ctx, "bill generation failed", err, "duration_ms", time.Since(start).Milliseconds())
		return "", &GenerationError{Err: err}
	}

	metrics.BillGenerationTotal.WithLabelValues("success").Inc()
	metrics.BillLength.Observe(float64(len([]rune(text))))
	logger.Info(ctx, "bill generated",
		"duration_ms", time.Since(start).Milliseconds(),
		"length", len(text),
	)
	return text, nil
}

func (p *Pipeline) run(ctx context.Context, topic string) (string, error) {
	settings := service.DefaultGenerationSettings()
	if p.settings != nil {
		settings = p.settings.GetRelevantSettings(ctx)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	research, err := p.stages.Research(ctx, topic, settings)
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	draft, err := p.stages.Draft(ctx, research, topic, settings)
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.stages.Refine(ctx, draft, settings)
}

// ToAppError 将流程错误映射为对外的应用错误，细节只保留在日志中
func ToAppError(err error) *apperrors.AppError {
	switch {
	case err == nil:
		return nil
	case apperrors.IsAppError(err):
		return apperrors.AsAppError(err)
	case service.IsConfigError(err):
		return apperrors.ErrLLMProvider.WithError(err)
	case service.IsProviderError(err):
		return apperrors.ErrLLMCallFailed.WithError(err)
	default:
		return apperrors.ErrGenerationFailed.WithError(err)
	}
}
