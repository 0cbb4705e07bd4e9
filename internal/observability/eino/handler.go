// Package eino 注册 Eino 全局回调，为 ChatModel 调用补充追踪与 token 明细
package eino

import (
	"context"
	"time"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	cbtemplate "github.com/cloudwego/eino/utils/callbacks"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/DanieelRC/LegislaBot/internal/domain/service"
	"github.com/DanieelRC/LegislaBot/pkg/logger"
	"github.com/DanieelRC/LegislaBot/pkg/metrics"
)

// startTimeKey 在 Context 中存储调用开始时间，OnEnd/OnError 时计算耗时
type startTimeKey struct{}

// newChatModelCallbackHandler ChatModel 回调：开启 llm.generate span，
// 结束时上报 prompt/completion token 明细。
// 调用次数与耗时由生成阶段自己统计，这里不重复计数。
func newChatModelCallbackHandler() *cbtemplate.ModelCallbackHandler {
	return &cbtemplate.ModelCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *model.CallbackInput) context.Context {
			ctx = context.WithValue(ctx, startTimeKey{}, time.Now())

			attrs := []attribute.KeyValue{
				attribute.String("llm.stage", service.StageFromContext(ctx)),
				attribute.String("llm.provider", service.ProviderFromContext(ctx)),
				attribute.String("llm.model", modelNameFromInput(input)),
			}
			if info != nil {
				attrs = append(attrs,
					attribute.String("eino.node_name", info.Name),
					attribute.String("eino.type", info.Type),
				)
			}
			if input != nil {
				attrs = append(attrs, attribute.Int("llm.messages", len(input.Messages)))
			}

			ctx, _ = otel.Tracer("eino").Start(ctx, "llm.generate", trace.WithAttributes(attrs...))
			return ctx
		},

		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *model.CallbackOutput) context.Context {
			stage := service.StageFromContext(ctx)
			span := trace.SpanFromContext(ctx)

			if output != nil && output.TokenUsage != nil {
				u := output.TokenUsage
				metrics.LLMTokensByKind.WithLabelValues(stage, "prompt").Add(float64(u.PromptTokens))
				metrics.LLMTokensByKind.WithLabelValues(stage, "completion").Add(float64(u.CompletionTokens))
				span.SetAttributes(
					attribute.Int("llm.prompt_tokens", u.PromptTokens),
					attribute.Int("llm.completion_tokens", u.CompletionTokens),
				)
			}

			logger.Debug(ctx, "chat model call finished",
				"model", modelNameFromOutput(output),
				"elapsed_ms", int64(elapsedSeconds(ctx)*1000),
			)
			span.End()
			return ctx
		},

		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			span := trace.SpanFromContext(ctx)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
			return ctx
		},
	}
}

// elapsedSeconds 距 OnStart 的秒数，取不到开始时间时返回 0
func elapsedSeconds(ctx context.Context) float64 {
	start, ok := ctx.Value(startTimeKey{}).(time.Time)
	if !ok || start.IsZero() {
		return 0
	}
	return time.Since(start).Seconds()
}

func modelNameFromInput(in *model.CallbackInput) string {
	if in == nil || in.Config == nil {
		return ""
	}
	return in.Config.Model
}

func modelNameFromOutput(out *model.CallbackOutput) string {
	if out == nil || out.Config == nil {
		return ""
	}
	return out.Config.Model
}
