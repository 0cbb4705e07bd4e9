package service

import (
	"context"
	"strings"
)

type llmCtxKey string

const (
	llmCtxKeyStage    llmCtxKey = "llm_stage"
	llmCtxKeyProvider llmCtxKey = "llm_provider"
)

const unknown = "unknown"

// WithStage 在 context 中标记当前生成阶段
func WithStage(ctx context.Context, stage Stage) context.Context {
	if ctx == nil {
		return nil
	}
	s := strings.TrimSpace(string(stage))
	if s == "" {
		return ctx
	}
	return context.WithValue(ctx, llmCtxKeyStage, s)
}

// WithProvider 在 context 中标记当前提供商
func WithProvider(ctx context.Context, provider string) context.Context {
	if ctx == nil {
		return nil
	}
	p := strings.TrimSpace(provider)
	if p == "" {
		return ctx
	}
	return context.WithValue(ctx, llmCtxKeyProvider, p)
}

// WithStageProvider 同时标记阶段与提供商
func WithStageProvider(ctx context.Context, stage Stage, provider string) context.Context {
	return WithProvider(WithStage(ctx, stage), provider)
}

// StageFromContext 读取阶段，缺失时返回 "unknown"
func StageFromContext(ctx context.Context) string {
	return valueOrUnknown(ctx, llmCtxKeyStage)
}

// ProviderFromContext 读取提供商，缺失时返回 "unknown"
func ProviderFromContext(ctx context.Context) string {
	return valueOrUnknown(ctx, llmCtxKeyProvider)
}

func valueOrUnknown(ctx context.Context, key llmCtxKey) string {
	if ctx == nil {
		return unknown
	}
	s, ok := ctx.Value(key).(string)
	if !ok || strings.TrimSpace(s) == "" {
		return unknown
	}
	return strings.TrimSpace(s)
}

type topicCtxKey struct{}

// WithTopic 在 context 中记录本次生成的主题
func WithTopic(ctx context.Context, topic string) context.Context {
	if ctx == nil {
		return nil
	}
	return context.WithValue(ctx, topicCtxKey{}, strings.TrimSpace(topic))
}

// TopicFromContext 读取主题，缺失时返回空串
func TopicFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	s, _ := ctx.Value(topicCtxKey{}).(string)
	return s
}
