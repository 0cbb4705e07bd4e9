// Package llm 提供各阶段使用的 TextGenerator 实现与按提供商缓存的工厂
package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/DanieelRC/LegislaBot/internal/config"
	"github.com/DanieelRC/LegislaBot/internal/domain/service"
)

type builder func(ctx context.Context, name string, cfg config.ProviderConfig) (service.TextGenerator, error)

// Factory 按提供商名惰性创建并缓存 TextGenerator
type Factory struct {
	config   *config.LLMConfig
	builders map[string]builder

	mu   sync.RWMutex
	gens map[string]service.TextGenerator
}

// NewFactory 创建 LLM 工厂。llm.mock 为 true 时所有提供商都返回离线桩。
func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		config: &cfg.LLM,
		builders: map[string]builder{
			config.ProviderTypeOpenAI: func(ctx context.Context, name string, pc config.ProviderConfig) (service.TextGenerator, error) {
				return NewOpenAIGenerator(ctx, name, pc)
			},
			config.ProviderTypeGemini: func(ctx context.Context, _ string, pc config.ProviderConfig) (service.TextGenerator, error) {
				return NewGeminiGenerator(ctx, pc)
			},
		},
		gens: make(map[string]service.TextGenerator),
	}
}

// Get 获取提供商对应的生成器。凭证缺失时返回 *service.ConfigError，且不发起任何网络请求。
func (f *Factory) Get(ctx context.Context, name string) (service.TextGenerator, error) {
	name = strings.TrimSpace(name)

	if f.config.Mock {
		return f.cached(ctx, name, func() (service.TextGenerator, error) {
			return NewMockGenerator()
		})
	}

	pc, ok := f.config.Providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %s not found in LLM config", name)
	}
	if !pc.HasCredential() {
		envVar := pc.APIKeyEnv
		if envVar == "" {
			envVar = strings.ToUpper(name) + "_API_KEY"
		}
		return nil, &service.ConfigError{Provider: name, EnvVar: envVar}
	}

	build, ok := f.builders[pc.Type]
	if !ok {
		return nil, fmt.Errorf("provider %s has unsupported type %q", name, pc.Type)
	}
	return f.cached(ctx, name, func() (service.TextGenerator, error) {
		return build(ctx, name, pc)
	})
}

func (f *Factory) cached(_ context.Context, name string, build func() (service.TextGenerator, error)) (service.TextGenerator, error) {
	f.mu.RLock()
	g, ok := f.gens[name]
	f.mu.RUnlock()
	if ok {
		return g, nil
	}

	// 惰性加载
	f.mu.Lock()
	defer f.mu.Unlock()

	// 再次检查防止竞态
	if g, ok = f.gens[name]; ok {
		return g, nil
	}

	g, err := build()
	if err != nil {
		return nil, err
	}
	f.gens[name] = g
	return g, nil
}
