// Package config 提供配置加载功能
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// DefaultDir 默认配置目录
const DefaultDir = "configs"

// envPattern 匹配 ${VAR} 或 ${VAR:default}
// g1: 变量名, g2: 默认值部分（含冒号）, g3: 默认值内容
var envPattern = regexp.MustCompile(`\${(\w+)(:([^}]*))?}`)

// Load 加载配置文件
// 按优先级加载：默认配置 -> 环境配置 -> 环境变量
func Load() (*Config, error) {
	return LoadFrom(DefaultDir)
}

// LoadFrom 从指定目录加载 config.yaml 与 config.$APP_ENV.yaml
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 加载默认配置
	if err := loadConfigFile(v, filepath.Join(dir, "config.yaml"), false); err != nil {
		return nil, err
	}

	// 2. 加载环境特定配置
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	envFile := filepath.Join(dir, fmt.Sprintf("config.%s.yaml", env))
	if err := loadConfigFile(v, envFile, true); err != nil {
		return nil, err
	}

	// 3. 绑定环境变量 (直接覆盖)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 设置默认值 (兜底)
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadConfigFile 读取文件，执行环境变量替换，并加载到 viper
func loadConfigFile(v *viper.Viper, path string, optional bool) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	reader := strings.NewReader(expandEnv(string(content)))
	if v.ConfigFileUsed() == "" {
		if err := v.ReadConfig(reader); err != nil {
			return fmt.Errorf("failed to read processed config %s: %w", path, err)
		}
		// 手动标记已加载文件，防止后续 ReadInConfig 报错
		v.SetConfigFile(path)
	} else {
		if err := v.MergeConfig(reader); err != nil {
			return fmt.Errorf("failed to merge processed config %s: %w", path, err)
		}
	}

	return nil
}

// expandEnv 替换字符串中的 ${VAR:default} 占位符
func expandEnv(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		submatch := envPattern.FindStringSubmatch(match)
		key := submatch[1]
		hasDefault := submatch[2] != ""
		defVal := submatch[3]

		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		if hasDefault {
			return defVal
		}
		// 保留原样以便识别未定义的变量
		return match
	})
}

// MustLoad 加载配置，失败时 panic
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate 检查阶段引用的提供商是否存在
func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}

	for name, stage := range c.LLM.Stages.byName() {
		p, ok := c.LLM.Providers[stage.Provider]
		if !ok {
			return fmt.Errorf("stage %s references unknown provider %q", name, stage.Provider)
		}
		if p.Type != ProviderTypeGemini && p.Type != ProviderTypeOpenAI {
			return fmt.Errorf("provider %s has unsupported type %q", stage.Provider, p.Type)
		}
	}
	return nil
}

// byName 以阶段名索引
func (s StagesConfig) byName() map[string]StageConfig {
	return map[string]StageConfig{
		"research": s.Research,
		"draft":    s.Draft,
		"refine":   s.Refine,
	}
}

// MissingCredentials 返回生成流程所需但未配置的凭证环境变量名（已排序去重）
// Mock 模式下不需要任何凭证。
func (c *LLMConfig) MissingCredentials() []string {
	if c == nil || c.Mock {
		return nil
	}
	seen := make(map[string]struct{})
	var missing []string
	for _, stage := range c.Stages.byName() {
		p, ok := c.Providers[stage.Provider]
		if !ok || p.HasCredential() {
			continue
		}
		name := p.APIKeyEnv
		if name == "" {
			name = strings.ToUpper(stage.Provider) + "_API_KEY"
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		missing = append(missing, name)
	}
	sort.Strings(missing)
	return missing
}

// ProviderConfigured 报告指定提供商的凭证是否已配置
func (c *LLMConfig) ProviderConfigured(name string) bool {
	if c == nil {
		return false
	}
	if c.Mock {
		return true
	}
	p, ok := c.Providers[name]
	return ok && p.HasCredential()
}

// HasCredential 空值与 .env.example 中的占位值（your_xxx_here）都视为未配置
func (p ProviderConfig) HasCredential() bool {
	key := strings.TrimSpace(p.APIKey)
	if key == "" {
		return false
	}
	if p.APIKeyEnv != "" && key == "your_"+strings.ToLower(p.APIKeyEnv)+"_here" {
		return false
	}
	return true
}

// setDefaults 设置配置默认值
func setDefaults(v *viper.Viper) {
	// 应用默认值
	v.SetDefault("app.name", "legislabot")
	v.SetDefault("app.version", "v0.0.0")
	v.SetDefault("app.env", "development")

	// HTTP 服务器默认值（生成流程较慢，写超时需覆盖三个阶段）
	v.SetDefault("server.http.host", "0.0.0.0")
	v.SetDefault("server.http.port", 8080)
	v.SetDefault("server.http.read_timeout", "30s")
	v.SetDefault("server.http.write_timeout", "300s")
	v.SetDefault("server.http.idle_timeout", "120s")

	// 数据库默认值
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.user", "postgres")
	v.SetDefault("database.postgres.database", "legislabot")
	v.SetDefault("database.postgres.ssl_mode", "disable")
	v.SetDefault("database.postgres.max_open_conns", 20)
	v.SetDefault("database.postgres.max_idle_conns", 5)
	v.SetDefault("database.postgres.conn_max_lifetime", "30m")
	v.SetDefault("database.postgres.conn_max_idle_time", "5m")
	v.SetDefault("database.sqlite.path", "legislabot.db")

	// Redis 默认值
	v.SetDefault("cache.redis.enabled", false)
	v.SetDefault("cache.redis.host", "localhost")
	v.SetDefault("cache.redis.port", 6379)
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.pool_size", 20)
	v.SetDefault("cache.redis.min_idle_conns", 2)
	v.SetDefault("cache.redis.dial_timeout", "5s")
	v.SetDefault("cache.redis.read_timeout", "3s")
	v.SetDefault("cache.redis.write_timeout", "3s")

	// LLM 默认值
	v.SetDefault("llm.mock", false)
	v.SetDefault("llm.providers.google.type", ProviderTypeGemini)
	v.SetDefault("llm.providers.google.api_key_env", "GOOGLE_GENERATIVE_AI_API_KEY")
	v.SetDefault("llm.providers.google.model", "gemini-1.5-pro")
	v.SetDefault("llm.providers.google.timeout", "120s")
	v.SetDefault("llm.providers.openai.type", ProviderTypeOpenAI)
	v.SetDefault("llm.providers.openai.api_key_env", "OPENAI_API_KEY")
	v.SetDefault("llm.providers.openai.model", "gpt-4o")
	v.SetDefault("llm.providers.openai.timeout", "120s")
	v.SetDefault("llm.stages.research.provider", "google")
	v.SetDefault("llm.stages.research.temperature", 0.3)
	v.SetDefault("llm.stages.draft.provider", "openai")
	v.SetDefault("llm.stages.draft.temperature", 0.2)
	v.SetDefault("llm.stages.refine.provider", "openai")
	v.SetDefault("llm.stages.refine.temperature", 0.1)

	// Redis Stream 默认值
	v.SetDefault("messaging.redis_stream.max_len", 10000)
	v.SetDefault("messaging.redis_stream.block_timeout", "5s")
	v.SetDefault("messaging.redis_stream.claim_interval", "30s")
	v.SetDefault("messaging.redis_stream.retry_limit", 3)
	v.SetDefault("messaging.redis_stream.retry_backoff.initial", "2s")
	v.SetDefault("messaging.redis_stream.retry_backoff.max", "1m")
	v.SetDefault("messaging.redis_stream.retry_backoff.multiplier", 2.0)

	// 可观测性默认值
	v.SetDefault("observability.logging.level", "info")
	v.SetDefault("observability.logging.format", "json")
	v.SetDefault("observability.tracing.enabled", false)
	v.SetDefault("observability.tracing.endpoint", "localhost:4317")
	v.SetDefault("observability.tracing.sample_rate", 1.0)
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.path", "/metrics")

	// 安全默认值
	v.SetDefault("security.rate_limit.enabled", true)
	v.SetDefault("security.rate_limit.requests", 5)
	v.SetDefault("security.rate_limit.window", "1m")

	// 功能开关默认值
	v.SetDefault("features.async_generation.enabled", true)
	v.SetDefault("features.examples_cache.enabled", true)
	v.SetDefault("features.examples_cache.ttl", "10m")
}
