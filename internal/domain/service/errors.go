package service

import (
	"errors"
	"fmt"
)

// ConfigError 提供商凭证缺失，三个阶段的形态一致
type ConfigError struct {
	Provider string
	EnvVar   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("la API key de %s (%s) no está definida en las variables de entorno", e.Provider, e.EnvVar)
}

// ProviderError LLM 调用失败（网络、限流、空响应或格式错误）
type ProviderError struct {
	Stage    Stage
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("error en la etapa %s (%s): %v", e.Stage, e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ErrEmptyResponse 提供商返回空文本
var ErrEmptyResponse = errors.New("empty response")

// IsConfigError 错误链中是否包含 ConfigError
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsProviderError 错误链中是否包含 ProviderError
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
