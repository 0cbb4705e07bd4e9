package dto

import (
	"time"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
)

// UpdateSettingsRequest 批量更新配置请求
type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required"`
}

// SettingResponse 配置项响应
type SettingResponse struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SettingsResponse 全部配置响应
type SettingsResponse struct {
	Settings []*SettingResponse `json:"settings"`
}

// ToSettingsResponse 将领域实体列表转换为响应 DTO
func ToSettingsResponse(settings []*entity.Setting) *SettingsResponse {
	resp := &SettingsResponse{Settings: make([]*SettingResponse, 0, len(settings))}
	for _, s := range settings {
		resp.Settings = append(resp.Settings, &SettingResponse{
			Key:         s.Key,
			Value:       s.Value,
			Description: s.Description,
			UpdatedAt:   s.UpdatedAt,
		})
	}
	return resp
}
