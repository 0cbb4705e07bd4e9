package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/DanieelRC/LegislaBot/internal/application/settings"
	"github.com/DanieelRC/LegislaBot/internal/interfaces/http/dto"
)

// SettingsHandler 系统配置
type SettingsHandler struct {
	provider *settings.Provider
}

// NewSettingsHandler 创建配置处理器
func NewSettingsHandler(provider *settings.Provider) *SettingsHandler {
	return &SettingsHandler{provider: provider}
}

// GetSettings 全部配置
// @Summary 全部配置
// @Tags Settings
// @Produce json
// @Success 200 {object} dto.Response[dto.SettingsResponse]
// @Router /v1/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	all, err := h.provider.GetAllSettings(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to load settings")
		return
	}
	dto.Success(c, dto.ToSettingsResponse(all))
}

// UpdateSettings 批量更新配置，返回更新后的全部配置
// @Summary 批量更新配置
// @Tags Settings
// @Accept json
// @Produce json
// @Param body body dto.UpdateSettingsRequest true "键值对"
// @Success 200 {object} dto.Response[dto.SettingsResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/settings [post]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.provider.UpdateSettings(ctx, req.Settings); err != nil {
		respondError(c, err, "failed to update settings")
		return
	}

	all, err := h.provider.GetAllSettings(ctx)
	if err != nil {
		respondError(c, err, "failed to load settings")
		return
	}
	dto.Success(c, dto.ToSettingsResponse(all))
}
