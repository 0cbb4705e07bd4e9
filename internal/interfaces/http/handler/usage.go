package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DanieelRC/LegislaBot/internal/application/usage"
	"github.com/DanieelRC/LegislaBot/internal/interfaces/http/dto"
)

// UsageHandler LLM 用量统计
type UsageHandler struct {
	stats *usage.Stats
}

// NewUsageHandler 创建用量处理器
func NewUsageHandler(stats *usage.Stats) *UsageHandler {
	return &UsageHandler{stats: stats}
}

// Summary 按 API 汇总
// @Summary 用量汇总
// @Tags Usage
// @Produce json
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD，含当天"
// @Success 200 {object} dto.Response[dto.UsageSummaryResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/usage [get]
func (h *UsageHandler) Summary(c *gin.Context) {
	from, err := dto.BindDate(c, "start_date", false)
	if err != nil {
		respondError(c, err, "invalid start_date")
		return
	}
	to, err := dto.BindDate(c, "end_date", true)
	if err != nil {
		respondError(c, err, "invalid end_date")
		return
	}

	rows, err := h.stats.Summary(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err, "failed to load usage summary")
		return
	}
	dto.Success(c, &dto.UsageSummaryResponse{Usage: rows})
}

// Daily 最近 N 天按日汇总
// @Summary 每日用量
// @Tags Usage
// @Produce json
// @Param days query int false "天数，默认 30"
// @Success 200 {object} dto.Response[dto.DailyUsageResponse]
// @Router /v1/usage/daily [get]
func (h *UsageHandler) Daily(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(usage.DefaultDailyWindow)))
	if err != nil {
		dto.BadRequest(c, "days must be an integer")
		return
	}

	rows, err := h.stats.Daily(c.Request.Context(), days)
	if err != nil {
		respondError(c, err, "failed to load daily usage")
		return
	}
	dto.Success(c, &dto.DailyUsageResponse{DailyUsage: rows})
}
