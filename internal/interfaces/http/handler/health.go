package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DanieelRC/LegislaBot/internal/config"
	"github.com/DanieelRC/LegislaBot/internal/interfaces/http/dto"
)

// HealthChecker 可探活的依赖
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	db    HealthChecker
	redis HealthChecker
	llm   *config.LLMConfig
	now   func() time.Time
}

// NewHealthHandler redis 为 nil 时不参与检查
func NewHealthHandler(db HealthChecker, redis HealthChecker, llm *config.LLMConfig) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, llm: llm, now: time.Now}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp,omitempty"`
	Services  map[string]string `json:"services,omitempty"`
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Health 健康检查接口
// 数据库不可用时返回 207 与 degraded，其余服务只报告凭证是否已配置
// @Summary 健康检查
// @Description 数据库连通性与 LLM 凭证配置状态
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Success 207 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Services: map[string]string{
			"database": "connected",
			"openai":   credentialStatus(h.llm, "openai"),
			"google":   credentialStatus(h.llm, "google"),
		},
	}
	if h.db == nil || h.db.HealthCheck(ctx) != nil {
		resp.Services["database"] = "disconnected"
		resp.Status = "degraded"
	}
	if h.redis != nil {
		resp.Services["redis"] = "connected"
		if err := h.redis.HealthCheck(ctx); err != nil {
			resp.Services["redis"] = "disconnected"
		}
	}

	status := http.StatusOK
	if resp.Status != "healthy" {
		status = http.StatusMultiStatus
	}
	c.JSON(status, resp)
}

func credentialStatus(llm *config.LLMConfig, provider string) string {
	if llm.ProviderConfigured(provider) {
		return "configured"
	}
	return "missing"
}

// Ready 就绪检查接口
// @Summary 就绪检查
// @Description 检查服务是否可以接收流量
// @Tags System
// @Produce json
// @Success 200 {object} readinessResponse
// @Failure 503 {object} readinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]*readinessCheck{}
	ready := true

	// 数据库（必需）
	checks["database"] = probe(ctx, h.db)
	if checks["database"].Status != "ok" {
		ready = false
	}

	// Redis（可选，不影响就绪态）
	if h.redis != nil {
		checks["redis"] = probe(ctx, h.redis)
		if checks["redis"].Status == "error" {
			checks["redis"].Status = "degraded"
		}
	}

	resp := readinessResponse{Status: "ok", Checks: checks}
	if !ready {
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func probe(ctx context.Context, hc HealthChecker) *readinessCheck {
	if hc == nil {
		return &readinessCheck{Status: "missing", Error: "client not configured"}
	}
	start := time.Now()
	err := hc.HealthCheck(ctx)
	check := &readinessCheck{Status: "ok", LatencyMs: time.Since(start).Milliseconds()}
	if err != nil {
		check.Status = "error"
		check.Error = err.Error()
	}
	return check
}

// Live 存活检查接口
// @Summary 存活检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// CheckEnv 列出生成流程缺失的凭证环境变量
// @Summary 凭证检查
// @Tags System
// @Produce json
// @Success 200 {object} dto.CheckEnvResponse
// @Router /v1/check-env [get]
func (h *HealthHandler) CheckEnv(c *gin.Context) {
	missing := h.llm.MissingCredentials()
	c.JSON(http.StatusOK, dto.CheckEnvResponse{
		Success:     len(missing) == 0,
		MissingVars: missing,
	})
}
