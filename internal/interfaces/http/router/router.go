// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DanieelRC/LegislaBot/internal/config"
	"github.com/DanieelRC/LegislaBot/internal/infrastructure/persistence/redis"
	"github.com/DanieelRC/LegislaBot/internal/interfaces/http/handler"
	"github.com/DanieelRC/LegislaBot/internal/interfaces/http/middleware"
)

// Handlers 路由用到的全部处理器
type Handlers struct {
	Health   *handler.HealthHandler
	Bill     *handler.BillHandler
	Draft    *handler.DraftHandler
	Example  *handler.ExampleHandler
	Settings *handler.SettingsHandler
	Usage    *handler.UsageHandler
	Document *handler.DocumentHandler
}

// Router HTTP 路由器
type Router struct {
	engine   *gin.Engine
	cfg      *config.Config
	handlers *Handlers
	limiter  middleware.RateLimiter
}

// New 创建新的路由器；limiter 为 nil 时生成接口不限流
func New(cfg *config.Config, handlers *Handlers, limiter middleware.RateLimiter) *Router {
	// 设置 Gin 模式
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		engine:   gin.New(),
		cfg:      cfg,
		handlers: handlers,
		limiter:  limiter,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	// 基础中间件
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	// CORS 中间件
	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: r.cfg.Security.CORS.AllowedHeaders,
	}))

	// 追踪中间件
	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	// 指标中间件
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	h := r.handlers

	// 系统端点
	r.engine.GET("/health", h.Health.Health)
	r.engine.GET("/ready", h.Health.Ready)
	r.engine.GET("/live", h.Health.Live)

	// Prometheus 指标端点
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// 生成接口调用 LLM，单独限流
	limit := middleware.RateLimit(middleware.RateLimitConfig{
		Enabled:  r.cfg.Security.RateLimit.Enabled,
		Requests: r.cfg.Security.RateLimit.Requests,
		Window:   r.cfg.Security.RateLimit.Window,
	}, r.limiter, redis.BuildRateLimitKey)

	v1 := r.engine.Group("/v1")
	{
		v1.GET("/check-env", h.Health.CheckEnv)

		// 法案
		bills := v1.Group("/bills")
		{
			bills.POST("/generate", limit, h.Bill.Generate)
			bills.POST("/generate/async", limit, h.Bill.GenerateAsync)
			bills.GET("", h.Bill.ListBills)
			bills.POST("", h.Bill.CreateBill)
			bills.GET("/:id", h.Bill.GetBill)
			bills.PUT("/:id", h.Bill.UpdateBill)
			bills.DELETE("/:id", h.Bill.DeleteBill)
		}

		// 异步任务
		v1.GET("/jobs/:id", h.Bill.GetJob)

		// 草稿
		drafts := v1.Group("/drafts")
		{
			drafts.GET("", h.Draft.ListDrafts)
			drafts.POST("", h.Draft.CreateDraft)
			drafts.GET("/:id", h.Draft.GetDraft)
			drafts.DELETE("/:id", h.Draft.DeleteDraft)
			drafts.POST("/:id/convert", h.Draft.ConvertDraft)
		}

		// 示例法案
		examples := v1.Group("/examples")
		{
			examples.GET("", h.Example.ListExamples)
			examples.POST("", h.Example.CreateExample)
			examples.GET("/:id", h.Example.GetExample)
		}

		// 系统配置
		v1.GET("/settings", h.Settings.GetSettings)
		v1.POST("/settings", h.Settings.UpdateSettings)

		// 用量统计
		v1.GET("/usage", h.Usage.Summary)
		v1.GET("/usage/daily", h.Usage.Daily)

		// 文档
		docs := v1.Group("/documents")
		{
			docs.POST("/validate", h.Document.Validate)
			docs.POST("/preview", h.Document.Preview)
			docs.POST("/export", h.Document.Export)
		}
	}
}
