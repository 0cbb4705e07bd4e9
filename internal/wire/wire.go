//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/DanieelRC/LegislaBot/internal/application/bill"
	"github.com/DanieelRC/LegislaBot/internal/application/seed"
	"github.com/DanieelRC/LegislaBot/internal/application/settings"
	"github.com/DanieelRC/LegislaBot/internal/application/usage"
	"github.com/DanieelRC/LegislaBot/internal/config"
	"github.com/DanieelRC/LegislaBot/internal/domain/repository"
	"github.com/DanieelRC/LegislaBot/internal/domain/service"
	"github.com/DanieelRC/LegislaBot/internal/infrastructure/llm"
	"github.com/DanieelRC/LegislaBot/internal/infrastructure/persistence/postgres"
	"github.com/DanieelRC/LegislaBot/internal/interfaces/http/handler"
	"github.com/DanieelRC/LegislaBot/internal/interfaces/http/router"
	"github.com/DanieelRC/LegislaBot/internal/workflow/chain"
)

// InitializeApp 初始化 API 网关（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RepoSet,
		RedisOptionalSet,
		ServiceSet,
		RouterSet,
	)
	return nil, nil, nil
}

// InitializeCore 初始化 CLI 与 bootstrap 使用的服务
func InitializeCore(ctx context.Context, cfg *config.Config) (*Core, func(), error) {
	wire.Build(
		RepoSet,
		RedisOptionalSet,
		ServiceSet,
		seed.NewSeeder,
		wire.Struct(new(Core), "*"),
	)
	return nil, nil, nil
}

// InitializeWorker 初始化 job-worker，Redis 不可用时返回错误
func InitializeWorker(ctx context.Context, cfg *config.Config) (*Worker, func(), error) {
	wire.Build(
		RepoSet,
		ProvideRedisClient,
		ProvideJobPublisher,
		ServiceSet,
		ProvideConsumer,
		wire.Struct(new(Worker), "*"),
	)
	return nil, nil, nil
}

// RepoSet 数据库客户端与仓储，整合了具体实现与接口绑定
var RepoSet = wire.NewSet(
	ProvideDatabaseClient,
	postgres.NewTxManager,
	postgres.NewDraftRepository,
	postgres.NewBillRepository,
	postgres.NewExampleRepository,
	postgres.NewSettingRepository,
	postgres.NewAPIUsageRepository,
	postgres.NewJobRepository,
	wire.Bind(new(repository.Transactor), new(*postgres.TxManager)),
	wire.Bind(new(repository.DraftRepository), new(*postgres.DraftRepository)),
	wire.Bind(new(repository.BillRepository), new(*postgres.BillRepository)),
	wire.Bind(new(repository.ExampleRepository), new(*postgres.ExampleRepository)),
	wire.Bind(new(repository.SettingRepository), new(*postgres.SettingRepository)),
	wire.Bind(new(repository.APIUsageRepository), new(*postgres.APIUsageRepository)),
	wire.Bind(new(repository.JobRepository), new(*postgres.JobRepository)),
)

// RedisOptionalSet 可选的 Redis 及其派生功能
var RedisOptionalSet = wire.NewSet(
	ProvideRedisClientOptional,
	ProvideExamplesCache,
	ProvideJobPublisher,
)

// PipelineSet 三阶段生成流程
var PipelineSet = wire.NewSet(
	llm.NewFactory,
	ProvideUsageRecorder,
	ProvideBillChain,
	settings.NewProvider,
	bill.NewPipeline,
	wire.Bind(new(service.GeneratorFactory), new(*llm.Factory)),
	wire.Bind(new(service.UsageRecorder), new(*usage.Recorder)),
	wire.Bind(new(bill.Stages), new(*chain.BillChain)),
	wire.Bind(new(service.SettingsProvider), new(*settings.Provider)),
	wire.Bind(new(bill.Generator), new(*bill.Pipeline)),
)

// ServiceSet 应用服务
var ServiceSet = wire.NewSet(
	PipelineSet,
	bill.NewDraftService,
	bill.NewGenerationService,
	bill.NewJobService,
	bill.NewBillService,
	ProvideExampleService,
	usage.NewStats,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	ProvideHealthHandler,
	ProvideRateLimiter,
	handler.NewBillHandler,
	handler.NewDraftHandler,
	handler.NewExampleHandler,
	handler.NewSettingsHandler,
	handler.NewUsageHandler,
	handler.NewDocumentHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)
