package wire

import (
	"context"

	"github.com/DanieelRC/LegislaBot/internal/application/bill"
	"github.com/DanieelRC/LegislaBot/internal/application/example"
	"github.com/DanieelRC/LegislaBot/internal/application/usage"
	"github.com/DanieelRC/LegislaBot/internal/config"
	"github.com/DanieelRC/LegislaBot/internal/domain/repository"
	"github.com/DanieelRC/LegislaBot/internal/domain/service"
	"github.com/DanieelRC/LegislaBot/internal/infrastructure/messaging"
	"github.com/DanieelRC/LegislaBot/internal/infrastructure/persistence/postgres"
	"github.com/DanieelRC/LegislaBot/internal/infrastructure/persistence/redis"
	"github.com/DanieelRC/LegislaBot/internal/interfaces/http/handler"
	"github.com/DanieelRC/LegislaBot/internal/interfaces/http/middleware"
	"github.com/DanieelRC/LegislaBot/internal/workflow/chain"
	"github.com/DanieelRC/LegislaBot/pkg/logger"
)

// ProvideDatabaseClient 提供数据库客户端，auto_migrate 开启时同步表结构
func ProvideDatabaseClient(ctx context.Context, cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := client.Migrate(ctx); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClientOptional Redis 未启用或不可达时返回 nil，依赖它的功能随之关闭
func ProvideRedisClientOptional(ctx context.Context, cfg *config.Config) (*redis.Client, func()) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Warn(ctx, "redis not available, cache, rate limiting and async generation disabled", "error", err.Error())
		return nil, func() {}
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup
}

// ProvideRedisClient 提供 Redis 客户端（job-worker 必需）
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideExamplesCache 缓存关闭或 Redis 不可用时返回 nil 接口
func ProvideExamplesCache(cfg *config.Config, client *redis.Client) example.Cache {
	if client == nil || !cfg.Features.ExamplesCache.Enabled {
		return nil
	}
	return redis.NewCache(client)
}

// ProvideRateLimiter Redis 不可用时不限流
func ProvideRateLimiter(client *redis.Client) middleware.RateLimiter {
	if client == nil {
		return nil
	}
	return redis.NewRateLimiter(client)
}

// ProvideJobPublisher 异步生成关闭或 Redis 不可用时返回 nil，接口返回 503
func ProvideJobPublisher(cfg *config.Config, client *redis.Client) bill.JobPublisher {
	if client == nil || !cfg.Features.AsyncGeneration.Enabled {
		return nil
	}
	return messaging.NewProducer(client.Redis(), int64(cfg.Messaging.RedisStream.MaxLen))
}

// ProvideHealthHandler Redis 为 nil 时健康检查不包含 redis
func ProvideHealthHandler(db *postgres.Client, client *redis.Client, cfg *config.Config) *handler.HealthHandler {
	var rc handler.HealthChecker
	if client != nil {
		rc = client
	}
	return handler.NewHealthHandler(db, rc, &cfg.LLM)
}

// ProvideUsageRecorder 使用配置覆盖后的价格表
func ProvideUsageRecorder(repo repository.APIUsageRepository, cfg *config.Config) *usage.Recorder {
	return usage.NewRecorder(repo, usage.PriceTableFrom(cfg.LLM.Pricing))
}

// ProvideBillChain 三个阶段的提供商与温度取自 llm.stages
func ProvideBillChain(factory service.GeneratorFactory, recorder service.UsageRecorder, cfg *config.Config) *chain.BillChain {
	return chain.NewBillChain(factory, recorder, chain.ConfigFrom(cfg.LLM.Stages))
}

// ProvideExampleService 提供示例法案服务
func ProvideExampleService(repo repository.ExampleRepository, cache example.Cache, cfg *config.Config) *example.Service {
	return example.NewService(repo, cache, cfg.Features.ExamplesCache.TTL)
}

// ProvideConsumer 提供 bill.generate 流的消费者
func ProvideConsumer(client *redis.Client, cfg *config.Config, jobs *bill.JobService) *messaging.Consumer {
	rs := cfg.Messaging.RedisStream
	consumer := messaging.NewConsumer(client.Redis(), messaging.ConsumerConfig{
		Stream:        messaging.StreamBillGenerate,
		Group:         messaging.ConsumerGroupBillWorker,
		ConsumerName:  messaging.DefaultConsumerName(),
		BlockTimeout:  rs.BlockTimeout,
		ClaimInterval: rs.ClaimInterval,
		RetryLimit:    rs.RetryLimit,
		Backoff: messaging.BackoffConfig{
			Initial:    rs.RetryBackoff.Initial,
			Max:        rs.RetryBackoff.Max,
			Multiplier: rs.RetryBackoff.Multiplier,
		},
	})
	consumer.RegisterHandler(messaging.TypeBillGenerate, messaging.NewBillGenerationHandler(jobs))
	return consumer
}
