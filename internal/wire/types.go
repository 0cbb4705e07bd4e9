package wire

import (
	"github.com/DanieelRC/LegislaBot/internal/application/bill"
	"github.com/DanieelRC/LegislaBot/internal/application/seed"
	"github.com/DanieelRC/LegislaBot/internal/application/usage"
	"github.com/DanieelRC/LegislaBot/internal/infrastructure/messaging"
	"github.com/DanieelRC/LegislaBot/internal/infrastructure/persistence/postgres"
)

// Core CLI 与 bootstrap 使用的服务
type Core struct {
	DB        *postgres.Client
	Generator *bill.GenerationService
	Drafts    *bill.DraftService
	Usage     *usage.Stats
	Seeder    *seed.Seeder
}

// Worker job-worker 依赖
type Worker struct {
	Consumer *messaging.Consumer
	Jobs     *bill.JobService
}
