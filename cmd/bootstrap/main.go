package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/DanieelRC/LegislaBot/internal/application/seed"
	"github.com/DanieelRC/LegislaBot/internal/config"
	"github.com/DanieelRC/LegislaBot/internal/wire"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting database bootstrap...")

	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. 建表（无论 auto_migrate 是否开启）
	cfg.Database.AutoMigrate = true
	core, cleanup, err := wire.InitializeCore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize data layer: %v", err)
	}
	defer cleanup()

	// 3. 写入示例法案与默认设置
	data, err := seed.Default()
	if err != nil {
		log.Fatalf("failed to load seed data: %v", err)
	}
	res, err := core.Seeder.Run(ctx, data)
	if err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}

	if res.Examples == 0 {
		fmt.Println("Examples already present, skipped.")
	} else {
		fmt.Printf("Inserted %d example bills.\n", res.Examples)
	}
	fmt.Printf("Inserted %d default settings.\n", res.Settings)

	fmt.Println("Bootstrap completed successfully.")
}
