// Package seed 写入示例法案与默认配置，重复执行不会覆盖已有数据
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/DanieelRC/LegislaBot/internal/application/example"
	"github.com/DanieelRC/LegislaBot/internal/application/settings"
	"github.com/DanieelRC/LegislaBot/internal/domain/repository"
	"github.com/DanieelRC/LegislaBot/pkg/logger"
)

//go:embed data/seed.json
var seedJSON []byte

// Data 种子数据
type Data struct {
	Examples []ExampleSeed `json:"examples"`
	Settings []SettingSeed `json:"settings"`
}

type ExampleSeed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	IsActive    bool   `json:"is_active"`
}

type SettingSeed struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// Result 本次实际写入的数量
type Result struct {
	Examples int
	Settings int
}

// Default 内置种子数据
func Default() (*Data, error) {
	var d Data
	if err := json.Unmarshal(seedJSON, &d); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &d, nil
}

// Seeder 写入种子数据
type Seeder struct {
	examples    *example.Service
	exampleRepo repository.ExampleRepository
	settings    *settings.Provider
}

// NewSeeder 创建 Seeder
func NewSeeder(examples *example.Service, exampleRepo repository.ExampleRepository, settings *settings.Provider) *Seeder {
	return &Seeder{examples: examples, exampleRepo: exampleRepo, settings: settings}
}

// Run 示例表为空时才写入示例；配置只补齐不存在的键
func (s *Seeder) Run(ctx context.Context, d *Data) (Result, error) {
	var res Result

	count, err := s.exampleRepo.Count(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to count examples: %w", err)
	}
	if count == 0 {
		for _, e := range d.Examples {
			if _, err := s.examples.Create(ctx, example.Input{
				Title:       e.Title,
				Description: e.Description,
				Content:     e.Content,
				Category:    e.Category,
				Inactive:    !e.IsActive,
			}); err != nil {
				return res, fmt.Errorf("failed to seed example %q: %w", e.Title, err)
			}
			res.Examples++
		}
	} else {
		logger.Info(ctx, "examples already present, skipping", "count", count)
	}

	existing, err := s.settings.GetAllSettings(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to load settings: %w", err)
	}
	present := make(map[string]struct{}, len(existing))
	for _, st := range existing {
		present[st.Key] = struct{}{}
	}
	for _, st := range d.Settings {
		if _, ok := present[st.Key]; ok {
			continue
		}
		if err := s.settings.UpdateSetting(ctx, st.Key, st.Value, st.Description); err != nil {
			return res, fmt.Errorf("failed to seed setting %s: %w", st.Key, err)
		}
		res.Settings++
	}

	logger.Info(ctx, "seed completed", "examples", res.Examples, "settings", res.Settings)
	return res, nil
}
