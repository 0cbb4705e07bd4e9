package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
	"github.com/DanieelRC/LegislaBot/internal/domain/repository"
)

// ExampleRepository 示例法案仓储实现
type ExampleRepository struct {
	client *Client
}

// NewExampleRepository 创建示例仓储
func NewExampleRepository(client *Client) *ExampleRepository {
	return &ExampleRepository{client: client}
}

// Create 创建示例
func (r *ExampleRepository) Create(ctx context.Context, example *entity.Example) error {
	ctx, span := tracer.Start(ctx, "postgres.ExampleRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	active := example.IsActive
	if err := db.Create(example).Error; err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("example %q: %w", example.Title, repository.ErrDuplicate)
		}
		span.RecordError(err)
		return fmt.Errorf("failed to create example: %w", err)
	}
	// is_active 的零值会被列默认值 true 覆盖
	if !active {
		if err := db.Model(example).Update("is_active", false).Error; err != nil {
			span.RecordError(err)
			return fmt.Errorf("failed to deactivate example: %w", err)
		}
		example.IsActive = false
	}
	return nil
}

// GetByID 根据 ID 获取示例
func (r *ExampleRepository) GetByID(ctx context.Context, id int64) (*entity.Example, error) {
	ctx, span := tracer.Start(ctx, "postgres.ExampleRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var example entity.Example
	if err := db.First(&example, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get example: %w", err)
	}
	return &example, nil
}

// List 获取示例列表，按创建顺序
func (r *ExampleRepository) List(ctx context.Context, filter repository.ExampleFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Example], error) {
	ctx, span := tracer.Start(ctx, "postgres.ExampleRepository.List")
	defer span.End()

	db := getDB(ctx, r.client.db)
	query := db.Model(&entity.Example{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count examples: %w", err)
	}

	var examples []*entity.Example
	if err := query.Order("id ASC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&examples).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list examples: %w", err)
	}

	return repository.NewPagedResult(examples, total, pagination), nil
}

// Count 示例总数（bootstrap 判断是否需要写入种子数据）
func (r *ExampleRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.ExampleRepository.Count")
	defer span.End()

	var total int64
	if err := getDB(ctx, r.client.db).Model(&entity.Example{}).Count(&total).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count examples: %w", err)
	}
	return total, nil
}
