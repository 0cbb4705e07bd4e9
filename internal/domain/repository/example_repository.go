package repository

import (
	"context"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
)

// ExampleFilter 示例过滤条件
type ExampleFilter struct {
	Category   string
	ActiveOnly bool
}

// ExampleRepository 示例法案仓储接口
type ExampleRepository interface {
	Create(ctx context.Context, example *entity.Example) error
	GetByID(ctx context.Context, id int64) (*entity.Example, error)
	List(ctx context.Context, filter ExampleFilter, pagination Pagination) (*PagedResult[*entity.Example], error)
	Count(ctx context.Context) (int64, error)
}
