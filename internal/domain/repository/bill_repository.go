package repository

import (
	"context"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
)

// BillFilter 法案过滤条件
type BillFilter struct {
	Status entity.BillStatus
	// Search 对标题与主题做不区分大小写的模糊匹配
	Search string
}

// BillRepository 法案仓储接口
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id int64) (*entity.Bill, error)
	Update(ctx context.Context, bill *entity.Bill) error
	Delete(ctx context.Context, id int64) (bool, error)

	// List 按更新时间倒序
	List(ctx context.Context, filter *BillFilter, pagination Pagination) (*PagedResult[*entity.Bill], error)
}
