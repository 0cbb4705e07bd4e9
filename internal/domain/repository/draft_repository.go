package repository

import (
	"context"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
)

// DraftRepository 草稿仓储接口
type DraftRepository interface {
	// Create 创建草稿并回填 ID
	Create(ctx context.Context, draft *entity.Draft) error

	// GetByID 根据 ID 获取草稿，不存在时返回 nil, nil
	GetByID(ctx context.Context, id int64) (*entity.Draft, error)

	// List 按创建时间倒序分页
	List(ctx context.Context, pagination Pagination) (*PagedResult[*entity.Draft], error)

	// Update 更新草稿
	Update(ctx context.Context, draft *entity.Draft) error

	// Delete 删除草稿，返回是否存在被删除的行
	Delete(ctx context.Context, id int64) (bool, error)
}
