package repository

import (
	"context"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
)

// JobRepository 生成任务仓储接口
type JobRepository interface {
	// Create 创建任务
	Create(ctx context.Context, job *entity.GenerationJob) error

	// GetByID 根据 ID 获取任务，不存在时返回 nil, nil
	GetByID(ctx context.Context, id string) (*entity.GenerationJob, error)

	// Update 更新任务
	Update(ctx context.Context, job *entity.GenerationJob) error

	// UpdateStatus 更新任务状态
	UpdateStatus(ctx context.Context, id string, status entity.JobStatus) error

	// List 按状态过滤的任务列表，status 为空时不过滤
	List(ctx context.Context, status entity.JobStatus, pagination Pagination) (*PagedResult[*entity.GenerationJob], error)
}
