package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
	"github.com/DanieelRC/LegislaBot/internal/domain/repository"
)

// DraftRepository 草稿仓储实现
type DraftRepository struct {
	client *Client
}

// NewDraftRepository 创建草稿仓储
func NewDraftRepository(client *Client) *DraftRepository {
	return &DraftRepository{client: client}
}

// Create 创建草稿
func (r *DraftRepository) Create(ctx context.Context, draft *entity.Draft) error {
	ctx, span := tracer.Start(ctx, "postgres.DraftRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Omit("Bill").Create(draft).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create draft: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取草稿
func (r *DraftRepository) GetByID(ctx context.Context, id int64) (*entity.Draft, error) {
	ctx, span := tracer.Start(ctx, "postgres.DraftRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var draft entity.Draft
	if err := db.First(&draft, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return &draft, nil
}

// List 获取草稿列表
func (r *DraftRepository) List(ctx context.Context, pagination repository.Pagination) (*repository.PagedResult[*entity.Draft], error) {
	ctx, span := tracer.Start(ctx, "postgres.DraftRepository.List")
	defer span.End()

	db := getDB(ctx, r.client.db)
	query := db.Model(&entity.Draft{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count drafts: %w", err)
	}

	var drafts []*entity.Draft
	if err := query.Order("created_at DESC, id DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&drafts).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}

	return repository.NewPagedResult(drafts, total, pagination), nil
}

// Update 更新草稿
func (r *DraftRepository) Update(ctx context.Context, draft *entity.Draft) error {
	ctx, span := tracer.Start(ctx, "postgres.DraftRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Omit("Bill").Save(draft).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update draft: %w", err)
	}
	return nil
}

// Delete 删除草稿
func (r *DraftRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.DraftRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	res := db.Delete(&entity.Draft{}, "id = ?", id)
	if res.Error != nil {
		span.RecordError(res.Error)
		return false, fmt.Errorf("failed to delete draft: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
