package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
	"github.com/DanieelRC/LegislaBot/internal/domain/repository"
)

// BillRepository 法案仓储实现
type BillRepository struct {
	client *Client
}

// NewBillRepository 创建法案仓储
func NewBillRepository(client *Client) *BillRepository {
	return &BillRepository{client: client}
}

// Create 创建法案
func (r *BillRepository) Create(ctx context.Context, bill *entity.Bill) error {
	ctx, span := tracer.Start(ctx, "postgres.BillRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(bill).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取法案
func (r *BillRepository) GetByID(ctx context.Context, id int64) (*entity.Bill, error) {
	ctx, span := tracer.Start(ctx, "postgres.BillRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var bill entity.Bill
	if err := db.First(&bill, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return &bill, nil
}

// Update 更新法案
func (r *BillRepository) Update(ctx context.Context, bill *entity.Bill) error {
	ctx, span := tracer.Start(ctx, "postgres.BillRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(bill).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update bill: %w", err)
	}
	return nil
}

// Delete 删除法案，关联草稿的 bill_id 由外键置空
func (r *BillRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.BillRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	res := db.Delete(&entity.Bill{}, "id = ?", id)
	if res.Error != nil {
		span.RecordError(res.Error)
		return false, fmt.Errorf("failed to delete bill: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// List 获取法案列表
func (r *BillRepository) List(ctx context.Context, filter *repository.BillFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Bill], error) {
	ctx, span := tracer.Start(ctx, "postgres.BillRepository.List")
	defer span.End()

	db := getDB(ctx, r.client.db)
	query := db.Model(&entity.Bill{})

	// 应用过滤条件
	if filter != nil {
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if s := strings.TrimSpace(filter.Search); s != "" {
			like := "%" + strings.ToLower(s) + "%"
			query = query.Where("LOWER(title) LIKE ? OR LOWER(topic) LIKE ?", like, like)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count bills: %w", err)
	}

	var bills []*entity.Bill
	if err := query.Order("updated_at DESC, id DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&bills).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	return repository.NewPagedResult(bills, total, pagination), nil
}
