package bill

import (
	"context"
	"strings"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
	"github.com/DanieelRC/LegislaBot/internal/domain/repository"
	apperrors "github.com/DanieelRC/LegislaBot/pkg/errors"
)

// BillInput 创建或更新法案的输入，零值字段在更新时保持不变
type BillInput struct {
	Title   string
	Content string
	Topic   string
	Status  entity.BillStatus
}

// BillService 法案管理
type BillService struct {
	bills repository.BillRepository
}

// NewBillService 创建法案服务
func NewBillService(bills repository.BillRepository) *BillService {
	return &BillService{bills: bills}
}

// Create 创建法案
func (s *BillService) Create(ctx context.Context, in BillInput) (*entity.Bill, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, apperrors.ErrInvalidParam.WithDetail("content is required")
	}
	if strings.TrimSpace(in.Topic) == "" {
		return nil, apperrors.ErrInvalidParam.WithDetail("topic is required")
	}
	b := entity.NewBill(in.Title, in.Content, in.Topic)
	if in.Status != "" {
		if !in.Status.Valid() {
			return nil, apperrors.ErrInvalidParam.WithDetail("invalid status")
		}
		b.Status = in.Status
	}
	if err := s.bills.Create(ctx, b); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create bill")
	}
	return b, nil
}

// Get 获取法案
func (s *BillService) Get(ctx context.Context, id int64) (*entity.Bill, error) {
	b, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to get bill")
	}
	if b == nil {
		return nil, apperrors.ErrBillNotFound
	}
	return b, nil
}

// Update 更新法案
func (s *BillService) Update(ctx context.Context, id int64, in BillInput) (*entity.Bill, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t := strings.TrimSpace(in.Title); t != "" {
		b.Title = t
	}
	if in.Content != "" {
		b.Content = in.Content
	}
	if t := strings.TrimSpace(in.Topic); t != "" {
		b.Topic = t
	}
	if in.Status != "" {
		if !in.Status.Valid() {
			return nil, apperrors.ErrInvalidParam.WithDetail("invalid status")
		}
		b.Status = in.Status
	}
	if err := s.bills.Update(ctx, b); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to update bill")
	}
	return b, nil
}

// Delete 删除法案，关联草稿的 bill_id 由外键置空
func (s *BillService) Delete(ctx context.Context, id int64) error {
	ok, err := s.bills.Delete(ctx, id)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to delete bill")
	}
	if !ok {
		return apperrors.ErrBillNotFound
	}
	return nil
}

// List 按状态与关键字过滤
func (s *BillService) List(ctx context.Context, filter *repository.BillFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Bill], error) {
	if filter != nil && filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.ErrInvalidParam.WithDetail("invalid status")
	}
	res, err := s.bills.List(ctx, filter, pagination)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list bills")
	}
	return res, nil
}
