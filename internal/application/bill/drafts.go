package bill

import (
	"context"
	"strings"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
	"github.com/DanieelRC/LegislaBot/internal/domain/repository"
	apperrors "github.com/DanieelRC/LegislaBot/pkg/errors"
	"github.com/DanieelRC/LegislaBot/pkg/logger"
)

// DefaultConvertedTopic 草稿转换为法案且未指定主题时使用
const DefaultConvertedTopic = "AI Generated"

// DraftService 草稿管理
type DraftService struct {
	drafts     repository.DraftRepository
	bills      repository.BillRepository
	transactor repository.Transactor
}

// NewDraftService 创建草稿服务
func NewDraftService(drafts repository.DraftRepository, bills repository.BillRepository, transactor repository.Transactor) *DraftService {
	return &DraftService{drafts: drafts, bills: bills, transactor: transactor}
}

// Create 保存草稿，标题为空时从正文推导
func (s *DraftService) Create(ctx context.Context, title, content string) (*entity.Draft, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.ErrInvalidParam.WithDetail("content is required")
	}
	draft := entity.NewDraft(strings.TrimSpace(title), content)
	if err := s.drafts.Create(ctx, draft); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to save draft")
	}
	logger.Info(ctx, "draft saved", "draft_id", draft.ID, "title", draft.Title)
	return draft, nil
}

// Get 获取草稿
func (s *DraftService) Get(ctx context.Context, id int64) (*entity.Draft, error) {
	draft, err := s.drafts.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to get draft")
	}
	if draft == nil {
		return nil, apperrors.ErrDraftNotFound
	}
	return draft, nil
}

// List 按创建时间倒序分页
func (s *DraftService) List(ctx context.Context, pagination repository.Pagination) (*repository.PagedResult[*entity.Draft], error) {
	res, err := s.drafts.List(ctx, pagination)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list drafts")
	}
	return res, nil
}

// Delete 删除草稿，不存在时返回 ErrDraftNotFound
func (s *DraftService) Delete(ctx context.Context, id int64) error {
	ok, err := s.drafts.Delete(ctx, id)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to delete draft")
	}
	if !ok {
		return apperrors.ErrDraftNotFound
	}
	return nil
}

// ConvertToBill 在一个事务中以草稿内容创建法案并回写草稿的 bill_id
func (s *DraftService) ConvertToBill(ctx context.Context, draftID int64, topic string) (*entity.Bill, error) {
	if strings.TrimSpace(topic) == "" {
		topic = DefaultConvertedTopic
	}

	var created *entity.Bill
	err := s.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		draft, err := s.drafts.GetByID(ctx, draftID)
		if err != nil {
			return err
		}
		if draft == nil {
			return apperrors.ErrDraftNotFound
		}
		if draft.BillID != nil {
			return apperrors.ErrConflict.WithDetail("draft already converted")
		}

		b := entity.NewBill(draft.Title, draft.Content, topic)
		if err := s.bills.Create(ctx, b); err != nil {
			return err
		}
		draft.LinkBill(b.ID)
		if err := s.drafts.Update(ctx, draft); err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to convert draft")
	}

	logger.Info(ctx, "draft converted to bill", "draft_id", draftID, "bill_id", created.ID)
	return created, nil
}
