package bill

import (
	"context"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
)

// Generator 生成法案全文
type Generator interface {
	Generate(ctx context.Context, topic string) (string, error)
}

// Generated 一次生成的结果
type Generated struct {
	Content string
	Title   string
	// DraftID 仅在 save 为 true 时设置
	DraftID *int64
}

// GenerationService 在生成流程之外提供可选的草稿保存
type GenerationService struct {
	pipeline Generator
	drafts   *DraftService
}

// NewGenerationService 创建生成服务
func NewGenerationService(pipeline Generator, drafts *DraftService) *GenerationService {
	return &GenerationService{pipeline: pipeline, drafts: drafts}
}

// Generate 运行生成流程；save 为 true 时把结果保存为草稿。
// 草稿保存失败时仍返回生成的文本与错误。
func (s *GenerationService) Generate(ctx context.Context, topic string, save bool) (*Generated, error) {
	text, err := s.pipeline.Generate(ctx, topic)
	if err != nil {
		return nil, err
	}

	out := &Generated{Content: text, Title: entity.DeriveTitle(text)}
	if !save || s.drafts == nil {
		return out, nil
	}

	draft, err := s.drafts.Create(ctx, out.Title, text)
	if err != nil {
		return out, err
	}
	out.DraftID = &draft.ID
	return out, nil
}
