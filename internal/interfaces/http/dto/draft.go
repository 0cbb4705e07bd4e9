package dto

import (
	"time"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
)

// CreateDraftRequest 创建草稿请求
type CreateDraftRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" binding:"required"`
}

// ConvertDraftRequest 草稿转法案请求，topic 为空时使用默认主题
type ConvertDraftRequest struct {
	Topic string `json:"topic"`
}

// DraftResponse 草稿响应
type DraftResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	BillID    *int64    `json:"bill_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DraftListResponse 草稿列表响应
type DraftListResponse struct {
	Drafts []*DraftResponse `json:"drafts"`
}

// ToDraftResponse 将领域实体转换为响应 DTO
func ToDraftResponse(d *entity.Draft) *DraftResponse {
	if d == nil {
		return nil
	}
	return &DraftResponse{
		ID:        d.ID,
		Title:     d.Title,
		Content:   d.Content,
		BillID:    d.BillID,
		CreatedAt: d.CreatedAt,
	}
}

// ToDraftListResponse 将领域实体列表转换为响应 DTO
func ToDraftListResponse(drafts []*entity.Draft) *DraftListResponse {
	resp := &DraftListResponse{Drafts: make([]*DraftResponse, 0, len(drafts))}
	for _, d := range drafts {
		resp.Drafts = append(resp.Drafts, ToDraftResponse(d))
	}
	return resp
}
