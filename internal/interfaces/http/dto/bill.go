package dto

import (
	"time"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
)

// GenerateBillRequest 生成法案请求
type GenerateBillRequest struct {
	Topic string `json:"topic" binding:"required"`
	// Save 为 true 时把结果保存为草稿
	Save bool `json:"save"`
}

// GenerateBillResponse 生成法案响应
type GenerateBillResponse struct {
	Content string `json:"content"`
	Title   string `json:"title"`
	DraftID *int64 `json:"draft_id,omitempty"`
	// Warning 生成成功但草稿保存失败时给出提示
	Warning string `json:"warning,omitempty"`
}

// CreateBillRequest 创建法案请求
type CreateBillRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" binding:"required"`
	Topic   string `json:"topic" binding:"required"`
	Status  string `json:"status"`
}

// UpdateBillRequest 更新法案请求，空字段保持不变
type UpdateBillRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Topic   string `json:"topic"`
	Status  string `json:"status"`
}

// BillResponse 法案响应
type BillResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Topic     string    `json:"topic"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BillListResponse 法案列表响应
type BillListResponse struct {
	Bills []*BillResponse `json:"bills"`
}

// ToBillResponse 将领域实体转换为响应 DTO
func ToBillResponse(b *entity.Bill) *BillResponse {
	if b == nil {
		return nil
	}
	return &BillResponse{
		ID:        b.ID,
		Title:     b.Title,
		Content:   b.Content,
		Topic:     b.Topic,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ToBillListResponse 将领域实体列表转换为响应 DTO
func ToBillListResponse(bills []*entity.Bill) *BillListResponse {
	resp := &BillListResponse{Bills: make([]*BillResponse, 0, len(bills))}
	for _, b := range bills {
		resp.Bills = append(resp.Bills, ToBillResponse(b))
	}
	return resp
}
