package dto

import (
	"time"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
)

// CreateExampleRequest 创建示例请求
type CreateExampleRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Content     string `json:"content" binding:"required"`
	Category    string `json:"category"`
}

// ExampleResponse 示例响应
type ExampleResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Content     string    `json:"content"`
	Category    string    `json:"category,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExampleListResponse 示例列表响应
type ExampleListResponse struct {
	Examples []*ExampleResponse `json:"examples"`
}

// ToExampleResponse 将领域实体转换为响应 DTO
func ToExampleResponse(e *entity.Example) *ExampleResponse {
	if e == nil {
		return nil
	}
	return &ExampleResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Content:     e.Content,
		Category:    e.Category,
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
	}
}

// ToExampleListResponse 将领域实体列表转换为响应 DTO
func ToExampleListResponse(examples []*entity.Example) *ExampleListResponse {
	resp := &ExampleListResponse{Examples: make([]*ExampleResponse, 0, len(examples))}
	for _, e := range examples {
		resp.Examples = append(resp.Examples, ToExampleResponse(e))
	}
	return resp
}
