package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DanieelRC/LegislaBot/internal/application/example"
	"github.com/DanieelRC/LegislaBot/internal/domain/repository"
	"github.com/DanieelRC/LegislaBot/internal/interfaces/http/dto"
)

// ExampleHandler 示例法案
type ExampleHandler struct {
	examples *example.Service
}

// NewExampleHandler 创建示例处理器
func NewExampleHandler(examples *example.Service) *ExampleHandler {
	return &ExampleHandler{examples: examples}
}

// ListExamples 示例列表，默认只返回启用的示例
// @Summary 示例列表
// @Tags Examples
// @Produce json
// @Param category query string false "分类"
// @Param active query bool false "只返回启用的示例，默认 true"
// @Success 200 {object} dto.Response[dto.ExampleListResponse]
// @Router /v1/examples [get]
func (h *ExampleHandler) ListExamples(c *gin.Context) {
	page := dto.BindPage(c, repository.MaxPageSize)
	filter := repository.ExampleFilter{
		Category:   strings.TrimSpace(c.Query("category")),
		ActiveOnly: dto.BindBool(c, "active", true),
	}
	res, err := h.examples.List(c.Request.Context(), filter, page.Pagination())
	if err != nil {
		respondError(c, err, "failed to list examples")
		return
	}
	dto.SuccessWithPage(c, dto.ToExampleListResponse(res.Items), dto.NewPageMeta(page.Page, page.PageSize, int(res.Total)))
}

// GetExample 获取示例
// @Summary 获取示例
// @Tags Examples
// @Produce json
// @Param id path int true "示例 ID"
// @Success 200 {object} dto.Response[dto.ExampleResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/examples/{id} [get]
func (h *ExampleHandler) GetExample(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	e, err := h.examples.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to get example")
		return
	}
	dto.Success(c, dto.ToExampleResponse(e))
}

// CreateExample 新增示例
// @Summary 新增示例
// @Tags Examples
// @Accept json
// @Produce json
// @Param body body dto.CreateExampleRequest true "示例"
// @Success 201 {object} dto.Response[dto.ExampleResponse]
// @Router /v1/examples [post]
func (h *ExampleHandler) CreateExample(c *gin.Context) {
	var req dto.CreateExampleRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.examples.Create(c.Request.Context(), example.Input{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Category:    req.Category,
	})
	if err != nil {
		respondError(c, err, "failed to create example")
		return
	}
	dto.Created(c, dto.ToExampleResponse(e))
}
