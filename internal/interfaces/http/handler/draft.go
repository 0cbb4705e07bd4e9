package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/DanieelRC/LegislaBot/internal/application/bill"
	"github.com/DanieelRC/LegislaBot/internal/domain/repository"
	"github.com/DanieelRC/LegislaBot/internal/interfaces/http/dto"
)

// DraftHandler 草稿管理
type DraftHandler struct {
	drafts *bill.DraftService
}

// NewDraftHandler 创建草稿处理器
func NewDraftHandler(drafts *bill.DraftService) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

// ListDrafts 草稿列表，按创建时间倒序
// @Summary 草稿列表
// @Tags Drafts
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.Response[dto.DraftListResponse]
// @Router /v1/drafts [get]
func (h *DraftHandler) ListDrafts(c *gin.Context) {
	page := dto.BindPage(c, repository.DefaultPageSize)
	res, err := h.drafts.List(c.Request.Context(), page.Pagination())
	if err != nil {
		respondError(c, err, "failed to list drafts")
		return
	}
	dto.SuccessWithPage(c, dto.ToDraftListResponse(res.Items), dto.NewPageMeta(page.Page, page.PageSize, int(res.Total)))
}

// CreateDraft 保存草稿
// @Summary 保存草稿
// @Tags Drafts
// @Accept json
// @Produce json
// @Param body body dto.CreateDraftRequest true "草稿"
// @Success 201 {object} dto.Response[dto.DraftResponse]
// @Router /v1/drafts [post]
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	var req dto.CreateDraftRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.drafts.Create(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		respondError(c, err, "failed to save draft")
		return
	}
	dto.Created(c, dto.ToDraftResponse(d))
}

// GetDraft 获取草稿
// @Summary 获取草稿
// @Tags Drafts
// @Produce json
// @Param id path int true "草稿 ID"
// @Success 200 {object} dto.Response[dto.DraftResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/drafts/{id} [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	d, err := h.drafts.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to get draft")
		return
	}
	dto.Success(c, dto.ToDraftResponse(d))
}

// DeleteDraft 删除草稿
// @Summary 删除草稿
// @Tags Drafts
// @Param id path int true "草稿 ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/drafts/{id} [delete]
func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.drafts.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "failed to delete draft")
		return
	}
	dto.NoContent(c)
}

// ConvertDraft 把草稿转为法案并关联
// @Summary 草稿转法案
// @Tags Drafts
// @Accept json
// @Produce json
// @Param id path int true "草稿 ID"
// @Param body body dto.ConvertDraftRequest false "主题"
// @Success 201 {object} dto.Response[dto.BillResponse]
// @Router /v1/drafts/{id}/convert [post]
func (h *DraftHandler) ConvertDraft(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req dto.ConvertDraftRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	b, err := h.drafts.ConvertToBill(c.Request.Context(), id, req.Topic)
	if err != nil {
		respondError(c, err, "failed to convert draft")
		return
	}
	dto.Created(c, dto.ToBillResponse(b))
}
