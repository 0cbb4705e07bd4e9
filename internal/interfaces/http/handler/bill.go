package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DanieelRC/LegislaBot/internal/application/bill"
	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
	"github.com/DanieelRC/LegislaBot/internal/domain/repository"
	"github.com/DanieelRC/LegislaBot/internal/interfaces/http/dto"
	"github.com/DanieelRC/LegislaBot/pkg/logger"
)

// BillHandler 法案生成与管理
type BillHandler struct {
	generator *bill.GenerationService
	jobs      *bill.JobService
	bills     *bill.BillService
}

// NewBillHandler 创建法案处理器
func NewBillHandler(generator *bill.GenerationService, jobs *bill.JobService, bills *bill.BillService) *BillHandler {
	return &BillHandler{generator: generator, jobs: jobs, bills: bills}
}

// Generate 同步生成法案
// @Summary 生成法案
// @Description 依次执行调研、起草、润色三个阶段并返回全文
// @Tags Bills
// @Accept json
// @Produce json
// @Param body body dto.GenerateBillRequest true "生成请求"
// @Success 200 {object} dto.Response[dto.GenerateBillResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/bills/generate [post]
func (h *BillHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateBillRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.generator.Generate(ctx, req.Topic, req.Save)
	if err != nil && out == nil {
		respondError(c, bill.ToAppError(err), "bill generation failed")
		return
	}

	resp := &dto.GenerateBillResponse{
		Content: out.Content,
		Title:   out.Title,
		DraftID: out.DraftID,
	}
	if err != nil {
		logger.Error(ctx, "failed to save generated draft", err)
		resp.Warning = "bill generated but the draft could not be saved"
	}
	dto.Success(c, resp)
}

// GenerateAsync 异步生成法案
// @Summary 异步生成法案
// @Tags Bills
// @Accept json
// @Produce json
// @Param body body dto.GenerateBillRequest true "生成请求"
// @Success 202 {object} dto.Response[dto.EnqueueJobResponse]
// @Failure 503 {object} dto.ErrorResponse
// @Router /v1/bills/generate/async [post]
func (h *BillHandler) GenerateAsync(c *gin.Context) {
	var req dto.GenerateBillRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := h.jobs.Enqueue(c.Request.Context(), req.Topic, req.Save)
	if err != nil {
		respondError(c, err, "failed to enqueue generation job")
		return
	}
	dto.Accepted(c, &dto.EnqueueJobResponse{JobID: job.ID, Status: string(job.Status)})
}

// GetJob 查询异步任务
// @Summary 获取任务详情
// @Tags Jobs
// @Produce json
// @Param id path string true "任务 ID"
// @Success 200 {object} dto.Response[dto.JobResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/jobs/{id} [get]
func (h *BillHandler) GetJob(c *gin.Context) {
	job, err := h.jobs.Get(c.Request.Context(), dto.BindJobID(c))
	if err != nil {
		respondError(c, err, "failed to get job")
		return
	}
	dto.Success(c, dto.ToJobResponse(job))
}

// ListBills 法案列表
// @Summary 法案列表
// @Tags Bills
// @Produce json
// @Param status query string false "draft|published|archived"
// @Param q query string false "标题或主题关键字"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.Response[dto.BillListResponse]
// @Router /v1/bills [get]
func (h *BillHandler) ListBills(c *gin.Context) {
	page := dto.BindPage(c, repository.DefaultPageSize)
	filter := &repository.BillFilter{
		Status: entity.BillStatus(strings.TrimSpace(c.Query("status"))),
		Search: strings.TrimSpace(c.Query("q")),
	}

	res, err := h.bills.List(c.Request.Context(), filter, page.Pagination())
	if err != nil {
		respondError(c, err, "failed to list bills")
		return
	}
	dto.SuccessWithPage(c, dto.ToBillListResponse(res.Items), dto.NewPageMeta(page.Page, page.PageSize, int(res.Total)))
}

// CreateBill 创建法案
// @Summary 创建法案
// @Tags Bills
// @Accept json
// @Produce json
// @Param body body dto.CreateBillRequest true "法案"
// @Success 201 {object} dto.Response[dto.BillResponse]
// @Router /v1/bills [post]
func (h *BillHandler) CreateBill(c *gin.Context) {
	var req dto.CreateBillRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.bills.Create(c.Request.Context(), bill.BillInput{
		Title:   req.Title,
		Content: req.Content,
		Topic:   req.Topic,
		Status:  entity.BillStatus(req.Status),
	})
	if err != nil {
		respondError(c, err, "failed to create bill")
		return
	}
	dto.Created(c, dto.ToBillResponse(b))
}

// GetBill 获取法案
// @Summary 获取法案
// @Tags Bills
// @Produce json
// @Param id path int true "法案 ID"
// @Success 200 {object} dto.Response[dto.BillResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/bills/{id} [get]
func (h *BillHandler) GetBill(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	b, err := h.bills.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to get bill")
		return
	}
	dto.Success(c, dto.ToBillResponse(b))
}

// UpdateBill 更新法案
// @Summary 更新法案
// @Tags Bills
// @Accept json
// @Produce json
// @Param id path int true "法案 ID"
// @Param body body dto.UpdateBillRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.BillResponse]
// @Router /v1/bills/{id} [put]
func (h *BillHandler) UpdateBill(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req dto.UpdateBillRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.bills.Update(c.Request.Context(), id, bill.BillInput{
		Title:   req.Title,
		Content: req.Content,
		Topic:   req.Topic,
		Status:  entity.BillStatus(req.Status),
	})
	if err != nil {
		respondError(c, err, "failed to update bill")
		return
	}
	dto.Success(c, dto.ToBillResponse(b))
}

// DeleteBill 删除法案
// @Summary 删除法案
// @Tags Bills
// @Param id path int true "法案 ID"
// @Success 204
// @Router /v1/bills/{id} [delete]
func (h *BillHandler) DeleteBill(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.bills.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "failed to delete bill")
		return
	}
	dto.NoContent(c)
}
