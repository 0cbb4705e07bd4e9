package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DanieelRC/LegislaBot/internal/application/document"
	"github.com/DanieelRC/LegislaBot/internal/interfaces/http/dto"
)

// DocumentHandler 格式校验、章节预览与导出，不访问存储
type DocumentHandler struct{}

// NewDocumentHandler 创建文档处理器
func NewDocumentHandler() *DocumentHandler {
	return &DocumentHandler{}
}

// Validate 检查官方格式
// @Summary 格式校验
// @Tags Documents
// @Accept json
// @Produce json
// @Param body body dto.DocumentRequest true "法案文本"
// @Success 200 {object} dto.Response[document.ValidationResult]
// @Router /v1/documents/validate [post]
func (h *DocumentHandler) Validate(c *gin.Context) {
	var req dto.DocumentRequest
	if !bindJSON(c, &req) {
		return
	}
	dto.Success(c, document.Validate(req.Content))
}

// Preview 拆分章节
// @Summary 章节预览
// @Tags Documents
// @Accept json
// @Produce json
// @Param body body dto.DocumentRequest true "法案文本"
// @Success 200 {object} dto.Response[document.Preview]
// @Router /v1/documents/preview [post]
func (h *DocumentHandler) Preview(c *gin.Context) {
	var req dto.DocumentRequest
	if !bindJSON(c, &req) {
		return
	}
	dto.Success(c, document.Split(req.Content))
}

// Export 以附件形式返回 txt、md 或 html
// @Summary 导出
// @Tags Documents
// @Accept json
// @Produce plain
// @Param body body dto.ExportRequest true "法案文本与格式"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/documents/export [post]
func (h *DocumentHandler) Export(c *gin.Context) {
	var req dto.ExportRequest
	if !bindJSON(c, &req) {
		return
	}
	format, err := document.ParseFormat(req.Format)
	if err != nil {
		respondError(c, err, "invalid export format")
		return
	}
	out, err := document.Export(req.Content, format)
	if err != nil {
		respondError(c, err, "failed to export document")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	c.Data(http.StatusOK, out.ContentType, out.Body)
}
