package dto

// DocumentRequest 文档校验与预览请求
type DocumentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ExportRequest 文档导出请求
type ExportRequest struct {
	Content string `json:"content" binding:"required"`
	// Format txt、md 或 html，默认 txt
	Format string `json:"format"`
}
