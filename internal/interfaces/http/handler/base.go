// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/DanieelRC/LegislaBot/internal/interfaces/http/dto"
	apperrors "github.com/DanieelRC/LegislaBot/pkg/errors"
	"github.com/DanieelRC/LegislaBot/pkg/logger"
)

// respondError 把服务层错误写成统一的错误响应，5xx 记录日志
func respondError(c *gin.Context, err error, msg string) {
	appErr := apperrors.AsAppError(err)
	if appErr.Code == apperrors.CodeUnknown {
		appErr = apperrors.ErrInternalError.WithError(err)
	}
	if appErr.HTTPStatus >= 500 {
		logger.Error(c.Request.Context(), msg, err, "path", c.FullPath())
	}
	dto.AppError(c, appErr)
}

// bindJSON 绑定请求体，失败时写 400
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// bindID 绑定路径中的数字 ID，失败时写 400
func bindID(c *gin.Context) (int64, bool) {
	id, err := dto.BindID(c)
	if err != nil {
		respondError(c, err, "invalid id")
		return 0, false
	}
	return id, true
}
