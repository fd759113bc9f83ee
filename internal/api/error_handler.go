package api

import (
	"errors"
	"net/http"

	"github.com/elan026/student-360/internal/utils"
	"github.com/elan026/student-360/internal/workflow"
	"github.com/gin-gonic/gin"
)

// APIError API 错误
type APIError struct {
	Code    int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrorHandlerMiddleware 错误处理中间件
// 控制器通过 c.Error 上报错误,这里统一翻译成 HTTP 响应
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			RenderError(c, err)
		}
	}
}

// RenderError 将错误渲染为统一错误响应
func RenderError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		Error(c, apiErr.Code, apiErr.Message, apiErr.Detail)
		return
	}

	var wfErr *workflow.Error
	if errors.As(err, &wfErr) {
		Error(c, httpStatusForKind(wfErr.Kind), string(wfErr.Kind), wfErr.Message)
		return
	}

	var valErr *utils.ValidationError
	if errors.As(err, &valErr) {
		Error(c, http.StatusBadRequest, "validation failed", valErr.Error())
		return
	}

	Error(c, http.StatusInternalServerError, "internal server error", err.Error())
}

// httpStatusForKind 工作流错误类别到 HTTP 状态码的映射
func httpStatusForKind(kind workflow.Kind) int {
	switch kind {
	case workflow.KindNotFound:
		return http.StatusNotFound
	case workflow.KindInvalidTransition, workflow.KindStaleState, workflow.KindLocked:
		return http.StatusConflict
	case workflow.KindForbidden:
		return http.StatusForbidden
	case workflow.KindCommentRequired:
		return http.StatusBadRequest
	case workflow.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WrapError 包装错误
func WrapError(err error, code int, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Detail:  err.Error(),
	}
}
