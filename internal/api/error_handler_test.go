package api_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elan026/student-360/internal/api"
	"github.com/elan026/student-360/internal/utils"
	"github.com/elan026/student-360/internal/workflow"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func renderVia(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	api.RenderError(c, err)
	return w
}

// TestRenderErrorWorkflowKinds 工作流错误类别映射到 HTTP 状态码
func TestRenderErrorWorkflowKinds(t *testing.T) {
	cases := []struct {
		kind workflow.Kind
		want int
	}{
		{workflow.KindNotFound, http.StatusNotFound},
		{workflow.KindInvalidTransition, http.StatusConflict},
		{workflow.KindStaleState, http.StatusConflict},
		{workflow.KindLocked, http.StatusConflict},
		{workflow.KindForbidden, http.StatusForbidden},
		{workflow.KindCommentRequired, http.StatusBadRequest},
		{workflow.KindStoreUnavailable, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		w := renderVia(t, workflow.NewError(tc.kind, "boom"))
		assert.Equal(t, tc.want, w.Code, "kind %s", tc.kind)
		assert.Contains(t, w.Body.String(), string(tc.kind))
	}
}

// TestRenderErrorValidation 参数校验错误返回 400
func TestRenderErrorValidation(t *testing.T) {
	for _, err := range []*utils.ValidationError{
		utils.ErrEmptyTitle,
		utils.ErrUnknownStatus,
		utils.ErrNoContentFields,
	} {
		w := renderVia(t, err)
		assert.Equal(t, http.StatusBadRequest, w.Code, "error %s", err.Code)
	}
}

// TestRenderErrorUnknown 未识别错误返回 500
func TestRenderErrorUnknown(t *testing.T) {
	w := renderVia(t, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// TestErrorHandlerMiddleware 上报给 gin 的错误被统一翻译
func TestErrorHandlerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(api.ErrorHandlerMiddleware())
	router.GET("/fail", func(c *gin.Context) {
		_ = c.Error(workflow.NewError(workflow.KindForbidden, "not yours"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
