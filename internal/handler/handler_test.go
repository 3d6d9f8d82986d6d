package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shorturl-service/internal/service"
	"shorturl-service/internal/shortcode"
	"shorturl-service/internal/store"
	"shorturl-service/internal/testutil"
)

// setupTest 为集成测试初始化一个干净的环境：独立的内存数据库和完整的路由
func setupTest(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop().Sugar()
	mappingStore := store.NewMappingStore(testutil.NewTestDB(t))
	generator := shortcode.NewGenerator(shortcode.DefaultURLKeyLength, shortcode.DefaultSecretKeyBytes, logger)
	svc := service.NewMappingService(mappingStore, generator, 3, logger)

	return newTestRouter(NewURLHandler(svc, mappingStore, logger), NewAdminHandler(svc, logger))
}

func newTestRouter(urlHandler *URLHandler, adminHandler *AdminHandler) *gin.Engine {
	router := gin.New()
	router.GET("/", urlHandler.Welcome)
	router.GET("/health", urlHandler.HealthCheck)
	router.POST("/url", urlHandler.CreateURL)
	router.GET("/:url_key", urlHandler.Redirect)
	router.GET("/admin/:secret_key", adminHandler.GetInfo)
	router.DELETE("/admin/:secret_key", adminHandler.Delete)
	return router
}

func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createURL(t *testing.T, router *gin.Engine, target string) CreateURLResponse {
	t.Helper()
	w := doRequest(router, http.MethodPost, "/url", CreateURLRequest{TargetURL: target})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp CreateURLResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func getInfo(t *testing.T, router *gin.Engine, secret string) map[string]any {
	t.Helper()
	w := doRequest(router, http.MethodGet, "/admin/"+secret, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var info map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	return info
}

func TestWelcome(t *testing.T) {
	router := setupTest(t)

	w := doRequest(router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Hello, World!"}`, w.Body.String())
}

func TestHealthCheck(t *testing.T) {
	router := setupTest(t)

	w := doRequest(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
}

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("database is closed") }

func TestHealthCheck_DatabaseDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewURLHandler(nil, downPinger{}, zap.NewNop().Sugar())
	router := gin.New()
	router.GET("/health", h.HealthCheck)

	w := doRequest(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// TestURLLifecycle 测试创建、跳转、统计和删除的完整流程
func TestURLLifecycle(t *testing.T) {
	router := setupTest(t)
	target := "https://example.com/page"

	// 创建
	created := createURL(t, router, target)
	assert.Equal(t, target, created.TargetURL)
	assert.Len(t, created.URLKey, shortcode.DefaultURLKeyLength)
	assert.NotEmpty(t, created.SecretKey)
	assert.True(t, created.IsActive)
	assert.Zero(t, created.Clicks)
	assert.False(t, created.CreatedAt.IsZero())

	// 跳转 N 次
	const n = 3
	for i := 0; i < n; i++ {
		w := doRequest(router, http.MethodGet, "/"+created.URLKey, nil)
		require.Equal(t, http.StatusTemporaryRedirect, w.Code)
		assert.Equal(t, target, w.Header().Get("Location"))
	}

	// 统计
	info := getInfo(t, router, created.SecretKey)
	assert.EqualValues(t, n, info["clicks"])
	assert.Equal(t, true, info["is_active"])
	assert.Equal(t, created.URLKey, info["url_key"])
	assert.Equal(t, target, info["target_url"])
	assert.NotContains(t, info, "secret_key", "管理接口不应返回 secret_key")
	assert.Contains(t, info, "created_at")

	// 删除
	w := doRequest(router, http.MethodDelete, "/admin/"+created.SecretKey, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	// 删除后跳转返回 404，但管理接口仍可查看
	w = doRequest(router, http.MethodGet, "/"+created.URLKey, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	info = getInfo(t, router, created.SecretKey)
	assert.Equal(t, false, info["is_active"])
	assert.EqualValues(t, n, info["clicks"])

	// 重复删除结果相同
	w = doRequest(router, http.MethodDelete, "/admin/"+created.SecretKey, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRedirect_DeletedAndMissingAreIndistinguishable(t *testing.T) {
	router := setupTest(t)

	created := createURL(t, router, "https://example.com/gone")
	require.Equal(t, http.StatusNoContent, doRequest(router, http.MethodDelete, "/admin/"+created.SecretKey, nil).Code)

	deleted := doRequest(router, http.MethodGet, "/"+created.URLKey, nil)
	missing := doRequest(router, http.MethodGet, "/zzzzzz", nil)

	assert.Equal(t, http.StatusNotFound, deleted.Code)
	assert.Equal(t, missing.Code, deleted.Code)
	assert.Equal(t, missing.Body.String(), deleted.Body.String())
}

func TestCreateURL_Validation(t *testing.T) {
	router := setupTest(t)

	cases := map[string]any{
		"缺少字段":     map[string]string{},
		"不是 URL":   CreateURLRequest{TargetURL: "not a url"},
		"相对路径":     CreateURLRequest{TargetURL: "/just/a/path"},
		"不支持的协议":   CreateURLRequest{TargetURL: "ftp://example.com/file"},
		"缺少主机名":    CreateURLRequest{TargetURL: "https://"},
		"字段类型错误":   map[string]int{"target_url": 42},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/url", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestCreateURL_MalformedJSON(t *testing.T) {
	router := setupTest(t)

	req, _ := http.NewRequest(http.MethodPost, "/url", strings.NewReader(`{"target_url":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateURL_PreservesTargetExactly(t *testing.T) {
	router := setupTest(t)
	target := "https://example.com/a/b?q=1&lang=zh#frag"

	created := createURL(t, router, target)
	w := doRequest(router, http.MethodGet, "/"+created.URLKey, nil)
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, target, w.Header().Get("Location"))
}

func TestAdmin_UnknownSecret(t *testing.T) {
	router := setupTest(t)

	assert.Equal(t, http.StatusNotFound, doRequest(router, http.MethodGet, "/admin/unknown", nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(router, http.MethodDelete, "/admin/unknown", nil).Code)
}

func TestAdmin_URLKeyIsNotASecret(t *testing.T) {
	router := setupTest(t)

	created := createURL(t, router, "https://example.com")
	w := doRequest(router, http.MethodGet, "/admin/"+created.URLKey, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
