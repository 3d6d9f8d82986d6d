package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shorturl-service/internal/model"
	"shorturl-service/internal/service"
	"shorturl-service/internal/store"
)

// Pinger 用于健康检查
type Pinger interface {
	Ping(ctx context.Context) error
}

// URLHandler 处理短链接的创建与跳转
type URLHandler struct {
	svc    *service.MappingService
	db     Pinger
	logger *zap.SugaredLogger
}

// NewURLHandler 创建处理器实例
func NewURLHandler(svc *service.MappingService, db Pinger, logger *zap.SugaredLogger) *URLHandler {
	return &URLHandler{
		svc:    svc,
		db:     db,
		logger: logger.Named("url_handler"),
	}
}

// CreateURLRequest 创建短链接的请求体
type CreateURLRequest struct {
	TargetURL string `json:"target_url" binding:"required,http_url" example:"https://example.com/page"`
}

// CreateURLResponse 创建成功后的响应，只有这里会返回 secret_key
type CreateURLResponse struct {
	TargetURL string    `json:"target_url" example:"https://example.com/page"`
	URLKey    string    `json:"url_key" example:"aB3dE9"`
	SecretKey string    `json:"secret_key" example:"dZF-LJGMvnQlBDfWsxypTg"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active" example:"true"`
	Clicks    int64     `json:"clicks" example:"0"`
}

// Welcome godoc
// @Summary 欢迎页
// @Tags Root
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *URLHandler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello, World!"})
}

// HealthCheck godoc
// @Summary 健康检查
// @Tags Root
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *URLHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Errorf("数据库健康检查失败: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "timestamp": time.Now()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
}

// CreateURL godoc
// @Summary 创建短链接
// @Description 为一个长 URL 生成短码和管理密钥
// @Tags URL
// @Accept json
// @Produce json
// @Param url body CreateURLRequest true "目标 URL"
// @Success 201 {object} CreateURLResponse
// @Failure 400 {object} map[string]string "请求无效或短码冲突"
// @Failure 500 {object} map[string]string "服务器内部错误"
// @Router /url [post]
func (h *URLHandler) CreateURL(c *gin.Context) {
	var req CreateURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求数据: " + err.Error()})
		return
	}

	mapping, err := h.svc.CreateMapping(c.Request.Context(), req.TargetURL)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newCreateURLResponse(mapping))
}

// Redirect godoc
// @Summary 跳转到目标 URL
// @Description 每次成功跳转点击数加一
// @Tags URL
// @Param url_key path string true "短码"
// @Success 307
// @Failure 404 {object} map[string]string
// @Router /{url_key} [get]
func (h *URLHandler) Redirect(c *gin.Context) {
	target, err := h.svc.Resolve(c.Request.Context(), c.Param("url_key"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, target)
}

// writeError 把服务层错误映射为 HTTP 状态码
func (h *URLHandler) writeError(c *gin.Context, err error) {
	writeError(c, h.logger, err)
}

func writeError(c *gin.Context, logger *zap.SugaredLogger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidURL):
		c.JSON(http.StatusBadRequest, gin.H{"error": "目标 URL 无效，需要带主机名的 http/https 地址"})
	case errors.Is(err, store.ErrKeyCollision):
		c.JSON(http.StatusBadRequest, gin.H{"error": "创建短链接失败: 短码冲突，请重试"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "链接不存在或已停用"})
	default:
		logger.Errorw("请求处理失败", "path", c.FullPath(), "error", err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
	}
}

func newCreateURLResponse(m *model.Mapping) CreateURLResponse {
	return CreateURLResponse{
		TargetURL: m.TargetURL,
		URLKey:    m.URLKey,
		SecretKey: m.SecretKey,
		CreatedAt: m.CreatedAt,
		IsActive:  m.IsActive,
		Clicks:    m.Clicks,
	}
}
