package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shorturl-service/internal/service"
)

// AdminHandler 通过管理密钥查看或删除短链接
type AdminHandler struct {
	svc    *service.MappingService
	logger *zap.SugaredLogger
}

// NewAdminHandler 创建一个新的 AdminHandler
func NewAdminHandler(svc *service.MappingService, logger *zap.SugaredLogger) *AdminHandler {
	return &AdminHandler{svc: svc, logger: logger.Named("admin_handler")}
}

// URLInfoResponse 管理信息，不包含 secret_key
type URLInfoResponse struct {
	TargetURL string    `json:"target_url" example:"https://example.com/page"`
	URLKey    string    `json:"url_key" example:"aB3dE9"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active" example:"true"`
	Clicks    int64     `json:"clicks" example:"42"`
}

// GetInfo godoc
// @Summary 查看短链接统计
// @Description 已删除的链接依然可以查看，is_active 为 false
// @Tags Admin
// @Produce json
// @Param secret_key path string true "管理密钥"
// @Success 200 {object} URLInfoResponse
// @Failure 404 {object} map[string]string
// @Router /admin/{secret_key} [get]
func (h *AdminHandler) GetInfo(c *gin.Context) {
	mapping, err := h.svc.Info(c.Request.Context(), c.Param("secret_key"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, URLInfoResponse{
		TargetURL: mapping.TargetURL,
		URLKey:    mapping.URLKey,
		CreatedAt: mapping.CreatedAt,
		IsActive:  mapping.IsActive,
		Clicks:    mapping.Clicks,
	})
}

// Delete godoc
// @Summary 删除短链接
// @Description 软删除，重复删除同样返回 204
// @Tags Admin
// @Param secret_key path string true "管理密钥"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/{secret_key} [delete]
func (h *AdminHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("secret_key")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
