package handler

import (
	"net/http"
	"net/url"
	"qrlink-platform/internal/model"
	"qrlink-platform/internal/qrtoken"
	"qrlink-platform/internal/subscription"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QRHandler 二维码处理器
type QRHandler struct {
	db             *gorm.DB
	redis          *redis.Client
	tokenGenerator *qrtoken.Generator
	quotaGuard     *subscription.Guard
	baseURL        string
}

// NewQRHandler 创建处理器实例
func NewQRHandler(db *gorm.DB, redisClient *redis.Client, tokenGenerator *qrtoken.Generator, baseURL string) *QRHandler {
	return &QRHandler{
		db:             db,
		redis:          redisClient,
		tokenGenerator: tokenGenerator,
		quotaGuard:     subscription.NewGuard(db),
		baseURL:        strings.TrimRight(baseURL, "/"),
	}
}

// CreateQRRequest 创建二维码请求
type CreateQRRequest struct {
	Name      string `json:"name" binding:"required,max=100" example:"门店菜单"`
	TargetURL string `json:"target_url" binding:"required" example:"example.com/menu"`
}

// UpdateQRRequest 更新二维码请求，未提供的字段保持不变
type UpdateQRRequest struct {
	Name      *string `json:"name"`
	TargetURL *string `json:"target_url"`
	IsActive  *bool   `json:"is_active"`
}

// QRResponse 二维码响应，附带对外跳转地址
type QRResponse struct {
	model.QRRedirect
	RedirectURL string `json:"redirect_url" example:"http://localhost:8080/a1b2c3d4e5"`
}

func (h *QRHandler) toResponse(qr model.QRRedirect) QRResponse {
	return QRResponse{QRRedirect: qr, RedirectURL: h.baseURL + "/" + qr.CodeToken}
}

// normalizeTargetURL 纯语法校验目标地址：缺少协议时默认补 https://，
// 补全后必须能解析为带主机名的 URL，不做任何网络探测。
func normalizeTargetURL(raw string) (string, bool) {
	target := strings.TrimSpace(raw)
	if target == "" {
		return "", false
	}
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = "https://" + target
	}
	parsed, err := url.Parse(target)
	if err != nil || parsed.Host == "" {
		return "", false
	}
	return target, true
}

// CreateQR godoc
// @Summary 创建二维码
// @Description 创建一个新的动态二维码，受订阅套餐配额限制
// @Tags QRCode
// @Security ApiKeyAuth
// @Accept  json
// @Produce  json
// @Param   qrcode  body   CreateQRRequest  true  "二维码信息"
// @Success 201 {object} QRResponse "成功响应"
// @Failure 400 {object} gin.H "请求无效"
// @Failure 403 {object} gin.H "配额已用完"
// @Failure 500 {object} gin.H "服务器内部错误"
// @Router /api/qrcodes [post]
func (h *QRHandler) CreateQR(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req CreateQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求数据: " + err.Error()})
		return
	}

	targetURL, ok := normalizeTargetURL(req.TargetURL)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "目标地址无法解析"})
		return
	}

	// 配额检查，检查与插入不在同一事务内（见 subscription 包说明）
	allowed, limit, err := h.quotaGuard.CanCreate(userID)
	if err != nil {
		zap.S().Errorf("配额检查失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "配额检查失败"})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{
			"error":         "二维码数量已达套餐上限，请升级套餐",
			"limit":         limit.Max,
			"limit_reached": true,
		})
		return
	}

	// 从预生成通道获取码牌；唯一索引兜底，冲突时换新码牌重试
	qr := model.QRRedirect{
		UserID:    userID,
		Name:      req.Name,
		TargetURL: targetURL,
		IsActive:  true,
	}
	var createErr error
	for i := 0; i < 3; i++ {
		qr.CodeToken = h.tokenGenerator.GetToken()
		if createErr = h.db.Create(&qr).Error; createErr == nil {
			break
		}
		zap.S().Warnf("码牌插入冲突，重试: %v", createErr)
	}
	if createErr != nil {
		zap.S().Errorf("创建二维码失败: %v", createErr)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建二维码失败"})
		return
	}

	c.JSON(http.StatusCreated, h.toResponse(qr))
}

// ListQR godoc
// @Summary 获取二维码列表
// @Description 获取当前用户的全部二维码，按创建时间倒序
// @Tags QRCode
// @Security ApiKeyAuth
// @Produce  json
// @Success 200 {array} QRResponse "成功响应"
// @Failure 500 {object} gin.H "服务器内部错误"
// @Router /api/qrcodes [get]
func (h *QRHandler) ListQR(c *gin.Context) {
	userID := c.GetUint("user_id")

	var qrs []model.QRRedirect
	if err := h.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&qrs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取二维码失败"})
		return
	}

	responses := make([]QRResponse, 0, len(qrs))
	for _, qr := range qrs {
		responses = append(responses, h.toResponse(qr))
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateQR godoc
// @Summary 更新二维码
// @Description 修改名称、目标地址或启停状态；码牌和扫码计数不可修改
// @Tags QRCode
// @Security ApiKeyAuth
// @Accept  json
// @Produce  json
// @Param   id      path   int              true  "二维码 ID"
// @Param   qrcode  body   UpdateQRRequest  true  "待更新字段"
// @Success 200 {object} QRResponse "成功响应"
// @Failure 400 {object} gin.H "请求无效"
// @Failure 404 {object} gin.H "二维码不存在"
// @Router /api/qrcodes/{id} [patch]
func (h *QRHandler) UpdateQR(c *gin.Context) {
	userID := c.GetUint("user_id")

	var qr model.QRRedirect
	if err := h.db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&qr).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "二维码不存在"})
		return
	}

	var req UpdateQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求数据: " + err.Error()})
		return
	}

	// 只允许这三个字段变更，code_token 与 scan_count 永不受用户编辑影响
	updates := map[string]interface{}{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "名称不能为空"})
			return
		}
		updates["name"] = *req.Name
	}
	if req.TargetURL != nil {
		targetURL, ok := normalizeTargetURL(*req.TargetURL)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "目标地址无法解析"})
			return
		}
		updates["target_url"] = targetURL
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := h.db.Model(&qr).Updates(updates).Error; err != nil {
			zap.S().Errorf("更新二维码失败: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "更新二维码失败"})
			return
		}
		// 重新读取，带回数据库里的 updated_at
		if err := h.db.First(&qr, qr.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "更新二维码失败"})
			return
		}
	}

	c.JSON(http.StatusOK, h.toResponse(qr))
}

// DeleteQR godoc
// @Summary 删除二维码
// @Description 删除当前用户的一个二维码
// @Tags QRCode
// @Security ApiKeyAuth
// @Produce  json
// @Param   id  path  int  true  "二维码 ID"
// @Success 200 {object} gin.H "成功响应"
// @Failure 404 {object} gin.H "二维码不存在"
// @Router /api/qrcodes/{id} [delete]
func (h *QRHandler) DeleteQR(c *gin.Context) {
	userID := c.GetUint("user_id")

	result := h.db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&model.QRRedirect{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除失败"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "二维码不存在"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
