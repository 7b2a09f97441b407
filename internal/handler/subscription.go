package handler

import (
	"net/http"
	"qrlink-platform/internal/model"
	"qrlink-platform/internal/subscription"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubscriptionInfoResponse 当前套餐及配额使用情况
type SubscriptionInfoResponse struct {
	Tier           string  `json:"tier" example:"free"`
	PendingUpgrade *string `json:"pending_upgrade"`
	QRCount        int64   `json:"qr_count" example:"3"`
	QRLimit        int     `json:"qr_limit" example:"5"`
	Unlimited      bool    `json:"unlimited" example:"false"`
	CanCreate      bool    `json:"can_create" example:"true"`
	Remaining      int64   `json:"remaining" example:"2"`
}

// UpgradeRequest 套餐升级请求
type UpgradeRequest struct {
	Action string `json:"action" binding:"required" example:"upgrade"`
	Tier   string `json:"tier" binding:"required" example:"pro"`
}

// GetSubscription godoc
// @Summary 获取订阅信息
// @Description 获取当前用户的套餐、二维码数量和剩余配额
// @Tags Subscription
// @Security ApiKeyAuth
// @Produce  json
// @Success 200 {object} SubscriptionInfoResponse "成功响应"
// @Failure 404 {object} gin.H "用户不存在"
// @Router /api/subscription [get]
func (h *QRHandler) GetSubscription(c *gin.Context) {
	userID := c.GetUint("user_id")

	var user model.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "用户不存在"})
		return
	}

	count, err := h.quotaGuard.OwnedCount(userID)
	if err != nil {
		zap.S().Errorf("统计二维码数量失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取订阅信息失败"})
		return
	}

	limit := subscription.LimitFor(user.SubscriptionTier)
	resp := SubscriptionInfoResponse{
		Tier:           user.SubscriptionTier,
		PendingUpgrade: user.PendingUpgrade,
		QRCount:        count,
		QRLimit:        limit.Max,
		Unlimited:      limit.Unlimited,
		CanCreate:      limit.Unlimited || count < int64(limit.Max),
	}
	if !limit.Unlimited {
		if remaining := int64(limit.Max) - count; remaining > 0 {
			resp.Remaining = remaining
		}
	}
	c.JSON(http.StatusOK, resp)
}

// UpgradeSubscription godoc
// @Summary 升级订阅套餐
// @Description 用户确认支付后手动升级套餐（无支付网关校验）
// @Tags Subscription
// @Security ApiKeyAuth
// @Accept  json
// @Produce  json
// @Param   upgrade  body   UpgradeRequest  true  "升级信息"
// @Success 200 {object} gin.H "成功响应"
// @Failure 400 {object} gin.H "请求无效"
// @Router /api/subscription [post]
func (h *QRHandler) UpgradeSubscription(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req UpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求数据: " + err.Error()})
		return
	}

	if req.Action != "upgrade" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不支持的操作"})
		return
	}
	if !subscription.IsUpgradeTier(req.Tier) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的套餐"})
		return
	}

	updates := map[string]interface{}{
		"subscription_tier": req.Tier,
		"pending_upgrade":   nil,
		"updated_at":        time.Now(),
	}
	if err := h.db.Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		zap.S().Errorf("升级套餐失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "升级套餐失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tier": req.Tier})
}
