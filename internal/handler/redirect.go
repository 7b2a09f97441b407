package handler

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"qrlink-platform/internal/model"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// resolveOutcome 码牌解析结果
type resolveOutcome int

const (
	outcomeResolved resolveOutcome = iota
	outcomeNotFound
	outcomeBlocked
)

// scanMeta 扫码请求的元数据，进入后台记录前先从请求中拷贝出来
type scanMeta struct {
	UserAgent string
	Referer   string
	ClientIP  string
}

// resolve 在注册表中精确匹配码牌并做策略判定。
// 只读不写，目标地址在这里不做任何格式或可达性校验。
func (h *QRHandler) resolve(token string) (resolveOutcome, *model.QRRedirect, error) {
	var qr model.QRRedirect
	err := h.db.Where("code_token = ?", token).First(&qr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return outcomeNotFound, nil, nil
	}
	if err != nil {
		return outcomeNotFound, nil, err
	}
	if !qr.IsActive {
		return outcomeBlocked, &qr, nil
	}
	return outcomeResolved, &qr, nil
}

// Redirect godoc
// @Summary 扫码跳转
// @Description 解析二维码码牌并跳转到当前目标地址
// @Tags Redirect
// @Param code path string true "码牌"
// @Success 302 "跳转到目标地址或结果页"
// @Router /{code} [get]
func (h *QRHandler) Redirect(c *gin.Context) {
	token := c.Param("code")

	outcome, qr, err := h.resolve(token)
	if err != nil {
		zap.S().Errorf("解析码牌失败: %v", err)
		c.Redirect(http.StatusFound, "/error")
		return
	}

	switch outcome {
	case outcomeNotFound:
		c.Redirect(http.StatusFound, "/not-found")
	case outcomeBlocked:
		c.Redirect(http.StatusFound, "/inactive")
	default:
		// 先拷贝请求元数据再异步落库，跳转响应不等待任何写入
		meta := scanMeta{
			UserAgent: c.Request.UserAgent(),
			Referer:   c.Request.Referer(),
			ClientIP:  c.ClientIP(),
		}
		go h.recordScan(qr.ID, meta)
		c.Redirect(http.StatusFound, qr.TargetURL)
	}
}

// recordScan 写入扫码明细并递增计数。
// 在后台 goroutine 中执行，任何失败只记日志，绝不影响已发出的跳转，也不重试。
func (h *QRHandler) recordScan(qrID uint, meta scanMeta) {
	defer func() {
		if r := recover(); r != nil {
			zap.S().Errorf("扫码记录任务 panic: %v", r)
		}
	}()

	record := model.ScanRecord{
		QRRedirectID: qrID,
		UserAgent:    meta.UserAgent,
		Referer:      meta.Referer,
		IPHash:       hashClientIP(meta.ClientIP),
		ScannedAt:    time.Now(),
	}
	if err := h.db.Create(&record).Error; err != nil {
		zap.S().Errorf("写入扫码明细失败: %v", err)
	}

	// 计数递增交给数据库原子完成，并发扫码不会丢计数
	if err := h.db.Model(&model.QRRedirect{}).
		Where("id = ?", qrID).
		UpdateColumn("scan_count", gorm.Expr("scan_count + 1")).Error; err != nil {
		zap.S().Errorf("递增扫码计数失败: %v", err)
	}
}

// hashClientIP 对客户端地址做单向摘要并截断，不可逆，绝不保存原始地址
func hashClientIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])[:16]
}

// IndexPage 首页
func (h *QRHandler) IndexPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

// NotFoundPage 码牌不存在的结果页
func (h *QRHandler) NotFoundPage(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found.html", nil)
}

// InactivePage 码牌已被停用的结果页
func (h *QRHandler) InactivePage(c *gin.Context) {
	c.HTML(http.StatusOK, "inactive.html", nil)
}

// ErrorPage 通用错误结果页
func (h *QRHandler) ErrorPage(c *gin.Context) {
	c.HTML(http.StatusOK, "error.html", nil)
}

// HealthCheck 健康检查
func (h *QRHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
}
