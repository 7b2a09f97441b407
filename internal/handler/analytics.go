package handler

import (
	"net/http"
	"qrlink-platform/internal/model"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// QRAnalyticsResponse 单个二维码的扫码分析
type QRAnalyticsResponse struct {
	TotalScans  int                `json:"total_scans"`
	DailyScans  map[string]int64   `json:"daily_scans"`
	Devices     map[string]int64   `json:"devices"`
	RecentScans []model.ScanRecord `json:"recent_scans"`
}

// AccountAnalyticsResponse 账户维度的扫码汇总
type AccountAnalyticsResponse struct {
	TotalQRCodes int64              `json:"total_qr_codes"`
	TotalScans   int64              `json:"total_scans"`
	TopQRCodes   []model.QRRedirect `json:"top_qr_codes"`
}

// deviceFromUserAgent 根据 UA 做粗粒度设备归类
func deviceFromUserAgent(userAgent string) string {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad"):
		return "iOS"
	case strings.Contains(ua, "mobile"):
		return "Mobile"
	case strings.Contains(ua, "windows") || strings.Contains(ua, "mac") || strings.Contains(ua, "linux"):
		return "Desktop"
	default:
		return "Unknown"
	}
}

// GetAnalytics godoc
// @Summary 获取扫码分析
// @Description 带 qr_id 时返回单个二维码在时间窗口内的明细分析，否则返回账户汇总
// @Tags Analytics
// @Security ApiKeyAuth
// @Produce  json
// @Param   qr_id  query  int  false  "二维码 ID"
// @Param   days   query  int  false  "统计天数，默认 30"
// @Success 200 {object} QRAnalyticsResponse "成功响应"
// @Failure 404 {object} gin.H "二维码不存在"
// @Router /api/analytics [get]
func (h *QRHandler) GetAnalytics(c *gin.Context) {
	userID := c.GetUint("user_id")

	qrID := c.Query("qr_id")
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		days = 30
	}
	startDate := time.Now().AddDate(0, 0, -days)

	if qrID == "" {
		h.accountAnalytics(c, userID)
		return
	}

	// 先确认二维码属于当前用户
	var qr model.QRRedirect
	if err := h.db.Where("id = ? AND user_id = ?", qrID, userID).First(&qr).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "二维码不存在"})
		return
	}

	var scans []model.ScanRecord
	if err := h.db.Where("qr_redirect_id = ? AND scanned_at >= ?", qr.ID, startDate).
		Order("scanned_at DESC").Find(&scans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取扫码明细失败"})
		return
	}

	// 按天和设备聚合
	dailyScans := make(map[string]int64)
	devices := make(map[string]int64)
	for _, scan := range scans {
		day := scan.ScannedAt.Format("2006-01-02")
		dailyScans[day]++
		devices[deviceFromUserAgent(scan.UserAgent)]++
	}

	recent := scans
	if len(recent) > 10 {
		recent = recent[:10]
	}

	c.JSON(http.StatusOK, QRAnalyticsResponse{
		TotalScans:  len(scans),
		DailyScans:  dailyScans,
		Devices:     devices,
		RecentScans: recent,
	})
}

// accountAnalytics 返回当前用户所有二维码的汇总和扫码量前五名
func (h *QRHandler) accountAnalytics(c *gin.Context, userID uint) {
	var qrs []model.QRRedirect
	if err := h.db.Where("user_id = ?", userID).Find(&qrs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取二维码失败"})
		return
	}

	var totalScans int64
	for _, qr := range qrs {
		totalScans += qr.ScanCount
	}

	sort.Slice(qrs, func(i, j int) bool { return qrs[i].ScanCount > qrs[j].ScanCount })
	top := qrs
	if len(top) > 5 {
		top = top[:5]
	}
	if top == nil {
		top = []model.QRRedirect{}
	}

	c.JSON(http.StatusOK, AccountAnalyticsResponse{
		TotalQRCodes: int64(len(qrs)),
		TotalScans:   totalScans,
		TopQRCodes:   top,
	})
}

// GetPlatformStats godoc
// @Summary 平台统计
// @Description 全站二维码与扫码总量，仅管理员可见
// @Tags Admin
// @Security ApiKeyAuth
// @Produce  json
// @Success 200 {object} gin.H "成功响应"
// @Router /api/admin/stats [get]
func (h *QRHandler) GetPlatformStats(c *gin.Context) {
	var stats struct {
		TotalQRCodes  int64 `json:"total_qr_codes"`
		TotalScans    int64 `json:"total_scans"`
		ActiveQRCodes int64 `json:"active_qr_codes"`
	}
	h.db.Model(&model.QRRedirect{}).Count(&stats.TotalQRCodes)
	h.db.Model(&model.QRRedirect{}).Select("COALESCE(SUM(scan_count), 0)").Scan(&stats.TotalScans)
	h.db.Model(&model.QRRedirect{}).Where("is_active = ?", true).Count(&stats.ActiveQRCodes)
	c.JSON(http.StatusOK, stats)
}
