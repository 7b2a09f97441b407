package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"qrlink-platform/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedScan(t *testing.T, h *QRHandler, qrID uint, userAgent string, scannedAt time.Time) {
	t.Helper()
	require.NoError(t, h.db.Create(&model.ScanRecord{
		QRRedirectID: qrID,
		UserAgent:    userAgent,
		IPHash:       "0123456789abcdef",
		ScannedAt:    scannedAt,
	}).Error)
}

// TestGetAnalytics_PerQR 单个二维码的天级聚合与设备归类
func TestGetAnalytics_PerQR(t *testing.T) {
	router, db, h, cleanup := setupTest(t)
	defer cleanup()

	token := registerTestUser(t, router, "analytics@example.com")
	var user model.User
	require.NoError(t, db.Where("email = ?", "analytics@example.com").First(&user).Error)

	qr := seedQR(t, h, user.ID, "https://example.com", true)

	now := time.Now()
	seedScan(t, h, qr.ID, "Mozilla/5.0 (Linux; Android 14)", now)
	seedScan(t, h, qr.ID, "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0)", now)
	seedScan(t, h, qr.ID, "Mozilla/5.0 (Windows NT 10.0)", now.AddDate(0, 0, -1))
	// 窗口之外的扫码不应计入
	seedScan(t, h, qr.ID, "Mozilla/5.0 (Linux; Android 14)", now.AddDate(0, 0, -40))

	w := doJSON(router, http.MethodGet, fmt.Sprintf("/api/analytics?qr_id=%d&days=30", qr.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp QRAnalyticsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.TotalScans)
	assert.Equal(t, int64(2), resp.DailyScans[now.Format("2006-01-02")])
	assert.Equal(t, int64(1), resp.Devices["Android"])
	assert.Equal(t, int64(1), resp.Devices["iOS"])
	assert.Equal(t, int64(1), resp.Devices["Desktop"])
	assert.Len(t, resp.RecentScans, 3)
}

// TestGetAnalytics_OtherOwner 不能查看别人的二维码分析
func TestGetAnalytics_OtherOwner(t *testing.T) {
	router, db, h, cleanup := setupTest(t)
	defer cleanup()

	registerTestUser(t, router, "victim@example.com")
	var victim model.User
	require.NoError(t, db.Where("email = ?", "victim@example.com").First(&victim).Error)
	qr := seedQR(t, h, victim.ID, "https://example.com", true)

	snooperToken := registerTestUser(t, router, "snooper@example.com")
	w := doJSON(router, http.MethodGet, fmt.Sprintf("/api/analytics?qr_id=%d", qr.ID), snooperToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestGetAnalytics_Account 账户汇总返回总量和扫码前五名
func TestGetAnalytics_Account(t *testing.T) {
	router, db, h, cleanup := setupTest(t)
	defer cleanup()

	token := registerTestUser(t, router, "summary@example.com")
	var user model.User
	require.NoError(t, db.Where("email = ?", "summary@example.com").First(&user).Error)

	counts := []int64{12, 3, 7, 0, 25, 1, 9}
	for _, n := range counts {
		qr := seedQR(t, h, user.ID, "https://example.com", true)
		require.NoError(t, db.Model(&model.QRRedirect{}).Where("id = ?", qr.ID).
			UpdateColumn("scan_count", n).Error)
	}

	w := doJSON(router, http.MethodGet, "/api/analytics", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp AccountAnalyticsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.TotalQRCodes)
	assert.Equal(t, int64(57), resp.TotalScans)
	require.Len(t, resp.TopQRCodes, 5)
	assert.Equal(t, int64(25), resp.TopQRCodes[0].ScanCount)
	assert.Equal(t, int64(12), resp.TopQRCodes[1].ScanCount)
}
