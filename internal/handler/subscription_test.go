package handler

import (
	"encoding/json"
	"net/http"
	"qrlink-platform/internal/model"
	"qrlink-platform/internal/subscription"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetSubscription 返回套餐、用量和剩余配额
func TestGetSubscription(t *testing.T) {
	router, _, _, cleanup := setupTest(t)
	defer cleanup()

	token := registerTestUser(t, router, "sub@example.com")

	for i := 0; i < 2; i++ {
		w := doJSON(router, http.MethodPost, "/api/qrcodes", token, CreateQRRequest{
			Name:      "配额占用",
			TargetURL: "https://example.com",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(router, http.MethodGet, "/api/subscription", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SubscriptionInfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, subscription.TierFree, resp.Tier)
	assert.Equal(t, int64(2), resp.QRCount)
	assert.Equal(t, 5, resp.QRLimit)
	assert.False(t, resp.Unlimited)
	assert.True(t, resp.CanCreate)
	assert.Equal(t, int64(3), resp.Remaining)
}

// TestUpgradeSubscription 手动确认升级后套餐生效、待升级标记清空
func TestUpgradeSubscription(t *testing.T) {
	router, db, _, cleanup := setupTest(t)
	defer cleanup()

	token := registerTestUser(t, router, "upgrade@example.com")

	pending := subscription.TierPro
	require.NoError(t, db.Model(&model.User{}).Where("email = ?", "upgrade@example.com").
		Update("pending_upgrade", &pending).Error)

	w := doJSON(router, http.MethodPost, "/api/subscription", token, UpgradeRequest{
		Action: "upgrade",
		Tier:   subscription.TierPro,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var user model.User
	require.NoError(t, db.Where("email = ?", "upgrade@example.com").First(&user).Error)
	assert.Equal(t, subscription.TierPro, user.SubscriptionTier)
	assert.Nil(t, user.PendingUpgrade)

	// 升级后配额随之放大
	w = doJSON(router, http.MethodGet, "/api/subscription", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp SubscriptionInfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 100, resp.QRLimit)
}

// TestUpgradeSubscription_InvalidTier 不在闭集内的套餐被拒绝
func TestUpgradeSubscription_InvalidTier(t *testing.T) {
	router, _, _, cleanup := setupTest(t)
	defer cleanup()

	token := registerTestUser(t, router, "badtier@example.com")

	w := doJSON(router, http.MethodPost, "/api/subscription", token, UpgradeRequest{
		Action: "upgrade",
		Tier:   "platinum",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// free 不是升级目标
	w = doJSON(router, http.MethodPost, "/api/subscription", token, UpgradeRequest{
		Action: "upgrade",
		Tier:   subscription.TierFree,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/api/subscription", token, UpgradeRequest{
		Action: "downgrade",
		Tier:   subscription.TierPro,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
