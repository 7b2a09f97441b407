package subscription

import (
	"fmt"
	"qrlink-platform/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestLimitFor(t *testing.T) {
	assert.Equal(t, Limit{Max: 5}, LimitFor(TierFree))
	assert.Equal(t, Limit{Max: 100}, LimitFor(TierPro))
	assert.Equal(t, Limit{Unlimited: true}, LimitFor(TierUltimate))
	// 未知套餐按 free 处理
	assert.Equal(t, Limit{Max: 5}, LimitFor("platinum"))
	assert.Equal(t, Limit{Max: 5}, LimitFor(""))
}

func TestIsUpgradeTier(t *testing.T) {
	assert.True(t, IsUpgradeTier(TierPro))
	assert.True(t, IsUpgradeTier(TierUltimate))
	assert.False(t, IsUpgradeTier(TierFree))
	assert.False(t, IsUpgradeTier("platinum"))
}

func setupGuardDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:guard_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.QRRedirect{}))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, tier string, qrCount int) model.User {
	t.Helper()
	user := model.User{Email: email, PasswordHash: "x", SubscriptionTier: tier, IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	for i := 0; i < qrCount; i++ {
		require.NoError(t, db.Create(&model.QRRedirect{
			UserID:    user.ID,
			CodeToken: fmt.Sprintf("%s%08d", email[:2], i),
			Name:      "测试",
			TargetURL: "https://example.com",
			IsActive:  true,
		}).Error)
	}
	return user
}

// TestGuard_CanCreate free 套餐满 5 个后拒绝，且各用户独立计数
func TestGuard_CanCreate(t *testing.T) {
	db := setupGuardDB(t)
	guard := NewGuard(db)

	full := seedUser(t, db, "full@example.com", TierFree, 5)
	roomy := seedUser(t, db, "roomy@example.com", TierFree, 2)

	allowed, limit, err := guard.CanCreate(full.ID)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 5, limit.Max)

	allowed, _, err = guard.CanCreate(roomy.ID)
	require.NoError(t, err)
	assert.True(t, allowed, "其他用户的记录数不应影响本用户配额")
}

// TestGuard_Unlimited ultimate 套餐无论持有多少都允许创建
func TestGuard_Unlimited(t *testing.T) {
	db := setupGuardDB(t)
	guard := NewGuard(db)

	user := seedUser(t, db, "ul@example.com", TierUltimate, 150)

	allowed, limit, err := guard.CanCreate(user.ID)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.True(t, limit.Unlimited)
}

// TestGuard_UnknownUser 用户不存在时返回错误
func TestGuard_UnknownUser(t *testing.T) {
	db := setupGuardDB(t)
	guard := NewGuard(db)

	_, _, err := guard.CanCreate(99999)
	assert.Error(t, err)
}
