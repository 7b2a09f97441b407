package subscription

import (
	"qrlink-platform/internal/model"

	"gorm.io/gorm"
)

// Guard 创建配额检查器
type Guard struct {
	db *gorm.DB
}

// NewGuard 创建配额检查器实例
func NewGuard(db *gorm.DB) *Guard {
	return &Guard{db: db}
}

// CanCreate 判断用户是否还能创建新二维码，并返回其套餐配额。
// 注意：这里的计数检查和随后的插入不在同一事务内，
// 并发创建请求可能同时通过检查而略微超出配额，与参考实现保持一致。
func (g *Guard) CanCreate(userID uint) (bool, Limit, error) {
	var user model.User
	if err := g.db.Select("subscription_tier").First(&user, userID).Error; err != nil {
		return false, Limit{}, err
	}

	limit := LimitFor(user.SubscriptionTier)
	if limit.Unlimited {
		return true, limit, nil
	}

	count, err := g.OwnedCount(userID)
	if err != nil {
		return false, limit, err
	}
	return count < int64(limit.Max), limit, nil
}

// OwnedCount 返回用户当前持有的二维码数量
func (g *Guard) OwnedCount(userID uint) (int64, error) {
	var count int64
	err := g.db.Model(&model.QRRedirect{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
