package subscription

// 订阅套餐，闭集
const (
	TierFree     = "free"
	TierPro      = "pro"
	TierUltimate = "ultimate"
)

// Limit 套餐对应的二维码持有上限
// 用显式的 Unlimited 标志代替魔法值 -1
type Limit struct {
	Max       int
	Unlimited bool
}

var tierLimits = map[string]Limit{
	TierFree:     {Max: 5},
	TierPro:      {Max: 100},
	TierUltimate: {Unlimited: true},
}

// LimitFor 返回套餐的配额，未知套餐按 free 处理
func LimitFor(tier string) Limit {
	if limit, ok := tierLimits[tier]; ok {
		return limit
	}
	return tierLimits[TierFree]
}

// IsUpgradeTier 判断是否为可升级到的付费套餐
func IsUpgradeTier(tier string) bool {
	return tier == TierPro || tier == TierUltimate
}
