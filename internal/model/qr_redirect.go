package model

import (
	"time"
)

// QRRedirect 动态二维码模型
// CodeToken 是印刷在二维码里的公开标识，创建后不可变更；
// TargetURL 是扫码后跳转的目标地址，可随时修改而无需重印二维码。
type QRRedirect struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CodeToken string    `gorm:"size:10;uniqueIndex;not null" json:"code_token"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	TargetURL string    `gorm:"type:text;not null" json:"target_url"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	ScanCount int64     `gorm:"default:0" json:"scan_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (QRRedirect) TableName() string {
	return "qr_redirects"
}
