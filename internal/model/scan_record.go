package model

import (
	"time"
)

// ScanRecord 扫码明细，仅追加，不更新不删除。
// IPHash 存储客户端地址的单向摘要截断，绝不落库原始 IP。
type ScanRecord struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	QRRedirectID uint      `gorm:"not null;index" json:"qr_redirect_id"`
	UserAgent    string    `gorm:"type:text" json:"user_agent"`
	Referer      string    `gorm:"type:text" json:"referer"`
	IPHash       string    `gorm:"size:16" json:"ip_hash"`
	ScannedAt    time.Time `gorm:"index" json:"scanned_at"`
}

// TableName 指定表名
func (ScanRecord) TableName() string {
	return "scan_records"
}
