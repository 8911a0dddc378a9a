package domain

import "time"

// NotificationSeverity 通知级别
type NotificationSeverity string

const (
	SeverityInfo     NotificationSeverity = "info"     // 提示
	SeverityWarning  NotificationSeverity = "warning"  // 警告
	SeverityCritical NotificationSeverity = "critical" // 严重
)

// Notification 通知领域模型
// 列表只保留最近 50 条，新通知前插，已读标记按 ID 原位翻转
type Notification struct {
	ID        string               `json:"id"`        // 通知 ID
	Category  string               `json:"category"`  // 分类（order/risk/system 等）
	Title     string               `json:"title"`     // 标题
	Message   string               `json:"message"`   // 正文
	Timestamp time.Time            `json:"timestamp"` // 产生时间
	Read      bool                 `json:"read"`      // 是否已读
	Severity  NotificationSeverity `json:"severity"`  // 级别
}
