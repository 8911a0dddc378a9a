package store

import (
	"github.com/tradedash/godash/internal/domain"
)

// Resource 账户状态里可独立替换的命名切片
type Resource string

const (
	ResourceBalances      Resource = "balances"
	ResourcePositions     Resource = "positions"
	ResourceOrders        Resource = "orders"
	ResourceTrades        Resource = "trades"
	ResourcePerformance   Resource = "performance"
	ResourceAssetHistory  Resource = "asset_history"
	ResourceTradeStats    Resource = "trade_stats"
	ResourceStrategies    Resource = "strategies"
	ResourceRisk          Resource = "risk"
	ResourceNotifications Resource = "notifications"
)

// AllResources 全量刷新时遍历的资源集合
var AllResources = []Resource{
	ResourceBalances,
	ResourcePositions,
	ResourceOrders,
	ResourceTrades,
	ResourcePerformance,
	ResourceAssetHistory,
	ResourceTradeStats,
	ResourceStrategies,
	ResourceRisk,
	ResourceNotifications,
}

// Action 状态仓库的变更动作（tagged union）
type Action interface {
	actionName() string
}

// ReplaceSlice 整体替换一个命名切片（刷新操作使用）
// Value 的类型必须与资源匹配，否则该动作被忽略
type ReplaceSlice struct {
	Resource Resource
	Value    any
}

// UpsertPosition 按 Symbol 替换或追加持仓
type UpsertPosition struct {
	Position domain.Position
}

// UpsertOrder 按 ID 去重后前插订单，并重排整个集合（按时间降序）
type UpsertOrder struct {
	Order domain.Order
}

// UpsertTrade 按 ID 去重后前插成交，并重排整个集合（按时间降序）
type UpsertTrade struct {
	Trade domain.Trade
}

// SetRisk 整体替换风控指标
type SetRisk struct {
	Risk domain.RiskMetrics
}

// AddNotification 前插通知，截断到最近 50 条
type AddNotification struct {
	Notification domain.Notification
}

// MarkNotificationRead 按 ID 原位翻转已读标记；ID 不存在时为 no-op
type MarkNotificationRead struct {
	ID string
}

// SetLoading 设置加载标记（与数据切片正交的 UI 信号）
type SetLoading struct {
	Loading bool
}

// SetError 设置错误信息，空串表示清除
type SetError struct {
	Message string
}

// SetPerformanceRange 设置业绩视图的时间范围选择
type SetPerformanceRange struct {
	Range domain.PerformanceRange
}

// SetAssetHistoryRange 设置资产历史视图的时间范围选择
type SetAssetHistoryRange struct {
	Range domain.HistoryRange
}

func (ReplaceSlice) actionName() string         { return "replace_slice" }
func (UpsertPosition) actionName() string       { return "upsert_position" }
func (UpsertOrder) actionName() string          { return "upsert_order" }
func (UpsertTrade) actionName() string          { return "upsert_trade" }
func (SetRisk) actionName() string              { return "set_risk" }
func (AddNotification) actionName() string      { return "add_notification" }
func (MarkNotificationRead) actionName() string { return "mark_notification_read" }
func (SetLoading) actionName() string           { return "set_loading" }
func (SetError) actionName() string             { return "set_error" }
func (SetPerformanceRange) actionName() string  { return "set_performance_range" }
func (SetAssetHistoryRange) actionName() string { return "set_asset_history_range" }

// Name 返回动作名（用于日志和指标标签）
func Name(a Action) string {
	if a == nil {
		return "nil"
	}
	return a.actionName()
}
