package store

import (
	"sort"
	"time"

	"github.com/tradedash/godash/internal/domain"
)

// maxNotifications 通知列表上限，超出的最旧条目直接丢弃
const maxNotifications = 50

// Reduce 纯函数：(当前状态, 动作) -> 下一个状态
// 不做 I/O，不修改传入的状态；只有被改动的切片会重新分配（切片级 copy-on-write）
// now 用于数据变更成功时刷新 LastUpdated；UI 信号（loading/error/范围选择）不刷新
func Reduce(state AccountState, action Action, now time.Time) AccountState {
	switch a := action.(type) {
	case ReplaceSlice:
		return reduceReplaceSlice(state, a, now)

	case UpsertPosition:
		next := state
		next.Positions = upsertPosition(state.Positions, a.Position)
		next.LastUpdated = now
		return next

	case UpsertOrder:
		next := state
		next.Orders = upsertOrder(state.Orders, a.Order)
		next.LastUpdated = now
		return next

	case UpsertTrade:
		next := state
		next.Trades = upsertTrade(state.Trades, a.Trade)
		next.LastUpdated = now
		return next

	case SetRisk:
		next := state
		next.Risk = a.Risk
		next.LastUpdated = now
		return next

	case AddNotification:
		next := state
		next.Notifications = prependNotification(state.Notifications, a.Notification)
		next.LastUpdated = now
		return next

	case MarkNotificationRead:
		idx := -1
		for i, n := range state.Notifications {
			if n.ID == a.ID {
				idx = i
				break
			}
		}
		// ID 不存在：返回原状态（真 no-op，不刷新 LastUpdated）
		if idx < 0 {
			return state
		}
		next := state
		list := make([]domain.Notification, len(state.Notifications))
		copy(list, state.Notifications)
		list[idx].Read = true
		next.Notifications = list
		next.LastUpdated = now
		return next

	case SetLoading:
		next := state
		next.Loading = a.Loading
		return next

	case SetError:
		next := state
		next.Error = a.Message
		return next

	case SetPerformanceRange:
		next := state
		next.PerformanceRange = a.Range
		return next

	case SetAssetHistoryRange:
		next := state
		next.AssetHistoryRange = a.Range
		return next

	default:
		// 未知动作直接忽略，store 永不报错
		return state
	}
}

// reduceReplaceSlice 整体替换一个命名切片
// Value 类型与资源不匹配时忽略该动作
func reduceReplaceSlice(state AccountState, a ReplaceSlice, now time.Time) AccountState {
	next := state
	switch a.Resource {
	case ResourceBalances:
		v, ok := a.Value.([]domain.Balance)
		if !ok {
			return state
		}
		next.Balances = v
	case ResourcePositions:
		v, ok := a.Value.([]domain.Position)
		if !ok {
			return state
		}
		next.Positions = v
	case ResourceOrders:
		v, ok := a.Value.([]domain.Order)
		if !ok {
			return state
		}
		next.Orders = v
	case ResourceTrades:
		v, ok := a.Value.([]domain.Trade)
		if !ok {
			return state
		}
		next.Trades = v
	case ResourcePerformance:
		v, ok := a.Value.(domain.PerformanceMetrics)
		if !ok {
			return state
		}
		next.Performance = v
	case ResourceAssetHistory:
		v, ok := a.Value.([]domain.AssetHistoryPoint)
		if !ok {
			return state
		}
		next.AssetHistory = v
	case ResourceTradeStats:
		v, ok := a.Value.(domain.TradeStatistics)
		if !ok {
			return state
		}
		next.TradeStats = v
	case ResourceStrategies:
		v, ok := a.Value.([]domain.Strategy)
		if !ok {
			return state
		}
		next.Strategies = v
	case ResourceRisk:
		v, ok := a.Value.(domain.RiskMetrics)
		if !ok {
			return state
		}
		next.Risk = v
	case ResourceNotifications:
		v, ok := a.Value.([]domain.Notification)
		if !ok {
			return state
		}
		next.Notifications = v
	default:
		return state
	}
	next.LastUpdated = now
	return next
}

// upsertPosition 按 Symbol 替换持仓，不存在则追加
func upsertPosition(positions []domain.Position, p domain.Position) []domain.Position {
	out := make([]domain.Position, len(positions))
	copy(out, positions)
	for i := range out {
		if out[i].Symbol == p.Symbol {
			out[i] = p
			return out
		}
	}
	return append(out, p)
}

// upsertOrder 去掉同 ID 旧条目，前插新条目，整体按时间降序重排
// 每次事件 O(n log n)，n 受上游分页语义约束；换来集合对消费方永远有序
func upsertOrder(orders []domain.Order, o domain.Order) []domain.Order {
	out := make([]domain.Order, 0, len(orders)+1)
	out = append(out, o)
	for _, ex := range orders {
		if ex.ID != o.ID {
			out = append(out, ex)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// upsertTrade 与 upsertOrder 同语义
func upsertTrade(trades []domain.Trade, t domain.Trade) []domain.Trade {
	out := make([]domain.Trade, 0, len(trades)+1)
	out = append(out, t)
	for _, ex := range trades {
		if ex.ID != t.ID {
			out = append(out, ex)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// prependNotification 前插通知并截断到上限
func prependNotification(list []domain.Notification, n domain.Notification) []domain.Notification {
	out := make([]domain.Notification, 0, len(list)+1)
	out = append(out, n)
	out = append(out, list...)
	if len(out) > maxNotifications {
		out = out[:maxNotifications]
	}
	return out
}
