package domain

import "time"

// OrderQuery 订单查询过滤条件
// 字段为零值时表示不过滤
type OrderQuery struct {
	Status OrderStatus // 按状态过滤
	Symbol string      // 按交易对过滤
	Side   Side        // 按方向过滤
	Start  time.Time   // 起始时间（含）
	End    time.Time   // 结束时间（含）
}

// TradeQuery 成交查询过滤条件，形状与订单过滤一致
type TradeQuery struct {
	Symbol string    // 按交易对过滤
	Side   Side      // 按方向过滤
	Start  time.Time // 起始时间（含）
	End    time.Time // 结束时间（含）
}

// MatchesOrder 检查订单是否满足过滤条件
func (q OrderQuery) MatchesOrder(o Order) bool {
	if q.Status != "" && o.Status != q.Status {
		return false
	}
	if q.Symbol != "" && o.Symbol != q.Symbol {
		return false
	}
	if q.Side != "" && o.Side != q.Side {
		return false
	}
	if !q.Start.IsZero() && o.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && o.Timestamp.After(q.End) {
		return false
	}
	return true
}

// MatchesTrade 检查成交是否满足过滤条件
func (q TradeQuery) MatchesTrade(t Trade) bool {
	if q.Symbol != "" && t.Symbol != q.Symbol {
		return false
	}
	if q.Side != "" && t.Side != q.Side {
		return false
	}
	if !q.Start.IsZero() && t.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && t.Timestamp.After(q.End) {
		return false
	}
	return true
}
