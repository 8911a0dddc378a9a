package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side 买卖方向
type Side string

const (
	SideBuy  Side = "buy"  // 买入
	SideSell Side = "sell" // 卖出
)

// OrderType 订单类型
type OrderType string

const (
	OrderTypeLimit  OrderType = "limit"  // 限价单
	OrderTypeMarket OrderType = "market" // 市价单
)

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"  // 待处理
	OrderStatusOpen     OrderStatus = "open"     // 开放中
	OrderStatusPartial  OrderStatus = "partial"  // 部分成交
	OrderStatusFilled   OrderStatus = "filled"   // 已成交
	OrderStatusCanceled OrderStatus = "canceled" // 已取消
)

// Order 订单领域模型
// 按 ID upsert，集合始终按 Timestamp 降序
type Order struct {
	ID             string          `json:"id"`             // 订单 ID
	Timestamp      time.Time       `json:"timestamp"`      // 下单时间
	Symbol         string          `json:"symbol"`         // 交易对
	Type           OrderType       `json:"type"`           // 订单类型
	Side           Side            `json:"side"`           // 买卖方向
	Price          decimal.Decimal `json:"price"`          // 委托价格
	Quantity       decimal.Decimal `json:"quantity"`       // 委托数量
	FilledQuantity decimal.Decimal `json:"filledQuantity"` // 已成交数量（<= Quantity）
	Status         OrderStatus     `json:"status"`         // 订单状态
}

// IsActive 检查订单是否仍在撮合中
func (o Order) IsActive() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusOpen || o.Status == OrderStatusPartial
}

// RemainingQuantity 返回未成交数量
func (o Order) RemainingQuantity() decimal.Decimal {
	rest := o.Quantity.Sub(o.FilledQuantity)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}
