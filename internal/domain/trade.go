package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade 成交记录领域模型
// 按 ID upsert，集合始终按 Timestamp 降序
// OrderID 指向所属订单，但不强制外键（成交可能先于订单到达）
type Trade struct {
	ID        string          `json:"id"`                 // 成交 ID
	OrderID   string          `json:"orderId"`            // 所属订单 ID
	Timestamp time.Time       `json:"timestamp"`          // 成交时间
	Symbol    string          `json:"symbol"`             // 交易对
	Side      Side            `json:"side"`               // 买卖方向
	Price     decimal.Decimal `json:"price"`              // 成交价格
	Quantity  decimal.Decimal `json:"quantity"`           // 成交数量
	Fee       decimal.Decimal `json:"fee"`                // 手续费
	Strategy  string          `json:"strategy,omitempty"` // 关联策略（可选）
}

// Notional 返回成交金额（价格 * 数量）
func (t Trade) Notional() decimal.Decimal {
	return t.Price.Mul(t.Quantity)
}

// TradeStatistics 成交统计（由服务端聚合，客户端视为不透明载荷）
type TradeStatistics struct {
	TotalTrades  int             `json:"totalTrades"`  // 成交笔数
	TotalVolume  decimal.Decimal `json:"totalVolume"`  // 总成交额
	TotalFees    decimal.Decimal `json:"totalFees"`    // 总手续费
	AvgTradeSize decimal.Decimal `json:"avgTradeSize"` // 平均单笔成交额
	Instruments  []string        `json:"instruments"`  // 涉及的交易对
}
