package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction 持仓方向
type Direction string

const (
	DirectionLong  Direction = "long"  // 多头
	DirectionShort Direction = "short" // 空头
)

// PnL 盈亏（绝对值 + 百分比）
type PnL struct {
	Value decimal.Decimal `json:"value"` // 盈亏金额
	Pct   float64         `json:"pct"`   // 盈亏百分比
}

// Position 持仓领域模型
// 每个交易对至多一个持仓，按 Symbol upsert
type Position struct {
	Symbol     string          `json:"symbol"`     // 交易对（如 BTC/USDT）
	Direction  Direction       `json:"direction"`  // 持仓方向
	Size       decimal.Decimal `json:"size"`       // 持仓数量
	EntryPrice decimal.Decimal `json:"entryPrice"` // 开仓均价
	MarkPrice  decimal.Decimal `json:"markPrice"`  // 标记价格
	PnL        PnL             `json:"pnl"`        // 未实现盈亏
	Margin     decimal.Decimal `json:"margin"`     // 占用保证金
	UpdatedAt  time.Time       `json:"updatedAt"`  // 最近更新时间
}

// IsLong 检查是否为多头持仓
func (p Position) IsLong() bool {
	return p.Direction == DirectionLong
}
