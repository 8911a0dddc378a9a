package domain

import (
	"github.com/shopspring/decimal"
)

// Balance 单个资产的账户余额
// 余额列表整体替换，不做按资产的 upsert
type Balance struct {
	Asset      string          `json:"asset"`                // 资产符号（如 BTC、USDT）
	Available  decimal.Decimal `json:"available"`            // 可用余额
	Hold       decimal.Decimal `json:"hold"`                 // 冻结余额
	USDValue   decimal.Decimal `json:"usdValue"`             // 折合 USD 价值
	Allocation float64         `json:"allocation,omitempty"` // 占比 [0,1]（可选）
}

// Total 返回可用 + 冻结的总余额
func (b Balance) Total() decimal.Decimal {
	return b.Available.Add(b.Hold)
}
