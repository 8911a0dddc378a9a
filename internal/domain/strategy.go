package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StrategyStatus 策略运行状态
type StrategyStatus string

const (
	StrategyRunning StrategyStatus = "running" // 运行中
	StrategyStopped StrategyStatus = "stopped" // 已停止
	StrategyPaused  StrategyStatus = "paused"  // 已暂停
)

// Strategy 策略领域模型
// 列表在刷新时整体替换，状态通过定向操作切换
type Strategy struct {
	ID          string          `json:"id"`          // 策略 ID
	Name        string          `json:"name"`        // 策略名称
	Status      StrategyStatus  `json:"status"`      // 运行状态
	PnL         decimal.Decimal `json:"pnl"`         // 累计盈亏
	WinRate     float64         `json:"winRate"`     // 胜率
	Trades      int             `json:"trades"`      // 成交笔数
	LastUpdated time.Time       `json:"lastUpdated"` // 最近更新时间
}

// ToggledStatus 返回 running/stopped 的相反状态
// paused 视为未运行，切换后进入 running
func (s Strategy) ToggledStatus() StrategyStatus {
	if s.Status == StrategyRunning {
		return StrategyStopped
	}
	return StrategyRunning
}
