package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PerformanceRange 业绩视图的时间范围
type PerformanceRange string

const (
	RangeToday PerformanceRange = "TODAY"
	RangeWeek  PerformanceRange = "WEEK"
	RangeMonth PerformanceRange = "MONTH"
	RangeYear  PerformanceRange = "YEAR"
	RangeAll   PerformanceRange = "ALL"
)

// HistoryRange 资产历史视图的时间范围
type HistoryRange string

const (
	History1D  HistoryRange = "1D"
	History1W  HistoryRange = "1W"
	History1M  HistoryRange = "1M"
	History3M  HistoryRange = "3M"
	History6M  HistoryRange = "6M"
	History1Y  HistoryRange = "1Y"
	HistoryAll HistoryRange = "ALL"
)

// PerformanceMetrics 交易业绩指标（由服务端聚合，客户端不重新计算）
type PerformanceMetrics struct {
	TotalTrades    int             `json:"totalTrades"`            // 总成交笔数
	WinningTrades  int             `json:"winningTrades"`          // 盈利笔数
	LosingTrades   int             `json:"losingTrades"`           // 亏损笔数
	WinRate        float64         `json:"winRate"`                // 胜率
	TotalPnL       decimal.Decimal `json:"totalPnl"`               // 总盈亏
	TotalReturnPct float64         `json:"totalReturnPct"`         // 总收益率
	AverageWin     decimal.Decimal `json:"averageWin"`             // 平均盈利
	AverageLoss    decimal.Decimal `json:"averageLoss"`            // 平均亏损
	ProfitFactor   float64         `json:"profitFactor"`           // 盈利因子
	MaxDrawdown    decimal.Decimal `json:"maxDrawdown"`            // 最大回撤金额
	MaxDrawdownPct float64         `json:"maxDrawdownPct"`         // 最大回撤百分比
	SharpeRatio    float64         `json:"sharpeRatio,omitempty"`  // 夏普比率（可选）
	SortinoRatio   float64         `json:"sortinoRatio,omitempty"` // 索提诺比率（可选）
	StartDate      time.Time       `json:"startDate"`              // 统计窗口起点
	EndDate        time.Time       `json:"endDate"`                // 统计窗口终点
}

// AssetHistoryPoint 资产历史曲线上的一个采样点
type AssetHistoryPoint struct {
	Timestamp  time.Time       `json:"timestamp"`  // 采样时间
	TotalValue decimal.Decimal `json:"totalValue"` // 账户总值（USD）
	PnL        decimal.Decimal `json:"pnl"`        // 相对起点的盈亏
}
