package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RiskEvent 风控事件（由上游风控引擎产生）
type RiskEvent struct {
	ID        string    `json:"id"`        // 事件 ID
	Type      string    `json:"type"`      // 事件类型
	Message   string    `json:"message"`   // 事件描述
	Timestamp time.Time `json:"timestamp"` // 发生时间
}

// RiskAlert 风控告警
type RiskAlert struct {
	ID       string `json:"id"`       // 告警 ID
	Level    string `json:"level"`    // 告警级别
	Message  string `json:"message"`  // 告警内容
	Resolved bool   `json:"resolved"` // 是否已解除
}

// RiskMetrics 账户风控指标（单例，整体替换）
type RiskMetrics struct {
	CurrentExposure   decimal.Decimal `json:"currentExposure"`   // 当前敞口
	MaxExposure       decimal.Decimal `json:"maxExposure"`       // 敞口上限
	Leverage          float64         `json:"leverage"`          // 当前杠杆
	MaxLeverage       float64         `json:"maxLeverage"`       // 杠杆上限
	MarginUtilization float64         `json:"marginUtilization"` // 保证金使用率
	VaR               decimal.Decimal `json:"var"`               // 在险价值
	RiskEvents        []RiskEvent     `json:"riskEvents"`        // 近期风控事件
	Alerts            []RiskAlert     `json:"alerts"`            // 活跃告警
}
