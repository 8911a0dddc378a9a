// Package api 按资源提供类型化的快照拉取
// 任何拉取失败（网络、非 2xx、解码）都不向上抛：记日志并返回该资源的确定性降级值，
// 调用方可以假设拉取在类型层面总是成功。用可用性换严格正确性，保证仪表盘始终可渲染
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tradedash/godash/internal/domain"
	"github.com/tradedash/godash/internal/metrics"
	sdkhttp "github.com/tradedash/godash/pkg/sdk/http"
	"github.com/tradedash/godash/pkg/logger"
)

// Client 数据访问层
type Client struct {
	http    *sdkhttp.Client
	fb      *Fallback
	metrics *metrics.Metrics
	log     *logrus.Entry
}

// NewClient 创建数据访问层
// fb 不可为空：降级数据是本层契约的一部分；m 可为 nil
func NewClient(httpClient *sdkhttp.Client, fb *Fallback, m *metrics.Metrics) *Client {
	return &Client{
		http:    httpClient,
		fb:      fb,
		metrics: m,
		log:     logger.WithField("component", "api"),
	}
}

// fallbackOn 记录一次降级
func (c *Client) fallbackOn(resource string, err error) {
	c.log.Warnf("拉取 %s 失败，使用降级数据: %v", resource, err)
	c.metrics.IncFetch(resource, metrics.OutcomeFallback)
}

// live 记录一次成功拉取
func (c *Client) live(resource string) {
	c.metrics.IncFetch(resource, metrics.OutcomeLive)
}

// Balances 拉取账户余额
func (c *Client) Balances(ctx context.Context) []domain.Balance {
	var out []domain.Balance
	if err := c.http.Get(ctx, "/account/balances", nil, &out); err != nil {
		c.fallbackOn("balances", err)
		return c.fb.Balances()
	}
	c.live("balances")
	return out
}

// Positions 拉取持仓列表
func (c *Client) Positions(ctx context.Context) []domain.Position {
	var out []domain.Position
	if err := c.http.Get(ctx, "/trading/positions", nil, &out); err != nil {
		c.fallbackOn("positions", err)
		return c.fb.Positions()
	}
	c.live("positions")
	return out
}

// Orders 拉取订单列表（支持状态/交易对/方向/时间范围过滤）
func (c *Client) Orders(ctx context.Context, q domain.OrderQuery) []domain.Order {
	var out []domain.Order
	if err := c.http.Get(ctx, "/trading/orders", orderParams(q), &out); err != nil {
		c.fallbackOn("orders", err)
		return c.fb.Orders(q)
	}
	c.live("orders")
	return out
}

// Trades 拉取成交列表（过滤形状与订单一致）
func (c *Client) Trades(ctx context.Context, q domain.TradeQuery) []domain.Trade {
	var out []domain.Trade
	if err := c.http.Get(ctx, "/trading/trades", tradeParams(q), &out); err != nil {
		c.fallbackOn("trades", err)
		return c.fb.Trades(q)
	}
	c.live("trades")
	return out
}

// Performance 拉取业绩指标
func (c *Client) Performance(ctx context.Context, r domain.PerformanceRange) domain.PerformanceMetrics {
	var out domain.PerformanceMetrics
	params := map[string]string{"range": string(r)}
	if err := c.http.Get(ctx, "/trading/performance", params, &out); err != nil {
		c.fallbackOn("performance", err)
		return c.fb.Performance(r)
	}
	c.live("performance")
	return out
}

// AssetHistory 拉取资产历史曲线
func (c *Client) AssetHistory(ctx context.Context, r domain.HistoryRange) []domain.AssetHistoryPoint {
	var out []domain.AssetHistoryPoint
	params := map[string]string{"range": string(r)}
	if err := c.http.Get(ctx, "/account/history", params, &out); err != nil {
		c.fallbackOn("asset_history", err)
		return c.fb.AssetHistory(r)
	}
	c.live("asset_history")
	return out
}

// TradeStatistics 拉取成交统计
func (c *Client) TradeStatistics(ctx context.Context, q domain.TradeQuery) domain.TradeStatistics {
	var out domain.TradeStatistics
	if err := c.http.Get(ctx, "/trading/statistics", tradeParams(q), &out); err != nil {
		c.fallbackOn("trade_stats", err)
		return c.fb.TradeStatistics(q)
	}
	c.live("trade_stats")
	return out
}

// Strategies 拉取策略列表
func (c *Client) Strategies(ctx context.Context) []domain.Strategy {
	var out []domain.Strategy
	if err := c.http.Get(ctx, "/strategies", nil, &out); err != nil {
		c.fallbackOn("strategies", err)
		return c.fb.Strategies()
	}
	c.live("strategies")
	return out
}

// Risk 拉取风控指标
func (c *Client) Risk(ctx context.Context) domain.RiskMetrics {
	var out domain.RiskMetrics
	if err := c.http.Get(ctx, "/risk", nil, &out); err != nil {
		c.fallbackOn("risk", err)
		return c.fb.Risk()
	}
	c.live("risk")
	return out
}

// Notifications 拉取通知列表
func (c *Client) Notifications(ctx context.Context) []domain.Notification {
	var out []domain.Notification
	if err := c.http.Get(ctx, "/notifications", nil, &out); err != nil {
		c.fallbackOn("notifications", err)
		return c.fb.Notifications()
	}
	c.live("notifications")
	return out
}

// SetStrategyStatus 远端切换策略状态，返回权威的策略列表
// 变更操作需要权威响应，失败会返回错误（与拉取的降级语义不同）
func (c *Client) SetStrategyStatus(ctx context.Context, id string, status domain.StrategyStatus) ([]domain.Strategy, error) {
	var out []domain.Strategy
	endpoint := fmt.Sprintf("/strategies/%s/status", id)
	body := map[string]string{"status": string(status)}
	if err := c.http.Post(ctx, endpoint, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AcknowledgeNotification 远端确认一条通知已读
func (c *Client) AcknowledgeNotification(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("/notifications/%s/read", id)
	return c.http.Post(ctx, endpoint, nil, nil)
}

// orderParams 订单过滤条件编码为查询参数
func orderParams(q domain.OrderQuery) map[string]string {
	params := map[string]string{}
	if q.Status != "" {
		params["status"] = string(q.Status)
	}
	if q.Symbol != "" {
		params["symbol"] = q.Symbol
	}
	if q.Side != "" {
		params["side"] = string(q.Side)
	}
	addTimeBounds(params, q.Start, q.End)
	return params
}

// tradeParams 成交过滤条件编码为查询参数
func tradeParams(q domain.TradeQuery) map[string]string {
	params := map[string]string{}
	if q.Symbol != "" {
		params["symbol"] = q.Symbol
	}
	if q.Side != "" {
		params["side"] = string(q.Side)
	}
	addTimeBounds(params, q.Start, q.End)
	return params
}

func addTimeBounds(params map[string]string, start, end time.Time) {
	if !start.IsZero() {
		params["start"] = start.UTC().Format(time.RFC3339)
	}
	if !end.IsZero() {
		params["end"] = end.UTC().Format(time.RFC3339)
	}
}
