// Package syncer 编排快照拉取与实时流，对外暴露同步操作
package syncer

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tradedash/godash/internal/api"
	"github.com/tradedash/godash/internal/dispatch"
	"github.com/tradedash/godash/internal/domain"
	ws "github.com/tradedash/godash/internal/infrastructure/websocket"
	"github.com/tradedash/godash/internal/metrics"
	"github.com/tradedash/godash/internal/store"
	"github.com/tradedash/godash/pkg/logger"
	"github.com/tradedash/godash/pkg/syncgroup"
)

// Controller 同步控制器
// 启动时并行拉取全部资源快照；实时通道（可选）独立地把增量消息折叠进同一个 store，
// 与刷新操作互不阻塞。到达 store 的顺序即生效顺序（last-write-wins，不做版本比较）
type Controller struct {
	api        *api.Client
	store      *store.Store
	dispatcher *dispatch.Dispatcher
	metrics    *metrics.Metrics
	log        *logrus.Entry

	realtimeCfg ws.Config

	mu        sync.Mutex
	transport *ws.Client
}

// New 创建同步控制器
// realtimeCfg.URL 为空表示不启用实时通道（合法且静默）
func New(apiClient *api.Client, st *store.Store, d *dispatch.Dispatcher, m *metrics.Metrics, realtimeCfg ws.Config) *Controller {
	return &Controller{
		api:         apiClient,
		store:       st,
		dispatcher:  d,
		metrics:     m,
		log:         logger.WithField("component", "syncer"),
		realtimeCfg: realtimeCfg,
	}
}

// Start 接通实时通道（如果配置了推送端地址）
func (c *Controller) Start() {
	if c.realtimeCfg.URL == "" {
		c.log.Info("未配置推送端地址，实时通道不启用")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.transport != nil {
		return
	}

	t := ws.New(c.realtimeCfg)
	t.OnMessage(c.dispatcher.HandleMessage)
	t.OnOpen(func() {
		c.metrics.SetRealtimeConnected(true)
	})
	t.OnClose(func() {
		c.metrics.SetRealtimeConnected(false)
	})
	t.OnError(func(err error) {
		c.metrics.IncRealtimeReconnect()
	})
	c.transport = t
	t.Connect()
}

// Stop 断开实时通道
func (c *Controller) Stop() {
	c.mu.Lock()
	t := c.transport
	c.mu.Unlock()
	if t != nil {
		t.Disconnect()
	}
}

// RealtimeState 返回实时通道状态（未启用时为 Idle）
func (c *Controller) RealtimeState() ws.State {
	c.mu.Lock()
	t := c.transport
	c.mu.Unlock()
	if t == nil {
		return ws.StateIdle
	}
	return t.State()
}

// LoadInitial 初始加载：并行拉取全部资源，各自整体替换对应切片
// 单个资源失败已在数据访问层降级，不会让加载失败；
// 只有降级之前就炸掉的灾难性错误会进入 Error，且 Loading 一定被清除
func (c *Controller) LoadInitial(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Errorf("初始加载异常: %v", r)
			c.store.Dispatch(store.SetError{Message: fmt.Sprintf("initial load failed: %v", r)})
			c.store.Dispatch(store.SetLoading{Loading: false})
		}
	}()

	c.store.Dispatch(store.SetLoading{Loading: true})
	c.fetchAll(ctx)
	c.store.Dispatch(store.SetError{Message: ""})
	c.store.Dispatch(store.SetLoading{Loading: false})
	c.log.Info("初始加载完成")
}

// RefreshAll 并行刷新全部资源
// Loading 标记不做引用计数：两次重叠的 RefreshAll，第一次结束就会清掉标记
// （已知的锐边，按观察到的行为保留）
func (c *Controller) RefreshAll(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Errorf("全量刷新异常: %v", r)
			c.store.Dispatch(store.SetError{Message: fmt.Sprintf("refresh failed: %v", r)})
			c.store.Dispatch(store.SetLoading{Loading: false})
		}
	}()

	c.store.Dispatch(store.SetLoading{Loading: true})
	c.fetchAll(ctx)
	c.store.Dispatch(store.SetLoading{Loading: false})
}

// fetchAll 并行拉取全部资源并替换各自切片
func (c *Controller) fetchAll(ctx context.Context) {
	g := syncgroup.NewSyncGroup()
	for _, res := range store.AllResources {
		res := res
		g.Go(func() {
			c.Refresh(ctx, res)
		})
	}
	g.Wait()
}

// Refresh 用默认参数刷新单个资源
// 订单/成交不带过滤；业绩和资产历史沿用 state 里当前选择的范围
func (c *Controller) Refresh(ctx context.Context, res store.Resource) {
	switch res {
	case store.ResourceBalances:
		c.RefreshBalances(ctx)
	case store.ResourcePositions:
		c.RefreshPositions(ctx)
	case store.ResourceOrders:
		c.RefreshOrders(ctx, domain.OrderQuery{})
	case store.ResourceTrades:
		c.RefreshTrades(ctx, domain.TradeQuery{})
	case store.ResourcePerformance:
		c.RefreshPerformance(ctx, c.store.State().PerformanceRange)
	case store.ResourceAssetHistory:
		c.RefreshAssetHistory(ctx, c.store.State().AssetHistoryRange)
	case store.ResourceTradeStats:
		c.RefreshTradeStatistics(ctx, domain.TradeQuery{})
	case store.ResourceStrategies:
		c.RefreshStrategies(ctx)
	case store.ResourceRisk:
		c.RefreshRisk(ctx)
	case store.ResourceNotifications:
		c.RefreshNotifications(ctx)
	default:
		c.log.Warnf("刷新未知资源: %s", res)
	}
}

// RefreshBalances 刷新余额
func (c *Controller) RefreshBalances(ctx context.Context) {
	c.replaceSlice(store.ResourceBalances, c.api.Balances(ctx))
}

// RefreshPositions 刷新持仓
func (c *Controller) RefreshPositions(ctx context.Context) {
	c.replaceSlice(store.ResourcePositions, c.api.Positions(ctx))
}

// RefreshOrders 按过滤条件刷新订单
func (c *Controller) RefreshOrders(ctx context.Context, q domain.OrderQuery) {
	c.replaceSlice(store.ResourceOrders, c.api.Orders(ctx, q))
}

// RefreshTrades 按过滤条件刷新成交
func (c *Controller) RefreshTrades(ctx context.Context, q domain.TradeQuery) {
	c.replaceSlice(store.ResourceTrades, c.api.Trades(ctx, q))
}

// RefreshPerformance 刷新业绩指标并记录范围选择
func (c *Controller) RefreshPerformance(ctx context.Context, r domain.PerformanceRange) {
	c.store.Dispatch(store.SetPerformanceRange{Range: r})
	c.replaceSlice(store.ResourcePerformance, c.api.Performance(ctx, r))
}

// RefreshAssetHistory 刷新资产历史并记录范围选择
func (c *Controller) RefreshAssetHistory(ctx context.Context, r domain.HistoryRange) {
	c.store.Dispatch(store.SetAssetHistoryRange{Range: r})
	c.replaceSlice(store.ResourceAssetHistory, c.api.AssetHistory(ctx, r))
}

// RefreshTradeStatistics 按过滤条件刷新成交统计
func (c *Controller) RefreshTradeStatistics(ctx context.Context, q domain.TradeQuery) {
	c.replaceSlice(store.ResourceTradeStats, c.api.TradeStatistics(ctx, q))
}

// RefreshStrategies 刷新策略列表
func (c *Controller) RefreshStrategies(ctx context.Context) {
	c.replaceSlice(store.ResourceStrategies, c.api.Strategies(ctx))
}

// RefreshRisk 刷新风控指标
func (c *Controller) RefreshRisk(ctx context.Context) {
	c.replaceSlice(store.ResourceRisk, c.api.Risk(ctx))
}

// RefreshNotifications 刷新通知列表
func (c *Controller) RefreshNotifications(ctx context.Context) {
	c.replaceSlice(store.ResourceNotifications, c.api.Notifications(ctx))
}

// ToggleStrategy 切换策略的 running/stopped 状态
// 用远端返回的权威列表整体替换，不做本地乐观翻转
func (c *Controller) ToggleStrategy(ctx context.Context, id string) error {
	strategy, ok := c.store.State().FindStrategy(id)
	if !ok {
		return errors.Errorf("策略不存在: %s", id)
	}

	next := strategy.ToggledStatus()
	list, err := c.api.SetStrategyStatus(ctx, id, next)
	if err != nil {
		return errors.Wrapf(err, "切换策略 %s 状态失败", id)
	}
	c.replaceSlice(store.ResourceStrategies, list)
	return nil
}

// AcknowledgeNotification 远端确认通知已读，成功后翻转本地已读标记
func (c *Controller) AcknowledgeNotification(ctx context.Context, id string) error {
	if err := c.api.AcknowledgeNotification(ctx, id); err != nil {
		return errors.Wrapf(err, "确认通知 %s 失败", id)
	}
	action := store.MarkNotificationRead{ID: id}
	c.store.Dispatch(action)
	c.metrics.IncAction(store.Name(action))
	return nil
}

// replaceSlice 整体替换一个切片并记指标
func (c *Controller) replaceSlice(res store.Resource, value any) {
	action := store.ReplaceSlice{Resource: res, Value: value}
	c.store.Dispatch(action)
	c.metrics.IncAction(store.Name(action))
}
