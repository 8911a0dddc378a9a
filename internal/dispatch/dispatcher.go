// Package dispatch 把实时消息逐条映射成 store 动作
package dispatch

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/tradedash/godash/internal/domain"
	ws "github.com/tradedash/godash/internal/infrastructure/websocket"
	"github.com/tradedash/godash/internal/metrics"
	"github.com/tradedash/godash/internal/store"
	"github.com/tradedash/godash/pkg/logger"
)

// Dispatcher 无状态路由表：一条消息对应恰好一个 store 动作
// 未识别的消息类型直接忽略（对未来消息类型前向兼容）
type Dispatcher struct {
	store   *store.Store
	metrics *metrics.Metrics
	log     *logrus.Entry
}

// New 创建调度器；m 可为 nil
func New(s *store.Store, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		store:   s,
		metrics: m,
		log:     logger.WithField("component", "dispatch"),
	}
}

// HandleMessage 路由一条实时消息
// 载荷解码失败时记日志并丢弃，store 不受影响
func (d *Dispatcher) HandleMessage(msg ws.Message) {
	switch msg.Type {
	case ws.MessageBalanceUpdate:
		var balances []domain.Balance
		if !d.decode(msg, &balances) {
			return
		}
		d.apply(msg, store.ReplaceSlice{Resource: store.ResourceBalances, Value: balances})

	case ws.MessagePositionUpdate:
		var position domain.Position
		if !d.decode(msg, &position) {
			return
		}
		d.apply(msg, store.UpsertPosition{Position: position})

	case ws.MessageOrderUpdate:
		var order domain.Order
		if !d.decode(msg, &order) {
			return
		}
		d.apply(msg, store.UpsertOrder{Order: order})

	case ws.MessageTradeUpdate:
		var trade domain.Trade
		if !d.decode(msg, &trade) {
			return
		}
		d.apply(msg, store.UpsertTrade{Trade: trade})

	case ws.MessageRiskUpdate:
		var risk domain.RiskMetrics
		if !d.decode(msg, &risk) {
			return
		}
		d.apply(msg, store.SetRisk{Risk: risk})

	case ws.MessageNotification:
		var notification domain.Notification
		if !d.decode(msg, &notification) {
			return
		}
		d.apply(msg, store.AddNotification{Notification: notification})

	default:
		d.log.Debugf("忽略未识别的消息类型: %s", msg.Type)
		d.metrics.IncRealtimeDropped()
	}
}

// decode 解码消息载荷，失败时丢弃该消息
func (d *Dispatcher) decode(msg ws.Message, out any) bool {
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		d.log.Warnf("解码 %s 载荷失败，丢弃: %v", msg.Type, err)
		d.metrics.IncRealtimeDropped()
		return false
	}
	return true
}

// apply 把动作派发到 store 并记指标
func (d *Dispatcher) apply(msg ws.Message, action store.Action) {
	d.store.Dispatch(action)
	d.metrics.IncRealtimeMessage(string(msg.Type))
	d.metrics.IncAction(store.Name(action))
}
