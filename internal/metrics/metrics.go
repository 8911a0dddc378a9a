// Package metrics 同步器的 Prometheus 指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// FetchOutcome 单次资源拉取的结果标签
const (
	OutcomeLive     = "live"     // 远端成功
	OutcomeFallback = "fallback" // 走了降级数据
)

// Metrics 持有同步器全部指标
// 所有记录方法都允许 nil 接收者，组件无需判空
type Metrics struct {
	FetchTotal         *prometheus.CounterVec
	RealtimeMessages   *prometheus.CounterVec
	RealtimeDropped    prometheus.Counter
	RealtimeReconnects prometheus.Counter
	RealtimeConnected  prometheus.Gauge
	ActionsApplied     *prometheus.CounterVec
}

// New 创建并注册全部指标
// reg 为 nil 时使用默认注册表；测试传入独立 Registry 避免重复注册
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		FetchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "godash_fetch_total",
			Help: "Resource fetches by resource and outcome (live/fallback)",
		}, []string{"resource", "outcome"}),

		RealtimeMessages: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "godash_realtime_messages_total",
			Help: "Realtime messages routed to the store, by type",
		}, []string{"type"}),

		RealtimeDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "godash_realtime_dropped_total",
			Help: "Realtime messages dropped (unknown type or bad payload)",
		}),

		RealtimeReconnects: factory.NewCounter(prometheus.CounterOpts{
			Name: "godash_realtime_reconnects_total",
			Help: "Unexpected socket closes that triggered reconnect scheduling",
		}),

		RealtimeConnected: factory.NewGauge(prometheus.GaugeOpts{
			Name: "godash_realtime_connected",
			Help: "1 while the push connection is open",
		}),

		ActionsApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "godash_store_actions_total",
			Help: "Store actions dispatched, by action name",
		}, []string{"action"}),
	}
}

// IncFetch 记录一次资源拉取
func (m *Metrics) IncFetch(resource, outcome string) {
	if m == nil {
		return
	}
	m.FetchTotal.WithLabelValues(resource, outcome).Inc()
}

// IncRealtimeMessage 记录一条已路由的实时消息
func (m *Metrics) IncRealtimeMessage(msgType string) {
	if m == nil {
		return
	}
	m.RealtimeMessages.WithLabelValues(msgType).Inc()
}

// IncRealtimeDropped 记录一条被丢弃的实时消息
func (m *Metrics) IncRealtimeDropped() {
	if m == nil {
		return
	}
	m.RealtimeDropped.Inc()
}

// IncRealtimeReconnect 记录一次重连调度
func (m *Metrics) IncRealtimeReconnect() {
	if m == nil {
		return
	}
	m.RealtimeReconnects.Inc()
}

// SetRealtimeConnected 更新连接状态
func (m *Metrics) SetRealtimeConnected(connected bool) {
	if m == nil {
		return
	}
	if connected {
		m.RealtimeConnected.Set(1)
	} else {
		m.RealtimeConnected.Set(0)
	}
}

// IncAction 记录一次 store 动作
func (m *Metrics) IncAction(action string) {
	if m == nil {
		return
	}
	m.ActionsApplied.WithLabelValues(action).Inc()
}
