// Package websocket 维护到推送端的单一逻辑连接
// 非预期断开后按固定间隔自动重连，直到 Disconnect() 或连接成功
package websocket

import (
	"encoding/json"
	"time"
)

const (
	// defaultReconnectInterval 固定重连间隔
	defaultReconnectInterval = 5 * time.Second
	// defaultHandshakeTimeout 握手超时
	defaultHandshakeTimeout = 15 * time.Second
)

// State 连接状态机：Idle -> Connecting -> Open -> Closed
// Closed -> Connecting（自动重连），除非是 Disconnect() 触发的关闭（回到 Idle）
type State string

const (
	StateIdle       State = "idle"
	StateConnecting State = "connecting"
	StateOpen       State = "open"
	StateClosed     State = "closed"
)

// MessageType 实时消息的判别字段
type MessageType string

const (
	MessageBalanceUpdate  MessageType = "balance_update"
	MessagePositionUpdate MessageType = "position_update"
	MessageOrderUpdate    MessageType = "order_update"
	MessageTradeUpdate    MessageType = "trade_update"
	MessageRiskUpdate     MessageType = "risk_update"
	MessageNotification   MessageType = "notification"
)

// Message 已解析的入站帧
// Payload 保持原始 JSON，由调度器按 Type 解码成对应实体
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// 事件回调（按注册顺序调用）
type (
	OpenHandler    func()
	MessageHandler func(Message)
	ErrorHandler   func(error)
	CloseHandler   func()
)

// Config WebSocket 客户端配置
type Config struct {
	URL               string        // 推送端地址
	ReconnectInterval time.Duration // 固定重连间隔，<=0 时取默认 5s
	HandshakeTimeout  time.Duration // 握手超时
}

// DefaultConfig 返回默认配置
func DefaultConfig(url string) Config {
	return Config{
		URL:               url,
		ReconnectInterval: defaultReconnectInterval,
		HandshakeTimeout:  defaultHandshakeTimeout,
	}
}
