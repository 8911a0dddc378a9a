package websocket

import (
	"bytes"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/tradedash/godash/pkg/logger"
)

// Client 实时推送客户端（直接回调列表，不走事件总线）
// 所有连接失败都在内部消化：记日志、触发重连，不向调用方抛错
type Client struct {
	cfg Config
	log *logrus.Entry

	mu             sync.Mutex // 保护 conn / state / manualClose / reconnectTimer
	conn           *websocket.Conn
	state          State
	manualClose    bool
	reconnectTimer *time.Timer

	writeMu sync.Mutex // gorilla 连接要求单写者

	handlerMu       sync.RWMutex
	openHandlers    []OpenHandler
	messageHandlers []MessageHandler
	errorHandlers   []ErrorHandler
	closeHandlers   []CloseHandler
}

// New 创建新的实时客户端（不发起连接）
func New(cfg Config) *Client {
	if cfg.ReconnectInterval <= 0 {
		cfg.ReconnectInterval = defaultReconnectInterval
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = defaultHandshakeTimeout
	}
	return &Client{
		cfg:   cfg,
		log:   logger.WithField("component", "realtime"),
		state: StateIdle,
	}
}

// State 返回当前连接状态
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnOpen 注册连接建立回调
func (c *Client) OnOpen(h OpenHandler) {
	c.handlerMu.Lock()
	defer c.handlerMu.Unlock()
	c.openHandlers = append(c.openHandlers, h)
}

// OnMessage 注册消息回调
func (c *Client) OnMessage(h MessageHandler) {
	c.handlerMu.Lock()
	defer c.handlerMu.Unlock()
	c.messageHandlers = append(c.messageHandlers, h)
}

// OnError 注册错误回调
func (c *Client) OnError(h ErrorHandler) {
	c.handlerMu.Lock()
	defer c.handlerMu.Unlock()
	c.errorHandlers = append(c.errorHandlers, h)
}

// OnClose 注册连接关闭回调
func (c *Client) OnClose(h CloseHandler) {
	c.handlerMu.Lock()
	defer c.handlerMu.Unlock()
	c.closeHandlers = append(c.closeHandlers, h)
}

// Connect 发起连接；已在连接中或已打开时幂等
// 连接失败不返回错误：按非预期断开处理（记日志 + 调度重连）
func (c *Client) Connect() {
	c.mu.Lock()
	if c.state == StateOpen || c.state == StateConnecting {
		c.mu.Unlock()
		return
	}
	c.manualClose = false
	c.state = StateConnecting
	c.mu.Unlock()

	c.dial()
}

// Disconnect 手动关闭：抑制自动重连，终态 Idle
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.manualClose = true
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
	conn := c.conn
	if conn == nil {
		// 没有活动连接（空闲或等待重连）：直接回 Idle
		c.state = StateIdle
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	// 触发 readLoop 退出，终态由 handleClose 设置
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = conn.Close()
}

// Send 序列化并发送一条出站消息（尽力而为）
// 连接未打开时静默丢弃，不排队
func (c *Client) Send(v any) {
	c.mu.Lock()
	conn := c.conn
	open := c.state == StateOpen
	c.mu.Unlock()

	if !open || conn == nil {
		c.log.Debugf("连接未打开，丢弃出站消息")
		return
	}

	c.writeMu.Lock()
	err := conn.WriteJSON(v)
	c.writeMu.Unlock()
	if err != nil {
		// 写失败说明连接已坏，readLoop 会发现并触发重连
		c.log.Warnf("发送失败: %v", err)
	}
}

// dial 执行一次连接尝试
func (c *Client) dial() {
	dialer := websocket.Dialer{
		HandshakeTimeout: c.cfg.HandshakeTimeout,
	}
	conn, _, err := dialer.Dial(c.cfg.URL, nil)
	if err != nil {
		c.log.Warnf("连接失败: %v", err)
		c.emitError(err)

		c.mu.Lock()
		if c.manualClose {
			c.state = StateIdle
			c.mu.Unlock()
			return
		}
		c.state = StateClosed
		c.scheduleReconnectLocked()
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	if c.manualClose {
		// Disconnect 抢在握手完成之前
		c.state = StateIdle
		c.mu.Unlock()
		_ = conn.Close()
		return
	}
	c.conn = conn
	c.state = StateOpen
	c.mu.Unlock()

	c.log.Infof("已连接到 %s", c.cfg.URL)
	c.emitOpen()

	go c.readLoop(conn)
}

// scheduleReconnectLocked 调度一次重连（调用方须持有 c.mu）
// 先取消已有定时器，保证同一时刻只有一个待执行的重连
func (c *Client) scheduleReconnectLocked() {
	if c.manualClose {
		return
	}
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
	}
	c.log.Infof("%v 后重连 %s", c.cfg.ReconnectInterval, c.cfg.URL)
	c.reconnectTimer = time.AfterFunc(c.cfg.ReconnectInterval, func() {
		c.mu.Lock()
		c.reconnectTimer = nil
		if c.manualClose {
			c.mu.Unlock()
			return
		}
		c.state = StateConnecting
		c.mu.Unlock()
		c.dial()
	})
}

// readLoop 持续读取入站帧，直到连接出错
func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.handleClose(err)
			return
		}
		c.handleFrame(data)
	}
}

// handleClose 连接断开的统一出口
// 手动关闭回 Idle；非预期断开进入 Closed 并调度重连
func (c *Client) handleClose(err error) {
	c.mu.Lock()
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	manual := c.manualClose
	if manual {
		c.state = StateIdle
	} else {
		c.state = StateClosed
		c.scheduleReconnectLocked()
	}
	c.mu.Unlock()

	if manual {
		c.log.Infof("连接已手动关闭")
	} else {
		c.log.Warnf("连接断开: %v", err)
		c.emitError(err)
	}
	c.emitClose()
}

// handleFrame 解析单个入站帧
// 解析失败只记日志并丢弃该帧，连接不受影响
func (c *Client) handleFrame(data []byte) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return
	}
	// 纯文本帧（如心跳应答）不进入消息流
	if trimmed[0] != '{' {
		return
	}

	var msg Message
	if err := json.Unmarshal(trimmed, &msg); err != nil {
		c.log.Warnf("解析入站帧失败，丢弃: %v", err)
		return
	}
	c.emitMessage(msg)
}

func (c *Client) emitOpen() {
	c.handlerMu.RLock()
	handlers := c.openHandlers
	c.handlerMu.RUnlock()
	for _, h := range handlers {
		h()
	}
}

func (c *Client) emitMessage(msg Message) {
	c.handlerMu.RLock()
	handlers := c.messageHandlers
	c.handlerMu.RUnlock()
	for _, h := range handlers {
		h(msg)
	}
}

func (c *Client) emitError(err error) {
	c.handlerMu.RLock()
	handlers := c.errorHandlers
	c.handlerMu.RUnlock()
	for _, h := range handlers {
		h(err)
	}
}

func (c *Client) emitClose() {
	c.handlerMu.RLock()
	handlers := c.closeHandlers
	c.handlerMu.RUnlock()
	for _, h := range handlers {
		h()
	}
}
