package sigchan

// Chan 是一个非阻塞的信号 channel
// 只通知"有事发生"，不携带数据；缓冲满时丢弃信号
// 状态仓库用它通知订阅者状态已变化，订阅者随后自行读取最新快照
type Chan struct {
	c chan struct{}
}

// New 创建新的信号 channel
func New(bufferSize int) *Chan {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Chan{
		c: make(chan struct{}, bufferSize),
	}
}

// Emit 发送信号（非阻塞）
// 信号是合并语义：缓冲里已有待处理信号时再 Emit 不增加新信息，丢弃是安全的
func (c *Chan) Emit() {
	select {
	case c.c <- struct{}{}:
	default:
	}
}

// C 返回内部的 channel（用于 select）
func (c *Chan) C() <-chan struct{} {
	return c.c
}

// Drain 清空所有待处理信号
func (c *Chan) Drain() {
	for {
		select {
		case <-c.c:
		default:
			return
		}
	}
}
