// Package store 持有整个账户视图的单一状态仓库
// 所有账户状态的变更都必须经过 Dispatch，其他组件只读快照
package store

import (
	"sync"
	"time"

	"github.com/tradedash/godash/internal/domain"
	"github.com/tradedash/godash/pkg/sigchan"
)

// AccountState 账户状态聚合
// 值语义：reducer 返回新值，切片引用被替换而不是原地修改
type AccountState struct {
	Balances      []domain.Balance
	Positions     []domain.Position
	Orders        []domain.Order
	Trades        []domain.Trade
	Performance   domain.PerformanceMetrics
	AssetHistory  []domain.AssetHistoryPoint
	TradeStats    domain.TradeStatistics
	Strategies    []domain.Strategy
	Risk          domain.RiskMetrics
	Notifications []domain.Notification

	// 视图范围选择（UI 状态，随数据一起保存但不影响数据切片）
	PerformanceRange  domain.PerformanceRange
	AssetHistoryRange domain.HistoryRange

	Loading     bool
	Error       string    // 空串表示无错误
	LastUpdated time.Time // 零值表示从未更新；UI 用作陈旧度信号，不做因果排序
}

// FindStrategy 按 ID 查找策略
func (s AccountState) FindStrategy(id string) (domain.Strategy, bool) {
	for _, st := range s.Strategies {
		if st.ID == id {
			return st, true
		}
	}
	return domain.Strategy{}, false
}

// Store 状态仓库
// Dispatch 在锁内应用 reducer，动作之间不会交错；读方拿到的是状态值的拷贝
// （切片底层数组被视为不可变，消费方不得修改）
type Store struct {
	mu    sync.RWMutex
	state AccountState
	clock func() time.Time

	subMu sync.Mutex
	subs  []*sigchan.Chan
}

// New 创建空状态仓库
func New() *Store {
	return &Store{
		state: AccountState{
			PerformanceRange:  domain.RangeToday,
			AssetHistoryRange: domain.History1D,
		},
		clock: time.Now,
	}
}

// NewWithClock 用自定义时钟创建仓库（测试用）
func NewWithClock(clock func() time.Time) *Store {
	s := New()
	if clock != nil {
		s.clock = clock
	}
	return s
}

// Dispatch 应用一个动作
// 永不报错：无效动作（未知类型、类型不匹配、不存在的 ID）是 no-op
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, action, s.clock())
	s.mu.Unlock()

	s.notify()
}

// State 返回当前状态快照
func (s *Store) State() AccountState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe 返回状态变化信号 channel
// 信号是合并语义：收到信号后应调用 State() 读取最新快照
func (s *Store) Subscribe() *sigchan.Chan {
	ch := sigchan.New(1)
	s.subMu.Lock()
	s.subs = append(s.subs, ch)
	s.subMu.Unlock()
	return ch
}

// notify 通知所有订阅者（非阻塞）
func (s *Store) notify() {
	s.subMu.Lock()
	subs := s.subs
	s.subMu.Unlock()
	for _, ch := range subs {
		ch.Emit()
	}
}
