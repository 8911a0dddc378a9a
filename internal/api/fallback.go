package api

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tradedash/godash/internal/domain"
)

// fallbackAnchor 降级数据集的固定时间锚点
// 所有时间戳都相对它生成，保证两次构造得到完全相同的数据
var fallbackAnchor = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

// fallbackSymbols 降级数据集覆盖的交易对
var fallbackSymbols = []string{"BTC/USDT", "ETH/USDT", "SOL/USDT", "BNB/USDT"}

// fallbackBasePrices 各交易对的基准价格（美元）
var fallbackBasePrices = map[string]float64{
	"BTC/USDT": 43000,
	"ETH/USDT": 2300,
	"SOL/USDT": 98,
	"BNB/USDT": 310,
}

// Fallback 确定性降级数据生成器
// 远端拉取失败时由它兜底，保证仪表盘始终有可渲染的数据
// 同一个种子构造出的数据集完全一致，且过滤语义与真实接口一致
type Fallback struct {
	balances      []domain.Balance
	positions     []domain.Position
	orders        []domain.Order
	trades        []domain.Trade
	strategies    []domain.Strategy
	risk          domain.RiskMetrics
	notifications []domain.Notification
}

// NewFallback 用给定种子构造降级数据集
func NewFallback(seed int64) *Fallback {
	rng := rand.New(rand.NewSource(seed))
	f := &Fallback{}
	f.buildBalances(rng)
	f.buildPositions(rng)
	f.buildOrders(rng)
	f.buildTrades(rng)
	f.buildStrategies(rng)
	f.buildRisk(rng)
	f.buildNotifications(rng)
	return f
}

// fallbackID 生成确定性 ID（uuid v5，按名字派生）
func fallbackID(kind string, n int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("godash-fallback-%s-%d", kind, n))).String()
}

// dec 把 float 转成两位小数的 decimal
func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func (f *Fallback) buildBalances(rng *rand.Rand) {
	assets := []string{"USDT", "BTC", "ETH", "SOL"}
	total := 0.0
	values := make([]float64, len(assets))
	for i := range assets {
		values[i] = 1000 + rng.Float64()*24000
		total += values[i]
	}
	for i, asset := range assets {
		usd := values[i]
		available := usd * (0.6 + rng.Float64()*0.3)
		f.balances = append(f.balances, domain.Balance{
			Asset:      asset,
			Available:  dec(available),
			Hold:       dec(usd - available),
			USDValue:   dec(usd),
			Allocation: usd / total,
		})
	}
}

func (f *Fallback) buildPositions(rng *rand.Rand) {
	for i, symbol := range fallbackSymbols[:3] {
		base := fallbackBasePrices[symbol]
		entry := base * (0.95 + rng.Float64()*0.1)
		mark := base * (0.95 + rng.Float64()*0.1)
		size := 0.1 + rng.Float64()*2
		direction := domain.DirectionLong
		pnl := (mark - entry) * size
		if i%2 == 1 {
			direction = domain.DirectionShort
			pnl = -pnl
		}
		f.positions = append(f.positions, domain.Position{
			Symbol:     symbol,
			Direction:  direction,
			Size:       dec(size),
			EntryPrice: dec(entry),
			MarkPrice:  dec(mark),
			PnL: domain.PnL{
				Value: dec(pnl),
				Pct:   pnl / (entry * size),
			},
			Margin:    dec(entry * size * 0.1),
			UpdatedAt: fallbackAnchor.Add(-time.Duration(i) * time.Minute),
		})
	}
}

func (f *Fallback) buildOrders(rng *rand.Rand) {
	statuses := []domain.OrderStatus{
		domain.OrderStatusOpen,
		domain.OrderStatusFilled,
		domain.OrderStatusPartial,
		domain.OrderStatusCanceled,
	}
	for i := 0; i < 40; i++ {
		symbol := fallbackSymbols[rng.Intn(len(fallbackSymbols))]
		base := fallbackBasePrices[symbol]
		status := statuses[rng.Intn(len(statuses))]
		quantity := 0.05 + rng.Float64()*3
		filled := 0.0
		switch status {
		case domain.OrderStatusFilled:
			filled = quantity
		case domain.OrderStatusPartial:
			filled = quantity * rng.Float64()
		}
		side := domain.SideBuy
		if rng.Intn(2) == 1 {
			side = domain.SideSell
		}
		orderType := domain.OrderTypeLimit
		if rng.Intn(4) == 0 {
			orderType = domain.OrderTypeMarket
		}
		f.orders = append(f.orders, domain.Order{
			ID:             fallbackID("order", i),
			Timestamp:      fallbackAnchor.Add(-time.Duration(i*97) * time.Minute),
			Symbol:         symbol,
			Type:           orderType,
			Side:           side,
			Price:          dec(base * (0.97 + rng.Float64()*0.06)),
			Quantity:       dec(quantity),
			FilledQuantity: dec(filled),
			Status:         status,
		})
	}
}

func (f *Fallback) buildTrades(rng *rand.Rand) {
	for i := 0; i < 60; i++ {
		symbol := fallbackSymbols[rng.Intn(len(fallbackSymbols))]
		base := fallbackBasePrices[symbol]
		side := domain.SideBuy
		if rng.Intn(2) == 1 {
			side = domain.SideSell
		}
		price := base * (0.97 + rng.Float64()*0.06)
		quantity := 0.05 + rng.Float64()*2
		strategy := ""
		if rng.Intn(3) != 0 {
			strategy = fallbackID("strategy", rng.Intn(3))
		}
		f.trades = append(f.trades, domain.Trade{
			ID:        fallbackID("trade", i),
			OrderID:   fallbackID("order", i%40),
			Timestamp: fallbackAnchor.Add(-time.Duration(i*61) * time.Minute),
			Symbol:    symbol,
			Side:      side,
			Price:     dec(price),
			Quantity:  dec(quantity),
			Fee:       dec(price * quantity * 0.0005),
			Strategy:  strategy,
		})
	}
}

func (f *Fallback) buildStrategies(rng *rand.Rand) {
	names := []string{"SMA Crossover", "Grid Trading", "Trend Following"}
	statuses := []domain.StrategyStatus{domain.StrategyRunning, domain.StrategyStopped, domain.StrategyPaused}
	for i, name := range names {
		f.strategies = append(f.strategies, domain.Strategy{
			ID:          fallbackID("strategy", i),
			Name:        name,
			Status:      statuses[i%len(statuses)],
			PnL:         dec(-500 + rng.Float64()*3000),
			WinRate:     0.4 + rng.Float64()*0.3,
			Trades:      20 + rng.Intn(200),
			LastUpdated: fallbackAnchor.Add(-time.Duration(i*13) * time.Minute),
		})
	}
}

func (f *Fallback) buildRisk(rng *rand.Rand) {
	exposure := 10000 + rng.Float64()*40000
	f.risk = domain.RiskMetrics{
		CurrentExposure:   dec(exposure),
		MaxExposure:       dec(100000),
		Leverage:          1 + rng.Float64()*4,
		MaxLeverage:       10,
		MarginUtilization: 0.2 + rng.Float64()*0.5,
		VaR:               dec(exposure * 0.05),
		RiskEvents: []domain.RiskEvent{
			{
				ID:        fallbackID("risk-event", 0),
				Type:      "exposure",
				Message:   "Exposure crossed 40% of limit",
				Timestamp: fallbackAnchor.Add(-2 * time.Hour),
			},
		},
		Alerts: []domain.RiskAlert{
			{
				ID:      fallbackID("risk-alert", 0),
				Level:   "warning",
				Message: "Margin utilization above 50%",
			},
		},
	}
}

func (f *Fallback) buildNotifications(rng *rand.Rand) {
	categories := []string{"order", "risk", "system"}
	severities := []domain.NotificationSeverity{domain.SeverityInfo, domain.SeverityWarning, domain.SeverityCritical}
	for i := 0; i < 10; i++ {
		f.notifications = append(f.notifications, domain.Notification{
			ID:        fallbackID("notification", i),
			Category:  categories[rng.Intn(len(categories))],
			Title:     fmt.Sprintf("Event #%d", i+1),
			Message:   "Generated offline dataset entry",
			Timestamp: fallbackAnchor.Add(-time.Duration(i*29) * time.Minute),
			Read:      i > 4,
			Severity:  severities[rng.Intn(len(severities))],
		})
	}
}

// Balances 返回降级余额（拷贝）
func (f *Fallback) Balances() []domain.Balance {
	return append([]domain.Balance(nil), f.balances...)
}

// Positions 返回降级持仓（拷贝）
func (f *Fallback) Positions() []domain.Position {
	return append([]domain.Position(nil), f.positions...)
}

// Orders 返回满足过滤条件的降级订单
// 过滤契约（symbol/side/status/start/end）与真实接口一致
func (f *Fallback) Orders(q domain.OrderQuery) []domain.Order {
	out := make([]domain.Order, 0, len(f.orders))
	for _, o := range f.orders {
		if q.MatchesOrder(o) {
			out = append(out, o)
		}
	}
	return out
}

// Trades 返回满足过滤条件的降级成交
func (f *Fallback) Trades(q domain.TradeQuery) []domain.Trade {
	out := make([]domain.Trade, 0, len(f.trades))
	for _, t := range f.trades {
		if q.MatchesTrade(t) {
			out = append(out, t)
		}
	}
	return out
}

// Performance 返回指定范围的降级业绩指标
// 数值从相同范围的降级成交推导，保持数据集内部一致
func (f *Fallback) Performance(r domain.PerformanceRange) domain.PerformanceMetrics {
	start := performanceWindowStart(r)
	trades := f.Trades(domain.TradeQuery{Start: start})

	total := len(trades)
	winning := 0
	pnl := decimal.Zero
	grossWin := decimal.Zero
	grossLoss := decimal.Zero
	for i, t := range trades {
		// 确定性的盈亏符号：按序号交替偏多
		value := t.Notional().Mul(decimal.NewFromFloat(0.01))
		if i%3 == 2 {
			value = value.Neg()
			grossLoss = grossLoss.Add(value.Abs())
		} else {
			winning++
			grossWin = grossWin.Add(value)
		}
		pnl = pnl.Add(value)
	}

	m := domain.PerformanceMetrics{
		TotalTrades:   total,
		WinningTrades: winning,
		LosingTrades:  total - winning,
		TotalPnL:      pnl.Round(2),
		MaxDrawdown:   grossLoss.Round(2),
		StartDate:     start,
		EndDate:       fallbackAnchor,
	}
	if total > 0 {
		m.WinRate = float64(winning) / float64(total)
		m.AverageWin = safeDiv(grossWin, winning)
		m.AverageLoss = safeDiv(grossLoss, total-winning)
		m.TotalReturnPct = mustFloat(pnl) / 100000
		m.MaxDrawdownPct = mustFloat(grossLoss) / 100000
		if grossLoss.IsPositive() {
			m.ProfitFactor = mustFloat(grossWin) / mustFloat(grossLoss)
		}
		m.SharpeRatio = 1.2
		m.SortinoRatio = 1.5
	}
	return m
}

// AssetHistory 返回指定范围的降级资产曲线
func (f *Fallback) AssetHistory(r domain.HistoryRange) []domain.AssetHistoryPoint {
	points, step := historyShape(r)
	base := 100000.0
	out := make([]domain.AssetHistoryPoint, 0, points)
	for i := 0; i < points; i++ {
		// 确定性波形，不依赖随机数
		drift := float64(i) * 35
		wobble := float64((i*i)%17) * 120
		value := base + drift + wobble
		ts := fallbackAnchor.Add(-time.Duration(points-1-i) * step)
		out = append(out, domain.AssetHistoryPoint{
			Timestamp:  ts,
			TotalValue: dec(value),
			PnL:        dec(value - base),
		})
	}
	return out
}

// TradeStatistics 返回满足过滤条件的降级成交统计
// 直接从 Trades(q) 聚合，与降级成交列表严格一致
func (f *Fallback) TradeStatistics(q domain.TradeQuery) domain.TradeStatistics {
	trades := f.Trades(q)
	stats := domain.TradeStatistics{
		TotalTrades:  len(trades),
		TotalVolume:  decimal.Zero,
		TotalFees:    decimal.Zero,
		AvgTradeSize: decimal.Zero,
		Instruments:  []string{},
	}
	seen := map[string]bool{}
	for _, t := range trades {
		stats.TotalVolume = stats.TotalVolume.Add(t.Notional())
		stats.TotalFees = stats.TotalFees.Add(t.Fee)
		if !seen[t.Symbol] {
			seen[t.Symbol] = true
			stats.Instruments = append(stats.Instruments, t.Symbol)
		}
	}
	stats.TotalVolume = stats.TotalVolume.Round(2)
	stats.TotalFees = stats.TotalFees.Round(2)
	stats.AvgTradeSize = safeDiv(stats.TotalVolume, len(trades))
	return stats
}

// Strategies 返回降级策略列表（拷贝）
func (f *Fallback) Strategies() []domain.Strategy {
	return append([]domain.Strategy(nil), f.strategies...)
}

// Risk 返回降级风控指标
func (f *Fallback) Risk() domain.RiskMetrics {
	return f.risk
}

// Notifications 返回降级通知列表（拷贝）
func (f *Fallback) Notifications() []domain.Notification {
	return append([]domain.Notification(nil), f.notifications...)
}

// performanceWindowStart 业绩范围到窗口起点
func performanceWindowStart(r domain.PerformanceRange) time.Time {
	switch r {
	case domain.RangeToday:
		return fallbackAnchor.Add(-24 * time.Hour)
	case domain.RangeWeek:
		return fallbackAnchor.Add(-7 * 24 * time.Hour)
	case domain.RangeMonth:
		return fallbackAnchor.Add(-30 * 24 * time.Hour)
	case domain.RangeYear:
		return fallbackAnchor.Add(-365 * 24 * time.Hour)
	default:
		return time.Time{}
	}
}

// historyShape 历史范围到采样点数和步长
func historyShape(r domain.HistoryRange) (int, time.Duration) {
	switch r {
	case domain.History1D:
		return 24, time.Hour
	case domain.History1W:
		return 7 * 24, time.Hour
	case domain.History1M:
		return 30, 24 * time.Hour
	case domain.History3M:
		return 90, 24 * time.Hour
	case domain.History6M:
		return 180, 24 * time.Hour
	case domain.History1Y:
		return 365, 24 * time.Hour
	default:
		return 400, 24 * time.Hour
	}
}

// safeDiv 除以个数，个数为 0 时返回 0
func safeDiv(sum decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n))).Round(2)
}

// mustFloat decimal 转 float64（忽略精度损失标记）
func mustFloat(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}
