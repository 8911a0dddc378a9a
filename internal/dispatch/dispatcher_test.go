package dispatch

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	ws "github.com/tradedash/godash/internal/infrastructure/websocket"
	"github.com/tradedash/godash/internal/store"
)

func msg(t *testing.T, typ ws.MessageType, payload string) ws.Message {
	t.Helper()
	return ws.Message{Type: typ, Payload: json.RawMessage(payload)}
}

// TestRouteBalanceUpdate balance_update 整体替换余额切片
func TestRouteBalanceUpdate(t *testing.T) {
	st := store.New()
	d := New(st, nil)

	d.HandleMessage(msg(t, ws.MessageBalanceUpdate, `[{"asset":"USDT","available":"1000"},{"asset":"BTC","available":"0.5"}]`))

	got := st.State().Balances
	if len(got) != 2 {
		t.Fatalf("余额切片应被整体替换为 2 条，实际 %d 条", len(got))
	}
	if got[0].Asset != "USDT" || got[1].Asset != "BTC" {
		t.Errorf("余额内容不正确: %+v", got)
	}
}

// TestRoutePositionUpdate position_update 按 Symbol upsert 单条持仓
func TestRoutePositionUpdate(t *testing.T) {
	st := store.New()
	d := New(st, nil)

	d.HandleMessage(msg(t, ws.MessagePositionUpdate, `{"symbol":"BTC/USDT","direction":"long","size":"1.5"}`))
	d.HandleMessage(msg(t, ws.MessagePositionUpdate, `{"symbol":"BTC/USDT","direction":"long","size":"2.0"}`))

	got := st.State().Positions
	if len(got) != 1 {
		t.Fatalf("同交易对持仓应被替换，期望 1 条，实际 %d 条", len(got))
	}
	if !got[0].Size.Equal(decimal.NewFromInt(2)) {
		t.Errorf("持仓数量应为 2，实际 %s", got[0].Size)
	}
}

// TestRouteOrderAndTrade order_update/trade_update 分别落到订单和成交集合
func TestRouteOrderAndTrade(t *testing.T) {
	st := store.New()
	d := New(st, nil)

	d.HandleMessage(msg(t, ws.MessageOrderUpdate, `{"id":"o1","symbol":"ETH/USDT","status":"open","timestamp":"2024-03-01T10:00:00Z"}`))
	d.HandleMessage(msg(t, ws.MessageTradeUpdate, `{"id":"t1","orderId":"o1","symbol":"ETH/USDT","timestamp":"2024-03-01T10:01:00Z"}`))

	state := st.State()
	if len(state.Orders) != 1 || state.Orders[0].ID != "o1" {
		t.Errorf("订单未正确路由: %+v", state.Orders)
	}
	if len(state.Trades) != 1 || state.Trades[0].ID != "t1" {
		t.Errorf("成交未正确路由: %+v", state.Trades)
	}
}

// TestRouteRiskAndNotification risk_update 整体替换，notification 前插
func TestRouteRiskAndNotification(t *testing.T) {
	st := store.New()
	d := New(st, nil)

	d.HandleMessage(msg(t, ws.MessageRiskUpdate, `{"marginUtilization":0.35,"leverage":3.2}`))
	d.HandleMessage(msg(t, ws.MessageNotification, `{"id":"n1","title":"爆仓预警","severity":"critical"}`))
	d.HandleMessage(msg(t, ws.MessageNotification, `{"id":"n2","title":"订单成交","severity":"info"}`))

	state := st.State()
	if state.Risk.MarginUtilization != 0.35 {
		t.Errorf("风控指标应被替换，MarginUtilization 期望 0.35，实际 %v", state.Risk.MarginUtilization)
	}
	if len(state.Notifications) != 2 || state.Notifications[0].ID != "n2" {
		t.Errorf("新通知应前插在最前: %+v", state.Notifications)
	}
}

// TestUnknownMessageTypeIgnored 未识别的消息类型不影响 store
func TestUnknownMessageTypeIgnored(t *testing.T) {
	st := store.New()
	d := New(st, nil)

	before := st.State()
	d.HandleMessage(msg(t, "heartbeat", `{"ts":123}`))

	if !reflect.DeepEqual(before, st.State()) {
		t.Error("未识别的消息类型不应改变状态")
	}
}

// TestMalformedPayloadDropped 载荷解码失败时整条消息被丢弃，store 不受影响
func TestMalformedPayloadDropped(t *testing.T) {
	st := store.New()
	d := New(st, nil)
	d.HandleMessage(msg(t, ws.MessagePositionUpdate, `{"symbol":"BTC/USDT","size":"1"}`))

	before := st.State()
	// position_update 的载荷应是对象，数组解码必然失败
	d.HandleMessage(msg(t, ws.MessagePositionUpdate, `["not","a","position"]`))

	if !reflect.DeepEqual(before, st.State()) {
		t.Error("解码失败的消息不应改变状态")
	}
}
