package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/tradedash/godash/internal/domain"
	sdkhttp "github.com/tradedash/godash/pkg/sdk/http"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *Fallback, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	fb := NewFallback(42)
	return NewClient(sdkhttp.NewClient(srv.URL, 2*time.Second), fb, nil), fb, srv
}

// TestFetchLive 远端正常时返回接口数据，不走降级
func TestFetchLive(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/account/balances" {
			t.Errorf("请求路径不正确: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"asset":"USDT","available":"5000","usdValue":"5000"}]`))
	}))

	got := client.Balances(context.Background())
	if len(got) != 1 || got[0].Asset != "USDT" {
		t.Fatalf("应返回接口数据，实际 %+v", got)
	}
}

// TestFetchFallbackOnServerError 非 2xx 响应不向上抛错，返回降级数据
func TestFetchFallbackOnServerError(t *testing.T) {
	client, fb, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))

	got := client.Balances(context.Background())
	if !reflect.DeepEqual(got, fb.Balances()) {
		t.Error("服务端 500 时应返回降级余额")
	}
}

// TestFetchFallbackOnDecodeError 响应体不是合法 JSON 时同样降级
func TestFetchFallbackOnDecodeError(t *testing.T) {
	client, fb, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))

	got := client.Positions(context.Background())
	if !reflect.DeepEqual(got, fb.Positions()) {
		t.Error("响应解码失败时应返回降级持仓")
	}
}

// TestFetchFallbackOnUnreachable 服务端完全不可达时降级
func TestFetchFallbackOnUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // 立即关闭，保证地址不可达

	fb := NewFallback(42)
	client := NewClient(sdkhttp.NewClient(srv.URL, time.Second), fb, nil)

	got := client.Risk(context.Background())
	if !reflect.DeepEqual(got, fb.Risk()) {
		t.Error("服务端不可达时应返回降级风控指标")
	}
}

// TestOrderQueryEncoding 订单过滤条件编码为查询参数，零值字段不出现
func TestOrderQueryEncoding(t *testing.T) {
	var gotQuery url.Values
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	client.Orders(context.Background(), domain.OrderQuery{
		Status: domain.OrderStatusOpen,
		Symbol: "BTC/USDT",
		Start:  start,
	})

	if gotQuery.Get("status") != "open" {
		t.Errorf("status 参数应为 open，实际 %q", gotQuery.Get("status"))
	}
	if gotQuery.Get("symbol") != "BTC/USDT" {
		t.Errorf("symbol 参数应为 BTC/USDT，实际 %q", gotQuery.Get("symbol"))
	}
	if gotQuery.Get("start") != "2024-03-01T00:00:00Z" {
		t.Errorf("start 参数应为 RFC3339，实际 %q", gotQuery.Get("start"))
	}
	if gotQuery.Has("side") || gotQuery.Has("end") {
		t.Error("零值过滤字段不应出现在查询参数中")
	}
}

// TestSetStrategyStatusError 变更操作失败时返回错误，不降级
func TestSetStrategyStatusError(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "strategy not found", http.StatusNotFound)
	}))

	if _, err := client.SetStrategyStatus(context.Background(), "missing", domain.StrategyRunning); err == nil {
		t.Error("变更操作失败时应返回错误")
	}
}

// TestSetStrategyStatus 变更成功时返回权威的策略列表
func TestSetStrategyStatus(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("应为 POST 请求，实际 %s", r.Method)
		}
		if r.URL.Path != "/strategies/s1/status" {
			t.Errorf("请求路径不正确: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"s1","name":"Grid","status":"stopped"}]`))
	}))

	list, err := client.SetStrategyStatus(context.Background(), "s1", domain.StrategyStopped)
	if err != nil {
		t.Fatalf("变更不应失败: %v", err)
	}
	if len(list) != 1 || list[0].Status != domain.StrategyStopped {
		t.Errorf("应返回权威策略列表，实际 %+v", list)
	}
}

// TestAcknowledgeNotification 确认已读走 POST，成功时无错误
func TestAcknowledgeNotification(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/notifications/n1/read" {
			t.Errorf("请求路径不正确: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.AcknowledgeNotification(context.Background(), "n1"); err != nil {
		t.Errorf("确认已读不应失败: %v", err)
	}
}
