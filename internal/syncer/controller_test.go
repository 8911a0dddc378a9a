package syncer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/tradedash/godash/internal/api"
	"github.com/tradedash/godash/internal/dispatch"
	"github.com/tradedash/godash/internal/domain"
	ws "github.com/tradedash/godash/internal/infrastructure/websocket"
	"github.com/tradedash/godash/internal/store"
	sdkhttp "github.com/tradedash/godash/pkg/sdk/http"
)

func newTestController(t *testing.T, handler http.Handler) (*Controller, *store.Store, *api.Fallback) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	fb := api.NewFallback(42)
	apiClient := api.NewClient(sdkhttp.NewClient(srv.URL, 2*time.Second), fb, nil)
	st := store.New()
	d := dispatch.New(st, nil)
	return New(apiClient, st, d, nil, ws.Config{}), st, fb
}

func failingHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusInternalServerError)
	})
}

// TestLoadInitialAllFallback 后端全挂时初始加载仍然完成：
// 所有切片落到降级数据，Loading 被清除，Error 为空
func TestLoadInitialAllFallback(t *testing.T) {
	ctrl, st, fb := newTestController(t, failingHandler())

	ctrl.LoadInitial(context.Background())

	state := st.State()
	if state.Loading {
		t.Error("初始加载结束后 Loading 应为 false")
	}
	if state.Error != "" {
		t.Errorf("降级不算失败，Error 应为空，实际 %q", state.Error)
	}
	if !reflect.DeepEqual(state.Balances, fb.Balances()) {
		t.Error("余额应落到降级数据")
	}
	if !reflect.DeepEqual(state.Strategies, fb.Strategies()) {
		t.Error("策略应落到降级数据")
	}
	if !reflect.DeepEqual(state.Risk, fb.Risk()) {
		t.Error("风控指标应落到降级数据")
	}
	if state.LastUpdated.IsZero() {
		t.Error("加载后 LastUpdated 应被刷新")
	}
}

// TestLoadInitialLive 后端正常时切片来自接口数据
func TestLoadInitialLive(t *testing.T) {
	ctrl, st, _ := newTestController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/account/balances":
			_, _ = w.Write([]byte(`[{"asset":"USDT","available":"9999"}]`))
		case "/trading/performance", "/trading/statistics", "/risk":
			_, _ = w.Write([]byte(`{}`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))

	ctrl.LoadInitial(context.Background())

	state := st.State()
	if len(state.Balances) != 1 || state.Balances[0].Asset != "USDT" {
		t.Errorf("余额应来自接口数据: %+v", state.Balances)
	}
	if len(state.Orders) != 0 {
		t.Errorf("接口返回空列表时订单应为空，实际 %d 条", len(state.Orders))
	}
}

// TestRefreshPerformanceRecordsRange 按范围刷新业绩时记录范围选择
func TestRefreshPerformanceRecordsRange(t *testing.T) {
	ctrl, st, fb := newTestController(t, failingHandler())

	ctrl.RefreshPerformance(context.Background(), domain.RangeMonth)

	state := st.State()
	if state.PerformanceRange != domain.RangeMonth {
		t.Errorf("范围选择应被记录为 MONTH，实际 %s", state.PerformanceRange)
	}
	if !reflect.DeepEqual(state.Performance, fb.Performance(domain.RangeMonth)) {
		t.Error("业绩指标应为 MONTH 范围的降级数据")
	}
}

// TestToggleStrategy 用远端返回的权威列表整体替换策略
func TestToggleStrategy(t *testing.T) {
	fb := api.NewFallback(42)
	target := fb.Strategies()[0]
	flipped := target.ToggledStatus()

	var gotPath string
	ctrl, st, _ := newTestController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":"` + target.ID + `","name":"` + target.Name + `","status":"` + string(flipped) + `"}]`))
			return
		}
		http.Error(w, "backend down", http.StatusInternalServerError)
	}))

	ctrl.RefreshStrategies(context.Background()) // 降级数据进 store

	if err := ctrl.ToggleStrategy(context.Background(), target.ID); err != nil {
		t.Fatalf("切换策略不应失败: %v", err)
	}
	if gotPath != "/strategies/"+target.ID+"/status" {
		t.Errorf("请求路径不正确: %s", gotPath)
	}

	got, ok := st.State().FindStrategy(target.ID)
	if !ok {
		t.Fatal("切换后策略应仍在列表中")
	}
	if got.Status != flipped {
		t.Errorf("策略状态应为 %s，实际 %s", flipped, got.Status)
	}
	if len(st.State().Strategies) != 1 {
		t.Error("策略列表应被远端权威列表整体替换")
	}
}

// TestToggleStrategyUnknownID 不存在的策略直接报错，不发请求
func TestToggleStrategyUnknownID(t *testing.T) {
	requested := false
	ctrl, _, _ := newTestController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
		http.Error(w, "backend down", http.StatusInternalServerError)
	}))

	if err := ctrl.ToggleStrategy(context.Background(), "no-such-strategy"); err == nil {
		t.Error("不存在的策略应返回错误")
	}
	if requested {
		t.Error("本地找不到策略时不应发起远端请求")
	}
}

// TestAcknowledgeNotification 远端确认成功后本地标记已读
func TestAcknowledgeNotification(t *testing.T) {
	ctrl, st, fb := newTestController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Error(w, "backend down", http.StatusInternalServerError)
	}))

	ctrl.RefreshNotifications(context.Background())
	target := fb.Notifications()[0]
	if target.Read {
		t.Fatal("测试前提：第一条降级通知应为未读")
	}

	if err := ctrl.AcknowledgeNotification(context.Background(), target.ID); err != nil {
		t.Fatalf("确认已读不应失败: %v", err)
	}

	for _, n := range st.State().Notifications {
		if n.ID == target.ID && !n.Read {
			t.Error("确认成功后通知应被标记为已读")
		}
	}
}

// TestAcknowledgeNotificationRemoteFailure 远端失败时返回错误，本地不动
func TestAcknowledgeNotificationRemoteFailure(t *testing.T) {
	ctrl, st, fb := newTestController(t, failingHandler())

	ctrl.RefreshNotifications(context.Background())
	target := fb.Notifications()[0]

	if err := ctrl.AcknowledgeNotification(context.Background(), target.ID); err == nil {
		t.Fatal("远端确认失败时应返回错误")
	}

	for _, n := range st.State().Notifications {
		if n.ID == target.ID && n.Read {
			t.Error("远端失败时本地已读标记不应翻转")
		}
	}
}

// TestRefreshAllClearsLoading 全量刷新结束后 Loading 被清除
func TestRefreshAllClearsLoading(t *testing.T) {
	ctrl, st, _ := newTestController(t, failingHandler())

	ctrl.RefreshAll(context.Background())

	if st.State().Loading {
		t.Error("全量刷新结束后 Loading 应为 false")
	}
}

// TestRealtimeStateWithoutTransport 未启用实时通道时状态为 Idle
func TestRealtimeStateWithoutTransport(t *testing.T) {
	ctrl, _, _ := newTestController(t, failingHandler())

	ctrl.Start() // URL 为空，应为 no-op
	if got := ctrl.RealtimeState(); got != ws.StateIdle {
		t.Errorf("未启用实时通道时状态应为 Idle，实际 %s", got)
	}
}
