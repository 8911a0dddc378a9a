// Package server 状态服务器：对外暴露健康检查、账户视图快照与 Prometheus 指标
// 只读居多，仅有的写操作（刷新、策略开关、通知已读）都委托给同步控制器
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tradedash/godash/internal/store"
	"github.com/tradedash/godash/internal/syncer"
)

type Server struct {
	store    *store.Store
	sync     *syncer.Controller
	gatherer prometheus.Gatherer
}

// New 创建状态服务器
// gatherer 传 nil 时用全局默认注册表
func New(st *store.Store, ctrl *syncer.Controller, gatherer prometheus.Gatherer) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Server{store: st, sync: ctrl, gatherer: gatherer}
}

func (s *Server) Router() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.handleHealthz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.GET("/state", s.handleStateSummary)
	api.GET("/state/full", s.handleStateFull)
	api.POST("/refresh", s.handleRefresh)
	api.POST("/strategies/:strategyID/toggle", s.handleStrategyToggle)
	api.POST("/notifications/:notificationID/read", s.handleNotificationRead)

	return r
}
