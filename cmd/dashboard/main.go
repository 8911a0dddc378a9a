package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tradedash/godash/internal/api"
	"github.com/tradedash/godash/internal/controlplane/server"
	"github.com/tradedash/godash/internal/dispatch"
	"github.com/tradedash/godash/internal/metrics"
	"github.com/tradedash/godash/internal/store"
	"github.com/tradedash/godash/internal/syncer"
	"github.com/tradedash/godash/pkg/config"
	"github.com/tradedash/godash/pkg/logger"
	sdkhttp "github.com/tradedash/godash/pkg/sdk/http"
	"github.com/tradedash/godash/pkg/shutdown"

	ws "github.com/tradedash/godash/internal/infrastructure/websocket"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（.yaml/.yml）")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		OutputFile: cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	logger.Infof("账户同步器启动，快照源=%s 推送源=%s", cfg.API.BaseURL, cfg.Realtime.URL)

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	st := store.New()
	apiClient := api.NewClient(
		sdkhttp.NewClient(cfg.API.BaseURL, cfg.API.Timeout),
		api.NewFallback(cfg.Fallback.Seed),
		m,
	)
	dispatcher := dispatch.New(st, m)

	wsCfg := ws.DefaultConfig(cfg.Realtime.URL)
	wsCfg.ReconnectInterval = cfg.Realtime.ReconnectInterval
	ctrl := syncer.New(apiClient, st, dispatcher, m, wsCfg)

	shutdownMgr := shutdown.NewManager()
	shutdownMgr.OnShutdown(func(ctx context.Context) {
		ctrl.Stop()
	})

	// 先接通实时通道再拉快照，增量消息按到达顺序叠加在快照之上
	ctrl.Start()

	loadCtx, loadCancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
	ctrl.LoadInitial(loadCtx)
	loadCancel()

	if cfg.Status.Addr != "" {
		statusSrv := &http.Server{
			Addr:              cfg.Status.Addr,
			Handler:           server.New(st, ctrl, registry).Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Infof("状态服务监听 %s", cfg.Status.Addr)
			if err := statusSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Errorf("状态服务异常退出: %v", err)
			}
		}()
		shutdownMgr.OnShutdown(func(ctx context.Context) {
			_ = statusSrv.Shutdown(ctx)
		})
	}

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	<-stopCh

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	shutdownMgr.Shutdown(ctx)

	fmt.Println("dashboard stopped")
}
