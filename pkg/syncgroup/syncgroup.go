package syncgroup

import (
	"sync"
)

// SyncGroup 是 sync.WaitGroup 的包装器，简化一批并行任务的生命周期管理
// 自动配对 Add() 和 Done()，避免手写计数出错
// 同步控制器用它并行拉取各资源快照
type SyncGroup struct {
	wg sync.WaitGroup
}

// NewSyncGroup 创建新的 SyncGroup
func NewSyncGroup() *SyncGroup {
	return &SyncGroup{}
}

// Go 启动一个被跟踪的 goroutine
func (g *SyncGroup) Go(fn func()) {
	if fn == nil {
		return
	}
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		fn()
	}()
}

// Wait 阻塞直到所有 goroutine 完成
func (g *SyncGroup) Wait() {
	g.wg.Wait()
}
