package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealthz(c *gin.Context) {
	c.Status(http.StatusOK)
}

// handleStateSummary 账户视图摘要：各切片条数、加载/错误标记与实时通道状态
func (s *Server) handleStateSummary(c *gin.Context) {
	state := s.store.State()

	unread := 0
	for _, n := range state.Notifications {
		if !n.Read {
			unread++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"balances":            len(state.Balances),
		"positions":           len(state.Positions),
		"orders":              len(state.Orders),
		"trades":              len(state.Trades),
		"strategies":          len(state.Strategies),
		"notifications":       len(state.Notifications),
		"unreadNotifications": unread,
		"performanceRange":    state.PerformanceRange,
		"assetHistoryRange":   state.AssetHistoryRange,
		"loading":             state.Loading,
		"error":               state.Error,
		"lastUpdated":         state.LastUpdated,
		"realtime":            s.sync.RealtimeState(),
	})
}

// handleStateFull 完整快照（调试用）
func (s *Server) handleStateFull(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.State())
}

// handleRefresh 触发一次全量刷新，返回刷新后的摘要
func (s *Server) handleRefresh(c *gin.Context) {
	s.sync.RefreshAll(c.Request.Context())
	s.handleStateSummary(c)
}

func (s *Server) handleStrategyToggle(c *gin.Context) {
	id := c.Param("strategyID")
	if err := s.sync.ToggleStrategy(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	strategy, _ := s.store.State().FindStrategy(id)
	c.JSON(http.StatusOK, strategy)
}

func (s *Server) handleNotificationRead(c *gin.Context) {
	id := c.Param("notificationID")
	if err := s.sync.AcknowledgeNotification(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
