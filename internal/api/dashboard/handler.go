// Package dashboard provides REST API handlers for the scorekeeper dashboard.
// It exposes endpoints for leaderboards and per-player score history.
package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/soltree-games/scorekeeper/internal/service/leaderboard"
	"github.com/soltree-games/scorekeeper/pkg/logger"
)

// LeaderboardService interface for leaderboard operations.
type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, period, metric string, limit int) ([]leaderboard.Entry, error)
	GetPlayerDetail(ctx context.Context, externalID string) (*leaderboard.PlayerDetail, error)
}

// HealthChecker reports whether the archive backing the dashboard is reachable.
type HealthChecker interface {
	Health() error
}

// Handler handles dashboard API requests.
type Handler struct {
	leaderboardService LeaderboardService
	health             HealthChecker
	log                *logger.Logger
}

// NewHandler creates a new dashboard handler.
func NewHandler(leaderboardService *leaderboard.Service, health HealthChecker, log *logger.Logger) *Handler {
	return &Handler{
		leaderboardService: leaderboardService,
		health:             health,
		log:                log,
	}
}

// NewHandlerWithInterfaces creates a new dashboard handler with interface dependencies (useful for testing).
func NewHandlerWithInterfaces(leaderboardService LeaderboardService, health HealthChecker, log *logger.Logger) *Handler {
	return &Handler{
		leaderboardService: leaderboardService,
		health:             health,
		log:                log,
	}
}

// RegisterRoutes mounts the dashboard endpoints on the router.
func (h *Handler) RegisterRoutes(router *gin.Engine, metricsPath string) {
	api := router.Group("/api/v1")
	api.GET("/leaderboard", h.GetLeaderboard)
	api.GET("/players/:id", h.GetPlayerDetail)

	router.GET("/healthz", h.GetHealth)
	if metricsPath != "" {
		router.GET(metricsPath, gin.WrapH(promhttp.Handler()))
	}
}

// GetLeaderboard returns the leaderboard.
// GET /api/v1/leaderboard?period=month&metric=exp&limit=10.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	period := c.DefaultQuery("period", "all")
	metric := c.DefaultQuery("metric", "exp")
	limit, err := h.parseLimit(c, 10)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	// Validate parameters
	if err := h.validatePeriod(period); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validateMetric(metric); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if h.leaderboardService == nil {
		h.errorResponse(c, http.StatusServiceUnavailable, "Score archive is not configured")
		return
	}

	entries, err := h.leaderboardService.GetLeaderboard(c.Request.Context(), period, metric, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get leaderboard")
		h.errorResponse(c, http.StatusInternalServerError, "Failed to retrieve leaderboard")
		return
	}

	h.log.Info().
		Str("period", period).
		Str("metric", metric).
		Int("limit", limit).
		Int("entries", len(entries)).
		Msg("Retrieved leaderboard")

	c.JSON(http.StatusOK, gin.H{
		"leaderboard":   entries,
		"period":        period,
		"metric":        metric,
		"total_entries": len(entries),
		"generated_at":  time.Now().UTC(),
	})
}

// GetPlayerDetail returns archived totals and history for one participant.
// GET /api/v1/players/:id.
func (h *Handler) GetPlayerDetail(c *gin.Context) {
	externalID := c.Param("id")
	if externalID == "" {
		h.errorResponse(c, http.StatusBadRequest, "player id is required")
		return
	}

	if h.leaderboardService == nil {
		h.errorResponse(c, http.StatusServiceUnavailable, "Score archive is not configured")
		return
	}

	detail, err := h.leaderboardService.GetPlayerDetail(c.Request.Context(), externalID)
	if err != nil {
		h.log.Error().Err(err).Str("player_id", externalID).Msg("Failed to get player detail")
		h.errorResponse(c, http.StatusNotFound, "Player not found")
		return
	}

	h.log.Info().
		Str("player_id", externalID).
		Int("history_days", len(detail.History)).
		Msg("Retrieved player detail")

	c.JSON(http.StatusOK, gin.H{
		"player":       detail.Player,
		"history":      detail.History,
		"generated_at": time.Now().UTC(),
	})
}

// GetHealth reports service and archive health.
// GET /healthz.
func (h *Handler) GetHealth(c *gin.Context) {
	if h.health != nil {
		if err := h.health.Health(); err != nil {
			h.log.Error().Err(err).Msg("Archive health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now().UTC(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Helper functions

// parseLimit extracts and validates the limit query parameter.
func (h *Handler) parseLimit(c *gin.Context, defaultLimit int) (int, error) {
	limitStr := c.Query("limit")
	if limitStr == "" {
		return defaultLimit, nil
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return 0, fmt.Errorf("invalid limit parameter: %s", limitStr)
	}

	if limit < 1 {
		return 0, fmt.Errorf("limit must be greater than 0")
	}

	if limit > 1000 {
		return 0, fmt.Errorf("limit cannot exceed 1000")
	}

	return limit, nil
}

// validatePeriod validates the period parameter.
func (h *Handler) validatePeriod(period string) error {
	validPeriods := map[string]bool{
		"week":  true,
		"month": true,
		"all":   true,
	}

	if !validPeriods[period] {
		return fmt.Errorf("invalid period: %s (valid: week, month, all)", period)
	}
	return nil
}

// validateMetric validates the metric parameter.
func (h *Handler) validateMetric(metric string) error {
	validMetrics := map[string]bool{
		"exp": true,
		"rep": true,
		"jce": true,
	}

	if !validMetrics[metric] {
		return fmt.Errorf("invalid metric: %s (valid: exp, rep, jce)", metric)
	}
	return nil
}

// errorResponse sends a standardized error response.
func (h *Handler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error":     message,
		"timestamp": time.Now().UTC(),
	})
}
