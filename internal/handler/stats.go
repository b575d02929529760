package handler

import (
	"net/http"
	"strconv"

	"recycletrack-api/internal/middleware"
	"recycletrack-api/internal/service"
	"recycletrack-api/pkg/apierror"
	"recycletrack-api/pkg/response"
)

const (
	// defaultRecentLimit applies when the limit query param is absent.
	defaultRecentLimit = 20
	// maxRecentLimit caps client-supplied limits.
	maxRecentLimit = 100
)

// StatsHandler handles per-user stats and history HTTP requests.
type StatsHandler struct {
	recycling *service.RecyclingService
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(recycling *service.RecyclingService) *StatsHandler {
	return &StatsHandler{recycling: recycling}
}

// GetMyStats handles GET /api/v1/users/me/stats
func (h *StatsHandler) GetMyStats(w http.ResponseWriter, r *http.Request) {
	tokenData := middleware.GetTokenDataFromContext(r.Context())
	if tokenData == nil {
		response.Error(w, apierror.Unauthorized("session data missing"))
		return
	}

	stats, err := h.recycling.UserStats(r.Context(), tokenData.UserID)
	if err != nil {
		response.Error(w, apierror.InternalError("failed to compute stats"))
		return
	}

	response.OK(w, stats)
}

// GetRecent handles GET /api/v1/users/me/recent?limit=N
func (h *StatsHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	tokenData := middleware.GetTokenDataFromContext(r.Context())
	if tokenData == nil {
		response.Error(w, apierror.Unauthorized("session data missing"))
		return
	}

	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, apierror.BadRequest("limit must be an integer"))
			return
		}
		limit = parsed
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	events, err := h.recycling.RecentItems(r.Context(), tokenData.UserID, limit)
	if err != nil {
		response.Error(w, apierror.InternalError("failed to load recent items"))
		return
	}

	response.OK(w, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}
