package handler

import (
	"net/http"

	"recycletrack-api/internal/service"
	"recycletrack-api/pkg/apierror"
	"recycletrack-api/pkg/response"
)

// LeaderboardHandler handles leaderboard HTTP requests.
type LeaderboardHandler struct {
	board *service.LeaderboardService
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(board *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{board: board}
}

// GetLeaderboard handles GET /api/v1/leaderboard?metric=items|value|impact
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	metric, err := service.ParseMetric(r.URL.Query().Get("metric"))
	if err != nil {
		response.Error(w, apierror.BadRequest(err.Error()))
		return
	}

	users, err := h.board.Rank(r.Context(), metric)
	if err != nil {
		response.Error(w, apierror.InternalError("failed to rank leaderboard"))
		return
	}

	response.OK(w, map[string]interface{}{
		"metric": string(metric),
		"users":  users,
		"count":  len(users),
	})
}
