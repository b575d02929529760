package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"recycletrack-api/internal/middleware"
	"recycletrack-api/internal/model"
	"recycletrack-api/internal/repository"
	"recycletrack-api/internal/service"
	"recycletrack-api/pkg/apierror"
	"recycletrack-api/pkg/response"
)

// ScanHandler handles recycling scan HTTP requests.
type ScanHandler struct {
	recycling *service.RecyclingService
}

// NewScanHandler creates a new scan handler.
func NewScanHandler(recycling *service.RecyclingService) *ScanHandler {
	return &ScanHandler{recycling: recycling}
}

// ScanRequest represents the request body for recording a scan.
type ScanRequest struct {
	Barcode string `json:"barcode"`
}

// ScanResponse represents a recorded scan: the stored event plus the
// user's refreshed aggregates.
type ScanResponse struct {
	Event *model.RecycleEvent `json:"event"`
	Stats model.UserStats     `json:"stats"`
}

// RecordScan handles POST /api/v1/scans
func (h *ScanHandler) RecordScan(w http.ResponseWriter, r *http.Request) {
	tokenData := middleware.GetTokenDataFromContext(r.Context())
	if tokenData == nil {
		response.Error(w, apierror.Unauthorized("session data missing"))
		return
	}

	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	if req.Barcode == "" {
		response.Error(w, apierror.BadRequest("barcode is required"))
		return
	}

	event, stats, err := h.recycling.RecordScan(r.Context(), tokenData.UserID, req.Barcode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(w, apierror.NotFound("barcode not in catalog"))
			return
		}
		response.Error(w, apierror.InternalError("failed to record scan"))
		return
	}

	response.Created(w, ScanResponse{
		Event: event,
		Stats: stats,
	})
}
