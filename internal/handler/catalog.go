package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"recycletrack-api/internal/repository"
	"recycletrack-api/internal/service"
	"recycletrack-api/pkg/apierror"
	"recycletrack-api/pkg/response"
)

// CatalogHandler handles barcode catalog HTTP requests.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// RegisterEntryRequest represents the request body for registering a barcode.
type RegisterEntryRequest struct {
	ItemType   string `json:"item_type"`
	ValueCents int64  `json:"value_cents"`
}

// Lookup handles GET /api/v1/catalog/{barcode}
func (h *CatalogHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	barcode := chi.URLParam(r, "barcode")
	if barcode == "" {
		response.Error(w, apierror.BadRequest("barcode is required"))
		return
	}

	entry, err := h.catalog.Lookup(r.Context(), barcode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error(w, apierror.NotFound("barcode not in catalog"))
			return
		}
		response.Error(w, apierror.InternalError("failed to look up barcode"))
		return
	}

	response.OK(w, entry)
}

// Register handles PUT /api/v1/catalog/{barcode}
func (h *CatalogHandler) Register(w http.ResponseWriter, r *http.Request) {
	barcode := chi.URLParam(r, "barcode")
	if barcode == "" {
		response.Error(w, apierror.BadRequest("barcode is required"))
		return
	}

	var req RegisterEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	defer r.Body.Close()

	if req.ItemType == "" {
		response.Error(w, apierror.BadRequest("item_type is required"))
		return
	}

	entry, err := h.catalog.Register(r.Context(), barcode, req.ItemType, req.ValueCents)
	if err != nil {
		if errors.Is(err, service.ErrInvalidValue) {
			response.Error(w, apierror.ValidationError(err.Error()))
			return
		}
		response.Error(w, apierror.InternalError("failed to register barcode"))
		return
	}

	response.OK(w, entry)
}

// List handles GET /api/v1/catalog
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.catalog.List(r.Context())
	if err != nil {
		response.Error(w, apierror.InternalError("failed to list catalog"))
		return
	}

	response.OK(w, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}
