package handler

import (
	"net/http"
	"runtime"
	"time"

	"recycletrack-api/internal/repository"
	"recycletrack-api/pkg/response"
)

// AdminHandler handles admin-related HTTP requests.
type AdminHandler struct {
	ledgerRepo  repository.LedgerRepository
	catalogRepo repository.CatalogRepository
	boardRepo   repository.LeaderboardRepository
	dbType      string
	startTime   time.Time
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	ledgerRepo repository.LedgerRepository,
	catalogRepo repository.CatalogRepository,
	boardRepo repository.LeaderboardRepository,
	dbType string,
) *AdminHandler {
	return &AdminHandler{
		ledgerRepo:  ledgerRepo,
		catalogRepo: catalogRepo,
		boardRepo:   boardRepo,
		dbType:      dbType,
		startTime:   time.Now(),
	}
}

// GetStats handles GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats := make(map[string]interface{})

	// System info
	stats["uptime_seconds"] = int64(time.Since(h.startTime).Seconds())
	stats["uptime_human"] = time.Since(h.startTime).Round(time.Second).String()
	stats["server_time"] = time.Now().Format(time.RFC3339)
	stats["db_type"] = h.dbType

	// Memory stats
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	stats["memory"] = map[string]interface{}{
		"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
		"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
		"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
		"heap_alloc_mb":  float64(memStats.HeapAlloc) / 1024 / 1024,
		"heap_inuse_mb":  float64(memStats.HeapInuse) / 1024 / 1024,
		"num_gc":         memStats.NumGC,
		"goroutines":     runtime.NumGoroutine(),
	}

	// Ledger stats
	if h.ledgerRepo != nil {
		ledgerStats, err := h.ledgerRepo.Stats(ctx)
		if err == nil {
			ledgerStats["status"] = "connected"
			stats["ledger"] = ledgerStats
		} else {
			stats["ledger"] = map[string]interface{}{
				"status": "error",
				"error":  err.Error(),
			}
		}
	} else {
		stats["ledger"] = map[string]interface{}{
			"status": "not_configured",
		}
	}

	// Catalog size
	if h.catalogRepo != nil {
		entries, err := h.catalogRepo.List(ctx)
		if err == nil {
			stats["catalog"] = map[string]interface{}{
				"entries": len(entries),
				"status":  "connected",
			}
		} else {
			stats["catalog"] = map[string]interface{}{
				"status": "error",
				"error":  err.Error(),
			}
		}
	}

	// Roster size
	if h.boardRepo != nil {
		users, err := h.boardRepo.ListUsers(ctx)
		if err == nil {
			stats["roster"] = map[string]interface{}{
				"users":  len(users),
				"status": "connected",
			}
		} else {
			stats["roster"] = map[string]interface{}{
				"status": "error",
				"error":  err.Error(),
			}
		}
	}

	// Runtime info
	stats["runtime"] = map[string]interface{}{
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"cpus":       runtime.NumCPU(),
	}

	response.OK(w, stats)
}
