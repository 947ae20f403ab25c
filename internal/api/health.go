package api

import (
	"net/http"

	"gorm.io/gorm"
)

// HealthHandler reports service and storage health.
type HealthHandler struct {
	db *gorm.DB
}

// Check GET /api/health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
