package http

import (
	"net/http"
	"strconv"

	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/models"
	"go.uber.org/zap"
)

// HistoryHandler serves the audit-log query endpoint (admin only).
type HistoryHandler struct {
	HistoryService HistoryService
	Log            *zap.Logger
}

// History handles GET /api/history?nt_id=&action=&limit=. Both filters
// are optional; the NT ID filter is case-insensitive.
func (h *HistoryHandler) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	action := q.Get("action")
	if action != "" && !models.Action(action).Valid() {
		writeMessage(w, http.StatusBadRequest, false, "Unknown action filter")
		return
	}

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeMessage(w, http.StatusBadRequest, false, "Invalid limit")
			return
		}
		limit = n
	}

	records, err := h.HistoryService.Query(r.Context(), q.Get("nt_id"), action, limit)
	if err != nil {
		h.Log.Error("history query failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, false, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": records})
}
