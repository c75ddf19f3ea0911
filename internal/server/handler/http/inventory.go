package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/middleware"
	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/models"
	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/repository"
	"go.uber.org/zap"
)

// InventoryService defines the interface for inventory operations
// required by the HTTP handlers.
type InventoryService interface {
	// ListCupboards returns the full inventory in stored order.
	ListCupboards(ctx context.Context) ([]models.Cupboard, error)
	// Toggle flips the lock state of one item on behalf of an actor.
	Toggle(ctx context.Context, cupboardID int, itemID, ntID string, isAdmin bool) (*models.ToggleResult, error)
	// AddItem adds a named item; false when the cupboard is unknown.
	AddItem(ctx context.Context, cupboardID int, name string) (bool, error)
	// RemoveItem removes an item; false when the cupboard is unknown.
	RemoveItem(ctx context.Context, cupboardID int, itemID string) (bool, error)
	// AddCupboard creates an empty cupboard and returns its id.
	AddCupboard(ctx context.Context, name string) (int, error)
	// RemoveCupboard deletes a cupboard and its items.
	RemoveCupboard(ctx context.Context, cupboardID int) error
}

// HistoryService defines the interface for audit-log operations
// required by the HTTP handlers.
type HistoryService interface {
	// Record appends one audit entry.
	Record(ctx context.Context, action models.Action, itemName, cupboardName, ntID string) error
	// Query returns filtered entries, newest first, capped at limit.
	Query(ctx context.Context, ntIDFilter, actionFilter string, limit int) ([]models.AuditEntry, error)
}

// Notifier announces a completed borrow/return event. Implementations
// must not block and must swallow their own failures.
type Notifier interface {
	Notify(action models.Action, itemName, cupboardName, ntID string)
}

// InventoryHandler serves the cupboard listing and the lock toggle.
type InventoryHandler struct {
	Inventory InventoryService
	History   HistoryService
	Notifier  Notifier
	Log       *zap.Logger
}

// ListCupboards handles GET /api/cupboards.
func (h *InventoryHandler) ListCupboards(w http.ResponseWriter, r *http.Request) {
	cupboards, err := h.Inventory.ListCupboards(r.Context())
	if err != nil {
		h.Log.Error("list cupboards failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, false, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cupboards": cupboards})
}

// ToggleRequest represents the JSON payload for a lock toggle.
type ToggleRequest struct {
	CupboardID int    `json:"cupboard_id"`
	ItemID     string `json:"item_id"`
}

// ToggleLock handles POST /api/toggle-lock. A locked item is borrowed by
// the actor; an unlocked one is returned, which only the borrower or an
// admin may do. Successful toggles are audited and announced.
func (h *InventoryHandler) ToggleLock(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "Login required")
		return
	}

	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CupboardID == 0 || req.ItemID == "" {
		writeMessage(w, http.StatusBadRequest, false, "Missing required fields")
		return
	}

	result, err := h.Inventory.Toggle(r.Context(), req.CupboardID, req.ItemID, id.NTID, id.IsAdmin())
	if err != nil {
		var notAuth *repository.NotAuthorizedError
		switch {
		case errors.As(err, &notAuth):
			writeMessage(w, http.StatusForbidden, false, fmt.Sprintf(
				"You cannot return %q because it was borrowed by another user.", notAuth.ItemName))
		case errors.Is(err, repository.ErrNotFound):
			writeMessage(w, http.StatusNotFound, false, "Item not found")
		default:
			h.Log.Error("toggle failed", zap.Error(err))
			writeMessage(w, http.StatusInternalServerError, false, "Internal server error")
		}
		return
	}

	if err := h.History.Record(r.Context(), result.Action, result.ItemName, result.CupboardName, id.NTID); err != nil {
		h.Log.Error("failed to record audit entry", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, false, "Internal server error")
		return
	}

	h.Notifier.Notify(result.Action, result.ItemName, result.CupboardName, id.NTID)

	var message string
	if result.Action == models.ActionLocked {
		message = fmt.Sprintf("Item %q has been returned (locked) by %s.", result.ItemName, id.NTID)
	} else {
		message = fmt.Sprintf("Item %q has been borrowed (unlocked) by %s.", result.ItemName, id.NTID)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"action":  result.Action,
		"message": message,
		"nt_id":   id.NTID,
	})
}
