package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// AdminHandler serves the inventory-management endpoints. All routes are
// mounted behind the admin middleware.
type AdminHandler struct {
	Inventory InventoryService
	Log       *zap.Logger
}

// AddItemRequest represents the JSON payload for adding an item.
type AddItemRequest struct {
	CupboardID int    `json:"cupboard_id"`
	ItemName   string `json:"item_name"`
}

// AddItem handles POST /api/admin/add-item.
func (h *AdminHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CupboardID == 0 {
		writeMessage(w, http.StatusBadRequest, false, "Missing required fields")
		return
	}
	if req.ItemName == "" {
		writeMessage(w, http.StatusBadRequest, false, "Item name is required.")
		return
	}

	ok, err := h.Inventory.AddItem(r.Context(), req.CupboardID, req.ItemName)
	if err != nil {
		h.Log.Error("add item failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, false, "Internal server error")
		return
	}
	if !ok {
		writeMessage(w, http.StatusNotFound, false, "Failed to add item. Cupboard not found.")
		return
	}
	writeMessage(w, http.StatusOK, true, fmt.Sprintf("Item %q added successfully.", req.ItemName))
}

// RemoveItemRequest represents the JSON payload for removing an item.
type RemoveItemRequest struct {
	CupboardID int    `json:"cupboard_id"`
	ItemID     string `json:"item_id"`
}

// RemoveItem handles POST /api/admin/remove-item. Removing an item that
// is already gone still succeeds; only an unknown cupboard fails.
func (h *AdminHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req RemoveItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CupboardID == 0 || req.ItemID == "" {
		writeMessage(w, http.StatusBadRequest, false, "Missing required fields")
		return
	}

	ok, err := h.Inventory.RemoveItem(r.Context(), req.CupboardID, req.ItemID)
	if err != nil {
		h.Log.Error("remove item failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, false, "Internal server error")
		return
	}
	if !ok {
		writeMessage(w, http.StatusNotFound, false, "Failed to remove item.")
		return
	}
	writeMessage(w, http.StatusOK, true, "Item removed successfully.")
}

// AddCupboardRequest represents the JSON payload for adding a cupboard.
type AddCupboardRequest struct {
	CupboardName string `json:"cupboard_name"`
}

// AddCupboard handles POST /api/admin/add-cupboard.
func (h *AdminHandler) AddCupboard(w http.ResponseWriter, r *http.Request) {
	var req AddCupboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CupboardName == "" {
		writeMessage(w, http.StatusBadRequest, false, "Cupboard name is required.")
		return
	}

	id, err := h.Inventory.AddCupboard(r.Context(), req.CupboardName)
	if err != nil {
		h.Log.Error("add cupboard failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, false, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"cupboard_id": id,
		"message":     fmt.Sprintf("Cupboard %q added successfully.", req.CupboardName),
	})
}

// RemoveCupboardRequest represents the JSON payload for removing a
// cupboard.
type RemoveCupboardRequest struct {
	CupboardID int `json:"cupboard_id"`
}

// RemoveCupboard handles POST /api/admin/remove-cupboard. Removal
// cascades to the cupboard's items; an unknown id is a successful no-op.
func (h *AdminHandler) RemoveCupboard(w http.ResponseWriter, r *http.Request) {
	var req RemoveCupboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CupboardID == 0 {
		writeMessage(w, http.StatusBadRequest, false, "Missing required fields")
		return
	}

	if err := h.Inventory.RemoveCupboard(r.Context(), req.CupboardID); err != nil {
		h.Log.Error("remove cupboard failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, false, "Internal server error")
		return
	}
	writeMessage(w, http.StatusOK, true, "Cupboard removed successfully.")
}
