package http

import (
	"net/http"

	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP handler serving the lab inventory API.
//
// Routes:
//
//	POST /api/login                  → authHandler.Login
//	POST /api/logout                 → authHandler.Logout        (login)
//	GET  /api/cupboards              → inventoryHandler.ListCupboards (login)
//	POST /api/toggle-lock            → inventoryHandler.ToggleLock    (login)
//	GET  /api/history                → historyHandler.History     (admin)
//	POST /api/admin/add-item         → adminHandler.AddItem       (admin)
//	POST /api/admin/remove-item      → adminHandler.RemoveItem    (admin)
//	POST /api/admin/add-cupboard     → adminHandler.AddCupboard   (admin)
//	POST /api/admin/remove-cupboard  → adminHandler.RemoveCupboard (admin)
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON bodies
//  2. WithRequestLogging(logger)           — logs each request
//  3. sessionAuth.RequireLogin / RequireAdmin on the protected groups
func NewRouter(
	authHandler *AuthHandler,
	inventoryHandler *InventoryHandler,
	adminHandler *AdminHandler,
	historyHandler *HistoryHandler,
	sessionAuth *middleware.SessionAuth,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoint
		r.Post("/login", authHandler.Login)

		// Protected group: requires a login session
		r.Group(func(r chi.Router) {
			r.Use(sessionAuth.RequireLogin)
			r.Post("/logout", authHandler.Logout)
			r.Get("/cupboards", inventoryHandler.ListCupboards)
			r.Post("/toggle-lock", inventoryHandler.ToggleLock)
		})

		// Admin group: requires the admin role
		r.Group(func(r chi.Router) {
			r.Use(sessionAuth.RequireAdmin)
			r.Get("/history", historyHandler.History)
			r.Route("/admin", func(r chi.Router) {
				r.Post("/add-item", adminHandler.AddItem)
				r.Post("/remove-item", adminHandler.RemoveItem)
				r.Post("/add-cupboard", adminHandler.AddCupboard)
				r.Post("/remove-cupboard", adminHandler.RemoveCupboard)
			})
		})
	})

	return r
}
