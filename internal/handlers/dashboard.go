package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/webfolio/apiserver/internal/services"
)

// DashboardHandler serves the aggregated dashboard read.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// DashboardRouter registers the dashboard read. Unlike the other
// content reads this one sits behind the auth gate; the aggregate view
// is admin-facing.
func DashboardRouter(
	r chi.Router,
	dashboardService *services.DashboardService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewDashboardHandler(dashboardService)

	r.With(authMiddleware).Get("/", handler.GetDashboard)
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	if _, err := claimsFromContext(r.Context()); err != nil {
		writeError(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	entries, err := h.dashboardService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch dashboard data")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
